package k8s

import (
	"strings"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"
)

// Kind returns the kind of obj, resolving it through scheme when the object
// carries no type meta. List kinds are reported without their "List" suffix.
func Kind(scheme *runtime.Scheme, obj runtime.Object) string {
	gvk := obj.GetObjectKind().GroupVersionKind()
	if gvk.Kind == "" {
		gvk, _ = apiutil.GVKForObject(obj, scheme)
	}

	return strings.TrimSuffix(gvk.Kind, "List")
}
