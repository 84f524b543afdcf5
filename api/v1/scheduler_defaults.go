package v1

import (
	"os"

	corev1 "k8s.io/api/core/v1"
)

func (p *SchedulerProperties) Default() {
	if p.ImagePullPolicy == "" {
		p.ImagePullPolicy = corev1.PullIfNotPresent
	}

	if p.RestartPolicy == "" {
		p.RestartPolicy = corev1.RestartPolicyNever
	}

	if p.EntryPointStyle == "" {
		p.EntryPointStyle = EntryPointStyle_EXEC
	}

	if p.Namespace == "" {
		p.Namespace = DefaultNamespaceFromEnv()
	}

	if p.TaskServiceAccountName == "" {
		p.TaskServiceAccountName = DefaultTaskServiceAccountName
	}
}

// DefaultNamespaceFromEnv returns the value of KUBERNETES_NAMESPACE or "default" if unset or empty.
func DefaultNamespaceFromEnv() string {
	if ns := os.Getenv(EnvKubernetesNamespace); ns != "" {
		return ns
	}

	return DefaultNamespace
}
