package resolver

import (
	"fmt"

	v1 "github.com/thegeeklab/scheduler-kubernetes/api/v1"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/util/k8s"
	corev1 "k8s.io/api/core/v1"
)

// Volumes returns the volumes declared for the request. Sources are merged by
// name in precedence order: deployment property, scheduler property, defaults.
// Entries of a later source are only added if no earlier source declared a
// volume with the same name.
func Volumes(request spi.ScheduleRequest, props v1.SchedulerProperties) ([]corev1.Volume, error) {
	deployment, err := parseProperty[corev1.Volume](request.DeploymentProperties, v1.DeploymentPropertyVolumes)
	if err != nil {
		return nil, err
	}

	scheduler, err := parseProperty[corev1.Volume](request.SchedulerProperties, v1.PropertyVolumes)
	if err != nil {
		return nil, err
	}

	return mergeByName(func(v corev1.Volume) string { return v.Name }, deployment, scheduler, props.Volumes), nil
}

// VolumeMounts returns the volume mounts declared for the request, merged like Volumes.
func VolumeMounts(request spi.ScheduleRequest, props v1.SchedulerProperties) ([]corev1.VolumeMount, error) {
	deployment, err := parseProperty[corev1.VolumeMount](request.DeploymentProperties, v1.DeploymentPropertyVolumeMounts)
	if err != nil {
		return nil, err
	}

	scheduler, err := parseProperty[corev1.VolumeMount](request.SchedulerProperties, v1.PropertyVolumeMounts)
	if err != nil {
		return nil, err
	}

	return mergeByName(func(m corev1.VolumeMount) string { return m.Name }, deployment, scheduler, props.VolumeMounts), nil
}

// FilterVolumes keeps only the volumes referenced by one of the mounts.
func FilterVolumes(volumes []corev1.Volume, mounts []corev1.VolumeMount) []corev1.Volume {
	mounted := make(map[string]struct{}, len(mounts))
	for _, mount := range mounts {
		mounted[mount.Name] = struct{}{}
	}

	result := make([]corev1.Volume, 0, len(volumes))

	for _, volume := range volumes {
		if _, ok := mounted[volume.Name]; ok {
			result = append(result, volume)
		}
	}

	return result
}

func parseProperty[T any](properties map[string]string, key string) ([]T, error) {
	items, err := k8s.ParseNamedList[T](properties[key])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", spi.ErrInvalidArgument, key, err)
	}

	return items, nil
}

// mergeByName concatenates sources, skipping entries whose name was already
// declared by an earlier source.
func mergeByName[T any](name func(T) string, sources ...[]T) []T {
	declared := map[string]struct{}{}

	var result []T

	for _, source := range sources {
		added := make([]string, 0, len(source))

		for _, item := range source {
			if _, ok := declared[name(item)]; ok {
				continue
			}

			result = append(result, item)
			added = append(added, name(item))
		}

		for _, n := range added {
			declared[n] = struct{}{}
		}
	}

	return result
}
