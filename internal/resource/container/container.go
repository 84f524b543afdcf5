package containers

import (
	corev1 "k8s.io/api/core/v1"
)

// ContainerMutator defines a function type for mutating container configurations.
type ContainerMutator func(*corev1.Container)

// ContainerTemplate creates a default container with optional mutators.
func ContainerTemplate(
	name string,
	image string,
	imagePullPolicy corev1.PullPolicy,
	mutators ...ContainerMutator,
) corev1.Container {
	container := corev1.Container{
		Name:            name,
		Image:           image,
		ImagePullPolicy: imagePullPolicy,
	}

	// Apply all mutators to the container
	for _, mutator := range mutators {
		mutator(&container)
	}

	return container
}

// WithContainerArgs appends container arguments.
func WithContainerArgs(args []string) ContainerMutator {
	return func(c *corev1.Container) {
		c.Args = append(c.Args, args...)
	}
}

// WithEnvVars adds additional environment variables.
// Variables are appended as-is; names already present are not replaced.
func WithEnvVars(envVars []corev1.EnvVar) ContainerMutator {
	return func(c *corev1.Container) {
		c.Env = append(c.Env, envVars...)
	}
}

// WithVolumeMounts adds additional volume mounts.
func WithVolumeMounts(mounts []corev1.VolumeMount) ContainerMutator {
	return func(c *corev1.Container) {
		c.VolumeMounts = append(c.VolumeMounts, mounts...)
	}
}
