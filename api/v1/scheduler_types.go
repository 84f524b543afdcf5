package v1

import (
	corev1 "k8s.io/api/core/v1"
)

const (
	// SchedulerPropertiesPrefix is the dotted prefix of all scheduler-scoped properties.
	SchedulerPropertiesPrefix = "spring.cloud.scheduler.kubernetes"

	// DeployerPropertiesPrefix is the dotted prefix of all deployment-scoped properties.
	DeployerPropertiesPrefix = "spring.cloud.deployer.kubernetes"

	// EnvKubernetesNamespace overrides the default namespace at startup.
	EnvKubernetesNamespace = "KUBERNETES_NAMESPACE"

	DefaultNamespace              = "default"
	DefaultTaskServiceAccountName = "default"
)

// Scheduler property keys.
const (
	PropertyImagePullPolicy        = SchedulerPropertiesPrefix + ".imagePullPolicy"
	PropertyEntryPointStyle        = SchedulerPropertiesPrefix + ".entryPointStyle"
	PropertyImagePullSecret        = SchedulerPropertiesPrefix + ".imagePullSecret"
	PropertyTaskServiceAccountName = SchedulerPropertiesPrefix + ".taskServiceAccountName"
	PropertyEnvironmentVariables   = SchedulerPropertiesPrefix + ".environmentVariables"
	PropertyVolumes                = SchedulerPropertiesPrefix + ".volumes"
	PropertyVolumeMounts           = SchedulerPropertiesPrefix + ".volumeMounts"
)

// Deployment property keys.
const (
	DeploymentPropertyVolumes      = DeployerPropertiesPrefix + ".volumes"
	DeploymentPropertyVolumeMounts = DeployerPropertiesPrefix + ".volumeMounts"
)

// EntryPointStyle defines how application properties are handed to the container.
// +kubebuilder:validation:Enum=exec;shell;boot
type EntryPointStyle string

//nolint:revive,stylecheck
const (
	// EntryPointStyle_EXEC passes application properties as command line arguments.
	EntryPointStyle_EXEC EntryPointStyle = "exec"

	// EntryPointStyle_SHELL passes application properties as environment variables.
	EntryPointStyle_SHELL EntryPointStyle = "shell"

	// EntryPointStyle_BOOT passes application properties as JSON in the
	// SPRING_APPLICATION_JSON environment variable. Command line arguments are passed as-is.
	EntryPointStyle_BOOT EntryPointStyle = "boot"
)

// SchedulerProperties holds the process-wide scheduler defaults.
type SchedulerProperties struct {
	// Image pull policy.
	// One of `Always`, `Never` or `IfNotPresent`.
	// If not defined, it defaults to `IfNotPresent`.
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`

	// Restart policy of the scheduled pods.
	// One of `Never` or `OnFailure`.
	// If not defined, it defaults to `Never`.
	RestartPolicy corev1.RestartPolicy `json:"restartPolicy,omitempty"`

	// +kubebuilder:default:="exec"
	EntryPointStyle EntryPointStyle `json:"entryPointStyle,omitempty"`

	Namespace string `json:"namespace,omitempty"`

	// Name of the secret used to pull the task image.
	ImagePullSecret string `json:"imagePullSecret,omitempty"`

	// +kubebuilder:default:="default"
	TaskServiceAccountName string `json:"taskServiceAccountName,omitempty"`

	// Environment variable declarations in `KEY=VALUE[,KEY='VAL,UE']` form.
	EnvironmentVariables []string `json:"environmentVariables,omitempty"`

	Volumes      []corev1.Volume      `json:"volumes,omitempty"`
	VolumeMounts []corev1.VolumeMount `json:"volumeMounts,omitempty"`
}
