package cronjob

import (
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CronJobMutator defines a function type for mutating cron job configurations.
type CronJobMutator func(*batchv1.CronJob)

// CronJobTemplate creates a cron job with optional mutators.
// The schedule is passed through unvalidated.
func CronJobTemplate(name, namespace, schedule string, mutators ...CronJobMutator) *batchv1.CronJob {
	job := &batchv1.CronJob{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Spec: batchv1.CronJobSpec{
			Schedule: schedule,
		},
	}

	for _, mutator := range mutators {
		mutator(job)
	}

	return job
}

func podSpec(job *batchv1.CronJob) *corev1.PodSpec {
	return &job.Spec.JobTemplate.Spec.Template.Spec
}

// WithLabels sets the labels of the cron job and of the pods it spawns.
func WithLabels(labels map[string]string) CronJobMutator {
	return func(job *batchv1.CronJob) {
		job.Labels = labels
		job.Spec.JobTemplate.Spec.Template.Labels = labels
	}
}

// WithRestartPolicy sets the restart policy of the pods.
func WithRestartPolicy(policy corev1.RestartPolicy) CronJobMutator {
	return func(job *batchv1.CronJob) {
		podSpec(job).RestartPolicy = policy
	}
}

// WithServiceAccountName sets the service account the pods run as.
func WithServiceAccountName(name string) CronJobMutator {
	return func(job *batchv1.CronJob) {
		podSpec(job).ServiceAccountName = name
	}
}

// WithVolumes adds volumes to the pods.
func WithVolumes(volumes []corev1.Volume) CronJobMutator {
	return func(job *batchv1.CronJob) {
		podSpec(job).Volumes = append(podSpec(job).Volumes, volumes...)
	}
}

// WithContainers adds containers to the pods.
func WithContainers(containers ...corev1.Container) CronJobMutator {
	return func(job *batchv1.CronJob) {
		podSpec(job).Containers = append(podSpec(job).Containers, containers...)
	}
}

// WithImagePullSecret references an image pull secret. Empty names are ignored.
func WithImagePullSecret(name string) CronJobMutator {
	return func(job *batchv1.CronJob) {
		if name == "" {
			return
		}

		podSpec(job).ImagePullSecrets = append(podSpec(job).ImagePullSecrets, corev1.LocalObjectReference{Name: name})
	}
}
