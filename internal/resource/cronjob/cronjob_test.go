package cronjob_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"

	cronjob "github.com/thegeeklab/scheduler-kubernetes/internal/resource/cronjob"
)

var _ = Describe("CronJobTemplate", func() {
	It("should create a cron job with metadata and schedule", func() {
		job := cronjob.CronJobTemplate("test-cronjob", "test-namespace", "* * * * *")

		Expect(job.Name).To(Equal("test-cronjob"))
		Expect(job.Namespace).To(Equal("test-namespace"))
		Expect(job.Spec.Schedule).To(Equal("* * * * *"))
		Expect(job.Spec.JobTemplate.Spec.Template.Spec.Containers).To(BeEmpty())
	})

	It("should pass an invalid schedule through unchanged", func() {
		job := cronjob.CronJobTemplate("test-cronjob", "test-namespace", "1 2 3 4")
		Expect(job.Spec.Schedule).To(Equal("1 2 3 4"))
	})

	It("should apply pod mutators", func() {
		labels := map[string]string{"spring-cronjob-id": "timestamp"}

		job := cronjob.CronJobTemplate(
			"test-cronjob",
			"test-namespace",
			"* * * * *",
			cronjob.WithLabels(labels),
			cronjob.WithRestartPolicy(corev1.RestartPolicyOnFailure),
			cronjob.WithServiceAccountName("task-runner"),
			cronjob.WithVolumes([]corev1.Volume{{Name: "data"}}),
			cronjob.WithContainers(corev1.Container{Name: "test-container", Image: "nginx:latest"}),
			cronjob.WithImagePullSecret("mysecret"),
		)

		pod := job.Spec.JobTemplate.Spec.Template
		Expect(job.Labels).To(Equal(labels))
		Expect(pod.Labels).To(Equal(labels))
		Expect(pod.Spec.RestartPolicy).To(Equal(corev1.RestartPolicyOnFailure))
		Expect(pod.Spec.ServiceAccountName).To(Equal("task-runner"))
		Expect(pod.Spec.Volumes).To(Equal([]corev1.Volume{{Name: "data"}}))
		Expect(pod.Spec.Containers).To(HaveLen(1))
		Expect(pod.Spec.Containers[0].Name).To(Equal("test-container"))
		Expect(pod.Spec.ImagePullSecrets).To(Equal([]corev1.LocalObjectReference{{Name: "mysecret"}}))
	})

	It("should not reference an empty image pull secret", func() {
		job := cronjob.CronJobTemplate("test-cronjob", "test-namespace", "* * * * *",
			cronjob.WithImagePullSecret(""),
		)

		Expect(job.Spec.JobTemplate.Spec.Template.Spec.ImagePullSecrets).To(BeNil())
	})
})
