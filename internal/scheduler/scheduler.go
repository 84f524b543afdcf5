// Package scheduler implements the scheduler contract on top of Kubernetes CronJobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	v1 "github.com/thegeeklab/scheduler-kubernetes/api/v1"
	"github.com/thegeeklab/scheduler-kubernetes/internal/resolver"
	containers "github.com/thegeeklab/scheduler-kubernetes/internal/resource/container"
	cronjob "github.com/thegeeklab/scheduler-kubernetes/internal/resource/cronjob"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/util/k8s"
	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// TaskDefinitionLabel carries the task definition name of a schedule.
	TaskDefinitionLabel = "spring-cronjob-id"

	// ScheduleExpressionField is the field path the cluster reports for an invalid cron expression.
	ScheduleExpressionField = "spec.schedule"
)

var _ spi.Scheduler = (*KubernetesScheduler)(nil)

// KubernetesScheduler maps schedules to CronJobs in a single namespace.
// It keeps no state besides the client and the read-only properties and is
// safe for concurrent use if the client is.
type KubernetesScheduler struct {
	client client.Client
	props  v1.SchedulerProperties
}

func New(c client.Client, props v1.SchedulerProperties) *KubernetesScheduler {
	return &KubernetesScheduler{
		client: c,
		props:  props,
	}
}

// Schedule creates the CronJob of a schedule request.
func (s *KubernetesScheduler) Schedule(ctx context.Context, request spi.ScheduleRequest) error {
	log := logf.FromContext(ctx).WithValues("schedule", request.ScheduleName, "namespace", s.props.Namespace)

	job, err := s.CronJob(request)
	if err != nil {
		return err
	}

	for _, container := range job.Spec.JobTemplate.Spec.Template.Spec.Containers {
		if duplicates := containers.DuplicateEnvNames(container); len(duplicates) > 0 {
			log.Info("Task container declares environment variables more than once, the cluster decides which value wins",
				"names", duplicates)
		}
	}

	if err := s.client.Create(ctx, job); err != nil {
		var status apierrors.APIStatus
		if !errors.As(err, &status) {
			return err
		}

		if message, ok := ExceptionMessageForField(err, ScheduleExpressionField); ok && strings.TrimSpace(message) != "" {
			log.Error(err, "Rejected cron expression", "expression", job.Spec.Schedule)

			return &spi.CronExpressionError{Message: message}
		}

		log.Error(err, "Failed to create schedule")

		return fmt.Errorf("%w: %s: %w", spi.ErrCreateSchedule, request.ScheduleName, err)
	}

	log.Info("Created schedule",
		"kind", k8s.Kind(s.client.Scheme(), job),
		"taskDefinition", request.Definition.Name,
		"expression", job.Spec.Schedule,
	)

	return nil
}

// CronJob builds the CronJob of a schedule request without submitting it.
func (s *KubernetesScheduler) CronJob(request spi.ScheduleRequest) (*batchv1.CronJob, error) {
	schedule := request.SchedulerProperties[spi.CronExpressionKey]
	if strings.TrimSpace(schedule) == "" {
		return nil, fmt.Errorf("%w: the property %s must be defined", spi.ErrInvalidArgument, spi.CronExpressionKey)
	}

	container, err := containers.Build(s.props, request)
	if err != nil {
		return nil, err
	}

	volumes, err := resolver.Volumes(request, s.props)
	if err != nil {
		return nil, err
	}

	return cronjob.CronJobTemplate(
		request.ScheduleName,
		s.props.Namespace,
		schedule,
		cronjob.WithLabels(map[string]string{TaskDefinitionLabel: request.Definition.Name}),
		cronjob.WithServiceAccountName(resolver.TaskServiceAccountName(request, s.props)),
		cronjob.WithRestartPolicy(s.props.RestartPolicy),
		cronjob.WithVolumes(resolver.FilterVolumes(volumes, container.VolumeMounts)),
		cronjob.WithContainers(container),
		cronjob.WithImagePullSecret(resolver.ImagePullSecret(request, s.props)),
	), nil
}

// Unschedule deletes the CronJob of a schedule. Jobs it spawned are garbage collected by the cluster.
func (s *KubernetesScheduler) Unschedule(ctx context.Context, scheduleName string) error {
	log := logf.FromContext(ctx).WithValues("schedule", scheduleName, "namespace", s.props.Namespace)

	job := &batchv1.CronJob{
		ObjectMeta: metav1.ObjectMeta{
			Name:      scheduleName,
			Namespace: s.props.Namespace,
		},
	}

	err := s.client.Delete(ctx, job, client.PropagationPolicy(metav1.DeletePropagationBackground))
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to unschedule %s: %w", scheduleName, spi.ErrScheduleNotFound)
	}

	if err != nil {
		return err
	}

	log.Info("Deleted schedule")

	return nil
}

// List returns all schedules of the namespace in the order reported by the cluster.
func (s *KubernetesScheduler) List(ctx context.Context) ([]spi.ScheduleInfo, error) {
	jobList := &batchv1.CronJobList{}
	if err := s.client.List(ctx, jobList, client.InNamespace(s.props.Namespace)); err != nil {
		return nil, err
	}

	infos := make([]spi.ScheduleInfo, 0, len(jobList.Items))
	for i := range jobList.Items {
		infos = append(infos, ScheduleInfo(&jobList.Items[i]))
	}

	return infos, nil
}

// ListByTaskDefinition returns the schedules of one task definition.
func (s *KubernetesScheduler) ListByTaskDefinition(
	ctx context.Context,
	taskDefinitionName string,
) ([]spi.ScheduleInfo, error) {
	infos, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]spi.ScheduleInfo, 0, len(infos))

	for _, info := range infos {
		if info.TaskDefinitionName == taskDefinitionName {
			result = append(result, info)
		}
	}

	return result, nil
}

// ScheduleInfo converts a CronJob into its listing record.
func ScheduleInfo(job *batchv1.CronJob) spi.ScheduleInfo {
	return spi.ScheduleInfo{
		ScheduleName:       job.Name,
		TaskDefinitionName: job.Labels[TaskDefinitionLabel],
		ScheduleProperties: map[string]string{
			spi.CronExpressionKey: job.Spec.Schedule,
		},
	}
}

// ExceptionMessageForField returns the status message of a cluster rejection
// if one of its causes refers to field. The second result is false if err
// carries no status or no cause matches.
func ExceptionMessageForField(err error, field string) (string, bool) {
	var status apierrors.APIStatus
	if !errors.As(err, &status) {
		return "", false
	}

	details := status.Status().Details
	if details == nil {
		return "", false
	}

	for _, cause := range details.Causes {
		if cause.Field == field {
			return status.Status().Message, true
		}
	}

	return "", false
}
