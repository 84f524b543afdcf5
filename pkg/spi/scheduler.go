// Package spi holds the scheduler service-provider contract shared by all
// scheduler implementations: the request and info records, property keys and
// the error taxonomy.
package spi

import "context"

// CronExpressionKey is the scheduler property holding the cron expression of a schedule.
const CronExpressionKey = "spring.cloud.scheduler.cron.expression"

// Scheduler creates, removes and lists schedules.
type Scheduler interface {
	// Schedule submits the request as a new schedule.
	Schedule(ctx context.Context, request ScheduleRequest) error

	// Unschedule removes the schedule with the given name.
	Unschedule(ctx context.Context, scheduleName string) error

	// List returns all schedules.
	List(ctx context.Context) ([]ScheduleInfo, error)

	// ListByTaskDefinition returns the schedules of a single task definition.
	ListByTaskDefinition(ctx context.Context, taskDefinitionName string) ([]ScheduleInfo, error)
}

// AppDefinition identifies the task and carries its application properties.
type AppDefinition struct {
	Name       string     `json:"name"`
	Properties Properties `json:"properties,omitempty"`
}

// ScheduleRequest describes a task that should run periodically.
type ScheduleRequest struct {
	Definition           AppDefinition     `json:"definition"`
	SchedulerProperties  map[string]string `json:"schedulerProperties,omitempty"`
	DeploymentProperties map[string]string `json:"deploymentProperties,omitempty"`
	CommandLineArguments []string          `json:"commandLineArguments,omitempty"`
	ScheduleName         string            `json:"scheduleName"`

	// Resource is the image reference URI, e.g. `docker:springcloud/app:latest`.
	Resource string `json:"resource"`
}

// ScheduleInfo is the listing record of an existing schedule.
type ScheduleInfo struct {
	ScheduleName       string            `json:"scheduleName"`
	TaskDefinitionName string            `json:"taskDefinitionName"`
	ScheduleProperties map[string]string `json:"scheduleProperties"`
}
