package main

import (
	"fmt"
	"strings"

	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/util/k8s"
)

type scheduleFlags struct {
	name                 string
	taskDefinition       string
	resource             string
	cron                 string
	properties           []string
	schedulerProperties  []string
	deploymentProperties []string
}

// request builds the schedule request of the schedule command. Without an
// explicit name the task definition name is turned into a valid one.
func (f *scheduleFlags) request(args []string) (spi.ScheduleRequest, error) {
	name := f.name
	if name == "" {
		sanitized, err := k8s.SanitizeName(f.taskDefinition)
		if err != nil {
			return spi.ScheduleRequest{}, err
		}

		name = sanitized
	}

	if err := k8s.ValidateScheduleName(name); err != nil {
		return spi.ScheduleRequest{}, err
	}

	properties := spi.Properties{}

	for _, kv := range f.properties {
		key, value, err := splitKeyValue(kv)
		if err != nil {
			return spi.ScheduleRequest{}, err
		}

		properties = properties.Set(key, value)
	}

	schedulerProperties, err := keyValueMap(f.schedulerProperties)
	if err != nil {
		return spi.ScheduleRequest{}, err
	}

	schedulerProperties[spi.CronExpressionKey] = f.cron

	deploymentProperties, err := keyValueMap(f.deploymentProperties)
	if err != nil {
		return spi.ScheduleRequest{}, err
	}

	return spi.ScheduleRequest{
		Definition: spi.AppDefinition{
			Name:       f.taskDefinition,
			Properties: properties,
		},
		SchedulerProperties:  schedulerProperties,
		DeploymentProperties: deploymentProperties,
		CommandLineArguments: args,
		ScheduleName:         name,
		Resource:             f.resource,
	}, nil
}

func keyValueMap(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, kv := range pairs {
		key, value, err := splitKeyValue(kv)
		if err != nil {
			return nil, err
		}

		result[key] = value
	}

	return result, nil
}

func splitKeyValue(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("%w: expected key=value, got %q", spi.ErrInvalidArgument, kv)
	}

	return strings.TrimSpace(key), value, nil
}
