// Package resolver resolves the effective task settings of a schedule request.
// A value set in the request's scheduler properties always wins over the
// process-wide default in v1.SchedulerProperties.
package resolver

import (
	"fmt"
	"strings"

	v1 "github.com/thegeeklab/scheduler-kubernetes/api/v1"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/util"
	corev1 "k8s.io/api/core/v1"
)

func schedulerProperty(request spi.ScheduleRequest, key string) string {
	return strings.TrimSpace(request.SchedulerProperties[key])
}

// ImagePullPolicy returns the pull policy of the task container.
func ImagePullPolicy(request spi.ScheduleRequest, props v1.SchedulerProperties) corev1.PullPolicy {
	if value := schedulerProperty(request, v1.PropertyImagePullPolicy); value != "" {
		return v1.ParseImagePullPolicy(value)
	}

	return props.ImagePullPolicy
}

// EntryPointStyle returns how application properties are passed to the task container.
func EntryPointStyle(request spi.ScheduleRequest, props v1.SchedulerProperties) v1.EntryPointStyle {
	if value := schedulerProperty(request, v1.PropertyEntryPointStyle); value != "" {
		return v1.ParseEntryPointStyle(value)
	}

	return props.EntryPointStyle
}

// ImagePullSecret returns the image pull secret name, which may be empty.
func ImagePullSecret(request spi.ScheduleRequest, props v1.SchedulerProperties) string {
	if value := schedulerProperty(request, v1.PropertyImagePullSecret); value != "" {
		return value
	}

	return props.ImagePullSecret
}

// TaskServiceAccountName returns the service account the task pods run as.
func TaskServiceAccountName(request spi.ScheduleRequest, props v1.SchedulerProperties) string {
	if value := schedulerProperty(request, v1.PropertyTaskServiceAccountName); value != "" {
		return value
	}

	return props.TaskServiceAccountName
}

// TaskEnvironmentVariables merges the default environment variable declarations
// with the ones of the request. Later declarations overwrite earlier ones by
// name, so request variables override defaults. A variable keeps the position
// of its first declaration.
func TaskEnvironmentVariables(request spi.ScheduleRequest, props v1.SchedulerProperties) ([]corev1.EnvVar, error) {
	env := &envVars{values: map[string]string{}}

	for _, declaration := range props.EnvironmentVariables {
		if err := env.parse(declaration); err != nil {
			return nil, err
		}
	}

	if err := env.parse(request.SchedulerProperties[v1.PropertyEnvironmentVariables]); err != nil {
		return nil, err
	}

	return env.list(), nil
}

type envVars struct {
	names  []string
	values map[string]string
}

func (e *envVars) parse(declaration string) error {
	if declaration == "" {
		return nil
	}

	for _, token := range util.ParseNestedCommaDelimited(declaration) {
		if token == "" {
			continue
		}

		name, value, ok := strings.Cut(token, "=")
		if !ok {
			return fmt.Errorf("%w: invalid environment variable declared: %s", spi.ErrInvalidArgument, token)
		}

		e.set(name, value)
	}

	return nil
}

func (e *envVars) set(name, value string) {
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}

	e.values[name] = value
}

func (e *envVars) list() []corev1.EnvVar {
	result := make([]corev1.EnvVar, 0, len(e.names))
	for _, name := range e.names {
		result = append(result, corev1.EnvVar{Name: name, Value: e.values[name]})
	}

	return result
}
