package containers

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	v1 "github.com/thegeeklab/scheduler-kubernetes/api/v1"
	"github.com/thegeeklab/scheduler-kubernetes/internal/resolver"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
	corev1 "k8s.io/api/core/v1"
)

// EnvSpringApplicationJSON holds all application properties in boot entry point style.
const EnvSpringApplicationJSON = "SPRING_APPLICATION_JSON"

// Build creates the task container for a schedule request.
//
// The resolved task environment variables always come first. Application
// properties are then encoded according to the entry point style:
//   - exec: one `--key=value` argument per property, followed by the request arguments.
//   - shell: one environment variable per property, no arguments.
//   - boot: a single SPRING_APPLICATION_JSON variable, followed by the request arguments.
func Build(props v1.SchedulerProperties, request spi.ScheduleRequest) (corev1.Container, error) {
	if strings.TrimSpace(request.ScheduleName) == "" {
		return corev1.Container{}, fmt.Errorf("%w: schedule request must contain a schedule name", spi.ErrInvalidArgument)
	}

	image, err := Image(request.Resource)
	if err != nil {
		return corev1.Container{}, err
	}

	mounts, err := resolver.VolumeMounts(request, props)
	if err != nil {
		return corev1.Container{}, err
	}

	taskEnv, err := resolver.TaskEnvironmentVariables(request, props)
	if err != nil {
		return corev1.Container{}, err
	}

	styleEnv, args, err := entryPointParameters(resolver.EntryPointStyle(request, props), request)
	if err != nil {
		return corev1.Container{}, err
	}

	return ContainerTemplate(
		request.ScheduleName,
		image,
		resolver.ImagePullPolicy(request, props),
		WithEnvVars(taskEnv),
		WithEnvVars(styleEnv),
		WithContainerArgs(args),
		WithVolumeMounts(mounts),
	), nil
}

// Image returns the scheme specific part of an image resource URI,
// e.g. `springcloud/app:latest` for `docker:springcloud/app:latest`.
// A resource without scheme is returned unchanged.
func Image(resource string) (string, error) {
	u, err := url.Parse(resource)
	if err != nil {
		return "", fmt.Errorf("%w: unable to get image name from %q: %w", spi.ErrInvalidArgument, resource, err)
	}

	image := resource

	switch {
	case u.Scheme != "" && u.Opaque != "":
		image = u.Opaque
	case u.Scheme != "":
		image = strings.TrimPrefix(strings.TrimPrefix(resource, u.Scheme+":"), "//")
	}

	if image == "" {
		return "", fmt.Errorf("%w: unable to get image name from %q", spi.ErrInvalidArgument, resource)
	}

	return image, nil
}

func entryPointParameters(
	style v1.EntryPointStyle,
	request spi.ScheduleRequest,
) ([]corev1.EnvVar, []string, error) {
	properties := request.Definition.Properties

	switch style {
	case v1.EntryPointStyle_SHELL:
		return shellEnvVars(properties), nil, nil
	case v1.EntryPointStyle_BOOT:
		data, err := json.Marshal(properties)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: unable to create %s: %w", spi.ErrIllegalState, EnvSpringApplicationJSON, err)
		}

		env := []corev1.EnvVar{{Name: EnvSpringApplicationJSON, Value: string(data)}}

		return env, request.CommandLineArguments, nil
	default:
		return nil, execArgs(properties, request.CommandLineArguments), nil
	}
}

func execArgs(properties spi.Properties, commandLineArguments []string) []string {
	args := make([]string, 0, len(properties)+len(commandLineArguments))
	for _, prop := range properties {
		args = append(args, fmt.Sprintf("--%s=%s", prop.Key, prop.Value))
	}

	return append(args, commandLineArguments...)
}

func shellEnvVars(properties spi.Properties) []corev1.EnvVar {
	env := make([]corev1.EnvVar, 0, len(properties))
	for _, prop := range properties {
		env = append(env, corev1.EnvVar{
			Name:  strings.ToUpper(strings.ReplaceAll(prop.Key, ".", "_")),
			Value: prop.Value,
		})
	}

	return env
}

// DuplicateEnvNames returns the environment variable names declared more than
// once in c, in order of their second declaration.
func DuplicateEnvNames(c corev1.Container) []string {
	seen := make(map[string]int, len(c.Env))

	var duplicates []string

	for _, env := range c.Env {
		seen[env.Name]++
		if seen[env.Name] == 2 {
			duplicates = append(duplicates, env.Name)
		}
	}

	return duplicates
}
