// Package config builds the process-wide scheduler properties.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	v1 "github.com/thegeeklab/scheduler-kubernetes/api/v1"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/util"
	"sigs.k8s.io/yaml"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	EnvImagePullPolicy        = "SCHEDULER_IMAGE_PULL_POLICY"
	EnvRestartPolicy          = "SCHEDULER_RESTART_POLICY"
	EnvEntryPointStyle        = "SCHEDULER_ENTRY_POINT_STYLE"
	EnvImagePullSecret        = "SCHEDULER_IMAGE_PULL_SECRET"
	EnvTaskServiceAccountName = "SCHEDULER_TASK_SERVICE_ACCOUNT_NAME"
	EnvEnvironmentVariables   = "SCHEDULER_ENVIRONMENT_VARIABLES"

	// DefaultEnvFile is loaded when Load is called without env files.
	DefaultEnvFile = ".env"

	environmentVariablesSeparator = ";"
)

// Load builds the scheduler properties from, in increasing priority, the
// optional YAML file at path and the environment. Env files are loaded into
// the environment first; they never override variables that are already set
// and missing env files are ignored. Unset values fall back to their defaults.
func Load(path string, envFiles ...string) (v1.SchedulerProperties, error) {
	props := v1.SchedulerProperties{}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return props, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, envFile, err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return props, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}

		if err := yaml.UnmarshalStrict(data, &props); err != nil {
			return props, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	}

	applyEnv(&props)
	normalize(&props)
	props.Default()

	return props, nil
}

func applyEnv(props *v1.SchedulerProperties) {
	if value := util.ParseEnvOrDefault(EnvImagePullPolicy, ""); value != "" {
		props.ImagePullPolicy = v1.ParseImagePullPolicy(value)
	}

	if value := util.ParseEnvOrDefault(EnvRestartPolicy, ""); value != "" {
		props.RestartPolicy = v1.ParseRestartPolicy(value)
	}

	if value := util.ParseEnvOrDefault(EnvEntryPointStyle, ""); value != "" {
		props.EntryPointStyle = v1.ParseEntryPointStyle(value)
	}

	props.Namespace = util.ParseEnvOrDefault(v1.EnvKubernetesNamespace, props.Namespace)
	props.ImagePullSecret = util.ParseEnvOrDefault(EnvImagePullSecret, props.ImagePullSecret)
	props.TaskServiceAccountName = util.ParseEnvOrDefault(EnvTaskServiceAccountName, props.TaskServiceAccountName)

	if value := util.ParseEnvOrDefault(EnvEnvironmentVariables, ""); value != "" {
		props.EnvironmentVariables = util.SplitAndTrimString(value, environmentVariablesSeparator)
	}
}

// normalize maps relaxed enum spellings from the config file onto their canonical values.
func normalize(props *v1.SchedulerProperties) {
	if props.ImagePullPolicy != "" {
		props.ImagePullPolicy = v1.ParseImagePullPolicy(string(props.ImagePullPolicy))
	}

	if props.RestartPolicy != "" {
		props.RestartPolicy = v1.ParseRestartPolicy(string(props.RestartPolicy))
	}

	if props.EntryPointStyle != "" {
		props.EntryPointStyle = v1.ParseEntryPointStyle(string(props.EntryPointStyle))
	}
}
