package util

import (
	"errors"
	"fmt"
	"os"
)

var ErrEnvVarNotDefined = errors.New("environment variable not defined")

func ParseEnv(envVariable string) (string, error) {
	if value, isSet := os.LookupEnv(envVariable); isSet {
		return value, nil
	}

	return "", fmt.Errorf("%w: %s", ErrEnvVarNotDefined, envVariable)
}

// ParseEnvOrDefault returns the value of envVariable, or fallback if it is unset or empty.
func ParseEnvOrDefault(envVariable, fallback string) string {
	if value, err := ParseEnv(envVariable); err == nil && value != "" {
		return value
	}

	return fallback
}
