package k8s

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

var (
	ErrInvalidName = errors.New("invalid name")

	invalidChars       = regexp.MustCompile(`[^a-z0-9-]`)
	consecutiveHyphens = regexp.MustCompile(`-+`)
)

// ValidateScheduleName checks that name is a valid DNS-1123 label, the syntax
// required for CronJob names: lowercase alphanumerics and hyphens, starting and
// ending with an alphanumeric character, at most 63 characters.
func ValidateScheduleName(name string) error {
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidName, name, strings.Join(errs, "; "))
	}

	return nil
}

// SanitizeName turns an arbitrary string, e.g. a task definition name, into a
// valid DNS-1123 label.
// - Converts to lowercase.
// - Replaces every character other than [a-z0-9-] with a hyphen.
// - Collapses consecutive hyphens and trims them from both ends.
// - Truncates to 63 characters.
// Returns an error if the input contains no alphanumeric characters.
func SanitizeName(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	name = strings.ToLower(name)
	name = invalidChars.ReplaceAllString(name, "-")
	name = consecutiveHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if name == "" {
		return "", fmt.Errorf("name contains only invalid characters: %w", ErrInvalidName)
	}

	if len(name) > validation.DNS1123LabelMaxLength {
		name = strings.TrimRight(name[:validation.DNS1123LabelMaxLength], "-")
	}

	return name, nil
}
