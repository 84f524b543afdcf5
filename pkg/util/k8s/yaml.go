package k8s

import (
	"strings"

	"sigs.k8s.io/yaml"
)

// ParseNamedList decodes a YAML list fragment, e.g. a volume or volume mount
// declaration passed as a property value, into typed records. Blank input
// yields no records.
func ParseNamedList[T any](raw string) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var items []T
	if err := yaml.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	return items, nil
}
