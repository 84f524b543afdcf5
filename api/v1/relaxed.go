package v1

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
)

// relaxedName lower-cases s and drops separator characters, so that
// "IF_NOT_PRESENT", "if-not-present" and "IfNotPresent" compare equal.
func relaxedName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.', ' ':
			return -1
		}

		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

func relaxedEqual(a, b string) bool {
	return relaxedName(a) == relaxedName(b)
}

// ParseImagePullPolicy maps s to a pull policy, falling back to IfNotPresent.
func ParseImagePullPolicy(s string) corev1.PullPolicy {
	for _, candidate := range []corev1.PullPolicy{
		corev1.PullAlways,
		corev1.PullIfNotPresent,
		corev1.PullNever,
	} {
		if relaxedEqual(string(candidate), s) {
			return candidate
		}
	}

	return corev1.PullIfNotPresent
}

// ParseEntryPointStyle maps s to an entry point style, falling back to exec.
func ParseEntryPointStyle(s string) EntryPointStyle {
	for _, candidate := range []EntryPointStyle{
		EntryPointStyle_EXEC,
		EntryPointStyle_SHELL,
		EntryPointStyle_BOOT,
	} {
		if relaxedEqual(string(candidate), s) {
			return candidate
		}
	}

	return EntryPointStyle_EXEC
}

// ParseRestartPolicy maps s to a restart policy, falling back to Never.
// `Always` is not a valid restart policy for jobs and is not accepted.
func ParseRestartPolicy(s string) corev1.RestartPolicy {
	if relaxedEqual(string(corev1.RestartPolicyOnFailure), s) {
		return corev1.RestartPolicyOnFailure
	}

	return corev1.RestartPolicyNever
}
