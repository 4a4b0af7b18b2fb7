package models

import "strings"

// IsSentinel reports whether a model-supplied value means "nothing there":
// empty, "N/A" or "Not found", compared case-insensitively.
func IsSentinel(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "n/a", "not found":
		return true
	}
	return false
}
