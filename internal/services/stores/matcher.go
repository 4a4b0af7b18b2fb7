package stores

import (
	"regexp"
	"strings"

	"github.com/ternarybob/salecaption/internal/models"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]`)

// NormalizeName uppercases s and strips everything but A-Z and 0-9.
func NormalizeName(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(s), "")
}

// MatchStore returns the key of the first store whose display name and the detected
// name contain one another after normalization.
func MatchStore(catalog *models.Catalog, detected string) (string, bool) {
	input := NormalizeName(detected)
	if input == "" || catalog == nil {
		return "", false
	}
	for _, s := range catalog.Stores {
		name := NormalizeName(s.DisplayName())
		if name == "" {
			continue
		}
		if strings.Contains(input, name) || strings.Contains(name, input) {
			return s.Key, true
		}
	}
	return "", false
}
