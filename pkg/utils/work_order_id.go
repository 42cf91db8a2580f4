package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateWorkOrderID creates a standardized, human-readable work order ID.
// Format: {operation}-{unitNameSlug}-{8charHexUUID}
//
// Example:
//   - Input: operation="refit", unitName="Atlas AS7-D"
//   - Output: "refit-atlas-as7-d-a3f8e2b1"
//
// The generated IDs are:
//   - Human-readable with a clear operation type
//   - Globally unique via UUID suffix
//   - Consistent across repair, refit and restore work orders
func GenerateWorkOrderID(operation, unitName string) string {
	return operation + "-" + slugify(unitName) + "-" + generateShortUUID()
}

// slugify lowers a unit name and collapses anything non-alphanumeric to
// single hyphens so the ID stays shell- and URL-safe.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
