package app

import (
	"fmt"
	"strings"
	"unicode"
)

// BytesToHuman renders a byte count with binary (1024-based) units and
// one decimal place, picking the largest unit where the value stays
// below 1024.
func BytesToHuman(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", value)
}

// SanitizeFilename lowercases a name and replaces characters that are
// unsafe or awkward in file names with underscores.
func SanitizeFilename(name string) string {
	const invalid = `<>:"/\|?*`
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if strings.ContainsRune(invalid, r) || unicode.IsSpace(r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
