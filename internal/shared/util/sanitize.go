package util

import (
	"errors"
	"strings"
)

// maxLogNameLen caps filenames in log fields; uploads routinely arrive with
// very long browser-generated names.
const maxLogNameLen = 128

// SanitizeFileName normalizes an uploaded resume filename for logging.
// Path separators and control characters become underscores, traversal
// patterns are rejected, and overlong names are truncated.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if len(s) > maxLogNameLen {
		s = s[:maxLogNameLen]
	}
	return s, nil
}
