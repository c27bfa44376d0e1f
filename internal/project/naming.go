package project

import (
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[^\w\s\-]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	underscoreRuns   = regexp.MustCompile(`_+`)
)

const maxProjectNameLength = 100

// SanitizeName normalizes a project name for use in directory and file names:
// special characters and whitespace become underscores, runs collapse, and the
// result is capped at 100 characters.
func SanitizeName(name string) string {
	sanitized := invalidNameChars.ReplaceAllString(name, "_")
	sanitized = whitespaceRuns.ReplaceAllString(sanitized, "_")
	sanitized = underscoreRuns.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_")
	if len(sanitized) > maxProjectNameLength {
		sanitized = strings.TrimRight(sanitized[:maxProjectNameLength], "_")
	}
	return sanitized
}
