package requirement

import (
	"regexp"
	"strings"
)

var nameSeparatorPattern = regexp.MustCompile(`[-_.]+`)

// CanonicalName lowercases a project name and collapses runs of "-", "_" and "." into a single "-".
func CanonicalName(name string) string {
	return nameSeparatorPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
