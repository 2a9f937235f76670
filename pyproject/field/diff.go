package field

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v2"
)

// Render formats a normalized value as YAML, with sets rendered as sorted lists.
func Render(value interface{}) string {
	b, err := yaml.Marshal(Sorted(value))
	if err != nil {
		return fmt.Sprintf("%v\n", value)
	}
	return string(b)
}

// Diff renders a line diff between two normalized values. Lines only in the first value are prefixed with
// "-", lines only in the second with "+" and shared lines with a space.
func Diff(a, b interface{}) string {
	dmp := diffmatchpatch.New()
	left, right, lines := dmp.DiffLinesToChars(Render(a), Render(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(left, right, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + " " + line)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
