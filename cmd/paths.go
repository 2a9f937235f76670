package cmd

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v2"
)

// expandPaths resolves glob patterns (including "**") into the matching files. Plain paths and patterns without
// matches are kept as given so that a missing manifest is still reported as a problem.
func expandPaths(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		sort.Strings(matches)
		for _, match := range matches {
			add(match)
		}
	}
	return paths, nil
}
