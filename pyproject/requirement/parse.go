package requirement

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/anchore/check-pyproject/pyproject/specifier"
)

var ErrInvalidRequirement = errors.New("invalid requirement")

var (
	namePattern      = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)`)
	urlMarkerPattern = regexp.MustCompile(`\s+;`)
)

// Parse reads a standardized requirement string:
//
//	name [ "[" extras "]" ] ( specifiers | "(" specifiers ")" | "@" url ) [ ";" marker ]
func Parse(raw string) (Requirement, error) {
	rest := strings.TrimSpace(raw)

	name := namePattern.FindString(rest)
	if name == "" {
		return Requirement{}, fmt.Errorf("%w: %q: missing package name", ErrInvalidRequirement, raw)
	}
	rest = strings.TrimSpace(rest[len(name):])

	var extras []string
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Requirement{}, fmt.Errorf("%w: %q: unterminated extras", ErrInvalidRequirement, raw)
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				extras = append(extras, extra)
			}
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	var url, marker string
	var specs specifier.Set

	if strings.HasPrefix(rest, "@") {
		rest = strings.TrimSpace(rest[1:])
		if loc := urlMarkerPattern.FindStringIndex(rest); loc != nil {
			url, marker = rest[:loc[0]], rest[loc[1]:]
		} else {
			url = rest
		}
		if url == "" {
			return Requirement{}, fmt.Errorf("%w: %q: missing url", ErrInvalidRequirement, raw)
		}
	} else {
		specText := rest
		if idx := strings.IndexByte(rest, ';'); idx >= 0 {
			specText, marker = rest[:idx], rest[idx+1:]
		}
		specText = strings.TrimSpace(specText)
		if strings.HasPrefix(specText, "(") && strings.HasSuffix(specText, ")") {
			specText = specText[1 : len(specText)-1]
		}
		var err error
		if specs, err = specifier.Parse(specText); err != nil {
			return Requirement{}, fmt.Errorf("%w: %q: %v", ErrInvalidRequirement, raw, err)
		}
	}

	r, err := New(name, extras, specs, url, marker)
	if err != nil {
		return Requirement{}, fmt.Errorf("%w: %q: %v", ErrInvalidRequirement, raw, err)
	}
	return r, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests.
func MustParse(raw string) Requirement {
	r, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return r
}
