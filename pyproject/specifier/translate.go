package specifier

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/anchore/check-pyproject/pyproject/version"
)

var ErrInvalidConstraint = errors.New("invalid poetry constraint")

var (
	// whitespace following an operator is dropped, e.g. ">= 1.2" becomes ">=1.2"
	operatorSpacePattern = regexp.MustCompile(`([\^~<>=!]+)\s+`)
	clauseSplitPattern   = regexp.MustCompile(`,\s*`)
	plainClausePattern   = regexp.MustCompile(`^(===|==|!=|~=|>=|<=|>|<|=)?(.+)$`)
)

type translateConfig struct {
	upperBound bool
	quotes     bool
}

type Option func(*translateConfig)

// WithoutUpperBound suppresses the upper bound generated for caret constraints ("^1.2.3" becomes ">=1.2.3").
func WithoutUpperBound() Option {
	return func(cfg *translateConfig) {
		cfg.upperBound = false
	}
}

// WithQuotes wraps every version in double quotes so the result can be embedded in an environment marker.
func WithQuotes() Option {
	return func(cfg *translateConfig) {
		cfg.quotes = true
	}
}

// Translate converts a poetry version constraint (caret, tilde, wildcard, inequality or a comma separated
// list of those) into a comma separated list of standardized predicates.
//
//	"^1.2.3"   => ">=1.2.3,<2.0.0"
//	"~1.2"     => ">=1.2.0,<1.3.0"
//	"1.2.*"    => ">=1.2.0,<1.3.0"
//	"*"        => ">=0.0.0"
//	">= 1.2"   => ">=1.2.0"
func Translate(value string, opts ...Option) (string, error) {
	cfg := translateConfig{upperBound: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	value = operatorSpacePattern.ReplaceAllString(strings.TrimSpace(value), "$1")

	var out []string
	for _, clause := range clauseSplitPattern.Split(value, -1) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		predicates, err := translateClause(clause, cfg)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidConstraint, clause, err)
		}
		out = append(out, predicates...)
	}

	if cfg.quotes {
		for idx, predicate := range out {
			out[idx] = quoteVersion(predicate)
		}
	}

	return strings.Join(out, ","), nil
}

// TranslateSet is Translate followed by Parse.
func TranslateSet(value string, opts ...Option) (Set, error) {
	translated, err := Translate(value, opts...)
	if err != nil {
		return Set{}, err
	}
	return Parse(translated)
}

func translateClause(clause string, cfg translateConfig) ([]string, error) {
	switch {
	case strings.HasPrefix(clause, "^"):
		return caret(clause[1:], cfg.upperBound)
	case strings.HasPrefix(clause, "~") && !strings.HasPrefix(clause, string(Compatible)):
		return tilde(clause[1:])
	case strings.Contains(clause, "*") && !startsWithOperator(clause):
		return wildcard(clause)
	default:
		return plain(clause)
	}
}

// caret allows updates that do not modify the left-most non-zero component.
func caret(spec string, upperBound bool) ([]string, error) {
	if _, err := version.Parse(spec); err != nil {
		return nil, err
	}
	lower := string(GTE) + version.FillToThreeParts(spec)
	if !upperBound {
		return []string{lower}, nil
	}
	upper, err := version.MaxVersion(spec)
	if err != nil {
		return nil, err
	}
	return []string{lower, string(LT) + version.FillToThreeParts(upper.String())}, nil
}

// tilde allows patch level updates, or minor level updates when only a major version is given.
func tilde(spec string) ([]string, error) {
	v, err := version.Parse(spec)
	if err != nil {
		return nil, err
	}
	upper := version.BumpMinor(v)
	if len(v.Release) == 1 {
		upper = version.BumpMajor(v)
	}
	return []string{
		string(GTE) + version.FillToThreeParts(spec),
		string(LT) + version.FillToThreeParts(upper.String()),
	}, nil
}

// wildcard allows the latest version where the wildcard is positioned: "*", "1.*" or "1.2.*".
func wildcard(spec string) ([]string, error) {
	if spec == "*" {
		return []string{string(GTE) + version.FillToThreeParts("0")}, nil
	}

	prefix := strings.TrimRight(strings.TrimRight(spec, "*"), ".")
	v, err := version.Parse(prefix)
	if err != nil {
		return nil, err
	}

	var upper version.Version
	switch len(v.Release) {
	case 1:
		upper = version.BumpMajor(v)
	case 2:
		upper = version.BumpMinor(v)
	default:
		return nil, fmt.Errorf("wildcard must follow a major or minor component: %q", spec)
	}

	return []string{
		string(GTE) + version.FillToThreeParts(prefix),
		string(LT) + version.FillToThreeParts(upper.String()),
	}, nil
}

// plain keeps the operator and pads the version. A bare version is an exact match.
func plain(spec string) ([]string, error) {
	match := plainClausePattern.FindStringSubmatch(spec)
	if match == nil {
		return nil, fmt.Errorf("unrecognized constraint %q", spec)
	}
	op, err := ParseOperator(match[1])
	if err != nil {
		return nil, err
	}

	ver := match[2]
	if !strings.Contains(ver, "*") && op != Arbitrary && op != Compatible {
		ver = version.FillToThreeParts(ver)
	}

	predicate := string(op) + ver
	if _, err := ParseSpecifier(predicate); err != nil {
		return nil, err
	}
	return []string{predicate}, nil
}

func startsWithOperator(clause string) bool {
	return strings.ContainsAny(clause[:1], "<>=!~")
}

func quoteVersion(predicate string) string {
	for _, op := range operators {
		if strings.HasPrefix(predicate, string(op)) {
			return fmt.Sprintf("%s%q", op, strings.TrimPrefix(predicate, string(op)))
		}
	}
	return predicate
}
