package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidVersion = errors.New("invalid version")

// versionPattern is the permissive PEP 440 pattern, accepting the spellings that normalize to a canonical version.
var versionPattern = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<pre_l>alpha|beta|preview|pre|rc|a|b|c)[-_.]?(?P<pre_n>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<post_n1>[0-9]+))|(?:[-_.]?(?P<post_l>post|rev|r)[-_.]?(?P<post_n2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?(?P<dev_l>dev)[-_.]?(?P<dev_n>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

// PreRelease is the pre-release segment of a version, e.g. "rc1".
type PreRelease struct {
	Label  string
	Number int
}

// Version is a parsed PEP 440 version. Only the release tuple takes part in arithmetic, the remaining
// segments are kept so a parsed value can be rendered back out.
type Version struct {
	Epoch   int
	Release []int
	Pre     *PreRelease
	Post    *int
	Dev     *int
	Local   string
}

// Parse reads a version string, normalizing alternate spellings (e.g. "1.0-alpha1" becomes "1.0a1").
func Parse(raw string) (Version, error) {
	match := versionPattern.FindStringSubmatch(raw)
	if match == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}

	groups := make(map[string]string)
	for i, name := range versionPattern.SubexpNames() {
		if i != 0 && name != "" {
			groups[name] = match[i]
		}
	}

	var v Version
	var err error

	if groups["epoch"] != "" {
		if v.Epoch, err = atoi(groups["epoch"], raw); err != nil {
			return Version{}, err
		}
	}

	for _, part := range strings.Split(groups["release"], ".") {
		n, err := atoi(part, raw)
		if err != nil {
			return Version{}, err
		}
		v.Release = append(v.Release, n)
	}

	if groups["pre"] != "" {
		n, err := optionalNumber(groups["pre_n"], raw)
		if err != nil {
			return Version{}, err
		}
		v.Pre = &PreRelease{Label: normalizePreLabel(groups["pre_l"]), Number: n}
	}

	if groups["post"] != "" {
		digits := groups["post_n1"]
		if digits == "" {
			digits = groups["post_n2"]
		}
		n, err := optionalNumber(digits, raw)
		if err != nil {
			return Version{}, err
		}
		v.Post = &n
	}

	if groups["dev"] != "" {
		n, err := optionalNumber(groups["dev_n"], raw)
		if err != nil {
			return Version{}, err
		}
		v.Dev = &n
	}

	if groups["local"] != "" {
		v.Local = strings.ToLower(strings.NewReplacer("-", ".", "_", ".").Replace(groups["local"]))
	}

	return v, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests and constants.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func atoi(digits, raw string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, raw, err)
	}
	return n, nil
}

func optionalNumber(digits, raw string) (int, error) {
	if digits == "" {
		return 0, nil
	}
	return atoi(digits, raw)
}

func normalizePreLabel(label string) string {
	switch strings.ToLower(label) {
	case "a", "alpha":
		return "a"
	case "b", "beta":
		return "b"
	default:
		// c, pre, preview and rc are all release candidates
		return "rc"
	}
}

func (v Version) component(idx int) int {
	if idx < len(v.Release) {
		return v.Release[idx]
	}
	return 0
}

// Major returns the first release component (0 when absent).
func (v Version) Major() int {
	return v.component(0)
}

// Minor returns the second release component (0 when absent).
func (v Version) Minor() int {
	return v.component(1)
}

// Patch returns the third release component (0 when absent).
func (v Version) Patch() int {
	return v.component(2)
}

func (v Version) String() string {
	var sb strings.Builder
	if v.Epoch > 0 {
		fmt.Fprintf(&sb, "%d!", v.Epoch)
	}
	for idx, part := range v.Release {
		if idx > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(part))
	}
	if v.Pre != nil {
		fmt.Fprintf(&sb, "%s%d", v.Pre.Label, v.Pre.Number)
	}
	if v.Post != nil {
		fmt.Fprintf(&sb, ".post%d", *v.Post)
	}
	if v.Dev != nil {
		fmt.Fprintf(&sb, ".dev%d", *v.Dev)
	}
	if v.Local != "" {
		sb.WriteString("+" + v.Local)
	}
	return sb.String()
}
