package requirement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/anchore/check-pyproject/pyproject/specifier"
)

// Backend is a version control system poetry can install a dependency from.
type Backend string

const (
	Git        Backend = "git"
	Mercurial  Backend = "hg"
	Subversion Backend = "svn"
	Bazaar     Backend = "bzr"
)

// backends is in precedence order: when a dependency names more than one backend the first one wins.
var backends = []Backend{Git, Mercurial, Subversion, Bazaar}

// pythonKey is the pseudo-dependency poetry uses for the supported python versions.
const pythonKey = "python"

// markerExcludedKeys are dependency table keys that never turn into "key == value" marker clauses.
var markerExcludedKeys = map[string]struct{}{
	"version":  {},
	"python":   {},
	"extras":   {},
	"url":      {},
	"platform": {},
	"source":   {},
	"optional": {},
	"markers":  {},

	"allow-prereleases": {},
	"develop":           {},
	"path":              {},
	"rev":               {},
	"branch":            {},
	"tag":               {},
	"subdirectory":      {},
	"git":               {},
	"hg":                {},
	"svn":               {},
	"bzr":               {},
}

// UnparsableError describes a poetry dependency entry that could not be converted to a requirement.
type UnparsableError struct {
	Name  string
	Value interface{}
	Err   error
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("unable to convert dependency %q (%v): %v", e.Name, e.Value, e.Err)
}

func (e *UnparsableError) Unwrap() error {
	return e.Err
}

// Dependency is a classified poetry dependency entry. Each variant knows how to resolve itself into
// canonical requirements for a given package name.
type Dependency interface {
	Requirements(name string) ([]Requirement, error)
}

var (
	_ Dependency = (*Simple)(nil)
	_ Dependency = (*Conditional)(nil)
	_ Dependency = (*VCS)(nil)
	_ Dependency = (*Path)(nil)
	_ Dependency = (*URL)(nil)
	_ Dependency = (*Versioned)(nil)
	_ Dependency = (*Bare)(nil)
)

// Simple is a bare constraint string, e.g. `requests = "^2.31"`.
type Simple struct {
	Constraint string
}

// Conditional is a list of alternatives, typically one per platform or python version.
type Conditional struct {
	Variants []Dependency
}

// VCS is a dependency installed from a version control repository.
type VCS struct {
	Backend      Backend
	URL          string
	Rev          string
	Branch       string
	Tag          string
	Subdirectory string
}

// Path is a dependency installed from a local directory or file.
type Path struct {
	Path string
}

// URL is a dependency installed from a direct URL.
type URL struct {
	URL     string
	Markers Markers
}

// Versioned is a table with a version constraint and optional extras and markers.
type Versioned struct {
	Constraint string
	Extras     []string
	Markers    Markers
}

// Bare is a table with neither a version nor a source; only markers apply.
type Bare struct {
	Markers Markers
}

// Markers are the environment conditions attached to a poetry dependency table.
type Markers struct {
	Python   string
	Platform string
	Extra    map[string]string
	Raw      string
}

// Classify inspects a raw poetry dependency value once and returns the matching variant. For lists, the
// variants that could be classified are returned together with an error describing the ones that could not.
func Classify(value interface{}) (Dependency, error) {
	switch v := value.(type) {
	case string:
		return Simple{Constraint: v}, nil
	case map[string]interface{}:
		return classifyTable(v)
	case []map[string]interface{}:
		items := make([]interface{}, 0, len(v))
		for _, item := range v {
			items = append(items, item)
		}
		return classifyList(items)
	case []interface{}:
		return classifyList(v)
	default:
		return nil, fmt.Errorf("unsupported dependency value type %T", value)
	}
}

func classifyList(items []interface{}) (Dependency, error) {
	var errs error
	var dep Conditional
	for idx, item := range items {
		variant, err := Classify(item)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("variant %d: %w", idx, err))
			continue
		}
		dep.Variants = append(dep.Variants, variant)
	}
	return dep, errs
}

func classifyTable(table map[string]interface{}) (Dependency, error) {
	for _, backend := range backends {
		if _, ok := table[string(backend)]; !ok {
			continue
		}
		url, err := stringValue(table, string(backend))
		if err != nil {
			return nil, err
		}
		dep := VCS{Backend: backend, URL: url}
		for key, dest := range map[string]*string{
			"rev":          &dep.Rev,
			"branch":       &dep.Branch,
			"tag":          &dep.Tag,
			"subdirectory": &dep.Subdirectory,
		} {
			if *dest, err = stringValue(table, key); err != nil {
				return nil, err
			}
		}
		return dep, nil
	}

	if _, ok := table["path"]; ok {
		path, err := stringValue(table, "path")
		if err != nil {
			return nil, err
		}
		return Path{Path: path}, nil
	}

	markers, err := classifyMarkers(table)
	if err != nil {
		return nil, err
	}

	if _, ok := table["version"]; ok {
		constraint, err := stringValue(table, "version")
		if err != nil {
			return nil, err
		}
		extras, err := stringList(table, "extras")
		if err != nil {
			return nil, err
		}
		return Versioned{Constraint: constraint, Extras: extras, Markers: markers}, nil
	}

	if _, ok := table["url"]; ok {
		url, err := stringValue(table, "url")
		if err != nil {
			return nil, err
		}
		return URL{URL: url, Markers: markers}, nil
	}

	return Bare{Markers: markers}, nil
}

func classifyMarkers(table map[string]interface{}) (Markers, error) {
	var m Markers
	var err error
	if m.Python, err = stringValue(table, "python"); err != nil {
		return Markers{}, err
	}
	if m.Platform, err = stringValue(table, "platform"); err != nil {
		return Markers{}, err
	}
	if m.Raw, err = stringValue(table, "markers"); err != nil {
		return Markers{}, err
	}
	for key, value := range table {
		if _, excluded := markerExcludedKeys[key]; excluded {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]string)
		}
		m.Extra[key] = fmt.Sprint(value)
	}
	return m, nil
}

func stringValue(table map[string]interface{}, key string) (string, error) {
	value, ok := table[key]
	if !ok {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T", key, value)
	}
	return s, nil
}

func stringList(table map[string]interface{}, key string) ([]string, error) {
	value, ok := table[key]
	if !ok {
		return nil, nil
	}
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%q entries must be strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return []string{v}, nil
	default:
		return nil, fmt.Errorf("%q must be a list of strings, got %T", key, value)
	}
}

func (d Simple) Requirements(name string) ([]Requirement, error) {
	specs, err := specifier.TranslateSet(d.Constraint)
	if err != nil {
		return nil, err
	}
	r, err := New(name, nil, specs, "", "")
	if err != nil {
		return nil, err
	}
	return []Requirement{r}, nil
}

func (d Conditional) Requirements(name string) ([]Requirement, error) {
	var errs error
	var out []Requirement
	for idx, variant := range d.Variants {
		reqs, err := variant.Requirements(name)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("variant %d: %w", idx, err))
			continue
		}
		out = append(out, reqs...)
	}
	return out, errs
}

// Locator renders the direct reference for the repository, e.g. "git+https://github.com/org/repo.git@v1.0".
func (d VCS) Locator() string {
	url := d.URL
	if strings.HasPrefix(url, "git@") {
		url = "https://" + strings.TrimPrefix(url, "git@")
	}

	locator := string(d.Backend) + "+" + url

	switch d.Backend {
	case Git:
		switch {
		case d.Rev != "":
			locator += "@" + d.Rev
		case d.Tag != "":
			locator += "@" + d.Tag
		case d.Branch != "":
			locator += "#" + d.Branch
		}
	default:
		for _, ref := range []string{d.Rev, d.Branch, d.Tag} {
			if ref != "" {
				locator += "@" + ref
				break
			}
		}
	}

	if d.Subdirectory != "" {
		locator += "/" + d.Subdirectory
	}
	return locator
}

func (d VCS) Requirements(name string) ([]Requirement, error) {
	if d.URL == "" {
		return nil, fmt.Errorf("empty %s url", d.Backend)
	}
	r, err := New(name, nil, specifier.Set{}, d.Locator(), "")
	if err != nil {
		return nil, err
	}
	return []Requirement{r}, nil
}

func (d Path) Requirements(name string) ([]Requirement, error) {
	if d.Path == "" {
		return nil, fmt.Errorf("empty path")
	}
	r, err := New(name, nil, specifier.Set{}, d.Path, "")
	if err != nil {
		return nil, err
	}
	return []Requirement{r}, nil
}

func (d URL) Requirements(name string) ([]Requirement, error) {
	if d.URL == "" {
		return nil, fmt.Errorf("empty url")
	}
	marker, err := d.Markers.String()
	if err != nil {
		return nil, err
	}
	r, err := New(name, nil, specifier.Set{}, d.URL, marker)
	if err != nil {
		return nil, err
	}
	return []Requirement{r}, nil
}

func (d Versioned) Requirements(name string) ([]Requirement, error) {
	specs, err := specifier.TranslateSet(d.Constraint)
	if err != nil {
		return nil, err
	}
	marker, err := d.Markers.String()
	if err != nil {
		return nil, err
	}
	r, err := New(name, d.Extras, specs, "", marker)
	if err != nil {
		return nil, err
	}
	return []Requirement{r}, nil
}

func (d Bare) Requirements(name string) ([]Requirement, error) {
	marker, err := d.Markers.String()
	if err != nil {
		return nil, err
	}
	r, err := New(name, nil, specifier.Set{}, "", marker)
	if err != nil {
		return nil, err
	}
	return []Requirement{r}, nil
}

// String renders the marker clauses in a fixed order: python, platform, remaining keys (sorted), then any
// verbatim markers. The clauses are joined with "and".
func (m Markers) String() (string, error) {
	var clauses []string

	if m.Python != "" {
		clause, err := pythonMarker(m.Python)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}

	if m.Platform != "" {
		clauses = append(clauses, fmt.Sprintf("sys_platform=='%s'", m.Platform))
	}

	keys := make([]string, 0, len(m.Extra))
	for key := range m.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		clauses = append(clauses, fmt.Sprintf("%s=='%s'", key, m.Extra[key]))
	}

	if strings.TrimSpace(m.Raw) != "" {
		clauses = append(clauses, m.Raw)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return CanonicalMarker(joinMarkers(clauses))
}

// pythonMarker turns a poetry python constraint into python_version clauses. Alternatives separated by "||"
// become "or" clauses.
func pythonMarker(constraint string) (string, error) {
	var alternatives []string
	for _, alternative := range strings.Split(constraint, "||") {
		translated, err := specifier.Translate(alternative, specifier.WithQuotes(), specifier.WithoutUpperBound())
		if err != nil {
			return "", err
		}
		if translated == "" {
			continue
		}
		var parts []string
		for _, predicate := range strings.Split(translated, ",") {
			parts = append(parts, "python_version"+predicate)
		}
		alternatives = append(alternatives, strings.Join(parts, " and "))
	}
	if len(alternatives) == 0 {
		return "", fmt.Errorf("empty python constraint")
	}
	return strings.Join(alternatives, " or "), nil
}

// FromPoetry converts a poetry dependency table (e.g. [tool.poetry.dependencies]) into canonical
// requirements. The "python" entry is skipped. Entries that cannot be converted contribute no requirement
// and are returned as *UnparsableError values within a multierror.
func FromPoetry(table map[string]interface{}) (*Set, error) {
	out := NewSet()
	var errs error

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == pythonKey {
			continue
		}
		value := table[name]

		dep, err := Classify(value)
		if err != nil {
			errs = multierror.Append(errs, &UnparsableError{Name: name, Value: value, Err: err})
		}
		if dep == nil {
			continue
		}

		reqs, err := dep.Requirements(name)
		if err != nil {
			errs = multierror.Append(errs, &UnparsableError{Name: name, Value: value, Err: err})
		}
		out.Add(reqs...)
	}

	return out, errs
}

// FromProject parses a list of standardized requirement strings (e.g. [project] dependencies).
func FromProject(values []string) (*Set, error) {
	out := NewSet()
	var errs error
	for _, value := range values {
		r, err := Parse(value)
		if err != nil {
			errs = multierror.Append(errs, &UnparsableError{Name: value, Value: value, Err: err})
			continue
		}
		out.Add(r)
	}
	return out, errs
}
