package check

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/scylladb/go-set/strset"

	"github.com/anchore/check-pyproject/pyproject/field"
	"github.com/anchore/check-pyproject/pyproject/logger"
)

// ErrMissingTable is returned when the manifest lacks one of the tables being compared.
var ErrMissingTable = errors.New("missing table")

const (
	projectTable = "project"
	poetryTable  = "tool.poetry"
)

var (
	stringFields     = []string{"name", "description", "readme", "version", "scripts", "urls"}
	setFields        = []string{"keywords", "classifiers"}
	authorFields     = []string{"authors", "maintainers"}
	dependencyFields = []string{"dependencies"}
	groupFields      = []string{"optional-dependencies", "group"}
)

type fieldGroup struct {
	names     []string
	normalize field.Normalizer
}

var fieldGroups = []fieldGroup{
	{names: stringFields, normalize: field.String},
	{names: setFields, normalize: field.Set},
	{names: authorFields, normalize: field.Author},
}

// CheckedFields returns every field name compared between the two tables.
func CheckedFields() []string {
	var out []string
	for _, names := range [][]string{stringFields, setFields, authorFields, dependencyFields, groupFields} {
		out = append(out, names...)
	}
	return out
}

// Checker compares the [project] and [tool.poetry] tables of a decoded pyproject.toml document. It holds no
// mutable state, so a single Checker may be shared between goroutines.
type Checker struct {
	log logger.Logger
}

func NewChecker(log logger.Logger) Checker {
	return Checker{log: log}
}

// Check compares the two tables and returns the number of problems found. Diagnostics are written to the
// checker's logger. Check never panics: an unexpected failure is logged and counted as one more problem.
// A document missing either table cannot be compared; this is logged as an error and reported as 0 problems.
func (c Checker) Check(doc map[string]interface{}) (problems int) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("unexpected failure comparing [%s] and [%s]: %+v\n%s", projectTable, poetryTable, r, debug.Stack())
			problems++
		}
	}()

	project, poetry, err := tables(doc)
	if err != nil {
		c.log.Errorf("unable to compare [%s] and [%s]: %+v", projectTable, poetryTable, err)
		return 0
	}

	for _, group := range fieldGroups {
		for _, name := range group.names {
			problems += c.CompareField(group.normalize, name, project, poetry).Problems()
		}
	}

	problems += c.checkPythonVersion(project, poetry)

	for _, name := range dependencyFields {
		result := c.CompareField(field.Dependencies, name, project, poetry)
		if result.Problems() > 0 {
			problems += result.Problems()
			c.log.Debugf("project dependency value(s):\n%s", field.Render(project[name]))
			c.log.Debugf("poetry dependency value(s) formatted as requirements:\n%s", field.Render(result.Poetry))
		}
	}

	for _, group := range GroupNames(project, poetry) {
		problems += c.checkGroup(group, project, poetry)
	}

	c.report(project, poetry)

	return problems
}

// CompareField checks one identically named field for presence in both tables and, when present in both, for
// equality of the normalized values.
func (c Checker) CompareField(normalize field.Normalizer, name string, project, poetry map[string]interface{}) FieldResult {
	projectValue, inProject := project[name]
	poetryValue, inPoetry := poetry[name]

	result := FieldResult{
		Field:     name,
		InProject: inProject,
		InPoetry:  inPoetry,
	}

	switch {
	case !inProject && !inPoetry:
		c.log.Warnf("%q not found in [%s] nor in [%s]", name, projectTable, poetryTable)
		result.Outcome = Absent
		return result
	case !inPoetry:
		c.log.Warnf("[%s].%s: %q, but %q not in [%s].", projectTable, name, fmt.Sprint(projectValue), name, poetryTable)
		result.Outcome = ProjectOnly
		return result
	case !inProject:
		c.log.Warnf("[%s].%s: %q, but %q not in [%s].", poetryTable, name, fmt.Sprint(poetryValue), name, projectTable)
		result.Outcome = PoetryOnly
		return result
	}

	c.log.Infof("%q found in both [%s] and [%s]", name, projectTable, poetryTable)

	var ok bool
	if result.Project, ok = c.normalize(normalize, projectTable, name, projectValue); !ok {
		result.Outcome = Invalid
		return result
	}
	if result.Poetry, ok = c.normalize(normalize, poetryTable, name, poetryValue); !ok {
		result.Outcome = Invalid
		return result
	}

	result.Equal = field.Equal(result.Project, result.Poetry)
	if result.Equal {
		result.Outcome = Match
		return result
	}

	result.Outcome = Mismatch
	c.log.Errorf("Values do not match between %s.%s: %q and %s.%s: %q",
		projectTable, name, fmt.Sprint(projectValue), poetryTable, name, fmt.Sprint(poetryValue))
	c.log.Errorf("%s.%s (-) vs %s.%s (+):\n%s", projectTable, name, poetryTable, name, field.Diff(result.Project, result.Poetry))
	return result
}

// normalize applies the normalizer, logging failures. Partial results are kept with a warning per dropped
// entry; a value that could not be normalized at all is an error.
func (c Checker) normalize(normalize field.Normalizer, table, name string, value interface{}) (interface{}, bool) {
	normalized, err := normalize(value)
	if err == nil {
		return normalized, true
	}
	if normalized == nil {
		c.log.Errorf("unable to read %s.%s: %+v", table, name, err)
		return nil, false
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			c.log.Warnf("%s.%s: %+v", table, name, e)
		}
	} else {
		c.log.Warnf("%s.%s: %+v", table, name, err)
	}
	return normalized, true
}

// GroupNames returns the union of the optional dependency group names of both tables, sorted.
func GroupNames(project, poetry map[string]interface{}) []string {
	names := strset.New()
	if groups, ok := project["optional-dependencies"].(map[string]interface{}); ok {
		for name := range groups {
			names.Add(name)
		}
	}
	if groups, ok := poetry["group"].(map[string]interface{}); ok {
		for name := range groups {
			names.Add(name)
		}
	}
	out := names.List()
	sort.Strings(out)
	return out
}

// checkGroup compares project.optional-dependencies.<group> with tool.poetry.group.<group>.dependencies.
// A group missing from one side is compared against an empty set. Any difference is a single problem.
func (c Checker) checkGroup(group string, project, poetry map[string]interface{}) int {
	projectName := fmt.Sprintf("optional-dependencies.%s", group)
	poetryName := fmt.Sprintf("group.%s.dependencies", group)

	projectReqs, ok := c.normalize(field.Dependencies, projectTable, projectName, lookup(project, "optional-dependencies", group))
	if !ok {
		return 1
	}
	poetryReqs, ok := c.normalize(field.Dependencies, poetryTable, poetryName, lookup(poetry, "group", group, "dependencies"))
	if !ok {
		return 1
	}

	if field.Equal(projectReqs, poetryReqs) {
		c.log.Infof("[%s.%s] matches [%s.%s]", projectTable, projectName, poetryTable, poetryName)
		return 0
	}

	c.log.Errorf("[%s.%s] does not match [%s.%s]", projectTable, projectName, poetryTable, poetryName)
	c.log.Errorf("%s.%s (-) vs %s.%s (+):\n%s", projectTable, projectName, poetryTable, poetryName, field.Diff(projectReqs, poetryReqs))
	return 1
}

// report warns about the fields of each table that are not compared.
func (c Checker) report(project, poetry map[string]interface{}) {
	checked := strset.New(CheckedFields()...)

	c.log.Warnf("Fields not checked in [%s]:  %v", projectTable, unchecked(project, checked))
	c.log.Warnf("Fields not checked in [%s]:  %v", poetryTable, unchecked(poetry, checked))
	c.log.Info("Note that the license tables have completely different formats between " +
		"[project] (takes either a file or a text attribute of the actual license) and " +
		"[tool.poetry] (takes the name of the license), so both must be manually set.")
}

func unchecked(table map[string]interface{}, checked *strset.Set) []string {
	names := strset.New()
	for name := range table {
		names.Add(name)
	}
	out := strset.Difference(names, checked).List()
	sort.Strings(out)
	return out
}

func tables(doc map[string]interface{}) (map[string]interface{}, map[string]interface{}, error) {
	project, ok := doc["project"].(map[string]interface{})
	if !ok {
		return nil, nil, fmt.Errorf("%w: [%s]", ErrMissingTable, projectTable)
	}
	poetry, ok := lookup(doc, "tool", "poetry").(map[string]interface{})
	if !ok {
		return nil, nil, fmt.Errorf("%w: [%s]", ErrMissingTable, poetryTable)
	}
	return project, poetry, nil
}

// lookup walks nested tables, returning nil when any key along the path is missing.
func lookup(table map[string]interface{}, path ...string) interface{} {
	var current interface{} = table
	for _, key := range path {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		if current, ok = m[key]; !ok {
			return nil
		}
	}
	return current
}
