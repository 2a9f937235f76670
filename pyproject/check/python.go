package check

import (
	"fmt"

	"github.com/anchore/check-pyproject/pyproject/specifier"
)

// checkPythonVersion compares project.requires-python with tool.poetry.dependencies.python. The standardized
// field must be a single predicate without an upper bound, so the poetry constraint is translated without one.
func (c Checker) checkPythonVersion(project, poetry map[string]interface{}) int {
	required, inProject := project["requires-python"]
	python := lookup(poetry, "dependencies", "python")
	inPoetry := python != nil

	switch {
	case inProject && inPoetry:
		projectSpecs, err := translatePython(required)
		if err != nil {
			c.log.Errorf("unable to read %s.requires-python: %+v", projectTable, err)
			return 1
		}
		poetrySpecs, err := translatePython(python, specifier.WithoutUpperBound())
		if err != nil {
			c.log.Errorf("unable to read %s.dependencies.python: %+v", poetryTable, err)
			return 1
		}
		if !projectSpecs.Equal(poetrySpecs) {
			c.log.Errorf("%s.requires-python (%s) does not match %s.dependencies.python (%s)",
				projectTable, projectSpecs, poetryTable, poetrySpecs)
			return 1
		}
		c.log.Infof("%s.requires-python (%s) matches %s.dependencies.python", projectTable, projectSpecs, poetryTable)
		return 0
	case inProject:
		c.log.Errorf("%s.requires-python is %v but %s.dependencies.python is missing.", projectTable, required, poetryTable)
		return 1
	case inPoetry:
		c.log.Errorf("%s.dependencies.python is %v but %s.requires-python is missing.", poetryTable, python, projectTable)
		return 1
	default:
		c.log.Warnf("%s.requires-python and %s.dependencies.python are missing.", projectTable, poetryTable)
		return 0
	}
}

func translatePython(value interface{}, opts ...specifier.Option) (specifier.Set, error) {
	constraint, ok := value.(string)
	if !ok {
		return specifier.Set{}, fmt.Errorf("expected a version constraint string, got %T", value)
	}
	return specifier.TranslateSet(constraint, opts...)
}
