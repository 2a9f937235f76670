package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anchore/check-pyproject/pyproject/logger"
)

func TestChecker_checkPythonVersion(t *testing.T) {
	tests := []struct {
		name     string
		project  map[string]interface{}
		poetry   map[string]interface{}
		expected int
		level    string
		message  string
	}{
		{
			name:     "caret without upper bound matches",
			project:  map[string]interface{}{"requires-python": ">=3.11"},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{"python": "^3.11"}},
			expected: 0,
			level:    "info",
			message:  "matches",
		},
		{
			name:     "explicit lower bound matches",
			project:  map[string]interface{}{"requires-python": ">= 3.9"},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{"python": ">=3.9.0"}},
			expected: 0,
		},
		{
			name:     "different lower bound",
			project:  map[string]interface{}{"requires-python": ">=3.10"},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{"python": "^3.11"}},
			expected: 1,
			level:    "error",
			message:  "project.requires-python (>=3.10.0) does not match tool.poetry.dependencies.python (>=3.11.0)",
		},
		{
			name:     "upper bound in project",
			project:  map[string]interface{}{"requires-python": "^3.11"},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{"python": "^3.11"}},
			expected: 1,
			level:    "error",
			message:  "does not match",
		},
		{
			name:     "only project",
			project:  map[string]interface{}{"requires-python": ">=3.11"},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{}},
			expected: 1,
			level:    "error",
			message:  "tool.poetry.dependencies.python is missing",
		},
		{
			name:     "only project without poetry dependencies",
			project:  map[string]interface{}{"requires-python": ">=3.11"},
			poetry:   map[string]interface{}{},
			expected: 1,
			level:    "error",
			message:  "tool.poetry.dependencies.python is missing",
		},
		{
			name:     "only poetry",
			project:  map[string]interface{}{},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{"python": "^3.11"}},
			expected: 1,
			level:    "error",
			message:  "project.requires-python is missing",
		},
		{
			name:     "neither",
			project:  map[string]interface{}{},
			poetry:   map[string]interface{}{},
			expected: 0,
			level:    "warn",
			message:  "are missing",
		},
		{
			name:     "unreadable constraint",
			project:  map[string]interface{}{"requires-python": int64(3)},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{"python": "^3.11"}},
			expected: 1,
			level:    "error",
			message:  "unable to read project.requires-python",
		},
		{
			name:     "invalid constraint",
			project:  map[string]interface{}{"requires-python": ">=3.11"},
			poetry:   map[string]interface{}{"dependencies": map[string]interface{}{"python": "^three"}},
			expected: 1,
			level:    "error",
			message:  "unable to read tool.poetry.dependencies.python",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			log := &logger.Recorder{}

			actual := NewChecker(log).checkPythonVersion(test.project, test.poetry)

			assert.Equal(t, test.expected, actual)
			if test.message != "" {
				assert.True(t, log.Contains(test.level, test.message), "missing %s log %q in %+v", test.level, test.message, log.Entries())
			}
		})
	}
}
