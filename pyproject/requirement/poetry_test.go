package requirement

import (
	"errors"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected Dependency
		wantErr  bool
	}{
		{
			name:     "constraint string",
			value:    "^2.31",
			expected: Simple{Constraint: "^2.31"},
		},
		{
			name:     "git takes precedence over other backends",
			value:    map[string]interface{}{"hg": "https://hg.example.com/repo", "git": "https://github.com/org/repo.git", "tag": "v1"},
			expected: VCS{Backend: Git, URL: "https://github.com/org/repo.git", Tag: "v1"},
		},
		{
			name:     "path",
			value:    map[string]interface{}{"path": "../lib", "develop": true},
			expected: Path{Path: "../lib"},
		},
		{
			name:  "versioned",
			value: map[string]interface{}{"version": "^1.0", "extras": []interface{}{"b", "a"}, "python": "^3.8", "optional": true},
			expected: Versioned{
				Constraint: "^1.0",
				Extras:     []string{"b", "a"},
				Markers:    Markers{Python: "^3.8"},
			},
		},
		{
			name:     "url",
			value:    map[string]interface{}{"url": "https://example.com/pkg.whl", "platform": "linux"},
			expected: URL{URL: "https://example.com/pkg.whl", Markers: Markers{Platform: "linux"}},
		},
		{
			name:     "bare",
			value:    map[string]interface{}{"optional": true, "implementation_name": "cpython"},
			expected: Bare{Markers: Markers{Extra: map[string]string{"implementation_name": "cpython"}}},
		},
		{
			name: "conditional",
			value: []interface{}{
				map[string]interface{}{"version": "<=1.9", "python": ">=3.6,<3.8"},
				map[string]interface{}{"version": "^2.0", "python": ">=3.8"},
			},
			expected: Conditional{Variants: []Dependency{
				Versioned{Constraint: "<=1.9", Markers: Markers{Python: ">=3.6,<3.8"}},
				Versioned{Constraint: "^2.0", Markers: Markers{Python: ">=3.8"}},
			}},
		},
		{
			name: "conditional from typed tables",
			value: []map[string]interface{}{
				{"version": "^2.0"},
			},
			expected: Conditional{Variants: []Dependency{
				Versioned{Constraint: "^2.0"},
			}},
		},
		{name: "integer", value: int64(42), wantErr: true},
		{name: "non-string version", value: map[string]interface{}{"version": int64(1)}, wantErr: true},
		{name: "non-string extras", value: map[string]interface{}{"version": "1", "extras": []interface{}{int64(1)}}, wantErr: true},
		{name: "non-string git url", value: map[string]interface{}{"git": true}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Classify(test.value)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, d := range deep.Equal(test.expected, actual) {
				t.Errorf("diff: %+v", d)
			}
		})
	}
}

func TestVCS_Locator(t *testing.T) {
	tests := []struct {
		name     string
		dep      VCS
		expected string
	}{
		{
			name:     "git ssh is rewritten to https",
			dep:      VCS{Backend: Git, URL: "git@github.com:royw/check_pyproject.git"},
			expected: "git+https://github.com:royw/check_pyproject.git",
		},
		{
			name:     "git rev wins over tag and branch",
			dep:      VCS{Backend: Git, URL: "https://github.com/org/repo.git", Rev: "abc123", Tag: "v1", Branch: "main"},
			expected: "git+https://github.com/org/repo.git@abc123",
		},
		{
			name:     "git tag wins over branch",
			dep:      VCS{Backend: Git, URL: "https://github.com/org/repo.git", Tag: "v1", Branch: "main"},
			expected: "git+https://github.com/org/repo.git@v1",
		},
		{
			name:     "git branch",
			dep:      VCS{Backend: Git, URL: "https://github.com/org/repo.git", Branch: "main"},
			expected: "git+https://github.com/org/repo.git#main",
		},
		{
			name:     "git subdirectory",
			dep:      VCS{Backend: Git, URL: "https://github.com/org/repo.git", Rev: "abc123", Subdirectory: "pkg"},
			expected: "git+https://github.com/org/repo.git@abc123/pkg",
		},
		{
			name:     "mercurial rev",
			dep:      VCS{Backend: Mercurial, URL: "https://hg.example.com/repo", Rev: "abc123"},
			expected: "hg+https://hg.example.com/repo@abc123",
		},
		{
			name:     "subversion branch",
			dep:      VCS{Backend: Subversion, URL: "https://svn.example.com/repo", Branch: "trunk"},
			expected: "svn+https://svn.example.com/repo@trunk",
		},
		{
			name:     "bazaar tag",
			dep:      VCS{Backend: Bazaar, URL: "https://bzr.example.com/repo", Tag: "1.0"},
			expected: "bzr+https://bzr.example.com/repo@1.0",
		},
		{
			name:     "bazaar without ref",
			dep:      VCS{Backend: Bazaar, URL: "https://bzr.example.com/repo"},
			expected: "bzr+https://bzr.example.com/repo",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.dep.Locator())
		})
	}
}

func TestFromPoetry(t *testing.T) {
	tests := []struct {
		name     string
		table    map[string]interface{}
		expected []string
	}{
		{
			name: "python is skipped",
			table: map[string]interface{}{
				"python":   "^3.8",
				"requests": "^2.31",
			},
			expected: []string{"requests<3.0.0,>=2.31.0"},
		},
		{
			name: "extras",
			table: map[string]interface{}{
				"unicorn": map[string]interface{}{"version": "^20.1.1", "extras": []interface{}{"mysql", "gevent"}},
			},
			expected: []string{"unicorn[gevent,mysql]<21.0.0,>=20.1.1"},
		},
		{
			name: "optional flag is not a marker",
			table: map[string]interface{}{
				"foo": map[string]interface{}{"version": "^1", "optional": true},
			},
			expected: []string{"foo<2.0.0,>=1.0.0"},
		},
		{
			name: "python marker has no upper bound",
			table: map[string]interface{}{
				"foo": map[string]interface{}{"version": "^1.0", "python": "^3.8"},
			},
			expected: []string{`foo<2.0.0,>=1.0.0; python_version >= "3.8.0"`},
		},
		{
			name: "python alternatives",
			table: map[string]interface{}{
				"foo": map[string]interface{}{"version": "1.0", "python": "~2.7 || ^3.4"},
			},
			expected: []string{`foo==1.0.0; python_version >= "2.7.0" and python_version < "2.8.0" or python_version >= "3.4.0"`},
		},
		{
			name: "platform marker",
			table: map[string]interface{}{
				"foo": map[string]interface{}{"version": "*", "platform": "linux"},
			},
			expected: []string{`foo>=0.0.0; sys_platform == "linux"`},
		},
		{
			name: "marker order",
			table: map[string]interface{}{
				"foo": map[string]interface{}{
					"version":             "1",
					"markers":             "sys_platform == 'win32' or sys_platform == 'darwin'",
					"python":              ">=3.8",
					"implementation_name": "cpython",
				},
			},
			expected: []string{
				`foo==1.0.0; python_version >= "3.8.0" and implementation_name == "cpython" and (sys_platform == "win32" or sys_platform == "darwin")`,
			},
		},
		{
			name: "conditional variants",
			table: map[string]interface{}{
				"foo": []interface{}{
					map[string]interface{}{"version": "<=1.9", "python": ">=3.6,<3.8"},
					map[string]interface{}{"version": "^2.0", "python": ">=3.8"},
				},
			},
			expected: []string{
				`foo<3.0.0,>=2.0.0; python_version >= "3.8.0"`,
				`foo<=1.9.0; python_version >= "3.6.0" and python_version < "3.8.0"`,
			},
		},
		{
			name: "git dependency",
			table: map[string]interface{}{
				"org-repo": map[string]interface{}{"git": "git@github.com:org/repo.git"},
			},
			expected: []string{"org-repo@ git+https://github.com:org/repo.git"},
		},
		{
			name: "vcs path and url sources",
			table: map[string]interface{}{
				"check_pyproject": map[string]interface{}{"git": "git@github.com:royw/check_pyproject.git"},
				"lib":             map[string]interface{}{"path": "../lib"},
				"pkg":             map[string]interface{}{"url": "https://example.com/pkg.whl"},
			},
			expected: []string{
				"check-pyproject@ git+https://github.com:royw/check_pyproject.git",
				"lib@ ../lib",
				"pkg@ https://example.com/pkg.whl",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := FromPoetry(test.table)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual.Strings())
		})
	}
}

func TestFromPoetry_Unparsable(t *testing.T) {
	table := map[string]interface{}{
		"broken":   "^x.y",
		"numeric":  int64(42),
		"requests": "^2.31",
	}

	actual, err := FromPoetry(table)
	require.Error(t, err)

	var unparsable *UnparsableError
	require.True(t, errors.As(err, &unparsable))
	assert.Equal(t, "broken", unparsable.Name)
	assert.Contains(t, err.Error(), "numeric")

	assert.Equal(t, []string{"requests<3.0.0,>=2.31.0"}, actual.Strings())
}

func TestFromProject(t *testing.T) {
	actual, err := FromProject([]string{
		"requests>=2.31,<3",
		"Unicorn[gevent, mysql] >= 20.1.1, < 21.0",
		"check-pyproject@ git+https://github.com:royw/check_pyproject.git",
		"not a requirement!",
	})
	require.Error(t, err)

	var unparsable *UnparsableError
	require.True(t, errors.As(err, &unparsable))
	assert.Equal(t, "not a requirement!", unparsable.Name)
	assert.Equal(t, 3, actual.Len())

	poetry, err := FromPoetry(map[string]interface{}{
		"python":          "^3.8",
		"requests":        "^2.31",
		"unicorn":         map[string]interface{}{"version": "^20.1.1", "extras": []interface{}{"mysql", "gevent"}},
		"check-pyproject": map[string]interface{}{"git": "git@github.com:royw/check_pyproject.git"},
	})
	require.NoError(t, err)
	assert.True(t, poetry.Equal(actual), "symmetric difference: %v", poetry.SymmetricDifference(actual).Strings())
}
