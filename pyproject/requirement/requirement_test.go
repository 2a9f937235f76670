package requirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "requests", expected: "requests"},
		{name: "Foo_Bar.baz", expected: "foo-bar-baz"},
		{name: "A--__B", expected: "a-b"},
		{name: " PyYAML ", expected: "pyyaml"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, CanonicalName(test.name))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "name only",
			raw:      "requests",
			expected: "requests",
		},
		{
			name:     "specifiers are sorted",
			raw:      "requests <3, >=2.31",
			expected: "requests<3,>=2.31",
		},
		{
			name:     "extras are canonical and sorted",
			raw:      "Unicorn[mysql, gevent]>=20.1.1",
			expected: "unicorn[gevent,mysql]>=20.1.1",
		},
		{
			name:     "parenthesized specifiers",
			raw:      "foo (>=1.0)",
			expected: "foo>=1.0",
		},
		{
			name:     "marker is canonical",
			raw:      "Requests >= 2.0 ; python_version<'3.8'",
			expected: `requests>=2.0; python_version < "3.8"`,
		},
		{
			name:     "direct url",
			raw:      "check-pyproject@ git+https://github.com:royw/check_pyproject.git",
			expected: "check-pyproject@ git+https://github.com:royw/check_pyproject.git",
		},
		{
			name:     "direct url with marker",
			raw:      "foo @ git+https://github.com/org/repo.git@v1.0 ; sys_platform == 'linux'",
			expected: `foo@ git+https://github.com/org/repo.git@v1.0 ; sys_platform == "linux"`,
		},
		{name: "empty", raw: "", wantErr: true},
		{name: "missing name", raw: "[extra]>=1.0", wantErr: true},
		{name: "unterminated extras", raw: "foo[bar>=1.0", wantErr: true},
		{name: "missing version", raw: "foo >=", wantErr: true},
		{name: "missing url", raw: "foo @", wantErr: true},
		{name: "bad marker", raw: "foo>=1.0; (python_version < '3.8'", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Parse(test.raw)
			if test.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRequirement)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual.String())
		})
	}
}

func TestRequirement_Equal(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		equal bool
	}{
		{
			name:  "extras order",
			left:  "unicorn[gevent,mysql]>=20.1.1",
			right: "unicorn[mysql,gevent]>=20.1.1",
			equal: true,
		},
		{
			name:  "specifier order and padding",
			left:  "requests>=2.31.0,<3.0.0",
			right: "requests<3,>=2.31",
			equal: true,
		},
		{
			name:  "name spelling",
			left:  "typing_extensions>=4",
			right: "Typing.Extensions>=4",
			equal: true,
		},
		{
			name:  "marker spacing and quoting",
			left:  `foo; python_version>='3.8'`,
			right: `foo ; python_version >= "3.8"`,
			equal: true,
		},
		{
			name:  "different bound",
			left:  "requests>=2.31,<3",
			right: "requests>=2.31,<4",
			equal: false,
		},
		{
			name:  "different extras",
			left:  "unicorn[gevent]>=20.1.1",
			right: "unicorn[gevent,mysql]>=20.1.1",
			equal: false,
		},
		{
			name:  "missing marker",
			left:  `foo; python_version >= "3.8"`,
			right: "foo",
			equal: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			left := MustParse(test.left)
			right := MustParse(test.right)
			assert.Equal(t, test.equal, left.Equal(right))
			assert.Equal(t, test.equal, right.Equal(left))
		})
	}
}

func TestCanonicalMarker(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		wantErr  bool
	}{
		{raw: `python_version>='3.8'`, expected: `python_version >= "3.8"`},
		{raw: `python_version>='3.8' and(sys_platform=="linux")`, expected: `python_version >= "3.8" and (sys_platform == "linux")`},
		{raw: `os_name == "nt" OR os_name == "posix"`, expected: `os_name == "nt" or os_name == "posix"`},
		{raw: `'linux' in sys_platform`, expected: `"linux" in sys_platform`},
		{raw: `platform_release != 'say "hi"'`, expected: `platform_release != 'say "hi"'`},
		{raw: ``, wantErr: true},
		{raw: `(os_name == "nt"`, wantErr: true},
		{raw: `os_name == "nt")`, wantErr: true},
		{raw: `os_name == "nt`, wantErr: true},
		{raw: `os_name = "nt"`, wantErr: true},
		{raw: `os_name == "nt" & python_version`, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			actual, err := CanonicalMarker(test.raw)
			if test.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMarker)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestSet_Operations(t *testing.T) {
	left := NewSet(
		MustParse("requests>=2.31,<3"),
		MustParse("unicorn[gevent,mysql]>=20.1.1"),
		MustParse("click>=8"),
	)
	right := NewSet(
		MustParse("Requests<3.0.0,>=2.31.0"),
		MustParse("unicorn[mysql,gevent]>=20.1.1"),
		MustParse("rich>=13"),
	)

	assert.Equal(t, 3, left.Len())
	assert.True(t, left.Contains(MustParse("click>=8.0")))
	assert.False(t, left.Contains(MustParse("rich>=13")))

	assert.Equal(t, []string{"click>=8"}, left.Difference(right).Strings())
	assert.Equal(t, []string{"rich>=13"}, right.Difference(left).Strings())
	assert.Equal(t, []string{"click>=8", "rich>=13"}, left.SymmetricDifference(right).Strings())
	assert.False(t, left.Equal(right))

	left.Merge(right)
	right.Add(MustParse("click>=8.0.0"))
	assert.True(t, left.Equal(right))
	assert.Equal(t, 4, left.Len())
}

func TestSet_Nil(t *testing.T) {
	var s *Set
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(MustParse("foo")))
	assert.Empty(t, s.List())
	assert.True(t, s.Equal(NewSet()))
	assert.True(t, NewSet().Equal(s))
}
