package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/internal/bus"
	"github.com/anchore/check-pyproject/internal/ui"
	"github.com/anchore/check-pyproject/pyproject/checkerr"
	"github.com/anchore/check-pyproject/pyproject/presenter"
)

const inSync = `
[project]
name = "sample"
version = "1.0.0"
requires-python = ">=3.11"
dependencies = ["requests>=2.31.0,<3.0.0"]

[tool.poetry]
name = "sample"
version = "1.0.0"

[tool.poetry.dependencies]
python = "^3.11"
requests = "^2.31.0"
`

const outOfSync = `
[project]
name = "sample"
version = "1.0.0"
requires-python = ">=3.11"
dependencies = ["requests>=2.31.0,<3.0.0"]

[tool.poetry]
name = "other"
version = "1.0.1"

[tool.poetry.dependencies]
python = "^3.11"
requests = "^2.31.0"
`

func Test_startWorker_reportsThroughEventLoop(t *testing.T) {
	test := func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/a/pyproject.toml", []byte(inSync), 0644))
		require.NoError(t, afero.WriteFile(fs, "/b/pyproject.toml", []byte(outOfSync), 0644))

		testBus := partybus.NewBus()
		subscription := testBus.Subscribe()
		t.Cleanup(testBus.Close)

		bus.SetPublisher(testBus)
		t.Cleanup(func() {
			bus.SetPublisher(nil)
		})

		var report bytes.Buffer
		totals := make(chan int, 1)

		err := eventLoop(
			startWorker(fs, []string{"/a/pyproject.toml", "/b/pyproject.toml", "/c/pyproject.toml"}, presenter.TablePresenter, false, totals),
			nil,
			subscription,
			func() {},
			ui.NewLoggerUI(&report),
		)
		require.NoError(t, err)

		// name and version mismatch, plus the missing file
		assert.Equal(t, 3, <-totals)
		assert.Contains(t, report.String(), "/b/pyproject.toml")
		assert.True(t, strings.HasSuffix(report.String(), "3 problems detected in 3 files\n"), report.String())
	}

	testWithTimeout(t, 5*time.Second, test)
}

func Test_startWorker_unknownOutput(t *testing.T) {
	test := func(t *testing.T) {
		testBus := partybus.NewBus()
		subscription := testBus.Subscribe()
		t.Cleanup(testBus.Close)

		totals := make(chan int, 1)

		err := eventLoop(
			startWorker(afero.NewMemMapFs(), nil, presenter.UnknownPresenter, false, totals),
			nil,
			subscription,
			func() {},
			ui.NewLoggerUI(&bytes.Buffer{}),
		)
		assert.Error(t, err)
		assert.Equal(t, 0, <-totals)
	}

	testWithTimeout(t, 5*time.Second, test)
}

func Test_exitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "no error", expected: 0},
		{name: "problems", err: checkerr.ProblemsFoundError{Problems: 14}, expected: 14},
		{name: "many problems", err: fmt.Errorf("wrapped: %w", checkerr.ProblemsFoundError{Problems: 1000}), expected: 255},
		{name: "problems without a count", err: fmt.Errorf("validation: %w", checkerr.ErrProblemsFound), expected: 1},
		{name: "other failure", err: errors.New("unable to read config"), expected: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, exitCode(test.err))
		})
	}
}

func Test_printVersion(t *testing.T) {
	var text bytes.Buffer
	require.NoError(t, printVersion(&text, "text"))
	assert.Contains(t, text.String(), "check-pyproject")

	var js bytes.Buffer
	require.NoError(t, printVersion(&js, "json"))
	assert.Contains(t, js.String(), `"application": "check-pyproject"`)

	assert.Error(t, printVersion(os.Stdout, "yaml"))
}
