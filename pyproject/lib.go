package pyproject

import (
	"github.com/spf13/afero"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/internal/bus"
	"github.com/anchore/check-pyproject/internal/log"
	"github.com/anchore/check-pyproject/pyproject/check"
	"github.com/anchore/check-pyproject/pyproject/event"
	"github.com/anchore/check-pyproject/pyproject/logger"
	"github.com/anchore/check-pyproject/pyproject/manifest"
)

// Result is the outcome of validating a single manifest file.
type Result struct {
	Path     string `json:"path"`
	Problems int    `json:"problems"`
	// Err is set when the file could not be read or parsed.
	Err error `json:"-"`
}

// Status summarizes the result as "ok", "problems" or "unreadable".
func (r Result) Status() string {
	switch {
	case r.Err != nil:
		return "unreadable"
	case r.Problems > 0:
		return "problems"
	default:
		return "ok"
	}
}

// ValidateFile reads the pyproject.toml file at the given path and cross validates its [project] and
// [tool.poetry] tables, returning the number of problems found. A file that is missing, is a directory or is
// not valid TOML is one problem.
func ValidateFile(fs afero.Fs, path string) int {
	return Validate(fs, path).Problems
}

// Validate is ValidateFile returning the full result. A ManifestChecked event is published for the file.
func Validate(fs afero.Fs, path string) Result {
	result := Result{Path: path}

	doc, err := manifest.Read(fs, path)
	if err != nil {
		log.Error(err)
		result.Problems = 1
		result.Err = err
	} else {
		result.Problems = check.NewChecker(log.Log).Check(doc)
	}

	log.Infof("Validate %s file: %s => %d problems detected.", manifest.FileName, path, result.Problems)

	bus.Publish(partybus.Event{
		Type:   event.ManifestChecked,
		Source: path,
		Value:  result,
	})

	return result
}

// ValidateFiles validates each path in order.
func ValidateFiles(fs afero.Fs, paths ...string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		log.Infof("Checking: %q", path)
		results = append(results, Validate(fs, path))
	}
	return results
}

// TotalProblems sums the problems of all results.
func TotalProblems(results []Result) int {
	var total int
	for _, r := range results {
		total += r.Problems
	}
	return total
}

func SetLogger(l logger.Logger) {
	log.Log = l
}

func SetBus(b *partybus.Bus) {
	if b == nil {
		bus.SetPublisher(nil)
		return
	}
	bus.SetPublisher(b)
}
