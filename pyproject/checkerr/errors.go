package checkerr

import "fmt"

// maxExitCode is the largest process exit status portable across platforms.
const maxExitCode = 255

var (
	// ErrProblemsFound indicates that at least one manifest has [project] and [tool.poetry] tables out of sync.
	ErrProblemsFound = NewExpectedErr("problems detected in manifests")
)

// ProblemsFoundError carries the total problem count of a run. It matches ErrProblemsFound with errors.Is.
type ProblemsFoundError struct {
	Problems int
}

func (e ProblemsFoundError) Error() string {
	return fmt.Sprintf("%d problems detected", e.Problems)
}

func (e ProblemsFoundError) Is(target error) bool {
	expected, ok := target.(ExpectedErr)
	return ok && expected == ErrProblemsFound
}

// ExitCode is the problem count, capped at 255.
func (e ProblemsFoundError) ExitCode() int {
	switch {
	case e.Problems > maxExitCode:
		return maxExitCode
	case e.Problems < 0:
		return 1
	default:
		return e.Problems
	}
}
