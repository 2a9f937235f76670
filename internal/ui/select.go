package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Select returns the UI for the current environment. Only the logger UI exists, so the choice is between
// writing the report to the given writer and discarding it when quiet.
func Select(quiet bool, reportWriter io.Writer) UI {
	if quiet {
		return NewLoggerUI(io.Discard)
	}
	return NewLoggerUI(reportWriter)
}

// SupportsColor reports whether stdout is a terminal and NO_COLOR is not set.
func SupportsColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
