package ui

import (
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/internal/log"
	"github.com/anchore/check-pyproject/pyproject/event"
)

type loggerUI struct {
	unsubscribe  func() error
	reportOutput io.Writer
}

// NewLoggerUI writes all events to the common application logger and writes the final report to the given writer.
func NewLoggerUI(reportWriter io.Writer) UI {
	return &loggerUI{
		reportOutput: reportWriter,
	}
}

func (l *loggerUI) Setup(unsubscribe func() error) error {
	l.unsubscribe = unsubscribe
	return nil
}

func (l loggerUI) Handle(e partybus.Event) error {
	switch e.Type {
	case event.ManifestChecked:
		if err := handleManifestChecked(e); err != nil {
			log.Warnf("unable to show manifest checked event: %+v", err)
		}
		return nil
	case event.ValidationFinished:
		if err := handleValidationFinished(e, l.reportOutput); err != nil {
			log.Warnf("unable to show validation finished event: %+v", err)
		}
	// ignore all events except for the final event
	default:
		return nil
	}

	// this is the last expected event, stop listening to events
	return l.unsubscribe()
}

func (l loggerUI) Teardown(_ bool) error {
	return nil
}
