package ui

import (
	"fmt"
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/internal/log"
	"github.com/anchore/check-pyproject/pyproject/event/parsers"
)

func handleManifestChecked(e partybus.Event) error {
	result, err := parsers.ParseManifestChecked(e)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", e.Type, err)
	}

	log.Debugf("checked %s: %d problems (%s)", result.Path, result.Problems, result.Status())
	return nil
}

func handleValidationFinished(e partybus.Event, reportOutput io.Writer) error {
	// show the report to stdout
	pres, err := parsers.ParseValidationFinished(e)
	if err != nil {
		return fmt.Errorf("bad ValidationFinished event: %w", err)
	}

	if err := pres.Present(reportOutput); err != nil {
		return fmt.Errorf("unable to show validation report: %w", err)
	}
	return nil
}
