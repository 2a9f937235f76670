/*
Package event provides event types for all events that the check-pyproject library published onto the event bus.
By convention, for each event type there is a corresponding parser in the parsers package that unpacks the payload.
*/
package event

import "github.com/wagoodman/go-partybus"

const (
	// ManifestChecked is published once per validated file. The source is the file path and the value is a
	// pyproject.Result.
	ManifestChecked partybus.EventType = "check-pyproject-manifest-checked"

	// ValidationFinished is the final event of a run. The value is a presenter.Presenter summarizing every file.
	ValidationFinished partybus.EventType = "check-pyproject-validation-finished"
)
