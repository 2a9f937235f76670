package parsers

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/pyproject"
	"github.com/anchore/check-pyproject/pyproject/event"
	"github.com/anchore/check-pyproject/pyproject/presenter"
)

type ErrBadPayload struct {
	Type  partybus.EventType
	Field string
	Value interface{}
}

func (e *ErrBadPayload) Error() string {
	return fmt.Sprintf("event='%s' has bad event payload field='%v': '%+v'", string(e.Type), e.Field, e.Value)
}

func newPayloadErr(t partybus.EventType, field string, value interface{}) error {
	return &ErrBadPayload{
		Type:  t,
		Field: field,
		Value: value,
	}
}

func checkEventType(actual, expected partybus.EventType) error {
	if actual != expected {
		return newPayloadErr(expected, "Type", actual)
	}
	return nil
}

func ParseManifestChecked(e partybus.Event) (*pyproject.Result, error) {
	if err := checkEventType(e.Type, event.ManifestChecked); err != nil {
		return nil, err
	}

	result, ok := e.Value.(pyproject.Result)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &result, nil
}

func ParseValidationFinished(e partybus.Event) (presenter.Presenter, error) {
	if err := checkEventType(e.Type, event.ValidationFinished); err != nil {
		return nil, err
	}

	pres, ok := e.Value.(presenter.Presenter)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return pres, nil
}
