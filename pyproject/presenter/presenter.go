package presenter

import (
	"io"

	"github.com/anchore/check-pyproject/pyproject"
	"github.com/anchore/check-pyproject/pyproject/presenter/json"
	"github.com/anchore/check-pyproject/pyproject/presenter/table"
)

// Presenter is the main interface other Presenters need to implement
type Presenter interface {
	Present(io.Writer) error
}

// GetPresenter retrieves a Presenter that matches a CLI option. Nil is returned for UnknownPresenter.
func GetPresenter(option Option, withColor bool, results []pyproject.Result) Presenter {
	switch option {
	case JSONPresenter:
		return json.NewPresenter(results)
	case TablePresenter:
		return table.NewPresenter(results, withColor)
	case NonePresenter:
		return nonePresenter{}
	default:
		return nil
	}
}

type nonePresenter struct{}

func (nonePresenter) Present(io.Writer) error {
	return nil
}
