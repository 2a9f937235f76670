package presenter

import "strings"

const (
	UnknownPresenter Option = iota
	TablePresenter
	JSONPresenter
	NonePresenter
)

var optionStr = []string{
	"UnknownPresenter",
	"table",
	"json",
	"none",
}

var Options = []Option{
	TablePresenter,
	JSONPresenter,
	NonePresenter,
}

type Option int

func ParseOption(userStr string) Option {
	switch strings.ToLower(strings.TrimSpace(userStr)) {
	case TablePresenter.String():
		return TablePresenter
	case JSONPresenter.String():
		return JSONPresenter
	case NonePresenter.String():
		return NonePresenter
	default:
		return UnknownPresenter
	}
}

func (o Option) String() string {
	if int(o) >= len(optionStr) || o < 0 {
		return optionStr[0]
	}

	return optionStr[o]
}
