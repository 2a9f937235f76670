package specifier

import "fmt"

const (
	EQ         Operator = "=="
	NE         Operator = "!="
	GT         Operator = ">"
	LT         Operator = "<"
	GTE        Operator = ">="
	LTE        Operator = "<="
	Compatible Operator = "~="
	Arbitrary  Operator = "==="
)

// Operator is the comparison part of a standardized version predicate.
type Operator string

// operators is ordered so that longer operators are tried before their prefixes.
var operators = []Operator{Arbitrary, EQ, NE, Compatible, GTE, LTE, GT, LT}

func ParseOperator(op string) (Operator, error) {
	switch op {
	case string(EQ), "=", "":
		return EQ, nil
	case string(NE):
		return NE, nil
	case string(GT):
		return GT, nil
	case string(GTE):
		return GTE, nil
	case string(LT):
		return LT, nil
	case string(LTE):
		return LTE, nil
	case string(Compatible):
		return Compatible, nil
	case string(Arbitrary):
		return Arbitrary, nil
	}
	return "", fmt.Errorf("unknown operator: '%s'", op)
}
