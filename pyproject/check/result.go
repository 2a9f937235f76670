package check

// Outcome classifies the comparison of one field between the [project] and [tool.poetry] tables.
type Outcome int

const (
	// Absent means the field is in neither table.
	Absent Outcome = iota
	// ProjectOnly means the field is only in [project].
	ProjectOnly
	// PoetryOnly means the field is only in [tool.poetry].
	PoetryOnly
	// Mismatch means the field is in both tables but the normalized values differ.
	Mismatch
	// Match means the field is in both tables with equal normalized values.
	Match
	// Invalid means a value could not be normalized.
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Absent:
		return "absent"
	case ProjectOnly:
		return "project-only"
	case PoetryOnly:
		return "poetry-only"
	case Mismatch:
		return "mismatch"
	case Match:
		return "match"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// FieldResult records the comparison of a single field.
type FieldResult struct {
	Field     string
	InProject bool
	InPoetry  bool
	Project   interface{}
	Poetry    interface{}
	Equal     bool
	Outcome   Outcome
}

// Problems is the number of problems the result contributes to the total. A field missing from both tables
// is not a problem.
func (r FieldResult) Problems() int {
	switch r.Outcome {
	case Absent, Match:
		return 0
	default:
		return 1
	}
}
