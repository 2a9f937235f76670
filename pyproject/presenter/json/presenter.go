package json

import (
	"encoding/json"
	"io"

	"github.com/anchore/check-pyproject/pyproject"
)

// Document is the JSON report for a run.
type Document struct {
	Files    []File `json:"files"`
	Problems int    `json:"problems"`
}

type File struct {
	Path     string `json:"path"`
	Problems int    `json:"problems"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	results []pyproject.Result
}

// NewPresenter creates a new JSON presenter
func NewPresenter(results []pyproject.Result) *Presenter {
	return &Presenter{
		results: results,
	}
}

func NewDocument(results []pyproject.Result) Document {
	doc := Document{
		Files:    make([]File, 0, len(results)),
		Problems: pyproject.TotalProblems(results),
	}
	for _, r := range results {
		f := File{
			Path:     r.Path,
			Problems: r.Problems,
			Status:   r.Status(),
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		doc.Files = append(doc.Files, f)
	}
	return doc
}

// Present creates a JSON-based reporting
func (pres *Presenter) Present(output io.Writer) error {
	doc := NewDocument(pres.results)

	enc := json.NewEncoder(output)
	// prevent > and < from being escaped in the payload
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(&doc)
}
