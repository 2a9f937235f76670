/*
Package manifest reads pyproject.toml files into the nested mapping compared by the check package.
*/
package manifest

import (
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
)

// FileName is the conventional manifest file name.
const FileName = "pyproject.toml"

// Reason describes why a manifest could not be read.
type Reason int

const (
	NotFound Reason = iota
	IsDirectory
	Unreadable
	Unparsable
)

// ReadError is returned by Read when the path cannot be turned into a document.
type ReadError struct {
	Path   string
	Reason Reason
	Err    error
}

func (e *ReadError) Error() string {
	switch e.Reason {
	case NotFound:
		return fmt.Sprintf("%q is not a file.", e.Path)
	case IsDirectory:
		return fmt.Sprintf("%q is a directory, not a %s file.", e.Path, FileName)
	case Unreadable:
		return fmt.Sprintf("Unable to read %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("Unable to parse %s: %v", e.Path, e.Err)
	}
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Read loads and decodes the TOML manifest at the given path. Tables become map[string]interface{}, arrays
// []interface{}, integers int64.
func Read(fs afero.Fs, path string) (map[string]interface{}, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ReadError{Path: path, Reason: NotFound, Err: err}
		}
		return nil, &ReadError{Path: path, Reason: Unreadable, Err: err}
	}
	if info.IsDir() {
		return nil, &ReadError{Path: path, Reason: IsDirectory}
	}

	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &ReadError{Path: path, Reason: Unreadable, Err: err}
	}

	return Decode(path, contents)
}

// Decode parses TOML content. The path is only used for error reporting.
func Decode(path string, contents []byte) (map[string]interface{}, error) {
	if len(contents) > 0 {
		if mType := mimetype.Detect(contents); !isAncestorOfMimetype(mType, "text/plain") {
			return nil, &ReadError{Path: path, Reason: Unparsable, Err: fmt.Errorf("not a text file (%s)", mType.String())}
		}
	}

	tree, err := toml.LoadBytes(contents)
	if err != nil {
		return nil, &ReadError{Path: path, Reason: Unparsable, Err: err}
	}
	return tree.ToMap(), nil
}

func isAncestorOfMimetype(mType *mimetype.MIME, expected string) bool {
	for cur := mType; cur != nil; cur = cur.Parent() {
		if cur.Is(expected) {
			return true
		}
	}
	return false
}
