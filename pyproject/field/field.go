/*
Package field reduces raw manifest values into directly comparable forms. Every normalizer accepts the
decoded TOML value of a single field (from either the [project] or the [tool.poetry] table) and returns a
value that can be compared with Equal.
*/
package field

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/anchore/check-pyproject/pyproject/requirement"
)

// Normalizer converts a raw field value into its comparable form. A non-nil value returned together with an
// error is a partial result: the parts that could be normalized are kept.
type Normalizer func(value interface{}) (interface{}, error)

// String uses the value as is.
func String(value interface{}) (interface{}, error) {
	return value, nil
}

// Set turns a list of strings into a set, so ordering and duplicates are irrelevant.
func Set(value interface{}) (interface{}, error) {
	items, err := list(value)
	if err != nil {
		return nil, err
	}
	out := strset.New()
	for idx, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("entry %d must be a string, got %T", idx, item)
		}
		out.Add(s)
	}
	return out, nil
}

// Author normalizes a list of people into a set of "Name <email>" strings. Entries may already be formatted
// strings or {name, email} records.
func Author(value interface{}) (interface{}, error) {
	items, err := list(value)
	if err != nil {
		return nil, err
	}
	out := strset.New()
	for idx, item := range items {
		switch v := item.(type) {
		case string:
			out.Add(v)
		case map[string]interface{}:
			out.Add(formatAuthor(v))
		default:
			return nil, fmt.Errorf("entry %d must be a string or a table, got %T", idx, item)
		}
	}
	return out, nil
}

func formatAuthor(record map[string]interface{}) string {
	name, _ := record["name"].(string)
	email, _ := record["email"].(string)
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	switch {
	case email == "":
		return name
	case name == "":
		return "<" + email + ">"
	default:
		return fmt.Sprintf("%s <%s>", name, email)
	}
}

// Dependencies converts either a [project] requirement list or a [tool.poetry] dependency table into a set of
// canonical requirements. A missing value is an empty set.
func Dependencies(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return requirement.NewSet(), nil
	case map[string]interface{}:
		return requirement.FromPoetry(v)
	default:
		items, err := list(value)
		if err != nil {
			return nil, err
		}
		var values []string
		for idx, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("dependency %d must be a string, got %T", idx, item)
			}
			values = append(values, s)
		}
		return requirement.FromProject(values)
	}
}

// Equal compares two normalized values: string sets by membership, requirement sets by fingerprint and
// anything else structurally.
func Equal(a, b interface{}) bool {
	switch left := a.(type) {
	case *strset.Set:
		right, ok := b.(*strset.Set)
		return ok && left.IsEqual(right)
	case *requirement.Set:
		right, ok := b.(*requirement.Set)
		return ok && left.Equal(right)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// Sorted returns the plain representation of a normalized value: sets become sorted string slices.
func Sorted(value interface{}) interface{} {
	switch v := value.(type) {
	case *strset.Set:
		items := v.List()
		sort.Strings(items)
		return items
	case *requirement.Set:
		return v.Strings()
	default:
		return value
	}
}

func list(value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case []interface{}:
		return v, nil
	case []string:
		out := make([]interface{}, len(v))
		for idx, s := range v {
			out[idx] = s
		}
		return out, nil
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for idx, m := range v {
			out[idx] = m
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
}
