package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidJSON marks layout documents that are not parseable JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrMissingRows marks JSON documents that are not an object with a "rows" array.
	ErrMissingRows = errors.New(`missing "rows" array`)
)

// LayoutError describes why a layout document was rejected.
// It wraps ErrInvalidJSON or ErrMissingRows.
type LayoutError struct {
	Err    error
	Detail string
}

func (e *LayoutError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *LayoutError) Unwrap() error { return e.Err }

// DecodeLayout parses a `{ "rows": [...] }` document.
//
// Only the top-level shape is checked (an object with an array under "rows"); row
// content is trusted, except that values of the wrong JSON type fail decoding.
func DecodeLayout(data []byte) ([]Row, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// Valid JSON, but not an object.
			return nil, &LayoutError{Err: ErrMissingRows, Detail: "top level is not an object"}
		}
		return nil, &LayoutError{Err: ErrInvalidJSON, Detail: err.Error()}
	}
	if top == nil {
		return nil, &LayoutError{Err: ErrMissingRows, Detail: "top level is null"}
	}
	raw, ok := top["rows"]
	if !ok {
		return nil, &LayoutError{Err: ErrMissingRows}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, &LayoutError{Err: ErrMissingRows, Detail: "rows is not an array"}
	}
	rows := []Row{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &LayoutError{Err: ErrMissingRows, Detail: fmt.Sprintf("malformed rows: %v", err)}
	}
	return rows, nil
}

// EncodeLayout serializes rows as `{ "rows": [...] }`.
func EncodeLayout(rows []Row, pretty bool) ([]byte, error) {
	l := Layout{Rows: rows}
	if pretty {
		return json.MarshalIndent(l, "", "  ")
	}
	return json.Marshal(l)
}
