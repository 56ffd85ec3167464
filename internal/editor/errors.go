package editor

import (
	"fmt"

	"promptboard/internal/model"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func errNotFound(kind, id string) error {
	return NotFoundError{Kind: kind, ID: id}
}

// KindMismatchError is returned when a command targets a block of the wrong kind
// (for example editing the value of an output block).
type KindMismatchError struct {
	BlockID string
	Got     model.BlockKind
	Op      string
}

func (e KindMismatchError) Error() string {
	return fmt.Sprintf("%s: block %s is %q", e.Op, e.BlockID, e.Got)
}

type InvalidColsError struct {
	Cols int
}

func (e InvalidColsError) Error() string {
	return fmt.Sprintf("invalid column count %d (expected 1, 2 or 3)", e.Cols)
}

// ImportError is returned by Import when the document is rejected. State is unchanged.
type ImportError struct {
	Err error
}

func (e ImportError) Error() string {
	return "import rejected: " + e.Err.Error()
}

func (e ImportError) Unwrap() error { return e.Err }
