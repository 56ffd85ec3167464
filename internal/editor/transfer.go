package editor

import (
	"context"

	"promptboard/internal/model"

	"go.uber.org/zap"
)

// Export returns the active rows as pretty-printed `{ "rows": [...] }` JSON.
func (e *Editor) Export() ([]byte, error) {
	return model.EncodeLayout(e.rows, true)
}

// Import replaces the active rows with the rows of a `{ "rows": [...] }` document.
// Rejected documents return an ImportError and leave rows and output untouched.
func (e *Editor) Import(ctx context.Context, data []byte) error {
	if e.slot == 0 {
		return errNoSlot
	}
	rows, err := model.DecodeLayout(data)
	if err != nil {
		e.log.Info("import rejected", zap.Error(err))
		return ImportError{Err: err}
	}
	e.rows = rows
	e.log.Info("layout imported", zap.Int("slot", e.slot), zap.Int("rows", len(rows)))
	e.commit(ctx)
	return nil
}
