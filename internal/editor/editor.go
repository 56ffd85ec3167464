// Package editor owns the application state: the active slot, its rows, the slot-name
// map and the last assembled output. All mutation goes through Dispatch and the slot
// operations; each successful mutation reassembles the output and autosaves the slot.
//
// An Editor is not safe for concurrent use.
package editor

import (
	"context"
	"errors"
	"math/rand/v2"

	"promptboard/internal/model"
	"promptboard/internal/prompt"
	"promptboard/internal/store"

	"go.uber.org/zap"
)

// SlotStore is the persistence the editor needs. store.Store implements it.
type SlotStore interface {
	LoadSlot(ctx context.Context, n int) store.SlotResult
	SaveSlot(ctx context.Context, n int, rows []model.Row) error
	LoadSlotMeta(ctx context.Context) store.MetaResult
	SaveSlotMeta(ctx context.Context, meta store.SlotMeta) error
}

type Options struct {
	Logger *zap.Logger
	// Rand drives RandomizeBadges. Nil uses the global source.
	Rand *rand.Rand
}

type Editor struct {
	store SlotStore
	log   *zap.Logger
	rnd   *rand.Rand

	slot   int
	rows   []model.Row
	meta   store.SlotMeta
	output string

	lastSaveErr error
}

var errNoSlot = errors.New("no active slot")

// New returns an editor with the slot-name map loaded and no active slot.
// Call SwitchSlot (or use Open) before dispatching commands.
func New(ctx context.Context, st SlotStore, opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e := &Editor{store: st, log: log, rnd: opts.Rand}
	e.loadMeta(ctx)
	return e
}

// Open is New followed by SwitchSlot(slot).
func Open(ctx context.Context, st SlotStore, slot int, opts Options) (*Editor, error) {
	e := New(ctx, st, opts)
	if err := e.SwitchSlot(ctx, slot); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) ActiveSlot() int { return e.slot }

// Rows returns a deep copy of the active rows.
func (e *Editor) Rows() []model.Row { return model.CloneRows(e.rows) }

// Output returns the text assembled by the last commit.
func (e *Editor) Output() string { return e.output }

// LastSaveError reports the error of the most recent autosave, or nil if it succeeded.
func (e *Editor) LastSaveError() error { return e.lastSaveErr }

// Dispatch applies cmd to the active rows. On success the output is reassembled and
// the slot autosaved (autosave failures are logged, not returned). On error the state
// is unchanged.
func (e *Editor) Dispatch(ctx context.Context, cmd Command) error {
	if e.slot == 0 {
		return errNoSlot
	}
	if err := e.apply(cmd); err != nil {
		e.log.Debug("command rejected", zap.String("cmd", CommandName(cmd)), zap.Error(err))
		return err
	}
	e.log.Debug("command applied", zap.String("cmd", CommandName(cmd)), zap.Int("slot", e.slot))
	e.commit(ctx)
	return nil
}

// commit reassembles the output into every output block and autosaves the slot.
func (e *Editor) commit(ctx context.Context) {
	e.output = prompt.Apply(e.rows)
	if err := e.store.SaveSlot(ctx, e.slot, e.rows); err != nil {
		e.lastSaveErr = err
		e.log.Warn("autosave failed", zap.Int("slot", e.slot), zap.Error(err))
		return
	}
	e.lastSaveErr = nil
}

func (e *Editor) apply(cmd Command) error {
	switch c := cmd.(type) {
	case AddRow:
		return e.addRow(c)
	case RemoveRow:
		i := model.FindRow(e.rows, c.Row)
		if i < 0 {
			return errNotFound("row", c.Row)
		}
		e.rows = append(e.rows[:i], e.rows[i+1:]...)
		return nil
	case MoveRow:
		i := model.FindRow(e.rows, c.Row)
		if i < 0 {
			return errNotFound("row", c.Row)
		}
		j := i + c.Delta
		if j < 0 || j >= len(e.rows) {
			return nil
		}
		e.rows[i], e.rows[j] = e.rows[j], e.rows[i]
		return nil
	case SetRowCols:
		if c.Cols < 1 || c.Cols > 3 {
			return InvalidColsError{Cols: c.Cols}
		}
		r, err := e.row(c.Row)
		if err != nil {
			return err
		}
		r.Cols = c.Cols
		return nil
	case SetRowTitle:
		r, err := e.row(c.Row)
		if err != nil {
			return err
		}
		r.Title = c.Title
		return nil
	case AddBlock:
		switch c.Kind {
		case model.BlockKindText, model.BlockKindBadges, model.BlockKindSliders:
		default:
			return KindMismatchError{Op: "add block", Got: c.Kind}
		}
		r, err := e.row(c.Row)
		if err != nil {
			return err
		}
		b := model.NewBlock(c.Kind)
		if c.ID != "" {
			b.ID = c.ID
		}
		r.Blocks = append(r.Blocks, b)
		return nil
	case RemoveBlock:
		r, err := e.row(c.Row)
		if err != nil {
			return err
		}
		j := r.FindBlock(c.Block)
		if j < 0 {
			return errNotFound("block", c.Block)
		}
		r.Blocks = append(r.Blocks[:j], r.Blocks[j+1:]...)
		return nil
	case MoveBlock:
		r, err := e.row(c.Row)
		if err != nil {
			return err
		}
		j := r.FindBlock(c.Block)
		if j < 0 {
			return errNotFound("block", c.Block)
		}
		k := j + c.Delta
		if k < 0 || k >= len(r.Blocks) {
			return nil
		}
		r.Blocks[j], r.Blocks[k] = r.Blocks[k], r.Blocks[j]
		return nil
	case SetBlockTitle:
		b, err := e.block(c.Row, c.Block)
		if err != nil {
			return err
		}
		b.Title = c.Title
		return nil
	case SetText:
		b, err := e.blockOfKind(c.Row, c.Block, model.BlockKindText, "set text")
		if err != nil {
			return err
		}
		b.Value = c.Value
		return nil
	case AddBadge:
		b, err := e.blockOfKind(c.Row, c.Block, model.BlockKindBadges, "add badge")
		if err != nil {
			return err
		}
		it := model.NewBadgeItem()
		if c.ID != "" {
			it.ID = c.ID
		}
		b.Items = append(b.Items, it)
		return nil
	case RemoveBadge:
		b, k, err := e.badge(c.Row, c.Block, c.Item, "remove badge")
		if err != nil {
			return err
		}
		b.Items = append(b.Items[:k], b.Items[k+1:]...)
		return nil
	case ToggleBadge:
		b, k, err := e.badge(c.Row, c.Block, c.Item, "toggle badge")
		if err != nil {
			return err
		}
		b.Items[k].Active = !b.Items[k].Active
		return nil
	case SetBadgeLabel:
		b, k, err := e.badge(c.Row, c.Block, c.Item, "set badge label")
		if err != nil {
			return err
		}
		b.Items[k].Label = c.Label
		return nil
	case SetBadgePayload:
		b, k, err := e.badge(c.Row, c.Block, c.Item, "set badge payload")
		if err != nil {
			return err
		}
		b.Items[k].Payload = c.Payload
		return nil
	case AddSlider:
		b, err := e.blockOfKind(c.Row, c.Block, model.BlockKindSliders, "add slider")
		if err != nil {
			return err
		}
		s := model.NewSliderItem()
		if c.ID != "" {
			s.ID = c.ID
		}
		b.Sliders = append(b.Sliders, s)
		return nil
	case RemoveSlider:
		b, k, err := e.slider(c.Row, c.Block, c.Item, "remove slider")
		if err != nil {
			return err
		}
		b.Sliders = append(b.Sliders[:k], b.Sliders[k+1:]...)
		return nil
	case SetSliderLabel:
		b, k, err := e.slider(c.Row, c.Block, c.Item, "set slider label")
		if err != nil {
			return err
		}
		b.Sliders[k].Label = c.Label
		return nil
	case SetSliderValue:
		b, k, err := e.slider(c.Row, c.Block, c.Item, "set slider value")
		if err != nil {
			return err
		}
		b.Sliders[k].Value = model.ClampSlider(b.Sliders[k], c.Value)
		return nil
	case RandomizeBadges:
		for i := range e.rows {
			for j := range e.rows[i].Blocks {
				b := &e.rows[i].Blocks[j]
				if b.Kind != model.BlockKindBadges || len(b.Items) == 0 {
					continue
				}
				k := e.intN(len(b.Items))
				b.Items[k].Active = !b.Items[k].Active
			}
		}
		return nil
	case nil:
		return errors.New("nil command")
	default:
		return errors.New("unknown command: " + CommandName(cmd))
	}
}

// addRow inserts a new row right before the first row holding an output block, so the
// prompt stays at the bottom; without an output row it appends.
func (e *Editor) addRow(c AddRow) error {
	r := model.NewRow()
	if c.ID != "" {
		r.ID = c.ID
	}
	at := len(e.rows)
	for i := range e.rows {
		if e.rows[i].HasOutput() {
			at = i
			break
		}
	}
	e.rows = append(e.rows, model.Row{})
	copy(e.rows[at+1:], e.rows[at:])
	e.rows[at] = r
	return nil
}

func (e *Editor) intN(n int) int {
	if e.rnd != nil {
		return e.rnd.IntN(n)
	}
	return rand.IntN(n)
}

func (e *Editor) row(id string) (*model.Row, error) {
	i := model.FindRow(e.rows, id)
	if i < 0 {
		return nil, errNotFound("row", id)
	}
	return &e.rows[i], nil
}

func (e *Editor) block(rowID, blockID string) (*model.Block, error) {
	r, err := e.row(rowID)
	if err != nil {
		return nil, err
	}
	j := r.FindBlock(blockID)
	if j < 0 {
		return nil, errNotFound("block", blockID)
	}
	return &r.Blocks[j], nil
}

func (e *Editor) blockOfKind(rowID, blockID string, kind model.BlockKind, op string) (*model.Block, error) {
	b, err := e.block(rowID, blockID)
	if err != nil {
		return nil, err
	}
	if b.Kind != kind {
		return nil, KindMismatchError{BlockID: blockID, Got: b.Kind, Op: op}
	}
	return b, nil
}

func (e *Editor) badge(rowID, blockID, itemID, op string) (*model.Block, int, error) {
	b, err := e.blockOfKind(rowID, blockID, model.BlockKindBadges, op)
	if err != nil {
		return nil, -1, err
	}
	k := b.FindItem(itemID)
	if k < 0 {
		return nil, -1, errNotFound("badge", itemID)
	}
	return b, k, nil
}

func (e *Editor) slider(rowID, blockID, itemID, op string) (*model.Block, int, error) {
	b, err := e.blockOfKind(rowID, blockID, model.BlockKindSliders, op)
	if err != nil {
		return nil, -1, err
	}
	k := b.FindSlider(itemID)
	if k < 0 {
		return nil, -1, errNotFound("slider", itemID)
	}
	return b, k, nil
}
