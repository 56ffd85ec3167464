package editor

import (
	"context"
	"strings"

	"promptboard/internal/model"
	"promptboard/internal/store"

	"go.uber.org/zap"
)

// SlotInfo describes one slot for slot pickers.
type SlotInfo struct {
	Slot   int    `json:"slot"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// SwitchSlot makes slot n active and loads its rows. Slots with no saved data, or with
// data that cannot be read, get the default layout; neither case is an error.
func (e *Editor) SwitchSlot(ctx context.Context, n int) error {
	if err := store.ValidSlot(n); err != nil {
		return err
	}
	res := e.store.LoadSlot(ctx, n)
	e.slot = n
	switch res.Status {
	case store.StatusFound:
		e.rows = res.Rows
	case store.StatusCorrupt:
		e.log.Warn("slot data unreadable; using default layout", zap.Int("slot", n), zap.String("detail", res.Detail))
		e.rows = model.DefaultLayout()
	default:
		e.rows = model.DefaultLayout()
	}
	e.log.Info("slot switched", zap.Int("slot", n), zap.Stringer("status", res.Status), zap.Int("rows", len(e.rows)))
	e.commit(ctx)
	return nil
}

// Reload re-reads the slot-name map and the active slot from the store.
func (e *Editor) Reload(ctx context.Context) error {
	e.loadMeta(ctx)
	if e.slot == 0 {
		return errNoSlot
	}
	return e.SwitchSlot(ctx, e.slot)
}

// RenameSlot sets the display name of slot n. Blank names are ignored. The name is
// updated in memory even when persisting the map fails; that error is returned.
func (e *Editor) RenameSlot(ctx context.Context, n int, name string) error {
	if err := store.ValidSlot(n); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	e.meta.SetName(n, name)
	if err := e.store.SaveSlotMeta(ctx, e.meta); err != nil {
		e.log.Warn("save slot names failed", zap.Int("slot", n), zap.Error(err))
		return err
	}
	return nil
}

func (e *Editor) SlotName(n int) string {
	return e.meta.Name(n)
}

func (e *Editor) Slots() []SlotInfo {
	out := make([]SlotInfo, 0, store.SlotCount)
	for n := 1; n <= store.SlotCount; n++ {
		out = append(out, SlotInfo{Slot: n, Name: e.meta.Name(n), Active: n == e.slot})
	}
	return out
}

func (e *Editor) loadMeta(ctx context.Context) {
	res := e.store.LoadSlotMeta(ctx)
	if res.Status == store.StatusCorrupt {
		e.log.Warn("slot names unreadable; using defaults", zap.String("detail", res.Detail))
	}
	e.meta = res.Meta
	if e.meta == nil {
		e.meta = store.DefaultSlotMeta()
	}
}
