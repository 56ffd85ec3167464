package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"promptboard/internal/model"
)

// SlotCount is the number of user-selectable slots (numbered 1..SlotCount).
const SlotCount = 5

const (
	slotDataKeyPrefix = "promptboard_slot_v1_"
	slotMetaKey       = "promptboard_slots_meta_v1"
)

// LoadStatus tells "absent" apart from "unreadable". Callers collapse both to defaults.
type LoadStatus int

const (
	StatusNotFound LoadStatus = iota
	StatusFound
	StatusCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusCorrupt:
		return "corrupt"
	default:
		return "empty"
	}
}

type SlotResult struct {
	Status LoadStatus
	Rows   []model.Row
	// Detail explains a StatusCorrupt result.
	Detail string
}

type InvalidSlotError struct {
	Slot int
}

func (e InvalidSlotError) Error() string {
	return fmt.Sprintf("invalid slot %d (expected 1-%d)", e.Slot, SlotCount)
}

func ValidSlot(n int) error {
	if n < 1 || n > SlotCount {
		return InvalidSlotError{Slot: n}
	}
	return nil
}

// ParseSlot parses a slot number from user input.
func ParseSlot(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid slot %q (expected 1-%d)", s, SlotCount)
	}
	return n, ValidSlot(n)
}

func SlotDataKey(n int) string {
	return slotDataKeyPrefix + strconv.Itoa(n)
}

// LoadSlot reads the layout saved for slot n. It never fails: read and parse errors
// are reported as StatusCorrupt.
func (s Store) LoadSlot(ctx context.Context, n int) SlotResult {
	if err := ValidSlot(n); err != nil {
		return SlotResult{Status: StatusCorrupt, Detail: err.Error()}
	}
	raw, ok, err := s.Get(ctx, SlotDataKey(n))
	if err != nil {
		return SlotResult{Status: StatusCorrupt, Detail: err.Error()}
	}
	if !ok || len(raw) == 0 {
		return SlotResult{Status: StatusNotFound}
	}
	rows, err := model.DecodeLayout(raw)
	if err != nil {
		return SlotResult{Status: StatusCorrupt, Detail: err.Error()}
	}
	return SlotResult{Status: StatusFound, Rows: rows}
}

func (s Store) SaveSlot(ctx context.Context, n int, rows []model.Row) error {
	if err := ValidSlot(n); err != nil {
		return err
	}
	b, err := model.EncodeLayout(rows, false)
	if err != nil {
		return err
	}
	return s.Put(ctx, SlotDataKey(n), b)
}

// SlotInfo is one entry of the slot-name map.
type SlotInfo struct {
	Name string `json:"name"`
}

// SlotMeta maps slot number (as a string, e.g. "3") to its display settings.
type SlotMeta map[string]SlotInfo

type MetaResult struct {
	Status LoadStatus
	Meta   SlotMeta
	Detail string
}

func DefaultSlotName(n int) string {
	return "Slot " + strconv.Itoa(n)
}

func DefaultSlotMeta() SlotMeta {
	m := SlotMeta{}
	for n := 1; n <= SlotCount; n++ {
		m[strconv.Itoa(n)] = SlotInfo{Name: DefaultSlotName(n)}
	}
	return m
}

// Name returns the display name of slot n, falling back to "Slot n".
func (m SlotMeta) Name(n int) string {
	if info, ok := m[strconv.Itoa(n)]; ok && info.Name != "" {
		return info.Name
	}
	return DefaultSlotName(n)
}

func (m SlotMeta) SetName(n int, name string) {
	key := strconv.Itoa(n)
	info := m[key]
	info.Name = name
	m[key] = info
}

// LoadSlotMeta reads the slot-name map, falling back to default names when the entry
// is missing or unreadable.
func (s Store) LoadSlotMeta(ctx context.Context) MetaResult {
	raw, ok, err := s.Get(ctx, slotMetaKey)
	if err != nil {
		return MetaResult{Status: StatusCorrupt, Meta: DefaultSlotMeta(), Detail: err.Error()}
	}
	if !ok || len(raw) == 0 {
		return MetaResult{Status: StatusNotFound, Meta: DefaultSlotMeta()}
	}
	var m SlotMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		return MetaResult{Status: StatusCorrupt, Meta: DefaultSlotMeta(), Detail: err.Error()}
	}
	if m == nil {
		return MetaResult{Status: StatusCorrupt, Meta: DefaultSlotMeta(), Detail: "slot meta is null"}
	}
	return MetaResult{Status: StatusFound, Meta: m}
}

func (s Store) SaveSlotMeta(ctx context.Context, m SlotMeta) error {
	if m == nil {
		m = SlotMeta{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.Put(ctx, slotMetaKey, b)
}
