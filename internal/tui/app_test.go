package tui

import (
	"errors"
	"strings"
	"testing"

	"promptboard/internal/model"
)

func TestAppModel_HelloWorldFlow(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)

	m = press(t, m, "e")
	if m.modal != modalEditText {
		t.Fatalf("expected text modal; got %v", m.modal)
	}
	m.textarea.SetValue("Hello")
	m = press(t, m, "ctrl+s")
	if m.modal != modalNone || m.ed.Output() != "Hello" {
		t.Fatalf("expected Hello; modal=%v output=%q", m.modal, m.ed.Output())
	}

	m = press(t, m, "right", "a", "p")
	if m.modal != modalEditLine || m.edit.field != fieldBadgePayload {
		t.Fatalf("expected payload modal; got modal=%v field=%v", m.modal, m.edit.field)
	}
	m = typeText(t, m, "world")
	m = press(t, m, "enter")
	if m.ed.Output() != "Hello" {
		t.Fatalf("inactive badge must not contribute; got %q", m.ed.Output())
	}

	m = press(t, m, "space")
	if got := m.ed.Output(); got != "Hello\nworld" {
		t.Fatalf("Output = %q; want %q", got, "Hello\nworld")
	}
	if !strings.Contains(m.View(), "world") {
		t.Fatalf("expected view to show the output")
	}

	m = press(t, m, "space")
	if got := m.ed.Output(); got != "Hello" {
		t.Fatalf("after toggle off Output = %q", got)
	}
}

func TestAppModel_AddRowFocusesNewRowBeforeOutput(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(t, m, "n")

	rows := m.ed.Rows()
	if len(rows) != 3 || !rows[2].HasOutput() {
		t.Fatalf("expected new row before the output row; got %d rows", len(rows))
	}
	if m.rowIdx != 1 {
		t.Fatalf("expected focus on the new row; got %d", m.rowIdx)
	}

	m = press(t, m, "b")
	if r := m.ed.Rows()[1]; len(r.Blocks) != 1 || r.Blocks[0].Kind != model.BlockKindBadges {
		t.Fatalf("expected badges block in new row; got %#v", r.Blocks)
	}
}

func TestAppModel_ViewModeLocksLayout(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(t, m, "v", "n", "x", "c")

	if n := len(m.ed.Rows()); n != 2 {
		t.Fatalf("expected layout unchanged in view mode; got %d rows", n)
	}
	if m.ed.Rows()[0].Cols != 2 || len(m.ed.Rows()[0].Blocks) != 2 {
		t.Fatalf("expected first row unchanged: %#v", m.ed.Rows()[0])
	}
	if !strings.Contains(m.minibufferText, "locked") {
		t.Fatalf("expected locked hint; got %q", m.minibufferText)
	}
	if strings.Contains(m.View(), "(empty)") {
		t.Fatalf("view mode must hide payload listings")
	}
}

func TestAppModel_CycleCols(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(t, m, "c")
	if got := m.ed.Rows()[0].Cols; got != 3 {
		t.Fatalf("expected 3 cols; got %d", got)
	}
	m = press(t, m, "c")
	if got := m.ed.Rows()[0].Cols; got != 1 {
		t.Fatalf("expected wrap to 1 col; got %d", got)
	}
}

func TestAppModel_SliderKeys(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(t, m, "s", "a", "+")

	value := func() float64 { return m.ed.Rows()[0].Blocks[2].Sliders[0].Value }
	if value() != 51 {
		t.Fatalf("expected 51; got %v", value())
	}
	m = press(t, m, "-", "-")
	if value() != 49 {
		t.Fatalf("expected 49; got %v", value())
	}

	m = press(t, m, "enter")
	if m.modal != modalEditLine || m.edit.field != fieldSliderValue {
		t.Fatalf("expected slider value modal; got %v", m.modal)
	}
	m.input.SetValue("500")
	m = press(t, m, "enter")
	if value() != 100 {
		t.Fatalf("expected clamp to 100; got %v", value())
	}
}

func TestAppModel_ImportRejectedShowsAlert(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	before := m.ed.Rows()

	m = press(t, m, "i")
	m = typeText(t, m, `{"notrows":1}`)
	m = press(t, m, "enter")

	if m.modal != modalAlert || !strings.Contains(m.alertBody, `"rows"`) {
		t.Fatalf("expected alert about rows; modal=%v body=%q", m.modal, m.alertBody)
	}
	if got := m.ed.Rows(); len(got) != len(before) || got[0].ID != before[0].ID {
		t.Fatalf("rows changed after rejected import")
	}
	m = press(t, m, "enter")
	if m.modal != modalNone {
		t.Fatalf("expected alert dismissed")
	}
}

func TestAppModel_ImportEmptyRows(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(t, m, "i")
	m = typeText(t, m, `{"rows":[]}`)
	m = press(t, m, "enter")

	if m.modal != modalNone || len(m.ed.Rows()) != 0 || m.ed.Output() != "" {
		t.Fatalf("expected empty layout; modal=%v rows=%d", m.modal, len(m.ed.Rows()))
	}
	if !strings.Contains(m.View(), "No rows") {
		t.Fatalf("expected empty canvas message")
	}
}

func TestAppModel_ExportModal(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	var copied string
	m.copyText = func(s string) error { copied = s; return nil }

	m = press(t, m, "ctrl+e")
	if m.modal != modalExport || !strings.Contains(m.exportText, `"rows": [`) {
		t.Fatalf("expected export modal with pretty JSON; got %q", m.exportText)
	}
	m = press(t, m, "y")
	if _, err := model.DecodeLayout([]byte(copied)); err != nil {
		t.Fatalf("copied export does not decode: %v", err)
	}
	m = press(t, m, "esc")
	if m.modal != modalNone {
		t.Fatalf("expected export modal closed")
	}
}

func TestAppModel_CopyFailureShowsAlert(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.copyText = func(string) error { return errors.New("no clipboard") }
	m = press(t, m, "y")
	if m.modal != modalAlert || m.alertBody != "no clipboard" {
		t.Fatalf("expected copy failure alert; modal=%v body=%q", m.modal, m.alertBody)
	}
}

func TestAppModel_PanicShowsBanner(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.copyText = func(string) error { panic("boom") }
	m = press(t, m, "y")

	if !strings.HasPrefix(m.panicBanner, "[error] boom @ ") || !strings.Contains(m.panicBanner, ".go:") {
		t.Fatalf("unexpected banner: %q", m.panicBanner)
	}
	// The banner persists across later actions.
	m = press(t, m, "down")
	if !strings.Contains(m.View(), "[error] boom") {
		t.Fatalf("expected banner in view")
	}
}

func TestAppModel_RemoveRowNeedsConfirmation(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(t, m, "D")
	if m.modal != modalConfirmRemoveRow {
		t.Fatalf("expected confirm modal")
	}
	m = press(t, m, "enter") // cancel has focus
	if len(m.ed.Rows()) != 2 {
		t.Fatalf("expected cancel to keep the row")
	}
	m = press(t, m, "D", "y")
	if len(m.ed.Rows()) != 1 {
		t.Fatalf("expected row removed; got %d", len(m.ed.Rows()))
	}
}

func TestAppModel_RenameSlot(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	m = press(t, m, "R")
	m.input.SetValue("Portraits")
	m = press(t, m, "enter")

	if got := m.canvas.SlotName; got != "Portraits" {
		t.Fatalf("SlotName = %q", got)
	}
	if got := s.LoadSlotMeta(t.Context()).Meta.Name(1); got != "Portraits" {
		t.Fatalf("persisted name = %q", got)
	}
}

func TestAppModel_MoveAndFocus(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	first := m.ed.Rows()[0].ID
	m = press(t, m, "J")
	if m.ed.Rows()[1].ID != first || m.rowIdx != 1 {
		t.Fatalf("expected row moved down with focus; rowIdx=%d", m.rowIdx)
	}
	m = press(t, m, "K")
	if m.ed.Rows()[0].ID != first || m.rowIdx != 0 {
		t.Fatalf("expected row moved back up; rowIdx=%d", m.rowIdx)
	}

	m = press(t, m, "right", "tab")
	if m.itemIdx != -1 {
		t.Fatalf("empty badges block has no items to focus; got %d", m.itemIdx)
	}
	m = press(t, m, "a", "a", "tab")
	if m.itemIdx != -1 {
		t.Fatalf("expected tab past last item to return to the block; got %d", m.itemIdx)
	}
	m = press(t, m, "shift+tab")
	if m.itemIdx != 1 {
		t.Fatalf("expected shift+tab to wrap to last item; got %d", m.itemIdx)
	}
}
