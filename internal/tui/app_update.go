package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"promptboard/internal/editor"
	"promptboard/internal/model"
	"promptboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type minibufferTickMsg struct{}

func tickMinibuffer() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return minibufferTickMsg{} })
}

func (m appModel) Init() tea.Cmd { return tickMinibuffer() }

// Update recovers panics raised while handling a message: the action is dropped
// and a persistent error banner is shown instead.
func (m appModel) Update(msg tea.Msg) (out tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			loc := panicLocation()
			m.panicBanner = fmt.Sprintf("[error] %v @ %s", r, loc)
			m.log.Error("panic in update", zap.Any("panic", r), zap.String("at", loc))
			m.rebuild()
			out, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m appModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sizeViewport()
		return m, nil

	case minibufferTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, tickMinibuffer()

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.modal {
	case modalEditLine, modalRenameSlot, modalImport:
		m.input, cmd = m.input.Update(msg)
	case modalEditText:
		m.textarea, cmd = m.textarea.Update(msg)
	case modalExport:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// dispatch runs cmd through the editor and rebuilds the canvas. Rejected commands
// are reported in the minibuffer.
func (m *appModel) dispatch(cmd editor.Command) bool {
	if err := m.ed.Dispatch(context.Background(), cmd); err != nil {
		m.showMinibuffer(err.Error())
		return false
	}
	m.afterCommit()
	return true
}

func (m *appModel) afterCommit() {
	if err := m.ed.LastSaveError(); err != nil {
		m.showMinibuffer("Autosave failed: " + err.Error())
	}
	m.rebuild()
}

// layoutLocked reports (and explains) that a structural edit was attempted in view mode.
func (m *appModel) layoutLocked() bool {
	if m.mode == store.ModeView {
		m.showMinibuffer("Layout is locked (v: edit mode)")
		return true
	}
	return false
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		m.saveUIState()
		return m, tea.Quit

	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(key)
		m.switchSlot(n)
		return m, nil
	case "R":
		m.openLineModal(modalRenameSlot, editTarget{}, m.ed.SlotName(m.ed.ActiveSlot()))
		return m, nil
	case "r":
		if err := m.ed.Reload(context.Background()); err != nil {
			m.showMinibuffer("Reload: " + err.Error())
		} else {
			m.showMinibuffer("Reloaded")
		}
		m.afterCommit()
		return m, nil

	case "up", "k":
		m.moveFocusRow(-1)
	case "down", "j":
		m.moveFocusRow(1)
	case "left", "h":
		m.moveFocusBlock(-1)
	case "right", "l":
		m.moveFocusBlock(1)
	case "tab":
		m.moveFocusItem(1)
	case "shift+tab":
		m.moveFocusItem(-1)
	case "esc":
		m.itemIdx = -1

	case "v":
		if m.mode == store.ModeEdit {
			m.mode = store.ModeView
		} else {
			m.mode = store.ModeEdit
		}
		m.saveUIState()
		m.showMinibuffer("Mode: " + m.mode)

	case "n":
		if m.layoutLocked() {
			break
		}
		id := model.NewID(model.RowIDPrefix)
		if m.dispatch(editor.AddRow{ID: id}) {
			m.focusIDs(id, "", "")
		}
	case "t", "b", "s":
		if m.layoutLocked() {
			break
		}
		m.addBlock(map[string]model.BlockKind{"t": model.BlockKindText, "b": model.BlockKindBadges, "s": model.BlockKindSliders}[key])
	case "a":
		if m.layoutLocked() {
			break
		}
		m.addItem()
	case "x":
		if m.layoutLocked() {
			break
		}
		m.removeFocused()
	case "D":
		if m.layoutLocked() {
			break
		}
		if r, ok := m.focusedRow(); ok {
			m.modal = modalConfirmRemoveRow
			m.edit = editTarget{row: r.ID}
			m.confirmFocus = confirmFocusCancel
		}
	case "J", "K":
		if m.layoutLocked() {
			break
		}
		if r, ok := m.focusedRow(); ok {
			d := 1
			if key == "K" {
				d = -1
			}
			if m.dispatch(editor.MoveRow{Row: r.ID, Delta: d}) {
				m.focusIDs(r.ID, "", "")
			}
		}
	case "H", "L":
		if m.layoutLocked() {
			break
		}
		if r, b, ok := m.focusedBlock(); ok {
			d := 1
			if key == "H" {
				d = -1
			}
			if m.dispatch(editor.MoveBlock{Row: r.ID, Block: b.ID, Delta: d}) {
				m.focusIDs(r.ID, b.ID, "")
			}
		}
	case "c":
		if m.layoutLocked() {
			break
		}
		if r, ok := m.focusedRow(); ok {
			m.dispatch(editor.SetRowCols{Row: r.ID, Cols: r.Columns()%3 + 1})
		}
	case "T":
		if m.layoutLocked() {
			break
		}
		if r, ok := m.focusedRow(); ok {
			m.openLineModal(modalEditLine, editTarget{field: fieldRowTitle, row: r.ID}, r.Title)
		}
	case "E":
		if m.layoutLocked() {
			break
		}
		if r, b, ok := m.focusedBlock(); ok && b.Known {
			m.openLineModal(modalEditLine, editTarget{field: fieldBlockTitle, row: r.ID, block: b.ID}, b.Title)
		}
	case "p":
		if m.layoutLocked() {
			break
		}
		if r, b, it, ok := m.focusedBadge(); ok {
			m.openLineModal(modalEditLine, editTarget{field: fieldBadgePayload, row: r.ID, block: b.ID, item: it.ID}, it.Payload)
		}
	case "e":
		m.editFocused()
	case "enter", " ":
		m.activateFocused()
	case "+", "=", "-", "_":
		if r, b, s, ok := m.focusedSlider(); ok {
			step := s.Step
			if step <= 0 {
				step = 1
			}
			if key == "-" || key == "_" {
				step = -step
			}
			m.dispatch(editor.SetSliderValue{Row: r.ID, Block: b.ID, Item: s.ID, Value: s.Value + step})
		}
	case "g":
		m.dispatch(editor.RandomizeBadges{})

	case "y":
		if err := m.copyText(m.ed.Output()); err != nil {
			m.showAlert("Copy failed", err.Error())
		} else {
			m.showMinibuffer("Copied prompt to clipboard")
		}
	case "ctrl+e":
		data, err := m.ed.Export()
		if err != nil {
			m.showAlert("Export failed", err.Error())
			break
		}
		m.modal = modalExport
		m.exportText = string(data)
		m.sizeViewport()
		m.viewport.SetContent(m.exportText)
		m.viewport.GotoTop()
	case "i":
		m.openLineModal(modalImport, editTarget{}, "")
	}
	return m, nil
}

func (m *appModel) switchSlot(n int) {
	if err := m.ed.SwitchSlot(context.Background(), n); err != nil {
		m.showMinibuffer(err.Error())
		return
	}
	m.rowIdx, m.blockIdx, m.itemIdx = 0, 0, -1
	m.afterCommit()
	m.saveUIState()
}

func (m *appModel) addBlock(kind model.BlockKind) {
	r, ok := m.focusedRow()
	if !ok {
		m.showMinibuffer("No row (n: new row)")
		return
	}
	id := model.NewID(model.BlockIDPrefix)
	if m.dispatch(editor.AddBlock{Row: r.ID, Kind: kind, ID: id}) {
		m.focusIDs(r.ID, id, "")
	}
}

func (m *appModel) addItem() {
	r, b, ok := m.focusedBlock()
	if !ok {
		return
	}
	switch b.Kind {
	case model.BlockKindBadges:
		id := model.NewID(model.BadgeIDPrefix)
		if m.dispatch(editor.AddBadge{Row: r.ID, Block: b.ID, ID: id}) {
			m.focusIDs(r.ID, b.ID, id)
		}
	case model.BlockKindSliders:
		id := model.NewID(model.SliderIDPrefix)
		if m.dispatch(editor.AddSlider{Row: r.ID, Block: b.ID, ID: id}) {
			m.focusIDs(r.ID, b.ID, id)
		}
	default:
		m.showMinibuffer("Only badges and sliders blocks have items")
	}
}

func (m *appModel) removeFocused() {
	r, b, ok := m.focusedBlock()
	if !ok {
		return
	}
	if _, _, it, ok := m.focusedBadge(); ok {
		m.dispatch(editor.RemoveBadge{Row: r.ID, Block: b.ID, Item: it.ID})
		return
	}
	if _, _, s, ok := m.focusedSlider(); ok {
		m.dispatch(editor.RemoveSlider{Row: r.ID, Block: b.ID, Item: s.ID})
		return
	}
	if m.dispatch(editor.RemoveBlock{Row: r.ID, Block: b.ID}) {
		m.itemIdx = -1
	}
}

// editFocused opens an editor for the focused entity's main text.
func (m *appModel) editFocused() {
	r, b, ok := m.focusedBlock()
	if !ok {
		return
	}
	switch b.Kind {
	case model.BlockKindText:
		m.openTextModal(editTarget{field: fieldText, row: r.ID, block: b.ID}, b.Value)
	case model.BlockKindOutput:
		m.showMinibuffer("The output block is derived from the other blocks")
	case model.BlockKindBadges:
		if m.layoutLocked() {
			return
		}
		if _, _, it, ok := m.focusedBadge(); ok {
			m.openLineModal(modalEditLine, editTarget{field: fieldBadgeLabel, row: r.ID, block: b.ID, item: it.ID}, it.Label)
		}
	case model.BlockKindSliders:
		if m.layoutLocked() {
			return
		}
		if _, _, s, ok := m.focusedSlider(); ok {
			m.openLineModal(modalEditLine, editTarget{field: fieldSliderLabel, row: r.ID, block: b.ID, item: s.ID}, s.Label)
		}
	}
}

// activateFocused is the enter/space action: toggle a badge, set a slider value or
// edit a text block.
func (m *appModel) activateFocused() {
	r, b, ok := m.focusedBlock()
	if !ok {
		return
	}
	if _, _, it, ok := m.focusedBadge(); ok {
		m.dispatch(editor.ToggleBadge{Row: r.ID, Block: b.ID, Item: it.ID})
		return
	}
	if _, _, s, ok := m.focusedSlider(); ok {
		m.openLineModal(modalEditLine, editTarget{field: fieldSliderValue, row: r.ID, block: b.ID, item: s.ID}, s.ValueText())
		return
	}
	if b.Kind == model.BlockKindText {
		m.openTextModal(editTarget{field: fieldText, row: r.ID, block: b.ID}, b.Value)
	}
}

func (m *appModel) openLineModal(kind modalKind, target editTarget, value string) {
	m.modal = kind
	m.edit = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) openTextModal(target editTarget, value string) {
	m.modal = modalEditText
	m.edit = target
	m.textarea.SetValue(value)
	m.textarea.Focus()
}

func (m *appModel) sizeViewport() {
	w := modalBodyWidth(m.width)
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.textarea.SetWidth(w)
	th := h - 4
	if th > 12 {
		th = 12
	}
	if th < 3 {
		th = 3
	}
	m.textarea.SetHeight(th)
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.modal {
	case modalAlert:
		switch key {
		case "enter", "esc", "q", " ":
			m.closeModal()
		}
		return m, nil

	case modalConfirmRemoveRow:
		switch key {
		case "tab", "shift+tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
		case "y":
			m.confirmRemoveRow()
		case "enter":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmRemoveRow()
			} else {
				m.closeModal()
			}
		case "n", "esc", "ctrl+g":
			m.closeModal()
		}
		return m, nil

	case modalExport:
		switch key {
		case "esc", "q", "ctrl+e":
			m.closeModal()
			return m, nil
		case "y":
			if err := m.copyText(m.exportText); err != nil {
				m.showAlert("Copy failed", err.Error())
			} else {
				m.showMinibuffer("Copied layout JSON to clipboard")
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case modalEditText:
		switch key {
		case "esc", "ctrl+g":
			m.closeModal()
			return m, nil
		case "ctrl+s":
			target, value := m.edit, m.textarea.Value()
			m.closeModal()
			m.dispatch(editor.SetText{Row: target.row, Block: target.block, Value: value})
			return m, nil
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	case modalEditLine, modalRenameSlot, modalImport:
		switch key {
		case "esc", "ctrl+g":
			m.closeModal()
			return m, nil
		case "enter":
			m.submitLine()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) confirmRemoveRow() {
	rowID := m.edit.row
	m.closeModal()
	m.dispatch(editor.RemoveRow{Row: rowID})
}

func (m *appModel) submitLine() {
	kind, t, value := m.modal, m.edit, m.input.Value()
	m.closeModal()

	switch kind {
	case modalRenameSlot:
		if err := m.ed.RenameSlot(context.Background(), m.ed.ActiveSlot(), value); err != nil {
			m.showMinibuffer("Rename failed: " + err.Error())
		}
		m.rebuild()
		return
	case modalImport:
		m.importFrom(value)
		return
	}

	var cmd editor.Command
	switch t.field {
	case fieldRowTitle:
		cmd = editor.SetRowTitle{Row: t.row, Title: value}
	case fieldBlockTitle:
		cmd = editor.SetBlockTitle{Row: t.row, Block: t.block, Title: value}
	case fieldBadgeLabel:
		cmd = editor.SetBadgeLabel{Row: t.row, Block: t.block, Item: t.item, Label: value}
	case fieldBadgePayload:
		cmd = editor.SetBadgePayload{Row: t.row, Block: t.block, Item: t.item, Payload: value}
	case fieldSliderLabel:
		cmd = editor.SetSliderLabel{Row: t.row, Block: t.block, Item: t.item, Label: value}
	case fieldSliderValue:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			m.showMinibuffer("Not a number: " + value)
			return
		}
		cmd = editor.SetSliderValue{Row: t.row, Block: t.block, Item: t.item, Value: v}
	default:
		return
	}
	m.dispatch(cmd)
}

// importFrom imports a layout from a file path, or from JSON typed/pasted directly.
func (m *appModel) importFrom(src string) {
	src = strings.TrimSpace(src)
	if src == "" {
		return
	}
	data := []byte(src)
	if !strings.HasPrefix(src, "{") {
		b, err := os.ReadFile(src)
		if err != nil {
			m.showAlert("Import failed", err.Error())
			return
		}
		data = b
	}
	if err := m.ed.Import(context.Background(), data); err != nil {
		msg := err.Error()
		if errors.Is(err, model.ErrInvalidJSON) {
			msg = "Invalid JSON."
		} else if errors.Is(err, model.ErrMissingRows) {
			msg = `Invalid layout: missing "rows" array.`
		}
		m.showAlert("Import failed", msg)
		return
	}
	m.rowIdx, m.blockIdx, m.itemIdx = 0, 0, -1
	m.afterCommit()
	m.showMinibuffer("Layout imported")
}
