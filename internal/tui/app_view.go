package tui

import (
	"fmt"
	"math"
	"strings"

	"promptboard/internal/model"
	"promptboard/internal/render"
	"promptboard/internal/store"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	if w > maxContentW {
		w = maxContentW
	}
	return w
}

func (m appModel) View() string {
	if m.modal != modalNone {
		return placeModal(m.width, m.height, m.renderModal())
	}

	w := m.contentWidth()
	top := []string{m.renderHeader(w)}
	if m.panicBanner != "" {
		top = append(top, lipgloss.NewStyle().
			Width(w).
			Foreground(colorErrorFg).
			Background(colorErrorBg).
			Bold(true).
			Render(m.panicBanner))
	}
	footer := m.renderFooter(w)

	body, focusLine := m.renderBody(w)
	lines := strings.Split(body, "\n")
	if m.height > 0 {
		avail := m.height - lipgloss.Height(strings.Join(top, "\n")) - lipgloss.Height(footer)
		if avail < 1 {
			avail = 1
		}
		if len(lines) > avail {
			off := focusLine - avail/3
			if off > len(lines)-avail {
				off = len(lines) - avail
			}
			if off < 0 {
				off = 0
			}
			lines = lines[off : off+avail]
		}
		for len(lines) < avail {
			lines = append(lines, "")
		}
	}

	return strings.Join(append(append(top, lines...), footer), "\n")
}

func (m appModel) renderHeader(w int) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	inactive := lipgloss.NewStyle().Foreground(colorChromeMutedFg)

	tabs := make([]string, 0, len(m.canvas.Slots))
	for _, t := range m.canvas.Slots {
		label := fmt.Sprintf(" %d %s ", t.Slot, t.Name)
		if t.Active {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	left := strings.Join(tabs, " ")

	mode := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent).
		Render(strings.ToUpper(m.mode))
	gap := w - xansi.StringWidth(left) - xansi.StringWidth(mode)
	if gap < 1 {
		left = xansi.Cut(left, 0, w-xansi.StringWidth(mode)-1)
		gap = 1
	}
	header := left + strings.Repeat(" ", gap) + mode
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), w))
	return header + "\n" + rule
}

func (m appModel) renderFooter(w int) string {
	text := m.minibufferText
	if text == "" {
		if m.mode == store.ModeView {
			text = "arrows move  tab items  space toggle  +/- slider  e text  g random  y copy  1-5 slots  v edit  q quit"
		} else {
			text = "arrows move  tab items  e edit  space toggle  n row  t/b/s block  a item  x delete  c cols  y copy  ctrl+e export  i import  v view  q quit"
		}
		return styleMuted().Render(xansi.Truncate(text, w, "…"))
	}
	return lipgloss.NewStyle().Bold(true).Render(xansi.Truncate(text, w, "…"))
}

// renderBody draws the rows and returns the line index where the focused row starts.
func (m appModel) renderBody(w int) (string, int) {
	if m.canvas.Empty() {
		msg := "No rows."
		if m.mode == store.ModeEdit {
			msg += " Press n to add one."
		}
		return "\n" + styleMuted().Render(msg), 0
	}

	var out []string
	focusLine := 0
	for i, rv := range m.canvas.Rows {
		if i == m.rowIdx {
			focusLine = len(out)
		}
		out = append(out, strings.Split(m.renderRow(rv, i == m.rowIdx, w), "\n")...)
	}
	return strings.Join(out, "\n"), focusLine
}

func (m appModel) renderRow(rv render.RowView, focused bool, w int) string {
	cursor := " "
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg)
	if focused {
		cursor = glyphCursor()
		titleStyle = titleStyle.Foreground(colorSelectedFg)
	}
	title := cursor + " " + titleStyle.Render(rv.Title)
	if m.mode == store.ModeEdit {
		title += styleMuted().Render(fmt.Sprintf("  %d col", rv.Cols))
	}

	lines := []string{title}
	if len(rv.Blocks) == 0 {
		hint := "(empty row)"
		if m.mode == store.ModeEdit {
			hint = "(empty row: t/b/s adds a block)"
		}
		lines = append(lines, "  "+styleMuted().Render(hint))
		return strings.Join(lines, "\n")
	}

	widths := columnWidths(w, rv.Columns(), cellGapW)
	idx := 0
	for _, line := range rv.Lines() {
		cells := make([]string, 0, len(line))
		for k, b := range line {
			bf := focused && idx == m.blockIdx
			item := -1
			if bf {
				item = m.itemIdx
			}
			cells = append(cells, m.renderBlock(b, widths[k], bf, item))
			idx++
		}
		lines = append(lines, joinCells(cells, widths[:len(cells)], cellGapW))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderBlock(b render.BlockView, w int, focused bool, item int) string {
	inner := w - 4
	if inner < 4 {
		inner = 4
	}
	border := colorCardBorder
	if focused {
		border = colorSelectedBorder
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(inner + 2)

	title := lipgloss.NewStyle().Bold(true).Render(b.Title)
	if focused && item < 0 {
		title = glyphCursor() + " " + title
	}
	if m.mode == store.ModeEdit && b.Known {
		title += styleMuted().Render(" " + string(b.Kind))
	}

	var body string
	switch b.Kind {
	case model.BlockKindText:
		body = b.Value
		if strings.TrimSpace(body) == "" {
			body = styleMuted().Render("(empty: e to edit)")
		}
	case model.BlockKindOutput:
		body = b.Value
		if body == "" {
			body = styleMuted().Render("(nothing selected yet)")
		}
	case model.BlockKindBadges:
		body = m.renderBadges(b, inner, item)
	case model.BlockKindSliders:
		body = m.renderSliders(b, inner, item)
	default:
		body = styleMuted().Render(fmt.Sprintf("type %q is not supported", string(b.Kind)))
	}
	return box.Render(title + "\n" + body)
}

func (m appModel) renderBadges(b render.BlockView, inner int, item int) string {
	if len(b.Badges) == 0 {
		if m.mode == store.ModeEdit {
			return styleMuted().Render("(no badges: a to add)")
		}
		return styleMuted().Render("(no badges)")
	}

	base := lipgloss.NewStyle().Padding(0, render.BadgePadding).Foreground(colorBadgeFg).Background(colorBadgeBg)
	on := base.Foreground(colorAccentFg).Background(colorAccent).Bold(true)

	var lines []string
	var cur []string
	curW := 0
	for i, bd := range b.Badges {
		st := base
		if bd.Active {
			st = on
		}
		if i == item {
			st = st.Underline(true)
		}
		chip := st.Render(bd.Display)
		if curW > 0 && curW+1+bd.Width > inner {
			lines = append(lines, strings.Join(cur, " "))
			cur, curW = nil, 0
		}
		if curW > 0 {
			curW++
		}
		cur = append(cur, chip)
		curW += bd.Width
	}
	lines = append(lines, strings.Join(cur, " "))

	if m.mode == store.ModeEdit {
		for i, bd := range b.Badges {
			mark := " "
			if i == item {
				mark = glyphCursor()
			} else if bd.Active {
				mark = glyphBadgeOn()
			}
			payload := bd.Payload
			if payload == "" {
				payload = "(empty)"
			}
			lines = append(lines, styleMuted().Render(fmt.Sprintf("%s %s: %s", mark, bd.Display, payload)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderSliders(b render.BlockView, inner int, item int) string {
	if len(b.Sliders) == 0 {
		if m.mode == store.ModeEdit {
			return styleMuted().Render("(no sliders: a to add)")
		}
		return styleMuted().Render("(no sliders)")
	}

	labelW := inner / 3
	if labelW > 14 {
		labelW = 14
	}
	lines := make([]string, 0, len(b.Sliders))
	for i, s := range b.Sliders {
		mark := " "
		if i == item {
			mark = glyphCursor()
		}
		value := s.ValueText()
		trackW := inner - 2 - labelW - 1 - xansi.StringWidth(value) - 1
		if trackW < 4 {
			trackW = 4
		}
		label := fitCell(xansi.Truncate(s.Label, labelW, "…"), labelW, 1)
		lines = append(lines, mark+" "+label+" "+renderTrack(s.Ratio, trackW)+" "+value)
	}
	return strings.Join(lines, "\n")
}

func renderTrack(ratio float64, width int) string {
	knob := int(math.Round(ratio * float64(width-1)))
	fill := lipgloss.NewStyle().Foreground(colorAccent)
	return fill.Render(strings.Repeat(glyphTrackFill(), knob)) +
		fill.Bold(true).Render(glyphTrackKnob()) +
		styleMuted().Render(strings.Repeat(glyphTrackEmpty(), width-1-knob))
}

func (m appModel) renderModal() string {
	bodyW := modalBodyWidth(m.width)
	switch m.modal {
	case modalAlert:
		return renderAlertModal(m.width, m.alertTitle, m.alertBody)
	case modalConfirmRemoveRow:
		name := ""
		for _, r := range m.canvas.Rows {
			if r.ID == m.edit.row {
				name = r.Title
			}
		}
		return renderConfirmModal(m.width, "Remove row", fmt.Sprintf("Remove row %q and all of its blocks?", name), "Remove", "Cancel", m.confirmFocus)
	case modalExport:
		return renderModalBox(m.width, "Export layout", m.viewport.View()+"\n\n"+modalHelp(bodyW, "up/down: scroll", "y: copy", "esc: close"))
	case modalEditText:
		return renderModalBox(m.width, "Edit text", m.textarea.View()+"\n\n"+modalHelp(bodyW, "ctrl+s: save", "esc: cancel"))
	case modalImport:
		intro := styleMuted().Width(bodyW).Render("Path to a layout JSON file, or paste the JSON itself.")
		return renderModalBox(m.width, "Import layout", intro+"\n\n"+renderInputLine(bodyW, m.input.View())+"\n\n"+modalHelp(bodyW, "enter: import", "esc: cancel"))
	case modalRenameSlot:
		title := fmt.Sprintf("Rename slot %d", m.ed.ActiveSlot())
		return renderModalBox(m.width, title, renderInputLine(bodyW, m.input.View())+"\n\n"+modalHelp(bodyW, "enter: save", "esc: cancel"))
	case modalEditLine:
		return renderModalBox(m.width, fieldTitle(m.edit.field), renderInputLine(bodyW, m.input.View())+"\n\n"+modalHelp(bodyW, "enter: save", "esc: cancel"))
	}
	return ""
}

func fieldTitle(f editField) string {
	switch f {
	case fieldRowTitle:
		return "Row title"
	case fieldBlockTitle:
		return "Block title"
	case fieldBadgeLabel:
		return "Badge label"
	case fieldBadgePayload:
		return "Badge payload"
	case fieldSliderLabel:
		return "Slider label"
	case fieldSliderValue:
		return "Slider value"
	}
	return "Edit"
}
