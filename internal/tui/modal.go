package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditLine
	modalEditText
	modalRenameSlot
	modalExport
	modalImport
	modalAlert
	modalConfirmRemoveRow
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

const modalMaxW = 72

func modalWidth(screenW int) int {
	w := screenW - 4
	if w > modalMaxW {
		w = modalMaxW
	}
	if w < 24 {
		w = 24
	}
	return w
}

func modalBodyWidth(width int) int {
	w := modalWidth(width) - 4
	if w < 10 {
		w = 10
	}
	return w
}

// renderModalBox draws a titled box on the modal surface. Borders are avoided so
// terminals don't show background artifacts around the box.
func renderModalBox(width int, title string, body string) string {
	w := modalWidth(width)
	header := lipgloss.NewStyle().
		Width(w).
		Padding(0, 2).
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Render(title)
	content := lipgloss.NewStyle().
		Width(w).
		Padding(1, 2).
		Foreground(colorModalSurfaceFg).
		Background(colorModalSurfaceBg).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func renderAlertModal(width int, title, body string) string {
	bodyW := modalBodyWidth(width)
	msg := lipgloss.NewStyle().Width(bodyW).Render(body)
	help := styleMuted().Width(bodyW).Render("enter/esc: dismiss")
	return renderModalBox(width, title, msg+"\n\n"+help)
}

// placeModal centers a rendered modal on a screen of the given size.
func placeModal(screenW, screenH int, modal string) string {
	if screenW <= 0 || screenH <= 0 {
		return modal
	}
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "))
}

func modalHelp(bodyW int, keys ...string) string {
	return styleMuted().Width(bodyW).Render(strings.Join(keys, "   "))
}
