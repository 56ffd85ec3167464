// Package tui is the interactive terminal renderer. It draws the canvas built by
// package render and turns key presses into editor commands.
package tui

import (
	"promptboard/internal/editor"
	"promptboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	// Store is where ui_state.json is kept.
	Store store.Store
	// Mode is the initial layout mode (edit|view).
	Mode string
	// Theme is the configured theme (auto|light|dark).
	Theme  string
	Logger *zap.Logger
}

func Run(ed *editor.Editor, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference()

	m := newAppModel(ed, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
