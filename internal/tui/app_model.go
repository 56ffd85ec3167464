package tui

import (
	"time"

	"promptboard/internal/clipboard"
	"promptboard/internal/editor"
	"promptboard/internal/render"
	"promptboard/internal/store"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"
)

// editField names what a line/text modal writes back to.
type editField int

const (
	fieldNone editField = iota
	fieldText
	fieldRowTitle
	fieldBlockTitle
	fieldBadgeLabel
	fieldBadgePayload
	fieldSliderLabel
	fieldSliderValue
)

type editTarget struct {
	field editField
	row   string
	block string
	item  string
}

type appModel struct {
	ed *editor.Editor
	// store persists ui_state.json only; slot data goes through the editor.
	store store.Store
	log   *zap.Logger

	canvas render.Canvas
	mode   string

	width  int
	height int

	// Focus indices into canvas. itemIdx is -1 when the block itself is focused.
	rowIdx   int
	blockIdx int
	itemIdx  int

	modal        modalKind
	edit         editTarget
	input        textinput.Model
	textarea     textarea.Model
	viewport     viewport.Model
	exportText   string
	confirmFocus confirmModalFocus
	alertTitle   string
	alertBody    string

	minibufferText  string
	minibufferSetAt time.Time

	// panicBanner stays on screen once an action has panicked.
	panicBanner string

	copyText func(string) error
}

const minibufferAutoClearAfter = 4 * time.Second

func newAppModel(ed *editor.Editor, opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	mode := opts.Mode
	if mode != store.ModeView {
		mode = store.ModeEdit
	}

	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 0

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0

	m := appModel{
		ed:       ed,
		store:    opts.Store,
		log:      log,
		mode:     mode,
		itemIdx:  -1,
		input:    in,
		textarea: ta,
		viewport: viewport.New(0, 0),
		copyText: clipboard.Write,
	}
	m.rebuild()
	return m
}

// rebuild re-projects the editor into a fresh canvas and keeps focus in range.
func (m *appModel) rebuild() {
	m.canvas = render.FromEditor(m.ed)
	m.clampFocus()
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSetAt = time.Now()
}

func (m *appModel) showAlert(title, body string) {
	m.modal = modalAlert
	m.alertTitle = title
	m.alertBody = body
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.edit = editTarget{}
	m.input.Blur()
	m.input.SetValue("")
	m.textarea.Blur()
	m.textarea.SetValue("")
	m.exportText = ""
}

func (m *appModel) saveUIState() {
	if err := m.store.SaveUIState(&store.UIState{Version: 1, ActiveSlot: m.ed.ActiveSlot(), Mode: m.mode}); err != nil {
		m.log.Warn("save ui state failed", zap.Error(err))
	}
}
