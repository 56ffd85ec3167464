// Package render projects editor state into a view tree (the canvas) that the
// terminal UI and the HTML server draw. A canvas is rebuilt from scratch on every
// call; nothing is cached between builds.
package render

import (
	"strconv"

	"promptboard/internal/editor"
	"promptboard/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

const (
	// BadgePlaceholder is shown (and measured) for badges with an empty label.
	BadgePlaceholder = "Title"
	// BadgePadding is the horizontal padding on each side of a badge label.
	BadgePadding = 1
	// UnknownBlockTitle is the placeholder shown for blocks of an unrecognized type.
	UnknownBlockTitle = "Unknown block"
)

type SlotTab struct {
	Slot   int
	Name   string
	Active bool
}

// State is everything Build needs. It mirrors what the editor exposes.
type State struct {
	Slot   int
	Slots  []SlotTab
	Rows   []model.Row
	Output string
}

type Canvas struct {
	Slot     int
	SlotName string
	Slots    []SlotTab
	Rows     []RowView
	Output   string
}

// Empty reports whether there is nothing to draw in the layout area.
func (c Canvas) Empty() bool { return len(c.Rows) == 0 }

type RowView struct {
	ID     string
	Title  string
	Cols   int
	Blocks []BlockView
}

// Columns is the column count used for layout: Cols, or 1 when Cols < 1.
func (r RowView) Columns() int {
	if r.Cols < 1 {
		return 1
	}
	return r.Cols
}

// Lines chunks the row's blocks into grid lines of Columns() blocks each.
func (r RowView) Lines() [][]BlockView {
	n := r.Columns()
	var out [][]BlockView
	for i := 0; i < len(r.Blocks); i += n {
		end := i + n
		if end > len(r.Blocks) {
			end = len(r.Blocks)
		}
		out = append(out, r.Blocks[i:end])
	}
	return out
}

type BlockView struct {
	ID    string
	Kind  model.BlockKind
	Title string
	// Known is false for blocks whose type is not one of the four variants.
	Known   bool
	Value   string
	Badges  []BadgeView
	Sliders []SliderView
}

// Editable reports whether the block's value can be edited by the user.
func (b BlockView) Editable() bool { return b.Kind == model.BlockKindText }

type BadgeView struct {
	ID      string
	Label   string
	Payload string
	Active  bool
	// Display is the text drawn on the badge: the label or BadgePlaceholder.
	Display string
	// Width is the display width of Display plus padding on both sides.
	Width int
}

type SliderView struct {
	ID    string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value float64
	// Ratio is the fill fraction of the track in [0,1].
	Ratio float64
}

func (s SliderView) ValueText() string { return FormatNumber(s.Value) }

// FormatNumber prints v without trailing zeros (50, 0.5, 12.25).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FromEditor builds the canvas for the editor's current state.
func FromEditor(e *editor.Editor) Canvas {
	st := State{Slot: e.ActiveSlot(), Rows: e.Rows(), Output: e.Output()}
	for _, s := range e.Slots() {
		st.Slots = append(st.Slots, SlotTab{Slot: s.Slot, Name: s.Name, Active: s.Active})
	}
	return Build(st)
}

// Build returns a freshly built canvas. The same state always yields the same canvas.
func Build(st State) Canvas {
	c := Canvas{
		Slot:   st.Slot,
		Slots:  append([]SlotTab(nil), st.Slots...),
		Output: st.Output,
		Rows:   make([]RowView, 0, len(st.Rows)),
	}
	for _, t := range st.Slots {
		if t.Slot == st.Slot {
			c.SlotName = t.Name
		}
	}
	for _, r := range st.Rows {
		rv := RowView{ID: r.ID, Title: r.Title, Cols: r.Cols, Blocks: make([]BlockView, 0, len(r.Blocks))}
		for _, b := range r.Blocks {
			rv.Blocks = append(rv.Blocks, buildBlock(b))
		}
		c.Rows = append(c.Rows, rv)
	}
	return c
}

func buildBlock(b model.Block) BlockView {
	v := BlockView{ID: b.ID, Kind: b.Kind, Title: b.Title, Known: b.Kind.Known()}
	switch b.Kind {
	case model.BlockKindText, model.BlockKindOutput:
		v.Value = b.Value
	case model.BlockKindBadges:
		v.Badges = make([]BadgeView, 0, len(b.Items))
		for _, it := range b.Items {
			v.Badges = append(v.Badges, buildBadge(it))
		}
	case model.BlockKindSliders:
		v.Sliders = make([]SliderView, 0, len(b.Sliders))
		for _, s := range b.Sliders {
			v.Sliders = append(v.Sliders, buildSlider(s))
		}
	default:
		v.Title = UnknownBlockTitle
	}
	return v
}

func buildBadge(it model.BadgeItem) BadgeView {
	display := it.Label
	if display == "" {
		display = BadgePlaceholder
	}
	return BadgeView{
		ID:      it.ID,
		Label:   it.Label,
		Payload: it.Payload,
		Active:  it.Active,
		Display: display,
		Width:   xansi.StringWidth(display) + 2*BadgePadding,
	}
}

func buildSlider(s model.SliderItem) SliderView {
	return SliderView{
		ID:    s.ID,
		Label: s.Label,
		Min:   s.Min,
		Max:   s.Max,
		Step:  s.Step,
		Value: s.Value,
		Ratio: sliderRatio(s),
	}
}

func sliderRatio(s model.SliderItem) float64 {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	r := (s.Value - s.Min) / span
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
