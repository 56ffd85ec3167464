package model

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultRowTitle     = "Row"
	DefaultOutputTitle  = "Prompt"
	DefaultBadgeLabel   = "Label"
	DefaultSliderLabel  = "Parameter"
	defaultTextTitle    = "Content"
	defaultBadgesTitle  = "Options"
	defaultSlidersTitle = "Parameters"
)

// DefaultLayout is installed for slots with no (or unreadable) saved data:
// a two-column text+badges row followed by an output row.
func DefaultLayout() []Row {
	styles := NewBlock(BlockKindBadges)
	styles.Title = "Styles"
	return []Row{
		{
			ID:     NewID(RowIDPrefix),
			Title:  DefaultRowTitle,
			Cols:   2,
			Blocks: []Block{NewBlock(BlockKindText), styles},
		},
		{
			ID:     NewID(RowIDPrefix),
			Title:  "Output",
			Cols:   1,
			Blocks: []Block{NewBlock(BlockKindOutput)},
		},
	}
}

func NewRow() Row {
	return Row{ID: NewID(RowIDPrefix), Title: DefaultRowTitle, Cols: 1, Blocks: []Block{}}
}

// NewBlock returns an empty block of the given kind with its default title.
func NewBlock(kind BlockKind) Block {
	b := Block{ID: NewID(BlockIDPrefix), Kind: kind}
	switch kind {
	case BlockKindText:
		b.Title = defaultTextTitle
	case BlockKindBadges:
		b.Title = defaultBadgesTitle
		b.Items = []BadgeItem{}
	case BlockKindSliders:
		b.Title = defaultSlidersTitle
		b.Sliders = []SliderItem{}
	case BlockKindOutput:
		b.Title = DefaultOutputTitle
	}
	return b
}

// NewBadgeItem returns an inactive badge with an empty payload.
func NewBadgeItem() BadgeItem {
	return BadgeItem{ID: NewID(BadgeIDPrefix), Label: DefaultBadgeLabel}
}

func NewSliderItem() SliderItem {
	return SliderItem{ID: NewID(SliderIDPrefix), Label: DefaultSliderLabel, Min: 0, Max: 100, Step: 1, Value: 50}
}

// ClampSlider mimics a native range input: clamp to [min,max] and snap to the step grid.
// NaN keeps the slider's current value.
func ClampSlider(s SliderItem, v float64) float64 {
	lo, hi := s.Min, s.Max
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(v) {
		if math.IsNaN(s.Value) {
			return lo
		}
		v = s.Value
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	if s.Step > 0 {
		v = lo + math.Round((v-lo)/s.Step)*s.Step
		if v > hi {
			v -= s.Step
		}
		if v < lo {
			v = lo
		}
		v = roundTo(v, max(decimals(s.Step), decimals(lo)))
	}
	return v
}

// decimals counts the fraction digits in the shortest decimal form of f.
func decimals(f float64) int {
	str := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(str, '.'); i >= 0 {
		return len(str) - i - 1
	}
	return 0
}

func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
