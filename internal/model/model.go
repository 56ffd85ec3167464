package model

import (
	"encoding/json"
	"fmt"
)

type BlockKind string

const (
	BlockKindText    BlockKind = "text"
	BlockKindBadges  BlockKind = "badges"
	BlockKindSliders BlockKind = "sliders"
	BlockKindOutput  BlockKind = "output"
)

// Known reports whether k is one of the four block variants.
func (k BlockKind) Known() bool {
	switch k {
	case BlockKindText, BlockKindBadges, BlockKindSliders, BlockKindOutput:
		return true
	default:
		return false
	}
}

// Layout is the persisted/exported document: one slot's rows.
type Layout struct {
	Rows []Row `json:"rows"`
}

type Row struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Cols   int     `json:"cols"`
	Blocks []Block `json:"blocks"`
}

// Block is a tagged variant. Kind selects which payload fields are meaningful:
//
//	text, output: Value
//	badges:       Items
//	sliders:      Sliders
//
// Blocks with an unrecognized Kind are carried through unchanged (id/type/title only).
type Block struct {
	ID      string
	Kind    BlockKind
	Title   string
	Value   string
	Items   []BadgeItem
	Sliders []SliderItem
}

type BadgeItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Payload string `json:"payload"`
	Active  bool   `json:"active"`
}

type SliderItem struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Value float64 `json:"value"`
}

type blockWire struct {
	ID      string        `json:"id"`
	Type    BlockKind     `json:"type"`
	Title   string        `json:"title"`
	Value   *string       `json:"value,omitempty"`
	Items   *[]BadgeItem  `json:"items,omitempty"`
	Sliders *[]SliderItem `json:"sliders,omitempty"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	w := blockWire{ID: b.ID, Type: b.Kind, Title: b.Title}
	switch b.Kind {
	case BlockKindText, BlockKindOutput:
		v := b.Value
		w.Value = &v
	case BlockKindBadges:
		items := b.Items
		if items == nil {
			items = []BadgeItem{}
		}
		w.Items = &items
	case BlockKindSliders:
		sliders := b.Sliders
		if sliders == nil {
			sliders = []SliderItem{}
		}
		w.Sliders = &sliders
	}
	return json.Marshal(w)
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = Block{ID: w.ID, Kind: w.Type, Title: w.Title}
	switch w.Type {
	case BlockKindText, BlockKindOutput:
		if w.Value != nil {
			b.Value = *w.Value
		}
	case BlockKindBadges:
		b.Items = []BadgeItem{}
		if w.Items != nil && *w.Items != nil {
			b.Items = *w.Items
		}
	case BlockKindSliders:
		b.Sliders = []SliderItem{}
		if w.Sliders != nil && *w.Sliders != nil {
			b.Sliders = *w.Sliders
		}
	}
	return nil
}

func (r Row) MarshalJSON() ([]byte, error) {
	type rowAlias Row
	a := rowAlias(r)
	if a.Blocks == nil {
		a.Blocks = []Block{}
	}
	return json.Marshal(a)
}

func (r *Row) UnmarshalJSON(data []byte) error {
	type rowAlias Row
	var a rowAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Blocks == nil {
		a.Blocks = []Block{}
	}
	*r = Row(a)
	return nil
}

func (l Layout) MarshalJSON() ([]byte, error) {
	rows := l.Rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(struct {
		Rows []Row `json:"rows"`
	}{Rows: rows})
}

// FindRow returns the index of the row with id, or -1.
func FindRow(rows []Row, id string) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}

// FindBlock returns the index of the block with id inside r, or -1.
func (r Row) FindBlock(id string) int {
	for i := range r.Blocks {
		if r.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b Block) FindItem(id string) int {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (b Block) FindSlider(id string) int {
	for i := range b.Sliders {
		if b.Sliders[i].ID == id {
			return i
		}
	}
	return -1
}

// HasOutput reports whether the row contains at least one output block.
func (r Row) HasOutput() bool {
	for _, b := range r.Blocks {
		if b.Kind == BlockKindOutput {
			return true
		}
	}
	return false
}

func (b Block) String() string {
	return fmt.Sprintf("%s:%s", b.Kind, b.ID)
}

// CloneRows returns a deep copy of rows.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r
		if r.Blocks != nil {
			out[i].Blocks = make([]Block, len(r.Blocks))
			for j, b := range r.Blocks {
				out[i].Blocks[j] = b.clone()
			}
		}
	}
	return out
}

func (b Block) clone() Block {
	c := b
	if b.Items != nil {
		c.Items = append([]BadgeItem(nil), b.Items...)
		if len(b.Items) == 0 {
			c.Items = []BadgeItem{}
		}
	}
	if b.Sliders != nil {
		c.Sliders = append([]SliderItem(nil), b.Sliders...)
		if len(b.Sliders) == 0 {
			c.Sliders = []SliderItem{}
		}
	}
	return c
}
