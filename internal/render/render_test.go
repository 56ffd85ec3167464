package render

import (
	"context"
	"testing"

	"promptboard/internal/editor"
	"promptboard/internal/model"
	"promptboard/internal/store"

	"github.com/google/go-cmp/cmp"
)

func TestBuild_EmptyRows(t *testing.T) {
	t.Parallel()

	c := Build(State{Slot: 2, Slots: []SlotTab{{Slot: 2, Name: "Two", Active: true}}})
	if !c.Empty() || len(c.Rows) != 0 {
		t.Fatalf("expected empty canvas; got %#v", c.Rows)
	}
	if c.SlotName != "Two" {
		t.Fatalf("SlotName = %q", c.SlotName)
	}
}

func TestBuild_BadgeWidthsFollowLabels(t *testing.T) {
	t.Parallel()

	rows := []model.Row{{ID: "r", Cols: 1, Blocks: []model.Block{{
		ID: "b", Kind: model.BlockKindBadges, Items: []model.BadgeItem{
			{ID: "i-1", Label: "world"},
			{ID: "i-2", Label: ""},
			{ID: "i-3", Label: "日本"},
		},
	}}}}

	c := Build(State{Rows: rows})
	badges := c.Rows[0].Blocks[0].Badges
	want := []int{5 + 2, len(BadgePlaceholder) + 2, 4 + 2}
	for i, b := range badges {
		if b.Width != want[i] {
			t.Fatalf("badge %d width = %d; want %d", i, b.Width, want[i])
		}
	}
	if badges[1].Display != BadgePlaceholder {
		t.Fatalf("expected placeholder display; got %q", badges[1].Display)
	}

	// Relabeling changes the measured width on the next build.
	rows[0].Blocks[0].Items[0].Label = "w"
	if got := Build(State{Rows: rows}).Rows[0].Blocks[0].Badges[0].Width; got != 3 {
		t.Fatalf("expected re-measured width 3; got %d", got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	st := State{Slot: 1, Rows: model.DefaultLayout(), Output: "x"}
	if diff := cmp.Diff(Build(st), Build(st)); diff != "" {
		t.Fatalf("builds differ (-first +second):\n%s", diff)
	}
}

func TestRowView_Lines(t *testing.T) {
	t.Parallel()

	blocks := make([]BlockView, 5)
	for i := range blocks {
		blocks[i].ID = string(rune('a' + i))
	}
	tests := []struct {
		cols int
		want []int
	}{
		{cols: 1, want: []int{1, 1, 1, 1, 1}},
		{cols: 2, want: []int{2, 2, 1}},
		{cols: 3, want: []int{3, 2}},
		{cols: 0, want: []int{1, 1, 1, 1, 1}},
		{cols: -4, want: []int{1, 1, 1, 1, 1}},
		{cols: 7, want: []int{5}},
	}
	for _, tt := range tests {
		lines := RowView{Cols: tt.cols, Blocks: blocks}.Lines()
		var got []int
		for _, ln := range lines {
			got = append(got, len(ln))
		}
		if !cmp.Equal(got, tt.want) {
			t.Fatalf("cols=%d: got %v; want %v", tt.cols, got, tt.want)
		}
	}
	if (RowView{Cols: 2}).Lines() != nil {
		t.Fatalf("expected no lines for an empty row")
	}
}

func TestBuild_SlidersAndUnknownBlocks(t *testing.T) {
	t.Parallel()

	rows := []model.Row{{ID: "r", Cols: 2, Blocks: []model.Block{
		{ID: "b-s", Kind: model.BlockKindSliders, Sliders: []model.SliderItem{
			{ID: "s-1", Min: 0, Max: 100, Step: 1, Value: 25},
			{ID: "s-2", Min: 5, Max: 5, Value: 5},
			{ID: "s-3", Min: 0, Max: 10, Value: 40},
		}},
		{ID: "b-x", Kind: "chart", Title: "C"},
	}}}

	c := Build(State{Rows: rows})
	sl := c.Rows[0].Blocks[0].Sliders
	if sl[0].Ratio != 0.25 || sl[1].Ratio != 0 || sl[2].Ratio != 1 {
		t.Fatalf("unexpected ratios: %v %v %v", sl[0].Ratio, sl[1].Ratio, sl[2].Ratio)
	}
	if sl[0].ValueText() != "25" {
		t.Fatalf("ValueText = %q", sl[0].ValueText())
	}
	unk := c.Rows[0].Blocks[1]
	if unk.Known || unk.Title != UnknownBlockTitle || unk.Editable() {
		t.Fatalf("unexpected unknown block view: %#v", unk)
	}
}

func TestFromEditor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e, err := editor.Open(ctx, store.Store{Dir: t.TempDir()}, 3, editor.Options{})
	if err != nil {
		t.Fatal(err)
	}
	c := FromEditor(e)
	if c.Slot != 3 || c.SlotName != "Slot 3" || len(c.Slots) != store.SlotCount {
		t.Fatalf("unexpected canvas header: slot=%d name=%q slots=%d", c.Slot, c.SlotName, len(c.Slots))
	}
	if len(c.Rows) != 2 || !c.Slots[2].Active {
		t.Fatalf("unexpected canvas: %#v", c)
	}
}
