package model

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewID_ShortPrefixedIDs(t *testing.T) {
	t.Parallel()

	id := NewID(RowIDPrefix)
	if !strings.HasPrefix(id, "r-") {
		t.Fatalf("expected r- prefix, got %q", id)
	}
	if got, want := len(strings.TrimPrefix(id, "r-")), 6; got != want {
		t.Fatalf("expected suffix len %d, got %d (%q)", want, got, id)
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[NewID(BlockIDPrefix)] = true
	}
	if len(seen) < 195 {
		t.Fatalf("expected ids to be practically unique; got %d distinct of 200", len(seen))
	}
}

func TestBlockJSON_EmitsOnlyKindFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{
			name:  "text",
			block: Block{ID: "b-1", Kind: BlockKindText, Title: "Content", Value: "Hello"},
			want:  `{"id":"b-1","type":"text","title":"Content","value":"Hello"}`,
		},
		{
			name:  "output with empty value",
			block: Block{ID: "b-2", Kind: BlockKindOutput, Title: "Prompt"},
			want:  `{"id":"b-2","type":"output","title":"Prompt","value":""}`,
		},
		{
			name:  "badges nil items",
			block: Block{ID: "b-3", Kind: BlockKindBadges, Title: "Styles"},
			want:  `{"id":"b-3","type":"badges","title":"Styles","items":[]}`,
		},
		{
			name: "sliders",
			block: Block{ID: "b-4", Kind: BlockKindSliders, Title: "P", Sliders: []SliderItem{
				{ID: "s-1", Label: "temp", Min: 0, Max: 10, Step: 0.5, Value: 2.5},
			}},
			want: `{"id":"b-4","type":"sliders","title":"P","sliders":[{"id":"s-1","label":"temp","min":0,"max":10,"step":0.5,"value":2.5}]}`,
		},
		{
			name:  "unknown kind",
			block: Block{ID: "b-5", Kind: "chart", Title: "?", Value: "ignored"},
			want:  `{"id":"b-5","type":"chart","title":"?"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := json.Marshal(tt.block)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(b) != tt.want {
				t.Fatalf("marshal:\n got: %s\nwant: %s", b, tt.want)
			}
		})
	}
}

func TestEncodeDecodeLayout_RoundTrip(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{
			ID: "r-1", Title: "Row", Cols: 3,
			Blocks: []Block{
				{ID: "b-1", Kind: BlockKindText, Title: "Content", Value: "  Hello  "},
				{ID: "b-2", Kind: BlockKindBadges, Title: "Styles", Items: []BadgeItem{
					{ID: "i-1", Label: "W", Payload: "world", Active: true},
					{ID: "i-2", Label: "X", Payload: "", Active: false},
				}},
				{ID: "b-3", Kind: BlockKindSliders, Title: "Params", Sliders: []SliderItem{}},
			},
		},
		{ID: "r-2", Title: "Empty", Cols: 1, Blocks: []Block{}},
		{ID: "r-3", Title: "Output", Cols: 1, Blocks: []Block{{ID: "b-4", Kind: BlockKindOutput, Title: "Prompt", Value: "Hello\nworld"}}},
	}

	data, err := EncodeLayout(rows, true)
	if err != nil {
		t.Fatalf("EncodeLayout: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"rows\": [") {
		t.Fatalf("expected pretty output; got:\n%s", data)
	}
	got, err := DecodeLayout(data)
	if err != nil {
		t.Fatalf("DecodeLayout: %v", err)
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLayout_ShapeCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
		wantLen int
	}{
		{name: "empty rows", in: `{"rows":[]}`, wantLen: 0},
		{name: "extra keys ignored", in: `{"rows":[{"id":"r","title":"t","cols":2,"blocks":[]}],"v":9}`, wantLen: 1},
		{name: "not json", in: `{rows:`, wantErr: ErrInvalidJSON},
		{name: "empty input", in: ``, wantErr: ErrInvalidJSON},
		{name: "missing rows", in: `{"notrows":1}`, wantErr: ErrMissingRows},
		{name: "rows not array", in: `{"rows":{}}`, wantErr: ErrMissingRows},
		{name: "rows null", in: `{"rows":null}`, wantErr: ErrMissingRows},
		{name: "top level array", in: `[1,2]`, wantErr: ErrMissingRows},
		{name: "top level null", in: `null`, wantErr: ErrMissingRows},
		{name: "wrong inner type", in: `{"rows":[{"cols":"two"}]}`, wantErr: ErrMissingRows},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rows, err := DecodeLayout([]byte(tt.in))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v; got rows=%v err=%v", tt.wantErr, rows, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLayout: %v", err)
			}
			if len(rows) != tt.wantLen {
				t.Fatalf("expected %d rows; got %d", tt.wantLen, len(rows))
			}
		})
	}
}

func TestDecodeLayout_UnknownBlockKindPreserved(t *testing.T) {
	t.Parallel()

	rows, err := DecodeLayout([]byte(`{"rows":[{"id":"r","title":"t","cols":1,"blocks":[{"id":"b","type":"chart","title":"C"}]}]}`))
	if err != nil {
		t.Fatalf("DecodeLayout: %v", err)
	}
	b := rows[0].Blocks[0]
	if b.Kind.Known() || b.Kind != "chart" || b.Title != "C" {
		t.Fatalf("unexpected block: %#v", b)
	}
}

func TestDefaultLayout(t *testing.T) {
	t.Parallel()

	rows := DefaultLayout()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows; got %d", len(rows))
	}
	if rows[0].Cols != 2 || len(rows[0].Blocks) != 2 {
		t.Fatalf("unexpected first row: %#v", rows[0])
	}
	if rows[0].Blocks[0].Kind != BlockKindText || rows[0].Blocks[1].Kind != BlockKindBadges {
		t.Fatalf("expected text+badges; got %v, %v", rows[0].Blocks[0].Kind, rows[0].Blocks[1].Kind)
	}
	if rows[1].Cols != 1 || len(rows[1].Blocks) != 1 || rows[1].Blocks[0].Kind != BlockKindOutput {
		t.Fatalf("unexpected output row: %#v", rows[1])
	}
	if rows[0].ID == rows[1].ID {
		t.Fatalf("expected distinct row ids")
	}
}

func TestClampSlider(t *testing.T) {
	t.Parallel()

	s := SliderItem{Min: 0, Max: 10, Step: 2}
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -5, want: 0},
		{in: 15, want: 10},
		{in: 3.1, want: 4},
		{in: 2.9, want: 2},
		{in: 6, want: 6},
	}
	for _, tt := range tests {
		if got := ClampSlider(s, tt.in); got != tt.want {
			t.Fatalf("ClampSlider(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}

	odd := SliderItem{Min: 0, Max: 9, Step: 2}
	if got := ClampSlider(odd, 9); got != 8 {
		t.Fatalf("expected snap below max to 8; got %v", got)
	}

	edge := []struct {
		name string
		s    SliderItem
		in   float64
		want float64
	}{
		{name: "nan keeps current value", s: SliderItem{Min: 0, Max: 10, Step: 1, Value: 3}, in: math.NaN(), want: 3},
		{name: "nan without step keeps current value", s: SliderItem{Min: 0, Max: 10, Step: 0, Value: 7}, in: math.NaN(), want: 7},
		{name: "nan with nan current falls back to min", s: SliderItem{Min: 2, Max: 10, Step: 0, Value: math.NaN()}, in: math.NaN(), want: 2},
		{name: "positive infinity clamps to max", s: SliderItem{Min: 0, Max: 10, Step: 0}, in: math.Inf(1), want: 10},
		{name: "negative infinity clamps to min", s: SliderItem{Min: -5, Max: 10, Step: 1}, in: math.Inf(-1), want: -5},
		{name: "huge range keeps value", s: SliderItem{Min: 0, Max: 1e20, Step: 1}, in: 1e20, want: 1e20},
		{name: "decimal step has no float noise", s: SliderItem{Min: 0, Max: 1, Step: 0.1}, in: 0.3, want: 0.3},
		{name: "decimal min and step", s: SliderItem{Min: 0.05, Max: 1, Step: 0.1}, in: 0.36, want: 0.35},
	}
	for _, tt := range edge {
		if got := ClampSlider(tt.s, tt.in); got != tt.want {
			t.Fatalf("%s: ClampSlider(%v) = %v; want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestCloneRows_IsDeep(t *testing.T) {
	t.Parallel()

	rows := []Row{{ID: "r", Cols: 1, Blocks: []Block{{ID: "b", Kind: BlockKindBadges, Items: []BadgeItem{{ID: "i", Active: true}}}}}}
	c := CloneRows(rows)
	c[0].Blocks[0].Items[0].Active = false
	c[0].Blocks[0].Title = "changed"
	if !rows[0].Blocks[0].Items[0].Active || rows[0].Blocks[0].Title != "" {
		t.Fatalf("clone aliased the original: %#v", rows)
	}
}
