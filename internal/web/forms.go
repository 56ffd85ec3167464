package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"promptboard/internal/editor"
	"promptboard/internal/model"
)

type formError struct {
	Field string
	Msg   string
}

func (e formError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func formInt(form url.Values, field string) (int, error) {
	v := strings.TrimSpace(form.Get(field))
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, formError{Field: field, Msg: fmt.Sprintf("%q is not a whole number", v)}
	}
	return n, nil
}

// normalizeNewlines turns browser CRLF form submissions into LF.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// viewModeOps are the commands that change values without touching the layout.
var viewModeOps = map[string]bool{
	"toggle-badge":     true,
	"set-text":         true,
	"set-slider-value": true,
	"randomize-badges": true,
}

// commandFromForm maps a POST /cmd form to an editor command. The op field holds
// the command name (see editor.CommandName); the other fields name the target.
func commandFromForm(form url.Values) (editor.Command, error) {
	row, block, item := form.Get("row"), form.Get("block"), form.Get("item")
	switch op := form.Get("op"); op {
	case "add-row":
		return editor.AddRow{}, nil
	case "remove-row":
		return editor.RemoveRow{Row: row}, nil
	case "move-row":
		d, err := formInt(form, "delta")
		if err != nil {
			return nil, err
		}
		return editor.MoveRow{Row: row, Delta: d}, nil
	case "set-row-cols":
		n, err := formInt(form, "cols")
		if err != nil {
			return nil, err
		}
		return editor.SetRowCols{Row: row, Cols: n}, nil
	case "set-row-title":
		return editor.SetRowTitle{Row: row, Title: form.Get("title")}, nil
	case "add-block":
		return editor.AddBlock{Row: row, Kind: model.BlockKind(form.Get("kind"))}, nil
	case "remove-block":
		return editor.RemoveBlock{Row: row, Block: block}, nil
	case "move-block":
		d, err := formInt(form, "delta")
		if err != nil {
			return nil, err
		}
		return editor.MoveBlock{Row: row, Block: block, Delta: d}, nil
	case "set-block-title":
		return editor.SetBlockTitle{Row: row, Block: block, Title: form.Get("title")}, nil
	case "set-text":
		return editor.SetText{Row: row, Block: block, Value: normalizeNewlines(form.Get("value"))}, nil
	case "add-badge":
		return editor.AddBadge{Row: row, Block: block}, nil
	case "remove-badge":
		return editor.RemoveBadge{Row: row, Block: block, Item: item}, nil
	case "toggle-badge":
		return editor.ToggleBadge{Row: row, Block: block, Item: item}, nil
	case "set-badge-label":
		return editor.SetBadgeLabel{Row: row, Block: block, Item: item, Label: form.Get("label")}, nil
	case "set-badge-payload":
		return editor.SetBadgePayload{Row: row, Block: block, Item: item, Payload: normalizeNewlines(form.Get("payload"))}, nil
	case "add-slider":
		return editor.AddSlider{Row: row, Block: block}, nil
	case "remove-slider":
		return editor.RemoveSlider{Row: row, Block: block, Item: item}, nil
	case "set-slider-label":
		return editor.SetSliderLabel{Row: row, Block: block, Item: item, Label: form.Get("label")}, nil
	case "set-slider-value":
		raw := strings.TrimSpace(form.Get("value"))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, formError{Field: "value", Msg: fmt.Sprintf("%q is not a number", raw)}
		}
		return editor.SetSliderValue{Row: row, Block: block, Item: item, Value: v}, nil
	case "randomize-badges":
		return editor.RandomizeBadges{}, nil
	case "":
		return nil, formError{Field: "op", Msg: "missing"}
	default:
		return nil, formError{Field: "op", Msg: fmt.Sprintf("unknown command %q", op)}
	}
}
