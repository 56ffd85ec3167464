// Package prompt derives the output text of a layout.
package prompt

import (
	"strings"

	"promptboard/internal/model"
)

// Assemble walks rows and blocks in order and joins, with newlines, the trimmed
// non-empty values of text blocks and the trimmed non-empty payloads of active
// badge items. Sliders, output and unknown blocks never contribute.
func Assemble(rows []model.Row) string {
	var parts []string
	for _, row := range rows {
		for _, b := range row.Blocks {
			switch b.Kind {
			case model.BlockKindText:
				if t := strings.TrimSpace(b.Value); t != "" {
					parts = append(parts, t)
				}
			case model.BlockKindBadges:
				for _, it := range b.Items {
					if !it.Active {
						continue
					}
					if p := strings.TrimSpace(it.Payload); p != "" {
						parts = append(parts, p)
					}
				}
			case model.BlockKindSliders, model.BlockKindOutput:
			}
		}
	}
	return strings.Join(parts, "\n")
}

// Apply assembles rows and writes the result into every output block (none is a
// no-op). It returns the assembled text.
func Apply(rows []model.Row) string {
	text := Assemble(rows)
	for i := range rows {
		for j := range rows[i].Blocks {
			if rows[i].Blocks[j].Kind == model.BlockKindOutput {
				rows[i].Blocks[j].Value = text
			}
		}
	}
	return text
}
