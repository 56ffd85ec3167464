package tui

import (
	"promptboard/internal/model"
	"promptboard/internal/render"
)

func itemCount(b render.BlockView) int {
	switch b.Kind {
	case model.BlockKindBadges:
		return len(b.Badges)
	case model.BlockKindSliders:
		return len(b.Sliders)
	}
	return 0
}

func clampIdx(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *appModel) clampFocus() {
	rows := m.canvas.Rows
	if len(rows) == 0 {
		m.rowIdx, m.blockIdx, m.itemIdx = 0, 0, -1
		return
	}
	m.rowIdx = clampIdx(m.rowIdx, len(rows))
	blocks := rows[m.rowIdx].Blocks
	if len(blocks) == 0 {
		m.blockIdx, m.itemIdx = 0, -1
		return
	}
	m.blockIdx = clampIdx(m.blockIdx, len(blocks))
	n := itemCount(blocks[m.blockIdx])
	if n == 0 {
		m.itemIdx = -1
		return
	}
	if m.itemIdx >= n {
		m.itemIdx = n - 1
	}
}

func (m appModel) focusedRow() (render.RowView, bool) {
	if m.rowIdx < 0 || m.rowIdx >= len(m.canvas.Rows) {
		return render.RowView{}, false
	}
	return m.canvas.Rows[m.rowIdx], true
}

func (m appModel) focusedBlock() (render.RowView, render.BlockView, bool) {
	r, ok := m.focusedRow()
	if !ok || m.blockIdx < 0 || m.blockIdx >= len(r.Blocks) {
		return r, render.BlockView{}, false
	}
	return r, r.Blocks[m.blockIdx], true
}

func (m appModel) focusedBadge() (render.RowView, render.BlockView, render.BadgeView, bool) {
	r, b, ok := m.focusedBlock()
	if !ok || m.itemIdx < 0 || m.itemIdx >= len(b.Badges) {
		return r, b, render.BadgeView{}, false
	}
	return r, b, b.Badges[m.itemIdx], true
}

func (m appModel) focusedSlider() (render.RowView, render.BlockView, render.SliderView, bool) {
	r, b, ok := m.focusedBlock()
	if !ok || m.itemIdx < 0 || m.itemIdx >= len(b.Sliders) {
		return r, b, render.SliderView{}, false
	}
	return r, b, b.Sliders[m.itemIdx], true
}

func (m *appModel) moveFocusRow(d int) {
	m.rowIdx += d
	m.blockIdx, m.itemIdx = 0, -1
	m.clampFocus()
}

func (m *appModel) moveFocusBlock(d int) {
	m.blockIdx += d
	m.itemIdx = -1
	m.clampFocus()
}

// moveFocusItem cycles through the items of the focused block, passing through the
// block itself (-1) between the last and first item.
func (m *appModel) moveFocusItem(d int) {
	_, b, ok := m.focusedBlock()
	if !ok {
		return
	}
	n := itemCount(b)
	if n == 0 {
		m.itemIdx = -1
		return
	}
	i := m.itemIdx + 1 + d
	span := n + 1
	i = ((i % span) + span) % span
	m.itemIdx = i - 1
}

// focusIDs moves focus to the given ids; empty ids stop the descent.
func (m *appModel) focusIDs(rowID, blockID, itemID string) {
	for i, r := range m.canvas.Rows {
		if r.ID != rowID {
			continue
		}
		m.rowIdx, m.blockIdx, m.itemIdx = i, 0, -1
		for j, b := range r.Blocks {
			if b.ID != blockID {
				continue
			}
			m.blockIdx = j
			for k, it := range b.Badges {
				if it.ID == itemID {
					m.itemIdx = k
				}
			}
			for k, s := range b.Sliders {
				if s.ID == itemID {
					m.itemIdx = k
				}
			}
		}
		return
	}
}
