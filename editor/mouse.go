package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/notepad/buffer"
	"github.com/iw2rmb/notepad/internal/textwidth"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if m.pending != promptNone {
		return m, cmd
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.mouseInBounds(msg.X, msg.Y) {
		m.buf.SetCursor(m.screenToDocPos(msg.X, msg.Y))
	}
	return m, cmd
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Gutter clicks map to column 0; clicks past the end of a line map to its end.
func (m Model) screenToDocPos(x, y int) buffer.Pos {
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)

	visualX := x - m.gutterWidth()
	if visualX < 0 {
		return buffer.Pos{Row: row, Col: 0}
	}
	visualX += m.xOffset

	cells := textwidth.Cells([]rune(m.buf.Line(row)), m.cfg.tabWidth())
	cell := 0
	for i, c := range cells {
		if visualX < cell+c.Width {
			return buffer.Pos{Row: row, Col: i}
		}
		cell += c.Width
	}
	return buffer.Pos{Row: row, Col: len(cells)}
}
