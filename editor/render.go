package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/notepad/internal/textwidth"
)

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return LineNumberWidth(m.buf.LineCount())
}

// contentWidth is the number of text cells visible right of the gutter.
// Zero means the width is unknown and lines are not clipped.
func (m Model) contentWidth() int {
	if m.viewport.Width <= 0 {
		return 0
	}
	return maxInt(m.viewport.Width-m.gutterWidth(), 1)
}

// cursorCell returns the visual cell of the cursor within its line.
func (m Model) cursorCell() int {
	cur := m.buf.Cursor()
	return textwidth.Prefix([]rune(m.buf.Line(cur.Row)), cur.Col, m.cfg.tabWidth())
}

// LineNumberWidth returns the line-number gutter width for lineCount.
func LineNumberWidth(lineCount int) int {
	return gutterDigits(lineCount) + 1
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprintf("%d", lineCount))
}

func (m *Model) renderContent() string {
	n := m.buf.LineCount()
	digits := gutterDigits(n)
	cursor := m.buf.Cursor()

	out := make([]string, 0, n)
	for row := 0; row < n; row++ {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}
		cursorCol := -1
		if row == cursor.Row {
			cursorCol = cursor.Col
		}
		sb.WriteString(m.renderLine([]rune(m.buf.Line(row)), cursorCol))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderLine draws the visible part of one line. cursorCol is the cursor
// column on this line, or -1.
func (m *Model) renderLine(line []rune, cursorCol int) string {
	st := m.cfg.Style
	left := m.xOffset
	right := int(^uint(0) >> 1)
	if w := m.contentWidth(); w > 0 {
		right = left + w
	}

	var sb, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(st.Text.Render(run.String()))
			run.Reset()
		}
	}

	x := 0
	for i, c := range textwidth.Cells(line, m.cfg.tabWidth()) {
		start, end := x, x+c.Width
		x = end
		if start < left && end <= left {
			continue
		}
		if end > right {
			break
		}
		text := c.Text
		if start < left {
			// Wide cell cut by the left edge.
			text = strings.Repeat(" ", end-left)
		}
		if i == cursorCol {
			flush()
			sb.WriteString(st.Cursor.Render(text))
			continue
		}
		run.WriteString(text)
	}
	flush()

	if cursorCol == len(line) && x >= left && x < right {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}
