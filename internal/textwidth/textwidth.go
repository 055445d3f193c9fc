// Package textwidth measures terminal cell widths of document text.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// Cell is one rune of a line as it appears on screen. Tabs are expanded to
// spaces up to the next tab stop; other control characters are shown in
// caret notation ("^M").
type Cell struct {
	Text  string
	Width int
}

// RuneWidth returns the cell width of r when drawn at visualCol.
func RuneWidth(r rune, visualCol, tabWidth int) int {
	if r == '\t' {
		return tabAdvance(visualCol, tabWidth)
	}
	if p, ok := controlPicture(r); ok {
		return runewidth.StringWidth(p)
	}

	w := runewidth.RuneWidth(r)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(string(r))
		if fallback > w {
			w = fallback
		}
	}
	return w
}

// Width returns the cell width of s drawn from column 0.
func Width(s string, tabWidth int) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r, w, tabWidth)
	}
	return w
}

// Prefix returns the cell width of line[:col]. col is clamped to the line.
func Prefix(line []rune, col, tabWidth int) int {
	if col > len(line) {
		col = len(line)
	}
	w := 0
	for i := 0; i < col; i++ {
		w += RuneWidth(line[i], w, tabWidth)
	}
	return w
}

// Cells splits line into per-rune screen cells.
func Cells(line []rune, tabWidth int) []Cell {
	if len(line) == 0 {
		return nil
	}
	out := make([]Cell, 0, len(line))
	visualCol := 0
	for _, r := range line {
		w := RuneWidth(r, visualCol, tabWidth)
		text := string(r)
		if r == '\t' {
			text = strings.Repeat(" ", w)
		} else if p, ok := controlPicture(r); ok {
			text = p
		}
		out = append(out, Cell{Text: text, Width: w})
		visualCol += w
	}
	return out
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	mod := visualCol % tabWidth
	adv := tabWidth - mod
	if adv < 1 {
		return 1
	}
	return adv
}

// controlPicture returns the printable form of a control rune other than
// tab: caret notation for C0 and DEL, U+FFFD for C1.
func controlPicture(r rune) (string, bool) {
	switch {
	case r == '\t':
		return "", false
	case r < 0x20:
		return "^" + string(r+0x40), true
	case r == 0x7f:
		return "^?", true
	case r >= 0x80 && r < 0xa0:
		return "\ufffd", true
	}
	return "", false
}
