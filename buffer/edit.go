package buffer

import "strings"

// InsertRune inserts r at the cursor and advances the cursor by one column.
// A '\n' rune behaves like InsertNewline.
func (b *Buffer) InsertRune(r rune) {
	if r == '\n' {
		b.InsertNewline()
		return
	}
	b.InsertText(string(r))
}

// InsertText inserts s at the cursor. The cursor ends up after the inserted
// text. Line breaks in s ("\n", "\r\n" or "\r") start new lines, so pasted
// multi-line text keeps its shape.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	b.cursor = b.insertAt(b.cursor, s)
	b.touch()
}

// InsertNewline applies Enter semantics according to Options.Newline.
// In both modes the cursor moves to column 0 of the new line.
func (b *Buffer) InsertNewline() {
	row := b.cursor.Row
	if b.opt.Newline == NewlineBlank {
		b.lines = insertLine(b.lines, row+1, nil)
		b.cursor = Pos{Row: row + 1, Col: 0}
		b.touch()
		return
	}
	b.cursor = b.insertAt(b.cursor, "\n")
	b.touch()
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		line := b.lines[row]
		b.lines[row] = append(line[:col-1:col-1], line[col:]...)
		b.cursor = Pos{Row: row, Col: col - 1}
		b.touch()
		return
	}

	// Join with previous line (delete the newline).
	prevRow := row - 1
	prevLen := len(b.lines[prevRow])
	joined := make([]rune, 0, prevLen+len(b.lines[row]))
	joined = append(joined, b.lines[prevRow]...)
	joined = append(joined, b.lines[row]...)
	b.lines[prevRow] = joined
	b.lines = removeLine(b.lines, row)
	b.cursor = Pos{Row: prevRow, Col: prevLen}
	b.touch()
}

func (b *Buffer) touch() {
	b.modified = true
	b.version++
}

// insertAt inserts text (which may contain '\n') at p and returns the
// position right after the inserted text.
func (b *Buffer) insertAt(p Pos, text string) Pos {
	p = b.clampPos(p)
	row, col := p.Row, p.Col

	prefix := append([]rune(nil), b.lines[row][:col]...)
	suffix := append([]rune(nil), b.lines[row][col:]...)

	parts := strings.Split(text, "\n")
	repl := make([][]rune, 0, len(parts))
	var next Pos
	if len(parts) == 1 {
		ins := []rune(parts[0])
		line := make([]rune, 0, len(prefix)+len(ins)+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins...)
		line = append(line, suffix...)
		repl = append(repl, line)
		next = Pos{Row: row, Col: len(prefix) + len(ins)}
	} else {
		repl = append(repl, append(prefix, []rune(parts[0])...))
		for i := 1; i < len(parts)-1; i++ {
			repl = append(repl, []rune(parts[i]))
		}
		lastPart := []rune(parts[len(parts)-1])
		last := make([]rune, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)
		next = Pos{Row: row + len(parts) - 1, Col: len(lastPart)}
	}

	out := make([][]rune, 0, len(b.lines)-1+len(repl))
	out = append(out, b.lines[:row]...)
	out = append(out, repl...)
	out = append(out, b.lines[row+1:]...)
	b.lines = out
	return next
}

func insertLine(lines [][]rune, at int, line []rune) [][]rune {
	out := make([][]rune, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	out = append(out, lines[at:]...)
	return out
}

func removeLine(lines [][]rune, at int) [][]rune {
	out := make([][]rune, 0, len(lines)-1)
	out = append(out, lines[:at]...)
	out = append(out, lines[at+1:]...)
	if len(out) == 0 {
		out = [][]rune{nil}
	}
	return out
}
