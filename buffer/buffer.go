package buffer

import "strings"

// NewlineMode selects what InsertNewline does with the text after the cursor.
type NewlineMode uint8

const (
	// NewlineSplit moves the text after the cursor onto the new line.
	NewlineSplit NewlineMode = iota
	// NewlineBlank inserts an empty line below the current one and leaves the
	// current line untouched, whatever the cursor column.
	NewlineBlank
)

func (m NewlineMode) String() string {
	switch m {
	case NewlineSplit:
		return "split"
	case NewlineBlank:
		return "blank"
	default:
		return "unknown"
	}
}

type Options struct {
	Newline NewlineMode
}

// Buffer is the pure document state: lines, cursor, and the modified flag.
type Buffer struct {
	lines   [][]rune
	version uint64

	cursor   Pos
	modified bool

	opt Options
}

func New(text string, opt Options) *Buffer {
	return &Buffer{
		lines:   splitLines(text),
		version: 0,
		cursor:  Pos{Row: 0, Col: 0},
		opt:     opt,
	}
}

// Text returns the document with lines joined by '\n' and no trailing
// terminator.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Serialize returns the persisted form of the document: every line followed
// by a '\n' terminator.
func (b *Buffer) Serialize() string {
	var sb strings.Builder
	for _, line := range b.lines {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lines returns a copy of the document lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) Version() uint64 { return b.version }

// Modified reports whether the content changed since creation or the last
// MarkSaved/Load.
func (b *Buffer) Modified() bool { return b.modified }

// MarkSaved clears the modified flag.
func (b *Buffer) MarkSaved() {
	if !b.modified {
		return
	}
	b.modified = false
	b.version++
}

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// Load replaces the whole document with lines. An empty slice yields one
// empty line. The cursor keeps its position when it still fits and is
// clamped into the new bounds otherwise. The modified flag is cleared.
func (b *Buffer) Load(lines []string) {
	out := make([][]rune, 0, len(lines))
	for _, s := range lines {
		out = append(out, []rune(s))
	}
	if len(out) == 0 {
		out = append(out, nil)
	}
	b.lines = out
	b.cursor = b.clampPos(b.cursor)
	b.modified = false
	b.version++
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
