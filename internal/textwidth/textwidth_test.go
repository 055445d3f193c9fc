package textwidth

import "testing"

func TestWidth(t *testing.T) {
	cases := []struct {
		text string
		tab  int
		want int
	}{
		{text: "", tab: 4, want: 0},
		{text: "abc", tab: 4, want: 3},
		{text: "\t", tab: 4, want: 4},
		{text: "a\tb", tab: 4, want: 5},
		{text: "ab\t", tab: 8, want: 8},
		{text: "テ", tab: 4, want: 2},
		{text: "a\t", tab: 0, want: DefaultTabWidth},
	}
	for _, tc := range cases {
		if got := Width(tc.text, tc.tab); got != tc.want {
			t.Fatalf("Width(%q, %d)=%d, want %d", tc.text, tc.tab, got, tc.want)
		}
	}
}

func TestPrefix(t *testing.T) {
	line := []rune("aテ\tb")
	cases := []struct {
		col  int
		want int
	}{
		{col: 0, want: 0},
		{col: 1, want: 1},
		{col: 2, want: 3},
		{col: 3, want: 4},
		{col: 4, want: 5},
		{col: 99, want: 5},
	}
	for _, tc := range cases {
		if got := Prefix(line, tc.col, 4); got != tc.want {
			t.Fatalf("Prefix(col=%d)=%d, want %d", tc.col, got, tc.want)
		}
	}
}

func TestCells_ExpandsTabs(t *testing.T) {
	cells := Cells([]rune("a\tb"), 4)
	if len(cells) != 3 {
		t.Fatalf("cells len=%d, want 3", len(cells))
	}
	if cells[1].Text != "   " || cells[1].Width != 3 {
		t.Fatalf("tab cell=%+v, want 3 spaces", cells[1])
	}
	if Cells(nil, 4) != nil {
		t.Fatalf("expected nil cells for empty line")
	}
}

func TestCells_ControlRunes(t *testing.T) {
	got := Cells([]rune("a\r\x1b[1m\x7f\u009b"), 4)
	want := []Cell{
		{Text: "a", Width: 1},
		{Text: "^M", Width: 2},
		{Text: "^[", Width: 2},
		{Text: "[", Width: 1},
		{Text: "1", Width: 1},
		{Text: "m", Width: 1},
		{Text: "^?", Width: 2},
		{Text: "\ufffd", Width: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("cells=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d=%+v, want %+v", i, got[i], want[i])
		}
	}
	if w := Width("a\rb", 4); w != 4 {
		t.Fatalf("Width with CR=%d, want 4", w)
	}
	if w := Prefix([]rune("\x1bx"), 1, 4); w != 2 {
		t.Fatalf("Prefix past ESC=%d, want 2", w)
	}
}
