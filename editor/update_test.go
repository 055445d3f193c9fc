package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/notepad/buffer"
	"github.com/iw2rmb/notepad/document"
)

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) ReadText() (string, error) { return c.s, c.err }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func newTestModel(t *testing.T, cfg Config) (Model, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "saved")
	if cfg.Document == nil {
		cfg.Document = document.New(document.Options{Store: document.Store{Dir: dir}})
	}
	return New(cfg), dir
}

func press(m Model, keys ...tea.KeyType) Model {
	for _, k := range keys {
		m, _ = m.Update(tea.KeyMsg{Type: k})
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		if r == ' ' {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func assertLines(t *testing.T, m Model, want []string, cursor buffer.Pos) {
	t.Helper()
	if got := m.Buffer().Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("lines=%q, want %q", got, want)
	}
	if got := m.Buffer().Cursor(); got != cursor {
		t.Fatalf("cursor=%v, want %v", got, cursor)
	}
}

// hasQuit runs cmd and reports whether it (or any batched command) quits.
func hasQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if hasQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestUpdate_TypeEnterType(t *testing.T) {
	m, _ := newTestModel(t, Config{})

	m = typeText(m, "ab")
	m = press(m, tea.KeyEnter)
	m = typeText(m, "c")
	assertLines(t, m, []string{"ab", "c"}, buffer.Pos{Row: 1, Col: 1})
}

func TestUpdate_EnterMidLine_BothModes(t *testing.T) {
	cases := []struct {
		mode buffer.NewlineMode
		want []string
	}{
		{mode: buffer.NewlineSplit, want: []string{"a", "bc"}},
		{mode: buffer.NewlineBlank, want: []string{"abc", ""}},
	}
	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			doc := document.New(document.Options{
				Store:  document.Store{Dir: t.TempDir()},
				Buffer: buffer.Options{Newline: tc.mode},
			})
			m, _ := newTestModel(t, Config{Document: doc})

			m = typeText(m, "abc")
			m = press(m, tea.KeyLeft, tea.KeyLeft, tea.KeyEnter)
			assertLines(t, m, tc.want, buffer.Pos{Row: 1, Col: 0})
		})
	}
}

func TestUpdate_BackspaceMergesLines(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m = typeText(m, "abc")
	m = press(m, tea.KeyEnter)
	m = typeText(m, "def")
	m = press(m, tea.KeyHome)
	assertLines(t, m, []string{"abc", "def"}, buffer.Pos{Row: 1, Col: 0})

	m = press(m, tea.KeyBackspace)
	assertLines(t, m, []string{"abcdef"}, buffer.Pos{Row: 0, Col: 3})
}

func TestUpdate_TabInsertsSpaces(t *testing.T) {
	m, _ := newTestModel(t, Config{TabWidth: 2})
	m = press(m, tea.KeyTab)
	m = typeText(m, "x")
	assertLines(t, m, []string{"  x"}, buffer.Pos{Row: 0, Col: 3})
}

func TestUpdate_ArrowKeys(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m = typeText(m, "hello")
	m = press(m, tea.KeyEnter)
	m = typeText(m, "w")

	m = press(m, tea.KeyUp)
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 0, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	m = press(m, tea.KeyEnd, tea.KeyDown)
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	m = press(m, tea.KeyLeft, tea.KeyLeft)
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 0, Col: 5}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	m = press(m, tea.KeyRight)
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 1, Col: 0}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestUpdate_SaveWithoutNamePromptsForName(t *testing.T) {
	m, dir := newTestModel(t, Config{})
	m = typeText(m, "ab")
	if got := m.Title(); !strings.HasPrefix(got, "*") {
		t.Fatalf("title=%q, want modified marker", got)
	}

	m = press(m, tea.KeyCtrlS)
	if !m.Prompting() {
		t.Fatalf("expected file-name prompt after save of unnamed document")
	}

	// Keystrokes go to the prompt, not the document.
	m = typeText(m, "test.txt")
	assertLines(t, m, []string{"ab"}, buffer.Pos{Row: 0, Col: 2})

	m = press(m, tea.KeyEnter)
	if m.Prompting() {
		t.Fatalf("expected prompt closed after enter")
	}
	data, err := os.ReadFile(filepath.Join(dir, "test.txt"))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if got, want := string(data), "ab\n"; got != want {
		t.Fatalf("file=%q, want %q", got, want)
	}
	if m.Buffer().Modified() {
		t.Fatalf("expected modified cleared")
	}
	if got, want := m.Title(), "test.txt - notepad"; got != want {
		t.Fatalf("title=%q, want %q", got, want)
	}

	// A named document saves without prompting.
	m = typeText(m, "c")
	m = press(m, tea.KeyCtrlS)
	if m.Prompting() {
		t.Fatalf("named document must save without prompt")
	}
	data, _ = os.ReadFile(filepath.Join(dir, "test.txt"))
	if got, want := string(data), "abc\n"; got != want {
		t.Fatalf("file=%q, want %q", got, want)
	}
}

func TestUpdate_PromptBackspaceAndCancel(t *testing.T) {
	m, dir := newTestModel(t, Config{})
	m = typeText(m, "x")

	m = press(m, tea.KeyCtrlW)
	m = typeText(m, "abc")
	m = press(m, tea.KeyBackspace)
	if got := m.prompt.Value(); got != "ab" {
		t.Fatalf("prompt=%q, want %q", got, "ab")
	}

	m = press(m, tea.KeyEsc)
	if m.Prompting() {
		t.Fatalf("expected prompt closed after esc")
	}
	if _, err := os.Stat(filepath.Join(dir, "ab")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cancelled save wrote a file: %v", err)
	}
	assertLines(t, m, []string{"x"}, buffer.Pos{Row: 0, Col: 1})
}

func TestUpdate_OpenFile(t *testing.T) {
	m, dir := newTestModel(t, Config{})
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "in.txt"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = typeText(m, "scratch text")

	m = press(m, tea.KeyCtrlO)
	m = typeText(m, "in.txt")
	m = press(m, tea.KeyEnter)

	if got, want := m.Buffer().Lines(), []string{"one", "two"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines=%q, want %q", got, want)
	}
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 0, Col: 3}); got != want {
		t.Fatalf("cursor=%v, want clamped %v", got, want)
	}
	if got, want := m.Title(), "in.txt - notepad"; got != want {
		t.Fatalf("title=%q, want %q", got, want)
	}
}

func TestUpdate_OpenKeepsCursorVisible(t *testing.T) {
	m, dir := newTestModel(t, Config{})
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "line %02d\n", i)
	}
	if err := os.WriteFile(filepath.Join(dir, "in.txt"), []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("text %02d", i)
	}
	m.Buffer().Load(lines)
	m = m.SetSize(20, 6) // 5 text rows + status
	m.Buffer().SetCursor(buffer.Pos{Row: 40, Col: 4})
	m, _ = m.Update(nil)
	if got := m.viewport.YOffset; got != 36 {
		t.Fatalf("y offset before open=%d, want 36", got)
	}

	m = press(m, tea.KeyCtrlO)
	m = typeText(m, "in.txt")
	m = press(m, tea.KeyEnter)

	cur := m.Buffer().Cursor()
	if cur != (buffer.Pos{Row: 40, Col: 4}) {
		t.Fatalf("cursor=%v, want kept {40 4}", cur)
	}
	y, h := m.viewport.YOffset, m.viewport.Height
	if cur.Row < y || cur.Row >= y+h {
		t.Fatalf("cursor row %d not visible in [%d,%d)", cur.Row, y, y+h)
	}
}

func TestUpdate_OpenInvalidUTF8Warns(t *testing.T) {
	m, dir := newTestModel(t, Config{})
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "latin1.txt"), []byte("\xa3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m = press(m, tea.KeyCtrlO)
	m = typeText(m, "latin1.txt")
	m = press(m, tea.KeyEnter)

	if m.status.kind != statusError || !strings.Contains(m.Status(), "not UTF-8") {
		t.Fatalf("status=%+v, want encoding warning", m.status)
	}
	if got, want := m.Title(), "latin1.txt - notepad"; got != want {
		t.Fatalf("title=%q, want %q", got, want)
	}
}

func TestUpdate_OpenMissingFileReportsError(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m = typeText(m, "keep")

	m = press(m, tea.KeyCtrlO)
	m = typeText(m, "missing.txt")
	m = press(m, tea.KeyEnter)

	if m.status.kind != statusError || !strings.Contains(m.Status(), "missing.txt") {
		t.Fatalf("status=%+v, want open error", m.status)
	}
	assertLines(t, m, []string{"keep"}, buffer.Pos{Row: 0, Col: 4})
	if !m.Buffer().Modified() {
		t.Fatalf("failed open must keep the modified flag")
	}
}

func TestUpdate_RunRequiresSavedFile(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m = typeText(m, "print(1)")

	m = press(m, tea.KeyCtrlR)
	if m.status.kind != statusError || !strings.Contains(m.Status(), "save") {
		t.Fatalf("status=%+v, want unnamed error", m.status)
	}

	if err := m.Document().SaveAs("a.py"); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	m = typeText(m, "!")
	m = press(m, tea.KeyCtrlR)
	if m.status.kind != statusError || !strings.Contains(m.Status(), "unsaved") {
		t.Fatalf("status=%+v, want unsaved error", m.status)
	}
}

func TestUpdate_RunFinished(t *testing.T) {
	m, _ := newTestModel(t, Config{})

	m, _ = m.Update(runFinishedMsg{name: "a.py"})
	if m.status.kind != statusInfo || !strings.Contains(m.Status(), "a.py") {
		t.Fatalf("status=%+v, want success", m.status)
	}

	m, _ = m.Update(runFinishedMsg{name: "a.py", err: &document.RunError{Path: "a.py", ExitCode: 2}})
	if m.status.kind != statusError || !strings.Contains(m.Status(), "exit status 2") {
		t.Fatalf("status=%+v, want exit status error", m.status)
	}

	m, _ = m.Update(runFinishedMsg{name: "a.py", err: errors.New("not found")})
	if m.status.kind != statusError || !strings.Contains(m.Status(), "not found") {
		t.Fatalf("status=%+v, want start error", m.status)
	}
}

func TestUpdate_Paste(t *testing.T) {
	cb := &memClipboard{s: "x\r\ny"}
	m, _ := newTestModel(t, Config{Clipboard: cb})
	m = typeText(m, "ab")
	m = press(m, tea.KeyLeft)

	m = press(m, tea.KeyCtrlV)
	assertLines(t, m, []string{"ax", "yb"}, buffer.Pos{Row: 1, Col: 1})

	cb.err = errors.New("no clipboard")
	m = press(m, tea.KeyCtrlV)
	if m.status.kind != statusError {
		t.Fatalf("status=%+v, want paste error", m.status)
	}
	assertLines(t, m, []string{"ax", "yb"}, buffer.Pos{Row: 1, Col: 1})
}

func TestUpdate_BracketedPasteInsertsLiteralText(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p\nq"), Paste: true})
	assertLines(t, m, []string{"p", "q"}, buffer.Pos{Row: 1, Col: 1})
}

func TestUpdate_CapsLockMapsTypedKeys(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m = press(m, tea.KeyCtrlL)
	if !m.CapsLock() {
		t.Fatalf("expected caps lock on")
	}
	m = typeText(m, "a1#")
	m = press(m, tea.KeyCtrlL)
	m = typeText(m, "a")
	assertLines(t, m, []string{"A!~a"}, buffer.Pos{Row: 0, Col: 4})
}

func TestUpdate_QuitGuardsUnsavedChanges(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m = typeText(m, "x")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if hasQuit(cmd) {
		t.Fatalf("first quit with unsaved changes must not quit")
	}
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !hasQuit(cmd) {
		t.Fatalf("second quit must quit")
	}

	clean, _ := newTestModel(t, Config{})
	_, cmd = clean.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !hasQuit(cmd) {
		t.Fatalf("quit without changes must quit immediately")
	}
}

func TestUpdate_OnChange(t *testing.T) {
	var events []ChangeEvent
	m, _ := newTestModel(t, Config{OnChange: func(ev ChangeEvent) { events = append(events, ev) }})

	m = typeText(m, "a")
	m = press(m, tea.KeyLeft)
	m = press(m, tea.KeyLeft) // no-op, no event

	if len(events) != 2 {
		t.Fatalf("events=%d, want 2", len(events))
	}
	if ev := events[0]; ev.Text != "a" || !ev.Modified || ev.Cursor != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("unexpected first event: %+v", ev)
	}
	if ev := events[1]; ev.Cursor != (buffer.Pos{}) {
		t.Fatalf("unexpected second event: %+v", ev)
	}
}

func TestUpdate_ViewportFollowsCursor(t *testing.T) {
	m, _ := newTestModel(t, Config{})
	m.Buffer().Load(strings.Split("0\n1\n2\n3\n4\n5\n6\n7\n8\n9", "\n"))
	m = m.SetSize(10, 4) // 3 text rows + status

	if got := m.viewport.YOffset; got != 0 {
		t.Fatalf("initial y offset=%d, want 0", got)
	}
	m = press(m, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown)
	if got := m.viewport.YOffset; got != 3 {
		t.Fatalf("y offset=%d, want 3", got)
	}
	m = press(m, tea.KeyUp, tea.KeyUp, tea.KeyUp, tea.KeyUp)
	if got := m.viewport.YOffset; got != 1 {
		t.Fatalf("y offset=%d, want 1", got)
	}
}

func TestUpdate_MouseClickPlacesCursor(t *testing.T) {
	m, _ := newTestModel(t, Config{ShowLineNums: true})
	m.Buffer().Load([]string{"hello", "world"})
	m = m.SetSize(20, 5)

	// Gutter is "1 " (2 cells); x=4 is the third rune.
	m, _ = m.Update(tea.MouseMsg{X: 4, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 1, Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}

	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 0, Col: 0}); got != want {
		t.Fatalf("gutter click cursor=%v, want %v", got, want)
	}

	m, _ = m.Update(tea.MouseMsg{X: 19, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 0, Col: 5}); got != want {
		t.Fatalf("past-end click cursor=%v, want %v", got, want)
	}
}

func TestCommandKind_String(t *testing.T) {
	kinds := []CommandKind{CommandSave, CommandSaveAs, CommandOpen, CommandRun, CommandPaste, CommandCapsLock, CommandQuit}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "unknown" || seen[s] {
			t.Fatalf("bad or duplicate name %q for %d", s, k)
		}
		seen[s] = true
	}
}
