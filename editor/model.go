package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/notepad/buffer"
	"github.com/iw2rmb/notepad/document"
)

// promptAction is the file action waiting for the prompt's value.
type promptAction uint8

const (
	promptNone promptAction = iota
	promptSaveAs
	promptOpen
)

// Model is a Bubble Tea component that renders and edits a document.
type Model struct {
	cfg Config
	doc *document.Document
	buf *buffer.Buffer

	width, height int

	viewport viewport.Model
	xOffset  int

	prompt  textinput.Model
	pending promptAction

	status statusLine

	capsLock  bool
	quitArmed bool

	lastBufVersion uint64
	lastCursor     buffer.Pos
	lastTitle      string
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	doc := cfg.Document
	if doc == nil {
		store, err := document.DefaultStore()
		if err != nil {
			store = document.Store{Dir: document.DefaultDirName}
		}
		doc = document.New(document.Options{Store: store})
	}

	prompt := textinput.New()
	prompt.Prompt = ""
	prompt.Placeholder = "file name"
	prompt.CharLimit = 4096

	m := Model{
		cfg:      cfg,
		doc:      doc,
		buf:      doc.Buffer(),
		viewport: viewport.New(0, 0),
		prompt:   prompt,
	}
	m.lastBufVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.lastTitle = m.doc.Title()
	m.rebuildContent()
	return m
}

func (m Model) Document() *document.Document { return m.doc }

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Title returns the current window title.
func (m Model) Title() string { return m.doc.Title() }

// Prompting reports whether keystrokes currently go to the file-name prompt.
func (m Model) Prompting() bool { return m.pending != promptNone }

// CapsLock reports whether the editor's caps lock is on.
func (m Model) CapsLock() bool { return m.capsLock }

// Status returns the text of the status message, if any.
func (m Model) Status() string { return m.status.text }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.doc.Title())
}

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height

	// The last row is the status strip.
	m.viewport.Width = width
	m.viewport.Height = maxInt(height-1, 0)
	m.prompt.Width = maxInt(width-len(promptLabel(promptSaveAs))-1, 1)

	m.followCursorHorizontal()
	m.rebuildContent()
	m.followCursorVertical()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case runFinishedMsg:
		m = m.handleRunFinished(msg)
	default:
		if m.pending != promptNone {
			// Cursor blink and other prompt-internal messages.
			m.prompt, cmd = m.prompt.Update(msg)
		}
	}
	syncCmd := m.syncFromBuffer()
	return m, tea.Batch(cmd, syncCmd)
}

func (m Model) View() string {
	return m.viewport.View() + "\n" + m.renderStatus()
}

// syncFromBuffer re-renders after buffer changes, keeps the cursor visible,
// notifies OnChange and emits a title update when the title changed.
func (m *Model) syncFromBuffer() tea.Cmd {
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver != m.lastBufVersion || cur != m.lastCursor {
		cursorChanged := cur != m.lastCursor
		m.lastBufVersion = ver
		m.lastCursor = cur

		if cursorChanged {
			m.followCursorHorizontal()
		}
		m.rebuildContent()
		if cursorChanged {
			m.followCursorVertical()
		}
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(m.buildChangeEvent())
		}
	}

	title := m.doc.Title()
	if title == m.lastTitle {
		return nil
	}
	m.lastTitle = title
	return tea.SetWindowTitle(title)
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursorVertical() {
	cur := m.buf.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
		return
	}
}

func (m *Model) followCursorHorizontal() {
	w := m.contentWidth()
	if w <= 0 {
		m.xOffset = 0
		return
	}
	x := m.cursorCell()
	if x < m.xOffset {
		m.xOffset = x
		return
	}
	if x >= m.xOffset+w {
		m.xOffset = x - w + 1
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
