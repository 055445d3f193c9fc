package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/notepad/buffer"
	"github.com/iw2rmb/notepad/internal/keys"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.pending != promptNone {
		return m.updatePrompt(msg)
	}

	if kind, ok := m.commandFor(msg); ok {
		if kind != CommandQuit {
			m.quitArmed = false
		}
		return m.Exec(kind)
	}
	m.quitArmed = false
	m.status = statusLine{}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.buf.InsertText(string(msg.Runes))
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.buf.MoveLeft()
	case key.Matches(msg, km.Right):
		m.buf.MoveRight()
	case key.Matches(msg, km.Up):
		m.buf.MoveUp()
	case key.Matches(msg, km.Down):
		m.buf.MoveDown()
	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.DirHome)
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.DirEnd)

	case key.Matches(msg, km.Backspace):
		m.buf.DeleteBackward()
	case key.Matches(msg, km.Enter):
		m.buf.InsertNewline()
	case key.Matches(msg, km.Tab):
		m.buf.InsertText(strings.Repeat(" ", m.cfg.tabWidth()))

	default:
		switch {
		case msg.Type == tea.KeySpace:
			m.buf.InsertRune(' ')
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			m.buf.InsertText(string(m.applyCaps(msg.Runes)))
		}
	}

	return m, nil
}

// applyCaps maps typed runes through the caps lock table when it is on.
// Terminals already deliver shifted characters, so only caps is applied.
func (m Model) applyCaps(runes []rune) []rune {
	if !m.capsLock {
		return runes
	}
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = keys.Shifted(r, false, true)
	}
	return out
}
