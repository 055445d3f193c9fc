package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func promptLabel(a promptAction) string {
	switch a {
	case promptSaveAs:
		return "Save as: "
	case promptOpen:
		return "Open: "
	default:
		return ""
	}
}

func (m Model) startPrompt(action promptAction) (Model, tea.Cmd) {
	m.pending = action
	m.status = statusLine{}
	m.prompt.Reset()
	if action == promptSaveAs && m.doc.Name() != "" {
		m.prompt.SetValue(m.doc.Name())
		m.prompt.CursorEnd()
	}
	return m, m.prompt.Focus()
}

func (m *Model) endPrompt() {
	m.pending = promptNone
	m.prompt.Blur()
	m.prompt.Reset()
}

// updatePrompt routes keys to the file-name prompt. Enter hands the value to
// the pending action; Cancel drops it.
func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Cancel):
		m.endPrompt()
		m.status = infoStatus("cancelled")
		return m, nil
	case key.Matches(msg, km.Enter):
		action, value := m.pending, m.prompt.Value()
		m.endPrompt()
		return m.commitPrompt(action, value), nil
	case key.Matches(msg, km.CapsLock):
		m.capsLock = !m.capsLock
		return m, nil
	}

	if msg.Type == tea.KeyRunes && !msg.Paste {
		msg.Runes = m.applyCaps(msg.Runes)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) commitPrompt(action promptAction, value string) Model {
	switch action {
	case promptSaveAs:
		m.reportSaved(m.doc.SaveAs(value))
	case promptOpen:
		err := m.doc.Open(value)
		if err == nil {
			// Load may leave the cursor where it was, so scroll to it
			// even when syncFromBuffer sees no cursor change.
			m.followCursorHorizontal()
			m.rebuildContent()
			m.followCursorVertical()
		}
		m.reportOpened(err)
	}
	return m
}
