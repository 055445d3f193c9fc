package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type statusKind uint8

const (
	statusNone statusKind = iota
	statusInfo
	statusError
)

// statusLine is the feedback message shown in the status strip.
type statusLine struct {
	kind statusKind
	text string
}

func infoStatus(text string) statusLine  { return statusLine{kind: statusInfo, text: text} }
func errorStatus(text string) statusLine { return statusLine{kind: statusError, text: text} }

const statusHint = "^S save  ^W save as  ^O open  ^R run  ^Q quit"

func (m Model) renderStatus() string {
	st := m.cfg.Style

	cur := m.buf.Cursor()
	var right strings.Builder
	if m.capsLock {
		right.WriteString("CAPS  ")
	}
	fmt.Fprintf(&right, "Ln %d, Col %d  %s", cur.Row+1, cur.Col+1, m.doc.Title())
	rightText := st.Status.Render(right.String())

	var left string
	switch {
	case m.pending != promptNone:
		left = st.Prompt.Render(promptLabel(m.pending)) + m.prompt.View()
	case m.status.kind == statusError:
		left = st.StatusError.Render(m.status.text)
	case m.status.kind == statusInfo:
		left = st.StatusInfo.Render(m.status.text)
	case lipgloss.Width(statusHint)+1+lipgloss.Width(rightText) <= m.width:
		left = st.Status.Render(statusHint)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(rightText)
	if gap < 1 {
		gap = 1
	}
	return left + st.Status.Render(strings.Repeat(" ", gap)) + rightText
}
