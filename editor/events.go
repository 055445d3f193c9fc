package editor

import "github.com/iw2rmb/notepad/buffer"

type ChangeEvent struct {
	Version  uint64
	Cursor   buffer.Pos
	Modified bool
	Name     string

	// simplest payload; host can diff if needed.
	Text string
}

func (m Model) buildChangeEvent() ChangeEvent {
	return ChangeEvent{
		Version:  m.buf.Version(),
		Cursor:   m.buf.Cursor(),
		Modified: m.buf.Modified(),
		Name:     m.doc.Name(),
		Text:     m.buf.Text(),
	}
}
