package editor

import (
	"github.com/iw2rmb/notepad/document"
	"github.com/iw2rmb/notepad/internal/textwidth"
)

// Config configures the editor Model.
type Config struct {
	// Document to edit. When nil, New creates an unnamed document with a
	// default Store.
	Document *document.Document

	// Rendering options.
	ShowLineNums bool
	Style        Style

	// KeyMap defaults to DefaultKeyMap() when left zero.
	KeyMap KeyMap

	// Number of spaces inserted by the Tab key (default 4).
	TabWidth int

	// Clipboard backs the paste command. Nil disables paste.
	Clipboard Clipboard

	// OnChange is called after an update that changed the document or the
	// cursor.
	OnChange func(ChangeEvent)
}

func (c Config) tabWidth() int {
	if c.TabWidth <= 0 {
		return textwidth.DefaultTabWidth
	}
	return c.TabWidth
}
