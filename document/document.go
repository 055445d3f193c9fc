package document

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/notepad/buffer"
)

const appName = "notepad"

// Document is the editing session: the buffer plus the file it belongs to.
type Document struct {
	buf   *buffer.Buffer
	store Store
	run   RunConfig

	name string // as entered by the user
	path string // resolved location on disk

	// invalidUTF8 is set when the opened file was not valid UTF-8. Such
	// bytes are read as U+FFFD, so saving does not reproduce them.
	invalidUTF8 bool
}

type Options struct {
	Store  Store
	Run    RunConfig
	Buffer buffer.Options
}

func New(opt Options) *Document {
	return &Document{
		buf:   buffer.New("", opt.Buffer),
		store: opt.Store,
		run:   opt.Run,
	}
}

func (d *Document) Buffer() *buffer.Buffer { return d.buf }

func (d *Document) Store() Store { return d.store }

// Name returns the current file identity, or "" for an unnamed document.
func (d *Document) Name() string { return d.name }

// Path returns the resolved file path, or "" for an unnamed document.
func (d *Document) Path() string { return d.path }

func (d *Document) Modified() bool { return d.buf.Modified() }

// Save writes the document under its current name. It returns ErrNoFileName
// when the document has never been saved or opened; callers ask for a name
// and use SaveAs.
func (d *Document) Save() error {
	if d.name == "" {
		return ErrNoFileName
	}
	return d.SaveAs(d.name)
}

// SaveAs writes the document under name and makes name the current file.
func (d *Document) SaveAs(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	path, err := d.store.Write(name, d.buf.Serialize())
	if err != nil {
		return err
	}
	d.name = name
	d.path = path
	d.buf.MarkSaved()
	return nil
}

// Open replaces the document with the file at name. On failure the document
// is left unchanged.
func (d *Document) Open(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	path := d.store.Path(name)
	lines, err := Read(path)
	if err != nil {
		return err
	}
	d.buf.Load(lines)
	d.name = name
	d.path = path
	d.invalidUTF8 = !validUTF8(lines)
	return nil
}

// SetName makes name the current file without touching the disk. The next
// Save writes there.
func (d *Document) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	d.name = name
	d.path = d.store.Path(name)
	d.invalidUTF8 = false
	return nil
}

// InvalidUTF8 reports whether the last opened file contained bytes that are
// not valid UTF-8.
func (d *Document) InvalidUTF8() bool { return d.invalidUTF8 }

func validUTF8(lines []string) bool {
	for _, line := range lines {
		if !utf8.ValidString(line) {
			return false
		}
	}
	return true
}

// Title returns the window title for the current state.
func (d *Document) Title() string {
	return Title(d.name, d.buf.Modified())
}

// Title formats a window title for a file name and modified flag.
func Title(name string, modified bool) string {
	label := "untitled"
	if name != "" {
		label = filepath.Base(name)
	}
	if modified {
		label = "*" + label
	}
	return label + " - " + appName
}
