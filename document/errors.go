package document

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageDir reports that the storage directory could not be created.
	ErrStorageDir = errors.New("cannot create storage directory")
	// ErrOpen reports that a file could not be opened or read.
	ErrOpen = errors.New("cannot open file")
	// ErrWrite reports that a file could not be written.
	ErrWrite = errors.New("cannot write file")
	// ErrNoFileName reports an action that needs a file name on an unnamed
	// document.
	ErrNoFileName = errors.New("no file name")
	// ErrUnsaved reports a run request on a document with unsaved changes.
	ErrUnsaved = errors.New("file has unsaved changes")
	// ErrEmptyName reports an empty file name entered by the user.
	ErrEmptyName = errors.New("empty file name")
)

// RunError reports a run whose interpreter exited with a non-zero status.
type RunError struct {
	Path     string
	ExitCode int
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s: exit status %d", e.Path, e.ExitCode)
}
