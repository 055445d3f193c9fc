// Package editor provides the notepad Bubble Tea component.
//
// Model renders a document with a line-number gutter and a status strip,
// translates key and mouse events into buffer operations, and runs the
// file commands (save, save as, open, run, paste). While a file name is
// being entered, keystrokes go to the prompt instead of the document.
package editor
