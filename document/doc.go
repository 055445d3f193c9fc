// Package document binds a buffer to a file identity and implements the
// editor's one-shot file actions: save, save-as, open and run.
//
// Every failure is returned as an error value and leaves the buffer
// content intact.
package document
