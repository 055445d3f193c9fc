// Package buffer implements the in-memory document model for notepad.
//
// A Buffer owns an ordered, never-empty sequence of lines and a cursor.
// Coordinates are 0-based (Row, Col) in runes. Every exported operation
// leaves the cursor inside document bounds.
package buffer
