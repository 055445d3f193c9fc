// Package keys maps unshifted keyboard characters to the characters a
// UK-layout keyboard produces with Shift or Caps Lock held.
package keys

var shiftSymbols = map[rune]rune{
	'1':  '!',
	'2':  '"',
	'3':  '£',
	'4':  '$',
	'5':  '%',
	'6':  '^',
	'7':  '&',
	'8':  '*',
	'9':  '(',
	'0':  ')',
	'-':  '_',
	'=':  '+',
	'[':  '{',
	']':  '}',
	';':  ':',
	'\'': '@',
	'\\': '|',
	',':  '<',
	'.':  '>',
	'/':  '?',
	'`':  '¬',
	'#':  '~',
}

// Shifted returns the character produced by base when shift or caps is
// active. Caps Lock behaves like Shift for symbol keys too. Letters are
// upper-cased; keys without a shifted form are returned unchanged.
func Shifted(base rune, shift, caps bool) rune {
	if !shift && !caps {
		return base
	}
	if sym, ok := shiftSymbols[base]; ok {
		return sym
	}
	if base >= 'a' && base <= 'z' {
		return base - ('a' - 'A')
	}
	return base
}
