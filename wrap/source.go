package wrap

import (
	"unicode/utf16"
	"unicode/utf8"
)

// source abstracts over the two buffer encodings the scanner accepts.
// Offsets are code units: bytes for UTF-8, uint16 for UTF-16.
type source interface {
	length() int
	// unit 返回偏移 i 处的单个码元（用于空格判断）。
	unit(i int) rune
	decode(i int) (r rune, size int)
}

type utf8Source string

func (s utf8Source) length() int     { return len(s) }
func (s utf8Source) unit(i int) rune { return rune(s[i]) }

func (s utf8Source) decode(i int) (rune, int) {
	if c := s[i]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(string(s[i:]))
}

type utf16Source []uint16

func (s utf16Source) length() int     { return len(s) }
func (s utf16Source) unit(i int) rune { return rune(s[i]) }

func (s utf16Source) decode(i int) (rune, int) {
	c := rune(s[i])
	if utf16.IsSurrogate(c) && i+1 < len(s) {
		if r := utf16.DecodeRune(c, rune(s[i+1])); r != utf8.RuneError {
			return r, 2
		}
	}
	return c, 1
}
