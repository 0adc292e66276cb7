// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The enclosing quotation marks are not included. If ascii is true, every
// non-ASCII rune is written as a \uXXXX escape, using a UTF-16 surrogate pair
// for runes outside the Basic Multilingual Plane.
func Quote(src mem.RO, ascii bool) []byte {
	return AppendQuote(make([]byte, 0, src.Len()), src, ascii)
}

// AppendQuote appends the quoted encoding of src to buf and returns the
// extended slice. See Quote.
func AppendQuote(buf []byte, src mem.RO, ascii bool) []byte {
	for src.Len() != 0 {
		// Copy runs of bytes that need no escaping in one step.
		i := 0
		for i < src.Len() {
			b := src.At(i)
			if b < ' ' || b == '"' || b == '\\' || b >= utf8.RuneSelf {
				break
			}
			i++
		}
		if i > 0 {
			buf = mem.Append(buf, src.SliceTo(i))
			src = src.SliceFrom(i)
			continue
		}

		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = appendU(buf, r)
				}
			} else {
				buf = append(buf, '\\', byte(r)) // '"' or '\\'
			}
			src = src.SliceFrom(n)
			continue
		}

		switch {
		case ascii && r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			buf = appendU(appendU(buf, hi), lo)
		case ascii:
			buf = appendU(buf, r)
		case r == utf8.RuneError, r == '\u2028', r == '\u2029':
			buf = appendU(buf, r)
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}

// appendU appends the 6-byte escape \uXXXX for the low 16 bits of r.
func appendU(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[(r>>12)&15], hexDigit[(r>>8)&15],
		hexDigit[(r>>4)&15], hexDigit[r&15],
	)
}
