// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// A Reader supplies input bytes to Decode one at a time.
type Reader interface {
	EOF() bool  // reports whether the input is exhausted
	Next() byte // consumes and returns the current byte
}

// A Fault describes why Decode stopped before the closing quotation mark.
type Fault byte

// Constants defining the values of Fault.
const (
	OK           Fault = iota // the string was complete and valid
	Truncated                 // input ended before the closing quote
	Control                   // unescaped control character (< 0x20)
	BadUTF8                   // malformed UTF-8 sequence
	BadUnicode                // invalid \u escape or surrogate pairing
	BadEscape                 // unknown escape sequence
)

var faultStr = [...]string{
	OK:         "ok",
	Truncated:  "unterminated string",
	Control:    "control character in string",
	BadUTF8:    "invalid UTF-8 sequence",
	BadUnicode: "invalid Unicode escape",
	BadEscape:  "invalid escape sequence",
}

func (f Fault) String() string {
	if int(f) < len(faultStr) {
		return faultStr[f]
	}
	return "invalid fault"
}

// Decode reads the body of a JSON string from r, following its opening
// quotation mark, and appends the decoded UTF-8 text to dst. It consumes the
// closing quotation mark. The returned Fault is OK if the string was valid.
func Decode(dst []byte, r Reader) ([]byte, Fault) {
	for {
		if r.EOF() {
			return dst, Truncated
		}
		c := r.Next()
		switch {
		case c == '"':
			return dst, OK
		case c == '\\':
			var f Fault
			if dst, f = decodeEscape(dst, r); f != OK {
				return dst, f
			}
		case c < ' ':
			return dst, Control
		case c < utf8.RuneSelf:
			dst = append(dst, c)
		default:
			var f Fault
			if dst, f = decodeUTF8(dst, c, r); f != OK {
				return dst, f
			}
		}
	}
}

// decodeEscape decodes the escape sequence following a backslash.
func decodeEscape(dst []byte, r Reader) ([]byte, Fault) {
	if r.EOF() {
		return dst, Truncated
	}
	switch c := r.Next(); c {
	case '"', '\\', '/':
		return append(dst, c), OK
	case 'b':
		return append(dst, '\b'), OK
	case 'f':
		return append(dst, '\f'), OK
	case 'n':
		return append(dst, '\n'), OK
	case 'r':
		return append(dst, '\r'), OK
	case 't':
		return append(dst, '\t'), OK
	case 'u':
		// handled below
	default:
		return dst, BadEscape
	}

	hi, f := readHex4(r)
	if f != OK {
		return dst, f
	}
	switch {
	case IsLowSurrogate(hi):
		return dst, BadUnicode
	case !IsHighSurrogate(hi):
		return utf8.AppendRune(dst, hi), OK
	}

	// A high surrogate must be followed immediately by an escaped low surrogate.
	for _, want := range []byte{'\\', 'u'} {
		if r.EOF() {
			return dst, Truncated
		} else if r.Next() != want {
			return dst, BadUnicode
		}
	}
	lo, f := readHex4(r)
	if f != OK {
		return dst, f
	} else if !IsLowSurrogate(lo) {
		return dst, BadUnicode
	}
	return utf8.AppendRune(dst, Combine(hi, lo)), OK
}

// decodeUTF8 validates a raw multi-byte UTF-8 sequence beginning with lead.
func decodeUTF8(dst []byte, lead byte, r Reader) ([]byte, Fault) {
	n := SeqLen(lead)
	if n == 0 {
		return dst, BadUTF8
	}
	var seq [utf8.UTFMax]byte
	seq[0] = lead
	for i := 1; i < n; i++ {
		if r.EOF() {
			return dst, Truncated
		}
		c := r.Next()
		if !IsContinuation(c) {
			return dst, BadUTF8
		}
		seq[i] = c
	}

	// The structural check admits overlong forms and encoded surrogates;
	// reject those here.
	if rr, size := utf8.DecodeRune(seq[:n]); rr == utf8.RuneError && size <= 1 {
		return dst, BadUTF8
	}
	return append(dst, seq[:n]...), OK
}

func readHex4(r Reader) (rune, Fault) {
	var v rune
	for range 4 {
		if r.EOF() {
			return 0, Truncated
		}
		d, ok := hexValue(r.Next())
		if !ok {
			return 0, BadUnicode
		}
		v = v<<4 | d
	}
	return v, OK
}

// SeqLen reports the length of the UTF-8 sequence introduced by the lead byte
// b, or 0 if b cannot begin a multi-byte sequence.
func SeqLen(b byte) int {
	switch {
	case b >= 0xC0 && b <= 0xDF:
		return 2
	case b >= 0xE0 && b <= 0xEF:
		return 3
	case b >= 0xF0 && b <= 0xF7:
		return 4
	}
	return 0
}

// IsContinuation reports whether b is a UTF-8 continuation byte.
func IsContinuation(b byte) bool { return b&0xC0 == 0x80 }

// IsHighSurrogate reports whether r is a UTF-16 high (leading) surrogate.
func IsHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }

// IsLowSurrogate reports whether r is a UTF-16 low (trailing) surrogate.
func IsLowSurrogate(r rune) bool { return r >= 0xDC00 && r <= 0xDFFF }

// Combine returns the code point encoded by the surrogate pair hi, lo.
func Combine(hi, lo rune) rune {
	return ((hi-0xD800)<<10 | (lo - 0xDC00)) + 0x10000
}

func hexValue(b byte) (rune, bool) {
	switch {
	case '0' <= b && b <= '9':
		return rune(b - '0'), true
	case 'a' <= b && b <= 'f':
		return rune(b - 'a' + 10), true
	case 'A' <= b && b <= 'F':
		return rune(b - 'A' + 10), true
	}
	return 0, false
}

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
// Unlike Decode, Unquote requires that the whole of src is consumed.
func Unquote(src mem.RO) ([]byte, Fault) {
	in := &memReader{src: src}
	dec, f := Decode(make([]byte, 0, src.Len()), in)
	if f == OK && !in.closed {
		// An unescaped quotation mark ended the string early.
		return dec, BadEscape
	}
	return dec, f
}

// memReader reads from a mem.RO followed by a virtual closing quote.
type memReader struct {
	src    mem.RO
	closed bool
}

func (m *memReader) EOF() bool { return m.closed }

func (m *memReader) Next() byte {
	if m.src.Len() == 0 {
		m.closed = true
		return '"'
	}
	b := m.src.At(0)
	m.src = m.src.SliceFrom(1)
	return b
}
