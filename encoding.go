// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"strings"

	"github.com/creachadair/jnode/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added. If ascii is true, non-ASCII characters are
// written as \uXXXX escapes.
func Quote(src string, ascii bool) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = escape.AppendQuote(buf, mem.S(src), ascii)
	return string(append(buf, '"'))
}

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Unquote applies the same rules as the parser, and reports an error of type
// *SyntaxError if src is not a valid JSON string.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", &SyntaxError{Code: InvalidString, Message: "missing quotations"}
	}
	dec, f := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if code := faultCode(f); code != 0 {
		return "", &SyntaxError{Code: code, Message: f.String()}
	}
	return string(dec), nil
}

// faultCode maps a decoding fault to the corresponding error code, or 0.
func faultCode(f escape.Fault) ErrorCode {
	switch f {
	case escape.OK:
		return 0
	case escape.Truncated:
		return InvalidString
	case escape.Control, escape.BadUTF8:
		return InvalidCharacter
	case escape.BadUnicode:
		return InvalidUnicode
	}
	return InvalidEscapeSequence
}
