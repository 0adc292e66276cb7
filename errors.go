// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import "fmt"

// ErrorCode classifies the errors reported by this package. An ErrorCode is
// itself an error, so callers may test for a class of failure with errors.Is:
//
//	if errors.Is(err, jnode.InvalidNumber) { ... }
type ErrorCode byte

// Constants defining the values of ErrorCode.
const (
	InvalidJSON           ErrorCode = iota + 1 // structurally invalid input
	UnexpectedEndOfInput                       // input ended while a value was pending
	InvalidLiteral                             // malformed null, true, or false
	InvalidNumber                              // malformed or out-of-range number
	InvalidString                              // unterminated string
	InvalidCharacter                           // disallowed byte in a string
	InvalidUnicode                             // bad \u escape or surrogate pair
	InvalidEscapeSequence                      // unknown backslash escape
	InvalidKeyValuePair                        // malformed object member
	InvalidArrayOrObject                       // separator outside a container
	InvalidJSONAccess                          // read of a node with the wrong kind
)

var codeStr = [...]string{
	InvalidJSON:           "invalid json",
	UnexpectedEndOfInput:  "unexpected end of input",
	InvalidLiteral:        "invalid literal",
	InvalidNumber:         "invalid number",
	InvalidString:         "invalid string",
	InvalidCharacter:      "invalid character",
	InvalidUnicode:        "invalid unicode",
	InvalidEscapeSequence: "invalid escape sequence",
	InvalidKeyValuePair:   "invalid key-value pair",
	InvalidArrayOrObject:  "invalid array or object",
	InvalidJSONAccess:     "invalid json access",
}

func (c ErrorCode) String() string {
	if int(c) > 0 && int(c) < len(codeStr) {
		return codeStr[c]
	}
	return fmt.Sprintf("error code %d", byte(c))
}

// Error implements the error interface.
func (c ErrorCode) Error() string { return c.String() }

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Code     ErrorCode
	Offset   int     // byte offset of the failure in the source
	Location LineCol // line and column, relative to where parsing began
	Message  string

	eof bool
	err error
}

func (s *SyntaxError) Error() string {
	if s.Message == "" {
		return fmt.Sprintf("at %s: %v", s.Location, s.Code)
	}
	return fmt.Sprintf("at %s: %v: %s", s.Location, s.Code, s.Message)
}

// Unwrap reports the underlying I/O error, if any.
func (s *SyntaxError) Unwrap() error { return s.err }

// Is reports whether target is the ErrorCode of s.
func (s *SyntaxError) Is(target error) bool {
	c, ok := target.(ErrorCode)
	return ok && c == s.Code
}

// Truncated reports whether the error occurred because the input ended before
// the value was complete, as opposed to the input being malformed.
func (s *SyntaxError) Truncated() bool { return s.eof }

// AccessError is the concrete type of errors reported when a node is read as
// a kind it does not hold, or indexed outside its bounds.
type AccessError struct {
	Op   string // the operation attempted, e.g. "Text" or "At"
	Kind Kind   // the kind of the node
	Msg  string // optional detail
}

func (e *AccessError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%v: %s on %v: %s", InvalidJSONAccess, e.Op, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s on %v", InvalidJSONAccess, e.Op, e.Kind)
}

// Is reports whether target is InvalidJSONAccess.
func (e *AccessError) Is(target error) bool { return target == InvalidJSONAccess }

// Must returns v if err == nil, and otherwise panics with err. It is intended
// for reads whose failure is a bug in the caller:
//
//	name := jnode.Must(doc.Get("name"))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
