// Package numeric implements lexing and classification of JSON numbers.
//
// A number is classified as an unsigned integer, a signed integer, or a
// floating-point value. Integer range is decided by comparing digit strings
// against the decimal limits of the 64-bit types, so that no value is ever
// converted speculatively through a float.
package numeric

import (
	"errors"
	"math"

	"go4.org/mem"
)

// Kind is the representation chosen for a number.
type Kind byte

// Constants defining the values of Kind.
const (
	Float Kind = iota // float64
	Int               // int64 (negative integers)
	Uint              // uint64 (non-negative integers)
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Uint:
		return "uint"
	}
	return "invalid kind"
}

const (
	maxUint64    = "18446744073709551615"
	minInt64Span = "9223372036854775808" // magnitude of math.MinInt64
)

// ErrRange is reported for a number whose value is not finite as a float64.
var ErrRange = errors.New("number out of range")

// A Value is a classified number. Exactly one of the payload fields is
// meaningful, according to Kind.
type Value struct {
	Kind  Kind
	Int   int64
	Uint  uint64
	Float float64
}

// Parse classifies and converts the text of a number that has already been
// checked against the JSON number grammar. If isFloat is true the text has a
// fraction or exponent.
func Parse(text mem.RO, isFloat bool) (Value, error) {
	if isFloat {
		return parseFloat(text)
	}
	if text.Len() != 0 && text.At(0) == '-' {
		digits := text.SliceFrom(1)
		if exceeds(digits, minInt64Span) {
			return parseFloat(text)
		}
		u, err := mem.ParseUint(digits, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: Int, Int: -int64(u)}, nil
	}
	if exceeds(text, maxUint64) {
		return parseFloat(text)
	}
	u, err := mem.ParseUint(text, 10, 64)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: Uint, Uint: u}, nil
}

func parseFloat(text mem.RO) (Value, error) {
	f, err := mem.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		return Value{}, ErrRange
	}
	return Value{Kind: Float, Float: f}, nil
}

// exceeds reports whether the decimal digit string ds denotes a value greater
// than limit. Neither may have leading zeroes.
func exceeds(ds mem.RO, limit string) bool {
	if ds.Len() != len(limit) {
		return ds.Len() > len(limit)
	}
	for i := 0; i < ds.Len(); i++ {
		if c := ds.At(i); c != limit[i] {
			return c > limit[i]
		}
	}
	return false
}
