// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Scalar is the set of Go types that a node can be converted to by Get.
type Scalar interface {
	bool | string |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 | uintptr |
		float32 | float64
}

// Number is the set of Go numeric types.
type Number interface {
	constraints.Integer | constraints.Float
}

// Num constructs a number node from any Go numeric type. Signed integers are
// stored as int64, unsigned integers as uint64, and floating-point values as
// float64.
func Num[T Number](v T) Node {
	var zero, one T = 0, 1
	switch {
	case one/2 != zero: // only a floating-point type has a nonzero half
		return Float(float64(v))
	case zero-one < zero:
		return Int(int64(v))
	default:
		return Uint(uint64(v))
	}
}

// Get converts the value of n to type T.
//
// A bool accepts a Boolean or number node (nonzero numbers are true). A
// numeric type accepts any number node, with Go conversion semantics for
// narrowing. A string accepts a string node and yields its content, or a null,
// Boolean, or number node and yields its JSON text. Anything else is an error
// of type *AccessError.
func Get[T Scalar](n *Node) (T, error) {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *bool:
		*p, err = n.Bool()
	case *string:
		*p, err = n.textOf()
	case *int:
		*p, err = convert[int](n)
	case *int8:
		*p, err = convert[int8](n)
	case *int16:
		*p, err = convert[int16](n)
	case *int32:
		*p, err = convert[int32](n)
	case *int64:
		*p, err = convert[int64](n)
	case *uint:
		*p, err = convert[uint](n)
	case *uint8:
		*p, err = convert[uint8](n)
	case *uint16:
		*p, err = convert[uint16](n)
	case *uint32:
		*p, err = convert[uint32](n)
	case *uint64:
		*p, err = convert[uint64](n)
	case *uintptr:
		*p, err = convert[uintptr](n)
	case *float32:
		*p, err = convert[float32](n)
	case *float64:
		*p, err = convert[float64](n)
	}
	return out, err
}

// GetKey converts the value of key in the object n to type T. It reports an
// error if n is not an object, key is not present, or the conversion fails.
func GetKey[T Scalar](n *Node, key string) (T, error) {
	v, err := n.Get(key)
	if err != nil {
		var zero T
		return zero, err
	}
	return Get[T](v)
}

// GetOr converts the value of key in the object n to type T, or returns
// fallback if n is not an object, key is not present, or the value cannot be
// converted.
func GetOr[T Scalar](n *Node, key string, fallback T) T {
	v := n.Find(key)
	if v == nil {
		return fallback
	}
	out, err := Get[T](v)
	if err != nil {
		return fallback
	}
	return out
}

// GetSlice converts the elements of the array n to a slice of T.
func GetSlice[T Scalar](n *Node) ([]T, error) {
	arr, err := n.Array()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(arr))
	for i := range arr {
		out[i], err = Get[T](&arr[i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetMap converts the members of the object n to a map from key to T.
func GetMap[T Scalar](n *Node) (map[string]T, error) {
	obj, err := n.Object()
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, obj.Len())
	for key, v := range obj.All() {
		out[key], err = Get[T](v)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func convert[T Number](n *Node) (T, error) {
	switch n.tag {
	case tagInt:
		return T(int64(n.bits)), nil
	case tagUint:
		return T(n.bits), nil
	case tagFloat:
		return T(math.Float64frombits(n.bits)), nil
	}
	return 0, n.accessError("number conversion")
}

// textOf returns the content of a string node, or the JSON text of another
// scalar node.
func (n *Node) textOf() (string, error) {
	switch n.tag {
	case tagNull:
		return "null", nil
	case tagBool:
		return strconv.FormatBool(n.bits != 0), nil
	case tagInt:
		return strconv.FormatInt(int64(n.bits), 10), nil
	case tagUint:
		return strconv.FormatUint(n.bits, 10), nil
	case tagFloat:
		return string(appendFloat(nil, math.Float64frombits(n.bits), -1)), nil
	case tagString:
		return n.str, nil
	}
	return "", n.accessError("string conversion")
}
