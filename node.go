// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"math"
)

// Kind is the logical JSON type of a Node.
type Kind byte

// Constants defining the values of Kind.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "num",
	StringKind: "str",
	ArrayKind:  "arr",
	ObjectKind: "obj",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "invalid kind"
}

// NumKind is the internal representation of a number node. The distinction
// is not visible through Kind, which reports NumberKind for all three.
type NumKind byte

// Constants defining the values of NumKind.
const (
	NotNumber NumKind = iota
	Int64
	Uint64
	Float64
)

// tag is the variant stored in a Node.
type tag byte

const (
	tagNull tag = iota
	tagBool
	tagInt
	tagUint
	tagFloat
	tagString
	tagArray
	tagObject
)

var tagKind = [...]Kind{
	tagNull:   NullKind,
	tagBool:   BoolKind,
	tagInt:    NumberKind,
	tagUint:   NumberKind,
	tagFloat:  NumberKind,
	tagString: StringKind,
	tagArray:  ArrayKind,
	tagObject: ObjectKind,
}

// A Node is a JSON value. The zero value is null.
//
// A Node owns its string, array, and object contents. Assigning one Node
// variable to another copies only the header, so the two share containers;
// use Clone (or Assign) to obtain an independent value, and Move to transfer
// ownership. No method of Node uses stack space proportional to the depth of
// the tree.
type Node struct {
	tag  tag
	bits uint64 // bool, int64, uint64, or float64 payload
	str  string
	arr  Array
	obj  *Object
}

// An Array is the content of an array node.
type Array []Node

// Bool constructs a Boolean node.
func Bool(b bool) Node {
	if b {
		return Node{tag: tagBool, bits: 1}
	}
	return Node{tag: tagBool}
}

// Int constructs a signed integer node.
func Int(v int64) Node { return Node{tag: tagInt, bits: uint64(v)} }

// Uint constructs an unsigned integer node.
func Uint(v uint64) Node { return Node{tag: tagUint, bits: v} }

// Float constructs a floating-point node.
func Float(v float64) Node { return Node{tag: tagFloat, bits: math.Float64bits(v)} }

// String constructs a string node.
func String(s string) Node { return Node{tag: tagString, str: s} }

// NewArray constructs an array node with the given elements. The array takes
// ownership of the elements.
func NewArray(elts ...Node) Node {
	if elts == nil {
		elts = Array{}
	}
	return Node{tag: tagArray, arr: elts}
}

// A Member is a key-value pair of an object.
type Member struct {
	Key   string
	Value Node
}

// Field constructs an object member with the given key and value.
func Field(key string, value Node) Member { return Member{Key: key, Value: value} }

// NewObject constructs an object node with the given members. If a key
// occurs more than once, the last value given for it wins.
func NewObject(members ...Member) Node {
	o := new(Object)
	for _, m := range members {
		*o.Slot(m.Key) = m.Value
	}
	return Node{tag: tagObject, obj: o}
}

// Kind reports the logical JSON type of n.
func (n *Node) Kind() Kind { return tagKind[n.tag] }

// NumKind reports how a number node is represented, or NotNumber.
func (n *Node) NumKind() NumKind {
	switch n.tag {
	case tagInt:
		return Int64
	case tagUint:
		return Uint64
	case tagFloat:
		return Float64
	}
	return NotNumber
}

// IsNull reports whether n is null.
func (n *Node) IsNull() bool { return n.tag == tagNull }

// Size reports the length of a string, array, or object node, and 0 for any
// other kind.
func (n *Node) Size() int {
	switch n.tag {
	case tagString:
		return len(n.str)
	case tagArray:
		return len(n.arr)
	case tagObject:
		return n.obj.Len()
	}
	return 0
}

// Str returns a pointer to the string content of n, first converting n to an
// empty string if it is not already a string.
func (n *Node) Str() *string {
	if n.tag != tagString {
		*n = Node{tag: tagString}
	}
	return &n.str
}

// Arr returns a pointer to the elements of n, first converting n to an empty
// array if it is not already an array.
func (n *Node) Arr() *Array {
	if n.tag != tagArray {
		*n = Node{tag: tagArray, arr: Array{}}
	}
	return &n.arr
}

// Obj returns the members of n, first converting n to an empty object if it
// is not already an object.
func (n *Node) Obj() *Object {
	if n.tag != tagObject {
		*n = Node{tag: tagObject, obj: new(Object)}
	}
	return n.obj
}

// Index returns a pointer to element i of n, converting n to an array if
// necessary and extending it with nulls so that i is in range. Index panics
// if i < 0.
func (n *Node) Index(i int) *Node {
	if i < 0 {
		panic(&AccessError{Op: "Index", Kind: n.Kind(), Msg: "negative index"})
	}
	a := n.Arr()
	if i >= len(*a) {
		*a = append(*a, make(Array, i-len(*a)+1)...)
	}
	return &(*a)[i]
}

// Key returns a pointer to the value of key in n, converting n to an object
// if necessary and inserting a null value if key is not present.
func (n *Node) Key(key string) *Node { return n.Obj().Slot(key) }

// Append adds v to the end of n, converting n to an array if necessary.
// The array takes ownership of v.
func (n *Node) Append(v Node) {
	a := n.Arr()
	*a = append(*a, v)
}

// Assign replaces the contents of n with a deep copy of v.
func (n *Node) Assign(v *Node) { *n = v.Clone() }

// Move returns the contents of n and resets n to null.
func (n *Node) Move() Node {
	v := *n
	*n = Node{}
	return v
}

// Swap exchanges the contents of n and o.
func (n *Node) Swap(o *Node) { *n, *o = *o, *n }

// Clear resets n to null, releasing its contents.
func (n *Node) Clear() { *n = Node{} }

// Text returns the content of a string node.
func (n *Node) Text() (string, error) {
	if n.tag != tagString {
		return "", n.accessError("Text")
	}
	return n.str, nil
}

// Array returns the elements of an array node.
func (n *Node) Array() (Array, error) {
	if n.tag != tagArray {
		return nil, n.accessError("Array")
	}
	return n.arr, nil
}

// Object returns the members of an object node.
func (n *Node) Object() (*Object, error) {
	if n.tag != tagObject {
		return nil, n.accessError("Object")
	}
	return n.obj, nil
}

// At returns element i of an array node, or member i of an object node in
// key order. It reports an error if n is not a container or i is out of range.
func (n *Node) At(i int) (*Node, error) {
	if n.tag != tagArray && n.tag != tagObject {
		return nil, n.accessError("At")
	} else if i < 0 || i >= n.Size() {
		return nil, &AccessError{Op: "At", Kind: n.Kind(), Msg: "index out of range"}
	}
	return n.child(i), nil
}

// Get returns the value of key in an object node. It reports an error if n is
// not an object or key is not present.
func (n *Node) Get(key string) (*Node, error) {
	if n.tag != tagObject {
		return nil, n.accessError("Get")
	}
	if v := n.obj.Find(key); v != nil {
		return v, nil
	}
	return nil, &AccessError{Op: "Get", Kind: ObjectKind, Msg: "key " + quoteKey(key) + " not found"}
}

// Find returns the value of key in an object node, or nil if n is not an
// object or does not contain key.
func (n *Node) Find(key string) *Node {
	if n.tag != tagObject {
		return nil
	}
	return n.obj.Find(key)
}

// Has reports whether n is an object containing key.
func (n *Node) Has(key string) bool { return n.Find(key) != nil }

// Bool reports the truth value of a Boolean or number node. A number is true
// if it is not zero.
func (n *Node) Bool() (bool, error) {
	switch n.tag {
	case tagBool, tagInt, tagUint:
		return n.bits != 0, nil
	case tagFloat:
		return math.Float64frombits(n.bits) != 0, nil
	}
	return false, n.accessError("Bool")
}

// Int64 returns the value of a number node converted to int64.
func (n *Node) Int64() (int64, error) { return convert[int64](n) }

// Uint64 returns the value of a number node converted to uint64.
func (n *Node) Uint64() (uint64, error) { return convert[uint64](n) }

// Float64 returns the value of a number node converted to float64.
func (n *Node) Float64() (float64, error) { return convert[float64](n) }

// JSON returns the compact ASCII encoding of n.
func (n *Node) JSON() string { return NewSerializer().FormatToString(n) }

// String returns the compact ASCII encoding of n. It implements fmt.Stringer.
func (n *Node) String() string { return n.JSON() }

func (n *Node) accessError(op string) error { return &AccessError{Op: op, Kind: n.Kind()} }

func (n *Node) isContainer() bool { return n.tag == tagArray || n.tag == tagObject }

// child returns the i'th child of a container node.
func (n *Node) child(i int) *Node {
	if n.tag == tagArray {
		return &n.arr[i]
	}
	return &n.obj.members[i].Value
}
