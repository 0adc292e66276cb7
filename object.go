// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// An Object is the content of an object node: a collection of members with
// unique keys, kept in byte-wise order of key.
//
// Pointers returned by Find and Slot remain valid until the next insertion or
// deletion on the same object.
type Object struct {
	members []Member
}

func (o *Object) search(key string) (int, bool) {
	return slices.BinarySearchFunc(o.members, key, func(m Member, key string) int {
		return strings.Compare(m.Key, key)
	})
}

// Len reports the number of members in o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Find returns the value of key in o, or nil if key is not present.
func (o *Object) Find(key string) *Node {
	if o == nil {
		return nil
	}
	if i, ok := o.search(key); ok {
		return &o.members[i].Value
	}
	return nil
}

// Slot returns a pointer to the value of key in o, inserting a null value if
// key is not already present.
func (o *Object) Slot(key string) *Node {
	i, ok := o.search(key)
	if !ok {
		o.members = slices.Insert(o.members, i, Member{Key: key})
	}
	return &o.members[i].Value
}

// Set sets the value of key in o to v, replacing any previous value, and
// returns a pointer to the stored value. The object takes ownership of v.
func (o *Object) Set(key string, v Node) *Node {
	p := o.Slot(key)
	*p = v
	return p
}

// Delete removes key from o and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.search(key)
	if ok {
		o.members = slices.Delete(o.members, i, i+1)
	}
	return ok
}

// Keys returns the keys of o in order.
func (o *Object) Keys() []string {
	keys := make([]string, o.Len())
	for i := range keys {
		keys[i] = o.members[i].Key
	}
	return keys
}

// Members returns the members of o in key order. The caller must not change
// the keys of the returned members.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

// All returns an iterator over the keys and values of o in key order.
func (o *Object) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for i := 0; i < o.Len(); i++ {
			if !yield(o.members[i].Key, &o.members[i].Value) {
				return
			}
		}
	}
}

func quoteKey(key string) string { return strconv.Quote(key) }
