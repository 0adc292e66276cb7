// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import "math"

// A frame records the progress of a traversal through one container.
type frame struct {
	src, dst *Node
	next     int // index of the next child to visit
}

// Clone returns a deep copy of n that shares no storage with it.
func (n *Node) Clone() Node {
	out := n.shallowCopy()
	if n.Size() == 0 || !n.isContainer() {
		return out
	}
	stk := []frame{{src: n, dst: &out}}
	for len(stk) > 0 {
		f := &stk[len(stk)-1]
		if f.next == f.src.Size() {
			stk = stk[:len(stk)-1]
			continue
		}
		sc, dc := f.src.child(f.next), f.dst.child(f.next)
		f.next++

		*dc = sc.shallowCopy()
		if sc.isContainer() && sc.Size() > 0 {
			stk = append(stk, frame{src: sc, dst: dc})
		}
	}
	return out
}

// shallowCopy copies a scalar node, or allocates fresh storage for the
// children of a container. The keys of an object are copied; its values
// are left null.
func (n *Node) shallowCopy() Node {
	switch n.tag {
	case tagArray:
		return Node{tag: tagArray, arr: make(Array, len(n.arr))}
	case tagObject:
		o := &Object{members: make([]Member, n.obj.Len())}
		for i, m := range n.obj.members {
			o.members[i].Key = m.Key
		}
		return Node{tag: tagObject, obj: o}
	}
	return *n
}

// Equal reports whether a and b are structurally equal. Numbers are compared
// by value regardless of representation, so Int(1), Uint(1), and Float(1) are
// all equal. Objects are equal if they have the same keys mapped to equal
// values.
func Equal(a, b *Node) bool {
	if !shallowEqual(a, b) {
		return false
	} else if !a.isContainer() {
		return true
	}
	stk := []frame{{src: a, dst: b}}
	for len(stk) > 0 {
		f := &stk[len(stk)-1]
		if f.next == f.src.Size() {
			stk = stk[:len(stk)-1]
			continue
		}
		ca, cb := f.src.child(f.next), f.dst.child(f.next)
		f.next++

		if !shallowEqual(ca, cb) {
			return false
		} else if ca.isContainer() && ca.Size() > 0 {
			stk = append(stk, frame{src: ca, dst: cb})
		}
	}
	return true
}

// shallowEqual compares a and b without descending into containers. For
// objects, the keys are compared.
func shallowEqual(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.tag {
	case tagNull:
		return true
	case tagBool:
		return a.bits == b.bits
	case tagInt, tagUint, tagFloat:
		return numEqual(a, b)
	case tagString:
		return a.str == b.str
	case tagArray:
		return len(a.arr) == len(b.arr)
	case tagObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for i, m := range a.obj.members {
			if b.obj.members[i].Key != m.Key {
				return false
			}
		}
		return true
	}
	panic("unreachable")
}

func numEqual(a, b *Node) bool {
	if a.tag == tagFloat || b.tag == tagFloat {
		fa, _ := a.Float64()
		fb, _ := b.Float64()
		return fa == fb
	}
	if a.tag == b.tag {
		return a.bits == b.bits
	}
	// One is signed and one unsigned; only non-negative values can agree.
	if a.tag == tagInt && int64(a.bits) < 0 || b.tag == tagInt && int64(b.bits) < 0 {
		return false
	}
	return a.bits == b.bits
}

// Walk calls fn for n and each of its descendants in depth-first pre-order,
// reporting the depth of each node (0 for n). If fn returns false, the
// children of that node are skipped.
func (n *Node) Walk(fn func(v *Node, depth int) bool) {
	if !fn(n, 0) || !n.isContainer() {
		return
	}
	stk := []frame{{src: n}}
	for len(stk) > 0 {
		f := &stk[len(stk)-1]
		if f.next == f.src.Size() {
			stk = stk[:len(stk)-1]
			continue
		}
		c := f.src.child(f.next)
		f.next++
		if fn(c, len(stk)) && c.isContainer() {
			stk = append(stk, frame{src: c})
		}
	}
}

// Stats summarizes the contents of a tree.
type Stats struct {
	Nodes    int    // total number of nodes
	Kinds    [6]int // count of nodes by Kind
	Numbers  [4]int // count of number nodes by NumKind
	MaxDepth int    // deepest nesting level (0 for a scalar root)
	Keys     int    // total object members
	Bytes    int    // total bytes of string content, keys included
}

// Stats returns a summary of the contents of n.
func (n *Node) Stats() Stats {
	var s Stats
	n.Walk(func(v *Node, depth int) bool {
		s.Nodes++
		s.Kinds[v.Kind()]++
		s.Numbers[v.NumKind()]++
		s.MaxDepth = max(s.MaxDepth, depth)
		switch v.tag {
		case tagString:
			s.Bytes += len(v.str)
		case tagObject:
			s.Keys += v.obj.Len()
			for _, m := range v.obj.members {
				s.Bytes += len(m.Key)
			}
		}
		return true
	})
	return s
}

// isFinite reports whether a float node holds a finite value.
func (n *Node) isFinite() bool {
	f := math.Float64frombits(n.bits)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
