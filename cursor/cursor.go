// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements path navigation over a jnode.Node tree.
//
// A cursor keeps the chain of nodes from its origin to its current position
// on an explicit stack, so arbitrarily deep trees can be navigated without
// recursion. The nodes it reports are pointers into the origin tree and are
// not copied.
package cursor

import (
	"fmt"

	"github.com/creachadair/jnode"
)

// Path navigates path from v as described by [Cursor.Down] and converts the
// node it reaches to type T with [jnode.Get].
func Path[T jnode.Scalar](v *jnode.Node, path ...any) (T, error) {
	c := New(v)
	if err := c.Down(path...).Err(); err != nil {
		var zero T
		return zero, err
	}
	return jnode.Get[T](c.Value())
}

// A Cursor tracks a position in the structure of a jnode.Node. Writes through
// the pointers it returns modify the origin tree.
type Cursor struct {
	root  *jnode.Node
	trail []*jnode.Node // nodes below root on the current path
	err   error
}

// New returns a Cursor positioned at origin.
func New(origin *jnode.Node) *Cursor { return &Cursor{root: origin} }

// Origin returns the node c was created for.
func (c *Cursor) Origin() *jnode.Node { return c.root }

// AtOrigin reports whether c is positioned at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.trail) == 0 }

// Value returns the node at the current position.
func (c *Cursor) Value() *jnode.Node {
	if n := len(c.trail); n > 0 {
		return c.trail[n-1]
	}
	return c.root
}

// Path returns the nodes from the origin to the current position, inclusive.
func (c *Cursor) Path() []*jnode.Node {
	out := make([]*jnode.Node, 0, len(c.trail)+1)
	return append(append(out, c.root), c.trail...)
}

// Depth returns the number of steps between the origin and the current
// position.
func (c *Cursor) Depth() int { return len(c.trail) }

// Err returns the error recorded by the last call to Down or Make, or nil.
func (c *Cursor) Err() error { return c.err }

// Up moves c to the parent of its current position. At the origin it does
// nothing. It returns c.
func (c *Cursor) Up() *Cursor {
	if n := len(c.trail); n > 0 {
		c.trail[n-1] = nil
		c.trail = c.trail[:n-1]
	}
	return c
}

// Reset moves c back to its origin and discards any recorded error.
func (c *Cursor) Reset() {
	clear(c.trail)
	c.trail = c.trail[:0]
	c.err = nil
}

// Down moves c along path from its current position. Each element of path
// is one of:
//
//   - a string, which selects the member of an object with that key;
//   - an int, which selects an element of an array or the member of an
//     object at that position in key order, counting from the end if
//     negative (-1 is the last);
//   - a func(*jnode.Node) (*jnode.Node, error), whose result becomes the
//     next position;
//   - nil, which is skipped.
//
// Down stops at the first element that cannot be followed and records an
// error, leaving c at the last position reached. It returns c so that the
// error can be checked with Err.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case nil:
			continue

		case string:
			if cur.Kind() != jnode.ObjectKind {
				return c.failf("cannot select key %q from %v", t, cur.Kind())
			}
			next := cur.Find(t)
			if next == nil {
				return c.failf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			if k := cur.Kind(); k != jnode.ArrayKind && k != jnode.ObjectKind {
				return c.failf("cannot select index %d from %v", t, k)
			}
			pos, ok := resolveIndex(cur.Size(), t)
			if !ok {
				return c.failf("index %d out of range for %v of size %d", t, cur.Kind(), cur.Size())
			}
			cur = c.push(jnode.Must(cur.At(pos)))

		case func(*jnode.Node) (*jnode.Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.failf("unsupported path element %T", elt)
		}
	}
	return c
}

// Make moves c along path like Down, but creates structure that is missing.
// A string element converts the current node to an object if it is not one
// and adds the key with a null value if it is absent. A non-negative int
// converts the current node to an array if it is not one and extends it with
// nulls to include the index. Other elements are not permitted.
//
// Make may replace existing non-container values along the path.
// Pointers previously obtained from Value or Path for nodes below the current
// position may be invalidated.
func (c *Cursor) Make(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case nil:
			continue
		case string:
			cur = c.push(cur.Key(t))
		case int:
			if t < 0 {
				return c.failf("cannot create negative index %d", t)
			}
			cur = c.push(cur.Index(t))
		default:
			return c.failf("unsupported path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v *jnode.Node) *jnode.Node {
	c.trail = append(c.trail, v)
	return v
}

func (c *Cursor) failf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

// resolveIndex maps a possibly negative index into [0, n).
func resolveIndex(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, 0 <= i && i < n
}
