// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jnode/internal/escape"
	"go4.org/mem"
)

// A Serializer carries the settings for rendering nodes as JSON text.
// Construct one with NewSerializer and adjust it with its setter methods:
//
//	s := jnode.NewSerializer().Indent(2).ASCII(false)
//	err := s.Format(os.Stdout, &doc)
//
// Like the Parser, the Serializer walks the tree with an explicit stack, so
// arbitrarily deep trees can be rendered.
type Serializer struct {
	precision int  // significant digits for floats, or -1 for shortest
	indent    int  // spaces per level, or -1 for compact output
	ascii     bool // escape non-ASCII text
}

// NewSerializer returns a Serializer with default settings: compact output,
// shortest round-trip formatting for floats, and ASCII-only text.
func NewSerializer() Serializer { return Serializer{precision: -1, indent: -1, ascii: true} }

// Precision returns a copy of s that renders floating-point numbers with p
// significant digits. If p < 0, the shortest representation that parses back
// to the same value is used.
func (s Serializer) Precision(p int) Serializer { s.precision = max(p, -1); return s }

// Indent returns a copy of s that renders containers across multiple lines,
// indenting each level by n spaces. If n < 0, output is compact.
func (s Serializer) Indent(n int) Serializer { s.indent = max(n, -1); return s }

// ASCII returns a copy of s that escapes all non-ASCII text as \uXXXX (if ok
// is true) or writes it as UTF-8 (if ok is false).
func (s Serializer) ASCII(ok bool) Serializer { s.ascii = ok; return s }

// Format renders n as JSON text to w.
func (s Serializer) Format(w io.Writer, n *Node) error {
	out := sink{w: w, buf: make([]byte, 0, flushSize)}
	s.render(&out, n)
	out.flush()
	return out.err
}

// FormatToString renders n as JSON text and returns it as a string.
func (s Serializer) FormatToString(n *Node) string { return string(s.Append(nil, n)) }

// Append appends the JSON text of n to buf and returns the extended slice.
func (s Serializer) Append(buf []byte, n *Node) []byte {
	out := sink{buf: buf}
	s.render(&out, n)
	return out.buf
}

// render emits n. A container is opened when it is first reached, and each
// loop iteration emits one separator, one member key, and one child, or the
// close of the innermost container.
func (s Serializer) render(out *sink, n *Node) {
	var stk []frame
	if s.open(out, n, 1) {
		stk = append(stk, frame{src: n})
	}
	for len(stk) > 0 && out.err == nil {
		f := &stk[len(stk)-1]
		depth := len(stk)
		if f.next == f.src.Size() {
			done := f.src
			stk = stk[:len(stk)-1]
			s.newline(out, depth-1)
			if done.tag == tagArray {
				out.buf = append(out.buf, ']')
			} else {
				out.buf = append(out.buf, '}')
			}
			continue
		}
		if f.next > 0 {
			out.buf = append(out.buf, ',')
			s.newline(out, depth)
		}
		if f.src.tag == tagObject {
			out.buf = s.appendString(append(out.buf, '"'), f.src.obj.members[f.next].Key)
			out.buf = append(out.buf, '"', ':')
			if s.indent >= 0 {
				out.buf = append(out.buf, ' ')
			}
		}
		c := f.src.child(f.next)
		f.next++
		if s.open(out, c, depth+1) {
			stk = append(stk, frame{src: c})
		}
		out.maybeFlush()
	}
}

// open emits a scalar, an empty container, or the opening of a non-empty
// container whose children will be at the given depth. It reports whether a
// container was opened.
func (s Serializer) open(out *sink, n *Node, depth int) bool {
	switch n.tag {
	case tagNull:
		out.buf = append(out.buf, "null"...)
	case tagBool:
		out.buf = strconv.AppendBool(out.buf, n.bits != 0)
	case tagInt:
		out.buf = strconv.AppendInt(out.buf, int64(n.bits), 10)
	case tagUint:
		out.buf = strconv.AppendUint(out.buf, n.bits, 10)
	case tagFloat:
		if !n.isFinite() {
			out.buf = append(out.buf, "null"...) // not representable in JSON
		} else {
			out.buf = appendFloat(out.buf, math.Float64frombits(n.bits), s.precision)
		}
	case tagString:
		out.buf = append(s.appendString(append(out.buf, '"'), n.str), '"')
	case tagArray, tagObject:
		lb, rb := byte('['), byte(']')
		if n.tag == tagObject {
			lb, rb = '{', '}'
		}
		if n.Size() == 0 {
			out.buf = append(out.buf, lb, rb)
			return false
		}
		out.buf = append(out.buf, lb)
		s.newline(out, depth)
		return true
	}
	return false
}

func (s Serializer) newline(out *sink, depth int) {
	if s.indent < 0 {
		return
	}
	out.buf = append(out.buf, '\n')
	for range s.indent * depth {
		out.buf = append(out.buf, ' ')
	}
}

func (s Serializer) appendString(buf []byte, str string) []byte {
	return escape.AppendQuote(buf, mem.S(str), s.ascii)
}

// appendFloat appends the text of a finite f. If prec < 0, it uses the
// shortest representation that round-trips, in plain notation for magnitudes
// in [1e-6, 1e21) and in exponent notation otherwise.
func appendFloat(buf []byte, f float64, prec int) []byte {
	if prec >= 0 {
		return strconv.AppendFloat(buf, f, 'g', max(prec, 1), 64)
	}
	abs, fmt := math.Abs(f), byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	buf = strconv.AppendFloat(buf, f, fmt, -1, 64)
	if fmt == 'e' {
		// Trim a leading zero from a two-digit exponent: 1e-07 becomes 1e-7.
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return buf
}

const flushSize = 4096

// sink accumulates output, passing it to w in chunks if w is set.
type sink struct {
	buf []byte
	w   io.Writer
	err error
}

func (s *sink) maybeFlush() {
	if s.w != nil && len(s.buf) >= flushSize {
		s.flush()
	}
}

func (s *sink) flush() {
	if s.err == nil && len(s.buf) != 0 {
		_, s.err = s.w.Write(s.buf)
	}
	s.buf = s.buf[:0]
}
