// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jnode/internal/escape"
	"github.com/creachadair/jnode/internal/numeric"
	"go4.org/mem"
)

// A Parser constructs Node trees from JSON text read from a Source. The zero
// value is ready for use. A Parser handles one parse at a time and must not
// be used concurrently; it may be reused for successive parses.
//
// The parser does not recurse: it keeps an explicit stack of slots in the tree
// still to be filled, so the depth of the input is limited only by memory
// unless MaxDepth is set.
type Parser struct {
	// If positive, MaxDepth limits the nesting depth of arrays and objects.
	// Deeper input is reported as InvalidJSON.
	MaxDepth int

	stk   []slot
	depth int    // number of open containers
	buf   []byte // scratch for strings and numbers
	in    input
}

// A slot is a location in the tree being constructed. It is either a value
// still to be parsed, or an open container awaiting a comma or its close.
type slot struct {
	node *Node
	open bool
}

// Parse parses a single JSON value from src. It is an error if anything other
// than whitespace follows the value. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (p *Parser) Parse(src Source) (Node, error) {
	var root Node
	p.in.reset(src, sourceOffset(src))
	if err := p.parse(&root, true); err != nil {
		return Node{}, err
	}
	return root, nil
}

// ParseNext parses the next JSON value from src, skipping leading whitespace
// and leaving any input after the value unconsumed. If src contains only
// whitespace, ParseNext returns io.EOF. Repeated calls to ParseNext parse a
// sequence of whitespace-separated values.
func (p *Parser) ParseNext(src Source) (Node, error) {
	p.in.reset(src, sourceOffset(src))
	p.in.skipSpace()
	if p.in.EOF() {
		if err := src.Err(); err != nil {
			return Node{}, err
		}
		return Node{}, io.EOF
	}
	var root Node
	if err := p.parse(&root, false); err != nil {
		return Node{}, err
	}
	return root, nil
}

// StreamParse parses a single JSON value from src, tolerating input that ends
// before the value is complete. It returns the tree constructed so far and
// reports whether the value was complete. If the input ran out, the error is
// nil and complete is false; the caller may supply more input and parse
// again. If the input is malformed, the partial tree is returned along with
// the error. Input following a complete value is not examined.
func (p *Parser) StreamParse(src Source) (_ Node, complete bool, _ error) {
	var root Node
	p.in.reset(src, sourceOffset(src))
	err := p.parse(&root, false)
	if err == nil {
		return root, true, nil
	}
	var serr *SyntaxError
	if errors.As(err, &serr) && serr.Truncated() {
		return root, false, nil
	}
	return root, false, err
}

func (p *Parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *SyntaxError:
			*errp = err
		default:
			panic(perr)
		}
	}
}

// parse reads a value into root from the input, which the caller has reset.
func (p *Parser) parse(root *Node, checkEnd bool) (err error) {
	defer p.recoverParseError(&err)
	defer func() { clear(p.stk); p.stk = p.stk[:0] }()

	p.depth = 0
	p.stk = append(p.stk[:0], slot{node: root})
	for len(p.stk) > 0 {
		p.in.skipSpace()
		if p.in.EOF() {
			p.failEOF(UnexpectedEndOfInput, "value expected")
		}
		if top := p.stk[len(p.stk)-1]; top.open {
			p.parseSeparator(top.node)
		} else {
			p.parseValue(top.node)
		}
	}
	if checkEnd {
		p.in.skipSpace()
		if !p.in.EOF() {
			p.fail(InvalidJSON, "unexpected %q after value", p.in.Peek())
		} else if err := p.in.src.Err(); err != nil {
			p.ioError(err)
		}
	}
	return nil
}

// parseValue fills the slot at the top of the stack from the next value in
// the input.
func (p *Parser) parseValue(node *Node) {
	switch c := p.in.Peek(); {
	case c == 'n' || c == 't' || c == 'f':
		p.parseLiteral(node)
		p.pop()
	case c == '"':
		p.in.Advance()
		*node = String(p.parseString())
		p.pop()
	case c == '-' || isDigit(c):
		p.parseNumber(node)
		p.pop()
	case c == '[':
		p.in.Advance()
		*node = Node{tag: tagArray, arr: Array{}}
		p.beginContainer(node, ']')
	case c == '{':
		p.in.Advance()
		*node = Node{tag: tagObject, obj: new(Object)}
		p.beginContainer(node, '}')
	case c == ',':
		p.fail(InvalidArrayOrObject, "unexpected comma")
	default:
		p.fail(InvalidJSON, "unexpected %q", c)
	}
}

// beginContainer marks the slot at the top of the stack as an open container,
// then either closes it (if empty) or pushes a slot for its first element.
func (p *Parser) beginContainer(node *Node, closer byte) {
	p.depth++
	if p.MaxDepth > 0 && p.depth > p.MaxDepth {
		p.fail(InvalidJSON, "nesting depth exceeds %d", p.MaxDepth)
	}
	p.stk[len(p.stk)-1].open = true

	p.in.skipSpace()
	if p.in.EOF() {
		p.failEOF(UnexpectedEndOfInput, "expected value or %q", closer)
	} else if p.in.Peek() == closer {
		p.in.Advance()
		p.closeContainer()
		return
	}
	if node.tag == tagArray {
		p.pushElement(node)
	} else {
		p.beginMember(node)
	}
}

// parseSeparator handles the byte following an element of an open container,
// which must be a comma or the matching close bracket.
func (p *Parser) parseSeparator(node *Node) {
	closer := byte('}')
	if node.tag == tagArray {
		closer = ']'
	}
	switch c := p.in.Peek(); c {
	case ',':
		p.in.Advance()
		if node.tag == tagArray {
			p.pushElement(node)
		} else {
			p.in.skipSpace()
			p.beginMember(node)
		}
	case closer:
		p.in.Advance()
		p.closeContainer()
	default:
		p.fail(InvalidJSON, "expected ',' or %q, got %q", closer, c)
	}
}

func (p *Parser) pushElement(node *Node) {
	node.arr = append(node.arr, Node{})
	p.push(&node.arr[len(node.arr)-1])
}

// beginMember parses an object key and its colon, and pushes a slot for the
// value.
func (p *Parser) beginMember(node *Node) {
	if p.in.EOF() {
		p.failEOF(UnexpectedEndOfInput, "expected object key")
	} else if c := p.in.Peek(); c != '"' {
		p.fail(InvalidKeyValuePair, "expected object key, got %q", c)
	}
	p.in.Advance()
	key := p.parseString()

	p.in.skipSpace()
	if p.in.EOF() {
		p.failEOF(UnexpectedEndOfInput, "expected ':' after object key")
	} else if c := p.in.Peek(); c != ':' {
		p.fail(InvalidKeyValuePair, "expected ':' after object key, got %q", c)
	}
	p.in.Advance()

	// The slot pointer stays valid because no other member of this object is
	// inserted until the value has been parsed and its slot popped.
	p.push(node.obj.Slot(key))
}

func (p *Parser) closeContainer() {
	p.depth--
	p.pop()
}

func (p *Parser) push(node *Node) { p.stk = append(p.stk, slot{node: node}) }

func (p *Parser) pop() {
	if len(p.stk) == 0 {
		p.fail(InvalidJSON, "unbalanced input")
	}
	p.stk = p.stk[:len(p.stk)-1]
}

var literals = [...]struct {
	text  string
	value Node
}{
	{"null", Node{}},
	{"true", Node{tag: tagBool, bits: 1}},
	{"false", Node{tag: tagBool}},
}

func (p *Parser) parseLiteral(node *Node) {
	lit := literals[0]
	switch p.in.Peek() {
	case 't':
		lit = literals[1]
	case 'f':
		lit = literals[2]
	}
	for i := 0; i < len(lit.text); i++ {
		if p.in.EOF() {
			p.failEOF(InvalidLiteral, "incomplete %s", lit.text)
		} else if p.in.Next() != lit.text[i] {
			p.fail(InvalidLiteral, "expected %s", lit.text)
		}
	}
	*node = lit.value
}

// parseString decodes a string whose opening quote has been consumed.
func (p *Parser) parseString() string {
	var f escape.Fault
	p.buf, f = escape.Decode(p.buf[:0], &p.in)
	switch code := faultCode(f); {
	case code == 0:
		return string(p.buf)
	case f == escape.Truncated:
		p.failEOF(code, "%v", f)
	default:
		p.fail(code, "%v", f)
	}
	panic("unreachable")
}

func (p *Parser) parseNumber(node *Node) {
	var isFloat bool
	var f numeric.Fault
	p.buf, isFloat, f = numeric.Scan(p.buf[:0], &p.in)
	switch f {
	case numeric.Truncated:
		p.failEOF(InvalidNumber, "incomplete number %q", p.buf)
	case numeric.Malformed:
		p.fail(InvalidNumber, "malformed number %q", p.buf)
	}
	v, err := numeric.Parse(mem.B(p.buf), isFloat)
	if err != nil {
		p.fail(InvalidNumber, "%q: %v", p.buf, err)
	}
	switch v.Kind {
	case numeric.Int:
		*node = Int(v.Int)
	case numeric.Uint:
		*node = Uint(v.Uint)
	default:
		*node = Float(v.Float)
	}
}

func (p *Parser) fail(code ErrorCode, msg string, args ...any) {
	panic(&SyntaxError{
		Code:     code,
		Offset:   p.in.off,
		Location: p.in.pos,
		Message:  fmt.Sprintf(msg, args...),
	})
}

// failEOF reports an error caused by the end of the input. If the input
// ended because of a read error, that error is reported instead.
func (p *Parser) failEOF(code ErrorCode, msg string, args ...any) {
	if err := p.in.src.Err(); err != nil {
		p.ioError(err)
	}
	panic(&SyntaxError{
		Code:     code,
		Offset:   p.in.off,
		Location: p.in.pos,
		Message:  fmt.Sprintf(msg, args...),
		eof:      true,
	})
}

func (p *Parser) ioError(err error) {
	panic(&SyntaxError{
		Code:     InvalidJSON,
		Offset:   p.in.off,
		Location: p.in.pos,
		Message:  err.Error(),
		err:      err,
	})
}

func sourceOffset(src Source) int {
	if b, ok := src.(*BytesSource); ok {
		return b.Offset()
	}
	return 0
}

// Parse parses a single JSON value from data. It is an error if anything
// other than whitespace follows the value.
func Parse(data []byte) (Node, error) {
	var p Parser
	return p.Parse(NewBytesSource(data, 0))
}

// ParseString parses a single JSON value from s.
func ParseString(s string) (Node, error) { return Parse([]byte(s)) }

// ParseReader parses a single JSON value from r, which must contain nothing
// else but whitespace.
func ParseReader(r io.Reader) (Node, error) {
	var p Parser
	return p.Parse(NewReaderSource(r))
}

// ParseAt parses the next JSON value from data beginning at offset, and
// returns the value along with the offset just past its end. Use the end
// offset as the starting offset of the next call to parse a sequence of
// whitespace-separated values. When no further values remain, ParseAt
// returns io.EOF.
func ParseAt(data []byte, offset int) (Node, int, error) {
	var p Parser
	src := NewBytesSource(data, offset)
	v, err := p.ParseNext(src)
	return v, src.Offset(), err
}

// StreamParse parses a possibly-incomplete JSON value from data. See
// Parser.StreamParse.
func StreamParse(data []byte) (Node, bool, error) {
	var p Parser
	return p.StreamParse(NewBytesSource(data, 0))
}
