package jnode

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// input wraps a Source to track the position of the parser.
type input struct {
	src Source
	off int
	pos LineCol
}

func (in *input) reset(src Source, off int) {
	*in = input{src: src, off: off, pos: LineCol{Line: 1}}
}

func (in *input) EOF() bool  { return in.src.EOF() }
func (in *input) Peek() byte { return in.src.Peek() }
func (in *input) Advance()   { in.step(in.src.Next()) }

func (in *input) Next() byte {
	c := in.src.Next()
	in.step(c)
	return c
}

func (in *input) step(c byte) {
	in.off++
	if c == '\n' {
		in.pos.Line++
		in.pos.Column = 0
	} else {
		in.pos.Column++
	}
}

// skipSpace discards insignificant whitespace.
func (in *input) skipSpace() {
	for !in.src.EOF() && isSpace(in.src.Peek()) {
		in.Advance()
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\r' || c == '\n' || c == '\t' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
