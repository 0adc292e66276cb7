// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"bufio"
	"errors"
	"io"
)

// A Source supplies input bytes to a Parser.
//
// Peek and Next may only be called when EOF reports false. EOF reports true
// both at the end of the input and after a read error; Err distinguishes the
// two.
type Source interface {
	Peek() byte // return the current byte without consuming it
	Advance()   // consume the current byte
	Next() byte // consume and return the current byte
	EOF() bool  // report whether the input is exhausted
	Err() error // report a read error other than end of input, if any
}

// BytesSource is a Source that reads from a byte slice.
type BytesSource struct {
	data []byte
	pos  int
}

// NewBytesSource constructs a Source that reads data beginning at offset.
func NewBytesSource(data []byte, offset int) *BytesSource {
	return &BytesSource{data: data, pos: min(max(offset, 0), len(data))}
}

// Offset reports the offset of the next unconsumed byte of the input. After a
// successful parse, this is the offset just past the end of the value.
func (b *BytesSource) Offset() int { return b.pos }

func (b *BytesSource) Peek() byte {
	if b.pos < len(b.data) {
		return b.data[b.pos]
	}
	return 0
}

func (b *BytesSource) Advance() {
	if b.pos < len(b.data) {
		b.pos++
	}
}

func (b *BytesSource) Next() byte { c := b.Peek(); b.Advance(); return c }
func (b *BytesSource) EOF() bool  { return b.pos >= len(b.data) }
func (*BytesSource) Err() error   { return nil }

// ReaderSource is a Source that reads from a buffered io.Reader. It may read
// ahead of the bytes consumed by the parser; see Release.
type ReaderSource struct {
	r    *bufio.Reader
	orig io.Reader
	err  error
}

// NewReaderSource constructs a Source that consumes input from r. If r is
// already a *bufio.Reader, it is used directly; otherwise r is wrapped in a
// new buffer.
func NewReaderSource(r io.Reader) *ReaderSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ReaderSource{r: br, orig: r}
}

func (s *ReaderSource) Peek() byte {
	if b, _ := s.r.Peek(1); len(b) != 0 {
		return b[0]
	}
	return 0
}

func (s *ReaderSource) Advance() { s.r.ReadByte() }

func (s *ReaderSource) Next() byte {
	c, _ := s.r.ReadByte()
	return c
}

func (s *ReaderSource) EOF() bool {
	if _, err := s.r.Peek(1); err != nil {
		if s.err == nil && !errors.Is(err, io.EOF) {
			s.err = err
		}
		return true
	}
	return false
}

func (s *ReaderSource) Err() error { return s.err }

// Release returns any input that has been buffered but not consumed to the
// underlying reader, if that reader implements io.Seeker. This allows the
// reader to be used for other purposes after a value has been parsed from it.
// Release is a no-op if the reader is not seekable, or was itself a
// *bufio.Reader.
func (s *ReaderSource) Release() error {
	n := s.r.Buffered()
	if n == 0 {
		return nil
	}
	sk, ok := s.orig.(io.Seeker)
	if !ok {
		return nil
	}
	_, err := sk.Seek(-int64(n), io.SeekCurrent)
	s.r.Reset(s.orig)
	return err
}

// StreamSource is a Source that reads from an unbuffered io.Reader one byte at
// a time. It never consumes input beyond the byte under examination, so the
// rest of the stream remains available to the caller after a parse.
type StreamSource struct {
	r    io.Reader
	br   io.ByteReader // set if r implements it
	cur  byte
	full bool // cur holds an unconsumed byte
	done bool // no further input
	err  error
}

// NewStreamSource constructs a Source that consumes input from r.
func NewStreamSource(r io.Reader) *StreamSource {
	s := &StreamSource{r: r}
	s.br, _ = r.(io.ByteReader)
	return s
}

func (s *StreamSource) fill() {
	for !s.full && !s.done {
		var c byte
		var err error
		if s.br != nil {
			c, err = s.br.ReadByte()
			s.full = err == nil
		} else {
			var buf [1]byte
			var n int
			n, err = s.r.Read(buf[:])
			c, s.full = buf[0], n == 1
		}
		s.cur = c
		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
		}
	}
}

func (s *StreamSource) Peek() byte { s.fill(); return s.cur }
func (s *StreamSource) Advance()   { s.fill(); s.full = false }
func (s *StreamSource) Next() byte { c := s.Peek(); s.full = false; return c }
func (s *StreamSource) EOF() bool  { s.fill(); return !s.full }
func (s *StreamSource) Err() error { return s.err }
