package numeric

// A Reader supplies input bytes to Scan.
type Reader interface {
	EOF() bool  // reports whether the input is exhausted
	Peek() byte // returns the current byte without consuming it
	Advance()   // consumes the current byte
}

// A Fault describes why Scan rejected its input.
type Fault byte

// Constants defining the values of Fault.
const (
	OK        Fault = iota // a complete number was scanned
	Truncated              // input ended inside the number
	Malformed              // input does not match the number grammar
)

// Scan reads a number matching -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
// from r and appends its text to dst. It reports whether the number has a
// fraction or exponent. Scan stops at the first byte that cannot extend the
// number, leaving it unconsumed.
func Scan(dst []byte, r Reader) (_ []byte, isFloat bool, _ Fault) {
	take := func() { dst = append(dst, r.Peek()); r.Advance() }
	digits := func() {
		for !r.EOF() && isDigit(r.Peek()) {
			take()
		}
	}
	// need requires at least one digit at the current position.
	need := func() Fault {
		if r.EOF() {
			return Truncated
		} else if !isDigit(r.Peek()) {
			return Malformed
		}
		digits()
		return OK
	}

	if !r.EOF() && r.Peek() == '-' {
		take()
	}
	if r.EOF() {
		return dst, false, Truncated
	}
	switch c := r.Peek(); {
	case c == '0':
		take()
	case isDigit(c):
		digits()
	default:
		return dst, false, Malformed
	}

	if !r.EOF() && r.Peek() == '.' {
		take()
		isFloat = true
		if f := need(); f != OK {
			return dst, isFloat, f
		}
	}
	if !r.EOF() && (r.Peek() == 'e' || r.Peek() == 'E') {
		take()
		isFloat = true
		if !r.EOF() && (r.Peek() == '+' || r.Peek() == '-') {
			take()
		}
		if f := need(); f != OK {
			return dst, isFloat, f
		}
	}
	return dst, isFloat, OK
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
