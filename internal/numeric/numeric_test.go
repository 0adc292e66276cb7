package numeric_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jnode/internal/numeric"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

// strReader implements numeric.Reader over a string.
type strReader struct{ s string }

func (r *strReader) EOF() bool  { return r.s == "" }
func (r *strReader) Peek() byte { return r.s[0] }
func (r *strReader) Advance()   { r.s = r.s[1:] }

func TestScan(t *testing.T) {
	tests := []struct {
		input   string
		text    string
		isFloat bool
		fault   numeric.Fault
		rest    string
	}{
		{"0", "0", false, numeric.OK, ""},
		{"-0", "-0", false, numeric.OK, ""},
		{"123,", "123", false, numeric.OK, ","},
		{"-45]", "-45", false, numeric.OK, "]"},
		{"01", "0", false, numeric.OK, "1"},
		{"1.25 ", "1.25", true, numeric.OK, " "},
		{"1e5", "1e5", true, numeric.OK, ""},
		{"1E+05}", "1E+05", true, numeric.OK, "}"},
		{"-0.5e-3x", "-0.5e-3", true, numeric.OK, "x"},
		{"2.0.1", "2.0", true, numeric.OK, ".1"},

		{"", "", false, numeric.Truncated, ""},
		{"-", "-", false, numeric.Truncated, ""},
		{"1.", "1.", true, numeric.Truncated, ""},
		{"1e", "1e", true, numeric.Truncated, ""},
		{"1e-", "1e-", true, numeric.Truncated, ""},

		{"+1", "", false, numeric.Malformed, "+1"},
		{".5", "", false, numeric.Malformed, ".5"},
		{"-x", "-", false, numeric.Malformed, "x"},
		{"1.e5", "1.", true, numeric.Malformed, "e5"},
		{"1e+x", "1e+", true, numeric.Malformed, "x"},
	}
	for _, tc := range tests {
		r := &strReader{s: tc.input}
		text, isFloat, fault := numeric.Scan(nil, r)
		if fault != tc.fault {
			t.Errorf("Scan(%q): got fault %v, want %v", tc.input, fault, tc.fault)
			continue
		}
		if string(text) != tc.text || isFloat != tc.isFloat {
			t.Errorf("Scan(%q): got %q, float=%v; want %q, float=%v",
				tc.input, text, isFloat, tc.text, tc.isFloat)
		}
		if r.s != tc.rest {
			t.Errorf("Scan(%q): remaining input %q, want %q", tc.input, r.s, tc.rest)
		}
	}
}

func TestScanAppends(t *testing.T) {
	text, _, fault := numeric.Scan([]byte("x:"), &strReader{s: "99"})
	if fault != numeric.OK || string(text) != "x:99" {
		t.Errorf("Scan: got %q, %v; want x:99, OK", text, fault)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  numeric.Value
	}{
		{"0", numeric.Value{Kind: numeric.Uint}},
		{"-0", numeric.Value{Kind: numeric.Int}},
		{"42", numeric.Value{Kind: numeric.Uint, Uint: 42}},
		{"-42", numeric.Value{Kind: numeric.Int, Int: -42}},
		{"18446744073709551615", numeric.Value{Kind: numeric.Uint, Uint: math.MaxUint64}},
		{"18446744073709551616", numeric.Value{Kind: numeric.Float, Float: 18446744073709551616}},
		{"99999999999999999999", numeric.Value{Kind: numeric.Float, Float: 1e20}},
		{"-9223372036854775808", numeric.Value{Kind: numeric.Int, Int: math.MinInt64}},
		{"-9223372036854775809", numeric.Value{Kind: numeric.Float, Float: -9223372036854775809}},
		{"-10000000000000000000", numeric.Value{Kind: numeric.Float, Float: -1e19}},
		{"1.5", numeric.Value{Kind: numeric.Float, Float: 1.5}},
		{"1e2", numeric.Value{Kind: numeric.Float, Float: 100}},
		{"-2.5E-1", numeric.Value{Kind: numeric.Float, Float: -0.25}},
	}
	for _, tc := range tests {
		isFloat := false
		for _, c := range tc.input {
			if c == '.' || c == 'e' || c == 'E' {
				isFloat = true
			}
		}
		got, err := numeric.Parse(mem.S(tc.input), isFloat)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse(%q) (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestParseRange(t *testing.T) {
	for _, input := range []string{"1e400", "-1e400", "1.5e999"} {
		if got, err := numeric.Parse(mem.S(input), true); !errors.Is(err, numeric.ErrRange) {
			t.Errorf("Parse(%q): got %+v, %v; want %v", input, got, err, numeric.ErrRange)
		}
	}
	// A long integer beyond uint64 range that overflows float64.
	huge := "1" + strings.Repeat("0", 400)
	if got, err := numeric.Parse(mem.S(huge), false); !errors.Is(err, numeric.ErrRange) {
		t.Errorf("Parse(1e400 digits): got %+v, %v; want %v", got, err, numeric.ErrRange)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[numeric.Kind]string{
		numeric.Float:   "float",
		numeric.Int:     "int",
		numeric.Uint:    "uint",
		numeric.Kind(9): "invalid kind",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d): got %q, want %q", k, got, want)
		}
	}
}
