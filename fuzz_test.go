// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jnode_test

import (
	"testing"

	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/internal/testutil"
)

func FuzzRoundTrip(f *testing.F) {
	for _, seed := range []string{
		`null`, `true`, `-0.5e-3`, `18446744073709551616`,
		`{"a":1,"z":[3,2,1]}`,
		`{"":1,"\ud800\udc00":2}`,
		`["a\/b", "\u0020", "\u00e9"]`,
		`[[[{"k": [[]]}]]]`,
	} {
		f.Add([]byte(seed))
	}
	for _, c := range testutil.LoadCorpus(f, corpusDir) {
		f.Add(c.Data)
	}

	f.Fuzz(func(t *testing.T, in []byte) {
		if len(in) > 1<<20 {
			return
		}
		v, err := jnode.Parse(in)
		if err != nil {
			return
		}

		out1 := jnode.NewSerializer().FormatToString(&v)
		w, err := jnode.ParseString(out1)
		if err != nil {
			t.Fatalf("Reparse %#q: %v", out1, err)
		}
		if !jnode.Equal(&v, &w) {
			t.Fatalf("Round trip of %#q: got %v", in, &w)
		}
		if out2 := jnode.NewSerializer().FormatToString(&w); out2 != out1 {
			t.Fatalf("Unstable output: %#q vs %#q", out1, out2)
		}

		// A complete document is complete to the stream parser, and every
		// proper prefix of it is an incomplete value but not an error.
		s, complete, err := jnode.StreamParse(in)
		if err != nil || !complete || !jnode.Equal(&v, &s) {
			t.Fatalf("StreamParse %#q: got %v, %v, %v", in, &s, complete, err)
		}
		if end := len(in) / 2; end > 0 {
			if _, _, err := jnode.StreamParse(in[:end]); err != nil {
				t.Fatalf("StreamParse prefix %#q: unexpected error: %v", in[:end], err)
			}
		}
	})
}
