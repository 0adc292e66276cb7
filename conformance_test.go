// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode_test

import (
	"archive/zip"
	"errors"
	"flag"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/internal/testutil"
	"github.com/tailscale/hujson"
)

var (
	doHardTest = flag.Bool("compliance-test", false,
		"Run full compliance test")
	hardTestURL = flag.String("compliance-test-repo", "https://github.com/nst/JSONTestSuite",
		"Compliance test repository URL")

	// The cases in testdata/conformance are a subset of the suite described by
	// the article "Parsing JSON is a Minefield",
	// https://seriot.ch/projects/parsing_json.html. The full suite is fetched
	// only when --compliance-test is set.
)

const corpusDir = "testdata/conformance"

func TestConformance(t *testing.T) {
	for _, c := range testutil.LoadCorpus(t, corpusDir) {
		switch c.Tag {
		case "y":
			t.Run(c.Name, func(t *testing.T) {
				v, err := jnode.Parse(c.Data)
				if err != nil {
					t.Fatalf("Parse: unexpected error: %v", err)
				}
				for _, s := range []jnode.Serializer{
					jnode.NewSerializer(),
					jnode.NewSerializer().Indent(2).ASCII(false),
				} {
					text := s.FormatToString(&v)
					w, err := jnode.ParseString(text)
					if err != nil {
						t.Fatalf("Reparse %#q: unexpected error: %v", text, err)
					}
					if !jnode.Equal(&v, &w) {
						t.Errorf("Round trip: got %v, want %v", &w, &v)
					}
				}
			})
		case "n":
			t.Run(c.Name, func(t *testing.T) {
				v, err := jnode.Parse(c.Data)
				if err == nil {
					t.Errorf("Parse %#q: got %v, want error", c.Data, &v)
				} else {
					t.Logf("- [expected]: %v", err)
				}
			})
		}
	}
}

// TestStandardJSON checks that every document accepted by the parser is
// standard JSON according to hujson, and that the two agree on its value.
func TestStandardJSON(t *testing.T) {
	for _, c := range testutil.LoadCorpus(t, corpusDir) {
		v, err := jnode.Parse(c.Data)
		if err != nil {
			continue
		}
		hv, err := hujson.Parse(c.Data)
		if err != nil {
			t.Errorf("%s: hujson rejected accepted input: %v", c.Name, err)
			continue
		}
		if !hv.IsStandard() {
			t.Errorf("%s: accepted input is not standard JSON", c.Name)
		}
		hv.Minimize()
		w, err := jnode.Parse(hv.Pack())
		if err != nil {
			t.Errorf("%s: parse minimized %#q: %v", c.Name, hv.Pack(), err)
		} else if !jnode.Equal(&v, &w) {
			t.Errorf("%s: minimized value: got %v, want %v", c.Name, &w, &v)
		}
	}
}

func TestStandardizedJWCC(t *testing.T) {
	const input = `{
  // Comments and trailing commas are not JSON.
  "name": "widget",  /* inline */
  "tags": [
    "a",
    "b",
  ],
}`
	if v, err := jnode.ParseString(input); err == nil {
		t.Fatalf("Parse JWCC: got %v, want error", &v)
	}

	std, err := hujson.Standardize([]byte(input))
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	v, err := jnode.Parse(std)
	if err != nil {
		t.Fatalf("Parse standardized input: unexpected error: %v", err)
	}
	if got, want := v.JSON(), `{"name":"widget","tags":["a","b"]}`; got != want {
		t.Errorf("Parse: got %#q, want %#q", got, want)
	}
}

func mustGetArchive(t *testing.T, zipFile string) *zip.Reader {
	t.Helper()

	if fi, err := os.Stat(zipFile); err == nil {
		zf, err := os.Open(zipFile)
		if err != nil {
			t.Fatalf("Open archive: %v", err)
		}
		t.Cleanup(func() { zf.Close() })
		zr, err := zip.NewReader(zf, fi.Size())
		if err != nil {
			t.Fatalf("Open reader: %v", err)
		}
		return zr
	} else if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Stat archive: %v", err)
	}

	fullURL := *hardTestURL + "/archive/refs/heads/master.zip"
	t.Logf("Fetching %q ...", fullURL)
	rsp, err := http.Get(fullURL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer rsp.Body.Close()
	if ctype := rsp.Header.Get("content-type"); ctype != "application/zip" {
		t.Fatalf("Unexpected content-type: %q", ctype)
	}

	zf, err := os.Create(zipFile)
	if err != nil {
		t.Fatalf("Create output: %v", err)
	}
	t.Cleanup(func() { zf.Close() })

	size, err := io.Copy(zf, rsp.Body)
	if err != nil {
		t.Fatalf("Write output: %v", err)
	}
	zr, err := zip.NewReader(zf, size)
	if err != nil {
		t.Fatalf("Open reader: %v", err)
	}
	return zr
}

// mustParse fully reads the contents of zf and parses it with a reader
// source. An error from parsing is returned; errors from reading fail the
// test.
func mustParse(t *testing.T, zf *zip.File) (jnode.Node, error) {
	t.Helper()
	rc, err := zf.Open()
	if err != nil {
		t.Fatalf("Open %q: %v", zf.Name, err)
	}
	defer rc.Close()
	return jnode.ParseReader(rc)
}

func TestCompliance(t *testing.T) {
	if !*doHardTest {
		t.Skip("Skipping compliance test because --compliance-test is false")
	}
	zr := mustGetArchive(t, "hard-test-suite.zip")

	var numYes, numYesErrs, numNo, numNoErrs int
	for _, f := range zr.File {
		_, tail, ok := strings.Cut(f.Name, "/test_parsing/")
		if !ok {
			continue
		}
		tag, name, ok := testutil.Classify(path.Base(tail))
		if !ok {
			continue
		}
		switch tag {
		case "y":
			numYes++
			t.Run(name, func(t *testing.T) {
				if _, err := mustParse(t, f); err != nil {
					numYesErrs++
					t.Errorf("Test %q: unexpected error: %v", name, err)
				}
			})
		case "n":
			numNo++
			t.Run(name, func(t *testing.T) {
				if v, err := mustParse(t, f); err == nil {
					numNoErrs++
					t.Errorf("Test %q: wanted error\n%v", name, &v)
				} else {
					t.Logf("- [expected]: %v", err)
				}
			})
		case "i":
			// Implementation-defined; either outcome is acceptable.
		default:
			t.Logf("WARNING: Skipped non-matching filename %q", tail)
		}
	}
	t.Logf("Ran %d positive tests, %d errors", numYes, numYesErrs)
	t.Logf("Ran %d negative tests, %d errors", numNo, numNoErrs)
}
