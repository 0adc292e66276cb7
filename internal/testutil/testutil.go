// Package testutil defines support code for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Nested returns a JSON text of depth nested empty-bracket pairs, such as
// "[[[]]]" for depth 3.
func Nested(depth int) string {
	return strings.Repeat("[", depth) + strings.Repeat("]", depth)
}

// A Case is one file of a JSON conformance corpus. Files named y_* must
// parse, n_* must be rejected, and i_* are implementation-defined.
type Case struct {
	Name string // base name without extension
	Tag  string // "y", "n", or "i"
	Data []byte
}

// Classify reports the expectation tag and base name of a conformance file
// name, such as "y" and "y_array_empty" for "y_array_empty.json".
func Classify(name string) (tag, base string, ok bool) {
	if filepath.Ext(name) != ".json" {
		return "", "", false
	}
	base = strings.TrimSuffix(filepath.Base(name), ".json")
	tag, _, ok = strings.Cut(base, "_")
	return tag, base, ok
}

// LoadCorpus reads the conformance files in dir, failing t if the directory
// cannot be read.
func LoadCorpus(t testing.TB, dir string) []Case {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Read corpus: %v", err)
	}
	var out []Case
	for _, e := range ents {
		tag, base, ok := Classify(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("Read %q: %v", e.Name(), err)
		}
		out = append(out, Case{Name: base, Tag: tag, Data: data})
	}
	return out
}
