// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jnode"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

const getInput = `{
  "str": "text",
  "int": -25,
  "big": 18446744073709551615,
  "flt": 3.75,
  "yes": true,
  "nil": null,
  "arr": [1, 2, 3],
  "strs": ["a", "b"],
  "mixed": [1, "x"],
  "obj": {"p": 1.5, "q": -2}
}`

func TestGet(t *testing.T) {
	doc := jnode.Must(jnode.ParseString(getInput))

	check := func(name string, got, want any, err error) {
		t.Helper()
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		} else if got != want {
			t.Errorf("%s: got %v (%T), want %v (%T)", name, got, got, want, want)
		}
	}

	s, err := jnode.GetKey[string](&doc, "str")
	check("string", s, "text", err)
	i, err := jnode.GetKey[int](&doc, "int")
	check("int", i, -25, err)
	i8, err := jnode.GetKey[int8](&doc, "int")
	check("int8", i8, int8(-25), err)
	u, err := jnode.GetKey[uint64](&doc, "big")
	check("uint64", u, uint64(math.MaxUint64), err)
	f, err := jnode.GetKey[float64](&doc, "flt")
	check("float64", f, 3.75, err)
	f32, err := jnode.GetKey[float32](&doc, "flt")
	check("float32", f32, float32(3.75), err)
	fi, err := jnode.GetKey[int](&doc, "flt")
	check("float as int", fi, 3, err)
	b, err := jnode.GetKey[bool](&doc, "yes")
	check("bool", b, true, err)
	bn, err := jnode.GetKey[bool](&doc, "int")
	check("number as bool", bn, true, err)

	// Scalars other than strings convert to their JSON text.
	ns, err := jnode.GetKey[string](&doc, "int")
	check("int as string", ns, "-25", err)
	fs, err := jnode.GetKey[string](&doc, "flt")
	check("float as string", fs, "3.75", err)
	bs, err := jnode.GetKey[string](&doc, "yes")
	check("bool as string", bs, "true", err)
	zs, err := jnode.GetKey[string](&doc, "nil")
	check("null as string", zs, "null", err)

	for _, tc := range []struct {
		name string
		get  func() error
	}{
		{"MissingKey", func() error { _, err := jnode.GetKey[int](&doc, "nonesuch"); return err }},
		{"StringAsInt", func() error { _, err := jnode.GetKey[int](&doc, "str"); return err }},
		{"NullAsBool", func() error { _, err := jnode.GetKey[bool](&doc, "nil"); return err }},
		{"ArrayAsString", func() error { _, err := jnode.GetKey[string](&doc, "arr"); return err }},
		{"NotObject", func() error { _, err := jnode.GetKey[int](doc.Find("arr"), "x"); return err }},
	} {
		if err := tc.get(); !errors.Is(err, jnode.InvalidJSONAccess) {
			t.Errorf("%s: got error %v, want %v", tc.name, err, jnode.InvalidJSONAccess)
		}
	}
}

func TestGetOr(t *testing.T) {
	doc := jnode.Must(jnode.ParseString(getInput))

	if got := jnode.GetOr(&doc, "int", 0); got != -25 {
		t.Errorf("GetOr(int): got %d, want -25", got)
	}
	if got := jnode.GetOr(&doc, "nonesuch", 99); got != 99 {
		t.Errorf("GetOr(nonesuch): got %d, want 99", got)
	}
	if got := jnode.GetOr(&doc, "str", 7); got != 7 {
		t.Errorf("GetOr(str as int): got %d, want 7", got)
	}
	if got := jnode.GetOr(doc.Find("arr"), "x", "dflt"); got != "dflt" {
		t.Errorf("GetOr on array: got %q, want dflt", got)
	}
	if got := jnode.GetOr(doc.Find("obj"), "p", 0.0); got != 1.5 {
		t.Errorf("GetOr(p): got %v, want 1.5", got)
	}
}

func TestGetSliceMap(t *testing.T) {
	doc := jnode.Must(jnode.ParseString(getInput))

	ints, err := jnode.GetSlice[int](doc.Find("arr"))
	if err != nil {
		t.Fatalf("GetSlice[int]: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, ints); diff != "" {
		t.Errorf("GetSlice[int] (-want, +got):\n%s", diff)
	}

	strs, err := jnode.GetSlice[string](doc.Find("strs"))
	if err != nil {
		t.Fatalf("GetSlice[string]: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, strs); diff != "" {
		t.Errorf("GetSlice[string] (-want, +got):\n%s", diff)
	}

	if _, err := jnode.GetSlice[int](doc.Find("mixed")); err == nil {
		t.Error("GetSlice[int](mixed): got nil error, want failure")
	}
	if _, err := jnode.GetSlice[int](&doc); err == nil {
		t.Error("GetSlice[int](object): got nil error, want failure")
	}

	m, err := jnode.GetMap[float64](doc.Find("obj"))
	if err != nil {
		t.Fatalf("GetMap: unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]float64{"p": 1.5, "q": -2}, m); diff != "" {
		t.Errorf("GetMap (-want, +got):\n%s", diff)
	}
	if _, err := jnode.GetMap[int](doc.Find("arr")); err == nil {
		t.Error("GetMap(array): got nil error, want failure")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		node jnode.Node
		kind jnode.NumKind
		text string
	}{
		{jnode.Num(int8(-3)), jnode.Int64, "-3"},
		{jnode.Num(5), jnode.Int64, "5"},
		{jnode.Num(uint16(7)), jnode.Uint64, "7"},
		{jnode.Num(uint64(math.MaxUint64)), jnode.Uint64, "18446744073709551615"},
		{jnode.Num(float32(0.5)), jnode.Float64, "0.5"},
		{jnode.Num(2.0), jnode.Float64, "2"},
	}
	for _, tc := range tests {
		if got := tc.node.NumKind(); got != tc.kind {
			t.Errorf("Num %s: got kind %v, want %v", tc.text, got, tc.kind)
		}
		if got := tc.node.JSON(); got != tc.text {
			t.Errorf("Num: got %s, want %s", got, tc.text)
		}
	}
}

func TestToValue(t *testing.T) {
	type label string
	inner := jnode.NewArray(jnode.Int(1))
	five := 5

	v := jnode.ToValue(map[string]any{
		"str":   "x",
		"label": label("y"),
		"int":   -1,
		"uint":  uint8(2),
		"flt":   0.5,
		"bool":  true,
		"nil":   nil,
		"ptr":   &five,
		"nptr":  (*int)(nil),
		"list":  []any{1, "two", []int{3}},
		"arr":   [2]bool{true, false},
		"nslc":  []string(nil),
		"node":  inner,
		"pnode": &inner,
		"obj":   map[string]int{"b": 2, "a": 1},
	})
	want := `{"arr":[true,false],"bool":true,"flt":0.5,"int":-1,"label":"y",` +
		`"list":[1,"two",[3]],"nil":null,"node":[1],"nptr":null,"nslc":null,` +
		`"obj":{"a":1,"b":2},"pnode":[1],"ptr":5,"str":"x","uint":2}`
	if got := v.JSON(); got != want {
		t.Errorf("ToValue:\ngot  %s\nwant %s", got, want)
	}

	// Nodes are copied, not shared.
	inner.Append(jnode.Int(2))
	if got := v.Find("node").JSON(); got != "[1]" {
		t.Errorf("Copied node changed: got %s", got)
	}

	mtest.MustPanic(t, func() { jnode.ToValue(func() {}) })
	mtest.MustPanic(t, func() { jnode.ToValue(make(chan struct{})) })
	mtest.MustPanic(t, func() { jnode.ToValue(map[int]string{1: "x"}) })
	mtest.MustPanic(t, func() { jnode.ToValue([]any{1, struct{}{}}) })
}

func TestToAny(t *testing.T) {
	doc := jnode.Must(jnode.ParseString(`{"a": [1, -2, 2.5, "s", null, true, {}], "b": {"c": []}}`))
	want := map[string]any{
		"a": []any{uint64(1), int64(-2), 2.5, "s", nil, true, map[string]any{}},
		"b": map[string]any{"c": []any{}},
	}
	if diff := cmp.Diff(want, jnode.ToAny(&doc)); diff != "" {
		t.Errorf("ToAny (-want, +got):\n%s", diff)
	}

	back := jnode.ToValue(jnode.ToAny(&doc))
	if !jnode.Equal(&doc, &back) {
		t.Errorf("ToValue(ToAny(v)): got %v, want %v", &back, &doc)
	}

	if got := jnode.ToAny(new(jnode.Node)); got != nil {
		t.Errorf("ToAny(null): got %v, want nil", got)
	}
}
