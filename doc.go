// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jnode implements a JSON document model with a parser and serializer.
//
// # Nodes
//
// A Node is a JSON value: null, a Boolean, a number, a string, an array, or an
// object. The zero Node is null. Numbers are stored as int64, uint64, or
// float64 according to their text, so that 64-bit integers survive a round
// trip exactly; Kind reports NumberKind for all three.
//
// Objects keep their members sorted by key. When a key is set more than once,
// the last value wins.
//
// Mutating accessors convert a node to the kind they need:
//
//	var doc jnode.Node
//	*doc.Key("name") = jnode.String("widget")
//	doc.Key("tags").Append(jnode.String("new"))
//	// doc is {"name":"widget","tags":["new"]}
//
// Reading accessors report an *AccessError instead:
//
//	name, err := jnode.GetKey[string](&doc, "name")
//
// No operation on a Node, including Clone, Equal, and serialization, recurses
// on the structure of the tree, so documents of any depth are safe to handle.
//
// # Parsing
//
// The Parser type reads JSON text from a Source and builds a Node. Parse
// requires that the input hold exactly one value:
//
//	doc, err := jnode.Parse(data)
//
// To read a sequence of whitespace-separated values, use ParseAt or the
// ParseNext method of a Parser, which return io.EOF when the input is used up:
//
//	for off := 0; ; {
//	   v, end, err := jnode.ParseAt(data, off)
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   off = end
//	   use(v)
//	}
//
// StreamParse accepts input that may end before the value does, returning the
// partial tree and a flag reporting whether the value was complete. Input that
// is malformed, as opposed to merely short, is still reported as an error.
//
// In case of error, the parser reports an error of concrete type
// *jnode.SyntaxError, carrying an ErrorCode that can be checked with
// errors.Is.
//
// # Serializing
//
// A Serializer renders a Node as JSON text, either compactly or indented, and
// by default escapes all non-ASCII characters:
//
//	s := jnode.NewSerializer().Indent(2)
//	if err := s.Format(os.Stdout, &doc); err != nil {
//	   log.Fatalf("Format: %v", err)
//	}
package jnode
