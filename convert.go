// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// ToValue converts a Go value into a Node. It handles nil, Node and *Node
// (which are deep-copied), bool, string, the numeric types, and pointers,
// slices, arrays, and string-keyed maps of those types. Nil pointers, slices,
// and maps become null. ToValue panics if v contains a value of any other
// type.
//
// ToValue is meant for building literals:
//
//	doc := jnode.ToValue(map[string]any{
//	   "name": "widget",
//	   "tags": []string{"a", "b"},
//	})
func ToValue(v any) Node {
	type job struct {
		src any
		dst *Node
	}
	var out Node
	work := []job{{v, &out}}
	for len(work) > 0 {
		j := work[len(work)-1]
		work = work[:len(work)-1]

		switch t := j.src.(type) {
		case nil:
			*j.dst = Node{}
			continue
		case Node:
			*j.dst = t.Clone()
			continue
		case *Node:
			if t == nil {
				*j.dst = Node{}
			} else {
				*j.dst = t.Clone()
			}
			continue
		}

		rv := reflect.ValueOf(j.src)
		switch rv.Kind() {
		case reflect.Bool:
			*j.dst = Bool(rv.Bool())
		case reflect.String:
			*j.dst = String(rv.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			*j.dst = Int(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			*j.dst = Uint(rv.Uint())
		case reflect.Float32, reflect.Float64:
			*j.dst = Float(rv.Float())
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				*j.dst = Node{}
			} else {
				work = append(work, job{rv.Elem().Interface(), j.dst})
			}
		case reflect.Slice, reflect.Array:
			if rv.Kind() == reflect.Slice && rv.IsNil() {
				*j.dst = Node{}
				break
			}
			arr := make(Array, rv.Len())
			*j.dst = Node{tag: tagArray, arr: arr}
			for i := range arr {
				work = append(work, job{rv.Index(i).Interface(), &arr[i]})
			}
		case reflect.Map:
			if rv.Type().Key().Kind() != reflect.String {
				panic(fmt.Sprintf("jnode: unsupported map key type %v", rv.Type().Key()))
			} else if rv.IsNil() {
				*j.dst = Node{}
				break
			}
			keys := rv.MapKeys()
			slices.SortFunc(keys, func(a, b reflect.Value) int {
				return strings.Compare(a.String(), b.String())
			})

			// Keys are unique and sorted, so the members can be filled in place.
			o := &Object{members: make([]Member, len(keys))}
			*j.dst = Node{tag: tagObject, obj: o}
			for i, k := range keys {
				o.members[i].Key = k.String()
				work = append(work, job{rv.MapIndex(k).Interface(), &o.members[i].Value})
			}
		default:
			panic(fmt.Sprintf("jnode: unsupported value type %T", j.src))
		}
	}
	return out
}

// ToAny converts n into plain Go values: nil, bool, string, int64, uint64,
// float64, []any, and map[string]any.
func ToAny(n *Node) any {
	type job struct {
		src *Node
		dst any // a []any or map[string]any to fill from src
	}
	root := shell(n)
	if n.Size() == 0 || !n.isContainer() {
		return root
	}
	work := []job{{n, root}}
	for len(work) > 0 {
		j := work[len(work)-1]
		work = work[:len(work)-1]

		switch d := j.dst.(type) {
		case []any:
			for i := range j.src.arr {
				c := &j.src.arr[i]
				d[i] = shell(c)
				if c.isContainer() && c.Size() > 0 {
					work = append(work, job{c, d[i]})
				}
			}
		case map[string]any:
			for i := range j.src.obj.members {
				m := &j.src.obj.members[i]
				d[m.Key] = shell(&m.Value)
				if m.Value.isContainer() && m.Value.Size() > 0 {
					work = append(work, job{&m.Value, d[m.Key]})
				}
			}
		}
	}
	return root
}

// shell converts a scalar node to its Go value, or allocates the Go container
// for an array or object node without filling it.
func shell(n *Node) any {
	switch n.tag {
	case tagBool:
		return n.bits != 0
	case tagInt:
		return int64(n.bits)
	case tagUint:
		return n.bits
	case tagFloat:
		return math.Float64frombits(n.bits)
	case tagString:
		return n.str
	case tagArray:
		return make([]any, len(n.arr))
	case tagObject:
		return make(map[string]any, n.obj.Len())
	}
	return nil
}
