// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package rlp

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// Value is a node of an RLP value tree. It is either a byte string or an
// ordered list of values. The zero Value is the empty byte string.
type Value struct {
	list  bool
	str   []byte
	elems []Value
}

// NewString creates a byte string value.
func NewString(b []byte) Value {
	return Value{str: b}
}

// NewList creates a list value holding elems in order.
func NewList(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{list: true, elems: elems}
}

// Uint creates the canonical byte string value of i.
func Uint(i uint64) Value {
	return NewString(CanonicalUint64(i))
}

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.list }

// Bytes returns the content of a byte string value. It returns nil for lists.
func (v Value) Bytes() []byte { return v.str }

// Elems returns the items of a list value. It returns nil for byte strings.
func (v Value) Elems() []Value { return v.elems }

// Len returns the number of list items, or the byte length of a string.
func (v Value) Len() int {
	if v.list {
		return len(v.elems)
	}
	return len(v.str)
}

// Kind returns String or List. Single bytes are reported as String, the
// distinction only exists in the encoding.
func (v Value) Kind() Kind {
	if v.list {
		return List
	}
	return String
}

// Append returns a copy of list value v with elems added at the end.
// It panics if v is not a list.
func (v Value) Append(elems ...Value) Value {
	if !v.list {
		panic("rlp: Append on string value")
	}
	out := make([]Value, 0, len(v.elems)+len(elems))
	out = append(out, v.elems...)
	return NewList(append(out, elems...)...)
}

// Equal reports whether v and o have the same structure and content.
func (v Value) Equal(o Value) bool {
	type pair struct{ a, b Value }
	stack := []pair{{v, o}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a.list != p.b.list {
			return false
		}
		if !p.a.list {
			if !bytes.Equal(p.a.str, p.b.str) {
				return false
			}
			continue
		}
		if len(p.a.elems) != len(p.b.elems) {
			return false
		}
		for i := range p.a.elems {
			stack = append(stack, pair{p.a.elems[i], p.b.elems[i]})
		}
	}
	return true
}

// String renders v on a single line, e.g. "[0x01 [] 0x]".
func (v Value) String() string {
	var sb strings.Builder
	type frame struct {
		elems []Value
		first bool
	}
	writeStr := func(b []byte) {
		sb.WriteString("0x")
		sb.WriteString(hex.EncodeToString(b))
	}
	if !v.list {
		writeStr(v.str)
		return sb.String()
	}
	sb.WriteByte('[')
	stack := []frame{{v.elems, true}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.elems) == 0 {
			sb.WriteByte(']')
			stack = stack[:len(stack)-1]
			continue
		}
		e := top.elems[0]
		top.elems = top.elems[1:]
		if !top.first {
			sb.WriteByte(' ')
		}
		top.first = false
		if e.list {
			sb.WriteByte('[')
			stack = append(stack, frame{e.elems, true})
		} else {
			writeStr(e.str)
		}
	}
	return sb.String()
}
