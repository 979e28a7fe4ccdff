// Copyright 2014 The go-ethereum Authors
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
	"errors"
	"io"
)

var ErrNegativeBigInt = errors.New("rlp: cannot encode negative big.Int")

// Encode writes the RLP encoding of v to w.
func Encode(w io.Writer, v Value) error {
	buf := getEncBuffer()
	defer encBufferPool.Put(buf)

	buf.writeValue(v)
	return buf.writeTo(w)
}

// EncodeToBytes returns the RLP encoding of v.
func EncodeToBytes(v Value) []byte {
	return AppendValue(nil, v)
}

// AppendValue appends the RLP encoding of v to dst.
func AppendValue(dst []byte, v Value) []byte {
	buf := getEncBuffer()
	defer encBufferPool.Put(buf)

	buf.writeValue(v)
	return buf.appendTo(dst)
}

// writeValue walks v depth-first without recursion.
func (buf *encBuffer) writeValue(v Value) {
	if !v.list {
		buf.writeBytes(v.str)
		return
	}
	type frame struct {
		elems []Value
		head  int
	}
	stack := []frame{{v.elems, buf.list()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.elems) == 0 {
			buf.listEnd(top.head)
			stack = stack[:len(stack)-1]
			continue
		}
		e := top.elems[0]
		top.elems = top.elems[1:]
		if e.list {
			stack = append(stack, frame{e.elems, buf.list()})
		} else {
			buf.writeBytes(e.str)
		}
	}
}
