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
	"fmt"
	"io"
)

var (
	ErrExpectedString   = errors.New("rlp: expected String or Byte")
	ErrExpectedList     = errors.New("rlp: expected List")
	ErrCanonInt         = errors.New("rlp: non-canonical integer format")
	ErrCanonSize        = errors.New("rlp: non-canonical size information")
	ErrCanonBool        = errors.New("rlp: invalid boolean value")
	ErrElemTooLarge     = errors.New("rlp: element is larger than containing list")
	ErrValueTooLarge    = errors.New("rlp: value size exceeds available input length")
	ErrMoreThanOneValue = errors.New("rlp: input contains more than one value")
	ErrEmptyInput       = errors.New("rlp: empty input")

	errUintOverflow = errors.New("rlp: uint overflow")
)

// DecodeError is returned for malformed input. Offset is the position of the
// header byte of the offending value, Depth its list nesting level.
type DecodeError struct {
	Offset int
	Depth  int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (offset %d, depth %d)", e.Err, e.Offset, e.Depth)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decoder decodes RLP input into value trees.
type Decoder struct {
	// AllowNonCanonical accepts sizes that have a shorter encoding, length
	// prefixes with leading zero bytes and single bytes below 0x80 wrapped
	// in a string header.
	AllowNonCanonical bool
}

// DecodeValue decodes input that must consist of exactly one strictly
// canonical value.
func DecodeValue(b []byte) (Value, error) {
	return Decoder{}.Decode(b)
}

// SplitValue decodes the first strictly canonical value in b. It returns the
// value and the number of bytes it occupied.
func SplitValue(b []byte) (Value, int, error) {
	return Decoder{}.Split(b)
}

// Decode decodes input that must consist of exactly one value.
func (d Decoder) Decode(b []byte) (Value, error) {
	v, n, err := d.Split(b)
	if err != nil {
		return Value{}, err
	}
	if n != len(b) {
		return Value{}, &DecodeError{Offset: n, Err: ErrMoreThanOneValue}
	}
	return v, nil
}

// Split decodes the first value in b and returns the number of bytes
// consumed. Bytes after the value are ignored.
func (d Decoder) Split(b []byte) (Value, int, error) {
	if len(b) == 0 {
		return Value{}, 0, &DecodeError{Err: ErrEmptyInput}
	}
	type frame struct {
		elems []Value
		end   int
	}
	var (
		stack []frame
		pos   int
	)
	for {
		limit := len(b)
		if len(stack) > 0 {
			limit = stack[len(stack)-1].end
		}
		k, ts, cs, err := readHeader(b[pos:limit], !d.AllowNonCanonical)
		if err != nil {
			// The element might still fit the input but not its list.
			if len(stack) > 0 && (err == ErrValueTooLarge || err == io.ErrUnexpectedEOF) {
				if _, _, _, err2 := readHeader(b[pos:], !d.AllowNonCanonical); err2 == nil {
					err = ErrElemTooLarge
				}
			}
			return Value{}, 0, &DecodeError{Offset: pos, Depth: len(stack), Err: err}
		}
		start := pos + int(ts)
		pos = start + int(cs)

		var v Value
		switch k {
		case Byte:
			v = NewString([]byte{b[start]})
		case String:
			v = NewString(append([]byte{}, b[start:pos]...))
		case List:
			if cs > 0 {
				stack = append(stack, frame{elems: []Value{}, end: pos})
				pos = start
				continue
			}
			v = NewList()
		}
		// Attach v to its parent, closing every list that ends here.
		for {
			if len(stack) == 0 {
				return v, pos, nil
			}
			top := &stack[len(stack)-1]
			top.elems = append(top.elems, v)
			if pos < top.end {
				break
			}
			v = NewList(top.elems...)
			stack = stack[:len(stack)-1]
		}
	}
}
