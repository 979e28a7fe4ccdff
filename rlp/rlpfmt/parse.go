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

package rlpfmt

import (
	"encoding/hex"
	"fmt"

	"github.com/sunyihoo/go-txutil/rlp"
)

// SyntaxError reports malformed bracketed hex input. Line and Column are
// 1-based.
type SyntaxError struct {
	Line, Column int
	Got, Want    string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: unexpected %v, expected %v", err.Line, err.Column, err.Got, err.Want)
}

func syntaxErr(t token, got, want string) error {
	return &SyntaxError{Line: t.lineno + 1, Column: t.col + 1, Got: got, Want: want}
}

// Parse reads a single value in bracketed hex notation:
//
//	[ 0x01 [ 0x0203 0x ] [] ]
//
// Items are separated by whitespace. A hex literal with an odd number of
// digits is padded with a leading zero nibble, and "0x" is the empty string.
func Parse(input []byte) (rlp.Value, error) {
	return parse(lex(input, false))
}

func parse(tokens <-chan token) (rlp.Value, error) {
	// Drain the channel so the lexer goroutine can finish on early returns.
	defer func() {
		for range tokens {
		}
	}()

	type frame struct {
		open  token
		items []rlp.Value
	}
	var (
		stack []frame
		root  []rlp.Value
		last  token
	)
	push := func(t token, v rlp.Value) error {
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			top.items = append(top.items, v)
			return nil
		}
		if len(root) > 0 {
			return syntaxErr(t, t.text, "end of input")
		}
		root = append(root, v)
		return nil
	}
	for t := range tokens {
		last = t
		switch t.typ {
		case hexString:
			if err := push(t, rlp.NewString(decodeHex(t.text))); err != nil {
				return rlp.Value{}, err
			}
		case listStart:
			if len(stack) == 0 && len(root) > 0 {
				return rlp.Value{}, syntaxErr(t, t.text, "end of input")
			}
			stack = append(stack, frame{open: t})
		case listEnd:
			if len(stack) == 0 {
				return rlp.Value{}, syntaxErr(t, t.text, "hex string or '['")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := push(t, rlp.NewList(top.items...)); err != nil {
				return rlp.Value{}, err
			}
		case invalid:
			return rlp.Value{}, syntaxErr(t, fmt.Sprintf("%q", t.text), "hex string, '[' or ']'")
		case eof:
			if len(stack) > 0 {
				open := stack[len(stack)-1].open
				return rlp.Value{}, syntaxErr(t, eof.String(), fmt.Sprintf("']' closing list at %d:%d", open.lineno+1, open.col+1))
			}
		}
	}
	if len(root) == 0 {
		return rlp.Value{}, syntaxErr(last, eof.String(), "hex string or '['")
	}
	return root[0], nil
}

// decodeHex decodes a lexed hex literal. The lexer only passes through
// valid digits.
func decodeHex(s string) []byte {
	digits := s[2:]
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		panic(fmt.Sprintf("rlpfmt: lexer produced invalid hex literal %q", s))
	}
	return b
}
