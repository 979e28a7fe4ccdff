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
	"bytes"
	"encoding/hex"
	"io"
	"strings"

	"github.com/sunyihoo/go-txutil/rlp"
)

// Printer writes value trees in bracketed hex notation, one item per line.
type Printer struct {
	// Indent is written once per nesting level. The default is two spaces.
	Indent string
	// TrimZeros drops leading zero nibbles from strings. The output reads
	// like a list of quantities but no longer parses back to the same bytes.
	TrimZeros bool
}

// Format renders v with the default printer. The result parses back to v.
func Format(v rlp.Value) string {
	return Printer{}.Sprint(v)
}

// Sprint renders v as a string without a trailing newline.
func (p Printer) Sprint(v rlp.Value) string {
	var buf bytes.Buffer
	p.Fprint(&buf, v)
	return buf.String()
}

// Fprint writes v to w without a trailing newline.
func (p Printer) Fprint(w io.Writer, v rlp.Value) error {
	indent := p.Indent
	if indent == "" {
		indent = "  "
	}
	var (
		sb    strings.Builder
		stack = [][]rlp.Value{{v}}
	)
	for len(stack) > 0 {
		depth := len(stack) - 1
		top := stack[depth]
		if len(top) == 0 {
			stack = stack[:depth]
			if depth > 0 {
				sb.WriteString(strings.Repeat(indent, depth-1))
				sb.WriteString("]")
				if depth > 1 {
					sb.WriteByte('\n')
				}
			}
			continue
		}
		item := top[0]
		stack[depth] = top[1:]
		sb.WriteString(strings.Repeat(indent, depth))
		switch {
		case !item.IsList():
			sb.WriteString(p.hex(item.Bytes()))
		case item.Len() == 0:
			sb.WriteString("[]")
		default:
			sb.WriteString("[\n")
			stack = append(stack, item.Elems())
			continue
		}
		if depth > 0 {
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (p Printer) hex(b []byte) string {
	s := hex.EncodeToString(b)
	if p.TrimZeros {
		s = strings.TrimLeft(s, "0")
	}
	return "0x" + s
}
