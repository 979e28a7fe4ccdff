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
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sunyihoo/go-txutil/rlp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  rlp.Value
	}{
		{"0x", rlp.NewString(nil)},
		{"0x0123456789ABCDEF", rlp.NewString([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef})},
		{"0x1", rlp.NewString([]byte{0x01})},
		{"0x539", rlp.NewString([]byte{0x05, 0x39})},
		{"0X0a", rlp.NewString([]byte{0x0a})},
		{"[]", rlp.NewList()},
		{"[ ]", rlp.NewList()},
		{"[[]]", rlp.NewList(rlp.NewList())},
		{"  \n[\n\t0x1\n\t0x2\n\t[\n\t\t0x3\n\t\t0x4\n\t]\n\t0x\n\t[]\n]\n", rlp.NewList(
			rlp.NewString([]byte{1}),
			rlp.NewString([]byte{2}),
			rlp.NewList(rlp.NewString([]byte{3}), rlp.NewString([]byte{4})),
			rlp.NewString(nil),
			rlp.NewList(),
		)},
		{"[0x01[0x02]]", rlp.NewList(rlp.NewString([]byte{1}), rlp.NewList(rlp.NewString([]byte{2})))},
	}
	for _, test := range tests {
		v, err := Parse([]byte(test.input))
		if err != nil {
			t.Errorf("input %q: %v", test.input, err)
			continue
		}
		if !v.Equal(test.want) {
			t.Errorf("input %q: wrong value\ngot:  %s\nwant: %s", test.input, spew.Sdump(v), spew.Sdump(test.want))
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input        string
		line, column int
		want         string
	}{
		{"", 1, 1, "1:1: syntax error: unexpected end of input, expected hex string or '['"},
		{"   ", 1, 4, "1:4: syntax error: unexpected end of input, expected hex string or '['"},
		{"0x12g", 1, 1, `1:1: syntax error: unexpected "0x12g", expected hex string, '[' or ']'`},
		{"[\n  0x1\n  12\n]", 3, 3, `3:3: syntax error: unexpected "12", expected hex string, '[' or ']'`},
		{"[0x1", 1, 5, "1:5: syntax error: unexpected end of input, expected ']' closing list at 1:1"},
		{"]", 1, 1, "1:1: syntax error: unexpected ], expected hex string or '['"},
		{"0x1 0x2", 1, 5, "1:5: syntax error: unexpected 0x2, expected end of input"},
		{"[] []", 1, 4, "1:4: syntax error: unexpected [, expected end of input"},
		{"[0x1]]", 1, 6, "1:6: syntax error: unexpected ], expected hex string or '['"},
	}
	for _, test := range tests {
		_, err := Parse([]byte(test.input))
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("input %q: expected syntax error, got %v", test.input, err)
			continue
		}
		if serr.Line != test.line || serr.Column != test.column {
			t.Errorf("input %q: error at %d:%d, want %d:%d", test.input, serr.Line, serr.Column, test.line, test.column)
		}
		if err.Error() != test.want {
			t.Errorf("input %q: wrong message\ngot:  %s\nwant: %s", test.input, err, test.want)
		}
	}
}

func TestFormat(t *testing.T) {
	v := rlp.NewList(
		rlp.NewString([]byte{0x05, 0x39}),
		rlp.NewString(nil),
		rlp.NewList(),
		rlp.NewList(rlp.NewString([]byte{0x00, 0x03}), rlp.NewList(rlp.NewString([]byte{0xff}))),
	)
	want := `[
  0x0539
  0x
  []
  [
    0x0003
    [
      0xff
    ]
  ]
]`
	if got := Format(v); got != want {
		t.Fatalf("wrong output\ngot:\n%s\nwant:\n%s", got, want)
	}
	back, err := Parse([]byte(want))
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(v) {
		t.Fatalf("formatted value does not parse back: %s", spew.Sdump(back))
	}

	trimmed := Printer{Indent: "\t", TrimZeros: true}.Sprint(v)
	wantTrimmed := "[\n\t0x539\n\t0x\n\t[]\n\t[\n\t\t0x3\n\t\t[\n\t\t\t0xff\n\t\t]\n\t]\n]"
	if trimmed != wantTrimmed {
		t.Fatalf("wrong trimmed output\ngot:\n%s\nwant:\n%s", trimmed, wantTrimmed)
	}
}

func TestFormatScalar(t *testing.T) {
	for _, v := range []rlp.Value{rlp.NewString(nil), rlp.NewString([]byte{0x7f}), rlp.NewList()} {
		back, err := Parse([]byte(Format(v)))
		if err != nil {
			t.Fatalf("%v: %v", v, err)
		}
		if !back.Equal(v) {
			t.Fatalf("%v: round trip gave %v", v, back)
		}
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 100000
	input := make([]byte, 0, 2*depth)
	for i := 0; i < depth; i++ {
		input = append(input, '[')
	}
	for i := 0; i < depth; i++ {
		input = append(input, ']')
	}
	v, err := Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for ; v.IsList() && v.Len() == 1; v = v.Elems()[0] {
		n++
	}
	if n != depth-1 || !v.IsList() || v.Len() != 0 {
		t.Fatalf("wrong nesting depth %d", n)
	}
}
