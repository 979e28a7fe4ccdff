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

package common

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
		err   error
	}{
		{"0x", []byte{}, nil},
		{"", []byte{}, nil},
		{"0x01", []byte{0x01}, nil},
		{"0x1", []byte{0x01}, nil},
		{"539", []byte{0x05, 0x39}, nil},
		{"0X0539", []byte{0x05, 0x39}, nil},
		{" 0xff\n", []byte{0xff}, nil},
		{"0xzz", nil, ErrInvalidHex},
		{"0x0g", nil, ErrInvalidHex},
	}
	for _, test := range tests {
		got, err := ParseHex(test.input)
		if err != test.err {
			t.Errorf("ParseHex(%q): error %v, want %v", test.input, err, test.err)
			continue
		}
		if !bytes.Equal(got, test.want) {
			t.Errorf("ParseHex(%q) = %x, want %x", test.input, got, test.want)
		}
	}
	if FromHex("0xzz") != nil {
		t.Error("FromHex accepted invalid input")
	}
}

func TestCopyBytes(t *testing.T) {
	input := []byte{1, 2, 3, 4}

	v := CopyBytes(input)
	if !bytes.Equal(v, []byte{1, 2, 3, 4}) {
		t.Fatal("not equal after copy")
	}
	v[0] = 99
	if bytes.Equal(v, input) {
		t.Fatal("result is not a copy")
	}
	if CopyBytes(nil) != nil {
		t.Fatal("copy of nil is not nil")
	}
}

func TestAddressHexAndJSON(t *testing.T) {
	addr := HexToAddress("0xd571b8bcd11df08f0459009dd1bd664127a431ee")
	if addr.Hex() != "0xd571b8bcd11df08f0459009dd1bd664127a431ee" {
		t.Fatalf("wrong hex %s", addr.Hex())
	}
	enc, err := json.Marshal(addr)
	if err != nil {
		t.Fatal(err)
	}
	var dec Address
	if err := json.Unmarshal(enc, &dec); err != nil {
		t.Fatal(err)
	}
	if dec != addr {
		t.Fatalf("got %v, want %v", dec, addr)
	}
	if err := json.Unmarshal([]byte(`"0x01"`), &dec); err == nil {
		t.Fatal("short address accepted")
	}
}

func TestHashSetBytesCrops(t *testing.T) {
	b := make([]byte, 40)
	b[39] = 0x01
	h := BytesToHash(b)
	if h[31] != 0x01 {
		t.Fatalf("wrong hash %x", h)
	}
	if h.TerminalString() != "000000..000001" {
		t.Fatalf("wrong terminal string %s", h.TerminalString())
	}
}
