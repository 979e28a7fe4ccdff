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
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// CanonicalUint64 returns the minimal big-endian form of i. Zero is the
// empty byte string.
func CanonicalUint64(i uint64) []byte {
	if i == 0 {
		return []byte{}
	}
	var b [8]byte
	n := putint(b[:], i)
	return append([]byte{}, b[:n]...)
}

// CanonicalBig returns the minimal big-endian form of i. A nil i is zero.
func CanonicalBig(i *big.Int) ([]byte, error) {
	if i == nil {
		return []byte{}, nil
	}
	if i.Sign() < 0 {
		return nil, ErrNegativeBigInt
	}
	return i.Bytes(), nil
}

// CanonicalUint256 returns the minimal big-endian form of i. A nil i is zero.
func CanonicalUint256(i *uint256.Int) []byte {
	if i == nil || i.IsZero() {
		return []byte{}
	}
	return i.Bytes()
}

// CanonicalBool maps true to 0x01 and false to the empty byte string.
func CanonicalBool(b bool) []byte {
	if b {
		return []byte{0x01}
	}
	return []byte{}
}

// CanonicalBytes strips leading zero bytes, turning a big-endian integer of
// any width into its minimal form.
func CanonicalBytes(b []byte) []byte {
	for i, c := range b {
		if c != 0 {
			return b[i:]
		}
	}
	return []byte{}
}

// CanonicalHex parses a hex integer literal and returns its minimal form.
// The 0x prefix is optional and an odd number of digits is read as if it had
// a leading zero.
func CanonicalHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return CanonicalBytes(b), nil
}

// BytesToUint64 decodes a canonical integer of at most 8 bytes.
func BytesToUint64(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, errUintOverflow
	}
	if len(b) > 0 && b[0] == 0 {
		return 0, ErrCanonInt
	}
	var x uint64
	for _, c := range b {
		x = x<<8 | uint64(c)
	}
	return x, nil
}

// BytesToUint256 decodes a canonical integer of at most 32 bytes.
func BytesToUint256(b []byte) (*uint256.Int, error) {
	if len(b) > 32 {
		return nil, errUintOverflow
	}
	if len(b) > 0 && b[0] == 0 {
		return nil, ErrCanonInt
	}
	return new(uint256.Int).SetBytes(b), nil
}

// BytesToBool decodes a canonical boolean.
func BytesToBool(b []byte) (bool, error) {
	switch {
	case len(b) == 0:
		return false, nil
	case len(b) == 1 && b[0] == 0x01:
		return true, nil
	default:
		return false, ErrCanonBool
	}
}
