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

package txutil

import (
	"crypto/ecdsa"
	"strings"

	"github.com/sunyihoo/go-txutil/core/types"
	"github.com/sunyihoo/go-txutil/crypto"
)

// ParseKey parses a hex encoded secp256k1 private key. The 0x prefix is
// optional. Failures are reported as *types.SignError.
func ParseKey(s string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimSpace(s))
	if err != nil {
		return nil, &types.SignError{Err: err}
	}
	return key, nil
}

// LoadKey reads a private key from a file holding its hex encoding.
func LoadKey(file string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.LoadECDSA(file)
	if err != nil {
		return nil, &types.SignError{Err: err}
	}
	return key, nil
}

// ParseKeys parses every key in order.
func ParseKeys(keys []string) ([]*ecdsa.PrivateKey, error) {
	out := make([]*ecdsa.PrivateKey, len(keys))
	for i, s := range keys {
		key, err := ParseKey(s)
		if err != nil {
			return nil, err
		}
		out[i] = key
	}
	return out, nil
}
