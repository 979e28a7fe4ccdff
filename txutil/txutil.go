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

// Package txutil implements the hex-in, hex-out operations of the txutil
// command: RLP encoding and decoding, building and signing typed
// transactions and set code authorizations, and signer recovery.
//
// Every operation takes all of its inputs explicitly and keeps no state
// between calls.
package txutil

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/core/types"
	"github.com/sunyihoo/go-txutil/log"
	"github.com/sunyihoo/go-txutil/rlp"
)

var errEmptyInput = errors.New("empty input")

// Encode returns the canonical encoding of v.
func Encode(v rlp.Value) hexutil.Bytes {
	return rlp.EncodeToBytes(v)
}

// Codec runs the decoding operations with a configurable strictness. The
// zero value is strict: non-minimal size prefixes and integers with leading
// zero bytes are rejected.
type Codec struct {
	// AllowNonCanonical accepts non-minimal encodings. Truncated input and
	// length mismatches are errors either way.
	AllowNonCanonical bool
}

// Decode decodes a single canonically encoded value from hex input.
func Decode(input string) (rlp.Value, error) {
	return Codec{}.Decode(input)
}

// Decode decodes a single encoded value from hex input.
func (c Codec) Decode(input string) (rlp.Value, error) {
	b, err := ParseHex(input)
	if err != nil {
		return rlp.Value{}, err
	}
	return rlp.Decoder{AllowNonCanonical: c.AllowNonCanonical}.Decode(b)
}

// BuildTransaction validates fields against the schema of txType and returns
// the encoded transaction. The fields may include the signature values.
func BuildTransaction(txType byte, fields rlp.Value) (hexutil.Bytes, error) {
	return Codec{}.BuildTransaction(txType, fields)
}

func (c Codec) BuildTransaction(txType byte, fields rlp.Value) (hexutil.Bytes, error) {
	env, err := c.parser().Build(txType, fields)
	if err != nil {
		return nil, err
	}
	return env.Bytes(), nil
}

// BuildUnsignedTransaction returns the signing input of a transaction: the
// type byte followed by the encoded unsigned field list.
func BuildUnsignedTransaction(txType byte, fields rlp.Value) (hexutil.Bytes, error) {
	return Codec{}.BuildUnsignedTransaction(txType, fields)
}

func (c Codec) BuildUnsignedTransaction(txType byte, fields rlp.Value) (hexutil.Bytes, error) {
	env, err := c.parser().Build(txType, fields)
	if err != nil {
		return nil, err
	}
	if env.Signed() {
		err := fmt.Errorf("%w: have %d, want %d unsigned fields", types.ErrFieldCount, fields.Len(), env.UnsignedValue().Len())
		return nil, &types.SchemaError{TxType: txType, Index: -1, Err: err}
	}
	return env.UnsignedBytes(), nil
}

// DecodeTransaction decodes an encoded typed transaction. The envelope holds
// the type byte and the raw field list, its Transaction method the named
// fields.
func DecodeTransaction(input string) (*types.Envelope, error) {
	return Codec{}.DecodeTransaction(input)
}

func (c Codec) DecodeTransaction(input string) (*types.Envelope, error) {
	b, err := ParseHex(input)
	if err != nil {
		return nil, err
	}
	return c.parser().Parse(b)
}

func (c Codec) parser() types.EnvelopeParser {
	return types.EnvelopeParser{AllowNonCanonical: c.AllowNonCanonical}
}

// SignAuthorization signs an encoded set code authorization tuple. The tuple
// has three fields, or six when an existing signature is replaced. The
// result is the encoded six field tuple.
func SignAuthorization(magic byte, tuple string, prv *ecdsa.PrivateKey) (hexutil.Bytes, error) {
	return Codec{}.SignAuthorization(magic, tuple, prv)
}

func (c Codec) SignAuthorization(magic byte, tuple string, prv *ecdsa.PrivateKey) (hexutil.Bytes, error) {
	v, err := c.Decode(tuple)
	if err != nil {
		return nil, err
	}
	signed, err := types.SignAuthorizationValue(prv, magic, v)
	if err != nil {
		return nil, err
	}
	log.Debug("Signed authorization", "magic", magic, "fields", signed.Len())
	return rlp.EncodeToBytes(signed), nil
}

// SignTransaction signs an encoded transaction and returns the signed
// encoding. A signature already present is replaced.
func SignTransaction(input string, prv *ecdsa.PrivateKey) (hexutil.Bytes, error) {
	return Codec{}.SignTransaction(input, prv)
}

func (c Codec) SignTransaction(input string, prv *ecdsa.PrivateKey) (hexutil.Bytes, error) {
	env, err := c.DecodeTransaction(input)
	if err != nil {
		return nil, err
	}
	signed, err := types.SignEnvelope(env, prv)
	if err != nil {
		return nil, err
	}
	log.Debug("Signed transaction", "type", env.Type(), "sighash", signed.SigHash())
	return signed.Bytes(), nil
}

// RecoverAddress returns the account that signed an encoded transaction and
// the hash it signed.
func RecoverAddress(input string) (common.Address, common.Hash, error) {
	return Codec{}.RecoverAddress(input)
}

func (c Codec) RecoverAddress(input string) (common.Address, common.Hash, error) {
	env, err := c.DecodeTransaction(input)
	if err != nil {
		return common.Address{}, common.Hash{}, err
	}
	return env.Sender()
}

// RecoverAuthority returns the account that signed an encoded six field
// authorization tuple and the hash it signed.
func RecoverAuthority(magic byte, tuple string) (common.Address, common.Hash, error) {
	return Codec{}.RecoverAuthority(magic, tuple)
}

func (c Codec) RecoverAuthority(magic byte, tuple string) (common.Address, common.Hash, error) {
	v, err := c.Decode(tuple)
	if err != nil {
		return common.Address{}, common.Hash{}, err
	}
	return types.RecoverAuthorityValue(magic, v)
}

// ParseHex decodes hex input with an optional 0x prefix. Surrounding
// whitespace is ignored.
func ParseHex(input string) ([]byte, error) {
	s := strings.TrimSpace(input)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return nil, errEmptyInput
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}
