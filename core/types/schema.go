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

package types

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/rlp"
)

var errIntegerTooLarge = errors.New("integer exceeds 256 bits")

// txSchema is the ordered field layout of a typed transaction payload.
type txSchema struct {
	name   string
	fields []string
}

var signatureFields = []string{"yParity", "r", "s"}

// txSchemas is the closed set of supported transaction types. Supporting a
// new type means adding a row here and a TxData implementation.
var txSchemas = map[byte]txSchema{
	DynamicFeeTxType: {
		name: "DynamicFeeTx",
		fields: []string{
			"chainId", "nonce", "maxPriorityFeePerGas", "maxFeePerGas",
			"gasLimit", "destination", "amount", "data", "accessList",
		},
	},
	SetCodeTxType: {
		name: "SetCodeTx",
		fields: []string{
			"chainId", "nonce", "maxPriorityFeePerGas", "maxFeePerGas",
			"gasLimit", "destination", "amount", "data", "accessList",
			"authorizationList",
		},
	},
}

func lookupSchema(txType byte) (txSchema, error) {
	s, ok := txSchemas[txType]
	if !ok {
		return txSchema{}, &SchemaError{TxType: txType, Index: -1, Err: ErrTxTypeNotSupported}
	}
	return s, nil
}

func (s txSchema) unsignedLen() int { return len(s.fields) }
func (s txSchema) signedLen() int   { return len(s.fields) + len(signatureFields) }

// checkLen reports whether n fields form the signed layout. Any count other
// than the unsigned or signed length is an error.
func (s txSchema) checkLen(txType byte, n int) (signed bool, err error) {
	switch n {
	case s.unsignedLen():
		return false, nil
	case s.signedLen():
		return true, nil
	}
	err = fmt.Errorf("%w for %s: have %d, want %d (unsigned) or %d (signed)", ErrFieldCount, s.name, n, s.unsignedLen(), s.signedLen())
	return false, &SchemaError{TxType: txType, Index: -1, Err: err}
}

// names returns the field names of the unsigned or signed layout.
func (s txSchema) names(signed bool) []string {
	if !signed {
		return s.fields
	}
	names := make([]string, 0, s.signedLen())
	names = append(names, s.fields...)
	return append(names, signatureFields...)
}

// fieldReader converts positional values into typed fields. The first
// failure is recorded as a *SchemaError and turns every later read into a
// no-op, so callers check err once at the end.
type fieldReader struct {
	txType byte
	fields []rlp.Value
	names  []string
	strict bool

	path  string // prefix of nested readers, e.g. "accessList[0]"
	index int    // top-level position of nested readers

	err error
}

func newFieldReader(txType byte, fields []rlp.Value, names []string, strict bool) *fieldReader {
	return &fieldReader{txType: txType, fields: fields, names: names, strict: strict}
}

// nested returns a reader for the items of a list found at position i.
func (r *fieldReader) nested(i int, label string, fields []rlp.Value, names []string) *fieldReader {
	index := i
	if r.path != "" {
		index = r.index
	}
	return &fieldReader{
		txType: r.txType,
		fields: fields,
		names:  names,
		strict: r.strict,
		path:   r.name(i) + label,
		index:  index,
	}
}

// adopt takes over the error of a nested reader.
func (r *fieldReader) adopt(child *fieldReader) {
	if r.err == nil {
		r.err = child.err
	}
}

func (r *fieldReader) name(i int) string {
	switch {
	case i < len(r.names) && r.path != "":
		return r.path + "." + r.names[i]
	case i < len(r.names):
		return r.names[i]
	case r.path != "":
		return r.path + "[" + strconv.Itoa(i) + "]"
	default:
		return strconv.Itoa(i)
	}
}

func (r *fieldReader) fail(i int, err error) {
	if r.err != nil {
		return
	}
	index := i
	if r.path != "" {
		index = r.index
	}
	r.err = &SchemaError{TxType: r.txType, Field: r.name(i), Index: index, Err: err}
}

func (r *fieldReader) str(i int) ([]byte, bool) {
	if r.err != nil {
		return nil, false
	}
	if r.fields[i].IsList() {
		r.fail(i, rlp.ErrExpectedString)
		return nil, false
	}
	return r.fields[i].Bytes(), true
}

func (r *fieldReader) list(i int) ([]rlp.Value, bool) {
	if r.err != nil {
		return nil, false
	}
	if !r.fields[i].IsList() {
		r.fail(i, rlp.ErrExpectedList)
		return nil, false
	}
	return r.fields[i].Elems(), true
}

// integer returns the big-endian content of an integer field. Leading zero
// bytes are an error in strict mode and dropped otherwise.
func (r *fieldReader) integer(i int) ([]byte, bool) {
	b, ok := r.str(i)
	if !ok {
		return nil, false
	}
	if len(b) > 0 && b[0] == 0 {
		if r.strict {
			r.fail(i, rlp.ErrCanonInt)
			return nil, false
		}
		b = rlp.CanonicalBytes(b)
	}
	return b, true
}

func (r *fieldReader) uint256(i int) *uint256.Int {
	b, ok := r.integer(i)
	if !ok {
		return new(uint256.Int)
	}
	if len(b) > 32 {
		r.fail(i, errIntegerTooLarge)
		return new(uint256.Int)
	}
	return new(uint256.Int).SetBytes(b)
}

func (r *fieldReader) bigInt(i int) *big.Int {
	return r.uint256(i).ToBig()
}

func (r *fieldReader) uint64(i int) uint64 {
	b, ok := r.integer(i)
	if !ok {
		return 0
	}
	x, err := rlp.BytesToUint64(b)
	if err != nil {
		r.fail(i, err)
	}
	return x
}

func (r *fieldReader) bytes(i int) []byte {
	b, _ := r.str(i)
	return common.CopyBytes(b)
}

func (r *fieldReader) address(i int) common.Address {
	b, ok := r.str(i)
	if !ok {
		return common.Address{}
	}
	if len(b) != common.AddressLength {
		r.fail(i, fmt.Errorf("%w, have %d", ErrInvalidAddress, len(b)))
		return common.Address{}
	}
	return common.BytesToAddress(b)
}

// optAddress reads an address that may be empty (contract creation).
func (r *fieldReader) optAddress(i int) *common.Address {
	b, ok := r.str(i)
	if !ok || len(b) == 0 {
		return nil
	}
	addr := r.address(i)
	return &addr
}

func (r *fieldReader) hash(i int) common.Hash {
	b, ok := r.str(i)
	if !ok {
		return common.Hash{}
	}
	if len(b) != common.HashLength {
		r.fail(i, fmt.Errorf("%w, have %d", ErrInvalidStorageKey, len(b)))
		return common.Hash{}
	}
	return common.BytesToHash(b)
}

func (r *fieldReader) yParity(i int) uint8 {
	b, ok := r.str(i)
	if !ok {
		return 0
	}
	if !r.strict {
		b = rlp.CanonicalBytes(b)
	}
	v, err := rlp.BytesToBool(b)
	if err != nil {
		r.fail(i, ErrInvalidYParity)
		return 0
	}
	if v {
		return 1
	}
	return 0
}

// signature reads yParity, r and s starting at position i.
func (r *fieldReader) signature(i int) (v, rr, s *uint256.Int) {
	v = uint256.NewInt(uint64(r.yParity(i)))
	rr = r.uint256(i + 1)
	s = r.uint256(i + 2)
	return v, rr, s
}

func (r *fieldReader) accessList(i int) AccessList {
	items, ok := r.list(i)
	if !ok {
		return nil
	}
	al := make(AccessList, len(items))
	for j, item := range items {
		tuple := r.nested(i, "["+strconv.Itoa(j)+"]", nil, []string{"address", "storageKeys"})
		if !item.IsList() {
			r.fail(i, rlp.ErrExpectedList)
			return nil
		}
		tuple.fields = item.Elems()
		if len(tuple.fields) != 2 {
			r.fail(i, fmt.Errorf("%w in access tuple %d: have %d, want 2", ErrFieldCount, j, len(tuple.fields)))
			return nil
		}
		al[j].Address = tuple.address(0)
		keys, _ := tuple.list(1)
		al[j].StorageKeys = make([]common.Hash, len(keys))
		keyReader := tuple.nested(1, "", keys, nil)
		for k := range keys {
			al[j].StorageKeys[k] = keyReader.hash(k)
		}
		tuple.adopt(keyReader)
		r.adopt(tuple)
		if r.err != nil {
			return nil
		}
	}
	return al
}

func (r *fieldReader) authList(i int) []SetCodeAuthorization {
	items, ok := r.list(i)
	if !ok {
		return nil
	}
	auths := make([]SetCodeAuthorization, len(items))
	for j, item := range items {
		tuple := r.nested(i, "["+strconv.Itoa(j)+"]", nil, authorizationFields)
		tuple.fields = item.Elems()
		switch {
		case !item.IsList():
			r.fail(i, rlp.ErrExpectedList)
		case len(tuple.fields) != len(authorizationFields):
			// Authorizations inside a transaction must be signed.
			r.fail(i, fmt.Errorf("%w in authorization %d: have %d, want %d", ErrFieldCount, j, len(tuple.fields), len(authorizationFields)))
		default:
			auths[j] = tuple.authorization()
			r.adopt(tuple)
		}
		if r.err != nil {
			return nil
		}
	}
	return auths
}

// authorization reads a 3 or 6 field authorization tuple.
func (r *fieldReader) authorization() SetCodeAuthorization {
	var auth SetCodeAuthorization
	auth.ChainID = *r.uint256(0)
	auth.Address = r.address(1)
	auth.Nonce = r.authNonce(2)
	if len(r.fields) == len(authorizationFields) {
		auth.V = r.yParity(3)
		auth.R = *r.uint256(4)
		auth.S = *r.uint256(5)
	}
	return auth
}

// authNonce reads an authorization nonce. The nonce is carried as a list
// holding zero or one integer; a plain byte string is also accepted, the
// empty string meaning no nonce.
func (r *fieldReader) authNonce(i int) *uint64 {
	if r.err != nil {
		return nil
	}
	v := r.fields[i]
	if !v.IsList() {
		if v.Len() == 0 {
			return nil
		}
		n := r.uint64(i)
		return &n
	}
	switch v.Len() {
	case 0:
		return nil
	case 1:
		inner := r.nested(i, "", v.Elems(), nil)
		n := inner.uint64(0)
		r.adopt(inner)
		return &n
	default:
		r.fail(i, fmt.Errorf("%w: nonce list holds %d items", ErrFieldCount, v.Len()))
		return nil
	}
}
