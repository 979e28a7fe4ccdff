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

package types

import (
	"math/big"
	"sync/atomic"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/rlp"
)

// Transaction types.
const (
	DynamicFeeTxType = 0x02
	SetCodeTxType    = 0x04
)

// Transaction is an EIP-2718 typed transaction.
type Transaction struct {
	inner TxData // Consensus contents of a transaction

	// caches
	hash atomic.Pointer[common.Hash]
	from atomic.Pointer[common.Address]
}

// NewTx creates a new transaction.
func NewTx(inner TxData) *Transaction {
	return &Transaction{inner: inner.copy()}
}

// TxData is the underlying data of a transaction.
//
// This is implemented by DynamicFeeTx and SetCodeTx.
type TxData interface {
	txType() byte // returns the type ID
	copy() TxData // creates a deep copy and initializes all fields

	chainID() *big.Int
	accessList() AccessList
	data() []byte
	gas() uint64
	gasTipCap() *big.Int
	gasFeeCap() *big.Int
	value() *big.Int
	nonce() uint64
	to() *common.Address

	rawSignatureValues() (v, r, s *big.Int)
	setSignatureValues(chainID, v, r, s *big.Int)

	// unsignedFields returns the payload fields in schema order, without
	// the signature values.
	unsignedFields() []rlp.Value
	// decodeFields fills the transaction from the unsigned payload fields.
	decodeFields(r *fieldReader)
}

func newTxData(txType byte) (TxData, error) {
	switch txType {
	case DynamicFeeTxType:
		return new(DynamicFeeTx), nil
	case SetCodeTxType:
		return new(SetCodeTx), nil
	default:
		return nil, &SchemaError{TxType: txType, Index: -1, Err: ErrTxTypeNotSupported}
	}
}

// FromValue creates a transaction from its payload field list. The list
// holds the unsigned fields, optionally followed by yParity, r and s.
func FromValue(txType byte, fields rlp.Value) (*Transaction, error) {
	if !fields.IsList() {
		return nil, &SchemaError{TxType: txType, Index: -1, Err: rlp.ErrExpectedList}
	}
	return decodeTx(txType, fields.Elems(), true)
}

func decodeTx(txType byte, fields []rlp.Value, strict bool) (*Transaction, error) {
	schema, err := lookupSchema(txType)
	if err != nil {
		return nil, err
	}
	signed, err := schema.checkLen(txType, len(fields))
	if err != nil {
		return nil, err
	}
	inner, err := newTxData(txType)
	if err != nil {
		return nil, err
	}
	r := newFieldReader(txType, fields, schema.names(signed), strict)
	inner.decodeFields(r)
	if signed {
		v, rr, s := r.signature(schema.unsignedLen())
		if r.err == nil {
			inner.setSignatureValues(inner.chainID(), v.ToBig(), rr.ToBig(), s.ToBig())
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return &Transaction{inner: inner}, nil
}

// ToValue returns the payload field list of the transaction. The signature
// values are included if the transaction is signed.
func (tx *Transaction) ToValue() rlp.Value {
	fields := tx.inner.unsignedFields()
	if sig, err := tx.signature(); err == nil {
		fields = append(fields, sig.Values()...)
	}
	return rlp.NewList(fields...)
}

// unsignedValue returns the payload field list without signature values.
func (tx *Transaction) unsignedValue() rlp.Value {
	return rlp.NewList(tx.inner.unsignedFields()...)
}

// MarshalBinary returns the canonical encoding of the transaction, which is
// the type byte followed by the RLP encoded payload list.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.AppendValue([]byte{tx.Type()}, tx.ToValue()), nil
}

// UnmarshalBinary decodes the canonical encoding of transactions.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	env, err := ParseEnvelope(b)
	if err != nil {
		return err
	}
	tx.inner = env.Transaction().inner
	tx.hash.Store(nil)
	tx.from.Store(nil)
	return nil
}

// Type returns the transaction type.
func (tx *Transaction) Type() uint8 {
	return tx.inner.txType()
}

// ChainId returns the chain ID of the transaction.
func (tx *Transaction) ChainId() *big.Int {
	return new(big.Int).Set(tx.inner.chainID())
}

// Data returns the input data of the transaction.
func (tx *Transaction) Data() []byte { return tx.inner.data() }

// AccessList returns the access list of the transaction.
func (tx *Transaction) AccessList() AccessList { return tx.inner.accessList() }

// Gas returns the gas limit of the transaction.
func (tx *Transaction) Gas() uint64 { return tx.inner.gas() }

// GasTipCap returns the gasTipCap per gas of the transaction.
func (tx *Transaction) GasTipCap() *big.Int { return new(big.Int).Set(tx.inner.gasTipCap()) }

// GasFeeCap returns the fee cap per gas of the transaction.
func (tx *Transaction) GasFeeCap() *big.Int { return new(big.Int).Set(tx.inner.gasFeeCap()) }

// Value returns the ether amount of the transaction.
func (tx *Transaction) Value() *big.Int { return new(big.Int).Set(tx.inner.value()) }

// Nonce returns the sender account nonce of the transaction.
func (tx *Transaction) Nonce() uint64 { return tx.inner.nonce() }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
func (tx *Transaction) To() *common.Address {
	return copyAddressPtr(tx.inner.to())
}

// RawSignatureValues returns the V, R, S signature values of the transaction.
// The return values should not be modified by the caller.
// The return values may be nil or zero, if the transaction is unsigned.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.inner.rawSignatureValues()
}

// SetCodeAuthorizations returns the authorizations list of the transaction.
func (tx *Transaction) SetCodeAuthorizations() []SetCodeAuthorization {
	setcodetx, ok := tx.inner.(*SetCodeTx)
	if !ok {
		return nil
	}
	return setcodetx.AuthList
}

// WithAuthorizations returns an unsigned copy of a set code transaction with
// the authorization list replaced.
func (tx *Transaction) WithAuthorizations(auths []SetCodeAuthorization) (*Transaction, error) {
	inner, ok := tx.inner.(*SetCodeTx)
	if !ok {
		return nil, &SchemaError{TxType: tx.Type(), Field: "authorizationList", Index: -1, Err: ErrTxTypeNotSupported}
	}
	cpy := inner.copy().(*SetCodeTx)
	cpy.AuthList = make([]SetCodeAuthorization, len(auths))
	for i, auth := range auths {
		auth.Nonce = copyUint64Ptr(auth.Nonce)
		cpy.AuthList[i] = auth
	}
	cpy.V, cpy.R, cpy.S = new(uint256.Int), new(uint256.Int), new(uint256.Int)
	return &Transaction{inner: cpy}, nil
}

// Signed reports whether the transaction carries signature values.
func (tx *Transaction) Signed() bool {
	_, r, s := tx.inner.rawSignatureValues()
	return (r != nil && r.Sign() != 0) || (s != nil && s.Sign() != 0)
}

// signature returns the signature values in their typed form.
func (tx *Transaction) signature() (Signature, error) {
	if !tx.Signed() {
		return Signature{}, ErrUnsignedTx
	}
	v, r, s := tx.inner.rawSignatureValues()
	if v == nil {
		v = new(big.Int)
	}
	if r == nil {
		r = new(big.Int)
	}
	if s == nil {
		s = new(big.Int)
	}
	if !v.IsUint64() || v.Uint64() > 1 {
		return Signature{}, ErrInvalidYParity
	}
	var sig Signature
	sig.YParity = uint8(v.Uint64())
	if r.Sign() < 0 || s.Sign() < 0 || sig.R.SetFromBig(r) || sig.S.SetFromBig(s) {
		return Signature{}, ErrInvalidSig
	}
	return sig, nil
}

// Hash returns the transaction hash.
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return *hash
	}
	h := prefixedRlpHash(tx.Type(), tx.ToValue())
	tx.hash.Store(&h)
	return h
}

// SigHash returns the hash to be signed by the sender. It covers the type byte
// and the unsigned payload list.
func (tx *Transaction) SigHash() common.Hash {
	return prefixedRlpHash(tx.Type(), tx.unsignedValue())
}

// WithSignature returns a new transaction with the given signature.
func (tx *Transaction) WithSignature(sig Signature) *Transaction {
	cpy := tx.inner.copy()
	v := new(big.Int).SetUint64(uint64(sig.YParity))
	cpy.setSignatureValues(cpy.chainID(), v, sig.R.ToBig(), sig.S.ToBig())
	return &Transaction{inner: cpy}
}

// copyAddressPtr copies an address.
func copyAddressPtr(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

func copyUint64Ptr(n *uint64) *uint64 {
	if n == nil {
		return nil
	}
	cpy := *n
	return &cpy
}

// bigValue encodes a non-negative integer. A nil value encodes as zero.
func bigValue(i *big.Int) rlp.Value {
	if i == nil {
		return rlp.NewString(nil)
	}
	return rlp.NewString(i.Bytes())
}

func u256Value(i *uint256.Int) rlp.Value {
	if i == nil {
		return rlp.NewString(nil)
	}
	return rlp.NewString(rlp.CanonicalUint256(i))
}

func addressPtrValue(a *common.Address) rlp.Value {
	if a == nil {
		return rlp.NewString(nil)
	}
	return rlp.NewString(a.Bytes())
}
