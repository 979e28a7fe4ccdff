// Copyright 2024 The go-ethereum Authors
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
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/rlp"
	"golang.org/x/sync/errgroup"
)

// AuthorizationMagic is the default domain separator prepended to an
// authorization tuple before hashing.
const AuthorizationMagic byte = 0x05

// authListIndex is the position of the authorization list in a SetCodeTx.
const authListIndex = 9

var authorizationFields = []string{"chainId", "address", "nonce", "yParity", "r", "s"}

// SetCodeTx implements the EIP-7702 transaction type which temporarily installs
// the code at the signer's address.
type SetCodeTx struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasTipCap  *uint256.Int // a.k.a. maxPriorityFeePerGas
	GasFeeCap  *uint256.Int // a.k.a. maxFeePerGas
	Gas        uint64
	To         common.Address
	Value      *uint256.Int
	Data       []byte
	AccessList AccessList
	AuthList   []SetCodeAuthorization

	// Signature values
	V *uint256.Int
	R *uint256.Int
	S *uint256.Int
}

// SetCodeAuthorization is an authorization from an account to deploy code at its address.
type SetCodeAuthorization struct {
	ChainID uint256.Int
	Address common.Address
	Nonce   *uint64 // nil means the nonce is left unspecified
	V       uint8
	R       uint256.Int
	S       uint256.Int
}

// Signed reports whether the authorization carries a signature.
func (a *SetCodeAuthorization) Signed() bool {
	return !a.R.IsZero() || !a.S.IsZero()
}

// UnsignedValue returns the tuple [chainId, address, [nonce]] that is signed.
func (a *SetCodeAuthorization) UnsignedValue() rlp.Value {
	nonce := rlp.NewList()
	if a.Nonce != nil {
		nonce = rlp.NewList(rlp.Uint(*a.Nonce))
	}
	return rlp.NewList(
		rlp.NewString(rlp.CanonicalUint256(&a.ChainID)),
		rlp.NewString(a.Address.Bytes()),
		nonce,
	)
}

// Value returns the six field tuple of a signed authorization, and the
// unsigned tuple otherwise.
func (a *SetCodeAuthorization) Value() rlp.Value {
	if !a.Signed() {
		return a.UnsignedValue()
	}
	return a.tupleValue()
}

// tupleValue returns the six field tuple, whether signed or not.
func (a *SetCodeAuthorization) tupleValue() rlp.Value {
	return a.UnsignedValue().Append(a.signature().Values()...)
}

func (a *SetCodeAuthorization) signature() Signature {
	return Signature{YParity: a.V, R: a.R, S: a.S}
}

// SigHash returns the hash signed by the authority.
func (a *SetCodeAuthorization) SigHash(magic byte) common.Hash {
	return prefixedRlpHash(magic, a.UnsignedValue())
}

// SignSetCode creates a signed the SetCode authorization.
func SignSetCode(prv *ecdsa.PrivateKey, magic byte, auth SetCodeAuthorization) (SetCodeAuthorization, error) {
	sig, err := SignHash(auth.SigHash(magic), prv)
	if err != nil {
		return SetCodeAuthorization{}, err
	}
	return SetCodeAuthorization{
		ChainID: auth.ChainID,
		Address: auth.Address,
		Nonce:   copyUint64Ptr(auth.Nonce),
		V:       sig.YParity,
		R:       sig.R,
		S:       sig.S,
	}, nil
}

// Authority recovers the the authorizing account of an authorization.
func (a *SetCodeAuthorization) Authority(magic byte) (common.Address, error) {
	if !a.Signed() {
		return common.Address{}, &RecoveryError{Err: ErrUnsignedAuthorization}
	}
	return a.signature().Recover(a.SigHash(magic))
}

// AuthorizationFromValue reads an authorization from its three field
// (unsigned) or six field (signed) tuple.
func AuthorizationFromValue(tuple rlp.Value) (SetCodeAuthorization, error) {
	r, err := authorizationReader(tuple)
	if err != nil {
		return SetCodeAuthorization{}, err
	}
	auth := r.authorization()
	if r.err != nil {
		return SetCodeAuthorization{}, r.err
	}
	return auth, nil
}

func authorizationReader(tuple rlp.Value) (*fieldReader, error) {
	if !tuple.IsList() {
		return nil, &SchemaError{TxType: SetCodeTxType, Field: "authorization", Index: -1, Err: rlp.ErrExpectedList}
	}
	fields := tuple.Elems()
	if n := len(fields); n != 3 && n != len(authorizationFields) {
		err := fmt.Errorf("%w: have %d, want 3 or %d", ErrFieldCount, n, len(authorizationFields))
		return nil, &SchemaError{TxType: SetCodeTxType, Field: "authorization", Index: -1, Err: err}
	}
	r := newFieldReader(SetCodeTxType, fields, authorizationFields, true)
	r.path, r.index = "authorization", -1
	return r, nil
}

// SignAuthorizationValue signs a raw authorization tuple. The tuple must have
// three fields, or six when re-signing. The hash covers the first three
// fields exactly as given, and the result has the signature appended.
func SignAuthorizationValue(prv *ecdsa.PrivateKey, magic byte, tuple rlp.Value) (rlp.Value, error) {
	if _, err := AuthorizationFromValue(tuple); err != nil {
		return rlp.Value{}, err
	}
	unsigned := rlp.NewList(tuple.Elems()[:3]...)
	sig, err := SignHash(prefixedRlpHash(magic, unsigned), prv)
	if err != nil {
		return rlp.Value{}, err
	}
	return unsigned.Append(sig.Values()...), nil
}

// RecoverAuthorityValue recovers the account that signed a raw six field
// authorization tuple. It also returns the signing hash.
func RecoverAuthorityValue(magic byte, tuple rlp.Value) (common.Address, common.Hash, error) {
	auth, err := AuthorizationFromValue(tuple)
	if err != nil {
		return common.Address{}, common.Hash{}, err
	}
	if tuple.Len() != len(authorizationFields) {
		return common.Address{}, common.Hash{}, &RecoveryError{Err: ErrUnsignedAuthorization}
	}
	hash := prefixedRlpHash(magic, rlp.NewList(tuple.Elems()[:3]...))
	addr, err := auth.signature().Recover(hash)
	return addr, hash, err
}

// SignAuthorizations signs every authorization with the key at the same
// position. The signatures are computed concurrently and returned in input
// order. Passing no keys is allowed when all authorizations are signed
// already, in which case they are returned unchanged.
func SignAuthorizations(auths []SetCodeAuthorization, keys []*ecdsa.PrivateKey, magic byte) ([]SetCodeAuthorization, error) {
	if len(keys) == 0 {
		for i := range auths {
			if !auths[i].Signed() {
				err := fmt.Errorf("%w: authorization %d is unsigned and no keys were given", ErrAuthorizerCount, i)
				return nil, &SchemaError{TxType: SetCodeTxType, Field: "authorizationList", Index: authListIndex, Err: err}
			}
		}
		return auths, nil
	}
	if len(keys) != len(auths) {
		err := fmt.Errorf("%w: have %d keys, %d authorizations", ErrAuthorizerCount, len(keys), len(auths))
		return nil, &SchemaError{TxType: SetCodeTxType, Field: "authorizationList", Index: authListIndex, Err: err}
	}
	var (
		signed = make([]SetCodeAuthorization, len(auths))
		g      errgroup.Group
	)
	for i := range auths {
		g.Go(func() error {
			auth, err := SignSetCode(keys[i], magic, auths[i])
			if err != nil {
				return fmt.Errorf("authorization %d: %w", i, err)
			}
			signed[i] = auth
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return signed, nil
}

// copy creates a deep copy of the transaction data and initializes all fields.
func (tx *SetCodeTx) copy() TxData {
	cpy := &SetCodeTx{
		Nonce: tx.Nonce,
		To:    tx.To,
		Data:  common.CopyBytes(tx.Data),
		Gas:   tx.Gas,
		// These are copied below.
		AccessList: tx.AccessList.copy(),
		AuthList:   make([]SetCodeAuthorization, len(tx.AuthList)),
		Value:      new(uint256.Int),
		ChainID:    new(uint256.Int),
		GasTipCap:  new(uint256.Int),
		GasFeeCap:  new(uint256.Int),
		V:          new(uint256.Int),
		R:          new(uint256.Int),
		S:          new(uint256.Int),
	}
	for i, auth := range tx.AuthList {
		auth.Nonce = copyUint64Ptr(auth.Nonce)
		cpy.AuthList[i] = auth
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.ChainID != nil {
		cpy.ChainID.Set(tx.ChainID)
	}
	if tx.GasTipCap != nil {
		cpy.GasTipCap.Set(tx.GasTipCap)
	}
	if tx.GasFeeCap != nil {
		cpy.GasFeeCap.Set(tx.GasFeeCap)
	}
	if tx.V != nil {
		cpy.V.Set(tx.V)
	}
	if tx.R != nil {
		cpy.R.Set(tx.R)
	}
	if tx.S != nil {
		cpy.S.Set(tx.S)
	}
	return cpy
}

// accessors for innerTx.
func (tx *SetCodeTx) txType() byte           { return SetCodeTxType }
func (tx *SetCodeTx) chainID() *big.Int      { return tx.ChainID.ToBig() }
func (tx *SetCodeTx) accessList() AccessList { return tx.AccessList }
func (tx *SetCodeTx) data() []byte           { return tx.Data }
func (tx *SetCodeTx) gas() uint64            { return tx.Gas }
func (tx *SetCodeTx) gasFeeCap() *big.Int    { return tx.GasFeeCap.ToBig() }
func (tx *SetCodeTx) gasTipCap() *big.Int    { return tx.GasTipCap.ToBig() }
func (tx *SetCodeTx) value() *big.Int        { return tx.Value.ToBig() }
func (tx *SetCodeTx) nonce() uint64          { return tx.Nonce }
func (tx *SetCodeTx) to() *common.Address    { tmp := tx.To; return &tmp }

func (tx *SetCodeTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V.ToBig(), tx.R.ToBig(), tx.S.ToBig()
}

func (tx *SetCodeTx) setSignatureValues(chainID, v, r, s *big.Int) {
	tx.ChainID = uint256.MustFromBig(chainID)
	tx.V = uint256.MustFromBig(v)
	tx.R = uint256.MustFromBig(r)
	tx.S = uint256.MustFromBig(s)
}

func (tx *SetCodeTx) unsignedFields() []rlp.Value {
	auths := make([]rlp.Value, len(tx.AuthList))
	for i := range tx.AuthList {
		auths[i] = tx.AuthList[i].tupleValue()
	}
	return []rlp.Value{
		u256Value(tx.ChainID),
		rlp.Uint(tx.Nonce),
		u256Value(tx.GasTipCap),
		u256Value(tx.GasFeeCap),
		rlp.Uint(tx.Gas),
		rlp.NewString(tx.To.Bytes()),
		u256Value(tx.Value),
		rlp.NewString(tx.Data),
		tx.AccessList.Value(),
		rlp.NewList(auths...),
	}
}

func (tx *SetCodeTx) decodeFields(r *fieldReader) {
	tx.ChainID = r.uint256(0)
	tx.Nonce = r.uint64(1)
	tx.GasTipCap = r.uint256(2)
	tx.GasFeeCap = r.uint256(3)
	tx.Gas = r.uint64(4)
	tx.To = r.address(5)
	tx.Value = r.uint256(6)
	tx.Data = r.bytes(7)
	tx.AccessList = r.accessList(8)
	tx.AuthList = r.authList(9)
}
