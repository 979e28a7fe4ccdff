// Copyright 2016 The go-ethereum Authors
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

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/crypto"
	"github.com/sunyihoo/go-txutil/rlp"
)

// Signature is a secp256k1 signature in the form carried by typed transactions
// and authorizations.
type Signature struct {
	YParity uint8
	R, S    uint256.Int
}

// SignHash signs hash with prv. The nonce is derived deterministically and
// the returned s is in the lower half of the curve order.
func SignHash(hash common.Hash, prv *ecdsa.PrivateKey) (Signature, error) {
	sig, err := crypto.Sign(hash[:], prv)
	if err != nil {
		return Signature{}, &SignError{Err: err}
	}
	return decodeSignature(sig), nil
}

// decodeSignature splits a 65 byte [R || S || V] signature.
func decodeSignature(sig []byte) Signature {
	if len(sig) != crypto.SignatureLength {
		panic(fmt.Sprintf("wrong size for signature: got %d, want %d", len(sig), crypto.SignatureLength))
	}
	var s Signature
	s.R.SetBytes(sig[:32])
	s.S.SetBytes(sig[32:64])
	s.YParity = sig[crypto.RecoveryIDOffset]
	return s
}

// Bytes returns the signature in the 65 byte [R || S || V] format.
func (s Signature) Bytes() []byte {
	var sig [crypto.SignatureLength]byte
	s.R.WriteToSlice(sig[:32])
	s.S.WriteToSlice(sig[32:64])
	sig[crypto.RecoveryIDOffset] = s.YParity
	return sig[:]
}

// Values returns the canonical yParity, r and s field values.
func (s Signature) Values() []rlp.Value {
	return []rlp.Value{
		rlp.Uint(uint64(s.YParity)),
		rlp.NewString(rlp.CanonicalUint256(&s.R)),
		rlp.NewString(rlp.CanonicalUint256(&s.S)),
	}
}

// Recover returns the address of the account that signed hash.
func (s Signature) Recover(hash common.Hash) (common.Address, error) {
	if !crypto.ValidateSignatureValues(s.YParity, &s.R, &s.S, true) {
		return common.Address{}, &RecoveryError{Err: ErrInvalidSig}
	}
	pub, err := crypto.Ecrecover(hash[:], s.Bytes())
	if err != nil {
		return common.Address{}, &RecoveryError{Err: err}
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

// SignTx signs the transaction using the given private key.
func SignTx(tx *Transaction, prv *ecdsa.PrivateKey) (*Transaction, error) {
	sig, err := SignHash(tx.SigHash(), prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(sig), nil
}

// Sender returns the address derived from the signature (V, R, S) using secp256k1
// elliptic curve and an error if it failed deriving or upon an incorrect
// signature.
//
// Sender caches the address in the transaction.
func Sender(tx *Transaction) (common.Address, error) {
	if from := tx.from.Load(); from != nil {
		return *from, nil
	}
	sig, err := tx.signature()
	if err != nil {
		return common.Address{}, err
	}
	addr, err := sig.Recover(tx.SigHash())
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(&addr)
	return addr, nil
}
