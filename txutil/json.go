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
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sunyihoo/go-txutil/core/types"
	"github.com/sunyihoo/go-txutil/log"
)

var errStaleSignature = errors.New("authorizations were re-signed but no transaction signer was given")

// JSONOptions holds the keys used by EncodeTransactionJSON.
type JSONOptions struct {
	Signer      *ecdsa.PrivateKey   // signs the transaction, replacing any signature in the document
	Authorizers []*ecdsa.PrivateKey // one per authorization, in list order
	Magic       *byte               // authorization domain byte, AuthorizationMagic if nil
}

// EncodeTransactionJSON builds a transaction from a JSON document and returns
// its encoding. When txType is non-zero the document's "type" must match it.
//
// Authorizations are signed with opts.Authorizers, which must hold exactly
// one key per authorization unless all of them are signed already. Without
// opts.Signer the document must carry the transaction signature.
func EncodeTransactionJSON(txType byte, doc []byte, opts JSONOptions) (hexutil.Bytes, error) {
	tx, err := types.TransactionFromJSON(txType, doc)
	if err != nil {
		return nil, err
	}
	magic := types.AuthorizationMagic
	if opts.Magic != nil {
		magic = *opts.Magic
	}
	if tx.Type() == types.SetCodeTxType {
		auths, err := types.SignAuthorizations(tx.SetCodeAuthorizations(), opts.Authorizers, magic)
		if err != nil {
			return nil, err
		}
		if len(opts.Authorizers) > 0 {
			if tx.Signed() && opts.Signer == nil {
				return nil, errStaleSignature
			}
			if tx, err = tx.WithAuthorizations(auths); err != nil {
				return nil, err
			}
			log.Debug("Signed authorizations", "count", len(auths), "magic", magic)
		}
	} else if len(opts.Authorizers) > 0 {
		return nil, &types.SchemaError{TxType: tx.Type(), Field: "authorizationList", Index: -1, Err: types.ErrAuthorizerCount}
	}
	if opts.Signer != nil {
		if tx, err = types.SignTx(tx, opts.Signer); err != nil {
			return nil, err
		}
	}
	if !tx.Signed() {
		return nil, &types.SignError{Err: types.ErrUnsignedTx}
	}
	log.Debug("Encoded transaction", "type", tx.Type(), "hash", tx.Hash())
	return tx.MarshalBinary()
}
