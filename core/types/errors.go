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
)

var (
	ErrInvalidSig            = errors.New("invalid transaction v, r, s values")
	ErrTxTypeNotSupported    = errors.New("transaction type not supported")
	ErrFieldCount            = errors.New("wrong number of fields")
	ErrInvalidAddress        = errors.New("address must be 20 bytes")
	ErrInvalidStorageKey     = errors.New("storage key must be 32 bytes")
	ErrInvalidYParity        = errors.New("'yParity' field must be 0 or 1")
	ErrAuthorizerCount       = errors.New("number of authorizer keys does not match authorization list")
	ErrUnsignedAuthorization = errors.New("authorization is not signed")
	ErrUnsignedTx            = errors.New("transaction is not signed")

	errShortTypedTx = errors.New("typed transaction too short")
)

// SchemaError reports a value tree that does not fit the field layout of a
// transaction type or authorization tuple.
type SchemaError struct {
	TxType byte
	Field  string // field path, e.g. "authorizationList[1].nonce"
	Index  int    // position in the top-level field list, -1 if not applicable
	Err    error
}

func (e *SchemaError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("tx type %#02x: %v", e.TxType, e.Err)
	case e.Index < 0:
		return fmt.Sprintf("tx type %#02x: field %s: %v", e.TxType, e.Field, e.Err)
	default:
		return fmt.Sprintf("tx type %#02x: field %d (%s): %v", e.TxType, e.Index, e.Field, e.Err)
	}
}

func (e *SchemaError) Unwrap() error { return e.Err }

// SignError is returned when a payload cannot be signed, e.g. because of a
// malformed private key.
type SignError struct {
	Err error
}

func (e *SignError) Error() string { return "signing failed: " + e.Err.Error() }

func (e *SignError) Unwrap() error { return e.Err }

// RecoveryError is returned when no public key can be recovered from a
// signature.
type RecoveryError struct {
	Err error
}

func (e *RecoveryError) Error() string { return "signer recovery failed: " + e.Err.Error() }

func (e *RecoveryError) Unwrap() error { return e.Err }
