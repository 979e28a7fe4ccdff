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
	"crypto/ecdsa"

	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/rlp"
)

// Envelope is a typed transaction kept in its field list form. Unlike
// Transaction, it preserves the payload values exactly as they were given,
// so signing and re-encoding never normalize the input.
type Envelope struct {
	txType   byte
	unsigned []rlp.Value
	sig      []rlp.Value // yParity, r, s; nil if unsigned
	tx       *Transaction
}

// EnvelopeParser builds envelopes from field lists and encoded transactions.
type EnvelopeParser struct {
	// AllowNonCanonical accepts integers with leading zero bytes and
	// non-minimal RLP size prefixes.
	AllowNonCanonical bool
}

// NewEnvelope validates fields against the schema of txType and wraps them
// in an envelope. fields holds the unsigned payload fields, optionally
// followed by yParity, r and s.
func NewEnvelope(txType byte, fields rlp.Value) (*Envelope, error) {
	return EnvelopeParser{}.Build(txType, fields)
}

// ParseEnvelope decodes a strictly canonical typed transaction.
func ParseEnvelope(b []byte) (*Envelope, error) {
	return EnvelopeParser{}.Parse(b)
}

// Build is NewEnvelope with the parser's strictness.
func (p EnvelopeParser) Build(txType byte, fields rlp.Value) (*Envelope, error) {
	if !fields.IsList() {
		return nil, &SchemaError{TxType: txType, Index: -1, Err: rlp.ErrExpectedList}
	}
	schema, err := lookupSchema(txType)
	if err != nil {
		return nil, err
	}
	elems := fields.Elems()
	tx, err := decodeTx(txType, elems, !p.AllowNonCanonical)
	if err != nil {
		return nil, err
	}
	n := schema.unsignedLen()
	env := &Envelope{
		txType:   txType,
		unsigned: elems[:n:n],
		tx:       tx,
	}
	if len(elems) > n {
		env.sig = elems[n:]
	}
	return env, nil
}

// Parse strips the type byte from b and decodes the payload list.
func (p EnvelopeParser) Parse(b []byte) (*Envelope, error) {
	if len(b) <= 1 {
		return nil, errShortTypedTx
	}
	schema, err := lookupSchema(b[0])
	if err != nil {
		return nil, err
	}
	// Count the top-level fields before building the tree. Malformed
	// headers are left to the decoder, which reports their offset.
	if content, rest, err := rlp.SplitList(b[1:]); err == nil && len(rest) == 0 {
		if n, err := rlp.CountValues(content); err == nil {
			if _, err := schema.checkLen(b[0], n); err != nil {
				return nil, err
			}
		}
	}
	dec := rlp.Decoder{AllowNonCanonical: p.AllowNonCanonical}
	fields, err := dec.Decode(b[1:])
	if err != nil {
		return nil, err
	}
	return p.Build(b[0], fields)
}

// Type returns the transaction type byte.
func (env *Envelope) Type() byte { return env.txType }

// Signed reports whether the envelope carries signature fields.
func (env *Envelope) Signed() bool { return env.sig != nil }

// Fields returns the complete payload list, including the signature fields
// of a signed envelope.
func (env *Envelope) Fields() rlp.Value {
	fields := make([]rlp.Value, 0, len(env.unsigned)+len(env.sig))
	fields = append(fields, env.unsigned...)
	fields = append(fields, env.sig...)
	return rlp.NewList(fields...)
}

// UnsignedValue returns the payload list without signature fields.
func (env *Envelope) UnsignedValue() rlp.Value {
	return rlp.NewList(env.unsigned...)
}

// UnsignedBytes returns the signing input: the type byte followed by the
// encoded unsigned payload list.
func (env *Envelope) UnsignedBytes() []byte {
	return rlp.AppendValue([]byte{env.txType}, env.UnsignedValue())
}

// SigHash returns the keccak256 hash of UnsignedBytes.
func (env *Envelope) SigHash() common.Hash {
	return prefixedRlpHash(env.txType, env.UnsignedValue())
}

// Bytes returns the encoded transaction.
func (env *Envelope) Bytes() []byte {
	return rlp.AppendValue([]byte{env.txType}, env.Fields())
}

// Transaction returns the typed view of the envelope.
func (env *Envelope) Transaction() *Transaction {
	return env.tx
}

// Signature returns the typed signature of a signed envelope.
func (env *Envelope) Signature() (Signature, error) {
	if !env.Signed() {
		return Signature{}, ErrUnsignedTx
	}
	return env.tx.signature()
}

// WithSignature returns a copy of the envelope with the signature fields
// replaced by sig.
func (env *Envelope) WithSignature(sig Signature) *Envelope {
	return &Envelope{
		txType:   env.txType,
		unsigned: env.unsigned,
		sig:      sig.Values(),
		tx:       env.tx.WithSignature(sig),
	}
}

// SignEnvelope signs the unsigned payload of env with prv. Any signature
// already present is replaced.
func SignEnvelope(env *Envelope, prv *ecdsa.PrivateKey) (*Envelope, error) {
	sig, err := SignHash(env.SigHash(), prv)
	if err != nil {
		return nil, err
	}
	return env.WithSignature(sig), nil
}

// Sender recovers the address that signed the envelope. It also returns the
// signing hash.
func (env *Envelope) Sender() (common.Address, common.Hash, error) {
	hash := env.SigHash()
	sig, err := env.Signature()
	if err != nil {
		return common.Address{}, hash, &RecoveryError{Err: err}
	}
	addr, err := sig.Recover(hash)
	return addr, hash, err
}
