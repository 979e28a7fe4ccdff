// Copyright 2021 The go-ethereum Authors
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
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-txutil/common"
)

var errSignatureFields = errors.New("'yParity', 'r' and 's' must be given together")

// txJSON is the JSON representation of transactions. Quantities may be given
// as JSON numbers, decimal strings or 0x-prefixed hex strings.
type txJSON struct {
	Type *math.HexOrDecimal64 `json:"type,omitempty"`

	ChainID              *math.HexOrDecimal256  `json:"chainId"`
	Nonce                *math.HexOrDecimal64   `json:"nonce"`
	MaxPriorityFeePerGas *math.HexOrDecimal256  `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         *math.HexOrDecimal256  `json:"maxFeePerGas"`
	GasLimit             *math.HexOrDecimal64   `json:"gasLimit"`
	Destination          *common.Address        `json:"destination"`
	Amount               *math.HexOrDecimal256  `json:"amount"`
	Data                 *hexutil.Bytes         `json:"data"`
	AccessList           *AccessList            `json:"accessList"`
	AuthorizationList    []SetCodeAuthorization `json:"authorizationList,omitempty"`

	YParity *yParity              `json:"yParity,omitempty"`
	R       *math.HexOrDecimal256 `json:"r,omitempty"`
	S       *math.HexOrDecimal256 `json:"s,omitempty"`
}

// yParity is a signature parity bit. In JSON it is accepted as a boolean or
// as a quantity, and written as a quantity.
type yParity uint8

func (p yParity) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.Uint64(p))
}

func (p *yParity) UnmarshalJSON(input []byte) error {
	switch string(input) {
	case "true":
		*p = 1
		return nil
	case "false":
		*p = 0
		return nil
	}
	var v math.HexOrDecimal64
	if err := v.UnmarshalJSON(input); err != nil {
		return err
	}
	if v > 1 {
		return ErrInvalidYParity
	}
	*p = yParity(v)
	return nil
}

// authorizationJSON is the JSON representation of SetCodeAuthorization.
type authorizationJSON struct {
	ChainID *math.HexOrDecimal256 `json:"chainId"`
	Address *common.Address       `json:"address"`
	Nonce   *math.HexOrDecimal64  `json:"nonce"`
	YParity *yParity              `json:"yParity,omitempty"`
	R       *math.HexOrDecimal256 `json:"r,omitempty"`
	S       *math.HexOrDecimal256 `json:"s,omitempty"`
}

// MarshalJSON marshals as JSON. The signature fields are omitted when the
// authorization is unsigned.
func (a SetCodeAuthorization) MarshalJSON() ([]byte, error) {
	enc := authorizationJSON{
		ChainID: (*math.HexOrDecimal256)(a.ChainID.ToBig()),
		Address: &a.Address,
		Nonce:   (*math.HexOrDecimal64)(a.Nonce),
	}
	if a.Signed() {
		v := yParity(a.V)
		enc.YParity = &v
		enc.R = (*math.HexOrDecimal256)(a.R.ToBig())
		enc.S = (*math.HexOrDecimal256)(a.S.ToBig())
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON. A missing or null nonce leaves the
// nonce unspecified.
func (a *SetCodeAuthorization) UnmarshalJSON(input []byte) error {
	var dec authorizationJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	chainID, err := quantity256("chainId", dec.ChainID)
	if err != nil {
		return fmt.Errorf("authorization: %w", err)
	}
	if dec.Address == nil {
		return errors.New("missing required field 'address' in authorization")
	}
	auth := SetCodeAuthorization{ChainID: *chainID, Address: *dec.Address}
	if dec.Nonce != nil {
		n := uint64(*dec.Nonce)
		auth.Nonce = &n
	}
	switch {
	case dec.YParity == nil && dec.R == nil && dec.S == nil:
	case dec.YParity == nil || dec.R == nil || dec.S == nil:
		return fmt.Errorf("authorization: %w", errSignatureFields)
	default:
		auth.V = uint8(*dec.YParity)
		r, err := quantity256("r", dec.R)
		if err != nil {
			return fmt.Errorf("authorization: %w", err)
		}
		s, err := quantity256("s", dec.S)
		if err != nil {
			return fmt.Errorf("authorization: %w", err)
		}
		auth.R, auth.S = *r, *s
	}
	*a = auth
	return nil
}

// MarshalJSON marshals as JSON.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	var enc txJSON
	txType := math.HexOrDecimal64(tx.Type())
	enc.Type = &txType
	enc.ChainID = (*math.HexOrDecimal256)(tx.ChainId())
	nonce, gas := math.HexOrDecimal64(tx.Nonce()), math.HexOrDecimal64(tx.Gas())
	enc.Nonce = &nonce
	enc.GasLimit = &gas
	enc.MaxPriorityFeePerGas = (*math.HexOrDecimal256)(tx.GasTipCap())
	enc.MaxFeePerGas = (*math.HexOrDecimal256)(tx.GasFeeCap())
	enc.Destination = tx.To()
	enc.Amount = (*math.HexOrDecimal256)(tx.Value())
	data := hexutil.Bytes(tx.Data())
	enc.Data = &data
	al := tx.AccessList()
	if al == nil {
		al = AccessList{}
	}
	enc.AccessList = &al
	if tx.Type() == SetCodeTxType {
		enc.AuthorizationList = tx.SetCodeAuthorizations()
		if enc.AuthorizationList == nil {
			enc.AuthorizationList = []SetCodeAuthorization{}
		}
	}
	if sig, err := tx.signature(); err == nil {
		v := yParity(sig.YParity)
		enc.YParity = &v
		enc.R = (*math.HexOrDecimal256)(sig.R.ToBig())
		enc.S = (*math.HexOrDecimal256)(sig.S.ToBig())
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON. The document must carry its type.
func (tx *Transaction) UnmarshalJSON(input []byte) error {
	dec, err := TransactionFromJSON(0, input)
	if err != nil {
		return err
	}
	tx.inner = dec.inner
	tx.hash.Store(nil)
	tx.from.Store(nil)
	return nil
}

// TransactionFromJSON decodes a transaction document. If txType is non-zero
// it selects the transaction type, and a "type" field in the document must
// agree with it.
func TransactionFromJSON(txType byte, input []byte) (*Transaction, error) {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return nil, err
	}
	switch {
	case dec.Type == nil && txType == 0:
		return nil, errors.New("missing required field 'type' in transaction")
	case dec.Type != nil && txType != 0 && uint64(*dec.Type) != uint64(txType):
		return nil, fmt.Errorf("transaction type mismatch: document has %d, want %d", uint64(*dec.Type), txType)
	case dec.Type != nil:
		if uint64(*dec.Type) > 0xff {
			return nil, ErrTxTypeNotSupported
		}
		txType = byte(*dec.Type)
	}

	var inner TxData
	switch txType {
	case DynamicFeeTxType:
		itx, err := dec.dynamicFeeTx()
		if err != nil {
			return nil, err
		}
		inner = itx
	case SetCodeTxType:
		itx, err := dec.setCodeTx()
		if err != nil {
			return nil, err
		}
		inner = itx
	default:
		return nil, &SchemaError{TxType: txType, Index: -1, Err: ErrTxTypeNotSupported}
	}

	switch {
	case dec.YParity == nil && dec.R == nil && dec.S == nil:
	case dec.YParity == nil || dec.R == nil || dec.S == nil:
		return nil, errSignatureFields
	default:
		r, err := quantity256("r", dec.R)
		if err != nil {
			return nil, err
		}
		s, err := quantity256("s", dec.S)
		if err != nil {
			return nil, err
		}
		v := new(big.Int).SetUint64(uint64(*dec.YParity))
		inner.setSignatureValues(inner.chainID(), v, r.ToBig(), s.ToBig())
	}
	return NewTx(inner), nil
}

func (dec *txJSON) dynamicFeeTx() (*DynamicFeeTx, error) {
	var (
		itx DynamicFeeTx
		err error
	)
	if itx.ChainID, err = quantityBig("chainId", dec.ChainID); err != nil {
		return nil, err
	}
	if dec.Nonce == nil {
		return nil, errors.New("missing required field 'nonce' in transaction")
	}
	itx.Nonce = uint64(*dec.Nonce)
	if itx.GasTipCap, err = quantityBig("maxPriorityFeePerGas", dec.MaxPriorityFeePerGas); err != nil {
		return nil, err
	}
	if itx.GasFeeCap, err = quantityBig("maxFeePerGas", dec.MaxFeePerGas); err != nil {
		return nil, err
	}
	if dec.GasLimit == nil {
		return nil, errors.New("missing required field 'gasLimit' in transaction")
	}
	itx.Gas = uint64(*dec.GasLimit)
	itx.To = dec.Destination
	if itx.Value, err = quantityBig("amount", dec.Amount); err != nil {
		return nil, err
	}
	if dec.Data != nil {
		itx.Data = *dec.Data
	}
	if dec.AccessList != nil {
		itx.AccessList = *dec.AccessList
	}
	if dec.AuthorizationList != nil {
		return nil, errors.New("'authorizationList' is not allowed in a dynamic fee transaction")
	}
	return &itx, nil
}

func (dec *txJSON) setCodeTx() (*SetCodeTx, error) {
	var (
		itx SetCodeTx
		err error
	)
	if itx.ChainID, err = quantity256("chainId", dec.ChainID); err != nil {
		return nil, err
	}
	if dec.Nonce == nil {
		return nil, errors.New("missing required field 'nonce' in transaction")
	}
	itx.Nonce = uint64(*dec.Nonce)
	if itx.GasTipCap, err = quantity256("maxPriorityFeePerGas", dec.MaxPriorityFeePerGas); err != nil {
		return nil, err
	}
	if itx.GasFeeCap, err = quantity256("maxFeePerGas", dec.MaxFeePerGas); err != nil {
		return nil, err
	}
	if dec.GasLimit == nil {
		return nil, errors.New("missing required field 'gasLimit' in transaction")
	}
	itx.Gas = uint64(*dec.GasLimit)
	if dec.Destination == nil {
		return nil, errors.New("missing required field 'destination' in transaction")
	}
	itx.To = *dec.Destination
	if itx.Value, err = quantity256("amount", dec.Amount); err != nil {
		return nil, err
	}
	if dec.Data != nil {
		itx.Data = *dec.Data
	}
	if dec.AccessList != nil {
		itx.AccessList = *dec.AccessList
	}
	itx.AuthList = dec.AuthorizationList
	return &itx, nil
}

func quantityBig(name string, v *math.HexOrDecimal256) (*big.Int, error) {
	if v == nil {
		return nil, fmt.Errorf("missing required field '%s' in transaction", name)
	}
	b := (*big.Int)(v)
	if b.Sign() < 0 {
		return nil, fmt.Errorf("'%s' value is negative", name)
	}
	return new(big.Int).Set(b), nil
}

func quantity256(name string, v *math.HexOrDecimal256) (*uint256.Int, error) {
	b, err := quantityBig(name, v)
	if err != nil {
		return nil, err
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("'%s' value overflows uint256", name)
	}
	return u, nil
}
