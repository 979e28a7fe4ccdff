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
	"math/big"
	"math/rand"
	"testing"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/crypto"
)

// These tests compare encodings against the go-ethereum implementation of
// the same transaction types.

func TestDynamicFeeTxMatchesGeth(t *testing.T) {
	gethKey := gethcrypto.ToECDSAUnsafe(crypto.FromECDSA(testKey))
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 10; i++ {
		var (
			to      = common.BytesToAddress(randomBytes(rng, 20))
			data    = randomBytes(rng, rng.Intn(64))
			chainID = big.NewInt(rng.Int63n(1 << 40))
			tip     = new(big.Int).SetBytes(randomBytes(rng, rng.Intn(16)))
			fee     = new(big.Int).SetBytes(randomBytes(rng, rng.Intn(16)))
			value   = new(big.Int).SetBytes(randomBytes(rng, rng.Intn(32)))
			slot    = common.BytesToHash(randomBytes(rng, 32))
		)
		ours := mustSignNewTx(t, testKey, &DynamicFeeTx{
			ChainID:    chainID,
			Nonce:      rng.Uint64() >> 1,
			GasTipCap:  tip,
			GasFeeCap:  fee,
			Gas:        rng.Uint64() >> 1,
			To:         &to,
			Value:      value,
			Data:       data,
			AccessList: AccessList{{Address: to, StorageKeys: []common.Hash{slot}}},
		})
		gethTo := gethcommon.Address(to)
		theirs, err := gethtypes.SignNewTx(gethKey, gethtypes.LatestSignerForChainID(chainID), &gethtypes.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     ours.Nonce(),
			GasTipCap: tip,
			GasFeeCap: fee,
			Gas:       ours.Gas(),
			To:        &gethTo,
			Value:     value,
			Data:      data,
			AccessList: gethtypes.AccessList{{
				Address:     gethTo,
				StorageKeys: []gethcommon.Hash{gethcommon.Hash(slot)},
			}},
		})
		require.NoError(t, err)

		want, err := theirs.MarshalBinary()
		require.NoError(t, err)
		have, err := ours.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, want, have)
		require.Equal(t, common.Hash(theirs.Hash()), ours.Hash())

		// And the other way around.
		var dec gethtypes.Transaction
		require.NoError(t, dec.UnmarshalBinary(have))
		from, err := gethtypes.Sender(gethtypes.LatestSignerForChainID(chainID), &dec)
		require.NoError(t, err)
		require.Equal(t, testAddr, common.Address(from))
	}
}

func TestSetCodeTxMatchesGeth(t *testing.T) {
	gethKey := gethcrypto.ToECDSAUnsafe(crypto.FromECDSA(testKey))
	// go-ethereum carries the authorization nonce as a plain integer, so
	// only transactions without authorizations can be compared byte for byte.
	to := common.HexToAddress("0x695461ef560fa4d3a3e7332c9bfcec261c11a1b6")
	ours := mustSignNewTx(t, testKey, &SetCodeTx{
		ChainID:   uint256.NewInt(1),
		Nonce:     10,
		GasTipCap: uint256.NewInt(373223425),
		GasFeeCap: uint256.NewInt(34714654540),
		Gas:       63221,
		To:        to,
		Value:     uint256.NewInt(0),
	})
	theirs, err := gethtypes.SignNewTx(gethKey, gethtypes.LatestSignerForChainID(big.NewInt(1)), &gethtypes.SetCodeTx{
		ChainID:   uint256.NewInt(1),
		Nonce:     10,
		GasTipCap: uint256.NewInt(373223425),
		GasFeeCap: uint256.NewInt(34714654540),
		Gas:       63221,
		To:        gethcommon.Address(to),
		Value:     uint256.NewInt(0),
		AuthList:  []gethtypes.SetCodeAuthorization{},
	})
	require.NoError(t, err)

	want, err := theirs.MarshalBinary()
	require.NoError(t, err)
	have, err := ours.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, want, have)
}

func TestKeccakMatchesGeth(t *testing.T) {
	data := []byte("typed transaction envelope")
	require.Equal(t, common.Hash(gethcrypto.Keccak256Hash(data)), crypto.Keccak256Hash(data))
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}
