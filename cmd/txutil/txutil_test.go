// Copyright 2025 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"crypto/ecdsa"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-txutil/common"
	"github.com/sunyihoo/go-txutil/crypto"
	"github.com/sunyihoo/go-txutil/txutil"
)

const (
	testKey  = "34954993d403229ee2e01cf6fa8222224935bc47f9534b0c0ea8054764375501"
	testAddr = "0x76da6b3693efd723aa7e36d3ef41ac7663fb1af8"

	feeMarketFields = `[
  0x539
  0x1
  0x163ef001
  0x81527974c
  0xf6f5
  0x9530901da626663c0679615aa345d88f059c2919
  0x
  0xd09de08b
  []
]`
	feeMarketPayload  = "0xee8205390184163ef00185081527974c82f6f5949530901da626663c0679615aa345d88f059c29198084d09de08bc0"
	feeMarketUnsigned = "0x02ee8205390184163ef00185081527974c82f6f5949530901da626663c0679615aa345d88f059c29198084d09de08bc0"
	feeMarketSigned   = "0x02f8718205390184163ef00185081527974c82f6f5949530901da626663c0679615aa345d88f059c29198084d09de08bc001a0b89787594b8ee2acbff645b1a263c153a118f4c6ff64bdc500a9f5ff72cca8bea079bc37ff9b44a73a26eec8dcfa2a6b71526b02a3c999677872b69159d6553b42"

	authTuple  = "0xd982053994dac17f958d2ee523a2206206994597c13d831ec7c0"
	authSigned = "0xf85c82053994dac17f958d2ee523a2206206994597c13d831ec7c080a085069a379eb7a8796a107d0aea0d2ac67c5de41b5dbde3196101110a8c25488ea01912e39d15822bb07bdf58721c7d8fa8a5280250c47b063455c8ed6cce8f282d"
)

// runTxutil runs the command line with the given standard input and returns
// what it printed to standard output.
func runTxutil(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	app.Reader = strings.NewReader(stdin)
	app.Writer = out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"txutil", "--verbosity", "0"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := runTxutil(t, stdin, args...)
	require.NoError(t, err, "txutil %v", args)
	return out
}

func TestRLPCommands(t *testing.T) {
	require.Equal(t, feeMarketPayload+"\n", mustRun(t, feeMarketFields, "encode-rlp"))
	require.Equal(t, "0x820123\n", mustRun(t, "", "encode-rlp", "0x123"))

	out := mustRun(t, "", "decode-rlp", "0xc6820539c0807f")
	require.Equal(t, "[\n  0x0539\n  []\n  0x\n  0x7f\n]\n", out)
	out = mustRun(t, "0xc6820539c0807f\n", "decode-rlp", "--trim-zeros")
	require.Equal(t, "[\n  0x539\n  []\n  0x\n  0x7f\n]\n", out)

	// The printed tree parses back to the same encoding.
	out = mustRun(t, "", "decode-rlp", feeMarketPayload)
	require.Equal(t, feeMarketPayload+"\n", mustRun(t, out, "encode-rlp"))

	_, err := runTxutil(t, "[ 0x01", "encode-rlp")
	require.ErrorContains(t, err, "syntax error")
	_, err = runTxutil(t, "", "decode-rlp", "0x8101")
	require.Error(t, err)
	_, err = runTxutil(t, " \n", "decode-rlp")
	require.ErrorIs(t, err, errNoInput)
}

func TestTransactionCommands(t *testing.T) {
	unsigned := mustRun(t, feeMarketFields, "encode-tx", "--tx-type", "2")
	require.Equal(t, feeMarketUnsigned+"\n", unsigned)

	signed := mustRun(t, unsigned, "sign-tx", "--private-key", testKey)
	require.Equal(t, feeMarketSigned+"\n", signed)

	// Encoding and signing in one step gives the same result.
	require.Equal(t, signed, mustRun(t, feeMarketFields, "encode-tx", "-t", "0x02", "--signer", testKey))

	out := mustRun(t, signed, "recover-address")
	hash := crypto.Keccak256Hash(common.FromHex(feeMarketUnsigned))
	require.Equal(t, "Signing Hash: "+hash.Hex()+"\nAddress: "+testAddr+"\n", out)

	out = mustRun(t, signed, "decode-tx")
	require.True(t, strings.HasPrefix(out, "Transaction Type: 0x02\nTransaction Payload:\n[\n  0x0539\n  0x01\n"), out)
	require.Contains(t, out, "\n  []\n  0x01\n  0xb89787594b8ee2acbff645b1a263c153a118f4c6ff64bdc500a9f5ff72cca8be\n")
}

func TestTransactionCommandErrors(t *testing.T) {
	_, err := runTxutil(t, feeMarketFields, "encode-tx")
	require.ErrorIs(t, err, errMissingTxType)

	_, err = runTxutil(t, feeMarketFields, "encode-tx", "--tx-type", "3")
	require.ErrorContains(t, err, "transaction type not supported")

	_, err = runTxutil(t, "[ 0x539 0x1 ]", "encode-tx", "--tx-type", "2")
	require.ErrorContains(t, err, "wrong number of fields")

	_, err = runTxutil(t, feeMarketFields, "encode-tx", "--tx-type", "2", "--authorizer", testKey)
	require.ErrorContains(t, err, "requires JSON input")

	_, err = runTxutil(t, feeMarketUnsigned, "sign-tx")
	require.ErrorContains(t, err, "missing key")

	_, err = runTxutil(t, feeMarketUnsigned, "sign-tx", "--private-key", "0x1234")
	require.Error(t, err)

	_, err = runTxutil(t, feeMarketUnsigned, "recover-address")
	require.ErrorContains(t, err, "not signed")
}

func TestKeyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, os.WriteFile(file, []byte(testKey+"\n"), 0600))

	require.Equal(t, feeMarketSigned+"\n", mustRun(t, feeMarketUnsigned, "sign-tx", "--keyfile", file))
	require.Equal(t, feeMarketSigned+"\n", mustRun(t, feeMarketFields, "encode-tx", "--tx-type", "2", "--signer.keyfile", file))

	_, err := runTxutil(t, feeMarketUnsigned, "sign-tx", "--keyfile", file, "--private-key", testKey)
	require.ErrorContains(t, err, "can't be used at the same time")
}

func TestEncodeTxJSON(t *testing.T) {
	doc, err := os.ReadFile(filepath.Join("..", "..", "txutil", "testdata", "eip7702_unsigned.json"))
	require.NoError(t, err)

	key, err := txutil.ParseKey(testKey)
	require.NoError(t, err)
	want, err := txutil.EncodeTransactionJSON(0, doc, txutil.JSONOptions{
		Signer:      key,
		Authorizers: []*ecdsa.PrivateKey{key, key},
	})
	require.NoError(t, err)

	out := mustRun(t, string(doc), "encode-tx", "--signer", testKey, "--authorizer", testKey, "--authorizer", testKey)
	require.Equal(t, want.String()+"\n", out)

	// The magic byte reaches the authorization signatures, zero included.
	zero := byte(0)
	wantZero, err := txutil.EncodeTransactionJSON(0, doc, txutil.JSONOptions{
		Signer:      key,
		Authorizers: []*ecdsa.PrivateKey{key, key},
		Magic:       &zero,
	})
	require.NoError(t, err)
	out = mustRun(t, string(doc), "encode-tx", "--magic", "0x00", "--signer", testKey, "--authorizer", testKey, "--authorizer", testKey)
	require.Equal(t, wantZero.String()+"\n", out)
	require.NotEqual(t, want.String()+"\n", out)

	_, err = runTxutil(t, string(doc), "encode-tx", "--signer", testKey, "--authorizer", testKey)
	require.ErrorContains(t, err, "number of authorizer keys")
}

func TestAuthorizationCommands(t *testing.T) {
	require.Equal(t, authSigned+"\n", mustRun(t, authTuple, "sign-auth", "-k", testKey))
	require.Equal(t, authSigned+"\n", mustRun(t, authTuple, "sign-auth", "-k", testKey, "--magic", "5"))

	out := mustRun(t, authSigned, "recover-authority")
	require.Equal(t, "Signing Hash: 0x9a7a8c87a0d97b1e1828ed9fd2685f6b5c697acaa7d35583ebd35035c4523967\nAuthority: "+testAddr+"\n", out)

	// Another domain byte signs a different hash; recovery needs the same byte.
	other := mustRun(t, authTuple, "sign-auth", "-k", testKey, "--magic", "0x06")
	require.NotEqual(t, authSigned+"\n", other)
	out = mustRun(t, other, "recover-authority", "-m", "6")
	require.True(t, strings.HasSuffix(out, "Authority: "+testAddr+"\n"), out)
	out = mustRun(t, other, "recover-authority")
	require.False(t, strings.HasSuffix(out, "Authority: "+testAddr+"\n"), out)

	_, err := runTxutil(t, authTuple, "sign-auth", "-k", testKey, "--magic", "0x100")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Signing]\nMagic = 6\nDefaultTxType = 2\n"), 0644))

	// The file sets the magic byte and the type used for field lists.
	other := mustRun(t, authTuple, "--config", file, "sign-auth", "-k", testKey)
	require.NotEqual(t, authSigned+"\n", other)
	require.Equal(t, authSigned+"\n", mustRun(t, authTuple, "--config", file, "sign-auth", "-k", testKey, "--magic", "5"))
	require.Equal(t, feeMarketUnsigned+"\n", mustRun(t, feeMarketFields, "--config", file, "encode-tx"))

	out := mustRun(t, "", "--config", file, "dumpconfig")
	require.Contains(t, out, "[Signing]")
	require.Contains(t, out, "Magic = 6")
	require.Contains(t, out, "DefaultTxType = 2")

	out = mustRun(t, "", "dumpconfig")
	require.Contains(t, out, "Magic = 5")
	require.NotContains(t, out, "DefaultTxType")

	dump := filepath.Join(dir, "dump.toml")
	mustRun(t, "", "--lenient", "--config", file, "dumpconfig", dump)
	b, err := os.ReadFile(dump)
	require.NoError(t, err)
	require.Contains(t, string(b), "Lenient = true")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[Signing]\nMagik = 6\n"), 0644))
	_, err = runTxutil(t, "", "--config", bad, "dumpconfig")
	require.ErrorContains(t, err, "field 'Magik' is not defined")
}

func TestLenient(t *testing.T) {
	const padded = "0x02ef830005390184163ef00185081527974c82f6f5949530901da626663c0679615aa345d88f059c29198084d09de08bc0"

	_, err := runTxutil(t, padded, "decode-tx")
	require.Error(t, err)

	out := mustRun(t, padded, "--lenient", "decode-tx")
	require.Contains(t, out, "\n  0x000539\n")
}
