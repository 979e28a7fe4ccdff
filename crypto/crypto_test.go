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

package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-txutil/common"
)

var testAddrHex = "970e8128ab834e8eac17ab8e3812f010678cf791"
var testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"

// These tests are sanity checks.
// They should ensure that we don't e.g. use Sha3-224 instead of Sha3-256
// and that the sha3 library uses keccak-f permutation.
func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	checkhash(t, "Sha3-256-array", func(in []byte) []byte { h := Keccak256Hash(in); return h[:] }, msg, exp)
	checkhash(t, "Sha3-256-slice", func(in []byte) []byte { return Keccak256(in) }, msg, exp)
	checkhash(t, "Sha3-256-multi", func(in []byte) []byte { return Keccak256(in[:1], in[1:]) }, msg, exp)
}

func TestKeccak256Hasher(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	hasher := NewKeccakState()
	checkhash(t, "Sha3-256-with-hasher", func(in []byte) []byte {
		hasher.Reset()
		hasher.Write(in)
		h := make([]byte, 32)
		hasher.Read(h)
		return h
	}, msg, exp)
}

func TestToECDSAErrors(t *testing.T) {
	if _, err := HexToECDSA("0000000000000000000000000000000000000000000000000000000000000000"); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Fatalf("HexToECDSA should've returned ErrInvalidPrivateKey, got %v", err)
	}
	if _, err := HexToECDSA("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Fatalf("HexToECDSA should've returned ErrInvalidPrivateKey, got %v", err)
	}
	if _, err := HexToECDSA("0x1234"); err == nil {
		t.Fatal("HexToECDSA accepted a short key")
	}
	if _, err := HexToECDSA("zz9c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"); err == nil {
		t.Fatal("HexToECDSA accepted invalid hex")
	}
	if _, err := ToECDSA(make([]byte, 31)); err == nil {
		t.Fatal("ToECDSA accepted a 31 byte key")
	}
}

func TestHexToECDSAPrefix(t *testing.T) {
	k1, err := HexToECDSA(testPrivHex)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := HexToECDSA(" 0x" + testPrivHex + "\n")
	if err != nil {
		t.Fatal(err)
	}
	if k1.D.Cmp(k2.D) != 0 {
		t.Fatal("prefixed key differs")
	}
}

func TestSign(t *testing.T) {
	key, _ := HexToECDSA(testPrivHex)
	addr := common.HexToAddress(testAddrHex)

	msg := Keccak256([]byte("foo"))
	sig, err := Sign(msg, key)
	if err != nil {
		t.Fatalf("Sign error: %s", err)
	}
	recoveredPub, err := Ecrecover(msg, sig)
	if err != nil {
		t.Fatalf("ECRecover error: %s", err)
	}
	recoveredAddr := common.BytesToAddress(Keccak256(recoveredPub[1:])[12:])
	if addr != recoveredAddr {
		t.Errorf("Address mismatch: want: %x have: %x", addr, recoveredAddr)
	}
	if keyAddr := PubkeyToAddress(key.PublicKey); addr != keyAddr {
		t.Errorf("Address mismatch: want: %x have: %x", addr, keyAddr)
	}
}

func TestSignDeterministic(t *testing.T) {
	key, _ := HexToECDSA(testPrivHex)
	msg := Keccak256([]byte("foo"))
	sig1, err := Sign(msg, key)
	if err != nil {
		t.Fatal(err)
	}
	sig2, _ := Sign(msg, key)
	if !bytes.Equal(sig1, sig2) {
		t.Fatal("signatures differ for the same key and hash")
	}
	s := new(uint256.Int).SetBytes(sig1[32:64])
	if s.Gt(secp256k1halfN) {
		t.Fatal("signature has high s")
	}
}

func TestInvalidSign(t *testing.T) {
	if _, err := Sign(make([]byte, 1), nil); !errors.Is(err, ErrInvalidDigestLen) {
		t.Errorf("expected sign with hash 1 byte to error, got %v", err)
	}
	if _, err := Sign(make([]byte, 33), nil); !errors.Is(err, ErrInvalidDigestLen) {
		t.Errorf("expected sign with hash 33 byte to error, got %v", err)
	}
	if _, err := Sign(make([]byte, 32), nil); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Errorf("expected sign with nil key to error, got %v", err)
	}
}

func TestLoadECDSA(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		// good
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\r"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\r\n"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\n"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\r"},
		// bad
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcde",
			err:   "key file too short, want 64 hex characters",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcde\n",
			err:   "key file too short, want 64 hex characters",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdeX",
			err:   "invalid hex data for private key",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdefX",
			err:   "invalid character 'X' at end of key file",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\n\n",
			err:   "key file too long, want 64 hex characters",
		},
	}

	for _, test := range tests {
		f := filepath.Join(t.TempDir(), "loadecdsa_test.txt")
		if err := os.WriteFile(f, []byte(test.input), 0600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadECDSA(f)
		switch {
		case err != nil && test.err == "":
			t.Fatalf("unexpected error for input %q:\n  %v", test.input, err)
		case err != nil && err.Error() != test.err:
			t.Fatalf("wrong error for input %q:\n  %v", test.input, err)
		case err == nil && test.err != "":
			t.Fatalf("LoadECDSA did not return error for input %q", test.input)
		}
	}
}

func TestValidateSignatureValues(t *testing.T) {
	check := func(expected bool, v byte, r, s *uint256.Int) {
		if ValidateSignatureValues(v, r, s, false) != expected {
			t.Errorf("mismatch for v: %d r: %d s: %d want: %v", v, r, s, expected)
		}
	}
	minusOne := uint256.NewInt(0).SubUint64(uint256.NewInt(0), 1)
	one := uint256.NewInt(1)
	zero := uint256.NewInt(0)
	secp256k1nMinus1 := new(uint256.Int).Sub(secp256k1N, one)

	// correct v,r,s
	check(true, 0, one, one)
	check(true, 1, one, one)
	// incorrect v, correct r,s,
	check(false, 2, one, one)
	check(false, 3, one, one)

	// incorrect v, combinations of incorrect/correct r,s at lower limit
	check(false, 2, zero, zero)
	check(false, 2, zero, one)
	check(false, 2, one, zero)
	check(false, 2, one, one)

	// correct v for any combination of incorrect r,s
	check(false, 0, zero, zero)
	check(false, 0, zero, one)
	check(false, 0, one, zero)

	check(false, 1, zero, zero)
	check(false, 1, zero, one)
	check(false, 1, one, zero)

	// correct sig with max r,s
	check(true, 0, secp256k1nMinus1, secp256k1nMinus1)
	// correct v, combinations of incorrect r,s at upper limit
	check(false, 0, secp256k1N, secp256k1nMinus1)
	check(false, 0, secp256k1nMinus1, secp256k1N)
	check(false, 0, secp256k1N, secp256k1N)

	// current callers ensures r,s cannot be negative, but let's test for that too
	// as crypto package could be used stand-alone
	check(false, 0, minusOne, one)
	check(false, 0, one, minusOne)

	// high s is only rejected when asked to
	if ValidateSignatureValues(0, one, secp256k1nMinus1, true) {
		t.Error("high s accepted with lowS set")
	}
	if ValidateSignatureValues(0, nil, one, false) {
		t.Error("nil r accepted")
	}
}

func checkhash(t *testing.T, name string, f func([]byte) []byte, msg, exp []byte) {
	sum := f(msg)
	if !bytes.Equal(exp, sum) {
		t.Fatalf("hash %s mismatch: want: %x have: %x", name, exp, sum)
	}
}

func TestPythonIntegration(t *testing.T) {
	kh := "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
	k0, _ := HexToECDSA(kh)

	msg0 := Keccak256([]byte("foo"))
	sig0, _ := Sign(msg0, k0)

	msg1 := common.FromHex("00000000000000000000000000000000")
	msg1 = Keccak256(msg1)
	sig1, _ := Sign(msg1, k0)

	t.Logf("msg: %x, privkey: %s sig: %x\n", msg0, kh, sig0)
	t.Logf("msg: %x, privkey: %s sig: %x\n", msg1, kh, sig1)
}

func TestFromECDSARoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	raw := FromECDSA(key)
	if len(raw) != 32 {
		t.Fatalf("wrong length %d", len(raw))
	}
	key2, err := ToECDSA(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(key.D, key2.D) {
		t.Fatal("key mismatch after round trip")
	}
	pub := FromECDSAPub(&key.PublicKey)
	if x, y := S256().Unmarshal(pub); x.Cmp(key.X) != 0 || y.Cmp(key.Y) != 0 {
		t.Fatal("public key mismatch after round trip")
	}
	if x, _ := S256().Unmarshal(hexutil.MustDecode("0x04")); x != nil {
		t.Fatal("short public key accepted")
	}
}
