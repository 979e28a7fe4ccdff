// Copyright 2017 The go-ethereum Authors
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
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	testmsg    = hexutil.MustDecode("0xce0677bb30baa8cf067c88db9811f4333d131bf8bcf12fe7065d211dce971008")
	testsig    = hexutil.MustDecode("0x90f27b8b488db00b00606796d2987f6a5f59ae62ea05effe84fef5b8b0e549984a691139ad57a3f0b906637673aa2f63d1f55cb1a69199d4009eea23ceaddc9301")
	testpubkey = hexutil.MustDecode("0x04e32df42865e97135acfb65f3bae71bdc86f4d49150ad6a440b6f15878109880a0a2b2667f7e725ceea70c673093bf67663e0312623c8e091b13cf2c0f11ef652")
)

func TestEcrecover(t *testing.T) {
	pubkey, err := Ecrecover(testmsg, testsig)
	if err != nil {
		t.Fatalf("recover error: %s", err)
	}
	if !bytes.Equal(pubkey, testpubkey) {
		t.Errorf("pubkey mismatch: want: %x have: %x", testpubkey, pubkey)
	}
}

func TestEcrecoverInvalidInput(t *testing.T) {
	if _, err := Ecrecover(testmsg, testsig[:64]); !errors.Is(err, ErrInvalidSignatureLen) {
		t.Errorf("got %v, want ErrInvalidSignatureLen", err)
	}
	if _, err := Ecrecover(testmsg[:31], testsig); !errors.Is(err, ErrInvalidDigestLen) {
		t.Errorf("got %v, want ErrInvalidDigestLen", err)
	}
	sig := bytes.Clone(testsig)
	sig[64] = 4
	if _, err := Ecrecover(testmsg, sig); !errors.Is(err, ErrInvalidRecoveryID) {
		t.Errorf("got %v, want ErrInvalidRecoveryID", err)
	}
}

func TestSignRecoverRandom(t *testing.T) {
	const runs = 50

	for i := 0; i < runs; i++ {
		key, err := GenerateKey()
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		msg := Keccak256([]byte{byte(i)})
		sig, err := Sign(msg, key)
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		pub, err := Ecrecover(msg, sig)
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if !bytes.Equal(pub, FromECDSAPub(&key.PublicKey)) {
			t.Fatalf("iteration %d: recovered wrong key", i)
		}
	}
}

func BenchmarkEcrecoverSignature(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Ecrecover(testmsg, testsig); err != nil {
			b.Fatal("ecrecover error", err)
		}
	}
}
