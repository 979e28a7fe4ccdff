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

package flags

import (
	"flag"
	"os"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestPathExpansion(t *testing.T) {
	home := HomeDir()
	tests := map[string]string{
		"/home/someuser/tmp": "/home/someuser/tmp",
		"~/tmp":              home + "/tmp",
		"~thisOtherUser/b/":  "~thisOtherUser/b",
		"$DDDXXX/a/b":        "/tmp/a/b",
		"/a/b/":              "/a/b",
		"keys/../key.hex":    "key.hex",
	}
	os.Setenv("DDDXXX", "/tmp")
	defer os.Unsetenv("DDDXXX")
	for test, expected := range tests {
		got := expandPath(test)
		if got != expected {
			t.Errorf(`test %s, got %s, expected %s\n`, test, got, expected)
		}
	}
}

func TestByteValue(t *testing.T) {
	for input, want := range map[string]byte{
		"5":    0x05,
		"0x05": 0x05,
		"0xff": 0xff,
		"255":  0xff,
		"0":    0x00,
	} {
		var b byteValue
		if err := b.Set(input); err != nil {
			t.Errorf("input %q: %v", input, err)
			continue
		}
		if byte(b) != want {
			t.Errorf("input %q: have %#x, want %#x", input, byte(b), want)
		}
	}
	for _, input := range []string{"256", "0x100", "-1", "five"} {
		var b byteValue
		if err := b.Set(input); err == nil {
			t.Errorf("input %q: expected error", input)
		}
	}
}

func newContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		if err := f.Apply(set); err != nil {
			t.Fatal(err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestByteFlag(t *testing.T) {
	magic := &ByteFlag{Name: "magic", Value: 0x05}
	ctx := newContext(t, []cli.Flag{magic}, "--magic", "0x07")
	if have := GlobalByte(ctx, magic.Name); have != 0x07 {
		t.Errorf("have %#x, want 0x07", have)
	}
	if have := magic.GetDefaultText(); have != "0x05" {
		t.Errorf("wrong default text %q", have)
	}

	magic = &ByteFlag{Name: "magic", Value: 0x05}
	ctx = newContext(t, []cli.Flag{magic})
	if have := GlobalByte(ctx, magic.Name); have != 0x05 {
		t.Errorf("have %#x, want default 0x05", have)
	}
}

func TestCheckExclusive(t *testing.T) {
	var (
		keyFlag  = &cli.StringFlag{Name: "key"}
		fileFlag = &PathFlag{Name: "keyfile"}
	)
	ctx := newContext(t, []cli.Flag{keyFlag, fileFlag}, "--key", "0x01")
	if err := CheckExclusive(ctx, keyFlag, fileFlag); err != nil {
		t.Errorf("single flag rejected: %v", err)
	}
	keyFlag, fileFlag = &cli.StringFlag{Name: "key"}, &PathFlag{Name: "keyfile"}
	ctx = newContext(t, []cli.Flag{keyFlag, fileFlag}, "--key", "0x01", "--keyfile", "key.hex")
	if err := CheckExclusive(ctx, keyFlag, fileFlag); err == nil {
		t.Error("conflicting flags accepted")
	}
}
