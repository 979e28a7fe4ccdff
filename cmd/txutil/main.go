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

// txutil is a command line tool for RLP values, typed transactions and set
// code authorizations. It is meant for producing test transactions.
package main

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sunyihoo/go-txutil/core/types"
	"github.com/sunyihoo/go-txutil/internal/debug"
	"github.com/sunyihoo/go-txutil/internal/flags"
	"github.com/sunyihoo/go-txutil/log"
	"github.com/sunyihoo/go-txutil/txutil"
	"github.com/urfave/cli/v2"
)

var errNoInput = errors.New("no input given")

var (
	lenientFlag = &cli.BoolFlag{
		Name:     "lenient",
		Usage:    "Accept non-canonical encodings (leading zero bytes, oversized length prefixes)",
		Category: flags.EncodingCategory,
	}
	magicFlag = &flags.ByteFlag{
		Name:     "magic",
		Aliases:  []string{"m"},
		Usage:    "Magic byte prepended to authorization payloads before hashing",
		Value:    types.AuthorizationMagic,
		Category: flags.SigningCategory,
	}
	privateKeyFlag = &cli.StringFlag{
		Name:     "private-key",
		Aliases:  []string{"k"},
		Usage:    "Hex encoded secp256k1 private key",
		Category: flags.SigningCategory,
	}
	keyFileFlag = &flags.PathFlag{
		Name:     "keyfile",
		Usage:    "File holding the hex encoded private key",
		Category: flags.SigningCategory,
	}
)

var app = flags.NewApp("RLP and typed transaction toolkit")

func init() {
	app.Flags = append([]cli.Flag{configFileFlag, lenientFlag}, debug.Flags...)
	app.Commands = []*cli.Command{
		encodeRLPCommand,
		decodeRLPCommand,
		encodeTxCommand,
		decodeTxCommand,
		signTxCommand,
		recoverAddressCommand,
		signAuthCommand,
		recoverAuthorityCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		if log.Root().Enabled(context.Background(), log.LevelError) {
			log.Error("Command failed", "err", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// readInput returns the first argument, or the standard input if no
// argument is given.
func readInput(ctx *cli.Context) (string, error) {
	var input string
	if ctx.Args().Present() {
		input = ctx.Args().First()
	} else {
		b, err := io.ReadAll(ctx.App.Reader)
		if err != nil {
			return "", err
		}
		input = string(b)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errNoInput
	}
	return input, nil
}

func makeCodec(cfg txutilConfig) txutil.Codec {
	return txutil.Codec{AllowNonCanonical: cfg.Signing.Lenient}
}

// loadKey returns the key given by a hex flag or a key file flag. It returns
// nil if neither is set.
func loadKey(ctx *cli.Context, hexFlag *cli.StringFlag, fileFlag *flags.PathFlag) (*ecdsa.PrivateKey, error) {
	if err := flags.CheckExclusive(ctx, hexFlag, fileFlag); err != nil {
		return nil, err
	}
	switch {
	case ctx.IsSet(hexFlag.Name):
		return txutil.ParseKey(ctx.String(hexFlag.Name))
	case ctx.IsSet(fileFlag.Name):
		return txutil.LoadKey(ctx.String(fileFlag.Name))
	}
	return nil, nil
}

// requireKey is loadKey for commands that cannot run without a key.
func requireKey(ctx *cli.Context, hexFlag *cli.StringFlag, fileFlag *flags.PathFlag) (*ecdsa.PrivateKey, error) {
	key, err := loadKey(ctx, hexFlag, fileFlag)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, fmt.Errorf("missing key, use --%s or --%s", hexFlag.Name, fileFlag.Name)
	}
	return key, nil
}
