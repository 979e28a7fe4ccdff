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
	"fmt"

	"github.com/urfave/cli/v2"
)

var (
	signAuthCommand = &cli.Command{
		Action:    signAuth,
		Name:      "sign-auth",
		Usage:     "Sign an encoded EIP-7702 authorization tuple",
		ArgsUsage: "[<hex>]",
		Flags:     []cli.Flag{privateKeyFlag, keyFileFlag, magicFlag},
		Description: `
The input is the RLP encoding of [chainId, address, nonce], or of a signed
six field tuple whose signature is replaced. The nonce is an empty list when
absent. The output is the encoded signed tuple.`,
	}
	recoverAuthorityCommand = &cli.Command{
		Action:    recoverAuthority,
		Name:      "recover-authority",
		Usage:     "Print the signing hash and authority of a signed authorization tuple",
		ArgsUsage: "[<hex>]",
		Flags:     []cli.Flag{magicFlag},
	}
)

func signAuth(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	key, err := requireKey(ctx, privateKeyFlag, keyFileFlag)
	if err != nil {
		return err
	}
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	enc, err := makeCodec(cfg).SignAuthorization(cfg.Signing.Magic, input, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, enc)
	return nil
}

func recoverAuthority(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	addr, hash, err := makeCodec(cfg).RecoverAuthority(cfg.Signing.Magic, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, "Signing Hash:", hash.Hex())
	fmt.Fprintln(ctx.App.Writer, "Authority:", addr.Hex())
	return nil
}
