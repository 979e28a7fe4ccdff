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
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sunyihoo/go-txutil/internal/flags"
	"github.com/sunyihoo/go-txutil/rlp"
	"github.com/sunyihoo/go-txutil/rlp/rlpfmt"
	"github.com/sunyihoo/go-txutil/txutil"
	"github.com/urfave/cli/v2"
)

var errMissingTxType = errors.New("missing transaction type, use --tx-type or Signing.DefaultTxType")

var (
	txTypeFlag = &flags.ByteFlag{
		Name:     "tx-type",
		Aliases:  []string{"t"},
		Usage:    "EIP-2718 transaction type (2 or 4)",
		Category: flags.EncodingCategory,
	}
	signerFlag = &cli.StringFlag{
		Name:     "signer",
		Usage:    "Hex encoded private key signing the transaction",
		Category: flags.SigningCategory,
	}
	signerFileFlag = &flags.PathFlag{
		Name:     "signer.keyfile",
		Usage:    "File holding the private key signing the transaction",
		Category: flags.SigningCategory,
	}
	authorizerFlag = &cli.StringSliceFlag{
		Name:     "authorizer",
		Usage:    "Hex encoded private key signing an authorization, one per list entry in order (JSON input only)",
		Category: flags.SigningCategory,
	}

	encodeTxCommand = &cli.Command{
		Action:    encodeTx,
		Name:      "encode-tx",
		Usage:     "Encode a typed transaction from bracketed hex values or JSON",
		ArgsUsage: "[<fields>]",
		Flags:     []cli.Flag{txTypeFlag, signerFlag, signerFileFlag, authorizerFlag, magicFlag},
		Description: `
The input is either a JSON document or the payload field list in the
bracketed notation of encode-rlp. Field lists are checked against the
schema of the transaction type; with --signer the result is signed.

JSON documents carry the transaction fields by name. Authorizations are
signed with the --authorizer keys, and the transaction with --signer,
unless the document is signed already.`,
	}
	decodeTxCommand = &cli.Command{
		Action:    decodeTx,
		Name:      "decode-tx",
		Usage:     "Print the type and payload fields of an encoded transaction",
		ArgsUsage: "[<hex>]",
		Flags:     []cli.Flag{trimZerosFlag},
	}
	signTxCommand = &cli.Command{
		Action:    signTx,
		Name:      "sign-tx",
		Usage:     "Sign an encoded transaction, e.g. as produced by encode-tx",
		ArgsUsage: "[<hex>]",
		Flags:     []cli.Flag{privateKeyFlag, keyFileFlag},
	}
	recoverAddressCommand = &cli.Command{
		Action:    recoverAddress,
		Name:      "recover-address",
		Usage:     "Print the signing hash and sender of a signed transaction",
		ArgsUsage: "[<hex>]",
	}
)

func encodeTx(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	signer, err := loadKey(ctx, signerFlag, signerFileFlag)
	if err != nil {
		return err
	}
	var txType byte
	if ctx.IsSet(txTypeFlag.Name) {
		txType = flags.GlobalByte(ctx, txTypeFlag.Name)
	}

	var enc hexutil.Bytes
	if strings.HasPrefix(input, "{") {
		authorizers, err := txutil.ParseKeys(ctx.StringSlice(authorizerFlag.Name))
		if err != nil {
			return err
		}
		enc, err = txutil.EncodeTransactionJSON(txType, []byte(input), txutil.JSONOptions{
			Signer:      signer,
			Authorizers: authorizers,
			Magic:       &cfg.Signing.Magic,
		})
		if err != nil {
			return err
		}
	} else {
		if len(ctx.StringSlice(authorizerFlag.Name)) > 0 {
			return fmt.Errorf("--%s requires JSON input", authorizerFlag.Name)
		}
		if txType == 0 {
			txType = cfg.Signing.DefaultTxType
		}
		if txType == 0 {
			return errMissingTxType
		}
		fields, err := rlpfmt.Parse([]byte(input))
		if err != nil {
			return err
		}
		codec := makeCodec(cfg)
		if enc, err = codec.BuildTransaction(txType, fields); err != nil {
			return err
		}
		if signer != nil {
			if enc, err = codec.SignTransaction(enc.String(), signer); err != nil {
				return err
			}
		}
	}
	fmt.Fprintln(ctx.App.Writer, enc)
	return nil
}

func decodeTx(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	env, err := makeCodec(cfg).DecodeTransaction(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Transaction Type: %#02x\n", env.Type())
	fmt.Fprintln(ctx.App.Writer, "Transaction Payload:")
	return printValue(ctx, env.Fields(), ctx.Bool(trimZerosFlag.Name))
}

func signTx(ctx *cli.Context) error {
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
	enc, err := makeCodec(cfg).SignTransaction(input, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, enc)
	return nil
}

func recoverAddress(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	addr, hash, err := makeCodec(cfg).RecoverAddress(input)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, "Signing Hash:", hash.Hex())
	fmt.Fprintln(ctx.App.Writer, "Address:", addr.Hex())
	return nil
}

// printValue writes v in bracketed notation followed by a newline.
func printValue(ctx *cli.Context, v rlp.Value, trimZeros bool) error {
	p := rlpfmt.Printer{TrimZeros: trimZeros}
	if err := p.Fprint(ctx.App.Writer, v); err != nil {
		return err
	}
	_, err := fmt.Fprintln(ctx.App.Writer)
	return err
}
