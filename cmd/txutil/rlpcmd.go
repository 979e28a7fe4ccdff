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

	"github.com/sunyihoo/go-txutil/internal/flags"
	"github.com/sunyihoo/go-txutil/log"
	"github.com/sunyihoo/go-txutil/rlp/rlpfmt"
	"github.com/sunyihoo/go-txutil/txutil"
	"github.com/urfave/cli/v2"
)

var (
	trimZerosFlag = &cli.BoolFlag{
		Name:     "trim-zeros",
		Usage:    "Print byte strings without leading zero bytes",
		Category: flags.EncodingCategory,
	}

	encodeRLPCommand = &cli.Command{
		Action:    encodeRLP,
		Name:      "encode-rlp",
		Usage:     "Encode bracketed hex values as RLP",
		ArgsUsage: "[<values>]",
		Description: `
Encodes a single hex value or a nested list of whitespace separated hex
values enclosed in '[' and ']'. The input is read from the first argument
or from stdin, e.g.

    [
      0x1
      0x2
      [ 0x3 0x4 ]
      0x
      []
    ]`,
	}
	decodeRLPCommand = &cli.Command{
		Action:    decodeRLP,
		Name:      "decode-rlp",
		Usage:     "Decode RLP hex into bracketed hex values",
		ArgsUsage: "[<hex>]",
		Flags:     []cli.Flag{trimZerosFlag},
	}
)

func encodeRLP(ctx *cli.Context) error {
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	v, err := rlpfmt.Parse([]byte(input))
	if err != nil {
		return err
	}
	enc := txutil.Encode(v)
	log.Debug("Encoded RLP value", "size", len(enc))
	fmt.Fprintln(ctx.App.Writer, enc)
	return nil
}

func decodeRLP(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	v, err := makeCodec(cfg).Decode(input)
	if err != nil {
		return err
	}
	return printValue(ctx, v, ctx.Bool(trimZerosFlag.Name))
}
