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

/*
Package rlp implements the RLP serialization format over an untyped value tree.

The purpose of RLP (Recursive Linear Prefix) is to encode arbitrarily nested arrays of
binary data. RLP is the main encoding method used to serialize objects in Ethereum. The
only purpose of RLP is to encode structure; encoding specific atomic data types (e.g.
strings, ints, floats) is left up to higher-order protocols. In Ethereum integers must be
represented in big endian binary form with no leading zeroes (thus making the integer
value zero equivalent to the empty string).

# Values

A Value is either a byte string or a list of values:

	v := rlp.NewList(
		rlp.NewString([]byte{0x01}),
		rlp.NewList(),
		rlp.NewString(nil),
	)

Integers and booleans are carried as byte strings. The helpers in canonical.go convert
them to and from their unique minimal representation.

# Encoding rules

A single byte in the range [0x00, 0x7F] is its own encoding. A string of 0-55 bytes is
prefixed by 0x80 plus its length. Longer strings are prefixed by 0xB7 plus the length of
the big-endian length, followed by the length. Lists use the same scheme with base
prefixes 0xC0 and 0xF7, their payload being the concatenation of the encoded items.

# Decoding rules

DecodeValue reads exactly one value and rejects trailing input. The decoder is strict by
default: a size that could have been expressed in a shorter form and a length with
leading zero bytes are both rejected with ErrCanonSize. Setting AllowNonCanonical on a
Decoder relaxes these checks. Truncated input and element sizes that overrun the
enclosing list are always errors.

Decoding and encoding use an explicit work stack, so the nesting depth of a value is
bounded by memory rather than by the goroutine stack.
*/
package rlp
