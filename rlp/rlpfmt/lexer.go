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

package rlpfmt

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// stateFn is used through the lifetime of the
// lexer to parse the different values at the
// current state.
type stateFn func(*lexer) stateFn

// token is emitted when the lexer has discovered
// a new parsable token. These are delivered over
// the tokens channel of the lexer.
type token struct {
	typ    tokenType
	lineno int
	col    int
	text   string
}

// tokenType are the different types the lexer
// is able to parse and return.
type tokenType int

const (
	eof       tokenType = iota // end of file
	listStart                  // emitted for '['
	listEnd                    // emitted for ']'
	hexString                  // a 0x-prefixed hex literal
	invalid                    // any character that cannot start a token
)

func (t tokenType) String() string {
	switch t {
	case eof:
		return "end of input"
	case listStart:
		return "'['"
	case listEnd:
		return "']'"
	case hexString:
		return "hex string"
	case invalid:
		return "invalid token"
	default:
		return fmt.Sprintf("tokenType(%d)", int(t))
	}
}

const hexDigits = "0123456789abcdefABCDEF"

// lexer turns bracketed hex text into tokens.
type lexer struct {
	input  string     // input contains the source text
	tokens chan token // tokens is used to deliver tokens to the listener
	state  stateFn    // the current state function

	lineno            int // current line number in the source
	linestart         int // offset of the first byte of the current line
	start, pos, width int // positions for lexing and returning value

	debug bool // flag for triggering debug output
}

// lex lexes the given source. It returns a channel on which the tokens are
// delivered. The channel is closed after the eof token.
func lex(source []byte, debug bool) <-chan token {
	ch := make(chan token)
	l := &lexer{
		input:  string(source),
		tokens: ch,
		state:  lexText,
		debug:  debug,
	}
	go func() {
		for l.state != nil {
			l.state = l.state(l)
		}
		l.emit(eof)
		close(l.tokens)
	}()
	return ch
}

// next returns the next rune in the source.
func (l *lexer) next() (rune rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return 0
	}
	rune, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return rune
}

// backup steps back over the last rune read by next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// peek returns the next rune but does not advance the seeker
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// ignore skips the pending input.
func (l *lexer) ignore() {
	l.start = l.pos
}

// accept checks whether the given input matches the next rune
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun will continue to advance the seeker until valid
// can no longer be met.
func (l *lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// blob returns the current value
func (l *lexer) blob() string {
	return l.input[l.start:l.pos]
}

// emit sends a new token on to the token channel for processing.
func (l *lexer) emit(t tokenType) {
	token := token{t, l.lineno, l.start - l.linestart, l.blob()}

	if l.debug {
		fmt.Fprintf(os.Stderr, "%04d:%03d: (%-12v) %s\n", token.lineno+1, token.col+1, token.typ, token.text)
	}

	l.tokens <- token
	l.start = l.pos
}

// lexText is the state function between tokens.
func lexText(l *lexer) stateFn {
	for {
		switch r := l.next(); {
		case r == 0 && l.width == 0:
			return nil
		case r == '\n':
			l.ignore()
			l.lineno++
			l.linestart = l.pos
		case isSpace(r):
			l.ignore()
		case r == '[':
			l.emit(listStart)
		case r == ']':
			l.emit(listEnd)
		case r == '0' && (l.peek() == 'x' || l.peek() == 'X'):
			return lexHex
		default:
			return lexInvalid
		}
	}
}

// lexHex lexes the digits of a hex literal whose leading '0' has been read.
func lexHex(l *lexer) stateFn {
	l.accept("xX")
	l.acceptRun(hexDigits)
	if r := l.peek(); r != 0 && r != '[' && r != ']' && !isSpace(r) {
		return lexInvalid
	}
	l.emit(hexString)
	return lexText
}

// lexInvalid emits the rest of the current word as an invalid token and
// stops lexing.
func lexInvalid(l *lexer) stateFn {
	for r := l.peek(); r != 0 && r != '[' && r != ']' && !isSpace(r); r = l.peek() {
		l.next()
	}
	l.emit(invalid)
	return nil
}

func isSpace(t rune) bool {
	return unicode.IsSpace(t)
}
