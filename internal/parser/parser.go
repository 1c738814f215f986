// Package parser turns source bytes into a stream of ast.Expression
// nodes.
//
// Osyris's grammar is scannerless: a Reader builds expressions
// directly out of bytes in a single pass, with no separate token
// stream. That matches the grammar itself, which has no fixed set of
// operator or keyword tokens — every name is just a name, and what it
// means is entirely up to the evaluator and the bindings in scope.
package parser

import (
	"fmt"

	"github.com/osyris-lang/osyris/internal/ast"
	"github.com/osyris-lang/osyris/internal/bstring"
)

// Error reports a lexical or grammatical problem found while parsing.
type Error struct {
	Line    uint32
	Column  uint32
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Reader streams expressions out of a byte buffer, tracking source
// position so every Call node can carry a Location.
type Reader struct {
	file   string
	line   uint32
	column uint32
	src    []byte
	idx    int
}

// NewReader creates a Reader over src, attributing every Location it
// produces to file.
func NewReader(src []byte, file string) *Reader {
	return &Reader{file: file, line: 1, column: 1, src: src}
}

func (r *Reader) peek() byte {
	if r.idx < len(r.src) {
		return r.src[r.idx]
	}
	return 0
}

func (r *Reader) eof() bool { return r.idx >= len(r.src) }

func (r *Reader) consume() {
	if r.idx >= len(r.src) {
		return
	}
	if r.src[r.idx] == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
	r.idx++
}

func (r *Reader) loc() ast.Location {
	return ast.Location{File: r.file, Line: r.line, Column: r.column}
}

func (r *Reader) err(format string, args ...any) *Error {
	return &Error{Line: r.line, Column: r.column, Message: fmt.Sprintf(format, args...)}
}

func isSpace(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\n' }

func isSeparator(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '(', ')', '{', '}', '[', ']', '.':
		return true
	default:
		return false
	}
}

func (r *Reader) skipSpace() {
	for !r.eof() {
		ch := r.peek()
		if isSpace(ch) {
			r.consume()
			continue
		}
		if ch == ';' {
			r.consume()
			for !r.eof() {
				if r.peek() == '\n' {
					r.consume()
					break
				}
				r.consume()
			}
			continue
		}
		return
	}
}

// readName consumes a maximal run of non-separator bytes, the grammar
// rule backing both bare Lookups and the strings produced by quoting
// and dot-call chaining.
func (r *Reader) readName() (bstring.ByteString, error) {
	start := r.idx
	for !r.eof() && !isSeparator(r.peek()) {
		r.consume()
	}
	if r.idx == start {
		if r.eof() {
			return bstring.ByteString{}, r.err("Unexpected EOF")
		}
		return bstring.ByteString{}, r.err("Unexpected '%c'", r.peek())
	}
	return bstring.New(r.src[start:r.idx]), nil
}

func (r *Reader) parseString() (ast.Expression, error) {
	r.consume() // opening '"'

	var buf []byte
	for !r.eof() {
		ch := r.peek()
		switch ch {
		case '"':
			r.consume()
			return ast.StringLit{Value: bstring.New(buf)}, nil
		case '\\':
			r.consume()
			if r.eof() {
				return nil, r.err("Unexpected EOF")
			}
			esc := r.peek()
			var out byte
			switch esc {
			case 't':
				out = '\t'
			case 'n':
				out = '\n'
			case 'e':
				out = 0o33
			case '0':
				out = 0
			case '"':
				out = '"'
			case '\\':
				out = '\\'
			default:
				return nil, r.err("Invalid escape sequence: \\%c", esc)
			}
			buf = append(buf, out)
			r.consume()
		default:
			buf = append(buf, ch)
			r.consume()
		}
	}

	return nil, r.err("Unexpected EOF")
}

func digitValue(ch byte, base uint64) (uint64, bool) {
	var v uint64
	switch {
	case ch >= '0' && ch <= '9':
		v = uint64(ch - '0')
	case ch >= 'a' && ch <= 'z':
		v = uint64(ch-'a') + 10
	case ch >= 'A' && ch <= 'Z':
		v = uint64(ch-'A') + 10
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

// readInt reads digits in the given base, returning the accumulated
// integer and the divisor (base^ndigits) needed to interpret the same
// run of digits as a fraction.
func (r *Reader) readInt(base uint64) (int uint64, div uint64) {
	div = 1
	for !r.eof() {
		d, ok := digitValue(r.peek(), base)
		if !ok {
			break
		}
		div *= base
		int = int*base + d
		r.consume()
	}
	return int, div
}

func (r *Reader) readNumber() (float64, error) {
	base := uint64(10)
	integral, _ := r.readInt(10)
	var decimal float64
	if r.eof() {
		return float64(integral), nil
	}

	if r.peek() == '#' {
		r.consume()
		if integral > 36 {
			return 0, r.err("Number literal: Max base is 36, got %d", integral)
		}
		base = integral
		integral, _ = r.readInt(base)
	}

	if r.peek() == '.' {
		r.consume()
		i, div := r.readInt(base)
		decimal = float64(i) / float64(div)
	}

	if !r.eof() && !isSeparator(r.peek()) {
		return 0, r.err("Invalid number literal")
	}

	return float64(integral) + decimal, nil
}

func (r *Reader) parseNumber() (ast.Expression, error) {
	n, err := r.readNumber()
	if err != nil {
		return nil, err
	}
	return ast.NumberLit{Value: n}, nil
}

// parseList reads expressions until closer, consuming both the
// opening byte (already positioned at it) and the closer.
func (r *Reader) parseList(closer byte) ([]ast.Expression, error) {
	r.consume() // opener

	var exprs []ast.Expression
	for {
		r.skipSpace()
		if r.peek() == closer {
			r.consume()
			break
		}

		expr, err := r.Parse()
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, r.err("Unexpected EOF")
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// parseInfix parses "[ lhs infix rhs infix rhs … ]", left-associating
// each additional "op rhs" pair onto the running result.
func (r *Reader) parseInfix() (ast.Expression, error) {
	r.consume() // '['

	lhs, err := r.Parse()
	if err != nil {
		return nil, err
	}
	if lhs == nil {
		return nil, r.err("Unexpected EOF")
	}

	for {
		r.skipSpace()
		if r.peek() == ']' {
			r.consume()
			break
		}

		infix, err := r.Parse()
		if err != nil {
			return nil, err
		}
		if infix == nil {
			return nil, r.err("Unexpected EOF")
		}

		rhs, err := r.Parse()
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, r.err("Unexpected EOF")
		}

		lhs = ast.Call{Exprs: []ast.Expression{infix, lhs, rhs}, Loc: r.loc()}
	}

	return lhs, nil
}

func (r *Reader) parseQuote() (ast.Expression, error) {
	r.consume() // '\''
	if r.peek() == '(' {
		exprs, err := r.parseList(')')
		if err != nil {
			return nil, err
		}
		return ast.Block{Exprs: exprs}, nil
	}

	name, err := r.readName()
	if err != nil {
		return nil, err
	}
	return ast.StringLit{Value: name}, nil
}

// parseDash handles the three meanings of a leading '-': a negative
// number literal, the bare name "-", or a "-"-prefixed name.
func (r *Reader) parseDash() (ast.Expression, error) {
	r.consume() // '-'
	ch := r.peek()
	switch {
	case ch >= '0' && ch <= '9':
		n, err := r.readNumber()
		if err != nil {
			return nil, err
		}
		return ast.NumberLit{Value: -n}, nil
	case isSpace(ch):
		return ast.Lookup{Name: bstring.FromString("-")}, nil
	default:
		name, err := r.readName()
		if err != nil {
			return nil, err
		}
		return ast.Lookup{Name: bstring.New(append([]byte("-"), name.Bytes()...))}, nil
	}
}

func (r *Reader) parseBraced() (ast.Expression, error) {
	exprs, err := r.parseList('}')
	if err != nil {
		return nil, err
	}
	return ast.Block{Exprs: exprs}, nil
}

func (r *Reader) parseCall() (ast.Expression, error) {
	loc := r.loc()
	exprs, err := r.parseList(')')
	if err != nil {
		return nil, err
	}
	return ast.Call{Exprs: exprs, Loc: loc}, nil
}

func (r *Reader) parseLookup() (ast.Expression, error) {
	name, err := r.readName()
	if err != nil {
		return nil, err
	}
	return ast.Lookup{Name: name}, nil
}

// Parse returns the next top-level expression, or (nil, nil) at
// end-of-input. Calling Parse again after end-of-input returns
// (nil, nil) again, since it re-checks EOF every time rather than
// caching a sticky "done" flag.
func (r *Reader) Parse() (ast.Expression, error) {
	r.skipSpace()
	if r.eof() {
		return nil, nil
	}

	ch := r.peek()
	var base ast.Expression
	var err error
	switch {
	case ch == '"':
		base, err = r.parseString()
	case ch >= '0' && ch <= '9':
		base, err = r.parseNumber()
	case ch == '-':
		base, err = r.parseDash()
	case ch == '\'':
		base, err = r.parseQuote()
	case ch == '(':
		base, err = r.parseCall()
	case ch == '{':
		base, err = r.parseBraced()
	case ch == '[':
		base, err = r.parseInfix()
	default:
		base, err = r.parseLookup()
	}
	if err != nil {
		return nil, err
	}

	// Dot-call chaining: "d.x", "l.0", "l.[i + 1]", "obj.(expr)".
	for {
		r.skipSpace()
		if r.eof() || r.peek() != '.' {
			break
		}
		r.consume()
		r.skipSpace()

		ch := r.peek()
		loc := r.loc()
		switch {
		case ch >= '0' && ch <= '9':
			num, err := r.parseNumber()
			if err != nil {
				return nil, err
			}
			base = ast.Call{Exprs: []ast.Expression{base, num}, Loc: loc}
		case ch == '[':
			arg, err := r.parseInfix()
			if err != nil {
				return nil, err
			}
			base = ast.Call{Exprs: []ast.Expression{base, arg}, Loc: loc}
		case ch == '(':
			arg, err := r.parseCall()
			if err != nil {
				return nil, err
			}
			base = ast.Call{Exprs: []ast.Expression{base, arg}, Loc: loc}
		default:
			name, err := r.readName()
			if err != nil {
				return nil, err
			}
			base = ast.Call{Exprs: []ast.Expression{base, ast.StringLit{Value: name}}, Loc: loc}
		}
	}

	return base, nil
}
