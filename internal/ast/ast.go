// Package ast defines the syntax tree produced by the parser.
//
// An Expression is immutable once built: the parser constructs it
// exactly once, and the evaluator walks it without ever mutating a
// node. Every Call node additionally carries the source Location it
// was parsed at, which flows into stack traces on evaluation failure.
package ast

import (
	"strconv"
	"strings"

	"github.com/osyris-lang/osyris/internal/bstring"
)

// Location pinpoints a position in a source file: the file name plus
// a 1-based line and column. Several Call nodes parsed from the same
// file share the same File string.
type Location struct {
	File   string
	Line   uint32
	Column uint32
}

// String renders the location the way stack traces expect:
// "<file>: <line>:<column>".
func (l Location) String() string {
	return l.File + ": " + strconv.FormatUint(uint64(l.Line), 10) + ":" + strconv.FormatUint(uint64(l.Column), 10)
}

// Expression is the sum type of every node the parser produces.
// Exactly one of the Kind-specific accessors is meaningful for a
// given node; which one is determined by Kind().
type Expression interface {
	// Kind identifies which concrete expression variant this is.
	Kind() Kind

	// String renders the expression in the textual form used by
	// --print-ast and by stack traces (the callee of a Call frame).
	String() string
}

// Kind enumerates the Expression variants.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindLookup
	KindCall
	KindBlock
)

// StringLit is a double-quoted string literal.
type StringLit struct {
	Value bstring.ByteString
}

func (StringLit) Kind() Kind { return KindString }

// String renders the literal with '\' and '"' escaped, per §6.
func (s StringLit) String() string {
	var out strings.Builder
	out.WriteByte('"')
	for _, ch := range s.Value.Bytes() {
		switch ch {
		case '\\', '"':
			out.WriteByte('\\')
			out.WriteByte(ch)
		default:
			out.WriteByte(ch)
		}
	}
	out.WriteByte('"')
	return out.String()
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

func (NumberLit) Kind() Kind { return KindNumber }

func (n NumberLit) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Lookup is a bare-name reference, resolved against the scope chain
// at evaluation time.
type Lookup struct {
	Name bstring.ByteString
}

func (Lookup) Kind() Kind { return KindLookup }

func (l Lookup) String() string { return l.Name.String() }

// Call is an invocation: Exprs[0] is the callee, Exprs[1:] are the
// arguments. Loc is the only location any Expression carries, which
// is why only Call nodes can anchor a stack frame.
type Call struct {
	Exprs []Expression
	Loc   Location
}

func (Call) Kind() Kind { return KindCall }

func (c Call) String() string {
	var out strings.Builder
	out.WriteByte('(')
	for i, e := range c.Exprs {
		if i != 0 {
			out.WriteByte(' ')
		}
		out.WriteString(e.String())
	}
	out.WriteByte(')')
	return out.String()
}

// Block is an unevaluated sequence of expressions: first-class and
// callable, evaluating its contents in the calling scope when called.
type Block struct {
	Exprs []Expression
}

func (Block) Kind() Kind { return KindBlock }

func (b Block) String() string {
	var out strings.Builder
	out.WriteString("'(")
	for i, e := range b.Exprs {
		if i != 0 {
			out.WriteByte(' ')
		}
		out.WriteString(e.String())
	}
	out.WriteByte(')')
	return out.String()
}
