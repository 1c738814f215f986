// Package object implements the Osyris runtime value model: the
// tagged sum of values every expression evaluates to, and the
// persistent, copy-on-write scope chain that binds names to them.
package object

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/osyris-lang/osyris/internal/ast"
	"github.com/osyris-lang/osyris/internal/bstring"
)

// Kind identifies which Value variant a value holds.
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindBool
	KindString
	KindBlock
	KindList
	KindDict
	KindFunc
	KindLambda
	KindBinding
	KindLazy
	KindProtectedLazy
	KindNative
	KindPort
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBlock:
		return "block"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindFunc:
		return "func"
	case KindLambda:
		return "lambda"
	case KindBinding:
		return "binding"
	case KindLazy:
		return "lazy"
	case KindProtectedLazy:
		return "protected-lazy"
	case KindNative:
		return "native"
	case KindPort:
		return "port"
	default:
		return "unknown"
	}
}

// Value is the runtime variant every expression evaluates to.
type Value interface {
	// Kind reports which concrete variant this is.
	Kind() Kind

	// Inspect renders the value for debugging and for nested display
	// (list/dict members, REPL echoes): strings are quoted.
	Inspect() string
}

// Truthy implements Osyris's truthiness rule: false and None are
// falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case None:
		return false
	default:
		return true
	}
}

// ToNum implements numeric coercion: Number yields itself, Bool
// yields 1/0, everything else yields 0.
func ToNum(v Value) float64 {
	switch x := v.(type) {
	case Number:
		return float64(x)
	case Bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Render renders the byte-string form of a value: a String value's
// raw bytes, or every other value's Inspect text. This is what the
// `string` builtin, `write`, and multi-argument `error` use to turn
// values into bytes.
func Render(v Value) bstring.ByteString {
	if s, ok := v.(String); ok {
		return s.Value
	}
	return bstring.FromString(v.Inspect())
}

// Equal implements structural equality for scalars, String, List and
// Dict, and identity equality (same underlying shared cell) for
// everything else.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case None:
		_, ok := b.(None)
		return ok
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av.Value.Equal(bv.Value)
	case List:
		bv, ok := b.(List)
		if !ok {
			return false
		}
		if av.data == bv.data {
			return true
		}
		ai, bi := av.Items(), bv.Items()
		if len(ai) != len(bi) {
			return false
		}
		for i := range ai {
			if !Equal(ai[i], bi[i]) {
				return false
			}
		}
		return true
	case Dict:
		bv, ok := b.(Dict)
		if !ok {
			return false
		}
		if av.data == bv.data {
			return true
		}
		am, bm := av.data.pairs, bv.data.pairs
		if len(am) != len(bm) {
			return false
		}
		for k, vv := range am {
			ov, ok := bm[k]
			if !ok || !Equal(vv, ov) {
				return false
			}
		}
		return true
	default:
		return identity(a) == identity(b)
	}
}

// identity returns a comparable key for the shared cell backing any
// value variant that isn't a scalar, String, List, or Dict.
func identity(v Value) any {
	switch x := v.(type) {
	case Block:
		return x.data
	case Func:
		return x.data
	case Lambda:
		return x.data
	case Binding:
		return x.data
	case Lazy:
		return x.inner
	case ProtectedLazy:
		return x.inner
	case Native:
		return x.data
	case Port:
		return x.data
	default:
		return nil
	}
}

// retain bumps the refcount of any interior-mutable value being
// stored into a second owner (a scope slot, a list/dict element).
// Scalars, strings, blocks and the other immutable variants have no
// cell and are no-ops.
func retain(v Value) {
	switch x := v.(type) {
	case List:
		x.data.retain()
	case Dict:
		x.data.retain()
	case Port:
		x.data.retain()
	}
}

// release drops one ownership of v, the counterpart to retain, called
// when a scope slot or collection element stops holding v.
func release(v Value) {
	switch x := v.(type) {
	case List:
		x.data.release()
	case Dict:
		x.data.release()
	case Port:
		x.data.release()
	}
}

// ---- None ----

// None is the unit value; also the default "not found" result for
// out-of-range list indices and missing dict keys.
type None struct{}

func (None) Kind() Kind      { return KindNone }
func (None) Inspect() string { return "None" }

// ---- Number ----

// Number is a double-precision float.
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (n Number) Inspect() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// ---- Bool ----

type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) Inspect() string {
	if b {
		return "true"
	}
	return "false"
}

// ---- String ----

// String wraps an immutable, shared byte string.
type String struct {
	Value bstring.ByteString
}

func (String) Kind() Kind { return KindString }
func (s String) Inspect() string {
	return ast.StringLit{Value: s.Value}.String()
}

// ---- Block ----

type blockData struct {
	exprs []ast.Expression
}

// Block is an unevaluated, callable sequence of expressions.
type Block struct {
	data *blockData
}

// NewBlock wraps a parsed expression sequence as a callable Block.
func NewBlock(exprs []ast.Expression) Block {
	return Block{data: &blockData{exprs: exprs}}
}

func (b Block) Exprs() []ast.Expression { return b.data.exprs }

func (Block) Kind() Kind { return KindBlock }
func (b Block) Inspect() string {
	return ast.Block{Exprs: b.data.exprs}.String()
}

// ---- List ----

type listData struct {
	cell
	items []Value
}

// List is a reference-counted, interior-mutable sequence of values.
type List struct {
	data *listData
}

// NewList builds a List owning items. Any List/Dict/Port elements are
// retained, since the new list is now a second owner of them.
func NewList(items []Value) List {
	d := &listData{cell: newCell(), items: items}
	for _, v := range items {
		retain(v)
	}
	return List{data: d}
}

func (l List) Items() []Value { return l.data.items }
func (List) Kind() Kind       { return KindList }
func (l List) Inspect() string {
	var out strings.Builder
	out.WriteByte('[')
	for i, v := range l.data.items {
		if i != 0 {
			out.WriteString(", ")
		}
		out.WriteString(v.Inspect())
	}
	out.WriteByte(']')
	return out.String()
}

// Unique reports whether this list has exactly one owner (its
// containing scope, variable, or collection slot), the test every
// copy-on-write list builtin runs before mutating in place.
func (l List) Unique() bool { return l.data.unique() }

// Mutate runs fn against the list's backing slice under an exclusive
// borrow, replacing the slice with whatever fn returns. Borrowed
// re-entrancy (fn calling back into a builtin that tries to mutate
// the same list) panics, per spec §5.
func (l List) Mutate(fn func(items []Value) []Value) List {
	unlock := l.data.borrowMut()
	defer unlock()
	l.data.items = fn(l.data.items)
	return l
}

// CloneList makes an independent copy of l, used by COW builtins when
// l is shared (Unique() is false). Elements are retained since they
// now have a second owning cell.
func CloneList(l List) List {
	items := make([]Value, len(l.data.items))
	copy(items, l.data.items)
	for _, v := range items {
		retain(v)
	}
	return List{data: &listData{cell: newCell(), items: items}}
}

// ---- Dict ----

type dictData struct {
	cell
	pairs map[string]Value
}

// Dict is a reference-counted, interior-mutable ByteString-keyed map.
type Dict struct {
	data *dictData
}

// NewDict builds a Dict owning pairs.
func NewDict(pairs map[string]Value) Dict {
	d := &dictData{cell: newCell(), pairs: pairs}
	for _, v := range pairs {
		retain(v)
	}
	return Dict{data: d}
}

func (Dict) Kind() Kind { return KindDict }

// Get returns the value bound to key, or (None{}, false) if absent.
func (d Dict) Get(key string) (Value, bool) {
	v, ok := d.data.pairs[key]
	if !ok {
		return None{}, false
	}
	return v, ok
}

// Keys returns the dict's keys in sorted order, for deterministic
// iteration and display.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d.data.pairs))
	for k := range d.data.pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d Dict) Inspect() string {
	var out strings.Builder
	out.WriteByte('{')
	for i, k := range d.Keys() {
		if i != 0 {
			out.WriteString(", ")
		}
		fmt.Fprintf(&out, "%q: %s", k, d.data.pairs[k].Inspect())
	}
	out.WriteByte('}')
	return out.String()
}

func (d Dict) Unique() bool { return d.data.unique() }

// Mutate runs fn against the dict's backing map under an exclusive
// borrow.
func (d Dict) Mutate(fn func(pairs map[string]Value)) Dict {
	unlock := d.data.borrowMut()
	defer unlock()
	fn(d.data.pairs)
	return d
}

// CloneDict makes an independent copy of d for the COW path.
func CloneDict(d Dict) Dict {
	pairs := make(map[string]Value, len(d.data.pairs))
	for k, v := range d.data.pairs {
		pairs[k] = v
		retain(v)
	}
	return Dict{data: &dictData{cell: newCell(), pairs: pairs}}
}

// ---- Func ----

// NativeFunc is the signature every built-in operator implements:
// given its arguments and the calling scope, it returns a value and
// the (possibly extended) scope that should be observed afterward.
type NativeFunc func(args []Value, scope *Scope) (Value, *Scope, error)

type funcData struct {
	name string
	fn   NativeFunc
}

// Func wraps a native (Go-implemented) callable.
type Func struct {
	data *funcData
}

// NewFunc wraps fn as a callable Func, named for error messages and
// diagnostics.
func NewFunc(name string, fn NativeFunc) Func {
	return Func{data: &funcData{name: name, fn: fn}}
}

func (f Func) Name() string  { return f.data.name }
func (f Func) Call() NativeFunc { return f.data.fn }

func (Func) Kind() Kind { return KindFunc }
func (f Func) Inspect() string {
	return fmt.Sprintf("(func %s)", f.data.name)
}

// ---- Lambda ----

type lambdaData struct {
	params []bstring.ByteString
	body   Block
}

// Lambda is a parameter list plus a body block. Calling it binds
// arguments to parameters in a fresh subscope; it never captures the
// scope it was defined in (Osyris has no closures).
type Lambda struct {
	data *lambdaData
}

// NewLambda builds a Lambda from its parameter names and body.
func NewLambda(params []bstring.ByteString, body Block) Lambda {
	return Lambda{data: &lambdaData{params: params, body: body}}
}

func (l Lambda) Params() []bstring.ByteString { return l.data.params }
func (l Lambda) Body() Block                  { return l.data.body }

func (Lambda) Kind() Kind { return KindLambda }
func (l Lambda) Inspect() string {
	var out strings.Builder
	out.WriteString("(lambda")
	for _, p := range l.data.params {
		out.WriteByte(' ')
		out.WriteString(p.String())
	}
	out.WriteByte(' ')
	out.WriteString(l.data.body.Inspect())
	out.WriteByte(')')
	return out.String()
}

// ---- Binding ----

type bindingData struct {
	bound  map[string]Value
	callee Value
}

// Binding captures a map of names plus a callee; calling it evaluates
// the callee in a subscope pre-populated with the map. This is how
// Osyris expresses closures explicitly, since Lambdas don't capture.
type Binding struct {
	data *bindingData
}

// NewBinding builds a Binding over bound and callee.
func NewBinding(bound map[string]Value, callee Value) Binding {
	return Binding{data: &bindingData{bound: bound, callee: callee}}
}

func (b Binding) Bound() map[string]Value { return b.data.bound }
func (b Binding) Callee() Value            { return b.data.callee }

func (Binding) Kind() Kind { return KindBinding }
func (b Binding) Inspect() string {
	return fmt.Sprintf("(binding %s)", b.data.callee.Inspect())
}

// ---- Lazy / ProtectedLazy ----

// Lazy wraps a value whose evaluation is deferred: the lazy-resolution
// loop in the evaluator replaces it with the result of "running" its
// inner value (calling a Func with no args, evaluating a Lambda body
// in a fresh subscope, or evaluating a Block's contents in the current
// scope).
type Lazy struct {
	inner *Value
}

// NewLazy wraps inner as a Lazy.
func NewLazy(inner Value) Lazy {
	return Lazy{inner: &inner}
}

func (l Lazy) Inner() Value { return *l.inner }

func (Lazy) Kind() Kind { return KindLazy }
func (l Lazy) Inspect() string {
	return fmt.Sprintf("(lazy %s)", (*l.inner).Inspect())
}

// ProtectedLazy is a one-shot protector around a Lazy: evaluating a
// reference to it unwraps it to a plain Lazy exactly once and stops,
// rather than recursively resolving. The next reference resolves it.
type ProtectedLazy struct {
	inner *Value
}

// NewProtectedLazy wraps inner (the value to resolve later: a Func,
// Lambda, or Block; anything else resolves to itself) as a
// ProtectedLazy.
func NewProtectedLazy(inner Value) ProtectedLazy {
	return ProtectedLazy{inner: &inner}
}

func (p ProtectedLazy) Inner() Value { return *p.inner }

func (ProtectedLazy) Kind() Kind { return KindProtectedLazy }
func (p ProtectedLazy) Inspect() string {
	return fmt.Sprintf("(protected-lazy %s)", (*p.inner).Inspect())
}

// ---- Native ----

type nativeData struct {
	handle any
}

// Native wraps an opaque host-defined handle, passed through the
// interpreter without interpretation.
type Native struct {
	data *nativeData
}

// NewNative wraps handle as a Native value.
func NewNative(handle any) Native {
	return Native{data: &nativeData{handle: handle}}
}

func (n Native) Handle() any { return n.data.handle }

func (Native) Kind() Kind { return KindNative }
func (n Native) Inspect() string {
	return fmt.Sprintf("(native %p)", n.data)
}

// ---- extractors ----

// typeErr formats the standard "Expected <kind>" mismatch message.
func typeErr(want string, got Value) error {
	return fmt.Errorf("Expected %s, got %s", want, got.Kind())
}

func GetNumber(v Value) (float64, error) {
	n, ok := v.(Number)
	if !ok {
		return 0, typeErr("number", v)
	}
	return float64(n), nil
}

func GetString(v Value) (bstring.ByteString, error) {
	s, ok := v.(String)
	if !ok {
		return bstring.ByteString{}, typeErr("string", v)
	}
	return s.Value, nil
}

func GetBlock(v Value) (Block, error) {
	b, ok := v.(Block)
	if !ok {
		return Block{}, typeErr("block", v)
	}
	return b, nil
}

func GetList(v Value) (List, error) {
	l, ok := v.(List)
	if !ok {
		return List{}, typeErr("list", v)
	}
	return l, nil
}

func GetDict(v Value) (Dict, error) {
	d, ok := v.(Dict)
	if !ok {
		return Dict{}, typeErr("dict", v)
	}
	return d, nil
}
