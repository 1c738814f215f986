// Package eval implements the sole interpreter step: reducing an
// ast.Expression against an object.Scope to a value and the (possibly
// extended) scope later expressions should see.
package eval

import (
	"fmt"

	"github.com/osyris-lang/osyris/internal/ast"
	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/errtrace"
	"github.com/osyris-lang/osyris/internal/object"
)

// Eval reduces expr against scope, then drives the lazy-resolution
// loop: a Lazy result is repeatedly resolved until it stops being
// Lazy, while a ProtectedLazy unwraps exactly one level and stops.
func Eval(expr ast.Expression, scope *object.Scope) (object.Value, *object.Scope, error) {
	val, scope, err := evalOnce(expr, scope)
	if err != nil {
		return nil, scope, err
	}

	for {
		switch v := val.(type) {
		case object.Lazy:
			val, err = resolveLazy(v.Inner(), scope)
			if err != nil {
				return nil, scope, err
			}
		case object.ProtectedLazy:
			return object.NewLazy(v.Inner()), scope, nil
		default:
			return val, scope, nil
		}
	}
}

func evalOnce(expr ast.Expression, scope *object.Scope) (object.Value, *object.Scope, error) {
	switch e := expr.(type) {
	case ast.StringLit:
		return object.String{Value: e.Value}, scope, nil
	case ast.NumberLit:
		return object.Number(e.Value), scope, nil
	case ast.Lookup:
		if v, ok := scope.Lookup(e.Name); ok {
			return v, scope, nil
		}
		return nil, scope, &object.UndefinedVariableError{Name: e.Name.String()}
	case ast.Call:
		return evalCall(e, scope)
	case ast.Block:
		return object.NewBlock(e.Exprs), scope, nil
	default:
		return nil, scope, fmt.Errorf("unknown expression kind %v", expr.Kind())
	}
}

// EvalMultiple folds Eval across exprs in order, threading the scope
// through every step, and returns the last value and final scope. An
// empty slice yields None.
func EvalMultiple(exprs []ast.Expression, scope *object.Scope) (object.Value, *object.Scope, error) {
	var result object.Value = object.None{}
	for _, e := range exprs {
		var err error
		result, scope, err = Eval(e, scope)
		if err != nil {
			return nil, scope, err
		}
	}
	return result, scope, nil
}

// evalCall evaluates a Call's arguments left to right, then its
// callee, then dispatches via Call. Side-effecting argument
// evaluation can extend the scope later arguments and the callee see;
// only the final scope escapes to the caller. On failure the call's
// location and the callee's textual form are pushed onto the stack
// trace before the error propagates.
func evalCall(c ast.Call, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(c.Exprs) < 1 {
		return nil, scope, fmt.Errorf("Call list has no elements")
	}

	args := make([]object.Value, 0, len(c.Exprs)-1)
	for _, argExpr := range c.Exprs[1:] {
		v, s, err := Eval(argExpr, scope)
		if err != nil {
			return nil, scope, errtrace.Wrap(err).Push(c.Loc, c.Exprs[0].String())
		}
		args = append(args, v)
		scope = s
	}

	callee, scope, err := Eval(c.Exprs[0], scope)
	if err != nil {
		return nil, scope, errtrace.Wrap(err).Push(c.Loc, c.Exprs[0].String())
	}

	result, scope, err := Call(callee, args, scope)
	if err != nil {
		return nil, scope, errtrace.Wrap(err).Push(c.Loc, c.Exprs[0].String())
	}
	return result, scope, nil
}

// resolveLazy evaluates the inner value of a Lazy: a Func is invoked
// with no arguments, a Lambda's body runs in a fresh subscope, a
// Block's expressions run in the current scope, and anything else is
// returned unchanged.
func resolveLazy(inner object.Value, scope *object.Scope) (object.Value, error) {
	switch v := inner.(type) {
	case object.Func:
		result, _, err := v.Call()(nil, scope)
		return result, err
	case object.Lambda:
		sub := scope.Subscope()
		result, _, err := EvalMultiple(v.Body().Exprs(), sub)
		return result, err
	case object.Block:
		result, _, err := EvalMultiple(v.Exprs(), scope)
		return result, err
	default:
		return inner, nil
	}
}

// Call dispatches a callee's invocation by its runtime kind, per the
// call-dispatch rules: Func invokes directly, Block and Lambda run
// their bodies (a Lambda's scope extensions never leak back to the
// caller), Binding pre-populates a subscope before recursing into its
// inner callee, List/Dict perform single-argument indexing, and
// anything else fails.
func Call(callee object.Value, args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	switch c := callee.(type) {
	case object.Func:
		return c.Call()(args, scope)

	case object.Block:
		result, _, err := EvalMultiple(c.Exprs(), scope)
		return result, scope, err

	case object.Lambda:
		sub := scope.Subscope()
		params := c.Params()
		for i, p := range params {
			if i >= len(args) {
				break
			}
			sub = sub.Insert(p, args[i])
		}
		result, _, err := EvalMultiple(c.Body().Exprs(), sub)
		return result, scope, err

	case object.Binding:
		sub := scope.Subscope()
		for name, v := range c.Bound() {
			sub = sub.Insert(bstring.FromString(name), v)
		}
		result, _, err := Call(c.Callee(), args, sub)
		return result, scope, err

	case object.List:
		if len(args) != 1 {
			return nil, scope, fmt.Errorf("Array lookup requires 1 argument")
		}
		n, ok := args[0].(object.Number)
		if !ok {
			return nil, scope, fmt.Errorf("Attempt to index array with non-number")
		}
		idx := int(n)
		items := c.Items()
		if idx < 0 || idx >= len(items) {
			return object.None{}, scope, nil
		}
		return items[idx], scope, nil

	case object.Dict:
		if len(args) != 1 {
			return nil, scope, fmt.Errorf("Map lookup requires exactly 1 argument")
		}
		s, ok := args[0].(object.String)
		if !ok {
			return nil, scope, fmt.Errorf("Attempt to index map with non-string")
		}
		if v, ok := c.Get(s.Value.Key()); ok {
			return v, scope, nil
		}
		return object.None{}, scope, nil

	default:
		return nil, scope, fmt.Errorf("Attempt to call non-function %s", callee.Inspect())
	}
}
