package builtins

import (
	"errors"
	"strings"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/errtrace"
	"github.com/osyris-lang/osyris/internal/eval"
	"github.com/osyris-lang/osyris/internal/object"
)

// ifBuiltin evaluates cond, then calls the selected body with no
// arguments; if cond is falsy and there's no else body, it returns
// None.
func ifBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, scope, errors.New("'if' requires 2 or 3 arguments")
	}
	var body object.Value
	if object.Truthy(args[0]) {
		body = args[1]
	} else if len(args) == 3 {
		body = args[2]
	} else {
		return object.None{}, scope, nil
	}
	result, _, err := eval.Call(body, nil, scope)
	if err != nil {
		return nil, scope, err
	}
	return result, scope, nil
}

// match (case-block)* evaluates each case's guard (its block's first
// expression) in order; on the first truthy guard it evaluates the
// remainder of that block and returns the result. An empty case block
// is an error.
func match(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	for _, a := range args {
		blk, err := object.GetBlock(a)
		if err != nil {
			return nil, scope, err
		}
		exprs := blk.Exprs()
		if len(exprs) == 0 {
			return nil, scope, errors.New("'match' case block is empty")
		}
		guardVal, _, err := eval.Eval(exprs[0], scope)
		if err != nil {
			return nil, scope, err
		}
		if object.Truthy(guardVal) {
			result, _, err := eval.EvalMultiple(exprs[1:], scope)
			if err != nil {
				return nil, scope, err
			}
			return result, scope, nil
		}
	}
	return object.None{}, scope, nil
}

// while cond-body (body)? repeatedly calls cond-body; while it
// returns truthy it calls body (if present) and remembers its
// result, otherwise returning the last remembered value.
func whileBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, scope, errors.New("'while' requires 1 or 2 arguments")
	}
	cond := args[0]
	var body object.Value
	if len(args) == 2 {
		body = args[1]
	}

	var retval object.Value = object.None{}
	for {
		condVal, _, err := eval.Call(cond, nil, scope)
		if err != nil {
			return nil, scope, err
		}
		if !object.Truthy(condVal) || body == nil {
			return retval, scope, nil
		}
		retval, _, err = eval.Call(body, nil, scope)
		if err != nil {
			return nil, scope, err
		}
	}
}

// do (val)* returns the last value, or None if given none.
func doBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return object.None{}, scope, nil
	}
	return args[len(args)-1], scope, nil
}

// tryBuiltin calls body with no arguments; on error it calls catch
// with the raised value carried on the stack trace.
func tryBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 2 {
		return nil, scope, errors.New("'try' requires a body and a catch handler")
	}
	result, _, err := eval.Call(args[0], nil, scope)
	if err == nil {
		return result, scope, nil
	}
	st := errtrace.Wrap(err)
	caught, _, cerr := eval.Call(args[1], []object.Value{st.Payload}, scope)
	if cerr != nil {
		return nil, scope, cerr
	}
	return caught, scope, nil
}

// lazyBuiltin wraps its single argument as a ProtectedLazy, so the
// next reference to the binding resolves it exactly once.
func lazyBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 1 {
		return nil, scope, errors.New("'lazy' requires 1 argument")
	}
	return object.NewProtectedLazy(args[0]), scope, nil
}

// errorBuiltin raises: 0 args -> None, 1 arg -> that value as-is,
// more -> join byte-string renderings with single spaces as a String.
func errorBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	switch len(args) {
	case 0:
		return nil, scope, errtrace.New(object.None{})
	case 1:
		return nil, scope, errtrace.New(args[0])
	default:
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = object.Render(a).String()
		}
		joined := strings.Join(parts, " ")
		payload := object.String{Value: bstring.FromString(joined)}
		return nil, scope, errtrace.New(payload)
	}
}
