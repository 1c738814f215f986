package builtins

import (
	"errors"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/eval"
	"github.com/osyris-lang/osyris/internal/object"
)

// def (name value)* inserts each pair into the current scope.
func def(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args)%2 != 0 {
		return nil, scope, errors.New("'def' requires an even number of arguments")
	}
	for i := 0; i < len(args); i += 2 {
		name, err := object.GetString(args[i])
		if err != nil {
			return nil, scope, err
		}
		scope = scope.Insert(name, args[i+1])
	}
	return object.None{}, scope, nil
}

// set (name value)* replaces an existing binding, walking up the
// chain; it fails if the name has no binding anywhere in scope.
func set(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args)%2 != 0 {
		return nil, scope, errors.New("'set' requires an even number of arguments")
	}
	for i := 0; i < len(args); i += 2 {
		name, err := object.GetString(args[i])
		if err != nil {
			return nil, scope, err
		}
		_, holding, ok := scope.RLookup(name)
		if !ok {
			return nil, scope, &object.UndefinedVariableError{Name: name.String()}
		}
		updated := holding.Insert(name, args[i+1])
		if holding == scope {
			scope = updated
		}
	}
	return object.None{}, scope, nil
}

// fn is convenience sugar for `def name (lambda (param-name)* body)`.
func fn(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 2 {
		return nil, scope, errors.New("'func' requires a name and a body block")
	}
	name, err := object.GetString(args[0])
	if err != nil {
		return nil, scope, err
	}
	body, err := object.GetBlock(args[len(args)-1])
	if err != nil {
		return nil, scope, err
	}
	params := make([]bstring.ByteString, 0, len(args)-2)
	for _, a := range args[1 : len(args)-1] {
		p, err := object.GetString(a)
		if err != nil {
			return nil, scope, err
		}
		params = append(params, p)
	}
	lambda := object.NewLambda(params, body)
	scope = scope.Insert(name, lambda)
	return object.None{}, scope, nil
}

// mutate name cb (extra)* removes name from its holding scope,
// invokes cb(value, extras...), and reinserts the result, so cb
// observes refcount==1 on the old value.
func mutate(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 2 {
		return nil, scope, errors.New("'mutate' requires a name and a callback")
	}
	name, err := object.GetString(args[0])
	if err != nil {
		return nil, scope, err
	}
	cb := args[1]
	extras := args[2:]

	result, newScope, err := scope.Mutate(name, func(old object.Value) (object.Value, error) {
		callArgs := append([]object.Value{old}, extras...)
		v, _, err := eval.Call(cb, callArgs, scope)
		return v, err
	})
	if err != nil {
		return nil, scope, err
	}
	return result, newScope, nil
}

// bind (name value)* body returns a Binding capturing the key-value
// pairs and the body callee, evaluated later in a subscope.
func bind(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 1 || len(args)%2 != 1 {
		return nil, scope, errors.New("'bind' requires an odd number of arguments")
	}
	bound := make(map[string]object.Value, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		name, err := object.GetString(args[i])
		if err != nil {
			return nil, scope, err
		}
		bound[name.Key()] = args[i+1]
	}
	return object.NewBinding(bound, args[len(args)-1]), scope, nil
}

// with (name value)* body creates a subscope, binds the pairs, and
// invokes the body with no arguments in that subscope.
func with(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 1 || len(args)%2 != 1 {
		return nil, scope, errors.New("'with' requires an odd number of arguments")
	}
	sub := scope.Subscope()
	for i := 0; i < len(args)-1; i += 2 {
		name, err := object.GetString(args[i])
		if err != nil {
			return nil, scope, err
		}
		sub = sub.Insert(name, args[i+1])
	}
	result, _, err := eval.Call(args[len(args)-1], nil, sub)
	if err != nil {
		return nil, scope, err
	}
	return result, scope, nil
}
