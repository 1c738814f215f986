package builtins

import "github.com/osyris-lang/osyris/internal/object"

func add(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return object.Number(0), scope, nil
	}
	sum := object.ToNum(args[0])
	for _, a := range args[1:] {
		sum += object.ToNum(a)
	}
	return object.Number(sum), scope, nil
}

func sub(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return object.Number(0), scope, nil
	}
	if len(args) == 1 {
		return object.Number(-object.ToNum(args[0])), scope, nil
	}
	acc := object.ToNum(args[0])
	for _, a := range args[1:] {
		acc -= object.ToNum(a)
	}
	return object.Number(acc), scope, nil
}

func mul(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return object.Number(0), scope, nil
	}
	acc := object.ToNum(args[0])
	for _, a := range args[1:] {
		acc *= object.ToNum(a)
	}
	return object.Number(acc), scope, nil
}

func div(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return object.Number(0), scope, nil
	}
	if len(args) == 1 {
		return object.Number(1 / object.ToNum(args[0])), scope, nil
	}
	acc := object.ToNum(args[0])
	for _, a := range args[1:] {
		acc /= object.ToNum(a)
	}
	return object.Number(acc), scope, nil
}

func mod(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return object.Number(0), scope, nil
	}
	acc := object.ToNum(args[0])
	for _, a := range args[1:] {
		d := object.ToNum(a)
		acc = float64(int64(acc) % int64(d))
	}
	return object.Number(acc), scope, nil
}

func not(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	it := NewArgIter(args)
	v, err := it.NextVal()
	if err != nil {
		return nil, scope, err
	}
	if err := it.Done(); err != nil {
		return nil, scope, err
	}
	return object.Bool(!object.Truthy(v)), scope, nil
}

func eq(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) <= 1 {
		return object.Bool(true), scope, nil
	}
	for i := 0; i < len(args)-1; i++ {
		if !object.Equal(args[i], args[i+1]) {
			return object.Bool(false), scope, nil
		}
	}
	return object.Bool(true), scope, nil
}

func neq(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) <= 1 {
		return object.Bool(false), scope, nil
	}
	for i := 0; i < len(args)-1; i++ {
		if !object.Equal(args[i], args[i+1]) {
			return object.Bool(true), scope, nil
		}
	}
	return object.Bool(false), scope, nil
}

func chain(args []object.Value, scope *object.Scope, cmp func(a, b float64) bool) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return object.Bool(true), scope, nil
	}
	for i := 0; i < len(args)-1; i++ {
		if !cmp(object.ToNum(args[i]), object.ToNum(args[i+1])) {
			return object.Bool(false), scope, nil
		}
	}
	return object.Bool(true), scope, nil
}

func lte(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	return chain(args, scope, func(a, b float64) bool { return a <= b })
}

func lt(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	return chain(args, scope, func(a, b float64) bool { return a < b })
}

func gte(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	return chain(args, scope, func(a, b float64) bool { return a >= b })
}

func gt(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	return chain(args, scope, func(a, b float64) bool { return a > b })
}

func or(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	for _, a := range args {
		if object.Truthy(a) {
			return object.Bool(true), scope, nil
		}
	}
	return object.Bool(false), scope, nil
}

func and(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	for _, a := range args {
		if !object.Truthy(a) {
			return object.Bool(false), scope, nil
		}
	}
	return object.Bool(true), scope, nil
}

func coalesce(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	for _, a := range args {
		if _, isNone := a.(object.None); !isNone {
			return a, scope, nil
		}
	}
	return object.None{}, scope, nil
}
