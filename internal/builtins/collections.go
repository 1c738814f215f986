package builtins

import (
	"errors"

	"github.com/osyris-lang/osyris/internal/eval"
	"github.com/osyris-lang/osyris/internal/object"
)

func list(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	return object.NewList(args), scope, nil
}

func listPush(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 1 {
		return nil, scope, errors.New("'list-push' requires a list")
	}
	l, err := object.GetList(args[0])
	if err != nil {
		return nil, scope, err
	}
	return l.Push(args[1:]...), scope, nil
}

func listPop(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	l, err := oneList(args, "list-pop")
	if err != nil {
		return nil, scope, err
	}
	return l.Pop(), scope, nil
}

func listLast(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	l, err := oneList(args, "list-last")
	if err != nil {
		return nil, scope, err
	}
	return l.Last(), scope, nil
}

func listInsert(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 2 {
		return nil, scope, errors.New("'list-insert' requires a list and an index")
	}
	l, err := object.GetList(args[0])
	if err != nil {
		return nil, scope, err
	}
	idx, err := object.GetNumber(args[1])
	if err != nil {
		return nil, scope, err
	}
	result, err := l.InsertAt(int(idx), args[2:]...)
	if err != nil {
		return nil, scope, err
	}
	return result, scope, nil
}

func listRemove(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, scope, errors.New("'list-remove' requires a list, an index, and an optional end")
	}
	l, err := object.GetList(args[0])
	if err != nil {
		return nil, scope, err
	}
	idx, err := object.GetNumber(args[1])
	if err != nil {
		return nil, scope, err
	}
	end := int(idx) + 1
	if len(args) == 3 {
		e, err := object.GetNumber(args[2])
		if err != nil {
			return nil, scope, err
		}
		end = int(e)
	}
	result, err := l.RemoveRange(int(idx), end)
	if err != nil {
		return nil, scope, err
	}
	return result, scope, nil
}

func listMap(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 2 {
		return nil, scope, errors.New("'list-map' requires a list and a callback")
	}
	l, err := object.GetList(args[0])
	if err != nil {
		return nil, scope, err
	}
	cb := args[1]
	result, err := l.MapInPlace(func(v object.Value, idx int) (object.Value, error) {
		r, _, err := eval.Call(cb, []object.Value{v, object.Number(idx)}, scope)
		return r, err
	})
	if err != nil {
		return nil, scope, err
	}
	return result, scope, nil
}

func listFor(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 2 {
		return nil, scope, errors.New("'list-for' requires a list and a callback")
	}
	l, err := object.GetList(args[0])
	if err != nil {
		return nil, scope, err
	}
	cb := args[1]
	var result object.Value = object.None{}
	for _, v := range l.Items() {
		result, _, err = eval.Call(cb, []object.Value{v}, scope)
		if err != nil {
			return nil, scope, err
		}
	}
	return result, scope, nil
}

func listLen(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	l, err := oneList(args, "list-len")
	if err != nil {
		return nil, scope, err
	}
	return object.Number(len(l.Items())), scope, nil
}

func oneList(args []object.Value, name string) (object.List, error) {
	if len(args) != 1 {
		return object.List{}, errors.New("'" + name + "' requires exactly 1 argument")
	}
	return object.GetList(args[0])
}

func dict(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args)%2 != 0 {
		return nil, scope, errors.New("'dict' requires an even number of arguments")
	}
	pairs := make(map[string]object.Value, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, err := object.GetString(args[i])
		if err != nil {
			return nil, scope, err
		}
		pairs[key.Key()] = args[i+1]
	}
	return object.NewDict(pairs), scope, nil
}

func dictSet(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 1 || len(args)%2 != 1 {
		return nil, scope, errors.New("'dict-set' requires a dict and an even number of key-value pairs")
	}
	d, err := object.GetDict(args[0])
	if err != nil {
		return nil, scope, err
	}
	pairs := make(map[string]object.Value, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		key, err := object.GetString(args[i])
		if err != nil {
			return nil, scope, err
		}
		pairs[key.Key()] = args[i+1]
	}
	return d.SetMany(pairs), scope, nil
}

// dictMutate behaves like mutate but against a dict's key, per §4.5:
// remove the key's value, invoke cb(value, extras...), reinsert the
// result, and return the resulting dict, matching the collections
// header's "always return the resulting List/Dict" contract — unlike
// Scope.Mutate, dictMutate has no scope/name context to compensate
// for the dict's own refcount inflation, so the caller must rebind
// the returned clone (e.g. `(def 'd (dict-mutate d 'x cb))`).
func dictMutate(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) < 3 {
		return nil, scope, errors.New("'dict-mutate' requires a dict, a key, and a callback")
	}
	d, err := object.GetDict(args[0])
	if err != nil {
		return nil, scope, err
	}
	key, err := object.GetString(args[1])
	if err != nil {
		return nil, scope, err
	}
	cb := args[2]
	extras := args[3:]

	d, removed := d.Remove(key.Key())
	callArgs := append([]object.Value{removed}, extras...)
	result, _, err := eval.Call(cb, callArgs, scope)
	if err != nil {
		return nil, scope, err
	}
	d = d.SetMany(map[string]object.Value{key.Key(): result})
	return d, scope, nil
}
