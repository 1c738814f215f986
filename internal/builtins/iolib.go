package builtins

import (
	"github.com/osyris-lang/osyris/internal/object"
	"github.com/osyris-lang/osyris/internal/port"
)

// open path opens an existing file for reading as a Port.
func open(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	path, err := onePath(args, "open")
	if err != nil {
		return nil, scope, err
	}
	p, err := port.Open(path)
	if err != nil {
		return nil, scope, err
	}
	return p, scope, nil
}

// create path truncates-or-creates a file for writing as a Port.
func create(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	path, err := onePath(args, "create")
	if err != nil {
		return nil, scope, err
	}
	p, err := port.Create(path)
	if err != nil {
		return nil, scope, err
	}
	return p, scope, nil
}

func onePath(args []object.Value, name string) (string, error) {
	if len(args) != 1 {
		return "", argCountErr(name)
	}
	s, err := object.GetString(args[0])
	if err != nil {
		return "", err
	}
	return s.ToPath(), nil
}
