package builtins

import (
	"errors"

	"github.com/osyris-lang/osyris/internal/object"
)

// read port (size)? reads either the whole remaining contents of
// port, or exactly size bytes when given.
func read(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, scope, errors.New("'read' requires a port and an optional size")
	}
	p, err := object.GetPort(args[0])
	if err != nil {
		return nil, scope, err
	}
	if len(args) == 1 {
		v, err := p.Backend().Read()
		if err != nil {
			return nil, scope, err
		}
		return v, scope, nil
	}
	n, err := object.GetNumber(args[1])
	if err != nil {
		return nil, scope, err
	}
	v, err := p.Backend().ReadChunk(int(n))
	if err != nil {
		return nil, scope, err
	}
	return v, scope, nil
}

// write port val writes val's byte-string rendering to port.
func write(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 2 {
		return nil, scope, errors.New("'write' requires a port and a value")
	}
	p, err := object.GetPort(args[0])
	if err != nil {
		return nil, scope, err
	}
	if err := p.Backend().Write(args[1]); err != nil {
		return nil, scope, err
	}
	return object.None{}, scope, nil
}

// seek port offset (whence)? repositions port; whence defaults to
// "set" and otherwise must be "set", "end", or "current".
func seek(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, scope, errors.New("'seek' requires a port, an offset, and an optional whence")
	}
	p, err := object.GetPort(args[0])
	if err != nil {
		return nil, scope, err
	}
	offset, err := object.GetNumber(args[1])
	if err != nil {
		return nil, scope, err
	}
	whence := "set"
	if len(args) == 3 {
		w, err := object.GetString(args[2])
		if err != nil {
			return nil, scope, err
		}
		whence = w.String()
		switch whence {
		case "set", "end", "current":
		default:
			return nil, scope, errors.New("'seek' whence must be \"set\", \"end\", or \"current\"")
		}
	}
	if err := p.Backend().Seek(whence, int64(offset)); err != nil {
		return nil, scope, err
	}
	return object.None{}, scope, nil
}
