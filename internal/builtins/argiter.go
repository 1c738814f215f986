// Package builtins implements every native operator wired into the
// root scope: arithmetic and comparison, scope and binding forms,
// control flow, strings, collections, and ports.
package builtins

import (
	"errors"
	"fmt"

	"github.com/osyris-lang/osyris/internal/object"
)

// argCountErr formats the "'<name>' requires 1 argument" message
// shared by the single-argument builtins.
func argCountErr(name string) error {
	return fmt.Errorf("'%s' requires 1 argument", name)
}

// ArgIter walks a builtin's argument slice one value at a time: a
// fixed prefix through NextVal, then either Done to reject extras or
// Rest for a variadic tail. `not` uses it; the other builtins index
// their argument slice directly.
type ArgIter struct {
	args []object.Value
	pos  int
}

// NewArgIter wraps args for sequential consumption.
func NewArgIter(args []object.Value) *ArgIter {
	return &ArgIter{args: args}
}

// HasNext reports whether any argument remains.
func (it *ArgIter) HasNext() bool {
	return it.pos < len(it.args)
}

// NextVal consumes and returns the next argument, failing "Not enough
// parameters" if the iterator is exhausted.
func (it *ArgIter) NextVal() (object.Value, error) {
	if !it.HasNext() {
		return nil, errors.New("Not enough parameters")
	}
	v := it.args[it.pos]
	it.pos++
	return v, nil
}

// Rest returns every argument not yet consumed.
func (it *ArgIter) Rest() []object.Value {
	return it.args[it.pos:]
}

// Done fails "Too many arguments" if the iterator has not been fully
// consumed; callers run it after reading every expected argument to
// reject trailing extras.
func (it *ArgIter) Done() error {
	if it.HasNext() {
		return errors.New("Too many arguments")
	}
	return nil
}
