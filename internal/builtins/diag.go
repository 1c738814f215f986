package builtins

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

// printScopeDot emits a Graphviz dot rendering of scope's chain
// through the stdout port, the way `write` writes through the port a
// caller passes it, so a host that substitutes runtime.Streams.Out
// sees this builtin's output too. It exists purely as a debugging aid
// for inspecting the reference graph and is not required for language
// semantics.
func printScopeDot(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	v, ok := scope.Lookup(bstring.FromString("stdout"))
	if !ok {
		return nil, scope, errors.New("'print-scope-dot' requires a 'stdout' port in scope")
	}
	p, err := object.GetPort(v)
	if err != nil {
		return nil, scope, err
	}

	var buf bytes.Buffer
	if err := writeScopeDot(&buf, scope); err != nil {
		return nil, scope, err
	}
	if err := p.Backend().Write(object.String{Value: bstring.FromString(buf.String())}); err != nil {
		return nil, scope, err
	}
	return object.None{}, scope, nil
}

func writeScopeDot(w io.Writer, scope *object.Scope) error {
	if _, err := fmt.Fprintln(w, "digraph d {"); err != nil {
		return err
	}
	seen := map[*object.Scope]bool{}
	if err := writeScopeNode(w, scope, seen); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func writeScopeNode(w io.Writer, scope *object.Scope, seen map[*object.Scope]bool) error {
	if scope == nil || seen[scope] {
		return nil
	}
	seen[scope] = true
	if _, err := fmt.Fprintf(w, "s%p [label=\"scope\"]\n", scope); err != nil {
		return err
	}
	for _, name := range scope.Names() {
		v, ok := scope.Lookup(name)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "s%p -> %q [label=%q]\n", scope, v.Inspect(), name.String()); err != nil {
			return err
		}
	}
	if parent := scope.Parent(); parent != nil {
		if err := writeScopeNode(w, parent, seen); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "s%p -> s%p [label=\"parent\"]\n", scope, parent); err != nil {
			return err
		}
	}
	return nil
}
