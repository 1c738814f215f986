package builtins

import (
	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

// stringBuiltin concatenates the byte-string renderings of every
// argument in order; with no arguments it yields the empty string.
func stringBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	parts := make([]bstring.ByteString, len(args))
	for i, a := range args {
		parts[i] = object.Render(a)
	}
	return object.String{Value: bstring.Concat(parts...)}, scope, nil
}
