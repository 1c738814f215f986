package builtins

import (
	"errors"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

// lambdaBuiltin builds a Lambda from its parameter names and trailing
// body block; it fails if there's no trailing block or any argument
// before it isn't a string.
func lambdaBuiltin(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
	if len(args) == 0 {
		return nil, scope, errors.New("'lambda' requires a body block")
	}
	body, err := object.GetBlock(args[len(args)-1])
	if err != nil {
		return nil, scope, err
	}
	params := make([]bstring.ByteString, 0, len(args)-1)
	for _, a := range args[:len(args)-1] {
		p, err := object.GetString(a)
		if err != nil {
			return nil, scope, err
		}
		params = append(params, p)
	}
	return object.NewLambda(params, body), scope, nil
}
