// Package importer implements Osyris's module resolution and
// caching, grounded directly on the reference implementation's
// DefaultImporter: a path-keyed cache of already-evaluated modules
// plus a name-keyed table of host-registered built-in modules.
package importer

import (
	"fmt"
	"path/filepath"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/errtrace"
	"github.com/osyris-lang/osyris/internal/eval"
	"github.com/osyris-lang/osyris/internal/object"
	"github.com/osyris-lang/osyris/internal/parser"
)

// Result is the sum type Import returns: exactly one of Err, Value,
// or Code is meaningful.
type Result struct {
	Err   *errtrace.StackTrace
	Value object.Value
	// Code carries an unevaluated module's absolute path and source
	// bytes, left for the caller to parse and run in its own scope.
	Code *Code
}

// Code is the payload of a Result that still needs evaluating.
type Code struct {
	AbsPath string
	Source  []byte
}

// Importer resolves a name to a Result and lets the caller populate
// its cache once a Code result has been evaluated.
type Importer interface {
	Import(ctx *Ctx, name string) Result
	Insert(path string, value object.Value)
}

// Ctx is the import context threaded through a chain of imports: the
// importer to resolve through, the directory relative names resolve
// against, and the root scope every module's child scope extends.
type Ctx struct {
	Importer  Importer
	Cwd       string
	RootScope *object.Scope
}

// DefaultImporter keeps a canonical-path cache of already-evaluated
// modules and a name-keyed table of pre-registered built-in modules
// (standard library modules the host wires in by name rather than by
// file).
type DefaultImporter struct {
	cache    map[string]object.Value
	builtins map[string]object.Value
}

// NewDefaultImporter builds an importer with empty cache and builtin
// tables.
func NewDefaultImporter() *DefaultImporter {
	return &DefaultImporter{cache: map[string]object.Value{}, builtins: map[string]object.Value{}}
}

// AddBuiltin registers a host-provided module value under name, so
// `import name` returns it without touching the filesystem.
func (d *DefaultImporter) AddBuiltin(name string, value object.Value) {
	d.builtins[name] = value
}

func (d *DefaultImporter) Insert(path string, value object.Value) {
	d.cache[path] = value
}

// Import resolves name: absolute paths (`/...`) are used as-is,
// everything else is joined onto ctx.Cwd, then canonicalized
// (symlinks resolved) before checking the cache.
func (d *DefaultImporter) Import(ctx *Ctx, name string) Result {
	if v, ok := d.builtins[name]; ok {
		return Result{Value: v}
	}

	var path string
	if filepath.IsAbs(name) {
		path = name
	} else {
		path = filepath.Join(ctx.Cwd, name)
	}

	abspath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return Result{Err: errtrace.Wrap(err)}
	}

	if v, ok := d.cache[abspath]; ok {
		return Result{Value: v}
	}

	source, err := bstring.ReadFile(abspath)
	if err != nil {
		return Result{Err: errtrace.Wrap(err)}
	}

	return Result{Code: &Code{AbsPath: abspath, Source: source.Bytes()}}
}

// Import resolves name against ctx, running any Code result to
// completion and caching it, and wiring the `import` builtin visible
// to the resulting module so transitive imports resolve relative to
// its own directory.
func Import(ctx *Ctx, name string) (object.Value, error) {
	res := ctx.Importer.Import(ctx, name)
	switch {
	case res.Err != nil:
		return nil, res.Err
	case res.Code != nil:
		return run(ctx, name, res.Code)
	default:
		return res.Value, nil
	}
}

// run parses and evaluates every top-level expression of code in a
// fresh subscope of ctx.RootScope, with a child import context whose
// cwd is code's containing directory. The module's value is the
// result of the last expression (None for an empty file); it is
// cached under code.AbsPath before being returned.
func run(ctx *Ctx, name string, code *Code) (object.Value, error) {
	childCtx := &Ctx{Importer: ctx.Importer, Cwd: filepath.Dir(code.AbsPath), RootScope: ctx.RootScope}

	sub := ctx.RootScope.Subscope()
	sub = sub.Insert(bstring.FromString("import"), object.NewFunc("import", ImportBuiltin(childCtx)))

	reader := parser.NewReader(code.Source, code.AbsPath)
	var result object.Value = object.None{}
	for {
		expr, err := reader.Parse()
		if err != nil {
			return nil, fmt.Errorf("%s: parse error: %w", name, err)
		}
		if expr == nil {
			break
		}
		var evalErr error
		result, sub, evalErr = eval.Eval(expr, sub)
		if evalErr != nil {
			return nil, evalErr
		}
	}

	ctx.Importer.Insert(code.AbsPath, result)
	return result, nil
}

// ImportBuiltin builds the `import name` native function bound to
// ctx, the user-visible entry point the embedder wires into the root
// scope.
func ImportBuiltin(ctx *Ctx) object.NativeFunc {
	return func(args []object.Value, scope *object.Scope) (object.Value, *object.Scope, error) {
		if len(args) != 1 {
			return nil, scope, fmt.Errorf("'import' requires 1 argument")
		}
		name, err := object.GetString(args[0])
		if err != nil {
			return nil, scope, err
		}
		v, err := Import(ctx, name.ToPath())
		if err != nil {
			return nil, scope, err
		}
		return v, scope, nil
	}
}
