// Package runtime assembles the root scope a program or REPL starts
// evaluating in: every built-in operator, the standard-stream ports,
// and the import entry point, per spec.md §6's "pre-defined names at
// program start".
package runtime

import (
	"io"
	"os"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/builtins"
	"github.com/osyris-lang/osyris/internal/importer"
	"github.com/osyris-lang/osyris/internal/object"
	"github.com/osyris-lang/osyris/internal/port"
)

// Streams lets a host (the CLI, or a test harness) substitute the
// standard streams bound to stdin/stdout/stderr.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStreams wires the process's own stdin/stdout/stderr.
func DefaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// New builds a root scope bound to cwd (the directory `import`
// resolves relative names against) and streams, with every built-in
// and the pre-defined names installed.
func New(cwd string, streams Streams) *object.Scope {
	scope := object.NewRootScope()

	scope = scope.Insert(bstring.FromString("none"), object.None{})
	scope = scope.Insert(bstring.FromString("true"), object.Bool(true))
	scope = scope.Insert(bstring.FromString("false"), object.Bool(false))

	scope = scope.Insert(bstring.FromString("stdin"), port.NewStd("stdin", streams.In, nil))
	scope = scope.Insert(bstring.FromString("stdout"), port.NewStd("stdout", nil, streams.Out))
	scope = scope.Insert(bstring.FromString("stderr"), port.NewStd("stderr", nil, streams.Err))

	for _, b := range builtins.Builtins {
		scope = scope.Insert(bstring.FromString(b.Name), object.NewFunc(b.Name, b.Fn))
	}

	imp := importer.NewDefaultImporter()
	ctx := &importer.Ctx{Importer: imp, Cwd: cwd, RootScope: scope}
	scope = scope.Insert(bstring.FromString("import"), object.NewFunc("import", importer.ImportBuiltin(ctx)))

	return scope
}
