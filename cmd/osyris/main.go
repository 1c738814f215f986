// Command osyris is the reference CLI driver for the Osyris
// interpreter: it wires the parser, evaluator, and runtime root
// scope defined under internal/ behind the argument parsing, file
// reading, and exit codes spec.md §6 names as the runtime's external
// collaborator.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osyris-lang/osyris/internal/errtrace"
	"github.com/osyris-lang/osyris/internal/eval"
	"github.com/osyris-lang/osyris/internal/parser"
	"github.com/osyris-lang/osyris/internal/replui"
	"github.com/osyris-lang/osyris/internal/runtime"
)

var (
	printAST bool
	noColor  bool
	debug    bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "osyris [path]",
		Short:         "Osyris is an interpreter for the Osyris scripting language",
		Long:          "Osyris runs a source file, or starts an interactive REPL when given none.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
	}
	addFlags(cmd.Flags())
	return cmd
}

// addFlags registers osyris's flags against a *pflag.FlagSet, the
// way cue's cmd/cue separates flag registration from command
// construction so the same flag set could be shared across commands.
func addFlags(f *pflag.FlagSet) {
	f.BoolVar(&printAST, "print-ast", false, "parse each top-level expression and print its textual form; do not evaluate")
	f.BoolVar(&noColor, "no-color", false, "disable styled REPL output")
	f.BoolVar(&debug, "debug", false, "print parse/eval timing of each REPL input to stderr (no effect when running a file)")
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		replui.Start(cwd, replui.Options{NoColor: noColor, Debug: debug})
		return nil
	}

	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	if printAST {
		return runPrintAST(source, absPath)
	}
	return runFile(source, absPath)
}

// runPrintAST parses every top-level expression in source and prints
// its textual form to standard output, without evaluating anything,
// per spec.md §6's --print-ast.
func runPrintAST(source []byte, absPath string) error {
	reader := parser.NewReader(source, absPath)
	for {
		expr, err := reader.Parse()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		if expr == nil {
			return nil
		}
		fmt.Println(expr.String())
	}
}

// runFile parses and evaluates every top-level expression in source
// in order against a fresh root scope, printing the carried stack
// trace and returning a non-nil error on failure per spec.md §6's
// exit-code contract.
func runFile(source []byte, absPath string) error {
	cwd := filepath.Dir(absPath)
	scope := runtime.New(cwd, runtime.DefaultStreams())

	reader := parser.NewReader(source, absPath)
	for {
		expr, err := reader.Parse()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		if expr == nil {
			return nil
		}

		var evalErr error
		_, scope, evalErr = eval.Eval(expr, scope)
		if evalErr != nil {
			fmt.Fprintln(os.Stderr, errtrace.Wrap(evalErr).Error())
			return evalErr
		}
	}
}
