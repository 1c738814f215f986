package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunFileEvaluatesSuccessfully(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.osy")
	if err := os.WriteFile(path, []byte(`(def 'x 1) (+ x 1)`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs failed: %v", err)
	}

	if err := runFile(source, absPath); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestRunFilePropagatesEvalError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.osy")
	if err := os.WriteFile(path, []byte(`undefined-name`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	source, _ := os.ReadFile(path)
	absPath, _ := filepath.Abs(path)

	if err := runFile(source, absPath); err == nil {
		t.Errorf("expected an error for an undefined lookup")
	}
}

func TestRunFilePropagatesParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unclosed.osy")
	if err := os.WriteFile(path, []byte(`(+ 1 2`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	source, _ := os.ReadFile(path)
	absPath, _ := filepath.Abs(path)

	if err := runFile(source, absPath); err == nil {
		t.Errorf("expected a parse error for an unclosed call")
	}
}

func TestRunPrintASTDoesNotEvaluate(t *testing.T) {
	source := []byte(`(error "should never run if evaluated")`)
	if err := runPrintAST(source, "/virtual/path.osy"); err != nil {
		t.Errorf("printing the AST should never fail for valid syntax, got %v", err)
	}
}

func TestRunPrintASTReportsParseErrors(t *testing.T) {
	if err := runPrintAST([]byte(`"unterminated`), "/virtual/path.osy"); err == nil {
		t.Errorf("expected a parse error")
	}
}

func TestNewRootCmdRegistersFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"print-ast", "no-color", "debug"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected a %q flag to be registered", name)
		}
	}
}
