package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
	"github.com/osyris-lang/osyris/internal/port"
)

func TestWriteScopeDotEmitsNamesAndParentEdge(t *testing.T) {
	root := object.NewRootScope()
	root = root.Insert(bstring.FromString("x"), object.Number(1))
	child := root.Subscope()
	child = child.Insert(bstring.FromString("y"), object.Number(2))

	var buf bytes.Buffer
	if err := writeScopeDot(&buf, child); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph d {\n") {
		t.Errorf("expected a digraph header, got %q", out)
	}
	if !strings.Contains(out, `label="y"`) {
		t.Errorf("expected the child's own binding 'y' to appear, got %q", out)
	}
	if !strings.Contains(out, `label="parent"`) {
		t.Errorf("expected a parent edge, got %q", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("expected the digraph to close, got %q", out)
	}
}

// TestPrintScopeDotWritesThroughStdoutPort exercises the registered
// print-scope-dot builtin itself (not just the writeScopeDot helper),
// verifying it writes through the scope's "stdout" binding rather
// than the process's own os.Stdout, so a host that substitutes
// runtime.Streams.Out observes its output.
func TestPrintScopeDotWritesThroughStdoutPort(t *testing.T) {
	var buf bytes.Buffer
	s := object.NewRootScope()
	s = s.Insert(bstring.FromString("stdout"), port.NewStd("stdout", nil, &buf))
	s = s.Insert(bstring.FromString("x"), object.Number(1))

	if _, _, err := printScopeDot(nil, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "digraph d {\n") {
		t.Errorf("expected the dot graph to be written to the stdout port, got %q", out)
	}
	if !strings.Contains(out, `label="x"`) {
		t.Errorf("expected the binding 'x' to appear, got %q", out)
	}
}

// TestPrintScopeDotRequiresStdoutPort reports an error when the scope
// has no stdout binding, rather than silently falling back to the
// process's os.Stdout.
func TestPrintScopeDotRequiresStdoutPort(t *testing.T) {
	s := object.NewRootScope()
	if _, _, err := printScopeDot(nil, s); err == nil {
		t.Error("expected an error when 'stdout' is not bound in scope")
	}
}
