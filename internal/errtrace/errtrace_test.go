package errtrace

import (
	"errors"
	"strings"
	"testing"

	"github.com/osyris-lang/osyris/internal/ast"
	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

func TestNewCarriesPayloadAndMessage(t *testing.T) {
	st := New(object.String{Value: bstring.FromString("boom")})
	if st.Message != "boom" {
		t.Errorf("Message = %q, want %q", st.Message, "boom")
	}
	if st.Payload.Inspect() != `"boom"` {
		t.Errorf("Payload.Inspect() = %q", st.Payload.Inspect())
	}
	if len(st.Trace) != 0 {
		t.Errorf("a fresh StackTrace should have no frames")
	}
}

func TestWrapLiftsPlainError(t *testing.T) {
	st := Wrap(errors.New("boom"))
	if st.Message != "boom" {
		t.Errorf("Message = %q, want %q", st.Message, "boom")
	}
	if st.Payload.Kind() != object.KindString {
		t.Errorf("Wrap should lift a plain error to a String payload, got %v", st.Payload.Kind())
	}
}

// TestWrapIsIdempotent is a regression check: Wrap previously called an
// undefined helper in this path and would have failed to compile.
func TestWrapIsIdempotent(t *testing.T) {
	original := New(object.String{Value: bstring.FromString("boom")})
	original.Push(ast.Location{File: "a.osy", Line: 1, Column: 1}, "f")

	wrapped := Wrap(original)
	if wrapped != original {
		t.Errorf("Wrap should return the same *StackTrace unchanged when already one")
	}
	if len(wrapped.Trace) != 1 {
		t.Errorf("Wrap should not add or lose frames, got %d", len(wrapped.Trace))
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Errorf("Wrap(nil) should be nil")
	}
}

func TestPushAccumulatesFramesOutermostLast(t *testing.T) {
	st := New(object.String{Value: bstring.FromString("boom")})
	st.Push(ast.Location{File: "a.osy", Line: 1, Column: 1}, "inner")
	st.Push(ast.Location{File: "a.osy", Line: 2, Column: 1}, "outer")

	if len(st.Trace) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(st.Trace))
	}
	if st.Trace[0].Callee != "inner" || st.Trace[1].Callee != "outer" {
		t.Errorf("frames out of order: %+v", st.Trace)
	}

	rendered := st.Error()
	if !strings.HasPrefix(rendered, "boom\n") {
		t.Errorf("Error() should start with the message, got %q", rendered)
	}
	if !strings.Contains(rendered, "a.osy: 1:1: inner") {
		t.Errorf("Error() missing inner frame: %q", rendered)
	}
	if !strings.Contains(rendered, "a.osy: 2:1: outer") {
		t.Errorf("Error() missing outer frame: %q", rendered)
	}
}
