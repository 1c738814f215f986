package replui

import (
	"testing"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/runtime"
)

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"(+ 1 2)", true},
		{"(+ 1 (* 2 3))", true},
		{"(def 'f (lambda 'x {", false},
		{"}", false},
		{")", false},
		{"{ [1 + 2] }", true},
		{"", true},
		{"(list 1 2] 3)", false},
	}
	for _, tt := range tests {
		if got := isBalanced(tt.input); got != tt.want {
			t.Errorf("isBalanced(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEvalCmdReturnsResultAndThreadsScope(t *testing.T) {
	scope := runtime.New(".", runtime.Streams{})
	msg := evalCmd("(def 'x 5) (+ x 1)", scope, false)().(evalResultMsg)

	if msg.isError {
		t.Fatalf("unexpected error: %s", msg.output)
	}
	if msg.output != "6" {
		t.Errorf("output = %q, want %q", msg.output, "6")
	}
	if v, ok := msg.scope.Lookup(bstring.FromString("x")); !ok || v.Inspect() != "5" {
		t.Errorf("expected the returned scope to carry the def'd 'x' binding")
	}
}

func TestEvalCmdReportsParseErrors(t *testing.T) {
	scope := runtime.New(".", runtime.Streams{})
	msg := evalCmd("(+ 1", scope, false)().(evalResultMsg)
	if !msg.isError {
		t.Errorf("expected an unclosed call to report a parse error")
	}
}

func TestEvalCmdReportsEvalErrorsWithStackTrace(t *testing.T) {
	scope := runtime.New(".", runtime.Streams{})
	msg := evalCmd("undefined-name", scope, false)().(evalResultMsg)
	if !msg.isError {
		t.Errorf("expected an undefined lookup to report an error")
	}
}
