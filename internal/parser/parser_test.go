package parser

import (
	"testing"

	"github.com/osyris-lang/osyris/internal/ast"
)

func parseAll(t *testing.T, src string) []ast.Expression {
	t.Helper()
	r := NewReader([]byte(src), "test.osy")
	var out []ast.Expression
	for {
		expr, err := r.Parse()
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		if expr == nil {
			return out
		}
		out = append(out, expr)
	}
}

func TestParseBasicForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"call", "(+ 1 2)", "(+ 1 2)"},
		{"string", `"hi\n"`, "\"hi\n\""},
		{"number", "42", "42"},
		{"negative number", "-42", "-42"},
		{"bare dash", "- ", "-"},
		{"dash-prefixed name", "-foo", "-foo"},
		{"lookup", "foo-bar", "foo-bar"},
		{"quote name", "'foo", `"foo"`},
		{"quote block", "'(1 2)", "'(1 2)"},
		{"braced block", "{ 1 2 }", "'(1 2)"},
		{"infix", "[1 + 2]", "(+ 1 2)"},
		{"chained infix", "[1 + 2 - 3]", "(- (+ 1 2) 3)"},
		{"dot number", "l.0", "(l 0)"},
		{"dot name", "d.x", `(d "x")`},
		{"dot infix", "l.[i + 1]", "(l (+ i 1))"},
		{"dot call", "obj.(f x)", "(obj (f x))"},
		{"base number", "16#ff", "255"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exprs := parseAll(t, tt.src)
			if len(exprs) != 1 {
				t.Fatalf("expected exactly 1 expression, got %d", len(exprs))
			}
			if got := exprs[0].String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFractionalBase(t *testing.T) {
	exprs := parseAll(t, "2#101.1")
	if len(exprs) != 1 {
		t.Fatalf("expected 1 expression, got %d", len(exprs))
	}
	n, ok := exprs[0].(ast.NumberLit)
	if !ok {
		t.Fatalf("expected NumberLit, got %T", exprs[0])
	}
	if n.Value != 5.5 {
		t.Errorf("2#101.1 = %v, want 5.5", n.Value)
	}
}

func TestParsePreservesTopLevelSequence(t *testing.T) {
	exprs := parseAll(t, "(def 'a 1) (def 'b 2) a")
	if len(exprs) != 3 {
		t.Fatalf("expected 3 top-level expressions, got %d", len(exprs))
	}
}

func TestParseEOFIsRepeatable(t *testing.T) {
	r := NewReader([]byte("1"), "f")
	if _, err := r.Parse(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expr, err := r.Parse()
	if err != nil || expr != nil {
		t.Fatalf("expected (nil, nil) at EOF, got (%v, %v)", expr, err)
	}
	expr, err = r.Parse()
	if err != nil || expr != nil {
		t.Fatalf("expected (nil, nil) on second EOF call, got (%v, %v)", expr, err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `"unterminated`},
		{"bad escape", `"\q"`},
		{"bad base", "99#1"},
		{"trailing junk in number", "1abc!"},
		{"unclosed call", "(+ 1 2"},
		{"unclosed block", "{ 1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader([]byte(tt.src), "f")
			_, err := r.Parse()
			if err == nil {
				t.Errorf("expected a parse error for %q", tt.src)
			}
		})
	}
}

// TestParsePrintRoundTrip checks spec §8's universal law: parsing the
// textual form of an already-parsed expression yields an expression
// whose textual form is unchanged.
func TestParsePrintRoundTrip(t *testing.T) {
	srcs := []string{
		`(+ 1 2 3)`,
		`(def 'sq (lambda 'x { [x * x] }))`,
		`'(1 2 3)`,
		`(list-map l (lambda 'v 'i { v }))`,
	}
	for _, src := range srcs {
		exprs := parseAll(t, src)
		if len(exprs) != 1 {
			t.Fatalf("expected 1 expression from %q, got %d", src, len(exprs))
		}
		printed := exprs[0].String()

		reparsed := parseAll(t, printed)
		if len(reparsed) != 1 {
			t.Fatalf("reparsing %q produced %d expressions", printed, len(reparsed))
		}
		if got := reparsed[0].String(); got != printed {
			t.Errorf("round trip mismatch: parse(print(e)) = %q, want %q", got, printed)
		}
	}
}
