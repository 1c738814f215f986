package ast

import (
	"testing"

	"github.com/osyris-lang/osyris/internal/bstring"
)

func TestStringLitEscaping(t *testing.T) {
	lit := StringLit{Value: bstring.FromString(`say "hi"\n`)}
	got := lit.String()
	want := `"say \"hi\"\\n"`
	if got != want {
		t.Errorf("StringLit.String() = %q, want %q", got, want)
	}
}

func TestCallTextualForm(t *testing.T) {
	call := Call{Exprs: []Expression{
		Lookup{Name: bstring.FromString("+")},
		NumberLit{Value: 1},
		NumberLit{Value: 2},
	}}
	if got, want := call.String(), "(+ 1 2)"; got != want {
		t.Errorf("Call.String() = %q, want %q", got, want)
	}
}

func TestBlockTextualForm(t *testing.T) {
	block := Block{Exprs: []Expression{
		Lookup{Name: bstring.FromString("x")},
		NumberLit{Value: 3},
	}}
	if got, want := block.String(), "'(x 3)"; got != want {
		t.Errorf("Block.String() = %q, want %q", got, want)
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{File: "main.osy", Line: 4, Column: 7}
	if got, want := loc.String(), "main.osy: 4:7"; got != want {
		t.Errorf("Location.String() = %q, want %q", got, want)
	}
}
