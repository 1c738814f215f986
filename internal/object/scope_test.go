package object

import (
	"testing"

	"github.com/osyris-lang/osyris/internal/bstring"
)

func name(s string) bstring.ByteString { return bstring.FromString(s) }

func TestScopeLookupWalksChain(t *testing.T) {
	root := NewRootScope()
	root = root.Insert(name("x"), Number(1))
	child := root.Subscope()
	child = child.Insert(name("y"), Number(2))

	if v, ok := child.Lookup(name("x")); !ok || v != Number(1) {
		t.Errorf("expected child to see parent's x, got %v, %v", v, ok)
	}
	if _, ok := root.Lookup(name("y")); ok {
		t.Errorf("parent should not see child's y")
	}
}

func TestInsertMutatesWhenUnique(t *testing.T) {
	s := NewRootScope()
	s2 := s.Insert(name("a"), Number(1))
	if s2 != s {
		t.Errorf("Insert on a uniquely-held scope should mutate in place and preserve identity")
	}
}

func TestInsertClonesWhenShared(t *testing.T) {
	root := NewRootScope()
	root = root.Insert(name("a"), Number(1))
	alias := root // a second Go reference to the same *Scope

	_ = alias
	root.data.retain() // simulate a second owner (e.g. a closure capturing it)
	updated := root.Insert(name("a"), Number(2))

	if updated == root {
		t.Errorf("Insert on a shared scope should clone, not mutate in place")
	}
	if v, _ := root.Lookup(name("a")); v != Number(1) {
		t.Errorf("original scope should be unaffected by the clone's insert, got %v", v)
	}
	if v, _ := updated.Lookup(name("a")); v != Number(2) {
		t.Errorf("cloned scope should see the new value, got %v", v)
	}
}

func TestRLookupReturnsHoldingScope(t *testing.T) {
	root := NewRootScope()
	root = root.Insert(name("a"), Number(1))
	child := root.Subscope()

	_, holding, ok := child.RLookup(name("a"))
	if !ok {
		t.Fatalf("expected to find 'a'")
	}
	if holding != root {
		t.Errorf("RLookup should return the scope that actually holds the binding")
	}
}

func TestMutateSeesUniqueOldValue(t *testing.T) {
	root := NewRootScope()
	root = root.Insert(name("l"), NewList([]Value{Number(1), Number(2)}))

	result, newScope, err := root.Mutate(name("l"), func(old Value) (Value, error) {
		l := old.(List)
		if !l.Unique() {
			t.Errorf("mutate should present a uniquely-held value to its callback")
		}
		return l.Push(Number(3)), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root = newScope
	if result.(List).Items()[2] != Number(3) {
		t.Errorf("expected mutate's result to reflect the pushed element")
	}
	if v, _ := root.Lookup(name("l")); !Equal(v, NewList([]Value{Number(1), Number(2), Number(3)})) {
		t.Errorf("expected scope to observe the mutated list, got %v", v.Inspect())
	}
}

func TestMutateUndefinedNameFails(t *testing.T) {
	root := NewRootScope()
	_, _, err := root.Mutate(name("nope"), func(old Value) (Value, error) { return old, nil })
	if err == nil {
		t.Errorf("expected an error mutating an undefined name")
	}
}
