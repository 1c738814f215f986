package object

import "testing"

// TestListCopyOnWriteIdentity is spec §8's law: after `def 'a (list 1
// 2 3); def 'b a; list-push b 4`, a is unchanged and b has the pushed
// element — sharing a List value and pushing onto one alias must not
// affect the other once the list is no longer uniquely held.
func TestListCopyOnWriteIdentity(t *testing.T) {
	a := NewList([]Value{Number(1), Number(2), Number(3)})
	a.data.retain() // a second owner ("b" aliasing the same list), as a scope insert would do

	b := a.Push(Number(4))

	if !Equal(a, NewList([]Value{Number(1), Number(2), Number(3)})) {
		t.Errorf("original list should be unaffected by a copy-on-write push, got %s", a.Inspect())
	}
	if !Equal(b, NewList([]Value{Number(1), Number(2), Number(3), Number(4)})) {
		t.Errorf("pushed list should contain the new element, got %s", b.Inspect())
	}
}

func TestListPushMutatesInPlaceWhenUnique(t *testing.T) {
	a := NewList([]Value{Number(1), Number(2)})
	b := a.Push(Number(3))
	if a.data != b.data {
		t.Errorf("pushing onto a uniquely-held list should mutate in place")
	}
}

func TestListPopOnEmptyIsNoOp(t *testing.T) {
	a := NewList(nil)
	b := a.Pop()
	if len(b.Items()) != 0 {
		t.Errorf("popping an empty list should stay empty")
	}
}

func TestListInsertOutOfRangeErrors(t *testing.T) {
	a := NewList([]Value{Number(1)})
	if _, err := a.InsertAt(5, Number(2)); err == nil {
		t.Errorf("expected an error inserting out of range")
	}
	if _, err := a.InsertAt(-1, Number(2)); err == nil {
		t.Errorf("expected an error inserting at a negative index")
	}
}

func TestListRemoveOutOfRangeErrors(t *testing.T) {
	a := NewList([]Value{Number(1)})
	if _, err := a.RemoveRange(5, 6); err == nil {
		t.Errorf("expected an error removing out of range")
	}
}

func TestListRemoveRange(t *testing.T) {
	a := NewList([]Value{Number(1), Number(2), Number(3), Number(4)})
	b, err := a.RemoveRange(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(b, NewList([]Value{Number(1), Number(4)})) {
		t.Errorf("RemoveRange(1,3) = %s, want (list 1 4)", b.Inspect())
	}
}

// TestDictCopyOnWriteIdentity mirrors the list law for dicts.
func TestDictCopyOnWriteIdentity(t *testing.T) {
	d := NewDict(map[string]Value{"x": Number(1)})
	d.data.retain()

	d2 := d.SetMany(map[string]Value{"x": Number(99)})

	if v, _ := d.Get("x"); v != Number(1) {
		t.Errorf("original dict should be unaffected, got %v", v)
	}
	if v, _ := d2.Get("x"); v != Number(99) {
		t.Errorf("updated dict should see the new value, got %v", v)
	}
}

func TestDictRemove(t *testing.T) {
	d := NewDict(map[string]Value{"x": Number(1)})
	d2, removed := d.Remove("x")
	if removed != Number(1) {
		t.Errorf("Remove should return the removed value, got %v", removed)
	}
	if _, ok := d2.Get("x"); ok {
		t.Errorf("key should be gone after Remove")
	}
}

func TestListMapInPlace(t *testing.T) {
	l := NewList([]Value{Number(1), Number(2), Number(3)})
	out, err := l.MapInPlace(func(v Value, idx int) (Value, error) {
		return Number(float64(v.(Number)) * 10), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(out, NewList([]Value{Number(10), Number(20), Number(30)})) {
		t.Errorf("MapInPlace result = %s", out.Inspect())
	}
}
