package object

import "fmt"

// cowList returns l unchanged if it is uniquely held, or an
// independent clone otherwise — the copy-on-write decision every
// mutating list builtin makes before touching the backing slice.
func cowList(l List) List {
	if l.Unique() {
		return l
	}
	return CloneList(l)
}

// Push appends vals to l, copy-on-write, and returns the resulting
// List.
func (l List) Push(vals ...Value) List {
	l = cowList(l)
	return l.Mutate(func(items []Value) []Value {
		for _, v := range vals {
			retain(v)
		}
		return append(items, vals...)
	})
}

// Pop removes the last element of l, copy-on-write, and returns the
// resulting List. Popping an empty list is a no-op.
func (l List) Pop() List {
	l = cowList(l)
	return l.Mutate(func(items []Value) []Value {
		if len(items) == 0 {
			return items
		}
		release(items[len(items)-1])
		return items[:len(items)-1]
	})
}

// Last returns the last element of l, or None if l is empty.
func (l List) Last() Value {
	items := l.Items()
	if len(items) == 0 {
		return None{}
	}
	return items[len(items)-1]
}

// InsertAt inserts vals before idx, copy-on-write, failing if idx is
// outside [0, len(l)].
func (l List) InsertAt(idx int, vals ...Value) (List, error) {
	items := l.Items()
	if idx < 0 || idx > len(items) {
		return List{}, fmt.Errorf("'list-insert' index %d out of range", idx)
	}
	l = cowList(l)
	return l.Mutate(func(items []Value) []Value {
		for _, v := range vals {
			retain(v)
		}
		out := make([]Value, 0, len(items)+len(vals))
		out = append(out, items[:idx]...)
		out = append(out, vals...)
		out = append(out, items[idx:]...)
		return out
	}), nil
}

// RemoveRange removes items in [idx, end), copy-on-write, failing if
// idx is outside [0, len(l)].
func (l List) RemoveRange(idx, end int) (List, error) {
	items := l.Items()
	if idx < 0 || idx > len(items) {
		return List{}, fmt.Errorf("'list-remove' index %d out of range", idx)
	}
	if end > len(items) {
		end = len(items)
	}
	if end < idx {
		end = idx
	}
	l = cowList(l)
	return l.Mutate(func(items []Value) []Value {
		for _, v := range items[idx:end] {
			release(v)
		}
		out := make([]Value, 0, len(items)-(end-idx))
		out = append(out, items[:idx]...)
		out = append(out, items[end:]...)
		return out
	}), nil
}

// MapInPlace replaces every element of l with fn(element, index),
// copy-on-write.
func (l List) MapInPlace(fn func(Value, int) (Value, error)) (List, error) {
	l = cowList(l)
	var outerErr error
	result := l.Mutate(func(items []Value) []Value {
		for i, v := range items {
			nv, err := fn(v, i)
			if err != nil {
				outerErr = err
				return items
			}
			release(v)
			retain(nv)
			items[i] = nv
		}
		return items
	})
	if outerErr != nil {
		return List{}, outerErr
	}
	return result, nil
}

// cowDict returns d unchanged if uniquely held, or an independent
// clone otherwise.
func cowDict(d Dict) Dict {
	if d.Unique() {
		return d
	}
	return CloneDict(d)
}

// SetMany binds each key to its value in d, copy-on-write, and
// returns the resulting Dict.
func (d Dict) SetMany(pairs map[string]Value) Dict {
	d = cowDict(d)
	return d.Mutate(func(m map[string]Value) {
		for k, v := range pairs {
			if old, ok := m[k]; ok {
				release(old)
			}
			retain(v)
			m[k] = v
		}
	})
}

// Remove deletes key from d, copy-on-write, returning the resulting
// Dict and the removed value (or None if key was absent).
func (d Dict) Remove(key string) (Dict, Value) {
	var removed Value = None{}
	d = cowDict(d)
	d = d.Mutate(func(m map[string]Value) {
		if old, ok := m[key]; ok {
			removed = old
			release(old)
			delete(m, key)
		}
	})
	return d, removed
}
