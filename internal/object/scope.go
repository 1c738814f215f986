package object

import "github.com/osyris-lang/osyris/internal/bstring"

// mapData is the shared, interior-mutable name table a Scope wraps.
// Separating it from scopeData lets Insert test "both the scope cell
// and its map cell are uniquely owned" as two independent checks, the
// way spec §4.2 phrases it.
type mapData struct {
	cell
	m map[string]Value
}

type scopeData struct {
	cell
	parent *Scope
	mapc   *mapData
}

// Scope is a persistent, copy-on-write lexical environment: a name
// table plus an optional parent. Looking up a name walks from the
// current scope to the root; inserting mutates in place when this
// scope is uniquely held, and otherwise clones.
type Scope struct {
	data *scopeData
}

// NewRootScope creates a scope with no parent and no bindings, the
// environment a program (or the REPL) starts evaluating in.
func NewRootScope() *Scope {
	return &Scope{data: &scopeData{
		cell: newCell(),
		mapc: &mapData{cell: newCell(), m: map[string]Value{}},
	}}
}

// Subscope creates a child scope with no local bindings, used for
// lambda and binding calls, `with`, and imported modules.
func (s *Scope) Subscope() *Scope {
	s.data.retain()
	return &Scope{data: &scopeData{
		cell:   newCell(),
		parent: s,
		mapc:   &mapData{cell: newCell(), m: map[string]Value{}},
	}}
}

// Lookup walks the chain from s to the root, returning the first
// binding found.
func (s *Scope) Lookup(name bstring.ByteString) (Value, bool) {
	v, _, ok := s.RLookup(name)
	return v, ok
}

// RLookup walks the chain from s to the root, returning both the
// value and the scope that holds it — needed by `mutate`, which must
// remove the binding from its holding scope before invoking its
// callback.
func (s *Scope) RLookup(name bstring.ByteString) (Value, *Scope, bool) {
	key := name.Key()
	for cur := s; cur != nil; cur = cur.data.parent {
		if v, ok := cur.data.mapc.m[key]; ok {
			return v, cur, true
		}
	}
	return nil, nil, false
}

// HasShallow reports whether name is bound directly in s, without
// walking to the parent.
func (s *Scope) HasShallow(name bstring.ByteString) bool {
	_, ok := s.data.mapc.m[name.Key()]
	return ok
}

// Names returns the names bound directly in s, for diagnostics
// (print-scope-dot) that need to enumerate a scope's bindings
// without walking to the parent.
func (s *Scope) Names() []bstring.ByteString {
	names := make([]bstring.ByteString, 0, len(s.data.mapc.m))
	for k := range s.data.mapc.m {
		names = append(names, bstring.FromString(k))
	}
	return names
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.data.parent }

// Insert binds name to value, performing copy-on-write: if both this
// scope's cell and its map cell are uniquely owned, the map is
// mutated in place and the same *Scope is returned; otherwise the map
// is cloned (every element retained, since it now has a second owning
// map) and a new scope cell sharing the same parent is returned.
func (s *Scope) Insert(name bstring.ByteString, value Value) *Scope {
	key := name.Key()

	if s.data.unique() && s.data.mapc.unique() {
		if old, ok := s.data.mapc.m[key]; ok {
			release(old)
		}
		retain(value)
		s.data.mapc.m[key] = value
		return s
	}

	newMap := make(map[string]Value, len(s.data.mapc.m)+1)
	for k, v := range s.data.mapc.m {
		newMap[k] = v
		retain(v)
	}
	if old, ok := newMap[key]; ok {
		release(old)
	}
	retain(value)
	newMap[key] = value

	if s.data.parent != nil {
		s.data.parent.data.retain()
	}

	return &Scope{data: &scopeData{
		cell:   newCell(),
		parent: s.data.parent,
		mapc:   &mapData{cell: newCell(), m: newMap},
	}}
}

// remove performs the copy-on-write counterpart to Insert: it drops
// name's binding (releasing the value's ownership) and returns the
// (possibly new) scope. Used by Mutate (and so by `mutate`) to strip a
// binding down to a single owner before calling back into user code,
// so the callback observes Unique() == true on the old value.
func (s *Scope) remove(name bstring.ByteString) *Scope {
	key := name.Key()

	if s.data.unique() && s.data.mapc.unique() {
		if old, ok := s.data.mapc.m[key]; ok {
			release(old)
			delete(s.data.mapc.m, key)
		}
		return s
	}

	newMap := make(map[string]Value, len(s.data.mapc.m))
	for k, v := range s.data.mapc.m {
		if k == key {
			continue
		}
		newMap[k] = v
		retain(v)
	}

	if s.data.parent != nil {
		s.data.parent.data.retain()
	}

	return &Scope{data: &scopeData{
		cell:   newCell(),
		parent: s.data.parent,
		mapc:   &mapData{cell: newCell(), m: newMap},
	}}
}

// MaybeInplaceErase removes name from s only if doing so can't affect
// any other alias of this scope (both the scope cell and its map cell
// are uniquely held); it is a diagnostic helper, not used by the
// evaluator's core semantics.
func (s *Scope) MaybeInplaceErase(name bstring.ByteString) bool {
	if !s.data.unique() || !s.data.mapc.unique() {
		return false
	}
	key := name.Key()
	if old, ok := s.data.mapc.m[key]; ok {
		release(old)
		delete(s.data.mapc.m, key)
		return true
	}
	return false
}

// Mutate implements the `mutate` protocol: it removes
// name from its holding scope (wherever in the chain it lives),
// invokes update with the old value, reinserts the result into the
// holding scope, and reports the scope the caller should continue
// evaluating in.
//
// If the holding scope is s itself — the overwhelmingly common case,
// since `mutate` almost always targets a name defined in the current
// scope — the returned scope reflects the reinsert. If the binding
// lives in an ancestor that turned out to be shared (so remove/Insert
// there had to clone), s's own parent link still points at the
// pre-mutation ancestor: s is returned unchanged, and the update is
// visible only through the new ancestor scope object. This mirrors
// the reference implementation's own behavior for shared ancestors.
func (s *Scope) Mutate(name bstring.ByteString, update func(old Value) (Value, error)) (Value, *Scope, error) {
	old, holding, ok := s.RLookup(name)
	if !ok {
		return nil, s, errUndefined(name)
	}

	sameScope := holding == s
	holding = holding.remove(name)

	result, err := update(old)
	if err != nil {
		return nil, s, err
	}

	holding = holding.Insert(name, result)

	if sameScope {
		return result, holding, nil
	}
	return result, s, nil
}

func errUndefined(name bstring.ByteString) error {
	return &UndefinedVariableError{Name: name.String()}
}

// UndefinedVariableError reports a reference to a name with no
// binding anywhere in the scope chain.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return "Variable '" + e.Name + "' doesn't exist"
}
