package object

// cell is the shared, reference-counted header embedded in every
// interior-mutable value (List, Dict, the Scope map, and the Port
// wrapper). Osyris is single-threaded, so the count is a plain int,
// not an atomic one: spec §5 is explicit that shared values use
// non-atomic reference counts.
//
// Go has no destructor hook, so Release is only ever called at the
// well-defined points the language semantics name explicitly (mutate
// removing a binding from its holding scope, a scope slot being
// overwritten, a list/dict element being dropped). A child scope's
// retain on its parent is never released when the child becomes
// unreachable, so Unique can conservatively report "shared" even after
// the only real alias has been garbage collected. That never produces
// a wrong answer: it only means the copy-on-write paths clone instead
// of mutating in place more often than the reference implementation
// would, trading a missed fast path for not needing a finalizer.
type cell struct {
	refs int

	// borrow implements the single-writer discipline spec §5 asks
	// for: a builtin that re-enters a collection it is already
	// mutably iterating (e.g. a list-map callback that pushes onto
	// the same list) panics instead of corrupting state.
	borrow borrowState
}

type borrowState int

const (
	notBorrowed borrowState = iota
	borrowedShared
	borrowedMut
)

func newCell() cell { return cell{refs: 1} }

func (c *cell) retain() { c.refs++ }

func (c *cell) release() {
	if c.refs > 0 {
		c.refs--
	}
}

// unique reports whether this cell has exactly one owner, the test
// every copy-on-write builtin must run before mutating in place.
func (c *cell) unique() bool { return c.refs == 1 }

// borrowMut acquires an exclusive borrow and returns a function that
// releases it. It panics if the cell is already borrowed in any way;
// per spec §5 this is an implementation bug, not a language-level
// error, so it is not routed through errtrace.
func (c *cell) borrowMut() func() {
	if c.borrow != notBorrowed {
		panic("osyris: cell already borrowed")
	}
	c.borrow = borrowedMut
	return func() { c.borrow = notBorrowed }
}

// borrowShared acquires a shared (read-only) borrow. It panics only if
// the cell is already mutably borrowed; multiple shared borrows may be
// held concurrently (read-only iteration never conflicts with itself).
func (c *cell) borrowShared() func() {
	if c.borrow == borrowedMut {
		panic("osyris: cell already mutably borrowed")
	}
	prev := c.borrow
	c.borrow = borrowedShared
	return func() { c.borrow = prev }
}
