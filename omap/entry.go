package omap

import (
	"fmt"

	"github.com/creachadair/scapetree/sgtree"
)

// An Entry is a view into a single position of a Map, either vacant or
// occupied. It is obtained by calling Map.Entry and is consumed by exactly
// one of OrInsert, OrInsertWith, or chained through AndModify.
//
// Entry is grounded on the vacant/occupied sum-type design of the upstream
// Rust SgMap::entry API, expressed as a single struct carrying a cursor
// rather than a two-variant enum, since Go has no sum types. The entry is
// vacant iff cur is invalid. Holding the cursor found at construction (the
// arena index of the node, for an occupied entry) means every later
// operation on the view — OrInsert, AndModify, and so on — touches that
// node directly instead of re-searching the tree by key. Like the map it
// views, an Entry must be used from one goroutine at a time.
type Entry[K, V any] struct {
	m   Map[K, V]
	key K
	cur *sgtree.Cursor[K, V]
}

// Entry returns a view into m's entry for key, for in-place update or
// insert-if-absent.
func (m Map[K, V]) Entry(key K) Entry[K, V] {
	return Entry[K, V]{m: m, key: key, cur: m.t.FindExact(key)}
}

// Key returns the key this entry views.
func (e Entry[K, V]) Key() K { return e.key }

// Get returns the entry's current value, and reports whether it is
// occupied.
func (e Entry[K, V]) Get() (V, bool) {
	if !e.cur.Valid() {
		var zero V
		return zero, false
	}
	return e.cur.Value(), true
}

// OrInsert ensures the entry holds a value, inserting def if it was vacant,
// and returns a pointer to the value.
func (e Entry[K, V]) OrInsert(def V) *V {
	if e.cur.Valid() {
		return e.cur.ValuePtr()
	}
	cur, _, _ := e.m.t.MustUpsertCursor(e.key, def)
	return cur.ValuePtr()
}

// OrInsertWith is like OrInsert, but computes the default value lazily, only
// if the entry was vacant.
func (e Entry[K, V]) OrInsertWith(def func() V) *V {
	if e.cur.Valid() {
		return e.cur.ValuePtr()
	}
	cur, _, _ := e.m.t.MustUpsertCursor(e.key, def())
	return cur.ValuePtr()
}

// OrInsertWithKey is like OrInsertWith, but passes the entry's key to the
// default function, letting it derive a value without needing to capture the
// key separately.
func (e Entry[K, V]) OrInsertWithKey(def func(K) V) *V {
	if e.cur.Valid() {
		return e.cur.ValuePtr()
	}
	cur, _, _ := e.m.t.MustUpsertCursor(e.key, def(e.key))
	return cur.ValuePtr()
}

// AndModify calls f with a pointer to the entry's current value if it is
// occupied, and returns e unchanged for further chaining (e.g. into
// OrInsert). It is a no-op on a vacant entry.
func (e Entry[K, V]) AndModify(f func(*V)) Entry[K, V] {
	if e.cur.Valid() {
		f(e.cur.ValuePtr())
	}
	return e
}

// An OccupiedError is returned by Map.TryInsertStd when the map already
// holds an entry for the key it was asked to insert. It carries the
// occupied entry view and the value that was not inserted, grounded
// directly on the upstream Rust implementation's OccupiedError (returned by
// try_insert_std, which mirrors the standard library's fallible
// HashMap::try_insert).
type OccupiedError[K, V any] struct {
	Entry Entry[K, V]
	Value V
}

// Error implements the error interface.
func (e *OccupiedError[K, V]) Error() string {
	old, _ := e.Entry.Get()
	return fmt.Sprintf("failed to insert %v, key %v already exists with value %v", e.Value, e.Entry.Key(), old)
}
