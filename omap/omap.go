// Package omap implements a fixed-capacity map-like collection on ordered
// keys, backed by an arena-indexed scapegoat tree.
//
// # Basic Operations
//
// Create an empty map with New or NewFunc, specifying the maximum number of
// entries it will ever hold:
//
//	m := omap.New[string, int](1000)
//
// Add items using Insert and remove items using Remove:
//
//	m.Insert("apple", 1)
//	m.Remove("pear")
//
// Look up items using Get and Contains:
//
//	v, ok := m.Get(key)  // ok indicates whether key was found
//
// Report the number of elements in the map using Len.
//
// # Iterating in Order
//
// The elements of a map can be traversed in order using an iterator.
// Construct an iterator for m by calling First or Last. IsValid reports
// whether the iterator has an element available, and Next and Prev advance
// or retract it:
//
//	for it := m.First(); it.IsValid(); it.Next() {
//	   doThingsWith(it.Key(), it.Value())
//	}
//
// Use Seek to jump to a particular point in the order. Seek returns an
// iterator at the first item greater than or equal to the given key:
//
//	for it := m.Seek("cherry"); it.IsValid(); it.Next() {
//	   doThingsWith(it.Key(), it.Value())
//	}
//
// Note that it is not safe to modify the map while iterating it with a
// cursor-style Iter. If you must edit while walking, re-synchronize with
// Seek after each edit.
package omap

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/creachadair/scapetree/sgtree"
)

// A Map represents a fixed-capacity mapping over arbitrary key and value
// types, ordered by key. It supports efficient insertion, deletion and
// lookup, and allows keys to be traversed in order.
type Map[K, V any] struct {
	t *sgtree.Tree[K, V]
}

// New constructs a new empty Map of the given capacity, using the natural
// comparison order for an ordered key type.
func New[K cmp.Ordered, V any](capacity int) Map[K, V] {
	return NewFunc[K, V](capacity, cmp.Compare)
}

// NewFunc constructs a new empty Map of the given capacity, using cf to
// compare keys. If cf == nil, NewFunc will panic.
func NewFunc[K, V any](capacity int, cf func(a, b K) int) Map[K, V] {
	if cf == nil {
		panic("nil comparison function")
	}
	return Map[K, V]{t: sgtree.New[K, V](capacity, cf)}
}

// String returns a string representation of the contents of m.
func (m Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("omap[")
	sp := "%v:%v"
	for it := m.First(); it.IsValid(); it.Next() {
		fmt.Fprintf(&sb, sp, it.Key(), it.Value())
		sp = " %v:%v"
	}
	sb.WriteString("]")
	return sb.String()
}

// Len reports the number of key-value pairs in m.
func (m Map[K, V]) Len() int { return m.t.Len() }

// IsEmpty reports whether m is empty.
func (m Map[K, V]) IsEmpty() bool { return m.t.IsEmpty() }

// Capacity reports the maximum number of entries m can hold.
func (m Map[K, V]) Capacity() int { return m.t.Capacity() }

// Get returns the value associated with key in m if present, and whether it
// was found.
//
// This operation takes O(lg n) time for a map with n elements.
func (m Map[K, V]) Get(key K) (V, bool) { return m.t.Get(key) }

// GetKeyValue is like Get, but also returns the key actually stored, which
// may differ from key under a custom comparator that treats distinct values
// as equivalent.
func (m Map[K, V]) GetKeyValue(key K) (K, V, bool) {
	c := m.t.FindExact(key)
	if !c.Valid() {
		var zk K
		var zv V
		return zk, zv, false
	}
	return c.Key(), c.Value(), true
}

// GetMut returns a pointer to the value stored under key, and whether key
// was present. The pointer is valid until the map's next rebuild-triggering
// operation (Insert, Remove, Clear, SplitOff, Retain).
func (m Map[K, V]) GetMut(key K) (*V, bool) { return m.t.GetMut(key) }

// Contains reports whether key is present in m.
func (m Map[K, V]) Contains(key K) bool { return m.t.Contains(key) }

// Insert adds or replaces the value associated with key in m, and returns
// the previous value and whether the key was already present. It panics if
// inserting a brand new key would exceed m's capacity.
func (m Map[K, V]) Insert(key K, value V) (old V, hadOld bool) { return m.t.Insert(key, value) }

// TryInsert is like Insert, but reports sgtree.ErrCapacityExceeded instead
// of panicking when a brand new key would exceed m's capacity.
func (m Map[K, V]) TryInsert(key K, value V) (old V, hadOld bool, err error) {
	return m.t.TryInsert(key, value)
}

// TryInsertStd mirrors the standard library's fallible HashMap.TryInsert:
// unlike TryInsert (which updates the value if key is already present),
// TryInsertStd rejects an already-occupied key, returning an *OccupiedError
// carrying the existing entry and the value that was not inserted. It still
// reports sgtree.ErrCapacityExceeded, rather than the occupied error, if key
// is vacant but inserting it would exceed m's capacity.
func (m Map[K, V]) TryInsertStd(key K, value V) (*V, error) {
	e := m.Entry(key)
	if _, ok := e.Get(); ok {
		return nil, &OccupiedError[K, V]{Entry: e, Value: value}
	}
	cur, _, _, err := m.t.UpsertCursor(key, value)
	if err != nil {
		return nil, err
	}
	return cur.ValuePtr(), nil
}

// Remove deletes key from m, returning its value and whether it was
// present.
func (m Map[K, V]) Remove(key K) (V, bool) { return m.t.Remove(key) }

// RemoveEntry is like Remove, but also returns the removed key.
func (m Map[K, V]) RemoveEntry(key K) (K, V, bool) {
	v, ok := m.t.Remove(key)
	if !ok {
		var zk K
		return zk, v, false
	}
	return key, v, true
}

// Clear deletes all the elements from m, leaving it empty.
func (m Map[K, V]) Clear() { m.t.Clear() }

// Keys returns a slice of all the keys in m, in order.
func (m Map[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for k := range m.t.Inorder {
		out = append(out, k)
	}
	return out
}

// Values returns a slice of all the values in m, ordered by key.
func (m Map[K, V]) Values() []V {
	out := make([]V, 0, m.Len())
	for _, v := range m.t.Inorder {
		out = append(out, v)
	}
	return out
}

// ValuesMut returns a slice of pointers to the values in m, ordered by key.
// The pointers are valid until the map's next rebuild-triggering operation.
func (m Map[K, V]) ValuesMut() []*V {
	out := make([]*V, 0, m.Len())
	for it := m.First(); it.IsValid(); it.Next() {
		out = append(out, it.c.ValuePtr())
	}
	return out
}

// FirstKeyValue returns the least key/value pair in m.
func (m Map[K, V]) FirstKeyValue() (sgtree.KV[K, V], bool) { return m.t.FirstKeyValue() }

// LastKeyValue returns the greatest key/value pair in m.
func (m Map[K, V]) LastKeyValue() (sgtree.KV[K, V], bool) { return m.t.LastKeyValue() }

// PopFirst removes and returns the least key/value pair in m.
func (m Map[K, V]) PopFirst() (sgtree.KV[K, V], bool) { return m.t.PopFirst() }

// PopLast removes and returns the greatest key/value pair in m.
func (m Map[K, V]) PopLast() (sgtree.KV[K, V], bool) { return m.t.PopLast() }

// SplitOff splits m at key: every entry with a key >= key is moved into a
// newly-returned map, and m retains only the entries with keys < key.
func (m Map[K, V]) SplitOff(key K) Map[K, V] { return Map[K, V]{t: m.t.SplitOff(key)} }

// Append moves every entry of other into m, leaving other empty. It fails
// atomically, returning sgtree.ErrCapacityExceeded, if the combined size
// could exceed m's capacity.
func (m Map[K, V]) Append(other Map[K, V]) error { return m.t.Append(other.t) }

// Extend inserts every pair of pairs into m, in order, panicking on the same
// conditions as Insert.
func (m Map[K, V]) Extend(pairs []sgtree.KV[K, V]) {
	for _, kv := range pairs {
		m.t.Insert(kv.Key, kv.Value)
	}
}

// Retain keeps only the entries for which keep returns true.
func (m Map[K, V]) Retain(keep func(K, V) bool) { m.t.Retain(keep) }

// Range returns an iterator over the entries of m whose keys fall within
// [lo, hi].
func (m Map[K, V]) Range(lo, hi sgtree.Bound[K]) *sgtree.RangeIter[K, V] { return m.t.Range(lo, hi) }

// RangeMut is like Range, but yields a pointer to each value instead of a
// copy.
func (m Map[K, V]) RangeMut(lo, hi sgtree.Bound[K]) *sgtree.RangeMutIter[K, V] {
	return m.t.RangeMut(lo, hi)
}

// First returns an iterator to the first entry of the map, if any.
func (m Map[K, V]) First() *Iter[K, V] { return &Iter[K, V]{c: m.t.Root().Min()} }

// Last returns an iterator to the last entry of the map, if any.
func (m Map[K, V]) Last() *Iter[K, V] { return &Iter[K, V]{c: m.t.Root().Max()} }

// Seek returns an iterator to the first entry of the map whose key is
// greater than or equal to key, if any.
func (m Map[K, V]) Seek(key K) *Iter[K, V] { return &Iter[K, V]{c: m.t.Find(key)} }

// Iter returns a forward range-over-func iterator over all entries of m, in
// key order.
func (m Map[K, V]) Iter() func(yield func(K, V) bool) { return m.t.Inorder }

// IterMut is like Iter, but yields a pointer to each value instead of a
// copy.
func (m Map[K, V]) IterMut() func(yield func(K, *V) bool) {
	return m.RangeMut(sgtree.Unbounded[K](), sgtree.Unbounded[K]()).All()
}

// IntoIter drains m, yielding and removing each entry in ascending key
// order.
func (m Map[K, V]) IntoIter() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for {
			kv, ok := m.t.PopFirst()
			if !ok {
				return
			}
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// An Iter is a cursor-style iterator for a Map.
type Iter[K, V any] struct {
	c *sgtree.Cursor[K, V]
}

// IsValid reports whether it is pointing at an element of its map.
func (it *Iter[K, V]) IsValid() bool { return it.c.Valid() }

// Next advances it to the next element in the map, if any.
func (it *Iter[K, V]) Next() *Iter[K, V] { it.c.Next(); return it }

// Prev advances it to the previous element in the map, if any.
func (it *Iter[K, V]) Prev() *Iter[K, V] { it.c.Prev(); return it }

// Key returns the current key, or a zero key if it is invalid.
func (it *Iter[K, V]) Key() K { return it.c.Key() }

// Value returns the current value, or a zero value if it is invalid.
func (it *Iter[K, V]) Value() V { return it.c.Value() }

// SetValue overwrites the value at the iterator's current position.
func (it *Iter[K, V]) SetValue(v V) { it.c.SetValue(v) }
