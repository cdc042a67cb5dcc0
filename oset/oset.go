// Package oset implements a fixed-capacity set-like collection on ordered
// values, backed by an arena-indexed scapegoat tree (see package sgtree).
//
// # Basic Operations
//
// Create an empty set with New or NewFunc, specifying the maximum number of
// elements it will ever hold:
//
//	s := oset.New[string](1000)
//
// Add items using Add and remove items using Remove:
//
//	s.Add("apple")
//	s.Remove("pear")
//
// Look up items using Has. Report the number of elements in the set using
// Len.
//
// # Iterating in Order
//
// The elements of a Set can be traversed in order using an iterator.
// Construct an iterator for s by calling First or Last. IsValid reports
// whether the iterator has an element available, and Next and Prev advance
// or retract it:
//
//	for it := s.First(); it.IsValid(); it.Next() {
//	   doThingsWith(it.Value())
//	}
//
// Use Seek to jump to a particular point in the order. Seek returns an
// iterator at the first element greater than or equal to the given value:
//
//	for it := s.Seek("cherry"); it.IsValid(); it.Next() {
//	   doThingsWith(it.Value())
//	}
//
// Note that it is not safe to modify the set while iterating it with a
// cursor-style Iter; re-synchronize with Seek after each edit if you must.
package oset

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/creachadair/scapetree/sgtree"
)

// A Set represents a fixed-capacity set of arbitrary values with an
// ordering. It supports efficient insertion, deletion and lookup, and
// allows values to be traversed in order.
type Set[T any] struct {
	t *sgtree.Tree[T, struct{}]
}

// New constructs a new empty Set of the given capacity, using the natural
// comparison order for an ordered value type.
func New[T cmp.Ordered](capacity int) Set[T] {
	return NewFunc[T](capacity, cmp.Compare)
}

// NewFunc constructs a new empty Set of the given capacity, using cf to
// compare values. If cf == nil, NewFunc will panic.
func NewFunc[T any](capacity int, cf func(a, b T) int) Set[T] {
	if cf == nil {
		panic("nil comparison function")
	}
	return Set[T]{t: sgtree.New[T, struct{}](capacity, cf)}
}

// Build constructs a set of the given capacity containing items, which may
// be supplied in any order and may contain duplicates. It returns
// sgtree.ErrCapacityExceeded if len(items) exceeds capacity; duplicates
// count toward that check.
func Build[T any](capacity int, cf func(a, b T) int, items []T) (Set[T], error) {
	pairs := make([]sgtree.KV[T, struct{}], len(items))
	for i, v := range items {
		pairs[i] = sgtree.KV[T, struct{}]{Key: v}
	}
	t, err := sgtree.Build(capacity, cf, pairs)
	if err != nil {
		return Set[T]{}, err
	}
	return Set[T]{t: t}, nil
}

// String returns a string representation of the contents of s.
func (s Set[T]) String() string {
	var sb strings.Builder
	sb.WriteString("oset[")
	tag := ""
	for it := s.First(); it.IsValid(); it.Next() {
		fmt.Fprint(&sb, tag, it.Value())
		tag = " "
	}
	sb.WriteString("]")
	return sb.String()
}

// Len reports the number of elements in s.
func (s Set[T]) Len() int { return s.t.Len() }

// IsEmpty reports whether s is empty.
func (s Set[T]) IsEmpty() bool { return s.t.IsEmpty() }

// Capacity reports the maximum number of elements s can hold.
func (s Set[T]) Capacity() int { return s.t.Capacity() }

// Clear deletes all the elements from s, leaving it empty.
func (s Set[T]) Clear() { s.t.Clear() }

// Clone returns a new set with the same contents and capacity as s.
func (s Set[T]) Clone() Set[T] { return Set[T]{t: s.t.Clone()} }

// Has reports whether value is present in s.
func (s Set[T]) Has(value T) bool { return s.t.Contains(value) }

// Add adds value to s, and reports whether it was already present. It
// panics if inserting a brand new value would exceed s's capacity.
func (s Set[T]) Add(value T) (hadOld bool) {
	_, hadOld = s.t.Insert(value, struct{}{})
	return hadOld
}

// TryAdd is like Add, but reports sgtree.ErrCapacityExceeded instead of
// panicking when a brand new value would exceed s's capacity.
func (s Set[T]) TryAdd(value T) (hadOld bool, err error) {
	_, hadOld, err = s.t.TryInsert(value, struct{}{})
	return hadOld, err
}

// Remove deletes value from s, and reports whether it was present.
func (s Set[T]) Remove(value T) bool {
	_, ok := s.t.Remove(value)
	return ok
}

// FirstValue returns the least value in s.
func (s Set[T]) FirstValue() (T, bool) {
	kv, ok := s.t.FirstKeyValue()
	return kv.Key, ok
}

// LastValue returns the greatest value in s.
func (s Set[T]) LastValue() (T, bool) {
	kv, ok := s.t.LastKeyValue()
	return kv.Key, ok
}

// PopFirst removes and returns the least value in s.
func (s Set[T]) PopFirst() (T, bool) {
	kv, ok := s.t.PopFirst()
	return kv.Key, ok
}

// PopLast removes and returns the greatest value in s.
func (s Set[T]) PopLast() (T, bool) {
	kv, ok := s.t.PopLast()
	return kv.Key, ok
}

// SplitOff splits s at value: every element >= value is moved into a
// newly-returned set, and s retains only the elements < value.
func (s Set[T]) SplitOff(value T) Set[T] { return Set[T]{t: s.t.SplitOff(value)} }

// Append moves every element of other into s, leaving other empty. It fails
// atomically, returning sgtree.ErrCapacityExceeded, if the combined size
// could exceed s's capacity.
func (s Set[T]) Append(other Set[T]) error { return s.t.Append(other.t) }

// Retain keeps only the elements for which keep returns true.
func (s Set[T]) Retain(keep func(T) bool) {
	s.t.Retain(func(v T, _ struct{}) bool { return keep(v) })
}

// Slice returns a slice of all the values in s, in order.
func (s Set[T]) Slice() []T {
	out := make([]T, 0, s.Len())
	for v := range s.t.Inorder {
		out = append(out, v)
	}
	return out
}

// Range returns a lazy ascending iterator over the elements of s whose
// values fall within [lo, hi]. It panics immediately, before any iteration,
// if lo and hi describe an invalid range (see sgtree.Tree.Range).
func (s Set[T]) Range(lo, hi sgtree.Bound[T]) func(yield func(T) bool) {
	r := s.t.Range(lo, hi)
	return func(yield func(T) bool) {
		for v := range r.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Iter returns a forward range-over-func iterator over all elements of s,
// in ascending order.
func (s Set[T]) Iter() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for v := range s.t.Inorder {
			if !yield(v) {
				return
			}
		}
	}
}

// IntoIter drains s, yielding and removing each element in ascending order.
func (s Set[T]) IntoIter() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for {
			v, ok := s.PopFirst()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// First returns an iterator to the first element of the set, if any.
func (s Set[T]) First() *Iter[T] { return &Iter[T]{c: s.t.Root().Min()} }

// Last returns an iterator to the last element of the set, if any.
func (s Set[T]) Last() *Iter[T] { return &Iter[T]{c: s.t.Root().Max()} }

// Seek returns an iterator to the first element of the set greater than or
// equal to value, if any.
func (s Set[T]) Seek(value T) *Iter[T] { return &Iter[T]{c: s.t.Find(value)} }

// An Iter is a cursor-style iterator for a Set.
type Iter[T any] struct {
	c *sgtree.Cursor[T, struct{}]
}

// IsValid reports whether it is pointing at an element of its set.
func (it *Iter[T]) IsValid() bool { return it.c.Valid() }

// Next advances it to the next element of the set, if any.
func (it *Iter[T]) Next() *Iter[T] { it.c.Next(); return it }

// Prev advances it to the previous element of the set, if any.
func (it *Iter[T]) Prev() *Iter[T] { it.c.Prev(); return it }

// Value returns the current value, or a zero value if it is invalid.
func (it *Iter[T]) Value() T { return it.c.Key() }
