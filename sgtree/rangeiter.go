package sgtree

import "iter"

// BoundKind identifies whether a Bound is open (Unbounded) or closed
// (Included/Excluded), mirroring Rust's std::ops::Bound, which is what the
// upstream implementation this range API was ported from uses for its
// range arguments.
type BoundKind int

const (
	boundUnbounded BoundKind = iota
	boundIncluded
	boundExcluded
)

// A Bound is one endpoint of a range passed to Range or RangeMut.
type Bound[K any] struct {
	kind BoundKind
	key  K
}

// Unbounded returns an open endpoint, matching every key on its side.
func Unbounded[K any]() Bound[K] { return Bound[K]{kind: boundUnbounded} }

// Included returns a closed endpoint that includes key itself.
func Included[K any](key K) Bound[K] { return Bound[K]{kind: boundIncluded, key: key} }

// Excluded returns a closed endpoint that excludes key itself.
func Excluded[K any](key K) Bound[K] { return Bound[K]{kind: boundExcluded, key: key} }

// validateRange enforces the two range-construction invariants: the start
// must not be greater than the end, and a single excluded point (start ==
// end, both excluded) denotes an empty range, which is nonsensical here and
// rejected rather than silently returning nothing. The panic strings are
// quoted verbatim from the upstream implementation's own range-construction
// checks (tests/test_set_api.rs: test_sg_set_range_panic_{1,2}).
func validateRange[K any](compare func(a, b K) int, lo, hi Bound[K]) {
	if lo.kind == boundUnbounded || hi.kind == boundUnbounded {
		return
	}
	c := compare(lo.key, hi.key)
	if c > 0 {
		panic("range start is greater than range end")
	}
	if c == 0 && lo.kind == boundExcluded && hi.kind == boundExcluded {
		panic("range start and end are equal and excluded")
	}
}

// RangeIter represents a sub-range of a Tree's keys between lo and hi (with
// either endpoint open, closed-included, or closed-excluded), iterable
// forward or backward.
type RangeIter[K, V any] struct {
	t      *Tree[K, V]
	lo, hi Bound[K]
}

// Range returns an iterator over the entries of t whose keys fall within
// [lo, hi], in either direction. It panics immediately (before any
// iteration) if lo and hi describe an invalid range; see validateRange.
func (t *Tree[K, V]) Range(lo, hi Bound[K]) *RangeIter[K, V] {
	validateRange(t.compare, lo, hi)
	return &RangeIter[K, V]{t: t, lo: lo, hi: hi}
}

func (r *RangeIter[K, V]) belowHigh(k K) bool {
	switch r.hi.kind {
	case boundUnbounded:
		return true
	case boundIncluded:
		return r.t.compare(k, r.hi.key) <= 0
	default:
		return r.t.compare(k, r.hi.key) < 0
	}
}

func (r *RangeIter[K, V]) aboveLow(k K) bool {
	switch r.lo.kind {
	case boundUnbounded:
		return true
	case boundIncluded:
		return r.t.compare(k, r.lo.key) >= 0
	default:
		return r.t.compare(k, r.lo.key) > 0
	}
}

func (r *RangeIter[K, V]) startPath() []idx {
	switch r.lo.kind {
	case boundUnbounded:
		return r.t.minPath()
	case boundIncluded:
		return r.t.boundPath(r.lo.key, true)
	default:
		return r.t.boundPath(r.lo.key, false)
	}
}

func (r *RangeIter[K, V]) endPath() []idx {
	switch r.hi.kind {
	case boundUnbounded:
		return r.t.maxPath()
	case boundIncluded:
		return r.t.floorPath(r.hi.key, true)
	default:
		return r.t.floorPath(r.hi.key, false)
	}
}

// All returns a forward (ascending) range-over-func iterator.
func (r *RangeIter[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		path := r.startPath()
		if path == nil {
			return
		}
		c := &Cursor[K, V]{t: r.t, path: path}
		for c.Valid() {
			n := c.cur()
			if !r.belowHigh(n.key) {
				return
			}
			if !yield(n.key, n.val) {
				return
			}
			c.Next()
		}
	}
}

// Backward returns a reverse (descending) range-over-func iterator.
func (r *RangeIter[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		path := r.endPath()
		if path == nil {
			return
		}
		c := &Cursor[K, V]{t: r.t, path: path}
		for c.Valid() {
			n := c.cur()
			if !r.aboveLow(n.key) {
				return
			}
			if !yield(n.key, n.val) {
				return
			}
			c.Prev()
		}
	}
}

// Len reports the number of entries in the range. It costs O(k) where k is
// the number of entries in range, since the engine keeps no separate
// per-range count.
func (r *RangeIter[K, V]) Len() int {
	n := 0
	for range r.All() {
		n++
	}
	return n
}

// RangeMutIter is the mutable counterpart of RangeIter, yielding a pointer
// to each value in the range instead of a copy.
//
// Grounded directly on original_source/src/map_types.rs's RangeMut: a
// read-only pass first computes the total count of entries in range (and,
// incidentally, locates the last one), then a mutable walk is bounded by
// that count rather than by re-checking the range on every step, falling
// back to the separately-held last entry once the walk's own cursor runs
// out — the mechanism the Rust source uses to avoid holding two live
// mutable cursors (forward and backward) over the same arena at once.
type RangeMutIter[K, V any] struct {
	t         *Tree[K, V]
	startPath []idx
	endPath   []idx
	firstIdx  idx
	lastIdx   idx
	total     int
}

// RangeMut returns a mutable iterator over the entries of t whose keys fall
// within [lo, hi]. Panics under the same conditions as Range.
func (t *Tree[K, V]) RangeMut(lo, hi Bound[K]) *RangeMutIter[K, V] {
	r := t.Range(lo, hi)
	total := r.Len()
	var firstIdx, lastIdx idx = noIdx, noIdx
	var startPath, endPath []idx
	if total > 0 {
		startPath = r.startPath()
		firstIdx = startPath[len(startPath)-1]
		endPath = r.endPath()
		lastIdx = endPath[len(endPath)-1]
	}
	return &RangeMutIter[K, V]{t: t, startPath: startPath, endPath: endPath, firstIdx: firstIdx, lastIdx: lastIdx, total: total}
}

// All returns a forward range-over-func iterator yielding a pointer to each
// value in the range, exactly total times.
func (r *RangeMutIter[K, V]) All() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		if r.total == 0 {
			return
		}
		c := &Cursor[K, V]{t: r.t, path: append([]idx(nil), r.startPath...)}
		for spent := 0; spent < r.total; spent++ {
			var at idx
			if c.Valid() {
				at = c.path[len(c.path)-1]
				c.Next()
			} else {
				at = r.lastIdx
			}
			n := r.t.arena.get(at)
			if !yield(n.key, &n.val) {
				return
			}
		}
	}
}

// Backward returns a reverse range-over-func iterator yielding a pointer to
// each value in the range, exactly total times, descending from the
// highest in-range key. Grounded on the same technique as All, mirrored:
// a descending walk bounded by the precomputed total, falling back to the
// separately-held first-in-range index once the cursor runs off the start
// of the range (the same trick original_source/src/map_types.rs's
// next_back uses to avoid holding two live mutable cursors at once).
func (r *RangeMutIter[K, V]) Backward() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		if r.total == 0 {
			return
		}
		c := &Cursor[K, V]{t: r.t, path: append([]idx(nil), r.endPath...)}
		for spent := 0; spent < r.total; spent++ {
			var at idx
			if c.Valid() {
				at = c.path[len(c.path)-1]
				c.Prev()
			} else {
				at = r.firstIdx
			}
			n := r.t.arena.get(at)
			if !yield(n.key, &n.val) {
				return
			}
		}
	}
}

// Len reports the number of entries in the range, computed once when the
// iterator was constructed.
func (r *RangeMutIter[K, V]) Len() int { return r.total }
