package sgtree

import (
	"math"
	"sort"
)

const (
	maxBalance = 1000
	fracLimit  = 2 * maxBalance
)

// A Tree is a fixed-capacity, approximately weight-balanced binary search
// tree mapping keys of type K to values of type V. The zero value is not
// usable; construct one with New or Build. A *Tree is not safe for
// concurrent use without external synchronization.
type Tree[K, V any] struct {
	arena   *arena[K, V]
	root    idx
	compare func(a, b K) int

	// β identifies a point on the interval [0,maxBalance], and the balance
	// fraction is (β+maxBalance)/fracLimit. This lets the depth-limit
	// breakpoint use fixed-point integer arithmetic for β itself and only
	// one floating-point log per insertion to recompute the depth limit,
	// exactly as in the teacher's stree package.
	β       int
	invBase float64 // cached log(1/toFraction(β)), or NaN meaning "n+1"

	size    int // cache of the tree's element count
	maxSize int // max of size since the last global rebuild

	rebuilds int // count of subtree + global rebuilds; test instrumentation only
}

func toFraction(β int) float64 { return (float64(β) + maxBalance) / fracLimit }

// computeInvBase returns log(1/toFraction(β)), or NaN as a sentinel meaning
// "the depth limit is n+1" (β == maxBalance, i.e. rebalancing disabled).
func computeInvBase(β int) float64 {
	inv := 1 / toFraction(β)
	if inv == 1 {
		return math.NaN()
	}
	return math.Log(inv)
}

// depthLimit returns the maximum tree height permitted for n nodes under
// t's balance factor.
func (t *Tree[K, V]) depthLimit(n int) int {
	if math.IsNaN(t.invBase) {
		return n + 1
	}
	return int(math.Log(float64(n)) / t.invBase)
}

// alphaOf returns the rebalance fraction α implied by t's balance factor.
func (t *Tree[K, V]) alphaOf() float64 { return toFraction(t.β) }

// New returns an empty tree with the given fixed capacity and key
// comparator. compare must return a negative number if a < b, zero if
// a == b, and a positive number if a > b.
func New[K, V any](capacity int, compare func(a, b K) int, opts ...Option[K, V]) *Tree[K, V] {
	t := &Tree[K, V]{
		arena:   newArena[K, V](capacity),
		root:    noIdx,
		compare: compare,
		β:       defaultBalance,
	}
	t.invBase = computeInvBase(t.β)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// KV is a key/value pair, used by Build and by operations that need to
// return or accept whole entries at once (PopFirst, PopLast, SplitOff).
type KV[K, V any] struct {
	Key   K
	Value V
}

// Build constructs a tree of the given capacity containing pairs, which may
// be supplied in any order and may contain duplicate keys (the later
// occurrence in pairs wins, matching sequential Insert semantics). It
// returns ErrCapacityExceeded without modifying anything if len(pairs)
// exceeds capacity.
//
// Build is more efficient than capacity pairs to New plus a loop of
// Insert calls, because it sorts once and constructs a balanced tree
// directly instead of rebalancing incrementally — exactly the bulk
// constructor strategy used by stree.New.
func Build[K, V any](capacity int, compare func(a, b K) int, pairs []KV[K, V], opts ...Option[K, V]) (*Tree[K, V], error) {
	if len(pairs) > capacity {
		return nil, ErrCapacityExceeded
	}
	t := New[K, V](capacity, compare, opts...)

	cp := append([]KV[K, V](nil), pairs...)
	sort.SliceStable(cp, func(i, j int) bool { return compare(cp[i].Key, cp[j].Key) < 0 })

	// De-duplicate keys, keeping the last occurrence of each equal run so
	// that later entries win, as repeated sequential Insert calls would.
	out := cp[:0]
	for _, kv := range cp {
		if len(out) > 0 && compare(out[len(out)-1].Key, kv.Key) == 0 {
			out[len(out)-1] = kv
		} else {
			out = append(out, kv)
		}
	}

	idxs := make([]idx, len(out))
	for i, kv := range out {
		id, err := t.arena.allocate(node[K, V]{key: kv.Key, val: kv.Value, left: noIdx, right: noIdx, size: 1})
		if err != nil {
			return nil, err // unreachable: capacity already checked above
		}
		idxs[i] = id
	}
	t.root = t.extract(idxs)
	t.size = len(out)
	t.maxSize = t.size
	return t, nil
}

// Len reports the number of elements stored in the tree.
func (t *Tree[K, V]) Len() int { return t.size }

// IsEmpty reports whether t is empty.
func (t *Tree[K, V]) IsEmpty() bool { return t.size == 0 }

// Capacity reports the fixed maximum number of elements t can hold.
func (t *Tree[K, V]) Capacity() int { return t.arena.cap() }

// Compare compares a and b using the comparator t was constructed with.
func (t *Tree[K, V]) Compare(a, b K) int { return t.compare(a, b) }

// Clear discards all elements of t, leaving it empty with its original
// capacity.
func (t *Tree[K, V]) Clear() {
	t.arena.reset()
	t.root = noIdx
	t.size = 0
	t.maxSize = 0
}

// Clone returns a deep copy of t, including its own arena.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	return &Tree[K, V]{
		arena:   t.arena.clone(),
		root:    t.root,
		compare: t.compare,
		β:       t.β,
		invBase: t.invBase,
		size:    t.size,
		maxSize: t.maxSize,
	}
}

// findExact returns the index of the node with the given key, or noIdx.
func (t *Tree[K, V]) findExact(key K) idx {
	cur := t.root
	for cur != noIdx {
		n := t.arena.get(cur)
		c := t.compare(key, n.key)
		if c == 0 {
			return cur
		} else if c < 0 {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return noIdx
}

// Get returns the value stored under key, and reports whether key was
// present.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	i := t.findExact(key)
	if i == noIdx {
		var zero V
		return zero, false
	}
	return t.arena.get(i).val, true
}

// Contains reports whether key is present in t.
func (t *Tree[K, V]) Contains(key K) bool { return t.findExact(key) != noIdx }

// GetMut returns a pointer to the value stored under key, and reports
// whether key was present. The pointer remains valid until the next
// operation that triggers a rebuild (Insert/Remove may rebalance; Clear,
// SplitOff and Retain always invalidate it).
func (t *Tree[K, V]) GetMut(key K) (*V, bool) {
	i := t.findExact(key)
	if i == noIdx {
		return nil, false
	}
	return &t.arena.get(i).val, true
}

type pathStep struct {
	at     idx
	toLeft bool // true if the descent went to at's left child
}

// TryInsert inserts key/val into t, or updates the value if key is already
// present. It returns the previous value and true if key was already
// present, and reports an error instead of mutating the tree if inserting a
// brand new key would exceed capacity.
func (t *Tree[K, V]) TryInsert(key K, val V) (old V, hadOld bool, err error) {
	old, hadOld, _, err = t.insertAt(key, val)
	return old, hadOld, err
}

// insertAt is TryInsert's implementation, additionally reporting the arena
// index holding key once the call returns. A scapegoat rebuild triggered by
// this same insertion rewrites a subtree's left/right/size fields in place
// (node.go's extract reuses the flattened indices rather than reallocating
// them), so the index returned here stays valid across that rebuild — the
// same guarantee the upstream Rust implementation relies on when
// VacantEntry::insert takes the new node's index directly from
// internal_balancing_insert instead of re-searching for it.
func (t *Tree[K, V]) insertAt(key K, val V) (old V, hadOld bool, at idx, err error) {
	if t.root == noIdx {
		i, aerr := t.arena.allocate(node[K, V]{key: key, val: val, left: noIdx, right: noIdx, size: 1})
		if aerr != nil {
			return old, false, noIdx, aerr
		}
		t.root = i
		t.size = 1
		t.maxSize = 1
		return old, false, i, nil
	}

	var path []pathStep
	cur := t.root
	for {
		n := t.arena.get(cur)
		c := t.compare(key, n.key)
		if c == 0 {
			for _, st := range path {
				t.arena.get(st.at).size-- // no new node: undo the speculative increments
			}
			old, hadOld = n.val, true
			n.val = val
			return old, hadOld, cur, nil
		}
		toLeft := c < 0
		n.size++ // speculative: reverted below if insertion fails
		path = append(path, pathStep{at: cur, toLeft: toLeft})
		if toLeft {
			if n.left == noIdx {
				break
			}
			cur = n.left
		} else {
			if n.right == noIdx {
				break
			}
			cur = n.right
		}
	}

	newIdx, aerr := t.arena.allocate(node[K, V]{key: key, val: val, left: noIdx, right: noIdx, size: 1})
	if aerr != nil {
		for _, st := range path {
			t.arena.get(st.at).size--
		}
		return old, false, noIdx, aerr
	}

	last := path[len(path)-1]
	parent := t.arena.get(last.at)
	if last.toLeft {
		parent.left = newIdx
	} else {
		parent.right = newIdx
	}
	t.size++
	if t.size > t.maxSize {
		t.maxSize = t.size
	}

	t.rebalanceAfterInsert(path)
	return old, false, newIdx, nil
}

// UpsertCursor is like TryInsert, but returns a cursor anchored at the
// resulting node instead of requiring the caller to look it up again
// afterward.
func (t *Tree[K, V]) UpsertCursor(key K, val V) (c *Cursor[K, V], old V, hadOld bool, err error) {
	old, hadOld, at, err := t.insertAt(key, val)
	if err != nil {
		return nil, old, false, err
	}
	return t.cursorAt(at), old, hadOld, nil
}

// MustUpsertCursor is UpsertCursor's infallible counterpart, panicking
// instead of returning an error if inserting a brand new key would exceed
// capacity — the cursor-returning sibling of Insert.
func (t *Tree[K, V]) MustUpsertCursor(key K, val V) (c *Cursor[K, V], old V, hadOld bool) {
	c, old, hadOld, err := t.UpsertCursor(key, val)
	if err != nil {
		panic(panicCapacityExceeded)
	}
	return c, old, hadOld
}

// rebalanceAfterInsert finds and rebuilds the scapegoat, if any, after an
// insertion along path (root-to-parent-of-new-node, in descent order). Every
// node in path already carries a correct, up-to-date subtree size (it was
// incremented during the descent above), so unlike stree.insert this does
// not need to thread sizes back up through return values — it simply walks
// path from the bottom and rebuilds the first ancestor whose height above
// the insertion point exceeds the depth limit for its own (now-current)
// size. This is the Galperin & Rivest §4.6 selection strategy, re-expressed
// over cached sizes instead of stree's on-demand size() recursion.
func (t *Tree[K, V]) rebalanceAfterInsert(path []pathStep) {
	if len(path) <= t.depthLimit(t.size) {
		return
	}
	for i := len(path) - 1; i >= 0; i-- {
		h := len(path) - i // height of path[i] above the new leaf
		a := path[i].at
		aSize := int(t.arena.get(a).size)
		if h > t.depthLimit(aSize) {
			newRoot := t.rebuildSubtree(a, aSize)
			if i == 0 {
				t.root = newRoot
			} else {
				parent := t.arena.get(path[i-1].at)
				if path[i-1].toLeft {
					parent.left = newRoot
				} else {
					parent.right = newRoot
				}
			}
			return
		}
	}
}

// Insert inserts key/val into t, or updates the value if key is already
// present, and returns the previous value and true if key was already
// present. It panics if inserting a brand new key would exceed capacity.
func (t *Tree[K, V]) Insert(key K, val V) (old V, hadOld bool) {
	old, hadOld, err := t.TryInsert(key, val)
	if err != nil {
		panic(panicCapacityExceeded)
	}
	return old, hadOld
}

// Remove deletes key from t, returning its value and true if it was
// present, or the zero value and false otherwise.
func (t *Tree[K, V]) Remove(key K) (V, bool) {
	var zero V
	if t.root == noIdx {
		return zero, false
	}
	var path []pathStep
	cur := t.root
	for cur != noIdx {
		n := t.arena.get(cur)
		c := t.compare(key, n.key)
		if c == 0 {
			break
		}
		path = append(path, pathStep{at: cur, toLeft: c < 0})
		if c < 0 {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	if cur == noIdx {
		return zero, false
	}
	target := cur
	val := t.arena.get(target).val

	decPath := append([]pathStep(nil), path...)
	var removed idx
	tn := t.arena.get(target)
	if tn.left == noIdx || tn.right == noIdx {
		child := tn.left
		if child == noIdx {
			child = tn.right
		}
		t.replaceChild(path, child)
		removed = target
	} else {
		// Two children: splice out the in-order successor (leftmost of the
		// right subtree), then copy its key/value into target.
		succPath := []pathStep{{at: target, toLeft: false}}
		succ := tn.right
		for {
			sn := t.arena.get(succ)
			if sn.left == noIdx {
				break
			}
			succPath = append(succPath, pathStep{at: succ, toLeft: true})
			succ = sn.left
		}
		sn := t.arena.get(succ)
		tn.key, tn.val = sn.key, sn.val
		t.replaceChild(succPath, sn.right)
		removed = succ
		decPath = append(decPath, succPath...)
	}

	for _, st := range decPath {
		t.arena.get(st.at).size--
	}
	t.arena.release(removed)
	t.size--

	if bw := (t.maxSize * (t.β + maxBalance)) / fracLimit; t.size < bw {
		t.root = t.rebuildSubtreeAll()
		t.maxSize = t.size
	}
	return val, true
}

// replaceChild rewrites the link that points at the node described by the
// last step of path (or the root, if path is empty) to instead point at
// newChild.
func (t *Tree[K, V]) replaceChild(path []pathStep, newChild idx) {
	if len(path) == 0 {
		t.root = newChild
		return
	}
	last := path[len(path)-1]
	p := t.arena.get(last.at)
	if last.toLeft {
		p.left = newChild
	} else {
		p.right = newChild
	}
}

// rebuildSubtreeAll rebuilds the whole tree from its current contents and
// returns the new root. Used for the deletion-triggered global rebuild.
func (t *Tree[K, V]) rebuildSubtreeAll() idx {
	if t.size == 0 {
		return noIdx
	}
	return t.rebuildSubtree(t.root, t.size)
}

// collectAll returns every (key, value) pair in t, in ascending key order.
func (t *Tree[K, V]) collectAll() []KV[K, V] {
	idxs := t.flatten(t.root, make([]idx, 0, t.size))
	out := make([]KV[K, V], len(idxs))
	for i, id := range idxs {
		n := t.arena.get(id)
		out[i] = KV[K, V]{Key: n.key, Value: n.val}
	}
	return out
}

func (t *Tree[K, V]) minPath() []idx {
	if t.root == noIdx {
		return nil
	}
	var path []idx
	cur := t.root
	for {
		path = append(path, cur)
		n := t.arena.get(cur)
		if n.left == noIdx {
			return path
		}
		cur = n.left
	}
}

func (t *Tree[K, V]) maxPath() []idx {
	if t.root == noIdx {
		return nil
	}
	var path []idx
	cur := t.root
	for {
		path = append(path, cur)
		n := t.arena.get(cur)
		if n.right == noIdx {
			return path
		}
		cur = n.right
	}
}

// boundPath returns the root-to-node path of the least key that is >= key
// (allowEqual true) or strictly > key (allowEqual false), or nil if no such
// key exists.
func (t *Tree[K, V]) boundPath(key K, allowEqual bool) []idx {
	var path, best []idx
	cur := t.root
	for cur != noIdx {
		n := t.arena.get(cur)
		path = append(path, cur)
		c := t.compare(key, n.key)
		if c < 0 || (c == 0 && allowEqual) {
			best = append([]idx(nil), path...)
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return best
}

// floorPath returns the root-to-node path of the greatest key that is <= key
// (allowEqual true) or strictly < key (allowEqual false), or nil if no such
// key exists.
func (t *Tree[K, V]) floorPath(key K, allowEqual bool) []idx {
	var path, best []idx
	cur := t.root
	for cur != noIdx {
		n := t.arena.get(cur)
		path = append(path, cur)
		c := t.compare(key, n.key)
		if c > 0 || (c == 0 && allowEqual) {
			best = append([]idx(nil), path...)
			cur = n.right
		} else {
			cur = n.left
		}
	}
	return best
}

// FirstKeyValue returns the least key/value pair in t.
func (t *Tree[K, V]) FirstKeyValue() (KV[K, V], bool) {
	path := t.minPath()
	if path == nil {
		return KV[K, V]{}, false
	}
	n := t.arena.get(path[len(path)-1])
	return KV[K, V]{Key: n.key, Value: n.val}, true
}

// LastKeyValue returns the greatest key/value pair in t.
func (t *Tree[K, V]) LastKeyValue() (KV[K, V], bool) {
	path := t.maxPath()
	if path == nil {
		return KV[K, V]{}, false
	}
	n := t.arena.get(path[len(path)-1])
	return KV[K, V]{Key: n.key, Value: n.val}, true
}

// PopFirst removes and returns the least key/value pair in t.
func (t *Tree[K, V]) PopFirst() (KV[K, V], bool) {
	kv, ok := t.FirstKeyValue()
	if !ok {
		return kv, false
	}
	t.Remove(kv.Key)
	return kv, true
}

// PopLast removes and returns the greatest key/value pair in t.
func (t *Tree[K, V]) PopLast() (KV[K, V], bool) {
	kv, ok := t.LastKeyValue()
	if !ok {
		return kv, false
	}
	t.Remove(kv.Key)
	return kv, true
}

// rebuildFrom discards the current contents of t and rebuilds it from
// pairs, which must already be in ascending key order and fit within t's
// capacity.
func (t *Tree[K, V]) rebuildFrom(pairs []KV[K, V]) {
	t.arena.reset()
	idxs := make([]idx, len(pairs))
	for i, kv := range pairs {
		id, _ := t.arena.allocate(node[K, V]{key: kv.Key, val: kv.Value, left: noIdx, right: noIdx, size: 1})
		idxs[i] = id
	}
	t.root = t.extract(idxs)
	t.size = len(pairs)
	t.maxSize = len(pairs)
}

// SplitOff splits t at key: every entry with a key >= key is moved into a
// newly-returned tree of the same capacity and configuration, and t retains
// only the entries with keys < key.
func (t *Tree[K, V]) SplitOff(key K) *Tree[K, V] {
	all := t.collectAll()
	i := sort.Search(len(all), func(i int) bool { return t.compare(all[i].Key, key) >= 0 })
	left, right := all[:i], all[i:]

	t.rebuildFrom(left)

	rt := New[K, V](t.arena.cap(), t.compare, WithBalance[K, V](t.β))
	rt.rebuildFrom(right)
	return rt
}

// Append moves every entry of other into t, leaving other empty. It fails
// atomically — returning ErrCapacityExceeded without modifying either tree
// — if the combined size could exceed t's capacity. The check is
// conservative: it does not account for overlapping keys that would make
// room, matching the same conservative check the upstream Rust
// implementation's try_append performs.
func (t *Tree[K, V]) Append(other *Tree[K, V]) error {
	if t.size+other.size > t.arena.cap() {
		return ErrCapacityExceeded
	}
	for _, kv := range other.collectAll() {
		t.Insert(kv.Key, kv.Value)
	}
	other.Clear()
	return nil
}

// Retain keeps only the entries for which keep returns true, discarding the
// rest, and rebuilds the tree once from the surviving entries.
func (t *Tree[K, V]) Retain(keep func(K, V) bool) {
	all := t.collectAll()
	out := all[:0]
	for _, kv := range all {
		if keep(kv.Key, kv.Value) {
			out = append(out, kv)
		}
	}
	t.rebuildFrom(out)
}
