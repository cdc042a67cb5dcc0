package sgtree

import (
	"cmp"
	"testing"
)

// rebuildCount exposes the internal rebuild counter for white-box tests
// that need to observe when a deletion crosses the global-rebuild
// threshold (spec scenario: deletion-triggered rebuild instrumentation).
func (t *Tree[K, V]) rebuildCount() int { return t.rebuilds }

func depthLimitFor(β, n int) int {
	t := New[int, int](1, cmp.Compare[int], WithBalance[int, int](β))
	return t.depthLimit(n)
}

// TestDepthLimitMonotonic checks that a looser balance factor never yields
// a stricter depth limit than a tighter one, for the same size.
func TestDepthLimitMonotonic(t *testing.T) {
	for n := 2; n <= 256; n *= 2 {
		prev := depthLimitFor(0, n)
		for _, β := range []int{50, 100, 250, 500, 800, 999} {
			got := depthLimitFor(β, n)
			if got < prev {
				t.Errorf("n=%d: depthLimit(β=%d)=%d < depthLimit(prev β)=%d", n, β, got, prev)
			}
			prev = got
		}
	}
}

// TestGlobalRebuildOnDeletion checks that repeatedly deleting elements
// eventually trips the deletion-triggered global rebuild.
func TestGlobalRebuildOnDeletion(t *testing.T) {
	tr := New[int, int](64, cmp.Compare[int], WithBalance[int, int](0))
	for i := range 64 {
		tr.Insert(i, i)
	}
	before := tr.rebuildCount()
	for i := range 40 {
		tr.Remove(i)
	}
	after := tr.rebuildCount()
	if after <= before {
		t.Errorf("expected at least one global rebuild after deleting most of the tree, got rebuildCount %d -> %d", before, after)
	}
	// With β=0 (α=½) the rebuild fires when the size first drops below 32,
	// i.e. at 31, and resets maxSize to 31; the remaining deletions (down to
	// 24) stay above the next threshold of 15.
	if tr.maxSize != 31 {
		t.Errorf("after the global rebuild at size 31, maxSize should reset to 31: maxSize=%d size=%d", tr.maxSize, tr.size)
	}
}
