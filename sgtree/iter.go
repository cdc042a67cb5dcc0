package sgtree

import "iter"

// inorderNode visits the subtree rooted at i in order, calling f until f
// returns false, and reports whether every element was visited.
func (t *Tree[K, V]) inorderNode(i idx, f func(K, V) bool) bool {
	if i == noIdx {
		return true
	}
	n := t.arena.get(i)
	if !t.inorderNode(n.left, f) {
		return false
	}
	if !f(n.key, n.val) {
		return false
	}
	return t.inorderNode(n.right, f)
}

// Inorder is a range-over-func iterator over every (key, value) pair of t,
// in ascending key order:
//
//	for key, val := range tree.Inorder { ... }
func (t *Tree[K, V]) Inorder(yield func(K, V) bool) {
	t.inorderNode(t.root, yield)
}

// InorderAfter is a range-over-func iterator over every (key, value) pair
// of t whose key is >= key, in ascending key order.
func (t *Tree[K, V]) InorderAfter(key K) iter.Seq2[K, V] {
	return t.Range(Included(key), Unbounded[K]()).All()
}
