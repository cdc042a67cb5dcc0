package sgtree

// flatten extracts the subtree rooted at i into into, in order, and returns
// the resulting slice. This is the arena-index analogue of
// stree/node.go's (*node[T]).flatten: it walks the pointer structure but
// collects indices instead of pointers, so the caller can rebuild without
// touching the heap.
func (t *Tree[K, V]) flatten(i idx, into []idx) []idx {
	if i == noIdx {
		return into
	}
	n := t.arena.get(i)
	into = t.flatten(n.left, into)
	into = append(into, i)
	into = t.flatten(n.right, into)
	return into
}

// extract builds a balanced subtree from nodes (already in sorted order),
// rewriting their left/right/size fields in place, and returns the index of
// the new subtree root. This is stree/node.go's extract, generalized to
// operate on arena indices: the median-pivot split is unchanged.
func (t *Tree[K, V]) extract(nodes []idx) idx {
	if len(nodes) == 0 {
		return noIdx
	}
	mid := (len(nodes) - 1) / 2
	root := nodes[mid]
	left := t.extract(nodes[:mid])
	right := t.extract(nodes[mid+1:])
	n := t.arena.get(root)
	n.left = left
	n.right = right
	n.size = int32(len(nodes))
	return root
}

// rebuildSubtree flattens and re-extracts the subtree rooted at i, which is
// known to hold exactly size nodes, and returns the new subtree root.
func (t *Tree[K, V]) rebuildSubtree(i idx, size int) idx {
	buf := t.flatten(i, make([]idx, 0, size))
	t.rebuilds++
	return t.extract(buf)
}
