package oset

// Union returns a lazy ascending iterator over every value present in a or
// b (or both), computed by a merge-walk of both sets' cursors with no
// auxiliary allocation. a and b must share the same comparator.
func Union[T any](a, b Set[T]) func(yield func(T) bool) {
	cmp := a.t.Compare
	return func(yield func(T) bool) {
		ac, bc := a.First(), b.First()
		for ac.IsValid() && bc.IsValid() {
			av, bv := ac.Value(), bc.Value()
			switch c := cmp(av, bv); {
			case c < 0:
				if !yield(av) {
					return
				}
				ac.Next()
			case c > 0:
				if !yield(bv) {
					return
				}
				bc.Next()
			default:
				if !yield(av) {
					return
				}
				ac.Next()
				bc.Next()
			}
		}
		for ; ac.IsValid(); ac.Next() {
			if !yield(ac.Value()) {
				return
			}
		}
		for ; bc.IsValid(); bc.Next() {
			if !yield(bc.Value()) {
				return
			}
		}
	}
}

// Intersection returns a lazy ascending iterator over every value present
// in both a and b, computed by a merge-walk of both sets' cursors with no
// auxiliary allocation. a and b must share the same comparator.
func Intersection[T any](a, b Set[T]) func(yield func(T) bool) {
	cmp := a.t.Compare
	return func(yield func(T) bool) {
		ac, bc := a.First(), b.First()
		for ac.IsValid() && bc.IsValid() {
			av, bv := ac.Value(), bc.Value()
			switch c := cmp(av, bv); {
			case c < 0:
				ac.Next()
			case c > 0:
				bc.Next()
			default:
				if !yield(av) {
					return
				}
				ac.Next()
				bc.Next()
			}
		}
	}
}

// Difference returns a lazy ascending iterator over every value present in
// a but not in b, computed by a merge-walk of both sets' cursors with no
// auxiliary allocation. a and b must share the same comparator.
func Difference[T any](a, b Set[T]) func(yield func(T) bool) {
	cmp := a.t.Compare
	return func(yield func(T) bool) {
		ac, bc := a.First(), b.First()
		for ac.IsValid() {
			if !bc.IsValid() {
				if !yield(ac.Value()) {
					return
				}
				ac.Next()
				continue
			}
			av, bv := ac.Value(), bc.Value()
			switch c := cmp(av, bv); {
			case c < 0:
				if !yield(av) {
					return
				}
				ac.Next()
			case c > 0:
				bc.Next()
			default:
				ac.Next()
				bc.Next()
			}
		}
	}
}

// SymmetricDifference returns a lazy ascending iterator over every value
// present in exactly one of a or b, computed by a merge-walk of both sets'
// cursors with no auxiliary allocation. a and b must share the same
// comparator.
func SymmetricDifference[T any](a, b Set[T]) func(yield func(T) bool) {
	cmp := a.t.Compare
	return func(yield func(T) bool) {
		ac, bc := a.First(), b.First()
		for ac.IsValid() && bc.IsValid() {
			av, bv := ac.Value(), bc.Value()
			switch c := cmp(av, bv); {
			case c < 0:
				if !yield(av) {
					return
				}
				ac.Next()
			case c > 0:
				if !yield(bv) {
					return
				}
				bc.Next()
			default:
				ac.Next()
				bc.Next()
			}
		}
		for ; ac.IsValid(); ac.Next() {
			if !yield(ac.Value()) {
				return
			}
		}
		for ; bc.IsValid(); bc.Next() {
			if !yield(bc.Value()) {
				return
			}
		}
	}
}

// IsSubset reports whether every element of a is also an element of b.
// Grounded on mapset.Set.IsSubset's short-circuiting size check generalized
// to an ordered merge-walk instead of hash lookups.
func IsSubset[T any](a, b Set[T]) bool {
	if a.Len() > b.Len() {
		return false
	}
	cmp := a.t.Compare
	ac, bc := a.First(), b.First()
	for ac.IsValid() {
		if !bc.IsValid() {
			return false
		}
		av, bv := ac.Value(), bc.Value()
		switch c := cmp(av, bv); {
		case c < 0:
			return false
		case c > 0:
			bc.Next()
		default:
			ac.Next()
			bc.Next()
		}
	}
	return true
}

// IsSuperset reports whether every element of b is also an element of a.
func IsSuperset[T any](a, b Set[T]) bool { return IsSubset(b, a) }

// IsDisjoint reports whether a and b share no elements.
func IsDisjoint[T any](a, b Set[T]) bool {
	cmp := a.t.Compare
	ac, bc := a.First(), b.First()
	for ac.IsValid() && bc.IsValid() {
		av, bv := ac.Value(), bc.Value()
		switch c := cmp(av, bv); {
		case c < 0:
			ac.Next()
		case c > 0:
			bc.Next()
		default:
			return false
		}
	}
	return true
}
