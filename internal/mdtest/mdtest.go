// Package mdtest includes some internal utilities for testing.
package mdtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Shared is the interface common to omap.Map and oset.Set, defined here for
// use in interface satisfaction checks and shared test helpers.
type Shared[T any] interface {
	Clear()
	Len() int
	IsEmpty() bool
}

// Eacher is implemented by an ordered container with a single-value
// range-over-func Iter method, such as oset.Set.
type Eacher[T any] interface {
	Len() int
	Iter() func(yield func(T) bool)
}

// CheckContents verifies that s yields exactly the specified elements, in
// order, via its Iter method, and that its reported Len agrees, or reports
// an error to t.
func CheckContents[T any](t *testing.T, s Eacher[T], want []T) {
	t.Helper()
	var got []T
	for v := range s.Iter() {
		got = append(got, v)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Wrong contents (-want, +got):\n%s", diff)
	}
	if n := s.Len(); n != len(got) || n != len(want) {
		t.Errorf("Wrong length: got %d, want %d == %d", n, len(got), len(want))
	}
}
