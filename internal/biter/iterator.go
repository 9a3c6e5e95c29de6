// Package biter implements the lazy, non-restartable enumeration of the
// lexicographic box [0,b0)x...x[0,bN-1) used to walk HSDF firing indices
// and MRSDF ceiling-division keys, with dimension 0 varying fastest.
package biter

import "github.com/gitrdm/sdfsched/internal/vecn"

// Iterator walks every point of a bounded box exactly once, in row-major
// order (dimension 0 fastest). It is forward-only: once exhausted, a new
// Iterator must be constructed to walk the box again.
type Iterator struct {
	index vecn.Vector
	bound vecn.Vector
	done  bool
}

// New returns an Iterator over [0,bound[0])x...x[0,bound[N-1]). If any
// dimension of bound is zero the iterator yields nothing.
func New(bound vecn.Vector) *Iterator {
	it := &Iterator{index: vecn.New(bound.Dims()), bound: bound}
	it.done = bound.HasZero()
	return it
}

// Next returns the next index in the box and true, or the zero Vector and
// false once the box has been fully enumerated.
func (it *Iterator) Next() (vecn.Vector, bool) {
	if it.done {
		return vecn.Vector{}, false
	}
	result := it.index
	it.advance()
	return result, true
}

// advance increments the index in row-major order; when dimension 0 wraps
// all the way around after every other dimension has also wrapped, the
// iterator marks itself done by leaving index[0] == bound[0].
func (it *Iterator) advance() {
	for d := 0; d < it.index.Dims(); d++ {
		if it.index.At(d)+1 == it.bound.At(d) {
			it.index = it.index.With(d, 0)
			continue
		}
		it.index = it.index.With(d, it.index.At(d)+1)
		return
	}
	// Every dimension wrapped: mark exhaustion using the same sentinel the
	// reference implementation uses (index[0] == bound[0]).
	it.done = true
}

// All drains the iterator into a slice. Intended for tests and small boxes;
// production code should prefer Next in a loop to avoid the allocation.
func All(bound vecn.Vector) []vecn.Vector {
	it := New(bound)
	var out []vecn.Vector
	for {
		idx, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, idx)
	}
}
