package biter

import (
	"testing"

	"github.com/gitrdm/sdfsched/internal/vecn"
)

func vecsEqual(a, b []vecn.Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func TestRowMajorOrder2D(t *testing.T) {
	got := All(vecn.Of(2, 3))
	want := []vecn.Vector{
		vecn.Of(0, 0), vecn.Of(1, 0),
		vecn.Of(0, 1), vecn.Of(1, 1),
		vecn.Of(0, 2), vecn.Of(1, 2),
	}
	if !vecsEqual(got, want) {
		t.Errorf("All(2,3) = %v, want %v", got, want)
	}
}

func TestEmptyWhenAnyBoundZero(t *testing.T) {
	if got := All(vecn.Of(3, 0, 2)); len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
}

func TestSingleDimension(t *testing.T) {
	got := All(vecn.Of(4))
	want := []vecn.Vector{vecn.Of(0), vecn.Of(1), vecn.Of(2), vecn.Of(3)}
	if !vecsEqual(got, want) {
		t.Errorf("All(4) = %v, want %v", got, want)
	}
}

func TestNonRestartable(t *testing.T) {
	it := New(vecn.Of(2))
	for {
		if _, ok := it.Next(); !ok {
			break
		}
	}
	if _, ok := it.Next(); ok {
		t.Error("exhausted iterator yielded another value")
	}
}

func TestCountMatchesProduct(t *testing.T) {
	bound := vecn.Of(3, 2, 4)
	got := All(bound)
	if len(got) != bound.Product() {
		t.Errorf("got %d items, want %d (product of bounds)", len(got), bound.Product())
	}
}
