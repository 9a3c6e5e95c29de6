// Package repvec computes the repetition vector of a synchronous
// dataflow topology: the unique minimal positive integer vector r with
// M*r = 0, where M is built from one row per channel (+production at the
// source column, -consumption at the target column).
package repvec

import (
	"errors"

	"github.com/gitrdm/sdfsched/internal/ratio"
)

// ErrInconsistent is returned when no positive integer repetition vector
// satisfies the balance equations for every channel — the topology
// matrix's rank is not |actors|-1, so the dataflow graph is inconsistent.
var ErrInconsistent = errors.New("repvec: inconsistent dataflow graph")

// Row is one equation of the topology matrix: a channel from Source to
// Target with the given production/consumption rates for a single
// dataflow dimension.
type Row struct {
	Source, Target         int
	Production, Consumption int
}

// Compute returns the minimal positive integer repetition vector for a
// graph of nActors actors connected by rows, or ErrInconsistent.
func Compute(nActors int, rows []Row) ([]int, error) {
	m := ratio.NewMatrix(len(rows), nActors)
	for i, row := range rows {
		m.Set(i, row.Source, m.At(i, row.Source).Add(ratio.FromInt(row.Production)))
		m.Set(i, row.Target, m.At(i, row.Target).Sub(ratio.FromInt(row.Consumption)))
	}
	m.RREF()

	free := nActors - 1
	if !m.IsIdentityBlock(free) || !m.IsZeroBlock(free) {
		return nil, ErrInconsistent
	}

	// y is the rational free-variable column; the balance solution with
	// the last variable set to 1 is r = [-y_0*L, ..., -y_{free-1}*L, L]
	// where L is the LCM of the denominators of y, chosen so every
	// component is a positive integer.
	y := make([]ratio.Rational, free)
	dens := make([]int, free)
	for i := 0; i < free; i++ {
		y[i] = m.At(i, nActors-1)
		dens[i] = y[i].Den
	}
	l := ratio.LCMAll(dens)
	if l == 0 {
		l = 1
	}

	r := make([]int, nActors)
	for i := 0; i < free; i++ {
		scaled := y[i].Neg().Mul(ratio.FromInt(l))
		if scaled.Den != 1 {
			return nil, ErrInconsistent
		}
		r[i] = scaled.Num
	}
	r[nActors-1] = l

	for _, v := range r {
		if v <= 0 {
			return nil, ErrInconsistent
		}
	}
	return r, nil
}
