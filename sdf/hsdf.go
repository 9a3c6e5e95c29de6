package sdf

import (
	"iter"

	"github.com/gitrdm/sdfsched/internal/biter"
	"github.com/gitrdm/sdfsched/internal/vecn"
	"github.com/gitrdm/sdfsched/repvec"
)

// HsdfFiring identifies one firing of one actor: the actor's repetition
// count in dimension d bounds Index.At(d).
type HsdfFiring struct {
	Actor int
	Index vecn.Vector
}

// HsdfChannel is one per-firing dependency derived from an MDSDF channel:
// the target firing cannot start before the source firing's contribution,
// offset by InitialTokens steady-state periods.
type HsdfChannel struct {
	Source        HsdfFiring
	Target        HsdfFiring
	InitialTokens vecn.Vector
}

// Hsdf is the homogeneous expansion of an Mdsdf, carrying the repetition
// vector that makes the expansion well defined.
type Hsdf struct {
	graph            *Mdsdf
	RepetitionVector []vecn.Vector // one Vector per actor
}

// ToHsdf computes the repetition vector of g, dimension by dimension, and
// returns the resulting Hsdf. It fails with repvec.ErrInconsistent if any
// dimension's balance equations have no positive integer solution.
func (g *Mdsdf) ToHsdf() (*Hsdf, error) {
	rv := make([]vecn.Vector, g.NActors)
	for a := range rv {
		rv[a] = vecn.New(g.Dims)
	}
	for d := 0; d < g.Dims; d++ {
		rows := make([]repvec.Row, len(g.channels))
		for i, ch := range g.channels {
			rows[i] = repvec.Row{
				Source:      ch.Source,
				Target:      ch.Target,
				Production:  ch.Production.At(d),
				Consumption: ch.Consumption.At(d),
			}
		}
		r, err := repvec.Compute(g.NActors, rows)
		if err != nil {
			return nil, err
		}
		for a := 0; a < g.NActors; a++ {
			rv[a] = rv[a].With(d, r[a])
		}
	}
	return &Hsdf{graph: g, RepetitionVector: rv}, nil
}

// ActorFiringCount returns the number of firings actor a has in the
// expansion: the product of its repetition vector's components.
func (h *Hsdf) ActorFiringCount(a int) int {
	return h.RepetitionVector[a].Product()
}

// Actors enumerates every firing of every actor, actor-major then
// index-row-major, matching the construction order the MILP formulation
// relies on for deterministic variable creation.
func (h *Hsdf) Actors() iter.Seq[HsdfFiring] {
	return func(yield func(HsdfFiring) bool) {
		for a := 0; a < h.graph.NActors; a++ {
			it := biter.New(h.RepetitionVector[a])
			for {
				idx, ok := it.Next()
				if !ok {
					break
				}
				if !yield(HsdfFiring{Actor: a, Index: idx}) {
					return
				}
			}
		}
	}
}

// Channels enumerates every per-firing dependency derived from every
// MDSDF channel, in channel-append order, preserving the exact
// token-offset derivation of the source dataflow-scheduling formulation:
// for a channel (p, c, s, t, delta) and firing index j ranging over
// rv[s]*p, the target firing carrying j's tokens is found by rotating j
// (plus delta, plus a per-dimension rv[t]*c - c adjustment) into the
// target's own cyclic phase, with Euclidean modulo/flooring division
// throughout so the derivation is correct for negative delta or negative
// intermediate values.
func (h *Hsdf) Channels() iter.Seq[HsdfChannel] {
	return func(yield func(HsdfChannel) bool) {
		for _, ch := range h.graph.channels {
			box := h.RepetitionVector[ch.Source].Mul(ch.Production)
			it := biter.New(box)
			rot := h.RepetitionVector[ch.Target].Mul(ch.Consumption)
			adjustment := rot.Sub(ch.Consumption)
			for {
				j, ok := it.Next()
				if !ok {
					break
				}
				tokens := j.Add(ch.InitialTokens).Add(adjustment)
				targetIndex := tokens.Mod(rot).FloorDiv(ch.Consumption)
				sourceIndex := j.FloorDiv(ch.Production)
				initialTokens := tokens.FloorDiv(rot)

				out := HsdfChannel{
					Source:        HsdfFiring{Actor: ch.Source, Index: sourceIndex},
					Target:        HsdfFiring{Actor: ch.Target, Index: targetIndex},
					InitialTokens: initialTokens,
				}
				if !yield(out) {
					return
				}
			}
		}
	}
}
