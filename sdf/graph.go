// Package sdf models multi-dimensional synchronous dataflow graphs
// (Mdsdf) and their homogeneous (HSDF) unfolding, including exact
// repetition-vector computation and per-firing channel dependency
// derivation with initial-token accounting.
package sdf

import "github.com/gitrdm/sdfsched/internal/vecn"

// Channel is one MDSDF edge: rates and initial-token count are vectors
// with one component per dataflow dimension. Rates must be strictly
// positive in every dimension; InitialTokens may be any sign (only
// self-loops commonly need a positive offset, but the data model does not
// forbid others).
type Channel struct {
	Production    vecn.Vector
	Consumption   vecn.Vector
	Source        int
	Target        int
	InitialTokens vecn.Vector
}

// ChannelIndex is a stable handle into an Mdsdf's channel sequence.
type ChannelIndex int

// Mdsdf is a multi-dimensional SDF graph: a fixed actor count and an
// append-only sequence of channels. Channel indices remain valid for the
// lifetime of the graph.
type Mdsdf struct {
	NActors  int
	Dims     int
	channels []Channel
}

// New returns an empty graph over nActors actors with the given dataflow
// dimensionality.
func New(nActors, dims int) *Mdsdf {
	return &Mdsdf{NActors: nActors, Dims: dims}
}

// AddChannel appends a channel and returns its stable index.
func (g *Mdsdf) AddChannel(ch Channel) ChannelIndex {
	idx := ChannelIndex(len(g.channels))
	g.channels = append(g.channels, ch)
	return idx
}

// Channel returns the channel at idx.
func (g *Mdsdf) Channel(idx ChannelIndex) Channel {
	return g.channels[idx]
}

// Channels returns the graph's channels in append order. The returned
// slice must not be mutated by callers; it is the graph's own backing
// storage.
func (g *Mdsdf) Channels() []Channel {
	return g.channels
}
