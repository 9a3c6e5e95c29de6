// Package milp builds the self-timed MILP formulation of an Hsdf graph:
// one continuous start-time variable per firing, one continuous
// throughput variable per dataflow dimension, and one dependency
// constraint per (HsdfChannel, dimension). Extensions in package cyclic
// and package buffer append further constraints to the same model before
// the caller optimizes it.
package milp

import (
	"fmt"

	"github.com/gitrdm/sdfsched/sdf"
	"github.com/gitrdm/sdfsched/solver"
)

// ExecutionTime maps an HSDF firing's actor to its (positive) execution
// time. Per spec, execution time is attached to the actor, not the
// individual firing, but the formulation indexes by firing so extensions
// that vary execution time per firing instance remain possible.
type ExecutionTime func(actor int) int

// Name maps a firing to a human-readable variable name, used only for
// solver diagnostics and LP export.
type Name func(f sdf.HsdfFiring) string

// Formulation is the MILP model for one Hsdf graph: it exclusively owns
// the adapter's variable maps for the lifetime of construction. Package
// cyclic and package buffer take *Formulation by pointer to append their
// own constraints; neither outlives it.
type Formulation struct {
	Hsdf *sdf.Hsdf
	Adp  solver.Adapter

	// U maps a firing to its start-time variable. Exported for
	// extensions (cyclic, buffer) that must reference u[f] directly when
	// building their own constraints.
	U map[sdf.HsdfFiring]solver.Var

	// Throughputs holds one continuous variable per dataflow dimension.
	Throughputs []solver.Var

	execTime ExecutionTime
	name     Name
}

// New constructs the formulation: N throughput variables, one u[f] per
// firing, and one dependency constraint per (channel, dimension). u and
// Throughputs are immutable after New returns.
func New(h *sdf.Hsdf, adp solver.Adapter, execTime ExecutionTime, name Name) *Formulation {
	f := &Formulation{
		Hsdf:     h,
		Adp:      adp,
		U:        map[sdf.HsdfFiring]solver.Var{},
		execTime: execTime,
		name:     name,
	}

	dims := h.RepetitionVector[0].Dims()
	f.Throughputs = make([]solver.Var, dims)
	for d := 0; d < dims; d++ {
		f.Throughputs[d] = adp.NewContinuous(fmt.Sprintf("throughput_%d", d), 0, infinity)
	}

	for firing := range h.Actors() {
		f.U[firing] = adp.NewContinuous(name(firing), 0, infinity)
	}

	for ch := range h.Channels() {
		src := f.U[ch.Source]
		tgt := f.U[ch.Target]
		e := execTime(ch.Source.Actor)
		for d := 0; d < dims; d++ {
			delta := ch.InitialTokens.At(d)
			lhs := solver.ExprOf(1, tgt)
			rhs := solver.ExprOf(1, src).
				Plus(solver.ExprOf(float64(e), f.Throughputs[d])).
				Minus(solver.ExprConst(float64(delta)))
			cname := fmt.Sprintf("dep_%s_%s_d%d", name(ch.Source), name(ch.Target), d)
			adp.AddLinearConstraint(cname, lhs, solver.GE, rhs)
		}
	}

	return f
}

// infinity is the "unbounded above" sentinel passed to the adapter; it is
// not math.Inf itself so mockadapter's bounded simplex can still difference
// against it cheaply, but callers should treat it as unbounded.
const infinity = 1e12

// SetObjective is a thin pass-through to the adapter: the objective
// (which dimension's throughput to maximize, or any other linear
// combination) is left entirely to the caller.
func (f *Formulation) SetObjective(expr solver.Expr, sense solver.Sense) {
	f.Adp.SetObjective(expr, sense)
}

// ExecutionTime exposes the construction-time execution-time function to
// extensions (cyclic, buffer) that need e(actor) while appending their own
// constraints to the same model.
func (f *Formulation) ExecutionTime(actor int) int {
	return f.execTime(actor)
}
