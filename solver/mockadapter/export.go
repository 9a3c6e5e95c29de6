package mockadapter

import (
	"github.com/gitrdm/sdfsched/solver"
	"github.com/gitrdm/sdfsched/solver/lpwriter"
)

// Vars, Bounds, Constraints and Objective implement lpwriter.Model so any
// mockadapter.Adapter can be rendered to LP-format text without exposing
// its internal representation.

func (a *Adapter) Vars() []solver.Var {
	out := make([]solver.Var, len(a.bounds))
	for i := range a.bounds {
		out[i] = solver.Var{ID: i, Kind: a.kind[i], Name: a.names[i]}
	}
	return out
}

func (a *Adapter) Bounds(v solver.Var) (float64, float64) {
	b := a.bounds[v.ID]
	return b.lower, b.upper
}

func (a *Adapter) Constraints() []lpwriter.NamedConstraint {
	var out []lpwriter.NamedConstraint
	for _, c := range a.cons {
		if !c.active {
			continue
		}
		lhs := solver.Expr{}
		for id, coeff := range c.coeffs {
			lhs = lhs.Plus(solver.ExprOf(coeff, solver.Var{ID: id, Kind: a.kind[id], Name: a.names[id]}))
		}
		out = append(out, lpwriter.NamedConstraint{
			Name: c.name,
			LHS:  lhs,
			Rel:  c.rel,
			RHS:  solver.ExprConst(c.rhs),
		})
	}
	return out
}

func (a *Adapter) Objective() (solver.Expr, solver.Sense) {
	e := solver.Expr{Const: a.objConst}
	for id, coeff := range a.objCoeffs {
		e = e.Plus(solver.ExprOf(coeff, solver.Var{ID: id, Kind: a.kind[id], Name: a.names[id]}))
	}
	return e, a.sense
}

var _ lpwriter.Model = (*Adapter)(nil)
