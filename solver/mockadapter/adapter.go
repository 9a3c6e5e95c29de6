// Package mockadapter is an in-memory solver.Adapter: it records every
// variable and constraint exactly as added, and solves the resulting
// bounded MILP with a small two-phase-simplex-plus-branch-and-bound engine
// (simplex.go, branchbound.go). It exists so the formulation packages
// (milp, buffer, cyclic) and their tests have a concrete, dependency-free
// Adapter to run against; the narrow solver.Adapter contract is exactly
// what lets a production engine replace it later without touching a
// single formulation file.
package mockadapter

import (
	"context"
	"math"

	"github.com/gitrdm/sdfsched/solver"
)

type constraint struct {
	name   string
	coeffs map[int]float64
	rel    solver.Relation
	rhs    float64
	active bool
}

// Adapter implements solver.Adapter entirely in memory.
type Adapter struct {
	bounds    []lpBounds
	kind      []solver.VarKind
	names     []string
	cons      []constraint
	objCoeffs map[int]float64
	objConst  float64
	sense     solver.Sense
	values    []float64
	status    solver.Status
	params    map[string]float64
}

// New returns an empty Adapter ready for model construction.
func New() *Adapter {
	return &Adapter{
		objCoeffs: map[int]float64{},
		params:    map[string]float64{},
		status:    solver.Other,
	}
}

func (a *Adapter) addVar(kind solver.VarKind, name string, lower, upper float64) solver.Var {
	id := len(a.bounds)
	a.bounds = append(a.bounds, lpBounds{lower: lower, upper: upper})
	a.kind = append(a.kind, kind)
	a.names = append(a.names, name)
	a.values = append(a.values, 0)
	return solver.Var{ID: id, Kind: kind, Name: name}
}

func (a *Adapter) NewContinuous(name string, lower, upper float64) solver.Var {
	return a.addVar(solver.Continuous, name, lower, upper)
}

func (a *Adapter) NewInteger(name string, lower, upper float64) solver.Var {
	return a.addVar(solver.Integer, name, lower, upper)
}

func (a *Adapter) NewBinary(name string) solver.Var {
	return a.addVar(solver.Binary, name, 0, 1)
}

func foldTerms(e solver.Expr) (map[int]float64, float64) {
	coeffs := map[int]float64{}
	for _, t := range e.Terms {
		coeffs[t.Var.ID] += t.Coeff
	}
	return coeffs, e.Const
}

func (a *Adapter) AddLinearConstraint(name string, lhs solver.Expr, rel solver.Relation, rhs solver.Expr) solver.ConstraintHandle {
	diff := lhs.Minus(rhs)
	coeffs, constTerm := foldTerms(diff)
	h := solver.ConstraintHandle(len(a.cons))
	a.cons = append(a.cons, constraint{
		name:   name,
		coeffs: coeffs,
		rel:    rel,
		rhs:    -constTerm,
		active: true,
	})
	return h
}

func (a *Adapter) RemoveConstraint(h solver.ConstraintHandle) {
	if int(h) < 0 || int(h) >= len(a.cons) {
		return
	}
	a.cons[h].active = false
}

func (a *Adapter) SetObjective(expr solver.Expr, sense solver.Sense) {
	coeffs, constTerm := foldTerms(expr)
	a.objCoeffs = coeffs
	a.objConst = constTerm
	a.sense = sense
}

func (a *Adapter) SetParameter(name string, value float64) {
	a.params[name] = value
}

func toRelation(r solver.Relation) relation {
	switch r {
	case solver.LE:
		return relLE
	case solver.GE:
		return relGE
	default:
		return relEQ
	}
}

// Optimize solves the recorded model. Construction failures never surface
// here: building an invalid model (e.g. referencing an unknown variable)
// is a programmer error caught at AddLinearConstraint/SetObjective time by
// map indexing, not a runtime Optimize failure, so Optimize itself returns
// a non-nil error only if ctx is already done when called.
func (a *Adapter) Optimize(ctx context.Context) (solver.Status, error) {
	if err := ctx.Err(); err != nil {
		return solver.Other, err
	}

	var rows []lpRow
	for _, c := range a.cons {
		if !c.active {
			continue
		}
		rows = append(rows, lpRow{coeffs: c.coeffs, rel: toRelation(c.rel), rhs: c.rhs})
	}

	obj := make([]float64, len(a.bounds))
	for id, coeff := range a.objCoeffs {
		obj[id] = coeff
	}

	intMask := make([]bool, len(a.bounds))
	for i, k := range a.kind {
		intMask[i] = k == solver.Integer || k == solver.Binary
	}

	nodeCap := 0
	if v, ok := a.params["node_limit"]; ok {
		nodeCap = int(v)
	}

	res := branchAndBound(a.bounds, rows, obj, a.sense == solver.Minimize, intMask, nodeCap)
	switch {
	case res.unbounded:
		a.status = solver.Unbounded
	case !res.feasible:
		a.status = solver.Infeasible
	default:
		a.status = solver.Optimal
		a.values = res.x
	}
	return a.status, nil
}

// Value returns the last solved value of v, or 0 if Optimize has not been
// called or did not return Optimal.
func (a *Adapter) Value(v solver.Var) float64 {
	if v.ID < 0 || v.ID >= len(a.values) {
		return math.NaN()
	}
	return a.values[v.ID]
}

var _ solver.Adapter = (*Adapter)(nil)
