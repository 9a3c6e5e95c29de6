// Package pareto drives the alternating minimize-capacity /
// maximize-throughput sweep that traces out the buffer-capacity vs.
// cycle-time Pareto front of an already-built, already-buffer-sized MILP
// formulation.
package pareto

import (
	"context"
	"math"

	"github.com/gitrdm/sdfsched/milp"
	"github.com/gitrdm/sdfsched/solver"
)

// Point is one non-dominated (cycle_time, capacity) pair.
type Point struct {
	CycleTime int
	Capacity  int
}

const capacityInfinity = 1e9

// Driver holds the two constraints the sweep alternately tightens: a
// no-deadlock lower bound on throughput (scaled by cycleTimeUB to keep
// magnitudes reasonable for the solver, matching the reference driver)
// and a capacity upper bound on the summed buffer-size variables.
type Driver struct {
	f           *milp.Formulation
	dim         int
	buffers     []solver.Var
	bufferSize  solver.Expr
	cycleTimeUB int
	noDeadlock  solver.ConstraintHandle
	capacity    solver.ConstraintHandle
}

// New builds a Driver for formulation f, dimension dim, over the given
// buffer-capacity variables (one per buffer-synthesized channel). The
// initial cycle-time upper bound is the sum, over every actor, of its
// repetition count times its execution time: a deliberately loose bound
// the first iteration relaxes from.
func New(f *milp.Formulation, dim int, buffers []solver.Var) *Driver {
	bufferSize := solver.Expr{}
	for _, b := range buffers {
		bufferSize = bufferSize.Plus(solver.ExprOf(1, b))
	}

	cycleTimeUB := 0
	for actor := range f.Hsdf.RepetitionVector {
		cycleTimeUB += f.Hsdf.RepetitionVector[actor].At(dim) * f.ExecutionTime(actor)
	}

	noDeadlock := f.Adp.AddLinearConstraint("no_deadlock",
		solver.ExprOf(float64(cycleTimeUB), f.Throughputs[dim]), solver.GE, solver.ExprConst(1))
	capacity := f.Adp.AddLinearConstraint("capacity", bufferSize, solver.LE, solver.ExprConst(capacityInfinity))

	return &Driver{
		f: f, dim: dim, buffers: buffers, bufferSize: bufferSize,
		cycleTimeUB: cycleTimeUB, noDeadlock: noDeadlock, capacity: capacity,
	}
}

// Next computes the next non-dominated point: minimize total buffer
// capacity subject to the current cycle-time bound, then, holding that
// minimal capacity fixed, maximize throughput and tighten the cycle-time
// bound for the following call. It returns ok=false once either solve
// fails to reach Optimal (the model is infeasible at the current bound),
// which per spec is the sweep's normal termination condition, not an
// error.
func (d *Driver) Next(ctx context.Context) (p Point, ok bool, err error) {
	f := d.f

	f.SetObjective(d.bufferSize, solver.Minimize)
	f.Adp.RemoveConstraint(d.capacity)
	status, err := f.Adp.Optimize(ctx)
	if err != nil {
		return Point{}, false, err
	}
	if status != solver.Optimal {
		return Point{}, false, nil
	}

	capTotal := 0
	for _, b := range d.buffers {
		capTotal += int(math.Round(f.Adp.Value(b)))
	}
	d.capacity = f.Adp.AddLinearConstraint("capacity", d.bufferSize, solver.LE, solver.ExprConst(float64(capTotal)))

	f.Adp.RemoveConstraint(d.noDeadlock)
	f.SetObjective(solver.ExprOf(float64(d.cycleTimeUB), f.Throughputs[d.dim]), solver.Maximize)
	status, err = f.Adp.Optimize(ctx)
	if err != nil {
		return Point{}, false, err
	}
	if status != solver.Optimal {
		return Point{}, false, nil
	}

	thrVal := f.Adp.Value(f.Throughputs[d.dim])
	cycleTime := int(math.Round(1.0 / thrVal))
	d.cycleTimeUB = cycleTime - 1
	d.noDeadlock = f.Adp.AddLinearConstraint("no_deadlock",
		solver.ExprOf(float64(d.cycleTimeUB), f.Throughputs[d.dim]), solver.GE, solver.ExprConst(1))

	return Point{CycleTime: cycleTime, Capacity: capTotal}, true, nil
}

// Run drives Next to exhaustion and returns every point found, in
// decreasing-cycle-time order.
func (d *Driver) Run(ctx context.Context) ([]Point, error) {
	var pts []Point
	for {
		p, ok, err := d.Next(ctx)
		if err != nil {
			return pts, err
		}
		if !ok {
			return pts, nil
		}
		pts = append(pts, p)
	}
}
