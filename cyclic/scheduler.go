// Package cyclic adds processor mutual-exclusion constraints to a MILP
// formulation: a big-M-free disjunction between every pair of firings
// sharing a processor, a self-precedence constraint for single-firing
// processors, and a per-processor cycle-time bound.
package cyclic

import (
	"fmt"
	"sort"

	"github.com/gitrdm/sdfsched/internal/vecn"
	"github.com/gitrdm/sdfsched/milp"
	"github.com/gitrdm/sdfsched/sdf"
	"github.com/gitrdm/sdfsched/solver"
)

// Processor assigns each HSDF firing to a processor identifier.
type Processor func(f sdf.HsdfFiring) int

// Schedule appends processor mutual-exclusion constraints to f for the
// given dimension. Firings are grouped by processor(f), then every
// unordered pair within a group gets a binary-switch disjunction; groups
// of size one get the self-precedence constraint; every group gets the
// cycle-time bound. Processor ids are visited in sorted order so
// constraint names and insertion order are deterministic across runs.
func Schedule(f *milp.Formulation, processor Processor, dimension int) {
	groups := map[int][]sdf.HsdfFiring{}
	for firing := range f.Hsdf.Actors() {
		p := processor(firing)
		groups[p] = append(groups[p], firing)
	}

	var procIDs []int
	for p := range groups {
		procIDs = append(procIDs, p)
	}
	sort.Ints(procIDs)

	throughput := f.Throughputs[dimension]

	for _, p := range procIDs {
		tasks := groups[p]
		sort.Slice(tasks, func(i, j int) bool {
			if tasks[i].Actor != tasks[j].Actor {
				return tasks[i].Actor < tasks[j].Actor
			}
			return lessIndex(tasks[i].Index, tasks[j].Index)
		})

		for i := 0; i < len(tasks); i++ {
			for j := i + 1; j < len(tasks); j++ {
				t1, t2 := tasks[i], tasks[j]
				u1, u2 := f.U[t1], f.U[t2]
				e1 := execTimeOf(f, t1)
				e2 := execTimeOf(f, t2)
				k := f.Adp.NewBinary(fmt.Sprintf("order_p%d_%d_%d", p, i, j))

				f.Adp.AddLinearConstraint(
					fmt.Sprintf("excl_%d_%d_%d_a", p, i, j),
					solver.ExprOf(1, u1), solver.GE,
					solver.ExprOf(1, u2).Plus(solver.ExprOf(float64(e2), throughput)).Minus(solver.ExprOf(1, k)),
				)
				f.Adp.AddLinearConstraint(
					fmt.Sprintf("excl_%d_%d_%d_b", p, i, j),
					solver.ExprOf(1, u2), solver.GE,
					solver.ExprOf(1, u1).Plus(solver.ExprOf(float64(e1), throughput)).Minus(solver.ExprConst(1)).Plus(solver.ExprOf(1, k)),
				)
			}
		}

		if len(tasks) == 1 {
			t := tasks[0]
			u := f.U[t]
			e := execTimeOf(f, t)
			f.Adp.AddLinearConstraint(
				fmt.Sprintf("self_prec_p%d", p),
				solver.ExprOf(1, u), solver.GE,
				solver.ExprOf(1, u).Plus(solver.ExprOf(float64(e), throughput)).Minus(solver.ExprConst(1)),
			)
		}

		cycleTime := 0
		for _, t := range tasks {
			cycleTime += execTimeOf(f, t)
		}
		f.Adp.AddLinearConstraint(
			fmt.Sprintf("cycle_time_p%d", p),
			solver.ExprOf(float64(cycleTime), throughput), solver.LE,
			solver.ExprConst(1),
		)
	}
}

func execTimeOf(f *milp.Formulation, firing sdf.HsdfFiring) int {
	return f.ExecutionTime(firing.Actor)
}

// lessIndex orders two firing indices of the same actor lexicographically
// over every dimension, not just dimension 0, so the comparator remains a
// total order once a caller exercises more than one dataflow dimension.
func lessIndex(a, b vecn.Vector) bool {
	for d := 0; d < a.Dims(); d++ {
		if a.At(d) != b.At(d) {
			return a.At(d) < b.At(d)
		}
	}
	return false
}
