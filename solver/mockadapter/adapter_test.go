package mockadapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/sdfsched/solver"
)

func TestOptimizeMaximizesThroughputOnTwoActorCycle(t *testing.T) {
	a := New()
	u0 := a.NewContinuous("u0", 0, 1e6)
	u1 := a.NewContinuous("u1", 0, 1e6)
	thr := a.NewContinuous("throughput", 0, 1e6)

	a.AddLinearConstraint("fix_gauge", solver.ExprOf(1, u0), solver.EQ, solver.ExprConst(0))
	// u1 >= u0 + 1*thr - 5, u0 >= u1 + 1*thr - 5: a two-cycle with total
	// execution time 2 and total initial tokens 10, so the maximum
	// throughput is 10/2 = 5.
	a.AddLinearConstraint("dep01", solver.ExprOf(1, u1), solver.GE,
		solver.ExprOf(1, u0).Plus(solver.ExprOf(1, thr)).Minus(solver.ExprConst(5)))
	a.AddLinearConstraint("dep10", solver.ExprOf(1, u0), solver.GE,
		solver.ExprOf(1, u1).Plus(solver.ExprOf(1, thr)).Minus(solver.ExprConst(5)))

	a.SetObjective(solver.ExprOf(1, thr), solver.Maximize)

	status, err := a.Optimize(context.Background())
	require.NoError(t, err)
	require.Equal(t, solver.Optimal, status)
	require.InDelta(t, 5.0, a.Value(thr), 1e-4)
}

func TestOptimizeDetectsInfeasibility(t *testing.T) {
	a := New()
	x := a.NewContinuous("x", 0, 10)
	a.AddLinearConstraint("c1", solver.ExprOf(1, x), solver.GE, solver.ExprConst(8))
	a.AddLinearConstraint("c2", solver.ExprOf(1, x), solver.LE, solver.ExprConst(3))
	a.SetObjective(solver.ExprOf(1, x), solver.Minimize)

	status, err := a.Optimize(context.Background())
	require.NoError(t, err)
	require.Equal(t, solver.Infeasible, status)
}

func TestOptimizeBinaryDisjunctionPicksOneOrdering(t *testing.T) {
	a := New()
	s0 := a.NewContinuous("s0", 0, 100)
	s1 := a.NewContinuous("s1", 0, 100)
	k := a.NewBinary("k")

	// s1 >= s0 + 3 - 100*(1-k) = s0 - 97 + 100k: one ordering choice must
	// hold since k in {0,1}, so this alone never forces infeasibility.
	a.AddLinearConstraint("order", solver.ExprOf(1, s1), solver.GE,
		solver.ExprOf(1, s0).Plus(solver.ExprConst(-97)).Plus(solver.ExprOf(100, k)))

	a.SetObjective(solver.ExprOf(1, s1), solver.Minimize)
	status, err := a.Optimize(context.Background())
	require.NoError(t, err)
	require.Equal(t, solver.Optimal, status)
	kv := a.Value(k)
	require.True(t, kv == 0 || kv == 1)
}

func TestRemoveConstraintRelaxesModel(t *testing.T) {
	a := New()
	x := a.NewContinuous("x", 0, 10)
	h := a.AddLinearConstraint("cap", solver.ExprOf(1, x), solver.LE, solver.ExprConst(2))
	a.SetObjective(solver.ExprOf(1, x), solver.Maximize)

	status, err := a.Optimize(context.Background())
	require.NoError(t, err)
	require.Equal(t, solver.Optimal, status)
	require.InDelta(t, 2.0, a.Value(x), 1e-6)

	a.RemoveConstraint(h)
	status, err = a.Optimize(context.Background())
	require.NoError(t, err)
	require.Equal(t, solver.Optimal, status)
	require.InDelta(t, 10.0, a.Value(x), 1e-6)
}
