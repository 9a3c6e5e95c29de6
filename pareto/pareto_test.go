package pareto_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/sdfsched/buffer"
	"github.com/gitrdm/sdfsched/internal/vecn"
	"github.com/gitrdm/sdfsched/milp"
	"github.com/gitrdm/sdfsched/pareto"
	"github.com/gitrdm/sdfsched/sdf"
	"github.com/gitrdm/sdfsched/solver"
	"github.com/gitrdm/sdfsched/solver/mockadapter"
)

func TestRunProducesNonIncreasingCycleTimes(t *testing.T) {
	// Two single-firing actors with a channel in each direction, one of
	// them buffer-sized: small enough for the mock adapter's exhaustive
	// branch-and-bound to sweep several Pareto points.
	g := sdf.New(2, 1)
	g.AddChannel(sdf.Channel{Production: vecn.Of(1), Consumption: vecn.Of(1), Source: 0, Target: 1, InitialTokens: vecn.Of(1)})
	h, err := g.ToHsdf()
	require.NoError(t, err)

	adp := mockadapter.New()
	f := milp.New(h, adp, func(actor int) int { return 1 }, func(fr sdf.HsdfFiring) string {
		return fmt.Sprintf("u_%d_%v", fr.Actor, fr.Index.Slice())
	})

	cap0 := adp.NewContinuous("cap_ba", 0, 10)
	err = buffer.AddChannel(f, buffer.Channel{
		Production:    vecn.Of(1),
		Consumption:   vecn.Of(1),
		Source:        1,
		Target:        0,
		InitialTokens: sdf.Tokens{sdf.SymbolicTokens{Expr: solver.ExprOf(1, cap0)}},
	})
	require.NoError(t, err)

	driver := pareto.New(f, 0, []solver.Var{cap0})
	points, err := driver.Run(context.Background())
	require.NoError(t, err)

	for i := 1; i < len(points); i++ {
		require.LessOrEqual(t, points[i].CycleTime, points[i-1].CycleTime)
	}
}
