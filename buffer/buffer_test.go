package buffer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/sdfsched/buffer"
	"github.com/gitrdm/sdfsched/internal/vecn"
	"github.com/gitrdm/sdfsched/milp"
	"github.com/gitrdm/sdfsched/sdf"
	"github.com/gitrdm/sdfsched/solver"
	"github.com/gitrdm/sdfsched/solver/mockadapter"
)

func buildChainHsdf(t *testing.T) (*sdf.Hsdf, map[int]int) {
	t.Helper()
	g := sdf.New(3, 1)
	g.AddChannel(sdf.Channel{Production: vecn.Of(1), Consumption: vecn.Of(1), Source: 0, Target: 0, InitialTokens: vecn.Of(1)})
	g.AddChannel(sdf.Channel{Production: vecn.Of(1), Consumption: vecn.Of(1), Source: 1, Target: 1, InitialTokens: vecn.Of(1)})
	g.AddChannel(sdf.Channel{Production: vecn.Of(1), Consumption: vecn.Of(1), Source: 2, Target: 2, InitialTokens: vecn.Of(1)})
	g.AddChannel(sdf.Channel{Production: vecn.Of(2), Consumption: vecn.Of(3), Source: 0, Target: 1, InitialTokens: vecn.Of(0)})
	g.AddChannel(sdf.Channel{Production: vecn.Of(1), Consumption: vecn.Of(2), Source: 1, Target: 2, InitialTokens: vecn.Of(0)})
	h, err := g.ToHsdf()
	require.NoError(t, err)
	return h, map[int]int{0: 1, 1: 2, 2: 2}
}

func TestAddChannelWithSymbolicCapacityProducesFeasibleModel(t *testing.T) {
	h, execTimes := buildChainHsdf(t)
	adp := mockadapter.New()
	f := milp.New(h, adp, func(actor int) int { return execTimes[actor] }, func(fr sdf.HsdfFiring) string {
		return fmt.Sprintf("u_%d_%v", fr.Actor, fr.Index.Slice())
	})

	buffer1 := adp.NewContinuous("buffer1", 0, 4)
	err := buffer.AddChannel(f, buffer.Channel{
		Production:    vecn.Of(3),
		Consumption:   vecn.Of(2),
		Source:        1,
		Target:        0,
		InitialTokens: sdf.Tokens{sdf.SymbolicTokens{Expr: solver.ExprOf(1, buffer1)}},
	})
	require.NoError(t, err)

	f.SetObjective(solver.ExprOf(1, f.Throughputs[0]), solver.Maximize)
	status, optErr := adp.Optimize(context.Background())
	require.NoError(t, optErr)
	require.Equal(t, solver.Optimal, status)
}

func TestAddChannelWithConcreteTokensFoldsToLiteralBound(t *testing.T) {
	h, execTimes := buildChainHsdf(t)
	adp := mockadapter.New()
	f := milp.New(h, adp, func(actor int) int { return execTimes[actor] }, func(fr sdf.HsdfFiring) string {
		return fmt.Sprintf("u_%d_%v", fr.Actor, fr.Index.Slice())
	})

	err := buffer.AddChannel(f, buffer.Channel{
		Production:    vecn.Of(3),
		Consumption:   vecn.Of(2),
		Source:        1,
		Target:        0,
		InitialTokens: sdf.Tokens{sdf.ConcreteTokens(5)},
	})
	require.NoError(t, err)

	f.SetObjective(solver.ExprOf(1, f.Throughputs[0]), solver.Maximize)
	status, optErr := adp.Optimize(context.Background())
	require.NoError(t, optErr)
	require.Equal(t, solver.Optimal, status)
}

func TestAddChannelRejectsRepetitionVectorChange(t *testing.T) {
	h, execTimes := buildChainHsdf(t)
	adp := mockadapter.New()
	f := milp.New(h, adp, func(actor int) int { return execTimes[actor] }, func(fr sdf.HsdfFiring) string {
		return fmt.Sprintf("u_%d_%v", fr.Actor, fr.Index.Slice())
	})

	err := buffer.AddChannel(f, buffer.Channel{
		Production:    vecn.Of(1),
		Consumption:   vecn.Of(1),
		Source:        1,
		Target:        0,
		InitialTokens: sdf.Tokens{sdf.ConcreteTokens(5)},
	})
	require.ErrorIs(t, err, buffer.ErrRepetitionVectorChange)
}
