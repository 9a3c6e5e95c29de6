// Package buffer appends MRSDF buffer-sizing constraints to a MILP
// formulation, without ever materializing the HsdfChannels a symbolic
// initial-token count would require: a target firing may start only once
// its j-th consumed token has been produced, expressed through a dense
// ceiling-division variable table reused across every firing pair.
package buffer

import (
	"errors"
	"fmt"

	"github.com/gitrdm/sdfsched/internal/biter"
	"github.com/gitrdm/sdfsched/internal/vecn"
	"github.com/gitrdm/sdfsched/milp"
	"github.com/gitrdm/sdfsched/sdf"
	"github.com/gitrdm/sdfsched/solver"
)

// ErrRepetitionVectorChange signals that rv[source]*production does not
// equal rv[target]*consumption in some dimension, which would change the
// steady-state repetition vector and is therefore rejected.
var ErrRepetitionVectorChange = errors.New("buffer: channel would change the repetition vector")

// Channel is one MRSDF buffer-sized channel: rates are fixed, but the
// initial-token count per dimension may be symbolic (see sdf.Tokens).
type Channel struct {
	Production    vecn.Vector
	Consumption   vecn.Vector
	Source        int
	Target        int
	InitialTokens sdf.Tokens
}

const bigUpperBound = 1e9

// AddChannel appends one MRSDF buffer-sized channel's constraints to f.
// It never expands the channel into per-firing HsdfChannels; instead it
// builds a per-dimension, per-residue memoization table of ceiling-
// division variables (dense, indexed by (dimension, k)) and reuses it
// across every (source index, target index) firing pair, keeping
// constraint count linear rather than quadratic in the per-dimension
// denominator.
func AddChannel(f *milp.Formulation, ch Channel) error {
	rv := f.Hsdf.RepetitionVector
	denom := rv[ch.Source].Mul(ch.Production)
	if !denom.Equal(rv[ch.Target].Mul(ch.Consumption)) {
		return ErrRepetitionVectorChange
	}
	dims := denom.Dims()
	if len(ch.InitialTokens) != dims {
		return fmt.Errorf("buffer: initial tokens has %d dimensions, want %d", len(ch.InitialTokens), dims)
	}

	memo := make([]map[int]solver.Expr, dims)
	for d := 0; d < dims; d++ {
		memo[d] = map[int]solver.Expr{}
		dd := denom.At(d)
		for k := 0; k < dd; k++ {
			expr, err := memoizedEntry(f, ch, d, k, dd)
			if err != nil {
				return err
			}
			memo[d][k] = expr
		}
	}

	srcFirings := biter.New(rv[ch.Source])
	for {
		si, ok := srcFirings.Next()
		if !ok {
			break
		}
		tgtFirings := biter.New(rv[ch.Target])
		for {
			ti, ok := tgtFirings.Next()
			if !ok {
				break
			}
			raw := ch.Production.Mul(si).Sub(ch.Consumption.Mul(ti)).Add(denom.Sub(ch.Consumption))
			kvec := raw.Mod(denom)
			whole := raw.FloorDiv(denom)

			srcFiring := sdf.HsdfFiring{Actor: ch.Source, Index: si}
			tgtFiring := sdf.HsdfFiring{Actor: ch.Target, Index: ti}
			uSrc, ok := f.U[srcFiring]
			if !ok {
				return fmt.Errorf("buffer: no start-time variable for source firing %+v", srcFiring)
			}
			uTgt, ok := f.U[tgtFiring]
			if !ok {
				return fmt.Errorf("buffer: no start-time variable for target firing %+v", tgtFiring)
			}
			e := f.ExecutionTime(ch.Source)

			for d := 0; d < dims; d++ {
				tokens := memo[d][kvec.At(d)].Plus(solver.ExprConst(float64(whole.At(d))))
				rhs := solver.ExprOf(1, uSrc).
					Plus(solver.ExprOf(float64(e), f.Throughputs[d])).
					Minus(tokens)
				name := fmt.Sprintf("buf_%d_%d_%v_%v_d%d", ch.Source, ch.Target, si.Slice(), ti.Slice(), d)
				f.Adp.AddLinearConstraint(name, solver.ExprOf(1, uTgt), solver.GE, rhs)
			}
		}
	}
	return nil
}

// memoizedEntry returns the expression standing in for v_{d,k}: a literal
// upper bound when the channel's initial-token count is already known in
// dimension d, or a fresh integer variable constrained to
// v_{d,k} <= (initial_tokens[d] + k) / denom otherwise.
func memoizedEntry(f *milp.Formulation, ch Channel, d, k, denom int) (solver.Expr, error) {
	switch tv := ch.InitialTokens[d].(type) {
	case sdf.ConcreteTokens:
		return solver.ExprConst(float64(floorDivInt(int(tv)+k, denom))), nil
	case sdf.SymbolicTokens:
		name := fmt.Sprintf("v_%d_%d_d%d_k%d", ch.Source, ch.Target, d, k)
		v := f.Adp.NewInteger(name, 0, bigUpperBound)
		cname := fmt.Sprintf("%s_bound", name)
		f.Adp.AddLinearConstraint(cname,
			solver.ExprOf(float64(denom), v), solver.LE,
			tv.Expr.Plus(solver.ExprConst(float64(k))))
		return solver.ExprOf(1, v), nil
	default:
		return solver.Expr{}, fmt.Errorf("buffer: unknown token value type %T", tv)
	}
}

func floorDivInt(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
