// Package lpwriter renders a recorded model as CPLEX LP-format text, for
// inspecting or archiving a formulation independently of whichever Adapter
// solved it. It has no solving capability of its own.
package lpwriter

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/gitrdm/sdfsched/solver"
)

// Model is the minimal read-back a writer needs: the variables and
// constraints recorded by an Adapter, plus the objective. Adapters that
// want LP export implement this directly (mockadapter.Adapter does, via
// the accessor methods in export.go); a production adapter can do the
// same without this package depending on its internals.
type Model interface {
	Vars() []solver.Var
	Bounds(v solver.Var) (lower, upper float64)
	Constraints() []NamedConstraint
	Objective() (solver.Expr, solver.Sense)
}

// NamedConstraint pairs a constraint's name with its normalized form.
type NamedConstraint struct {
	Name string
	LHS  solver.Expr
	Rel  solver.Relation
	RHS  solver.Expr
}

// Write renders m to w in CPLEX LP format: an objective section, a
// subject-to section, a bounds section, and general/binary sections for
// integer and binary variables.
func Write(w io.Writer, m Model) error {
	vars := m.Vars()
	byID := make(map[int]solver.Var, len(vars))
	for _, v := range vars {
		byID[v.ID] = v
	}

	objExpr, sense := m.Objective()
	senseWord := "Minimize"
	if sense == solver.Maximize {
		senseWord = "Maximize"
	}
	fmt.Fprintf(w, "%s\n obj: %s\n", senseWord, formatExpr(objExpr))

	fmt.Fprintf(w, "Subject To\n")
	for _, c := range m.Constraints() {
		diff := c.LHS.Minus(c.RHS)
		coeffs, constTerm := foldTerms(diff)
		fmt.Fprintf(w, " %s: %s %s %s\n", c.Name, formatCoeffs(coeffs, byID), relSymbol(c.Rel), formatFloat(-constTerm))
	}

	fmt.Fprintf(w, "Bounds\n")
	var ids []int
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var generals, binaries []string
	for _, id := range ids {
		v := byID[id]
		lo, hi := m.Bounds(v)
		switch v.Kind {
		case solver.Binary:
			binaries = append(binaries, v.Name)
		default:
			loStr := formatFloat(lo)
			if math.IsInf(lo, -1) {
				loStr = "-inf"
			}
			hiStr := formatFloat(hi)
			if math.IsInf(hi, 1) {
				hiStr = "+inf"
			}
			fmt.Fprintf(w, " %s <= %s <= %s\n", loStr, v.Name, hiStr)
			if v.Kind == solver.Integer {
				generals = append(generals, v.Name)
			}
		}
	}

	if len(generals) > 0 {
		fmt.Fprintf(w, "General\n %s\n", joinNames(generals))
	}
	if len(binaries) > 0 {
		fmt.Fprintf(w, "Binary\n %s\n", joinNames(binaries))
	}
	fmt.Fprintf(w, "End\n")
	return nil
}

func foldTerms(e solver.Expr) (map[int]float64, float64) {
	coeffs := map[int]float64{}
	for _, t := range e.Terms {
		coeffs[t.Var.ID] += t.Coeff
	}
	return coeffs, e.Const
}

func formatExpr(e solver.Expr) string {
	coeffs, constTerm := foldTerms(e)
	ids := make([]int, 0, len(coeffs))
	for id := range coeffs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	s := ""
	for i, id := range ids {
		c := coeffs[id]
		if i > 0 && c >= 0 {
			s += " +"
		} else if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s x%d", formatFloat(c), id)
	}
	if constTerm != 0 {
		if constTerm > 0 {
			s += fmt.Sprintf(" + %s", formatFloat(constTerm))
		} else {
			s += fmt.Sprintf(" - %s", formatFloat(-constTerm))
		}
	}
	return s
}

func formatCoeffs(coeffs map[int]float64, byID map[int]solver.Var) string {
	ids := make([]int, 0, len(coeffs))
	for id := range coeffs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	s := ""
	for i, id := range ids {
		c := coeffs[id]
		name := fmt.Sprintf("x%d", id)
		if v, ok := byID[id]; ok {
			name = v.Name
		}
		if i > 0 && c >= 0 {
			s += " +"
		} else if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s %s", formatFloat(c), name)
	}
	return s
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}

func relSymbol(r solver.Relation) string {
	switch r {
	case solver.LE:
		return "<="
	case solver.GE:
		return ">="
	default:
		return "="
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += n
	}
	return out
}
