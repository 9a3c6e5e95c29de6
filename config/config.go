// Package config loads solver-tolerance configuration from TOML, the
// format the rest of the example pack reaches for over ad hoc flag
// parsing or JSON for this kind of small, human-edited settings file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/gitrdm/sdfsched/solver"
)

// Tolerances holds the solver-parameter recommendations for the Pareto
// driver: integer-feasibility, feasibility, and optimality tolerances are
// all set tight (1e-9) by default, and console logging is off by default.
type Tolerances struct {
	LogToConsole   int     `toml:"log_to_console"`
	IntFeasTol     float64 `toml:"int_feas_tol"`
	FeasibilityTol float64 `toml:"feasibility_tol"`
	OptimalityTol  float64 `toml:"optimality_tol"`
}

// Default returns the recommended tolerances when no config file is
// given: LogToConsole=0, every tolerance at 1e-9.
func Default() Tolerances {
	return Tolerances{
		LogToConsole:   0,
		IntFeasTol:     1e-9,
		FeasibilityTol: 1e-9,
		OptimalityTol:  1e-9,
	}
}

// Load reads a TOML tolerances file at path, falling back to Default()
// for any field the file omits.
func Load(path string) (Tolerances, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Tolerances{}, fmt.Errorf("config: %w", err)
	}
	return t, nil
}

// Apply pushes every tolerance onto adp via SetParameter, using the
// parameter names the adapter contract documents (spec §6/§4.7).
func (t Tolerances) Apply(adp solver.Adapter) {
	adp.SetParameter("LogToConsole", float64(t.LogToConsole))
	adp.SetParameter("IntFeasTol", t.IntFeasTol)
	adp.SetParameter("FeasibilityTol", t.FeasibilityTol)
	adp.SetParameter("OptimalityTol", t.OptimalityTol)
}
