// Command sdfsched reads an SDF3 application-graph XML document, builds
// the self-timed MILP formulation of its HSDF expansion, wires every
// channel without a fixed initial-token count as a buffer-sized
// capacity variable, and sweeps the buffer-capacity vs. cycle-time
// Pareto front, printing one "Pareto: <cycle_time> <capacity>" line per
// non-dominated point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gitrdm/sdfsched/buffer"
	"github.com/gitrdm/sdfsched/config"
	"github.com/gitrdm/sdfsched/milp"
	"github.com/gitrdm/sdfsched/pareto"
	"github.com/gitrdm/sdfsched/sdf"
	"github.com/gitrdm/sdfsched/sdf3"
	"github.com/gitrdm/sdfsched/solver"
	"github.com/gitrdm/sdfsched/solver/mockadapter"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML solver-tolerances file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-config tolerances.toml] graph.xml\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "sdfsched:", err)
		os.Exit(1)
	}
}

func run(graphPath, configPath string) error {
	f, err := os.Open(graphPath)
	if err != nil {
		return fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()

	parsed, err := sdf3.Parse(f)
	if err != nil {
		return fmt.Errorf("parse graph: %w", err)
	}

	tol, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	h, err := parsed.Graph.ToHsdf()
	if err != nil {
		return fmt.Errorf("expand to hsdf: %w", err)
	}

	adp := mockadapter.New()
	tol.Apply(adp)

	form := milp.New(h, adp,
		func(actor int) int { return parsed.ExecutionTimes[actor] },
		func(fr sdf.HsdfFiring) string {
			return fmt.Sprintf("u_%s_%v", parsed.ActorNames[fr.Actor], fr.Index.Slice())
		})

	buffers := make([]solver.Var, 0, len(parsed.BufferChannels))
	for _, bc := range parsed.BufferChannels {
		capVar := adp.NewContinuous("cap_"+bc.Name, 0, 1e6)
		err := buffer.AddChannel(form, buffer.Channel{
			Production:    bc.Production,
			Consumption:   bc.Consumption,
			Source:        bc.Source,
			Target:        bc.Target,
			InitialTokens: sdf.Tokens{sdf.SymbolicTokens{Expr: solver.ExprOf(1, capVar)}},
		})
		if err != nil {
			return fmt.Errorf("buffer channel %q: %w", bc.Name, err)
		}
		buffers = append(buffers, capVar)
	}

	driver := pareto.New(form, 0, buffers)
	points, err := driver.Run(context.Background())
	if err != nil {
		return fmt.Errorf("pareto sweep: %w", err)
	}

	for _, p := range points {
		fmt.Printf("Pareto: %d %d\n", p.CycleTime, p.Capacity)
	}
	return nil
}
