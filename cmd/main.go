package main

import (
	"flag"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"rostering/internal/config"
	"rostering/internal/sat"
	"rostering/internal/scenario"
)

var (
	validScenarios = []string{"drivers", "freedays", "nurses", "implications"}
	defaults       = map[string]scenario.Params{
		"drivers":  scenario.DefaultDriverShifts,
		"freedays": scenario.DefaultDriverFreeDays,
		"nurses":   scenario.DefaultNurseShifts,
	}
	scenarios = map[string]func(w io.Writer, solver sat.Solver, params scenario.Params) error{
		"drivers":  scenario.DriverShifts,
		"freedays": scenario.DriverFreeDays,
		"nurses":   scenario.NurseShifts,
	}
)

// acceptsParams reports whether the scenario is driven by a parameter record
// and may take a params file override.
func acceptsParams(name string) bool {
	_, ok := defaults[name]
	return ok
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Define arguments
	scenarioPtr := flag.String("scenario", cfg.Scenario, "Scenario to run. Allowed values are: \"drivers\", \"freedays\", \"nurses\", \"implications\", where \"drivers\" is the default")
	paramsPtr := flag.String("params", "", "Path to a JSON file overriding the scenario's default parameters")
	flag.Parse()
	name := strings.ToLower(*scenarioPtr)

	// Validate arguments
	if !slices.Contains(validScenarios, name) {
		log.Fatalf("%v is not a valid scenario", name)
	}

	if *paramsPtr != "" && !acceptsParams(name) {
		log.Fatalf("scenario %v does not accept a params file", name)
	}

	solver := sat.NewGiniSolver(time.Duration(cfg.TimeBudget) * time.Second)

	if name == "implications" {
		if err := scenario.Implications(os.Stdout, solver); err != nil {
			log.Fatalf("an error occurred while running scenario %v: %v", name, err)
		}
		return
	}

	params := defaults[name]
	if *paramsPtr != "" {
		params, err = scenario.ParamsFromJSON(*paramsPtr)
		if err != nil {
			log.Fatalf("cannot parse params file: %v", err)
		}
	}

	if err := scenarios[name](os.Stdout, solver, params); err != nil {
		log.Fatalf("an error occurred while running scenario %v: %v", name, err)
	}
}
