// Package scenario wires concrete scheduling problem instances out of the
// model and solver layers and renders their solutions.
package scenario

import (
	"fmt"
	"io"
	"log"

	"github.com/samber/lo"

	"rostering/internal/model"
	"rostering/internal/sat"
)

// Driver activity states.
const (
	StateFree  = "FREE"
	StateDrive = "DRIVE"
	StateRest  = "REST"
)

// StateOn is the single nurse state: assigned to the shift.
const StateOn = "ON"

// Params fixes the counts and policy bounds of a scheduling scenario.
type Params struct {
	Entities       int
	Periods        int
	SubPeriods     int
	MinWork        int
	MaxWork        int
	MaxConsecutive int
	Interest       []int // 1-based ordinals of the solutions to print
}

var (
	DefaultDriverShifts = Params{
		Entities:       3,
		Periods:        1,
		SubPeriods:     8,
		MinWork:        4,
		MaxWork:        5,
		MaxConsecutive: 2,
		Interest:       []int{1, 2},
	}
	DefaultDriverFreeDays = Params{
		Entities:       6,
		Periods:        7,
		SubPeriods:     6,
		MinWork:        3,
		MaxWork:        5,
		MaxConsecutive: 2,
	}
	DefaultNurseShifts = Params{
		Entities:   4,
		Periods:    3,
		SubPeriods: 3,
		MaxWork:    1,
		Interest:   lo.RangeFrom(1, 5),
	}
)

func driverVocabulary() *model.Vocabulary {
	v, err := model.NewVocabulary(
		model.State{Name: StateFree, IsWork: false},
		model.State{Name: StateDrive, IsWork: true},
		model.State{Name: StateRest, IsWork: true},
	)
	if err != nil {
		log.Panicf("driver vocabulary: %v", err)
	}
	return v
}

// DriverShifts enumerates driver schedules under the break policy: exactly one
// driver per block, bounded daily workload, and bounded consecutive driving.
// The solutions listed in params.Interest are printed to w.
func DriverShifts(w io.Writer, solver sat.Solver, params Params) error {
	m := sat.NewModel()
	grid, err := model.NewGrid(m, params.Entities, params.Periods, params.SubPeriods, driverVocabulary())
	if err != nil {
		return err
	}

	if err := registerDriverPolicy(m, grid, params, nil); err != nil {
		return err
	}

	renderer := scheduleRenderer{w: w, grid: grid, label: "Driver"}
	stats, err := solver.Enumerate(m, sat.OfInterest(params.Interest, renderer.render))
	if err != nil {
		return err
	}
	renderStatistics(w, stats)
	return nil
}

// DriverFreeDays runs the same break policy over a longer horizon with
// free-day indicators: the minimum daily workload is exempted exactly on days
// the indicator marks as fully free. A single feasible schedule is searched
// for rather than enumerating.
func DriverFreeDays(w io.Writer, solver sat.Solver, params Params) error {
	m := sat.NewModel()
	grid, err := model.NewGrid(m, params.Entities, params.Periods, params.SubPeriods, driverVocabulary())
	if err != nil {
		return err
	}

	freeDays := make([]model.Indicator, 0, params.Entities*params.Periods)
	for entity := range params.Entities {
		for period := range params.Periods {
			indicator, err := model.DefineIndicator(m, grid, entity, period, StateFree)
			if err != nil {
				return err
			}
			freeDays = append(freeDays, indicator)
		}
	}

	if err := registerDriverPolicy(m, grid, params, freeDays); err != nil {
		return err
	}

	result, err := solver.Solve(m)
	if err != nil {
		return err
	}
	switch result.Status {
	case sat.Feasible:
		if !m.Check(result.Solution) {
			log.Panicf("solver returned a schedule violating its own constraints")
		}
		renderer := scheduleRenderer{w: w, grid: grid, label: "Driver"}
		renderer.render(1, result.Solution)
	case sat.Infeasible:
		fmt.Fprintln(w, "No solution exists.")
	case sat.Unknown:
		fmt.Fprintln(w, "Time budget elapsed before the search could conclude.")
	}
	renderStatistics(w, result.Stats)
	return nil
}

func registerDriverPolicy(sink model.ConstraintSink, grid *model.Grid, params Params, freeDays []model.Indicator) error {
	if err := model.RequireExactCoverage(sink, grid, StateDrive); err != nil {
		return err
	}
	if err := model.RequireExclusiveActivity(sink, grid); err != nil {
		return err
	}
	if err := model.LimitTotalWork(sink, grid, params.MaxWork); err != nil {
		return err
	}
	if err := model.RequireMinimumWork(sink, grid, params.MinWork, freeDays); err != nil {
		return err
	}
	return model.LimitConsecutiveRuns(sink, grid, StateDrive, params.MaxConsecutive)
}

// NurseShifts enumerates nurse rosters under a single policy: at most
// params.MaxWork shifts per nurse per day.
func NurseShifts(w io.Writer, solver sat.Solver, params Params) error {
	vocab, err := model.NewVocabulary(model.State{Name: StateOn, IsWork: true})
	if err != nil {
		return err
	}
	m := sat.NewModel()
	grid, err := model.NewGrid(m, params.Entities, params.Periods, params.SubPeriods, vocab)
	if err != nil {
		return err
	}
	if err := model.LimitTotalWork(m, grid, params.MaxWork); err != nil {
		return err
	}

	renderer := scheduleRenderer{w: w, grid: grid, label: "Nurse"}
	stats, err := solver.Enumerate(m, sat.OfInterest(params.Interest, renderer.render))
	if err != nil {
		return err
	}
	renderStatistics(w, stats)
	return nil
}

// Implications enumerates the satisfying assignments of the boolean puzzle
// a => c, !a => !c, b => c over all three variables.
func Implications(w io.Writer, solver sat.Solver) error {
	m := sat.NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")

	for _, pair := range [][2]sat.Lit{{a, c}, {a.Not(), c.Not()}, {b, c}} {
		if err := model.Imply(m, pair[0], pair[1]); err != nil {
			return err
		}
	}

	variables := []sat.Lit{a, b, c}
	render := func(ordinal int, sol *sat.Solution) {
		fmt.Fprintf(w, "Solution %v\n", ordinal)
		for _, v := range variables {
			value := 0
			if sol.Value(v) {
				value = 1
			}
			fmt.Fprintf(w, "  %v -> %v\n", m.NameOf(v), value)
		}
		fmt.Fprintln(w)
	}

	stats, err := solver.Enumerate(m, sat.OfInterest(lo.RangeFrom(1, 8), render))
	if err != nil {
		return err
	}
	renderStatistics(w, stats)
	return nil
}
