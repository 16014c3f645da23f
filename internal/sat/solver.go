package sat

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
	"github.com/samber/lo"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// DefaultTimeBudget bounds a solver run when the caller does not configure one.
const DefaultTimeBudget = 10 * time.Second

// Status is the terminal outcome of a first-feasible run. Infeasible means the
// search space was exhausted with no solution; Unknown means the time budget
// elapsed before the solver could conclude either way. The two must never be
// conflated: only Infeasible proves that no solution exists.
type Status int

const (
	Feasible Status = iota
	Infeasible
	Unknown
)

func (s Status) String() string {
	switch s {
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Statistics accumulates over the life of one run and is reset per run.
// The underlying solver exposes no internal conflict or decision counters, so
// counting happens at enumeration granularity: Branches is the number of
// solver invocations and Conflicts the number of unsatisfiable outcomes.
type Statistics struct {
	Solutions int
	Conflicts int
	Branches  int
	WallTime  time.Duration
}

// Result is the outcome of a first-feasible run. Solution is non-nil only when
// Status is Feasible; callers must inspect Status before reading values.
type Result struct {
	Status   Status
	Solution *Solution
	Stats    Statistics
}

// SolutionFunc receives each discovered solution together with its 1-based
// ordinal in discovery order. Solutions are delivered one at a time, never
// concurrently, and must not be retained after the callback returns.
type SolutionFunc func(ordinal int, sol *Solution)

// OfInterest narrows fn to the listed ordinals. Enumeration still visits and
// counts every solution; fn just never sees the others.
func OfInterest(ordinals []int, fn SolutionFunc) SolutionFunc {
	interest := lo.SliceToMap(ordinals, func(n int) (int, struct{}) { return n, struct{}{} })
	return func(ordinal int, sol *Solution) {
		if _, ok := interest[ordinal]; ok {
			fn(ordinal, sol)
		}
	}
}

// Solver runs a fully constructed Model. Solve searches for a single feasible
// solution; Enumerate visits every satisfying assignment until the search
// space is exhausted or the time budget elapses.
type Solver interface {
	Solve(m *Model) (Result, error)
	Enumerate(m *Model, fn SolutionFunc) (Statistics, error)
}

// NewGiniSolver returns a Solver backed by the gini SAT engine with the given
// per-run time budget. A non-positive budget selects DefaultTimeBudget.
func NewGiniSolver(timeBudget time.Duration) Solver {
	if timeBudget <= 0 {
		timeBudget = DefaultTimeBudget
	}
	return &giniSolver{timeBudget: timeBudget}
}

type giniSolver struct {
	timeBudget time.Duration
}

// load translates the model circuit to CNF on a fresh engine and asserts every
// constraint root as a unit clause. Each run gets its own engine so that the
// blocking clauses of one enumeration never leak into the next.
func (solver *giniSolver) load(m *Model) inter.S {
	g := gini.New()
	m.c.ToCnf(g)
	for _, root := range m.roots {
		g.Add(root)
		g.Add(z.LitNull)
	}
	return g
}

func snapshot(m *Model, g inter.S) *Solution {
	return &Solution{values: lo.Map(m.lits, func(gl z.Lit, _ int) bool { return g.Value(gl) })}
}

func (solver *giniSolver) Solve(m *Model) (Result, error) {
	start := time.Now()
	if m.infeasible {
		// The rejected model counts as one conflicted invocation.
		return Result{Status: Infeasible, Stats: Statistics{Branches: 1, Conflicts: 1, WallTime: time.Since(start)}}, nil
	}

	g := solver.load(m)
	stats := Statistics{Branches: 1}
	outcome := g.Try(solver.timeBudget)
	stats.WallTime = time.Since(start)

	switch outcome {
	case satisfiable:
		stats.Solutions = 1
		return Result{Status: Feasible, Solution: snapshot(m, g), Stats: stats}, nil
	case unsatisfiable:
		stats.Conflicts = 1
		return Result{Status: Infeasible, Stats: stats}, nil
	default:
		return Result{Status: Unknown, Stats: stats}, nil
	}
}

func (solver *giniSolver) Enumerate(m *Model, fn SolutionFunc) (Statistics, error) {
	start := time.Now()
	stats := Statistics{}
	if m.infeasible {
		stats.Branches = 1
		stats.Conflicts = 1
		stats.WallTime = time.Since(start)
		return stats, nil
	}

	g := solver.load(m)
	deadline := start.Add(solver.timeBudget)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		stats.Branches++
		outcome := g.Try(remaining)
		if outcome == unknown {
			break
		}
		if outcome == unsatisfiable {
			stats.Conflicts++
			break
		}

		stats.Solutions++
		if fn != nil {
			fn(stats.Solutions, snapshot(m, g))
		}

		// Block the assignment just found, restricted to the model's declared
		// variables: auxiliary circuit gates are functionally determined by
		// them, so distinctness over declared variables is exact.
		for _, gl := range m.lits {
			if g.Value(gl) {
				g.Add(gl.Not())
			} else {
				g.Add(gl)
			}
		}
		g.Add(z.LitNull)
	}
	stats.WallTime = time.Since(start)
	return stats, nil
}
