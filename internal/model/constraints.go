package model

import (
	"fmt"

	"rostering/internal/sat"
)

// ConstraintSink is the capability the builder registers policy constraints
// through. It decouples constraint registration from the concrete solver
// backend; *sat.Model is the standard implementation.
type ConstraintSink interface {
	AddSumEquals(terms []sat.Lit, n int) error
	AddSumAtMost(terms []sat.Lit, n int) error
	AddSumAtLeast(terms []sat.Lit, n int) error
	AddSumAtLeastWhen(terms []sat.Lit, n int, cond sat.Lit) error
	AddImplication(a, b sat.Lit) error
	AddIffAll(a sat.Lit, terms []sat.Lit) error
}

var _ ConstraintSink = (*sat.Model)(nil)

// RequireExactCoverage registers, for every (period, subPeriod), that exactly
// one entity is in the named state.
func RequireExactCoverage(sink ConstraintSink, g *Grid, stateName string) error {
	state, ok := g.vocab.Index(stateName)
	if !ok {
		return fmt.Errorf("%w: state %q", sat.ErrInvalidReference, stateName)
	}
	for period := range g.periods {
		for sub := range g.subPeriods {
			terms := make([]sat.Lit, g.entities)
			for entity := range g.entities {
				terms[entity] = g.Var(entity, period, sub, state)
			}
			if err := sink.AddSumEquals(terms, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// RequireExclusiveActivity registers, for every (entity, period, subPeriod),
// that exactly one state holds.
func RequireExclusiveActivity(sink ConstraintSink, g *Grid) error {
	for entity := range g.entities {
		for period := range g.periods {
			for sub := range g.subPeriods {
				terms := make([]sat.Lit, g.vocab.Len())
				for state := range g.vocab.Len() {
					terms[state] = g.Var(entity, period, sub, state)
				}
				if err := sink.AddSumEquals(terms, 1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// LimitTotalWork bounds the number of work-state sub-periods of every
// (entity, period) from above. The bound applies unconditionally, free periods
// included.
func LimitTotalWork(sink ConstraintSink, g *Grid, maxWork int) error {
	work := g.vocab.WorkStates()
	for entity := range g.entities {
		for period := range g.periods {
			if err := sink.AddSumAtMost(workTerms(g, entity, period, work), maxWork); err != nil {
				return err
			}
		}
	}
	return nil
}

// RequireMinimumWork bounds the number of work-state sub-periods of every
// (entity, period) from below. When an indicator covers the (entity, period),
// the bound is count >= minWork x (1 - indicator): it applies only while the
// entity is not marked free. Periods with no indicator get the bound
// unconditionally.
func RequireMinimumWork(sink ConstraintSink, g *Grid, minWork int, freePeriods []Indicator) error {
	free := make(map[[2]int]sat.Lit, len(freePeriods))
	for _, ind := range freePeriods {
		if ind.Entity < 0 || ind.Entity >= g.entities || ind.Period < 0 || ind.Period >= g.periods {
			return fmt.Errorf("%w: indicator entity=%v period=%v", sat.ErrInvalidReference, ind.Entity, ind.Period)
		}
		free[[2]int{ind.Entity, ind.Period}] = ind.Lit
	}

	work := g.vocab.WorkStates()
	for entity := range g.entities {
		for period := range g.periods {
			terms := workTerms(g, entity, period, work)
			var err error
			if indicator, ok := free[[2]int{entity, period}]; ok {
				err = sink.AddSumAtLeastWhen(terms, minWork, indicator.Not())
			} else {
				err = sink.AddSumAtLeast(terms, minWork)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// LimitConsecutiveRuns registers, for every (entity, period) and every window
// of maxRun+1 contiguous sub-periods fully inside the period, that at most
// maxRun of them are in the named state. Windows never wrap across periods or
// past the last sub-period, so runs of exactly maxRun separated by a single
// other-state block remain allowed.
func LimitConsecutiveRuns(sink ConstraintSink, g *Grid, stateName string, maxRun int) error {
	state, ok := g.vocab.Index(stateName)
	if !ok {
		return fmt.Errorf("%w: state %q", sat.ErrInvalidReference, stateName)
	}
	if maxRun <= 0 {
		return fmt.Errorf("%w: maxRun=%v", ErrInvalidDimension, maxRun)
	}
	for entity := range g.entities {
		for period := range g.periods {
			for start := 0; start+maxRun < g.subPeriods; start++ {
				terms := make([]sat.Lit, maxRun+1)
				for i := range terms {
					terms[i] = g.Var(entity, period, start+i, state)
				}
				if err := sink.AddSumAtMost(terms, maxRun); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Imply registers the direct implication a => b, for ad hoc boolean
// relationships outside the scheduling families.
func Imply(sink ConstraintSink, a, b sat.Lit) error {
	return sink.AddImplication(a, b)
}

func workTerms(g *Grid, entity, period int, workStates []int) []sat.Lit {
	terms := make([]sat.Lit, 0, g.subPeriods*len(workStates))
	for sub := range g.subPeriods {
		for _, state := range workStates {
			terms = append(terms, g.Var(entity, period, sub, state))
		}
	}
	return terms
}
