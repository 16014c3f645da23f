package model

import (
	"fmt"

	"rostering/internal/sat"
)

// Indicator is a derived boolean keyed by (entity, period). It is logically
// equivalent to "every sub-period of the period is in the defining state" in
// every valid solution, not merely implied one way.
type Indicator struct {
	Entity int
	Period int
	Lit    sat.Lit
}

// DefineIndicator creates the indicator for (entity, period) over the named
// defining state and registers its equivalence: any sub-period outside the
// defining state forces the indicator false, and the indicator true forces
// every sub-period into the defining state.
func DefineIndicator(m *sat.Model, g *Grid, entity, period int, stateName string) (Indicator, error) {
	state, ok := g.vocab.Index(stateName)
	if !ok {
		return Indicator{}, fmt.Errorf("%w: state %q", sat.ErrInvalidReference, stateName)
	}
	if entity < 0 || entity >= g.entities || period < 0 || period >= g.periods {
		return Indicator{}, fmt.Errorf("%w: entity=%v period=%v", sat.ErrInvalidReference, entity, period)
	}

	terms := make([]sat.Lit, g.subPeriods)
	for sub := range g.subPeriods {
		terms[sub] = g.Var(entity, period, sub, state)
	}

	ind := Indicator{
		Entity: entity,
		Period: period,
		Lit:    m.NewBoolVar(fmt.Sprintf("all_%v_e%v_p%v", stateName, entity, period)),
	}
	if err := m.AddIffAll(ind.Lit, terms); err != nil {
		return Indicator{}, err
	}
	return ind, nil
}
