package model

import (
	"fmt"

	"rostering/internal/sat"
)

// Grid is the dense collection of decision variables keyed by
// (entity, period, subPeriod, state): "entity performs state in this
// sub-period of this period". Variables are created once at construction and
// only ever assigned by the solver.
type Grid struct {
	entities   int
	periods    int
	subPeriods int
	vocab      *Vocabulary
	indexer    Indexer
	vars       []sat.Lit
}

func NewGrid(m *sat.Model, entities, periods, subPeriods int, vocab *Vocabulary) (*Grid, error) {
	if entities <= 0 || periods <= 0 || subPeriods <= 0 {
		return nil, fmt.Errorf("%w: entities=%v periods=%v subPeriods=%v", ErrInvalidDimension, entities, periods, subPeriods)
	}
	if vocab == nil || vocab.Len() == 0 {
		return nil, fmt.Errorf("%w: empty state vocabulary", ErrInvalidDimension)
	}

	g := &Grid{
		entities:   entities,
		periods:    periods,
		subPeriods: subPeriods,
		vocab:      vocab,
		indexer:    NewIndexer(entities, periods, subPeriods, vocab.Len()),
		vars:       make([]sat.Lit, entities*periods*subPeriods*vocab.Len()),
	}
	for entity := range entities {
		for period := range periods {
			for sub := range subPeriods {
				for state, s := range vocab.States() {
					name := fmt.Sprintf("block_e%v_p%v_b%v_%v", entity, period, sub, s.Name)
					g.vars[g.indexer.Index(entity, period, sub, state)] = m.NewBoolVar(name)
				}
			}
		}
	}
	return g, nil
}

func (g *Grid) Entities() int {
	return g.entities
}

func (g *Grid) Periods() int {
	return g.periods
}

func (g *Grid) SubPeriods() int {
	return g.subPeriods
}

func (g *Grid) Vocabulary() *Vocabulary {
	return g.vocab
}

// Var returns the decision variable for the given attributes, which must be in
// range. Lookup is the checked variant.
func (g *Grid) Var(entity, period, subPeriod, state int) sat.Lit {
	return g.vars[g.indexer.Index(entity, period, subPeriod, state)]
}

// Lookup returns the decision variable for the given attributes, or
// sat.ErrInvalidReference when any attribute is out of range.
func (g *Grid) Lookup(entity, period, subPeriod, state int) (sat.Lit, error) {
	if entity < 0 || entity >= g.entities ||
		period < 0 || period >= g.periods ||
		subPeriod < 0 || subPeriod >= g.subPeriods ||
		state < 0 || state >= g.vocab.Len() {
		return sat.Lit{}, fmt.Errorf("%w: entity=%v period=%v subPeriod=%v state=%v", sat.ErrInvalidReference, entity, period, subPeriod, state)
	}
	return g.Var(entity, period, subPeriod, state), nil
}
