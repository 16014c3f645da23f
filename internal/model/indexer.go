package model

// Indexer gives a unique position to a combination of grid attributes and vice versa
type Indexer interface {
	// Returns a unique position for a combination of grid attributes
	Index(entity, period, subPeriod, state int) int
	// Returns the combination of grid attributes stored at a position
	Attributes(index int) (entity int, period int, subPeriod int, state int)
}

func NewIndexer(entities, periods, subPeriods, states int) Indexer {
	return &sortedIndexer{
		entities:   entities,
		periods:    periods,
		subPeriods: subPeriods,
		states:     states,
	}
}

type sortedIndexer struct {
	entities   int
	periods    int
	subPeriods int
	states     int
}

func (i *sortedIndexer) Index(entity, period, subPeriod, state int) int {
	return state + i.states*(subPeriod) + i.states*i.subPeriods*(period) + i.states*i.subPeriods*i.periods*(entity)
}

func (i *sortedIndexer) Attributes(index int) (entity int, period int, subPeriod int, state int) {
	state = index % i.states
	index = index / i.states

	subPeriod = index % i.subPeriods
	index = index / i.subPeriods

	period = index % i.periods
	index = index / i.periods

	entity = index % i.entities

	return entity, period, subPeriod, state
}
