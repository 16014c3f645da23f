package model

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	// ErrInvalidDimension is returned for non-positive entity, period,
	// sub-period or bound counts at construction time.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrDuplicateState is returned when two states of a vocabulary share a name.
	ErrDuplicateState = errors.New("duplicate state name")
)

// State is one mutually exclusive per-block activity. IsWork marks whether the
// state counts towards workload bounds.
type State struct {
	Name   string
	IsWork bool
}

// Vocabulary is the closed, ordered set of states a grid is built over.
type Vocabulary struct {
	states []State
	byName map[string]int
}

func NewVocabulary(states ...State) (*Vocabulary, error) {
	v := &Vocabulary{
		states: states,
		byName: make(map[string]int, len(states)),
	}
	for i, s := range states {
		if _, ok := v.byName[s.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateState, s.Name)
		}
		v.byName[s.Name] = i
	}
	return v, nil
}

func (v *Vocabulary) Len() int {
	return len(v.states)
}

func (v *Vocabulary) States() []State {
	return v.states
}

// Index returns the position of the named state.
func (v *Vocabulary) Index(name string) (int, bool) {
	i, ok := v.byName[name]
	return i, ok
}

// WorkStates returns the positions of every state that counts as work. Every
// workload bound is computed over exactly this subset.
func (v *Vocabulary) WorkStates() []int {
	return lo.FilterMap(v.states, func(s State, i int) (int, bool) { return i, s.IsWork })
}
