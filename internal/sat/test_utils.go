package sat

import (
	"fmt"
	"math/rand/v2"
)

// GenerateModel builds a model over the given number of variables with random
// cardinality and implication constraints. Used by randomized solver tests;
// the result may or may not be satisfiable.
func GenerateModel(variables, constraints int) *Model {
	m := NewModel()
	vars := make([]Lit, variables)
	for i := range vars {
		vars[i] = m.NewBoolVar(fmt.Sprintf("x%v", i))
	}

	for range constraints {
		terms := make([]Lit, 0, variables)
		for _, v := range vars {
			if rand.Float32() < 0.5 {
				continue
			}
			if rand.Float32() < 0.5 {
				v = v.Not()
			}
			terms = append(terms, v)
		}
		if len(terms) == 0 {
			terms = append(terms, vars[rand.IntN(variables)])
		}

		var err error
		switch rand.IntN(3) {
		case 0:
			err = m.AddSumAtMost(terms, rand.IntN(len(terms)+1))
		case 1:
			err = m.AddSumAtLeast(terms, rand.IntN(len(terms)+1))
		default:
			err = m.AddImplication(terms[0], terms[len(terms)-1])
		}
		if err != nil {
			panic(err)
		}
	}
	return m
}
