package sat

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/samber/lo"
)

// ErrInvalidReference is returned when a constraint mentions a variable that
// does not belong to the model.
var ErrInvalidReference = errors.New("invalid variable reference")

// Lit is a handle to a boolean variable of a Model, possibly negated.
type Lit struct {
	id  int32
	neg bool
}

// Not returns the negation of the literal.
func (l Lit) Not() Lit {
	l.neg = !l.neg
	return l
}

type constraintKind int

const (
	sumEquals constraintKind = iota
	sumAtMost
	sumAtLeast
	sumAtLeastWhen
	implication
	iffAll
)

type constraint struct {
	kind  constraintKind
	terms []Lit
	bound int
	a, b  Lit
	cond  Lit
}

// Model is a write-once boolean constraint system: variables and constraints
// are registered during construction, then the model is handed to a Solver.
// Construction must fully complete before the first solve; the Model is
// read-only afterwards.
type Model struct {
	c           *logic.C
	lits        []z.Lit
	names       []string
	roots       []z.Lit
	constraints []constraint
	infeasible  bool // set when a registered constraint can never hold
}

func NewModel() *Model {
	return &Model{c: logic.NewC()}
}

// NewBoolVar creates a fresh boolean variable. Variables created by different
// calls never alias, regardless of name.
func (m *Model) NewBoolVar(name string) Lit {
	m.lits = append(m.lits, m.c.Lit())
	m.names = append(m.names, name)
	return Lit{id: int32(len(m.lits) - 1)}
}

// NameOf returns the name the variable of l was created with.
func (m *Model) NameOf(l Lit) string {
	return m.names[l.id]
}

// Len returns the number of variables in the model.
func (m *Model) Len() int {
	return len(m.lits)
}

func (m *Model) lit(l Lit) z.Lit {
	g := m.lits[l.id]
	if l.neg {
		return g.Not()
	}
	return g
}

func (m *Model) zs(terms []Lit) []z.Lit {
	return lo.Map(terms, func(l Lit, _ int) z.Lit { return m.lit(l) })
}

func (m *Model) validate(terms ...Lit) error {
	for _, l := range terms {
		if l.id < 0 || int(l.id) >= len(m.lits) {
			return fmt.Errorf("%w: variable %v out of %v", ErrInvalidReference, l.id, len(m.lits))
		}
	}
	return nil
}

func (m *Model) assert(root z.Lit) {
	if root == m.c.T {
		return
	}
	if root == m.c.F {
		m.infeasible = true
		return
	}
	m.roots = append(m.roots, root)
}

// atMostRoot builds a literal that holds iff at most n of ms are true, using a
// CardSort sorting network for the non-trivial bounds.
func (m *Model) atMostRoot(ms []z.Lit, n int) z.Lit {
	switch {
	case n < 0:
		return m.c.F
	case n >= len(ms):
		return m.c.T
	default:
		return m.c.CardSort(ms).Leq(n)
	}
}

// atLeastRoot expresses "at least n of ms" as "at most len(ms)-n of the
// negations", so only the Leq side of the sorting network is needed.
func (m *Model) atLeastRoot(ms []z.Lit, n int) z.Lit {
	negated := lo.Map(ms, func(l z.Lit, _ int) z.Lit { return l.Not() })
	return m.atMostRoot(negated, len(ms)-n)
}

// AddSumEquals registers that exactly n of terms are true.
func (m *Model) AddSumEquals(terms []Lit, n int) error {
	if err := m.validate(terms...); err != nil {
		return err
	}
	ms := m.zs(terms)
	m.assert(m.atMostRoot(ms, n))
	m.assert(m.atLeastRoot(ms, n))
	m.constraints = append(m.constraints, constraint{kind: sumEquals, terms: slices.Clone(terms), bound: n})
	return nil
}

// AddSumAtMost registers that at most n of terms are true.
func (m *Model) AddSumAtMost(terms []Lit, n int) error {
	if err := m.validate(terms...); err != nil {
		return err
	}
	m.assert(m.atMostRoot(m.zs(terms), n))
	m.constraints = append(m.constraints, constraint{kind: sumAtMost, terms: slices.Clone(terms), bound: n})
	return nil
}

// AddSumAtLeast registers that at least n of terms are true.
func (m *Model) AddSumAtLeast(terms []Lit, n int) error {
	if err := m.validate(terms...); err != nil {
		return err
	}
	m.assert(m.atLeastRoot(m.zs(terms), n))
	m.constraints = append(m.constraints, constraint{kind: sumAtLeast, terms: slices.Clone(terms), bound: n})
	return nil
}

// AddSumAtLeastWhen registers the reified bound cond => (at least n of terms
// are true). With cond false the sum is unconstrained, which encodes the
// "count >= n x flag" form of a conditional lower bound.
func (m *Model) AddSumAtLeastWhen(terms []Lit, n int, cond Lit) error {
	if err := m.validate(append(slices.Clone(terms), cond)...); err != nil {
		return err
	}
	m.assert(m.c.Or(m.lit(cond).Not(), m.atLeastRoot(m.zs(terms), n)))
	m.constraints = append(m.constraints, constraint{kind: sumAtLeastWhen, terms: slices.Clone(terms), bound: n, cond: cond})
	return nil
}

// AddImplication registers a => b.
func (m *Model) AddImplication(a, b Lit) error {
	if err := m.validate(a, b); err != nil {
		return err
	}
	m.assert(m.c.Or(m.lit(a).Not(), m.lit(b)))
	m.constraints = append(m.constraints, constraint{kind: implication, a: a, b: b})
	return nil
}

// AddIffAll registers the equivalence a <=> (every term is true). Both
// directions are enforced: any false term forces a false, and all terms true
// force a true.
func (m *Model) AddIffAll(a Lit, terms []Lit) error {
	if len(terms) == 0 {
		return fmt.Errorf("%w: equivalence over no terms", ErrInvalidReference)
	}
	if err := m.validate(append(slices.Clone(terms), a)...); err != nil {
		return err
	}
	ms := m.zs(terms)
	and := ms[0]
	for _, l := range ms[1:] {
		and = m.c.And(and, l)
	}
	m.assert(m.c.Or(m.lit(a).Not(), and))
	m.assert(m.c.Or(and.Not(), m.lit(a)))
	m.constraints = append(m.constraints, constraint{kind: iffAll, a: a, terms: slices.Clone(terms)})
	return nil
}

// Check replays every registered constraint against a solution. Solvers are
// expected to produce only solutions for which Check holds; callers use it as
// an independent verification pass.
func (m *Model) Check(sol *Solution) bool {
	count := func(terms []Lit) int {
		return lo.CountBy(terms, sol.Value)
	}
	for _, ct := range m.constraints {
		switch ct.kind {
		case sumEquals:
			if count(ct.terms) != ct.bound {
				return false
			}
		case sumAtMost:
			if count(ct.terms) > ct.bound {
				return false
			}
		case sumAtLeast:
			if count(ct.terms) < ct.bound {
				return false
			}
		case sumAtLeastWhen:
			if sol.Value(ct.cond) && count(ct.terms) < ct.bound {
				return false
			}
		case implication:
			if sol.Value(ct.a) && !sol.Value(ct.b) {
				return false
			}
		case iffAll:
			if sol.Value(ct.a) != lo.EveryBy(ct.terms, sol.Value) {
				return false
			}
		}
	}
	return true
}

// Solution is an immutable snapshot of one satisfying assignment.
type Solution struct {
	values []bool
}

// Value reports the boolean the solution assigns to l.
func (s *Solution) Value(l Lit) bool {
	v := s.values[l.id]
	if l.neg {
		return !v
	}
	return v
}
