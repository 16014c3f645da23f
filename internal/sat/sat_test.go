package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsForeignLiterals(t *testing.T) {
	// Arrange
	m := NewModel()
	x := m.NewBoolVar("x")
	foreign := Lit{id: 99}

	// Act
	errSum := m.AddSumAtMost([]Lit{x, foreign}, 1)
	errImplication := m.AddImplication(x, foreign)
	errCond := m.AddSumAtLeastWhen([]Lit{x}, 1, foreign)

	// Assert
	assert.ErrorIs(t, errSum, ErrInvalidReference)
	assert.ErrorIs(t, errImplication, ErrInvalidReference)
	assert.ErrorIs(t, errCond, ErrInvalidReference)
}

func TestIffAllRequiresTerms(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x")

	assert.ErrorIs(t, m.AddIffAll(x, nil), ErrInvalidReference)
}

func TestNewBoolVarNeverAliases(t *testing.T) {
	m := NewModel()

	first := m.NewBoolVar("same")
	second := m.NewBoolVar("same")

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "same", m.NameOf(first))
}

func TestCheckReplaysConstraints(t *testing.T) {
	// Arrange
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	assert.Nil(t, m.AddSumEquals([]Lit{a, b}, 1))
	assert.Nil(t, m.AddImplication(a, c))
	assert.Nil(t, m.AddSumAtLeastWhen([]Lit{b, c}, 2, a))

	cases := []struct {
		name   string
		values []bool
		ok     bool
	}{
		{"satisfying with condition off", []bool{false, true, false}, true},
		{"satisfying with condition on", []bool{true, false, true}, false}, // b false breaks the conditional bound
		{"equality violated", []bool{true, true, true}, false},
		{"implication violated", []bool{true, false, false}, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, m.Check(&Solution{values: tt.values}))
		})
	}
}

func TestTrivialBoundsAreNoOps(t *testing.T) {
	// Bounds wider than the term list register nothing on the engine but still
	// participate in Check.
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	assert.Nil(t, m.AddSumAtMost([]Lit{a, b}, 5))
	assert.Nil(t, m.AddSumAtLeast([]Lit{a, b}, 0))

	assert.Empty(t, m.roots)
	assert.False(t, m.infeasible)
	assert.True(t, m.Check(&Solution{values: []bool{true, true}}))
}

func TestNegatedLiteralValue(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x")
	sol := &Solution{values: []bool{true}}

	assert.True(t, sol.Value(x))
	assert.False(t, sol.Value(x.Not()))
	assert.Equal(t, x, x.Not().Not())
}
