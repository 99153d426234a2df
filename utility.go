package efg

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// UtilityVector holds one expected utility per player, indexed by player id.
type UtilityVector []float64

// NewUtilityVector returns a zero vector for n players.
func NewUtilityVector(n int) UtilityVector {
	return make(UtilityVector, n)
}

// Accumulate adds weight * payoffs to u, elementwise.
func (u UtilityVector) Accumulate(weight float64, payoffs []float64) error {
	if len(payoffs) != len(u) {
		return errors.Errorf("payoff vector has %d entries, expected %d", len(payoffs), len(u))
	}

	floats.AddScaled(u, weight, payoffs)
	return nil
}

// Add adds other to u, elementwise.
func (u UtilityVector) Add(other UtilityVector) error {
	if len(other) != len(u) {
		return errors.Errorf("utility vector has %d entries, expected %d", len(other), len(u))
	}

	floats.Add(u, other)
	return nil
}

// Sum returns the total utility over all players.
func (u UtilityVector) Sum() float64 {
	return floats.Sum(u)
}
