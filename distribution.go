package efg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the allowed deviation of a distribution's total mass from 1.
const DefaultTolerance = 1e-6

// AlignProbs returns the probability of each legal action under probs,
// in legal-action order. Legal actions absent from probs have probability 0.
//
// An error is returned if probs assigns positive probability to an action
// that is not legal, contains a negative entry, or does not sum to 1 within tol.
func AlignProbs(player int, legal []Action, probs ActionProbs, tol float64) ([]float64, error) {
	idx := make(map[Action]int, len(legal))
	for i, a := range legal {
		idx[a] = i
	}

	result := make([]float64, len(legal))
	for a, p := range probs {
		if math.IsNaN(p) {
			return nil, &PolicyNormalizationError{Player: player, Total: p}
		} else if p < 0 {
			return nil, &PolicyNormalizationError{Player: player, Negative: true}
		}

		i, ok := idx[a]
		if !ok {
			if p > 0 {
				return nil, &InvalidActionError{Player: player, Action: a, Legal: legal}
			}
			continue
		}

		result[i] = p
	}

	// Summed in legal order so that the check is independent of map iteration.
	if total := floats.Sum(result); math.Abs(total-1.0) > tol {
		return nil, &PolicyNormalizationError{Player: player, Total: total}
	}

	return result, nil
}

// ValidateChanceOutcomes checks that a chance distribution is non-negative
// and sums to 1 within tol.
func ValidateChanceOutcomes(outcomes []ChanceOutcome, tol float64) error {
	var total float64
	for _, o := range outcomes {
		if math.IsNaN(o.Probability) {
			return &PolicyNormalizationError{Player: ChancePlayer, Total: o.Probability}
		} else if o.Probability < 0 {
			return &PolicyNormalizationError{Player: ChancePlayer, Negative: true}
		}

		total += o.Probability
	}

	if math.Abs(total-1.0) > tol {
		return &PolicyNormalizationError{Player: ChancePlayer, Total: total}
	}

	return nil
}

// UniformProbs returns the uniform distribution over the given actions.
func UniformProbs(actions []Action) ActionProbs {
	result := make(ActionProbs, len(actions))
	p := 1.0 / float64(len(actions))
	for _, a := range actions {
		result[a] = p
	}

	return result
}
