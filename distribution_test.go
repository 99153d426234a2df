package efg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignProbs(t *testing.T) {
	legal := []Action{3, 1, 2}

	got, err := AlignProbs(0, legal, ActionProbs{1: 0.5, 2: 0.25, 3: 0.25}, DefaultTolerance)
	require.NoError(t, err)
	require.Equal(t, []float64{0.25, 0.5, 0.25}, got)

	// Missing legal actions have probability 0.
	got, err = AlignProbs(0, legal, ActionProbs{2: 1}, DefaultTolerance)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 1}, got)

	testCases := []struct {
		name  string
		probs ActionProbs
	}{
		{"empty", ActionProbs{}},
		{"short", ActionProbs{1: 0.5, 2: 0.4}},
		{"long", ActionProbs{1: 0.5, 2: 0.6}},
		{"negative", ActionProbs{1: 1.5, 2: -0.5}},
		{"nan", ActionProbs{1: math.NaN(), 2: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AlignProbs(1, legal, tc.probs, DefaultTolerance)
			var pne *PolicyNormalizationError
			require.ErrorAs(t, err, &pne)
			require.Equal(t, 1, pne.Player)
		})
	}

	_, err = AlignProbs(0, legal, ActionProbs{1: math.NaN(), 2: 1}, DefaultTolerance)
	var pne *PolicyNormalizationError
	require.ErrorAs(t, err, &pne)
	require.False(t, pne.Negative)
	require.True(t, math.IsNaN(pne.Total))
	require.Contains(t, pne.Error(), "NaN")

	_, err = AlignProbs(0, legal, ActionProbs{1: 0.5, 4: 0.5}, DefaultTolerance)
	var invalid *InvalidActionError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, Action(4), invalid.Action)
}

func TestValidateChanceOutcomes(t *testing.T) {
	require.NoError(t, ValidateChanceOutcomes([]ChanceOutcome{{0, 0.5}, {1, 0.5}}, DefaultTolerance))
	require.NoError(t, ValidateChanceOutcomes([]ChanceOutcome{{0, 1.0 / 3}, {1, 1.0 / 3}, {2, 1.0 / 3}}, DefaultTolerance))

	err := ValidateChanceOutcomes(nil, DefaultTolerance)
	var pne *PolicyNormalizationError
	require.ErrorAs(t, err, &pne)
	require.Equal(t, ChancePlayer, pne.Player)
	require.Equal(t, 0.0, pne.Total)

	err = ValidateChanceOutcomes([]ChanceOutcome{{0, math.NaN()}, {1, 1}}, DefaultTolerance)
	require.ErrorAs(t, err, &pne)
	require.False(t, pne.Negative)
	require.True(t, math.IsNaN(pne.Total))
}

func TestUniformProbs(t *testing.T) {
	probs := UniformProbs([]Action{4, 5, 6, 7})
	require.Equal(t, ActionProbs{4: 0.25, 5: 0.25, 6: 0.25, 7: 0.25}, probs)
}
