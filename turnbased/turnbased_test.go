package turnbased

import (
	"hash/fnv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timpalpant/go-efg"
	"github.com/timpalpant/go-efg/coingame"
	"github.com/timpalpant/go-efg/kuhn"
	"github.com/timpalpant/go-efg/tree"
)

// skewedPolicy is an arbitrary non-uniform policy that depends only on
// the information state.
var skewedPolicy = efg.PolicyFunc(func(node efg.GameNode, player int) (efg.ActionProbs, error) {
	legal, err := node.LegalActions(player)
	if err != nil {
		return nil, err
	}

	h := fnv.New32a()
	h.Write([]byte(node.InfoSetKey(player)))
	seed := int(h.Sum32() % 7)

	weights := make([]float64, len(legal))
	var total float64
	for i := range legal {
		weights[i] = float64((seed+3*i)%5 + 1)
		total += weights[i]
	}

	probs := make(efg.ActionProbs, len(legal))
	for i, a := range legal {
		probs[a] = weights[i] / total
	}
	return probs, nil
})

func TestCoinGameTree(t *testing.T) {
	root := Wrap(coingame.NewGame())
	require.Equal(t, efg.SequentialNode, root.Type())
	require.Equal(t, []int{coingame.CoinPlayer}, root.ActivePlayers())

	nNodes, err := tree.CountNodes(root)
	require.NoError(t, err)
	require.Equal(t, 9178, nNodes)

	nTerminal, err := tree.CountTerminalNodes(root)
	require.NoError(t, err)
	require.Equal(t, 7311, nTerminal)

	depth, err := tree.MaxDepth(root)
	require.NoError(t, err)
	require.Equal(t, 2*coingame.NumRounds, depth)
}

func TestPendingActionIsHidden(t *testing.T) {
	root := Wrap(coingame.NewGame())
	a, err := root.Child(2)
	require.NoError(t, err)
	b, err := root.Child(4)
	require.NoError(t, err)

	require.Equal(t, []int{coingame.Estimator}, a.ActivePlayers())
	require.Equal(t, a.InfoSetKey(coingame.Estimator), b.InfoSetKey(coingame.Estimator))
	require.Equal(t, root.InfoSetKey(coingame.Estimator), a.InfoSetKey(coingame.Estimator))
	require.True(t, strings.HasSuffix(a.InfoSetKey(coingame.CoinPlayer), "\nPending: 2"))

	_, err = a.LegalActions(coingame.CoinPlayer)
	var unsupported *efg.UnsupportedNodeTypeError
	require.ErrorAs(t, err, &unsupported)

	_, err = a.Child(6)
	var invalid *efg.InvalidActionError
	require.ErrorAs(t, err, &invalid)

	_, err = a.Child(2, 2)
	require.Error(t, err)

	child, err := a.Child(2)
	require.NoError(t, err)
	require.Equal(t, efg.TerminalNode, child.Type())
	payoffs, err := child.Payoffs()
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 1}, payoffs)
}

func TestExpectedValueInvariant(t *testing.T) {
	for _, policy := range []efg.Policy{efg.UniformPolicy, skewedPolicy} {
		simultaneous, err := efg.Evaluate(coingame.NewGame(), policy)
		require.NoError(t, err)

		sequential, err := efg.Evaluate(Wrap(coingame.NewGame()), policy)
		require.NoError(t, err)

		require.InDeltaSlice(t, simultaneous.Utilities, sequential.Utilities, 1e-12)
		require.InDelta(t, 1.0, sequential.TerminalMass, 1e-9)
		require.Equal(t, simultaneous.NumTerminals, sequential.NumTerminals)
		require.Equal(t, simultaneous.Catalogue.Len(), sequential.Catalogue.Len())
	}
}

func TestCataloguePolicyRoundTrip(t *testing.T) {
	simultaneous, err := efg.Evaluate(coingame.NewGame(), skewedPolicy)
	require.NoError(t, err)

	// The turn-based game asks for the same information states, so the
	// policy recovered from the catalogue covers all of them.
	table := efg.PolicyTableFromCatalogue(simultaneous.Catalogue)
	sequential, err := efg.Evaluate(Wrap(coingame.NewGame()), table)
	require.NoError(t, err)
	require.InDeltaSlice(t, simultaneous.Utilities, sequential.Utilities, 1e-12)
}

func TestSequentialGameIsUnchanged(t *testing.T) {
	direct, err := efg.Evaluate(kuhn.NewGame(), efg.UniformPolicy)
	require.NoError(t, err)

	wrapped, err := efg.Evaluate(Wrap(kuhn.NewGame()), efg.UniformPolicy)
	require.NoError(t, err)

	require.Equal(t, direct.Utilities, wrapped.Utilities)
	require.Equal(t, direct.Catalogue.Entries(), wrapped.Catalogue.Entries())
}
