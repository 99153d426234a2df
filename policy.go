package efg

import (
	"sort"

	"github.com/pkg/errors"
)

// UniformPolicy plays every legal action with equal probability.
var UniformPolicy Policy = PolicyFunc(uniformPolicy)

func uniformPolicy(node GameNode, player int) (ActionProbs, error) {
	legal, err := node.LegalActions(player)
	if err != nil {
		return nil, err
	}

	if len(legal) == 0 {
		return nil, errors.Errorf("player %d has no legal actions", player)
	}

	return UniformProbs(legal), nil
}

// InfoSetID identifies the information state of one player.
type InfoSetID struct {
	Player int
	Key    string
}

// PolicyTable is a tabular Policy that stores an action distribution for
// each InfoSet, which is looked up by its key and the acting player.
//
// A PolicyTable is safe for concurrent reads, but not for concurrent
// reads and writes.
type PolicyTable struct {
	// Map of InfoSet -> action distribution at that infoset.
	strategies map[InfoSetID]ActionProbs
	// Used for infosets that are not in the table, if non-nil.
	fallback Policy
}

// NewPolicyTable creates a new, empty PolicyTable.
func NewPolicyTable() *PolicyTable {
	return &PolicyTable{
		strategies: make(map[InfoSetID]ActionProbs),
	}
}

// PolicyTableFromCatalogue creates a PolicyTable containing the distribution
// of every record in the catalogue. If a player's InfoSet appears at several
// depths, the first record wins.
func PolicyTableFromCatalogue(c *Catalogue) *PolicyTable {
	pt := NewPolicyTable()
	for _, r := range c.records {
		id := InfoSetID{Player: r.Player, Key: r.InfoSet}
		if _, ok := pt.strategies[id]; ok {
			continue
		}

		probs := make(ActionProbs, len(r.Actions))
		for _, ap := range r.Actions {
			probs[ap.Action] = ap.Probability
		}
		pt.strategies[id] = probs
	}

	return pt
}

// SetFallback sets the Policy used for infosets missing from the table.
func (pt *PolicyTable) SetFallback(p Policy) {
	pt.fallback = p
}

// Set stores the action distribution of player at the InfoSet with the given key.
func (pt *PolicyTable) Set(player int, key string, probs ActionProbs) {
	pt.strategies[InfoSetID{player, key}] = probs
}

// Get returns the action distribution of player stored for the given key.
func (pt *PolicyTable) Get(player int, key string) (ActionProbs, bool) {
	probs, ok := pt.strategies[InfoSetID{player, key}]
	return probs, ok
}

// Keys returns the InfoSets in the table, ordered by player and then key.
func (pt *PolicyTable) Keys() []InfoSetID {
	keys := make([]InfoSetID, 0, len(pt.strategies))
	for id := range pt.strategies {
		keys = append(keys, id)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Player != keys[j].Player {
			return keys[i].Player < keys[j].Player
		}
		return keys[i].Key < keys[j].Key
	})
	return keys
}

// Len returns the number of infosets in the table.
func (pt *PolicyTable) Len() int {
	return len(pt.strategies)
}

// ActionProbabilities implements Policy.
func (pt *PolicyTable) ActionProbabilities(node GameNode, player int) (ActionProbs, error) {
	key := node.InfoSetKey(player)
	if probs, ok := pt.strategies[InfoSetID{player, key}]; ok {
		return probs, nil
	}

	if pt.fallback != nil {
		return pt.fallback.ActionProbabilities(node, player)
	}

	return nil, errors.Errorf("no policy for player %d infoset %q", player, key)
}
