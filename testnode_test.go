package efg

import (
	"fmt"
)

// testNode is a small explicit game tree used to exercise the evaluator.
type testNode struct {
	typ      NodeType
	players  []int
	legal    [][]Action
	keys     []string
	outcomes []ChanceOutcome
	// Children are indexed by outcome, by action for Sequential nodes,
	// and by joint action (last player fastest) for Simultaneous nodes.
	children []*testNode
	payoffs  []float64
}

func leaf(payoffs ...float64) *testNode {
	return &testNode{typ: TerminalNode, payoffs: payoffs}
}

func chance(outcomes []ChanceOutcome, children ...*testNode) *testNode {
	return &testNode{typ: ChanceNode, outcomes: outcomes, children: children}
}

func decision(player int, key string, actions []Action, children ...*testNode) *testNode {
	return &testNode{
		typ:      SequentialNode,
		players:  []int{player},
		legal:    [][]Action{actions},
		keys:     []string{key},
		children: children,
	}
}

func simultaneous(keys []string, legal [][]Action, children ...*testNode) *testNode {
	players := make([]int, len(keys))
	for i := range keys {
		players[i] = i
	}

	return &testNode{
		typ:      SimultaneousNode,
		players:  players,
		legal:    legal,
		keys:     keys,
		children: children,
	}
}

func (n *testNode) Type() NodeType  { return n.typ }
func (n *testNode) NumPlayers() int { return 2 }

func (n *testNode) ActivePlayers() []int { return n.players }

func (n *testNode) LegalActions(player int) ([]Action, error) {
	for i, p := range n.players {
		if p == player {
			return n.legal[i], nil
		}
	}

	return nil, &UnsupportedNodeTypeError{Type: n.typ, Op: fmt.Sprintf("LegalActions(%d)", player)}
}

func (n *testNode) ChanceOutcomes() ([]ChanceOutcome, error) {
	if n.typ != ChanceNode {
		return nil, &UnsupportedNodeTypeError{Type: n.typ, Op: "ChanceOutcomes"}
	}

	return n.outcomes, nil
}

func (n *testNode) InfoSetKey(player int) string {
	for i, p := range n.players {
		if p == player {
			return n.keys[i]
		}
	}

	return ""
}

func (n *testNode) Child(actions ...Action) (GameNode, error) {
	switch n.typ {
	case ChanceNode:
		for i, o := range n.outcomes {
			if o.Action == actions[0] {
				return n.children[i], nil
			}
		}
		return nil, &InvalidActionError{Player: ChancePlayer, Action: actions[0]}
	case SequentialNode, SimultaneousNode:
		if len(actions) != len(n.players) {
			return nil, fmt.Errorf("expected %d actions, got %d", len(n.players), len(actions))
		}

		idx := 0
		for i, a := range actions {
			j := indexOf(n.legal[i], a)
			if j < 0 {
				return nil, &InvalidActionError{Player: n.players[i], Action: a, Legal: n.legal[i]}
			}
			idx = idx*len(n.legal[i]) + j
		}
		return n.children[idx], nil
	}

	return nil, &UnsupportedNodeTypeError{Type: n.typ, Op: "Child"}
}

func (n *testNode) Payoffs() ([]float64, error) {
	if n.typ != TerminalNode {
		return nil, &UnsupportedNodeTypeError{Type: n.typ, Op: "Payoffs"}
	}

	return n.payoffs, nil
}

func indexOf(actions []Action, a Action) int {
	for i, x := range actions {
		if x == a {
			return i
		}
	}

	return -1
}

const (
	left  Action = 0
	right Action = 1
)

var leftRight = []Action{left, right}

// coinFlipGame is a fair chance node followed by a decision of player 0
// under each outcome, with the given infoset keys.
func coinFlipGame(keyA, keyB string) *testNode {
	fair := []ChanceOutcome{{Action: 0, Probability: 0.5}, {Action: 1, Probability: 0.5}}
	return chance(fair,
		decision(0, keyA, leftRight, leaf(1, -1), leaf(-1, 1)),
		decision(0, keyB, leftRight, leaf(1, -1), leaf(-1, 1)),
	)
}

// tablePolicy maps infoset keys to fixed distributions, for both players.
func tablePolicy(strategies map[string]ActionProbs) *PolicyTable {
	pt := NewPolicyTable()
	for key, probs := range strategies {
		pt.Set(0, key, probs)
		pt.Set(1, key, probs)
	}

	return pt
}

// bruteForce computes expected utilities by expanding every legal
// transition, including those with zero probability.
func bruteForce(node GameNode, policy Policy) []float64 {
	result := make([]float64, node.NumPlayers())
	if node.Type() == TerminalNode {
		payoffs, _ := node.Payoffs()
		copy(result, payoffs)
		return result
	}

	transitions, err := Transitions(node)
	if err != nil {
		panic(err)
	}

	for _, t := range transitions {
		p := t.Probability
		if node.Type() != ChanceNode {
			p = 1.0
			for i, player := range node.ActivePlayers() {
				probs, err := policy.ActionProbabilities(node, player)
				if err != nil {
					panic(err)
				}
				p *= probs[t.Actions[i]]
			}
		}

		child, err := node.Child(t.Actions...)
		if err != nil {
			panic(err)
		}

		for i, u := range bruteForce(child, policy) {
			result[i] += p * u
		}
	}

	return result
}
