// Package turnbased converts simultaneous-move games into sequential ones.
//
// Each Simultaneous node of the wrapped game becomes a chain of Sequential
// nodes, one per active player in canonical order. A player's information
// state does not reveal the choices of the players who acted before it in
// the same chain, so the converted game has the same expected values under
// any policy that depends only on the information state.
package turnbased

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-efg"
)

// Node implements efg.GameNode for the turn-based version of a game.
type Node struct {
	inner efg.GameNode
	// Active players of inner, if it is a Simultaneous node.
	players []int
	// Actions already chosen by players[:len(pending)].
	pending []efg.Action
}

// Wrap returns the turn-based view of node.
func Wrap(node efg.GameNode) *Node {
	n := &Node{inner: node}
	if node.Type() == efg.SimultaneousNode {
		if players := node.ActivePlayers(); len(players) > 0 {
			n.players = players
		}
	}

	return n
}

// Unwrap returns the underlying node of the original game. If some, but not
// all, players have already chosen their actions, it is the node before
// any of them were applied.
func (n *Node) Unwrap() efg.GameNode {
	return n.inner
}

func (n *Node) isSimultaneous() bool {
	return n.players != nil
}

func (n *Node) currentPlayer() int {
	return n.players[len(n.pending)]
}

// Type implements efg.GameNode.
func (n *Node) Type() efg.NodeType {
	if n.isSimultaneous() {
		return efg.SequentialNode
	}

	return n.inner.Type()
}

// NumPlayers implements efg.GameNode.
func (n *Node) NumPlayers() int {
	return n.inner.NumPlayers()
}

// ActivePlayers implements efg.GameNode.
func (n *Node) ActivePlayers() []int {
	if n.isSimultaneous() {
		return []int{n.currentPlayer()}
	}

	return n.inner.ActivePlayers()
}

// LegalActions implements efg.GameNode.
func (n *Node) LegalActions(player int) ([]efg.Action, error) {
	if n.isSimultaneous() && player != n.currentPlayer() {
		return nil, &efg.UnsupportedNodeTypeError{
			Type: efg.SequentialNode,
			Op:   fmt.Sprintf("LegalActions(%d)", player),
		}
	}

	return n.inner.LegalActions(player)
}

// ChanceOutcomes implements efg.GameNode.
func (n *Node) ChanceOutcomes() ([]efg.ChanceOutcome, error) {
	if n.isSimultaneous() {
		return nil, &efg.UnsupportedNodeTypeError{Type: efg.SequentialNode, Op: "ChanceOutcomes"}
	}

	return n.inner.ChanceOutcomes()
}

// InfoSetKey implements efg.GameNode. A player that has already chosen
// within the current chain also observes its own pending action.
func (n *Node) InfoSetKey(player int) string {
	key := n.inner.InfoSetKey(player)
	for i, a := range n.pending {
		if n.players[i] == player {
			key += fmt.Sprintf("\nPending: %d", a)
		}
	}

	return key
}

// Child implements efg.GameNode.
func (n *Node) Child(actions ...efg.Action) (efg.GameNode, error) {
	if !n.isSimultaneous() {
		child, err := n.inner.Child(actions...)
		if err != nil {
			return nil, err
		}

		return Wrap(child), nil
	}

	if len(actions) != 1 {
		return nil, errors.Errorf("expected 1 action, got %d", len(actions))
	}

	player := n.currentPlayer()
	legal, err := n.inner.LegalActions(player)
	if err != nil {
		return nil, err
	}

	if !contains(legal, actions[0]) {
		return nil, &efg.InvalidActionError{Player: player, Action: actions[0], Legal: legal}
	}

	pending := make([]efg.Action, len(n.pending)+1)
	copy(pending, n.pending)
	pending[len(n.pending)] = actions[0]
	if len(pending) < len(n.players) {
		return &Node{inner: n.inner, players: n.players, pending: pending}, nil
	}

	child, err := n.inner.Child(pending...)
	if err != nil {
		return nil, err
	}

	return Wrap(child), nil
}

// Payoffs implements efg.GameNode.
func (n *Node) Payoffs() ([]float64, error) {
	if n.isSimultaneous() {
		return nil, &efg.UnsupportedNodeTypeError{Type: efg.SequentialNode, Op: "Payoffs"}
	}

	return n.inner.Payoffs()
}

// ActionString implements efg.ActionStringer.
func (n *Node) ActionString(player int, action efg.Action) string {
	return efg.ActionLabel(n.inner, player, action)
}

func contains(actions []efg.Action, a efg.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}

	return false
}
