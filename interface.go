// Package efg evaluates fixed policies over finite extensive-form game trees.
//
// A game is exposed through the GameNode interface and a policy through the
// Policy interface. Evaluate walks every positive-probability path from the
// root, returning the expected utility of each player along with a catalogue
// of every information state encountered and the policy's action
// distribution there.
package efg

import (
	"strconv"
)

// NodeType is the type of node in an extensive-form game tree.
type NodeType int

const (
	TerminalNode NodeType = iota
	ChanceNode
	SimultaneousNode
	SequentialNode
)

var nodeTypeStr = [...]string{
	"Terminal",
	"Chance",
	"Simultaneous",
	"Sequential",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeStr) {
		return "NodeType(" + strconv.Itoa(int(t)) + ")"
	}

	return nodeTypeStr[t]
}

// ChancePlayer is the pseudo-player id reported for chance nodes.
const ChancePlayer = -1

// Action identifies a move available to a player (or a chance outcome).
type Action int

// ChanceOutcome is one possible outcome of a chance node.
type ChanceOutcome struct {
	Action      Action
	Probability float64
}

// GameNode is the interface for a node in an extensive-form game tree.
//
// Implementations must be immutable: Child returns a new node and never
// modifies the receiver, so that subtrees may be evaluated independently.
type GameNode interface {
	// Type returns the type of game node.
	Type() NodeType
	// NumPlayers returns the number of players in the game (the length of
	// the payoff vector).
	NumPlayers() int

	// ActivePlayers returns the players with a pending decision at this node,
	// in canonical order. It is a single player for Sequential nodes, every
	// deciding player for Simultaneous nodes, and empty otherwise.
	ActivePlayers() []int
	// LegalActions returns the ordered legal actions of an active player.
	LegalActions(player int) ([]Action, error)
	// ChanceOutcomes returns the outcome distribution of a Chance node.
	ChanceOutcomes() ([]ChanceOutcome, error)

	// InfoSetKey returns an identifier for everything the given player can
	// observe at this node. Distinct nodes may share a key.
	InfoSetKey(player int) string

	// Child returns the node reached by applying the given actions:
	// one action for Sequential and Chance nodes, and one action per
	// active player (ordered as ActivePlayers) for Simultaneous nodes.
	Child(actions ...Action) (GameNode, error)

	// Payoffs returns the utility of each player.
	// It must only be called for nodes with Type == TerminalNode.
	Payoffs() ([]float64, error)
}

// ActionStringer may optionally be implemented by a GameNode to provide
// human-readable action labels.
type ActionStringer interface {
	ActionString(player int, action Action) string
}

// ActionLabel returns the label for an action at the given node.
func ActionLabel(node GameNode, player int, action Action) string {
	if s, ok := node.(ActionStringer); ok {
		return s.ActionString(player, action)
	}

	return strconv.Itoa(int(action))
}

// ActionProbs is a probability distribution over actions.
type ActionProbs map[Action]float64

// Policy supplies the action distribution played by each player.
type Policy interface {
	// ActionProbabilities returns the distribution the given active player
	// plays over node.LegalActions(player).
	ActionProbabilities(node GameNode, player int) (ActionProbs, error)
}

// PolicyFunc adapts an ordinary function to the Policy interface.
type PolicyFunc func(node GameNode, player int) (ActionProbs, error)

// ActionProbabilities implements Policy.
func (f PolicyFunc) ActionProbabilities(node GameNode, player int) (ActionProbs, error) {
	return f(node, player)
}
