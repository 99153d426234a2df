// Package kuhn implements an extensive-form game tree for Kuhn Poker,
// adapted from: https://justinsermeno.com/posts/cfr/.
package kuhn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-efg"
)

const (
	chance  = -1
	player0 = 0
	player1 = 1
)

const (
	Random = 'r'
	Check  = efg.Action('c')
	Bet    = efg.Action('b')
)

type Card int

const (
	Jack Card = iota
	Queen
	King
)

var cardStr = [...]string{
	"J",
	"Q",
	"K",
}

func (c Card) String() string {
	return cardStr[c]
}

var deck = []Card{Jack, Queen, King}

// PokerNode implements efg.GameNode for Kuhn Poker.
// Nodes are values; Child never modifies its receiver.
type PokerNode struct {
	player  int
	history string

	// Private card held by either player.
	p0Card, p1Card Card
}

// NewGame returns the root of the game, before either card is dealt.
func NewGame() *PokerNode {
	return &PokerNode{player: chance}
}

// String implements fmt.Stringer.
func (k PokerNode) String() string {
	return fmt.Sprintf("Player %v's turn. History: %5s [Cards: P0 - %s, P1 - %s]",
		k.player, k.history, k.p0Card, k.p1Card)
}

// Type implements efg.GameNode.
func (k *PokerNode) Type() efg.NodeType {
	if k.IsTerminal() {
		return efg.TerminalNode
	} else if k.player == chance {
		return efg.ChanceNode
	}

	return efg.SequentialNode
}

func (k *PokerNode) IsTerminal() bool {
	return (k.history == "rrcc" || k.history == "rrcbc" ||
		k.history == "rrcbb" || k.history == "rrbc" || k.history == "rrbb")
}

// NumPlayers implements efg.GameNode.
func (k *PokerNode) NumPlayers() int {
	return 2
}

// ActivePlayers implements efg.GameNode.
func (k *PokerNode) ActivePlayers() []int {
	if k.Type() != efg.SequentialNode {
		return nil
	}

	return []int{k.player}
}

// LegalActions implements efg.GameNode.
func (k *PokerNode) LegalActions(player int) ([]efg.Action, error) {
	if k.Type() != efg.SequentialNode || player != k.player {
		return nil, &efg.UnsupportedNodeTypeError{
			Type: k.Type(),
			Op:   fmt.Sprintf("LegalActions(%d)", player),
		}
	}

	return []efg.Action{Check, Bet}, nil
}

// ChanceOutcomes implements efg.GameNode.
func (k *PokerNode) ChanceOutcomes() ([]efg.ChanceOutcome, error) {
	if k.Type() != efg.ChanceNode {
		return nil, &efg.UnsupportedNodeTypeError{Type: k.Type(), Op: "ChanceOutcomes"}
	}

	var result []efg.ChanceOutcome
	for _, card := range k.undealt() {
		result = append(result, efg.ChanceOutcome{Action: efg.Action(card)})
	}

	for i := range result {
		result[i].Probability = 1.0 / float64(len(result))
	}

	return result, nil
}

func (k *PokerNode) undealt() []Card {
	if len(k.history) == 0 {
		return deck
	}

	var result []Card
	for _, card := range deck {
		if card != k.p0Card { // Both players can't be dealt the same card.
			result = append(result, card)
		}
	}
	return result
}

// Child implements efg.GameNode.
func (k *PokerNode) Child(actions ...efg.Action) (efg.GameNode, error) {
	t := k.Type()
	if t == efg.TerminalNode {
		return nil, &efg.UnsupportedNodeTypeError{Type: t, Op: "Child"}
	} else if len(actions) != 1 {
		return nil, errors.Errorf("expected 1 action, got %d", len(actions))
	}

	action := actions[0]
	child := *k
	if t == efg.ChanceNode {
		if !isDealable(k.undealt(), action) {
			return nil, &efg.InvalidActionError{Player: chance, Action: action}
		}

		if len(k.history) == 0 {
			child.p0Card = Card(action)
		} else {
			child.p1Card = Card(action)
			child.player = player0
		}

		child.history += string([]byte{Random})
		return &child, nil
	}

	if action != Check && action != Bet {
		return nil, &efg.InvalidActionError{
			Player: k.player,
			Action: action,
			Legal:  []efg.Action{Check, Bet},
		}
	}

	child.player = 1 - k.player
	child.history += string([]byte{byte(action)})
	return &child, nil
}

func isDealable(cards []Card, action efg.Action) bool {
	for _, card := range cards {
		if efg.Action(card) == action {
			return true
		}
	}

	return false
}

// Payoffs implements efg.GameNode.
func (k *PokerNode) Payoffs() ([]float64, error) {
	if !k.IsTerminal() {
		return nil, &efg.UnsupportedNodeTypeError{Type: k.Type(), Op: "Payoffs"}
	}

	u := k.utility(player0)
	return []float64{u, -u}, nil
}

func (k *PokerNode) utility(player int) float64 {
	cardPlayer := k.playerCard(player)
	cardOpponent := k.playerCard(1 - player)

	// By convention, terminal nodes are labeled with the player whose
	// turn it would be (i.e. not the last acting player).

	if k.history == "rrcbc" || k.history == "rrbc" {
		// Last player folded. The current player wins.
		if k.player == player {
			return 1.0
		} else {
			return -1.0
		}
	} else if k.history == "rrcc" {
		// Showdown with no bets.
		if cardPlayer > cardOpponent {
			return 1.0
		} else {
			return -1.0
		}
	}

	// Showdown with 1 bet.
	if cardPlayer > cardOpponent {
		return 2.0
	}

	return -2.0
}

// InfoSetKey implements efg.GameNode.
func (k *PokerNode) InfoSetKey(player int) string {
	return k.playerCard(player).String() + "-" + k.history
}

// ActionString implements efg.ActionStringer.
func (k *PokerNode) ActionString(player int, action efg.Action) string {
	switch action {
	case Check:
		return "check"
	case Bet:
		return "bet"
	}

	return fmt.Sprintf("Action(%d)", action)
}

func (k *PokerNode) playerCard(player int) Card {
	if player == player0 {
		return k.p0Card
	}

	return k.p1Card
}
