// Package coingame implements Patrik's coin game: a three round,
// simultaneous-move guessing game between a coin player and an estimator.
//
// Each round the coin player (player 0) picks a coin value 0-5 and the
// estimator (player 1) simultaneously guesses it. The coin player may pick 0
// at most once, and every non-zero pick must exceed the previous non-zero
// pick, except that 5 may be repeated. The estimator wins (+1) as soon as a
// guess is correct; the coin player wins (+1) by surviving all three rounds.
package coingame

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-efg"
)

const (
	CoinPlayer = 0
	Estimator  = 1

	// NumRounds is the number of rounds the coin player must survive.
	NumRounds = 3
	// MaxCoin is the largest coin value.
	MaxCoin = 5
)

// estimatorActions are the guesses available to the estimator in every round.
var estimatorActions = []efg.Action{0, 1, 2, 3, 4, 5}

// GameNode implements efg.GameNode for the coin game.
// Nodes are values; Child never modifies its receiver.
type GameNode struct {
	coinChoices  []efg.Action
	guesses      []efg.Action
	estimatorWon bool
	usedZero     bool
	lastNonZero  efg.Action
}

// NewGame returns the root of the game, before the first round.
func NewGame() *GameNode {
	return &GameNode{}
}

// Round returns the number of rounds played so far.
func (g *GameNode) Round() int {
	return len(g.coinChoices)
}

// Type implements efg.GameNode.
func (g *GameNode) Type() efg.NodeType {
	if g.IsTerminal() {
		return efg.TerminalNode
	}

	return efg.SimultaneousNode
}

func (g *GameNode) IsTerminal() bool {
	return g.estimatorWon || g.Round() >= NumRounds
}

// NumPlayers implements efg.GameNode.
func (g *GameNode) NumPlayers() int {
	return 2
}

// ActivePlayers implements efg.GameNode.
func (g *GameNode) ActivePlayers() []int {
	if g.IsTerminal() {
		return nil
	}

	return []int{CoinPlayer, Estimator}
}

// LegalActions implements efg.GameNode.
func (g *GameNode) LegalActions(player int) ([]efg.Action, error) {
	if g.IsTerminal() {
		return nil, &efg.UnsupportedNodeTypeError{
			Type: efg.TerminalNode,
			Op:   fmt.Sprintf("LegalActions(%d)", player),
		}
	}

	switch player {
	case CoinPlayer:
		return g.coinActions(), nil
	case Estimator:
		return estimatorActions, nil
	}

	return nil, &efg.UnsupportedNodeTypeError{
		Type: efg.SimultaneousNode,
		Op:   fmt.Sprintf("LegalActions(%d)", player),
	}
}

func (g *GameNode) coinActions() []efg.Action {
	start := efg.Action(1)
	if g.lastNonZero == MaxCoin {
		start = MaxCoin
	} else if g.Round() > 0 {
		start = g.lastNonZero + 1
	}

	var result []efg.Action
	if !g.usedZero {
		result = append(result, 0)
	}

	for a := start; a <= MaxCoin; a++ {
		result = append(result, a)
	}

	return result
}

// ChanceOutcomes implements efg.GameNode. The coin game has no chance nodes.
func (g *GameNode) ChanceOutcomes() ([]efg.ChanceOutcome, error) {
	return nil, &efg.UnsupportedNodeTypeError{Type: g.Type(), Op: "ChanceOutcomes"}
}

// Child implements efg.GameNode. It takes the joint action
// (coin choice, estimator guess).
func (g *GameNode) Child(actions ...efg.Action) (efg.GameNode, error) {
	if g.IsTerminal() {
		return nil, &efg.UnsupportedNodeTypeError{Type: efg.TerminalNode, Op: "Child"}
	} else if len(actions) != 2 {
		return nil, errors.Errorf("expected joint action for 2 players, got %d actions", len(actions))
	}

	coin, guess := actions[CoinPlayer], actions[Estimator]
	if legal := g.coinActions(); !contains(legal, coin) {
		return nil, &efg.InvalidActionError{Player: CoinPlayer, Action: coin, Legal: legal}
	}

	if !contains(estimatorActions, guess) {
		return nil, &efg.InvalidActionError{Player: Estimator, Action: guess, Legal: estimatorActions}
	}

	child := *g
	child.coinChoices = appendCopy(g.coinChoices, coin)
	child.guesses = appendCopy(g.guesses, guess)
	if coin == guess {
		child.estimatorWon = true
	}

	if coin != 0 {
		child.lastNonZero = coin
	} else {
		child.usedZero = true
	}

	return &child, nil
}

// Payoffs implements efg.GameNode.
func (g *GameNode) Payoffs() ([]float64, error) {
	if !g.IsTerminal() {
		return nil, &efg.UnsupportedNodeTypeError{Type: g.Type(), Op: "Payoffs"}
	}

	if g.estimatorWon {
		return []float64{-1, 1}, nil
	}

	return []float64{1, -1}, nil
}

// InfoSetKey implements efg.GameNode. Both players observe the full history
// of previous rounds; the key lists the player's own choices first.
func (g *GameNode) InfoSetKey(player int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round: %d\n", g.Round()+1)
	if player == CoinPlayer {
		writeHistory(&sb, coinChoicesLabel, g.coinChoices)
		sb.WriteString("\n")
		writeHistory(&sb, estimatorGuessesLabel, g.guesses)
	} else {
		writeHistory(&sb, estimatorGuessesLabel, g.guesses)
		sb.WriteString("\n")
		writeHistory(&sb, coinChoicesLabel, g.coinChoices)
	}

	return sb.String()
}

// ActionString implements efg.ActionStringer.
func (g *GameNode) ActionString(player int, action efg.Action) string {
	return fmt.Sprintf("Player %d chose: %d", player, action)
}

// String implements fmt.Stringer.
func (g *GameNode) String() string {
	return fmt.Sprintf("Round %d. Coin player choices: %v, estimator guesses: %v",
		g.Round()+1, g.coinChoices, g.guesses)
}

const (
	coinChoicesLabel      = "Coin Player Choices"
	estimatorGuessesLabel = "Estimator Guesses"
)

func writeHistory(sb *strings.Builder, label string, history []efg.Action) {
	sb.WriteString(label)
	sb.WriteString(": ")
	for _, a := range history {
		fmt.Fprintf(sb, "%d ", a)
	}
}

func appendCopy(history []efg.Action, a efg.Action) []efg.Action {
	result := make([]efg.Action, len(history)+1)
	copy(result, history)
	result[len(history)] = a
	return result
}

func contains(actions []efg.Action, a efg.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}

	return false
}
