package efg

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Params are the configuration options for an Evaluator.
// An empty Params struct is valid.
type Params struct {
	// Allowed deviation of a distribution's total mass from 1.
	// Defaults to DefaultTolerance.
	Tolerance float64
	// Maximum depth of a traversal; 0 for unlimited.
	MaxDepth int
	// If greater than 1, the subtrees below the root are evaluated
	// concurrently on up to this many goroutines. The Policy must then be
	// safe for concurrent use.
	Parallelism int
	// ParseInfoSet optionally extracts semantic fields from an InfoSet key,
	// to be stored with each catalogue Record.
	ParseInfoSet func(key string) map[string]interface{}
}

func (p Params) tolerance() float64 {
	if p.Tolerance > 0 {
		return p.Tolerance
	}

	return DefaultTolerance
}

// Result is the outcome of a successful evaluation.
type Result struct {
	// Expected utility of each player under the policy.
	Utilities UtilityVector
	// Every information state encountered, with the policy played there.
	Catalogue *Catalogue
	// Total path probability of all terminal nodes reached. Equal to 1
	// within tolerance for any valid policy.
	TerminalMass float64
	// Number of terminal nodes reached with positive probability.
	NumTerminals int
	// Number of nodes visited.
	NumNodes int
}

// Evaluator computes expected utilities of a fixed policy by exhaustive
// traversal of all positive-probability paths in a game tree.
type Evaluator struct {
	params Params
}

// New creates a new Evaluator with the given Params.
func New(params Params) *Evaluator {
	return &Evaluator{params: params}
}

// Evaluate is a convenience for New(Params{}).Evaluate(root, policy).
func Evaluate(root GameNode, policy Policy) (*Result, error) {
	return New(Params{}).Evaluate(root, policy)
}

// Evaluate traverses the game tree rooted at root, playing each player's
// actions with the probabilities given by policy.
//
// No partial result is returned if an error is encountered. Errors raised
// at a node are returned as a *TraversalError wrapping the cause.
func (e *Evaluator) Evaluate(root GameNode, policy Policy) (*Result, error) {
	if root == nil {
		return nil, errors.New("nil root node")
	}

	var t *traversal
	var err error
	if e.params.Parallelism > 1 {
		t, err = e.evaluateParallel(root, policy)
	} else {
		t = e.newTraversal(root, policy)
		err = t.visit(root, 1.0, 0)
	}

	if err != nil {
		return nil, err
	}

	glog.V(1).Infof("Evaluated %d nodes (%d terminal), %d infosets: utilities=%v",
		t.numNodes, t.numTerminals, t.catalogue.Len(), t.utilities)
	return &Result{
		Utilities:    t.utilities,
		Catalogue:    t.catalogue,
		TerminalMass: t.terminalMass,
		NumTerminals: t.numTerminals,
		NumNodes:     t.numNodes,
	}, nil
}

// traversal holds the mutable state of a single depth-first traversal.
// It must not be shared between goroutines.
type traversal struct {
	params *Params
	tol    float64
	policy Policy

	utilities    UtilityVector
	catalogue    *Catalogue
	terminalMass float64
	numTerminals int
	numNodes     int
}

func (e *Evaluator) newTraversal(root GameNode, policy Policy) *traversal {
	return &traversal{
		params:    &e.params,
		tol:       e.params.tolerance(),
		policy:    policy,
		utilities: NewUtilityVector(root.NumPlayers()),
		catalogue: NewCatalogue(),
	}
}

// branch is a positive-probability transition chosen by chance or the policy.
type branch struct {
	actions []Action
	p       float64
}

func (t *traversal) visit(node GameNode, pathP float64, depth int) error {
	if err := t.enter(node, depth); err != nil {
		return err
	}

	if node.Type() == TerminalNode {
		return t.accumulate(node, pathP, depth)
	}

	branches, err := t.expand(node, depth)
	if err != nil {
		return err
	}

	for _, b := range branches {
		child, err := node.Child(b.actions...)
		if err != nil {
			return t.wrap(node, depth, activePlayer(node), err)
		}

		if err := t.visit(child, pathP*b.p, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (t *traversal) enter(node GameNode, depth int) error {
	t.numNodes++
	if t.numNodes%100000 == 0 {
		glog.V(2).Infof("Visited %d nodes, %d infosets", t.numNodes, t.catalogue.Len())
	}

	if limit := t.params.MaxDepth; limit > 0 && depth > limit {
		return t.wrap(node, depth, activePlayer(node), &DepthBudgetExceededError{MaxDepth: limit})
	}

	return nil
}

// accumulate folds the path-weighted payoffs of a terminal node into the result.
func (t *traversal) accumulate(node GameNode, pathP float64, depth int) error {
	payoffs, err := node.Payoffs()
	if err != nil {
		return t.wrap(node, depth, ChancePlayer, err)
	}

	if err := t.utilities.Accumulate(pathP, payoffs); err != nil {
		return t.wrap(node, depth, ChancePlayer, err)
	}

	t.terminalMass += pathP
	t.numTerminals++
	return nil
}

// expand returns the positive-probability transitions out of a non-terminal
// node, recording the policy of each acting player in the catalogue.
//
// Catalogue deduplication never prunes the returned branches: a repeated
// information state may be reached with a different path probability.
func (t *traversal) expand(node GameNode, depth int) ([]branch, error) {
	switch node.Type() {
	case ChanceNode:
		return t.expandChance(node, depth)
	case SequentialNode:
		players := node.ActivePlayers()
		if err := checkActivePlayers(node, players); err != nil {
			return nil, t.wrap(node, depth, ChancePlayer, err)
		}

		legal, probs, err := t.playerProbs(node, players[0], depth)
		if err != nil {
			return nil, err
		}

		var result []branch
		for i, p := range probs {
			if p > 0 {
				result = append(result, branch{actions: []Action{legal[i]}, p: p})
			}
		}
		return result, nil
	case SimultaneousNode:
		return t.expandSimultaneous(node, depth)
	}

	return nil, t.wrap(node, depth, ChancePlayer, &UnsupportedNodeTypeError{Type: node.Type()})
}

func (t *traversal) expandChance(node GameNode, depth int) ([]branch, error) {
	outcomes, err := node.ChanceOutcomes()
	if err != nil {
		return nil, t.wrap(node, depth, ChancePlayer, err)
	}

	if err := ValidateChanceOutcomes(outcomes, t.tol); err != nil {
		return nil, t.wrap(node, depth, ChancePlayer, err)
	}

	result := make([]branch, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Probability > 0 {
			result = append(result, branch{actions: []Action{o.Action}, p: o.Probability})
		}
	}

	return result, nil
}

func (t *traversal) expandSimultaneous(node GameNode, depth int) ([]branch, error) {
	players := node.ActivePlayers()
	if err := checkActivePlayers(node, players); err != nil {
		return nil, t.wrap(node, depth, ChancePlayer, err)
	}

	// Positive-probability actions of each player.
	choices := make([][]Action, len(players))
	choiceProbs := make([][]float64, len(players))
	for i, player := range players {
		legal, probs, err := t.playerProbs(node, player, depth)
		if err != nil {
			return nil, err
		}

		for j, p := range probs {
			if p > 0 {
				choices[i] = append(choices[i], legal[j])
				choiceProbs[i] = append(choiceProbs[i], p)
			}
		}
	}

	var result []branch
	forEachJointAction(choices, func(joint []Action, idx []int) {
		p := 1.0
		for i, j := range idx {
			p *= choiceProbs[i][j]
		}
		result = append(result, branch{actions: joint, p: p})
	})

	return result, nil
}

// playerProbs returns the legal actions of player at node and the policy's
// probability of each, recording them in the catalogue on first visit.
func (t *traversal) playerProbs(node GameNode, player, depth int) ([]Action, []float64, error) {
	legal, err := node.LegalActions(player)
	if err != nil {
		return nil, nil, t.wrap(node, depth, player, err)
	}

	probs, err := t.policy.ActionProbabilities(node, player)
	if err != nil {
		return nil, nil, t.wrap(node, depth, player, err)
	}

	aligned, err := AlignProbs(player, legal, probs, t.tol)
	if err != nil {
		return nil, nil, t.wrap(node, depth, player, err)
	}

	key := node.InfoSetKey(player)
	if !t.catalogue.Contains(player, key, depth) {
		t.catalogue.Record(t.newRecord(node, player, key, depth, legal, aligned))
	}

	return legal, aligned, nil
}

func (t *traversal) newRecord(node GameNode, player int, key string, depth int, legal []Action, probs []float64) Record {
	actions := make([]ActionProb, len(legal))
	for i, a := range legal {
		actions[i] = ActionProb{
			Action:      a,
			Label:       ActionLabel(node, player, a),
			Probability: probs[i],
		}
	}

	r := Record{
		Player:  player,
		InfoSet: key,
		Depth:   depth,
		Actions: actions,
	}

	if t.params.ParseInfoSet != nil {
		r.Fields = t.params.ParseInfoSet(key)
	}

	return r
}

// merge folds the results of an independent traversal into t.
func (t *traversal) merge(other *traversal) error {
	if err := t.utilities.Add(other.utilities); err != nil {
		return err
	}

	t.catalogue.Merge(other.catalogue)
	t.terminalMass += other.terminalMass
	t.numTerminals += other.numTerminals
	t.numNodes += other.numNodes
	return nil
}

func (t *traversal) wrap(node GameNode, depth, player int, err error) error {
	te := &TraversalError{Depth: depth, Player: player, Err: err}
	if player >= 0 {
		te.InfoSet = node.InfoSetKey(player)
	}

	return te
}

// activePlayer returns the first active player of node, or ChancePlayer
// if there is none.
func activePlayer(node GameNode) int {
	switch node.Type() {
	case SequentialNode, SimultaneousNode:
		if players := node.ActivePlayers(); len(players) > 0 {
			return players[0]
		}
	}

	return ChancePlayer
}
