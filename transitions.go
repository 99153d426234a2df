package efg

// Transition is one way of leaving a non-terminal node.
type Transition struct {
	// Actions is the argument to GameNode.Child.
	Actions []Action
	// Probability is the chance probability of the transition.
	// It is only set for transitions out of Chance nodes.
	Probability float64
}

// Transitions enumerates every legal transition out of node: each chance
// outcome, each legal action of a Sequential player, or each joint action
// of a Simultaneous node.
func Transitions(node GameNode) ([]Transition, error) {
	switch node.Type() {
	case TerminalNode:
		return nil, nil
	case ChanceNode:
		outcomes, err := node.ChanceOutcomes()
		if err != nil {
			return nil, err
		}

		result := make([]Transition, len(outcomes))
		for i, o := range outcomes {
			result[i] = Transition{Actions: []Action{o.Action}, Probability: o.Probability}
		}
		return result, nil
	case SequentialNode, SimultaneousNode:
		players := node.ActivePlayers()
		if err := checkActivePlayers(node, players); err != nil {
			return nil, err
		}

		choices := make([][]Action, len(players))
		for i, player := range players {
			legal, err := node.LegalActions(player)
			if err != nil {
				return nil, err
			}
			choices[i] = legal
		}

		var result []Transition
		forEachJointAction(choices, func(joint []Action, _ []int) {
			result = append(result, Transition{Actions: joint})
		})
		return result, nil
	}

	return nil, &UnsupportedNodeTypeError{Type: node.Type()}
}

func checkActivePlayers(node GameNode, players []int) error {
	switch t := node.Type(); {
	case t == SequentialNode && len(players) != 1:
		return &UnsupportedNodeTypeError{Type: t, Op: "multiple active players"}
	case t == SimultaneousNode && len(players) == 0:
		return &UnsupportedNodeTypeError{Type: t, Op: "no active players"}
	}

	return nil
}

// forEachJointAction calls f with each element of the Cartesian product of
// choices, in lexicographic order (the last player varies fastest).
// f receives a fresh joint slice on each call, along with the index of each
// chosen action within choices. idx is only valid for the duration of the call.
func forEachJointAction(choices [][]Action, f func(joint []Action, idx []int)) {
	for _, c := range choices {
		if len(c) == 0 {
			return
		}
	}

	idx := make([]int, len(choices))
	for {
		joint := make([]Action, len(choices))
		for i, c := range choices {
			joint[i] = c[idx[i]]
		}
		f(joint, idx)

		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(choices[i]) {
				break
			}
			idx[i] = 0
		}

		if i < 0 {
			return
		}
	}
}
