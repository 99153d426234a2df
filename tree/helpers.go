// Package tree implements helpers that walk every legal transition of an
// extensive-form game tree, independent of any policy.
package tree

import (
	"github.com/timpalpant/go-efg"
)

// Visit calls visitor with every node in the tree, in depth-first order,
// along with its depth below root.
func Visit(root efg.GameNode, visitor func(node efg.GameNode, depth int)) error {
	return visit(root, 0, visitor)
}

func visit(node efg.GameNode, depth int, visitor func(node efg.GameNode, depth int)) error {
	visitor(node, depth)
	transitions, err := efg.Transitions(node)
	if err != nil {
		return err
	}

	for _, t := range transitions {
		child, err := node.Child(t.Actions...)
		if err != nil {
			return err
		}

		if err := visit(child, depth+1, visitor); err != nil {
			return err
		}
	}

	return nil
}

// VisitInfoSets calls visitor once for each distinct (player, infoset)
// encountered, at the first node where that player acts in it.
func VisitInfoSets(root efg.GameNode, visitor func(node efg.GameNode, player int, infoSet string)) error {
	seen := make(map[int]map[string]struct{})
	return Visit(root, func(node efg.GameNode, depth int) {
		t := node.Type()
		if t != efg.SequentialNode && t != efg.SimultaneousNode {
			return
		}

		for _, player := range node.ActivePlayers() {
			if seen[player] == nil {
				seen[player] = make(map[string]struct{})
			}

			infoSet := node.InfoSetKey(player)
			if _, ok := seen[player][infoSet]; ok {
				continue
			}

			visitor(node, player, infoSet)
			seen[player][infoSet] = struct{}{}
		}
	})
}

func CountTerminalNodes(root efg.GameNode) (int, error) {
	total := 0
	err := Visit(root, func(node efg.GameNode, depth int) {
		if node.Type() == efg.TerminalNode {
			total++
		}
	})

	return total, err
}

func CountNodes(root efg.GameNode) (int, error) {
	total := 0
	err := Visit(root, func(node efg.GameNode, depth int) { total++ })
	return total, err
}

func CountInfoSets(root efg.GameNode) (int, error) {
	total := 0
	err := VisitInfoSets(root, func(node efg.GameNode, player int, infoSet string) { total++ })
	return total, err
}

// MaxDepth returns the length of the longest path from root to a terminal node.
func MaxDepth(root efg.GameNode) (int, error) {
	result := 0
	err := Visit(root, func(node efg.GameNode, depth int) {
		if depth > result {
			result = depth
		}
	})

	return result, err
}
