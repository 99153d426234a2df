package efg

import (
	"golang.org/x/sync/errgroup"
)

// evaluateParallel expands the root once and evaluates each of its branches
// with an independent traversal. Partial results are merged in branch order,
// so the catalogue matches a sequential evaluation and utilities are
// reproducible from run to run.
func (e *Evaluator) evaluateParallel(root GameNode, policy Policy) (*traversal, error) {
	t := e.newTraversal(root, policy)
	if err := t.enter(root, 0); err != nil {
		return nil, err
	}

	if root.Type() == TerminalNode {
		return t, t.accumulate(root, 1.0, 0)
	}

	branches, err := t.expand(root, 0)
	if err != nil {
		return nil, err
	}

	parts := make([]*traversal, len(branches))
	errs := make([]error, len(branches))
	var g errgroup.Group
	g.SetLimit(e.params.Parallelism)
	for i, b := range branches {
		i, b := i, b
		g.Go(func() error {
			child, err := root.Child(b.actions...)
			if err != nil {
				errs[i] = t.wrap(root, 0, activePlayer(root), err)
				return nil
			}

			part := e.newTraversal(root, policy)
			if err := part.visit(child, b.p, 1); err != nil {
				errs[i] = err
				return nil
			}

			parts[i] = part
			return nil
		})
	}

	g.Wait()

	// Report the error a sequential traversal would have hit first.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, part := range parts {
		if err := t.merge(part); err != nil {
			return nil, err
		}
	}

	return t, nil
}
