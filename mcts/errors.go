package mcts

import "fmt"

// SelectionFailedError reports that the tree policy could not pick an edge
// from a non-empty edge list, e.g. because every UCB1 score was
// non-finite.
type SelectionFailedError struct {
	NodeId int
	Detail string
}

func (e *SelectionFailedError) Error() string {
	return fmt.Sprintf("mcts: selection failed at node %d: %s", e.NodeId, e.Detail)
}

// InvalidRolloutActionError reports that a RolloutPolicyFunc returned an
// action outside [0, n).
type InvalidRolloutActionError struct {
	Returned int
	N        int
}

func (e *InvalidRolloutActionError) Error() string {
	return fmt.Sprintf("mcts: rollout policy returned action %d, want one in [0, %d)", e.Returned, e.N)
}
