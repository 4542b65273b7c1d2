package mcts

import (
	"math"

	"github.com/weavetree/core/config"
	"github.com/weavetree/core/ids"
	"github.com/weavetree/core/tree"
)

// pathSegment is one (parent, action, reward) triple recorded while
// descending the tree in one iteration, plus the child node taken so that
// backup can locate the matching outcome without re-deriving it.
type pathSegment struct {
	nodeId      ids.NodeId
	actionId    ids.ActionId
	reward      float64
	childNodeId ids.NodeId
}

// selectAndExpand implements spec.md §4.D phase (1): it descends from the
// root, expanding the tree by at most one node, and returns the leaf node
// reached, whether that leaf was newly allocated this call, and the
// recorded path.
func selectAndExpand(arena *tree.Arena, env Environment, c float64) (leaf ids.NodeId, leafIsNew bool, path []pathSegment, err error) {
	node := arena.RootId()

	for {
		nv, gerr := arena.Node(node)
		if gerr != nil {
			return 0, false, nil, gerr
		}

		if nv.IsTerminal {
			return node, false, path, nil
		}

		if len(nv.Edges) == 0 {
			n := env.NumActions(nv.StateKey)
			if n == 0 {
				return node, false, path, nil
			}
			if ierr := arena.InitEdges(node, n); ierr != nil {
				return 0, false, nil, ierr
			}
			nv, gerr = arena.Node(node)
			if gerr != nil {
				return 0, false, nil, gerr
			}
		}

		chosen, serr := selectEdge(nv.Edges, c)
		if serr != nil {
			return 0, false, nil, serr
		}

		next, reward, terminal := env.Step(nv.StateKey, chosen)

		existing, found, ferr := arena.FindOutcome(node, chosen, next)
		if ferr != nil {
			return 0, false, nil, ferr
		}

		if found {
			path = append(path, pathSegment{nodeId: node, actionId: chosen, reward: reward, childNodeId: existing.ChildNodeId})
			childView, gerr := arena.Node(existing.ChildNodeId)
			if gerr != nil {
				return 0, false, nil, gerr
			}
			if childView.IsTerminal {
				return existing.ChildNodeId, false, path, nil
			}
			node = existing.ChildNodeId
			continue
		}

		childId := arena.AllocateNode(next, nv.Depth+1, terminal, node, chosen)
		if aerr := arena.AppendOutcome(node, chosen, next, childId); aerr != nil {
			return 0, false, nil, aerr
		}
		path = append(path, pathSegment{nodeId: node, actionId: chosen, reward: reward, childNodeId: childId})
		return childId, true, path, nil
	}
}

// selectEdge implements the UCB1 tree policy: any edge with zero visits is
// chosen immediately (ties broken by smaller ActionId), otherwise the edge
// maximizing q(e) + c*sqrt(ln(N)/e.visits) is chosen, ties again broken by
// smaller ActionId. Edges are iterated in ascending ActionId order, so a
// strict ">" comparison is enough to realize that tie-break without extra
// bookkeeping.
func selectEdge(edges []tree.EdgeView, c float64) (ids.ActionId, error) {
	for _, e := range edges {
		if e.Visits == 0 {
			return e.ActionId, nil
		}
	}

	n := 0
	for _, e := range edges {
		n += e.Visits
	}
	lnN := math.Log(float64(n))

	best := ids.ActionId(-1)
	bestScore := math.Inf(-1)
	for _, e := range edges {
		score := e.Q + c*math.Sqrt(lnN/float64(e.Visits))
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = e.ActionId
		}
	}

	if best < 0 {
		// Edges carry no back-reference to their owning node; -1 signals
		// "unknown" to the caller.
		return 0, &SelectionFailedError{NodeId: -1, Detail: "every edge produced a non-finite UCB1 score"}
	}
	return best, nil
}

// rolloutResult carries the rewards observed during simulation from a
// leaf, in order.
type rolloutResult struct {
	rewards []float64
}

// rollout implements spec.md §4.D phase (2).
func rollout(leaf tree.NodeView, pathLen int, cfg config.Config, env Environment, policy RolloutPolicyFunc) (rolloutResult, error) {
	if leaf.IsTerminal {
		return rolloutResult{}, nil
	}

	remaining := cfg.MaxSteps - pathLen
	if remaining <= 0 {
		return rolloutResult{}, nil
	}

	limit := remaining
	if cfg.ReturnType == config.FixedHorizon && cfg.FixedHorizonSteps < limit {
		limit = cfg.FixedHorizonSteps
	}

	var rewards []float64
	current := leaf.StateKey
	for len(rewards) < limit {
		n := env.NumActions(current)
		if n == 0 {
			break
		}
		action := policy(current, n)
		if action.Int() < 0 || action.Int() >= n {
			return rolloutResult{}, &InvalidRolloutActionError{Returned: action.Int(), N: n}
		}
		next, reward, terminal := env.Step(current, action)
		rewards = append(rewards, reward)
		current = next
		if terminal {
			break
		}
	}
	return rolloutResult{rewards: rewards}, nil
}

// computeReturn implements spec.md §4.D phase (3): it returns the plain
// (undiscounted) sum of the path's rewards for diagnostics, the
// return-mode-dependent rollout contribution, and the total return backed
// up through the path.
func computeReturn(cfg config.Config, path []pathSegment, rolloutRewards []float64) (prefixSum, rolloutReturn, total float64) {
	for _, seg := range path {
		prefixSum += seg.reward
	}

	switch cfg.ReturnType {
	case config.Discounted:
		prefixReturn := 0.0
		discount := 1.0
		for _, seg := range path {
			prefixReturn += discount * seg.reward
			discount *= cfg.Gamma
		}
		rolloutSum := 0.0
		g := 1.0
		for _, r := range rolloutRewards {
			rolloutSum += g * r
			g *= cfg.Gamma
		}
		rolloutReturn = discount * rolloutSum
		total = prefixReturn + rolloutReturn
	default: // EpisodicUndiscounted, FixedHorizon
		for _, r := range rolloutRewards {
			rolloutReturn += r
		}
		total = prefixSum + rolloutReturn
	}
	return prefixSum, rolloutReturn, total
}

// backup implements spec.md §4.D phase (4).
func backup(arena *tree.Arena, path []pathSegment, total float64) error {
	for _, seg := range path {
		if err := arena.Backup(seg.nodeId, seg.actionId, seg.childNodeId, total); err != nil {
			return err
		}
	}
	return nil
}
