// Package mcts implements weavetree's Monte Carlo Tree Search engine: the
// four-phase iteration (selection, expansion, simulation, backpropagation)
// over the node arena in package tree, the three return-computation
// policies, and the root-action recommendation queries (spec.md §4.D).
package mcts

import (
	"github.com/rs/zerolog/log"

	"github.com/weavetree/core/config"
	"github.com/weavetree/core/ids"
	"github.com/weavetree/core/snapshot"
	"github.com/weavetree/core/tree"
)

// Tree owns one search and its arena exclusively. It is not safe for
// concurrent use by multiple goroutines; two independent trees may run
// concurrently on different threads provided each stays confined to one
// (spec.md §5).
type Tree struct {
	arena *tree.Arena
}

// New creates a tree containing a single root node for rootStateKey.
func New(rootStateKey ids.StateKey, rootIsTerminal bool) *Tree {
	return &Tree{arena: tree.NewArena(rootStateKey, rootIsTerminal)}
}

// Iterate performs one full MCTS iteration: selection/expansion, rollout,
// return computation, and backpropagation. If rollout fails, the iteration
// is discarded: any node the expansion phase just allocated is removed
// again together with its outcome entry, so the node count is unchanged and
// no visit count or value sum is touched. Action edges that the descent
// initialized on a node during this call are kept, with zero visits.
func (t *Tree) Iterate(cfg config.Config, env Environment, policy RolloutPolicyFunc) (IterationMetrics, error) {
	leaf, leafIsNew, path, err := selectAndExpand(t.arena, env, cfg.C)
	if err != nil {
		return IterationMetrics{}, err
	}

	leafView, err := t.arena.Node(leaf)
	if err != nil {
		return IterationMetrics{}, err
	}

	rolled, err := rollout(leafView, len(path), cfg, env, policy)
	if err != nil {
		if leafIsNew {
			last := path[len(path)-1]
			if derr := t.arena.DiscardNode(leaf, last.nodeId, last.actionId); derr != nil {
				log.Warn().Err(derr).Msg("mcts: failed to discard expansion for failing iteration")
			}
		}
		return IterationMetrics{}, err
	}

	prefixSum, rolloutReturn, total := computeReturn(cfg, path, rolled.rewards)

	if err := backup(t.arena, path, total); err != nil {
		return IterationMetrics{}, err
	}

	return IterationMetrics{
		LeafNodeId:      leaf,
		LeafIsNew:       leafIsNew,
		PathLen:         len(path),
		RewardPrefixSum: prefixSum,
		RolloutReturn:   rolloutReturn,
		TotalReturn:     total,
		NodeCount:       t.arena.NodeCount(),
	}, nil
}

// Run invokes Iterate cfg.Iterations times, aggregating metrics. It stops
// early, returning the error, if any Iterate call fails.
func (t *Tree) Run(cfg config.Config, env Environment, policy RolloutPolicyFunc) (RunMetrics, error) {
	return t.RunWithHook(cfg, env, policy, nil)
}

// RunWithHook behaves like Run, but invokes hook(metrics) synchronously
// after each successful iteration. A hook that returns an error aborts the
// run: that error propagates out of RunWithHook, and the just-completed
// iteration's mutations are kept (spec.md §5).
func (t *Tree) RunWithHook(cfg config.Config, env Environment, policy RolloutPolicyFunc, hook func(IterationMetrics) error) (RunMetrics, error) {
	run := RunMetrics{
		IterationsRequested: cfg.Iterations,
		Iterations:          make([]IterationMetrics, 0, cfg.Iterations),
	}

	for i := 0; i < cfg.Iterations; i++ {
		metric, err := t.Iterate(cfg, env, policy)
		if err != nil {
			return run, err
		}

		run.IterationsCompleted++
		run.TotalReturnSum += metric.TotalReturn
		run.AverageTotalReturn = run.TotalReturnSum / float64(run.IterationsCompleted)
		run.Iterations = append(run.Iterations, metric)

		if hook != nil {
			if herr := hook(metric); herr != nil {
				return run, herr
			}
		}
	}

	return run, nil
}

// BestRootActionByVisits returns the root edge with the most visits,
// ties broken by smaller ActionId. It reports false iff the root has no
// edges.
func (t *Tree) BestRootActionByVisits() (ids.ActionId, bool) {
	root, err := t.arena.Node(t.arena.RootId())
	if err != nil {
		log.Warn().Err(err).Msg("mcts: failed to read root node")
		return 0, false
	}
	if len(root.Edges) == 0 {
		return 0, false
	}

	best := root.Edges[0]
	for _, e := range root.Edges[1:] {
		if e.Visits > best.Visits {
			best = e
		}
	}
	return best.ActionId, true
}

// BestRootActionByValue returns the root edge with the greatest Q among
// edges with at least one visit, ties broken by smaller ActionId. It
// reports false iff the root has no edges or every edge is unvisited.
func (t *Tree) BestRootActionByValue() (ids.ActionId, bool) {
	root, err := t.arena.Node(t.arena.RootId())
	if err != nil {
		log.Warn().Err(err).Msg("mcts: failed to read root node")
		return 0, false
	}

	best := ids.ActionId(-1)
	bestQ := -1.0
	found := false
	for _, e := range root.Edges {
		if e.Visits == 0 {
			continue
		}
		if !found || e.Q > bestQ {
			bestQ = e.Q
			best = e.ActionId
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// NodeCount reports how many nodes the arena holds.
func (t *Tree) NodeCount() int { return t.arena.NodeCount() }

// Snapshot returns a deterministic, serializable copy of the tree.
func (t *Tree) Snapshot() snapshot.Snapshot {
	return snapshot.New(t.arena)
}
