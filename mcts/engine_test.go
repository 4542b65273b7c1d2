package mcts_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weavetree/core/config"
	"github.com/weavetree/core/ids"
	"github.com/weavetree/core/mcts"
	"github.com/weavetree/core/mcts/testenv"
)

// S1 — trivial deterministic gridworld (spec.md §8).
func TestScenarioS1Gridworld(t *testing.T) {
	cfg, err := config.New(6, 1.4, 1.0, 8, config.Discounted, 8)
	require.NoError(t, err)

	tr := mcts.New(ids.StateKey(0), false)
	run, err := tr.Run(cfg, testenv.Gridworld(), testenv.AlwaysChoose(0))
	require.NoError(t, err)

	require.Equal(t, 6, run.IterationsCompleted)
	require.InDelta(t, 6.0, run.TotalReturnSum, 1e-9)
	require.InDelta(t, 1.0, run.AverageTotalReturn, 1e-9)
	require.Equal(t, 7, tr.NodeCount())

	best, ok := tr.BestRootActionByValue()
	require.True(t, ok)
	require.Equal(t, ids.ActionId(0), best)

	snap := tr.Snapshot()
	root := snap.Nodes[0]
	require.Len(t, root.Edges, 2)
	for _, e := range root.Edges {
		require.Equal(t, 3, e.Visits)
		require.InDelta(t, 3.0, e.ValueSum, 1e-9)
		require.InDelta(t, 1.0, e.Q, 1e-9)
	}
}

// S2 — deterministic two-outcome preference.
func TestScenarioS2TwoOutcomePreference(t *testing.T) {
	cfg, err := config.New(6, 0.5, 1.0, 4, config.Discounted, 4)
	require.NoError(t, err)

	tr := mcts.New(ids.StateKey(0), false)
	run, err := tr.Run(cfg, testenv.TwoOutcomeDecision(), testenv.AlwaysChoose(0))
	require.NoError(t, err)

	require.InDelta(t, 5.2, run.TotalReturnSum, 1e-9)

	best, ok := tr.BestRootActionByValue()
	require.True(t, ok)
	require.Equal(t, ids.ActionId(0), best)

	snap := tr.Snapshot()
	root := snap.Nodes[0]
	require.Equal(t, 5, root.Edges[0].Visits)
	require.InDelta(t, 5.0, root.Edges[0].ValueSum, 1e-9)
	require.Equal(t, 1, root.Edges[1].Visits)
	require.InDelta(t, 0.2, root.Edges[1].ValueSum, 1e-9)
}

// S3 — terminal root.
func TestScenarioS3TerminalRoot(t *testing.T) {
	cfg, err := config.New(10, 1.4, 1.0, 8, config.Discounted, 8)
	require.NoError(t, err)

	tr := mcts.New(ids.StateKey(42), true)
	run, err := tr.Run(cfg, testenv.Gridworld(), testenv.AlwaysChoose(0))
	require.NoError(t, err)

	require.Equal(t, 10, run.IterationsCompleted)
	require.Equal(t, 0.0, run.TotalReturnSum)
	require.Equal(t, 1, tr.NodeCount())
	for _, m := range run.Iterations {
		require.Equal(t, 0, m.PathLen)
		require.False(t, m.LeafIsNew)
		require.Equal(t, 0.0, m.TotalReturn)
	}
}

// S4 — invalid rollout action fails the iteration and leaves the node
// count unchanged.
func TestScenarioS4InvalidRolloutAction(t *testing.T) {
	cfg, err := config.New(1, 1.4, 1.0, 8, config.Discounted, 8)
	require.NoError(t, err)

	tr := mcts.New(ids.StateKey(0), false)
	badPolicy := func(ids.StateKey, int) ids.ActionId { return ids.ActionId(5) }

	_, err = tr.Iterate(cfg, testenv.Gridworld(), badPolicy)
	require.Error(t, err)
	require.IsType(t, &mcts.InvalidRolloutActionError{}, err)
	require.Equal(t, 1, tr.NodeCount())
}

// S5 — zero-action non-terminal state.
func TestScenarioS5ZeroActionState(t *testing.T) {
	cfg, err := config.New(5, 1.4, 1.0, 8, config.Discounted, 8)
	require.NoError(t, err)

	tr := mcts.New(ids.StateKey(0), false)
	run, err := tr.Run(cfg, testenv.ZeroActionState(), testenv.AlwaysChoose(0))
	require.NoError(t, err)

	require.Equal(t, 5, run.IterationsCompleted)
	require.Equal(t, 1, tr.NodeCount())
	for _, m := range run.Iterations {
		require.Equal(t, 0, m.PathLen)
		require.Equal(t, 0.0, m.TotalReturn)
	}
}

// S6 — config validation.
func TestScenarioS6ConfigValidation(t *testing.T) {
	_, err := config.New(0, 1.4, 1.0, 8, config.Discounted, 8)
	require.Error(t, err)

	_, err = config.New(10, -1.0, 1.0, 8, config.Discounted, 8)
	require.Error(t, err)
}

func TestBestRootActionReturnsFalseOnEmptyEdges(t *testing.T) {
	tr := mcts.New(ids.StateKey(0), true)
	_, ok := tr.BestRootActionByVisits()
	require.False(t, ok)
	_, ok = tr.BestRootActionByValue()
	require.False(t, ok)
}

func TestMaxStepsReachedByTreePathSkipsRollout(t *testing.T) {
	cfg, err := config.New(1, 1.4, 1.0, 1, config.Discounted, 1)
	require.NoError(t, err)

	tr := mcts.New(ids.StateKey(0), false)
	metric, err := tr.Iterate(cfg, testenv.Gridworld(), testenv.AlwaysChoose(0))
	require.NoError(t, err)
	// max_steps=1 is exhausted by the single tree-policy step; rollout
	// contributes nothing.
	require.Equal(t, 1, metric.PathLen)
	require.Equal(t, 0.0, metric.RolloutReturn)
}

func TestRunWithHookPropagatesHookError(t *testing.T) {
	cfg, err := config.New(10, 1.4, 1.0, 8, config.Discounted, 8)
	require.NoError(t, err)

	tr := mcts.New(ids.StateKey(0), false)
	callCount := 0
	hookErr := errHook{}
	run, err := tr.RunWithHook(cfg, testenv.Gridworld(), testenv.AlwaysChoose(0), func(mcts.IterationMetrics) error {
		callCount++
		if callCount == 3 {
			return hookErr
		}
		return nil
	})

	require.ErrorIs(t, err, hookErr)
	require.Equal(t, 3, run.IterationsCompleted)
}

type errHook struct{}

func (errHook) Error() string { return "stop requested" }
