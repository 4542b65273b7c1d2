package mcts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weavetree/core/config"
	"github.com/weavetree/core/ids"
	"github.com/weavetree/core/tree"
)

func TestSelectEdgePrefersUnvisitedBySmallerActionId(t *testing.T) {
	edges := []tree.EdgeView{
		{ActionId: 0, Visits: 1, Q: 0.1},
		{ActionId: 1, Visits: 0},
		{ActionId: 2, Visits: 0},
	}
	chosen, err := selectEdge(edges, 1.4)
	require.NoError(t, err)
	require.Equal(t, ids.ActionId(1), chosen)
}

func TestSelectEdgeBreaksScoreTiesBySmallerActionId(t *testing.T) {
	// Equal visits and equal Q give an identical UCB1 score.
	edges := []tree.EdgeView{
		{ActionId: 0, Visits: 2, Q: 0.5},
		{ActionId: 1, Visits: 2, Q: 0.5},
	}
	chosen, err := selectEdge(edges, 1.4)
	require.NoError(t, err)
	require.Equal(t, ids.ActionId(0), chosen)
}

func TestSelectEdgeMaximizesUCB1Score(t *testing.T) {
	edges := []tree.EdgeView{
		{ActionId: 0, Visits: 10, Q: 0.1},
		{ActionId: 1, Visits: 1, Q: 0.1},
	}
	chosen, err := selectEdge(edges, 2.0)
	require.NoError(t, err)
	require.Equal(t, ids.ActionId(1), chosen, "fewer visits should win under meaningful exploration pressure")
}

func TestComputeReturnDiscounted(t *testing.T) {
	cfg, err := config.New(10, 1.4, 0.5, 10, config.Discounted, 10)
	require.NoError(t, err)

	path := []pathSegment{{reward: 1.0}, {reward: 2.0}}
	rolloutRewards := []float64{4.0}

	prefixSum, rolloutReturn, total := computeReturn(cfg, path, rolloutRewards)

	require.Equal(t, 3.0, prefixSum)
	// prefix_return = 1*1.0 + 0.5*2.0 = 2.0; discount after prefix = 0.25
	// rollout_return = 0.25 * (1*4.0) = 1.0
	require.InDelta(t, 1.0, rolloutReturn, 1e-9)
	require.InDelta(t, 3.0, total, 1e-9)
}

func TestComputeReturnEpisodicUndiscountedIgnoresGamma(t *testing.T) {
	cfg, err := config.New(10, 1.4, 0.1, 10, config.EpisodicUndiscounted, 10)
	require.NoError(t, err)

	path := []pathSegment{{reward: 1.0}, {reward: 2.0}}
	rolloutRewards := []float64{3.0}

	prefixSum, rolloutReturn, total := computeReturn(cfg, path, rolloutRewards)

	require.Equal(t, 3.0, prefixSum)
	require.Equal(t, 3.0, rolloutReturn)
	require.Equal(t, 6.0, total)
}

func TestSelectionFailedWhenNoFiniteScore(t *testing.T) {
	edges := []tree.EdgeView{
		{ActionId: 0, Visits: 1, Q: math.Inf(1)},
	}
	_, err := selectEdge(edges, 1.4)
	require.Error(t, err)
	require.IsType(t, &SelectionFailedError{}, err)
}
