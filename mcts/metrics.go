package mcts

import "github.com/weavetree/core/ids"

// IterationMetrics reports what happened during one call to Tree.Iterate.
type IterationMetrics struct {
	LeafNodeId      ids.NodeId
	LeafIsNew       bool
	PathLen         int
	RewardPrefixSum float64
	RolloutReturn   float64
	TotalReturn     float64
	NodeCount       int
}

// RunMetrics aggregates the outcome of a Run or RunWithHook call.
// IterationsCompleted is kept alongside IterationsRequested so a caller can
// tell a clean run (equal) from one a hook aborted early (less).
type RunMetrics struct {
	IterationsRequested int
	IterationsCompleted int
	TotalReturnSum      float64
	AverageTotalReturn  float64
	Iterations          []IterationMetrics
}
