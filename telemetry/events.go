// Package telemetry implements weavetree's structured per-run logging
// contract (spec.md §4.E, §6): the three event kinds run_started,
// iteration_completed, and run_completed, each with a stable one-line text
// form and a newline-delimited JSON object form.
package telemetry

import "fmt"

// RunStartedEvent is emitted once, before the first iteration of a run.
type RunStartedEvent struct {
	IterationsRequested int     `json:"iterations_requested"`
	C                   float64 `json:"c"`
	Gamma               float64 `json:"gamma"`
	MaxSteps            int     `json:"max_steps"`
	ReturnType          string  `json:"return_type"`
	FixedHorizonSteps   int     `json:"fixed_horizon_steps"`
}

// TextLine renders the stable one-line text form, floats formatted with
// six fractional digits and return_type lowercase.
func (e RunStartedEvent) TextLine() string {
	return fmt.Sprintf(
		"run_started iterations_requested=%d c=%.6f gamma=%.6f max_steps=%d return_type=%s fixed_horizon_steps=%d",
		e.IterationsRequested, e.C, e.Gamma, e.MaxSteps, e.ReturnType, e.FixedHorizonSteps,
	)
}

// IterationCompletedEvent is emitted after every completed iteration.
type IterationCompletedEvent struct {
	Iteration     int     `json:"iteration"`
	LeafNodeId    int     `json:"leaf_node_id"`
	LeafIsNew     bool    `json:"leaf_is_new"`
	PathLen       int     `json:"path_len"`
	RewardPrefix  float64 `json:"reward_prefix"`
	RolloutReturn float64 `json:"rollout_return"`
	TotalReturn   float64 `json:"total_return"`
	NodeCount     int     `json:"node_count"`
}

// TextLine renders the stable one-line text form.
func (e IterationCompletedEvent) TextLine() string {
	return fmt.Sprintf(
		"iteration_completed iteration=%d leaf_node_id=%d leaf_is_new=%t path_len=%d reward_prefix=%.6f rollout_return=%.6f total_return=%.6f node_count=%d",
		e.Iteration, e.LeafNodeId, e.LeafIsNew, e.PathLen, e.RewardPrefix, e.RolloutReturn, e.TotalReturn, e.NodeCount,
	)
}

// RunCompletedEvent is emitted once, after the last iteration of a run (or
// after the iteration that aborted it).
type RunCompletedEvent struct {
	IterationsRequested int     `json:"iterations_requested"`
	IterationsCompleted int     `json:"iterations_completed"`
	TotalReturnSum      float64 `json:"total_return_sum"`
	AverageTotalReturn  float64 `json:"average_total_return"`
}

// TextLine renders the stable one-line text form.
func (e RunCompletedEvent) TextLine() string {
	return fmt.Sprintf(
		"run_completed iterations_requested=%d iterations_completed=%d total_return_sum=%.6f average_total_return=%.6f",
		e.IterationsRequested, e.IterationsCompleted, e.TotalReturnSum, e.AverageTotalReturn,
	)
}
