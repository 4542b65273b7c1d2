package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/weavetree/core/mcts"
)

// WriteIterationsCSV writes one row per completed iteration, the way the
// teacher's experiments/metrics.Writer wrote one CSV row per move record:
// a fixed header, then a strconv-formatted row per entry, propagating the
// first write error.
func WriteIterationsCSV(w io.Writer, iterations []mcts.IterationMetrics) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"iteration", "leaf_node_id", "leaf_is_new", "path_len", "reward_prefix_sum", "rollout_return", "total_return", "node_count"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("telemetry: write csv header: %w", err)
	}

	for i, m := range iterations {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(m.LeafNodeId.Int()),
			strconv.FormatBool(m.LeafIsNew),
			strconv.Itoa(m.PathLen),
			strconv.FormatFloat(m.RewardPrefixSum, 'f', 6, 64),
			strconv.FormatFloat(m.RolloutReturn, 'f', 6, 64),
			strconv.FormatFloat(m.TotalReturn, 'f', 6, 64),
			strconv.Itoa(m.NodeCount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("telemetry: write csv row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}
