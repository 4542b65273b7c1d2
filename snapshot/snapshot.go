// Package snapshot implements weavetree's deterministic tree serialization
// format (spec.md §4.E, §6): a schema_version-tagged value carrying every
// node, edge, and outcome in the arena, walked in ascending NodeId order.
package snapshot

import (
	"github.com/weavetree/core/ids"
	"github.com/weavetree/core/tree"
)

// SchemaVersion is the current snapshot wire format version.
const SchemaVersion = 1

// Outcome is the wire form of one chance outcome.
type Outcome struct {
	NextStateKey ids.StateKey `json:"next_state_key"`
	ChildNodeId  ids.NodeId   `json:"child_node_id"`
	Count        int          `json:"count"`
}

// Edge is the wire form of one action edge, including its precomputed Q.
type Edge struct {
	ActionId ids.ActionId `json:"action_id"`
	Visits   int          `json:"visits"`
	ValueSum float64      `json:"value_sum"`
	Q        float64      `json:"q"`
	Outcomes []Outcome    `json:"outcomes"`
}

// Node is the wire form of one tree node. ParentNodeId and ParentActionId
// are nil (encoded as JSON null) iff the node is the root.
type Node struct {
	NodeId         ids.NodeId    `json:"node_id"`
	StateKey       ids.StateKey  `json:"state_key"`
	Depth          int           `json:"depth"`
	IsTerminal     bool          `json:"is_terminal"`
	ParentNodeId   *ids.NodeId   `json:"parent_node_id"`
	ParentActionId *ids.ActionId `json:"parent_action_id"`
	Edges          []Edge        `json:"edges"`
}

// Snapshot is a deterministic, serializable copy of a full search tree at
// a point in time.
type Snapshot struct {
	SchemaVersion int        `json:"schema_version"`
	RootNodeId    ids.NodeId `json:"root_node_id"`
	NodeCount     int        `json:"node_count"`
	Nodes         []Node     `json:"nodes"`
}

// New walks arena in ascending NodeId order and builds its snapshot.
func New(arena *tree.Arena) Snapshot {
	views := arena.Nodes()
	nodes := make([]Node, len(views))
	for i, v := range views {
		nodes[i] = nodeFromView(v)
	}
	return Snapshot{
		SchemaVersion: SchemaVersion,
		RootNodeId:    arena.RootId(),
		NodeCount:     arena.NodeCount(),
		Nodes:         nodes,
	}
}

func nodeFromView(v tree.NodeView) Node {
	edges := make([]Edge, len(v.Edges))
	for i, e := range v.Edges {
		edges[i] = edgeFromView(e)
	}
	return Node{
		NodeId:         v.NodeId,
		StateKey:       v.StateKey,
		Depth:          v.Depth,
		IsTerminal:     v.IsTerminal,
		ParentNodeId:   v.ParentNodeId,
		ParentActionId: v.ParentActionId,
		Edges:          edges,
	}
}

func edgeFromView(e tree.EdgeView) Edge {
	outcomes := make([]Outcome, len(e.Outcomes))
	for i, o := range e.Outcomes {
		outcomes[i] = Outcome{
			NextStateKey: o.NextStateKey,
			ChildNodeId:  o.ChildNodeId,
			Count:        o.Count,
		}
	}
	return Edge{
		ActionId: e.ActionId,
		Visits:   e.Visits,
		ValueSum: e.ValueSum,
		Q:        e.Q,
		Outcomes: outcomes,
	}
}
