package tree

import "github.com/weavetree/core/ids"

// OutcomeView is a read-only snapshot of one sampled successor of an
// action edge.
type OutcomeView struct {
	NextStateKey ids.StateKey
	ChildNodeId  ids.NodeId
	Count        int
}

func outcomeView(o *outcome) OutcomeView {
	return OutcomeView{
		NextStateKey: o.nextStateKey,
		ChildNodeId:  o.childNodeId,
		Count:        o.count,
	}
}

// EdgeView is a read-only snapshot of one action edge, including its
// derived Q value.
type EdgeView struct {
	ActionId ids.ActionId
	Visits   int
	ValueSum float64
	Q        float64
	Outcomes []OutcomeView
}

func edgeView(e *actionEdge) EdgeView {
	outcomes := make([]OutcomeView, len(e.outcomes))
	for i, o := range e.outcomes {
		outcomes[i] = outcomeView(o)
	}
	return EdgeView{
		ActionId: e.actionId,
		Visits:   e.visits,
		ValueSum: e.valueSum,
		Q:        e.Q(),
		Outcomes: outcomes,
	}
}

// NodeView is a read-only snapshot of one tree node, including its edges.
type NodeView struct {
	NodeId         ids.NodeId
	StateKey       ids.StateKey
	Depth          int
	IsTerminal     bool
	ParentNodeId   *ids.NodeId
	ParentActionId *ids.ActionId
	Edges          []EdgeView
}

func nodeView(n *node) NodeView {
	edges := make([]EdgeView, len(n.edges))
	for i, e := range n.edges {
		edges[i] = edgeView(e)
	}
	return NodeView{
		NodeId:         n.nodeId,
		StateKey:       n.stateKey,
		Depth:          n.depth,
		IsTerminal:     n.isTerminal,
		ParentNodeId:   n.parentNodeId,
		ParentActionId: n.parentActionId,
		Edges:          edges,
	}
}
