// Package tree implements weavetree's node arena: the dense, append-only
// storage for a single search tree's nodes, action edges, and chance
// outcomes. The arena owns all mutable tree state; everything outside this
// package sees only identifiers or the read-only views in views.go.
package tree

import "github.com/weavetree/core/ids"

type node struct {
	nodeId         ids.NodeId
	stateKey       ids.StateKey
	depth          int
	isTerminal     bool
	parentNodeId   *ids.NodeId
	parentActionId *ids.ActionId
	edges          []*actionEdge
}

type actionEdge struct {
	actionId ids.ActionId
	visits   int
	valueSum float64
	outcomes []*outcome
}

// Q is the derived mean return backed up through this edge. When the edge
// has never been visited, Q is 0 rather than NaN.
func (e *actionEdge) Q() float64 {
	if e.visits == 0 {
		return 0
	}
	return e.valueSum / float64(e.visits)
}

type outcome struct {
	nextStateKey ids.StateKey
	childNodeId  ids.NodeId
	count        int
}

// Arena is the dense, append-only store of every node in one search tree.
// NodeIds are assigned in allocation order starting at 0 for the root, and
// remain stable for the arena's lifetime: nothing is ever reordered, and the
// only removal is DiscardNode, which can take back the most recently
// allocated node only.
type Arena struct {
	nodes []*node
}

// NewArena creates an arena containing a single root node.
func NewArena(rootStateKey ids.StateKey, rootIsTerminal bool) *Arena {
	a := &Arena{}
	a.nodes = append(a.nodes, &node{
		nodeId:     0,
		stateKey:   rootStateKey,
		depth:      0,
		isTerminal: rootIsTerminal,
	})
	return a
}

// RootId is always 0.
func (a *Arena) RootId() ids.NodeId { return 0 }

// NodeCount is the number of nodes allocated so far.
func (a *Arena) NodeCount() int { return len(a.nodes) }

func (a *Arena) get(id ids.NodeId) (*node, error) {
	i := id.Int()
	if i < 0 || i >= len(a.nodes) {
		return nil, &MissingNodeError{NodeId: i}
	}
	return a.nodes[i], nil
}

// AllocateNode appends a new node to the arena and returns its NodeId. depth
// must equal parent depth + 1 for a non-root node; the caller (the engine)
// is responsible for that arithmetic, matching invariant 3 in spec.md §3.
func (a *Arena) AllocateNode(stateKey ids.StateKey, depth int, isTerminal bool, parentNodeId ids.NodeId, parentActionId ids.ActionId) ids.NodeId {
	id := ids.NodeId(len(a.nodes))
	pn := parentNodeId
	pa := parentActionId
	a.nodes = append(a.nodes, &node{
		nodeId:         id,
		stateKey:       stateKey,
		depth:          depth,
		isTerminal:     isTerminal,
		parentNodeId:   &pn,
		parentActionId: &pa,
	})
	return id
}

// InitEdges appends numActions action edges (action_ids 0..numActions) to
// the named node. It fails if the node already has edges: edges are
// appended exactly once, the first time a node's action count is
// discovered (spec.md §3, "Lifecycles").
func (a *Arena) InitEdges(nodeId ids.NodeId, numActions int) error {
	n, err := a.get(nodeId)
	if err != nil {
		return err
	}
	if len(n.edges) != 0 {
		return &EdgesAlreadyInitializedError{NodeId: nodeId.Int()}
	}
	n.edges = make([]*actionEdge, numActions)
	for i := 0; i < numActions; i++ {
		n.edges[i] = &actionEdge{actionId: ids.ActionId(i)}
	}
	return nil
}

func (a *Arena) edge(nodeId ids.NodeId, actionId ids.ActionId) (*actionEdge, error) {
	n, err := a.get(nodeId)
	if err != nil {
		return nil, err
	}
	i := actionId.Int()
	if i < 0 || i >= len(n.edges) {
		return nil, &MissingEdgeError{NodeId: nodeId.Int(), ActionId: i}
	}
	return n.edges[i], nil
}

// EdgeCount returns how many action edges the named node has (0 for a
// terminal node, or a non-terminal node whose edges have not been
// initialized yet).
func (a *Arena) EdgeCount(nodeId ids.NodeId) (int, error) {
	n, err := a.get(nodeId)
	if err != nil {
		return 0, err
	}
	return len(n.edges), nil
}

// FindOutcome returns the outcome recorded on the named edge for
// nextStateKey, if one has been observed.
func (a *Arena) FindOutcome(nodeId ids.NodeId, actionId ids.ActionId, nextStateKey ids.StateKey) (OutcomeView, bool, error) {
	e, err := a.edge(nodeId, actionId)
	if err != nil {
		return OutcomeView{}, false, err
	}
	for _, o := range e.outcomes {
		if o.nextStateKey == nextStateKey {
			return outcomeView(o), true, nil
		}
	}
	return OutcomeView{}, false, nil
}

// AppendOutcome records a newly observed successor state key on the named
// edge, with count 0. The caller must have already checked (via
// FindOutcome) that no outcome for this state key exists.
func (a *Arena) AppendOutcome(nodeId ids.NodeId, actionId ids.ActionId, nextStateKey ids.StateKey, childNodeId ids.NodeId) error {
	e, err := a.edge(nodeId, actionId)
	if err != nil {
		return err
	}
	e.outcomes = append(e.outcomes, &outcome{
		nextStateKey: nextStateKey,
		childNodeId:  childNodeId,
	})
	return nil
}

// Backup increments the named edge's visit count and adds totalReturn to
// its value sum, and increments the count of the outcome whose
// child_node_id equals childNodeId. It implements the per-level update in
// spec.md §4.D phase (4).
func (a *Arena) Backup(nodeId ids.NodeId, actionId ids.ActionId, childNodeId ids.NodeId, totalReturn float64) error {
	e, err := a.edge(nodeId, actionId)
	if err != nil {
		return err
	}
	e.visits++
	e.valueSum += totalReturn
	for _, o := range e.outcomes {
		if o.childNodeId == childNodeId {
			o.count++
			return nil
		}
	}
	return &MissingEdgeError{NodeId: nodeId.Int(), ActionId: actionId.Int()}
}

// DiscardNode undoes a single AllocateNode+AppendOutcome pair: it removes
// the outcome that points to nodeId from (parentNodeId, actionId)'s edge,
// then removes nodeId itself. nodeId must be the arena's most recently
// allocated node — the arena is append-only otherwise, so discarding
// anything else would shift every later NodeId. This lets a caller roll
// back an expansion that a later phase of the same iteration failed to
// complete (spec.md §5, "the failing iteration is discarded").
func (a *Arena) DiscardNode(nodeId ids.NodeId, parentNodeId ids.NodeId, actionId ids.ActionId) error {
	last := len(a.nodes) - 1
	if nodeId.Int() != last {
		return &NotLastNodeError{NodeId: nodeId.Int(), LastNodeId: last}
	}

	e, err := a.edge(parentNodeId, actionId)
	if err != nil {
		return err
	}
	for i, o := range e.outcomes {
		if o.childNodeId == nodeId {
			e.outcomes = append(e.outcomes[:i], e.outcomes[i+1:]...)
			break
		}
	}

	a.nodes = a.nodes[:last]
	return nil
}

// Node returns a read-only view of the named node, including its edges and
// their outcomes.
func (a *Arena) Node(nodeId ids.NodeId) (NodeView, error) {
	n, err := a.get(nodeId)
	if err != nil {
		return NodeView{}, err
	}
	return nodeView(n), nil
}

// Nodes returns a read-only view of every node in the arena, in ascending
// NodeId order — the order the snapshot serializer walks the arena in.
func (a *Arena) Nodes() []NodeView {
	views := make([]NodeView, len(a.nodes))
	for i, n := range a.nodes {
		views[i] = nodeView(n)
	}
	return views
}
