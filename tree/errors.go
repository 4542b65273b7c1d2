package tree

import "fmt"

// MissingNodeError reports a reference to a NodeId that does not exist in
// the arena. It should be unreachable in a correctly driven search; callers
// that observe it have an invariant violation upstream.
type MissingNodeError struct {
	NodeId int
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("tree: missing node %d", e.NodeId)
}

// MissingEdgeError reports a reference to an ActionId that has no
// corresponding edge on the named node.
type MissingEdgeError struct {
	NodeId   int
	ActionId int
}

func (e *MissingEdgeError) Error() string {
	return fmt.Sprintf("tree: node %d has no edge for action %d", e.NodeId, e.ActionId)
}

// EdgesAlreadyInitializedError reports an attempt to append action edges to
// a node that already has edges. Edges are appended exactly once, when a
// node's action count is first discovered.
type EdgesAlreadyInitializedError struct {
	NodeId int
}

func (e *EdgesAlreadyInitializedError) Error() string {
	return fmt.Sprintf("tree: node %d already has edges", e.NodeId)
}

// NotLastNodeError reports an attempt to discard a node other than the most
// recently allocated one. DiscardNode only ever undoes the expansion a
// caller just performed, so it can only ever be the arena's last node.
type NotLastNodeError struct {
	NodeId     int
	LastNodeId int
}

func (e *NotLastNodeError) Error() string {
	return fmt.Sprintf("tree: node %d is not the last allocated node (%d)", e.NodeId, e.LastNodeId)
}
