// Package ids defines the opaque identifier types shared across weavetree's
// core packages: node identifiers, action identifiers, and environment state
// keys. Keeping them as distinct types (rather than bare ints) prevents a
// NodeId from being passed where an ActionId is expected, at zero runtime
// cost.
package ids

// NodeId identifies a node within one search tree, assigned in creation
// order starting at 0 for the root.
type NodeId int

// Int returns the underlying index.
func (n NodeId) Int() int { return int(n) }

// ActionId identifies an action index at a given node, dense in
// [0, num_actions(state)).
type ActionId int

// Int returns the underlying index.
func (a ActionId) Int() int { return int(a) }

// StateKey is an opaque identifier supplied by the environment that
// uniquely identifies a state for the purposes of chance-node grouping.
type StateKey uint64

// Uint64 returns the underlying value.
func (s StateKey) Uint64() uint64 { return uint64(s) }
