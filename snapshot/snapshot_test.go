package snapshot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weavetree/core/ids"
	"github.com/weavetree/core/tree"
)

func buildSampleArena() *tree.Arena {
	a := tree.NewArena(ids.StateKey(0), false)
	_ = a.InitEdges(a.RootId(), 2)
	child := a.AllocateNode(ids.StateKey(1), 1, true, a.RootId(), ids.ActionId(0))
	_ = a.AppendOutcome(a.RootId(), ids.ActionId(0), ids.StateKey(1), child)
	_ = a.Backup(a.RootId(), ids.ActionId(0), child, 1.0)
	return a
}

func TestNewWalksArenaInAscendingOrder(t *testing.T) {
	a := buildSampleArena()
	s := New(a)

	require.Equal(t, SchemaVersion, s.SchemaVersion)
	require.Equal(t, 2, s.NodeCount)
	require.Len(t, s.Nodes, 2)
	require.Equal(t, ids.NodeId(0), s.Nodes[0].NodeId)
	require.Equal(t, ids.NodeId(1), s.Nodes[1].NodeId)
	require.Nil(t, s.Nodes[0].ParentNodeId)
	require.NotNil(t, s.Nodes[1].ParentNodeId)
	require.Equal(t, ids.NodeId(0), *s.Nodes[1].ParentNodeId)
	require.Equal(t, 1.0, s.Nodes[0].Edges[0].Q)
}

func TestJSONFieldNamesMatchSchema(t *testing.T) {
	a := buildSampleArena()
	s := New(a)

	var buf bytes.Buffer
	require.NoError(t, s.WriteJSON(&buf))

	body := buf.String()
	for _, key := range []string{
		`"schema_version"`, `"root_node_id"`, `"node_count"`, `"nodes"`,
		`"node_id"`, `"state_key"`, `"depth"`, `"is_terminal"`,
		`"parent_node_id"`, `"parent_action_id"`, `"edges"`,
		`"action_id"`, `"visits"`, `"value_sum"`, `"q"`, `"outcomes"`,
		`"next_state_key"`, `"child_node_id"`, `"count"`,
	} {
		require.Contains(t, body, key)
	}
}

func TestPrettyUsesTwoSpaceIndent(t *testing.T) {
	a := buildSampleArena()
	s := New(a)

	pretty, err := s.Pretty()
	require.NoError(t, err)
	require.Contains(t, pretty, "\n  \"root_node_id\"")
}

func TestParseRoundTrips(t *testing.T) {
	a := buildSampleArena()
	s := New(a)

	var buf bytes.Buffer
	require.NoError(t, s.WriteJSON(&buf))

	parsed, err := Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, s, parsed)
}
