//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/varlib"
)

func TestNewContext(t *testing.T) {
	f := withOrphans(chainFlow(agentNode("b"), agentNode("a")), agentNode("orphan"))
	ctx := newTestContext(f,
		agent("a", "First A"),
		agent("a", "Second A"),
		agent("b", "B"),
		agent("orphan", "Orphan"),
	)

	assert.Equal(t, "First A", ctx.Agents["a"].Name, "duplicate ids keep the first agent")
	assert.Equal(t, map[string]bool{"a": true, "b": true}, ctx.ConnectedAgents)
	assert.Same(t, varlib.Default(), ctx.Library)

	var order []string
	for _, a := range ctx.connectedAgentList() {
		order = append(order, a.ID)
	}
	assert.Equal(t, []string{"b", "a"}, order, "connected agents follow node order")
}

func TestNewContext_NilFlow(t *testing.T) {
	ctx := NewContext(nil, nil, nil, nil)
	require.NotNil(t, ctx.Flow)
	assert.Empty(t, ctx.connectedAgentList())
	assert.Len(t, Validate(ctx), 1, "an empty flow only reports its structure")
}

func TestContext_ConnectedAgentByReference(t *testing.T) {
	ctx := newTestContext(chainFlow(agentNode("a1")), agent("a1", "Scene Analyzer!"), agent("a2", "Writer"))

	got := ctx.connectedAgentByReference("scene_analyzer")
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.ID)
	assert.Nil(t, ctx.connectedAgentByReference("writer"), "unconnected agents are not referenceable")
}

func TestContext_ImportedDataStoreFields(t *testing.T) {
	f := chainFlow(dataStoreNode("ds", flow.DataStoreNodeField{SchemaFieldID: "f1"}, flow.DataStoreNodeField{}))
	withOrphans(f, dataStoreNode("ds2", flow.DataStoreNodeField{SchemaFieldID: "f2"}))

	assert.Equal(t, map[string]bool{"f1": true}, newTestContext(f).importedDataStoreFields())
}
