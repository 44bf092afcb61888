//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubnext/flowlint/pkg/flow"
)

func TestValidateFlowStructure(t *testing.T) {
	tests := []struct {
		name      string
		flow      *flow.Flow
		wantIssue bool
	}{
		{name: "start to end", flow: chainFlow(agentNode("a1")), wantIssue: false},
		{name: "start straight to end", flow: chainFlow(), wantIssue: false},
		{
			name: "end not connected",
			flow: func() *flow.Flow {
				f := chainFlow(agentNode("a1"))
				f.Edges = f.Edges[:1]
				return f
			}(),
			wantIssue: true,
		},
		{
			name:      "no start node",
			flow:      &flow.Flow{Nodes: []flow.Node{{ID: "end", Type: flow.NodeTypeEnd}}},
			wantIssue: true,
		},
		{name: "empty flow", flow: &flow.Flow{}, wantIssue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := validateFlowStructure(newTestContext(tt.flow))
			if !tt.wantIssue {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, CodeInvalidFlowStructure, issues[0].Code)
			assert.Equal(t, SeverityError, issues[0].Severity)
			assert.Equal(t, "INVALID_FLOW_STRUCTURE:flow", issues[0].ID)
			assert.Empty(t, issues[0].Metadata)
		})
	}
}

func TestValidate_BrokenFlowHasExactlyOneStructureIssue(t *testing.T) {
	f := chainFlow(agentNode("a1"))
	f.Edges = nil

	issues := Validate(newTestContext(f, agent("a1", "Narrator", message(flow.RoleSystem, "Hi"))))
	structural := issuesWithCode(issues, CodeInvalidFlowStructure)
	require.Len(t, structural, 1)
	assert.Equal(t, SeverityError, structural[0].Severity)
}
