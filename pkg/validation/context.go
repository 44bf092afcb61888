package validation

import (
	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/provider"
	"github.com/githubnext/flowlint/pkg/stringutil"
	"github.com/githubnext/flowlint/pkg/varlib"
)

var contextLog = logger.New("validation:context")

// Context is everything a rule may look at. It is built once per run and
// never modified by rules, so rules can run concurrently.
type Context struct {
	Flow            *flow.Flow
	Agents          map[string]*flow.Agent
	ConnectedAgents map[string]bool
	ConnectedNodes  map[string]bool
	Connections     []provider.Connection
	Library         *varlib.Library
}

// NewContext builds a Context for f and agents, computing which nodes and
// agents are connected to the start node. A nil library means the built-in
// variable library.
func NewContext(f *flow.Flow, agents []flow.Agent, connections []provider.Connection, library *varlib.Library) *Context {
	if f == nil {
		f = &flow.Flow{}
	}
	if library == nil {
		library = varlib.Default()
	}

	byID := make(map[string]*flow.Agent, len(agents))
	for i := range agents {
		a := &agents[i]
		if _, dup := byID[a.ID]; dup {
			contextLog.Printf("Duplicate agent id %s, keeping the first", a.ID)
			continue
		}
		byID[a.ID] = a
	}

	nodes, connected := flow.Connectivity(f)
	contextLog.Printf("Context: %d nodes (%d connected), %d agents (%d connected)",
		len(f.Nodes), len(nodes), len(byID), len(connected))

	return &Context{
		Flow:            f,
		Agents:          byID,
		ConnectedAgents: connected,
		ConnectedNodes:  nodes,
		Connections:     connections,
		Library:         library,
	}
}

// connectedAgentList returns the connected agents in the order their nodes
// appear in the flow, each once. Agents referenced by a node but missing from
// Agents are skipped.
func (c *Context) connectedAgentList() []*flow.Agent {
	if c == nil || c.Flow == nil {
		return nil
	}
	var out []*flow.Agent
	seen := map[string]bool{}
	for _, n := range c.Flow.Nodes {
		if !c.ConnectedNodes[n.ID] {
			continue
		}
		d, ok := n.Data.(flow.AgentData)
		if !ok || seen[d.AgentID] || !c.ConnectedAgents[d.AgentID] {
			continue
		}
		seen[d.AgentID] = true
		if a, ok := c.Agents[d.AgentID]; ok && a != nil {
			out = append(out, a)
		}
	}
	return out
}

// connectedNodeList returns the connected nodes in flow order.
func (c *Context) connectedNodeList() []flow.Node {
	if c == nil || c.Flow == nil {
		return nil
	}
	var out []flow.Node
	for _, n := range c.Flow.Nodes {
		if c.ConnectedNodes[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// connectedAgentByReference finds the connected agent whose sanitized name
// is ref.
func (c *Context) connectedAgentByReference(ref string) *flow.Agent {
	for _, a := range c.connectedAgentList() {
		if stringutil.SanitizeIdentifier(a.Name) == ref {
			return a
		}
	}
	return nil
}

// dataStoreSchemaField returns the declared data store field called name.
func (c *Context) dataStoreSchemaField(name string) (flow.DataStoreField, bool) {
	if c == nil || c.Flow == nil || c.Flow.DataStoreSchema == nil {
		return flow.DataStoreField{}, false
	}
	for _, f := range c.Flow.DataStoreSchema.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return flow.DataStoreField{}, false
}

// importedDataStoreFields returns the schema field ids configured in at
// least one connected data store node.
func (c *Context) importedDataStoreFields() map[string]bool {
	imported := map[string]bool{}
	for _, n := range c.connectedNodeList() {
		d, ok := n.Data.(flow.DataStoreData)
		if !ok {
			continue
		}
		for _, f := range d.DataStoreFields {
			if f.SchemaFieldID != "" {
				imported[f.SchemaFieldID] = true
			}
		}
	}
	return imported
}

// providerFor resolves the provider of a's model through the context's
// connections.
func (c *Context) providerFor(a *flow.Agent) (provider.ID, bool) {
	if a == nil {
		return "", false
	}
	return provider.ProviderForModel(a.ModelName, c.Connections)
}
