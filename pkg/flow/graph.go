package flow

import "github.com/githubnext/flowlint/pkg/logger"

var graphLog = logger.New("flow:graph")

// StartNode returns the first node of type start.
func StartNode(f *Flow) (Node, bool) {
	if f == nil {
		return Node{}, false
	}
	for _, n := range f.Nodes {
		if n.Type == NodeTypeStart {
			return n, true
		}
	}
	return Node{}, false
}

// EndNodes returns every node of type end, in declaration order.
func EndNodes(f *Flow) []Node {
	if f == nil {
		return nil
	}
	var out []Node
	for _, n := range f.Nodes {
		if n.Type == NodeTypeEnd {
			out = append(out, n)
		}
	}
	return out
}

// ReachableNodes returns the ids of the nodes reachable from startID by
// following edges forward, startID included. Every outgoing edge is
// followed, so both branches of an if node count as reachable. Edges that
// point at nodes missing from the flow are ignored.
func ReachableNodes(f *Flow, startID string) map[string]bool {
	reachable := make(map[string]bool)
	if f == nil || startID == "" {
		return reachable
	}

	known := make(map[string]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		known[n.ID] = true
	}
	if !known[startID] {
		return reachable
	}

	adjacency := make(map[string][]string, len(f.Nodes))
	for _, e := range f.Edges {
		if known[e.Source] && known[e.Target] {
			adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		}
	}

	// BFS from start
	queue := []string{startID}
	reachable[startID] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, target := range adjacency[current] {
			if !reachable[target] {
				reachable[target] = true
				queue = append(queue, target)
			}
		}
	}

	graphLog.Printf("%d of %d nodes reachable from %s", len(reachable), len(f.Nodes), startID)
	return reachable
}

// HasValidFlow reports whether the flow has a start node and at least one
// end node reachable from it.
func HasValidFlow(f *Flow) bool {
	start, ok := StartNode(f)
	if !ok {
		graphLog.Print("No start node")
		return false
	}

	reachable := ReachableNodes(f, start.ID)
	for _, end := range EndNodes(f) {
		if reachable[end.ID] {
			return true
		}
	}
	graphLog.Print("No end node reachable from start")
	return false
}

// ConnectedAgents returns the agent ids referenced by agent nodes in reachable.
func ConnectedAgents(f *Flow, reachable map[string]bool) map[string]bool {
	agents := make(map[string]bool)
	if f == nil {
		return agents
	}
	for _, n := range f.Nodes {
		if !reachable[n.ID] {
			continue
		}
		if d, ok := n.Data.(AgentData); ok && d.AgentID != "" {
			agents[d.AgentID] = true
		}
	}
	return agents
}

// Connectivity computes the connected node and agent sets from the start
// node. A flow without a start node has nothing connected.
func Connectivity(f *Flow) (nodes, agents map[string]bool) {
	start, ok := StartNode(f)
	if !ok {
		return map[string]bool{}, map[string]bool{}
	}
	nodes = ReachableNodes(f, start.ID)
	return nodes, ConnectedAgents(f, nodes)
}
