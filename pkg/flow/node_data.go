package flow

import (
	"encoding/json"

	"github.com/githubnext/flowlint/pkg/logger"
)

var nodeDataLog = logger.New("flow:node_data")

// DecodeNodeData converts a node's loosely typed data payload into the
// variant for typ. Payloads that do not fit the variant, and unknown node
// types, become UnknownData so callers can still see the raw map.
func DecodeNodeData(typ NodeType, raw map[string]any) NodeData {
	switch typ {
	case NodeTypeStart:
		return StartData{}
	case NodeTypeEnd:
		return EndData{}
	case NodeTypeAgent:
		var d AgentData
		if decodeInto(raw, &d) {
			return d
		}
	case NodeTypeIf:
		var d IfData
		if decodeInto(raw, &d) {
			return d
		}
	case NodeTypeDataStore:
		var d DataStoreData
		if decodeInto(raw, &d) {
			return d
		}
	default:
		nodeDataLog.Printf("Unknown node type %q, keeping raw data", typ)
	}
	return UnknownData{Raw: raw}
}

func decodeInto(raw map[string]any, target any) bool {
	if raw == nil {
		raw = map[string]any{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		nodeDataLog.Printf("Failed to re-encode node data: %v", err)
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		nodeDataLog.Printf("Node data does not match %T: %v", target, err)
		return false
	}
	return true
}
