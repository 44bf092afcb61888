package validation

import (
	"strings"

	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/stringutil"
)

var resolverLog = logger.New("validation:resolver")

// variableKind is what a template variable turned out to refer to.
type variableKind int

const (
	kindTurn variableKind = iota
	kindLibrary
	kindDataStore
	kindAgent
)

// resolution is the outcome of resolving one variable path.
type resolution struct {
	kind variableKind
	ok   bool
	// referenced is the agent reference or "datastore" the path points at.
	referenced string
	// field is the missing field when the agent exists but the field does not.
	field string
}

// resolveVariable classifies path and decides whether it resolves. The
// checks run in a fixed order: turn variables, the variable library, data
// store fields, then connected agents by sanitized name.
func resolveVariable(ctx *Context, path string, inHistory bool) resolution {
	root, rest, hasRest := strings.Cut(path, ".")

	if root == constants.TurnVariableRoot {
		return resolution{kind: kindTurn, ok: inHistory, referenced: root}
	}

	if ctx.Library != nil && ctx.Library.Resolve(path) {
		return resolution{kind: kindLibrary, ok: true, referenced: root}
	}

	if field, ok := ctx.dataStoreSchemaField(root); ok {
		imported := ctx.importedDataStoreFields()[field.ID]
		if !imported {
			resolverLog.Printf("Data store field %s is not imported by any connected node", root)
		}
		return resolution{kind: kindDataStore, ok: imported, referenced: constants.DataStoreReference}
	}

	agent := ctx.connectedAgentByReference(root)
	if agent == nil {
		resolverLog.Printf("No connected agent named %s", root)
		return resolution{kind: kindAgent, referenced: root}
	}
	if !hasRest {
		return resolution{kind: kindAgent, ok: true, referenced: root}
	}

	if agent.EnabledStructuredOutput {
		field := stringutil.RootSegment(rest)
		if agent.HasSchemaField(field) {
			return resolution{kind: kindAgent, ok: true, referenced: root}
		}
		return resolution{kind: kindAgent, referenced: root, field: field}
	}

	if rest == constants.ResponseField {
		return resolution{kind: kindAgent, ok: true, referenced: root}
	}
	return resolution{kind: kindAgent, referenced: root, field: rest}
}
