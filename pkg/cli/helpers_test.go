//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const cleanFlow = `version: v1.0.0
flow:
  nodes:
    - {id: start, type: start}
    - {id: n1, type: agent, data: {agentId: a1}}
    - {id: end, type: end}
  edges:
    - {source: start, target: n1}
    - {source: n1, target: end}
  responseTemplate: "{{ narrator.response }}"
agents:
  - id: a1
    name: Narrator
    modelName: openai/gpt-4o
    promptMessages:
      - role: system
        promptBlocks: [{template: "Tell the story of {{ user.name }}."}]
      - type: history
        promptBlocks: [{template: "{{ turn.content }}"}]
`

// warningFlow has no history message, which is only a warning.
const warningFlow = `version: v1.0.0
flow:
  nodes:
    - {id: start, type: start}
    - {id: n1, type: agent, data: {agentId: a1}}
    - {id: end, type: end}
  edges:
    - {source: start, target: n1}
    - {source: n1, target: end}
agents:
  - id: a1
    name: Narrator
    promptMessages:
      - role: system
        promptBlocks: [{template: "Hello"}]
`

// brokenFlow never reaches its end node and reads an undefined variable.
const brokenFlow = `version: v1.0.0
flow:
  nodes:
    - {id: start, type: start}
    - {id: n1, type: agent, data: {agentId: a1}}
    - {id: end, type: end}
  edges:
    - {source: start, target: n1}
agents:
  - id: a1
    name: Narrator
    promptMessages:
      - type: history
        promptBlocks: [{template: "{{ ghost.response }}"}]
`

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// inTempDir runs the test from an empty directory so no stray config file
// is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
