//go:build !integration

package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubnext/flowlint/pkg/varlib"
)

func TestRunVariables_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunVariables(&out, varlib.Default(), []string{"cast"}, true))

	var infos []VariableInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, "cast", infos[0].Path)
	assert.Equal(t, "cast.active", infos[1].Path)
	assert.True(t, infos[1].Open)
	assert.Equal(t, "cast.all", infos[3].Path)
}

func TestRunVariables_AllRoots(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunVariables(&out, varlib.Default(), nil, false))

	text := out.String()
	assert.Contains(t, text, "System variables")
	assert.Contains(t, text, "user.name")
	assert.Contains(t, text, "history.*")
	assert.Contains(t, text, "random.choice.*")
}

func TestRunVariables_ConfigVariables(t *testing.T) {
	lib, err := varlib.Default().With(&varlib.Variable{
		Name:        "weather",
		Description: "Forecast for the scene",
		Children:    []*varlib.Variable{{Name: "summary"}},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, RunVariables(&out, lib, []string{"weather"}, false))
	assert.Contains(t, out.String(), "weather.summary")
	assert.Contains(t, out.String(), "Forecast for the scene")
}

func TestRunVariables_UnknownName(t *testing.T) {
	var out bytes.Buffer
	err := RunVariables(&out, varlib.Default(), []string{"nope"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown variable "nope"`)
}

func TestNewVariablesCommand(t *testing.T) {
	cmd := NewVariablesCommand()
	assert.Equal(t, "variables", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("json"))
	assert.NotNil(t, cmd.Flags().Lookup("config"))
}
