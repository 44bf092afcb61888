//go:build !integration

package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubnext/flowlint/pkg/provider"
)

func TestRunProviders_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunProviders(&out, []provider.ID{provider.Anthropic, provider.OpenRouter}, true))

	var infos []ProviderInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.Len(t, infos, 2)

	anthropic := infos[0]
	assert.Equal(t, provider.Anthropic, anthropic.ID)
	assert.Equal(t, "supported", anthropic.StructuredOutput)
	assert.True(t, anthropic.ContiguousSystemMessages)
	assert.False(t, anthropic.UserMessageAfterSystem)

	var temperature *provider.ParameterSpec
	for i := range anthropic.Parameters {
		if anthropic.Parameters[i].ID == "temperature" {
			temperature = &anthropic.Parameters[i]
		}
	}
	require.NotNil(t, temperature)
	require.NotNil(t, temperature.Max)
	assert.InDelta(t, 1.0, *temperature.Max, 1e-9)

	assert.Equal(t, "unverifiable", infos[1].StructuredOutput)
}

func TestRunProviders_Text(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunProviders(&out, []provider.ID{provider.Google}, false))

	text := out.String()
	assert.Contains(t, text, "Google Gemini (google)")
	assert.Contains(t, text, "temperature")
	assert.Contains(t, text, "system messages must be contiguous")
	assert.Contains(t, text, "must be a user or history message")
}

func TestProviderArgs(t *testing.T) {
	ids, err := providerArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, provider.All(), ids)

	ids, err = providerArgs([]string{"mistral"})
	require.NoError(t, err)
	assert.Equal(t, []provider.ID{provider.Mistral}, ids)

	_, err = providerArgs([]string{"skynet"})
	assert.ErrorContains(t, err, `unknown provider "skynet"`)
}

func TestFormatBound(t *testing.T) {
	two, half := 2.0, 0.5
	assert.Equal(t, "-", formatBound(nil))
	assert.Equal(t, "2", formatBound(&two))
	assert.Equal(t, "0.5", formatBound(&half))
}
