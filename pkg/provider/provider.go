// Package provider holds static knowledge about LLM providers: which
// provider serves a model, what request parameters each provider accepts and
// which capabilities it has.
package provider

import (
	"fmt"
	"slices"
	"strings"

	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/sliceutil"
)

var providerLog = logger.New("provider:provider")

// ID identifies an LLM provider API surface.
type ID string

const (
	OpenAI           ID = "openai"
	Anthropic        ID = "anthropic"
	Google           ID = "google"
	Mistral          ID = "mistral"
	XAI              ID = "xai"
	DeepSeek         ID = "deepseek"
	Cohere           ID = "cohere"
	Perplexity       ID = "perplexity"
	OpenRouter       ID = "openrouter"
	OpenAICompatible ID = "openai_compatible"
	Ollama           ID = "ollama"
)

var allProviders = []ID{
	OpenAI, Anthropic, Google, Mistral, XAI, DeepSeek,
	Cohere, Perplexity, OpenRouter, OpenAICompatible, Ollama,
}

var displayNames = map[ID]string{
	OpenAI:           "OpenAI",
	Anthropic:        "Anthropic",
	Google:           "Google Gemini",
	Mistral:          "Mistral",
	XAI:              "xAI",
	DeepSeek:         "DeepSeek",
	Cohere:           "Cohere",
	Perplexity:       "Perplexity",
	OpenRouter:       "OpenRouter",
	OpenAICompatible: "OpenAI-compatible",
	Ollama:           "Ollama",
}

// All returns every known provider in a stable order.
func All() []ID {
	return slices.Clone(allProviders)
}

// Known reports whether id is one of the providers listed by All.
func (id ID) Known() bool {
	return slices.Contains(allProviders, id)
}

// DisplayName returns a human-readable provider name.
func (id ID) DisplayName() string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return string(id)
}

// Connection is a configured API connection and the models it serves.
type Connection struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Provider ID       `yaml:"provider" json:"provider"`
	Models   []string `yaml:"models,omitempty" json:"models,omitempty"`
}

// ParseModelID splits a "provider/model" id.
func ParseModelID(modelID string) (ID, string, error) {
	parts := strings.SplitN(modelID, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid model ID %q: expected format 'provider/model'", modelID)
	}
	return ID(strings.ToLower(parts[0])), parts[1], nil
}

// ProviderForModel finds the provider serving modelName. Connections are
// searched first, in order, for one listing the model. Failing that, a
// "provider/model" name with a known provider prefix resolves to that
// provider. No other guessing is done.
func ProviderForModel(modelName string, connections []Connection) (ID, bool) {
	if modelName == "" {
		return "", false
	}

	for _, conn := range connections {
		if sliceutil.Contains(conn.Models, modelName) {
			providerLog.Printf("Model %s served by connection %s (%s)", modelName, conn.ID, conn.Provider)
			return conn.Provider, true
		}
	}

	if id, _, err := ParseModelID(modelName); err == nil && id.Known() {
		providerLog.Printf("Model %s resolved by prefix to %s", modelName, id)
		return id, true
	}

	providerLog.Printf("No provider for model %s", modelName)
	return "", false
}
