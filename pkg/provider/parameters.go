package provider

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// ParameterType is the value type of a request parameter.
type ParameterType string

const (
	ParameterNumber      ParameterType = "number"
	ParameterInteger     ParameterType = "integer"
	ParameterString      ParameterType = "string"
	ParameterBoolean     ParameterType = "boolean"
	ParameterStringArray ParameterType = "stringArray"
)

// ParameterSpec describes a request parameter a provider accepts. Min and
// Max are inclusive and only apply to numeric parameters.
type ParameterSpec struct {
	ID          string        `json:"id"`
	Type        ParameterType `json:"type"`
	Min         *float64      `json:"min,omitempty"`
	Max         *float64      `json:"max,omitempty"`
	Description string        `json:"description,omitempty"`
}

// IsNumeric reports whether the parameter takes a number.
func (p ParameterSpec) IsNumeric() bool {
	return p.Type == ParameterNumber || p.Type == ParameterInteger
}

func bound(v float64) *float64 { return &v }

func number(id string, lo, hi *float64, desc string) ParameterSpec {
	return ParameterSpec{ID: id, Type: ParameterNumber, Min: lo, Max: hi, Description: desc}
}

func integer(id string, lo, hi *float64, desc string) ParameterSpec {
	return ParameterSpec{ID: id, Type: ParameterInteger, Min: lo, Max: hi, Description: desc}
}

var (
	maxTokens = integer("max_tokens", bound(1), nil, "Upper limit on generated tokens")
	seed      = integer("seed", nil, nil, "Seed for repeatable sampling")
	stop      = ParameterSpec{ID: "stop", Type: ParameterStringArray, Description: "Sequences that end generation"}
	topP      = number("top_p", bound(0), bound(1), "Nucleus sampling probability mass")
	freqPen   = number("frequency_penalty", bound(-2), bound(2), "Penalty for frequent tokens")
	presPen   = number("presence_penalty", bound(-2), bound(2), "Penalty for tokens already present")
	repPen    = number("repetition_penalty", bound(0), bound(2), "Penalty for repeated tokens")
	minP      = number("min_p", bound(0), bound(1), "Minimum token probability relative to the top token")
	topA      = number("top_a", bound(0), bound(1), "Dynamic top-k based on the top token probability")
)

var openAIParameters = []ParameterSpec{
	number("temperature", bound(0), bound(2), "Sampling temperature"),
	topP, maxTokens, freqPen, presPen, seed, stop,
}

// parameterTables lists the request parameters each provider accepts.
var parameterTables = map[ID][]ParameterSpec{
	OpenAI: openAIParameters,
	Anthropic: {
		number("temperature", bound(0), bound(1), "Sampling temperature"),
		topP,
		integer("top_k", bound(0), nil, "Sample from the k most likely tokens"),
		maxTokens, stop,
	},
	Google: {
		number("temperature", bound(0), bound(2), "Sampling temperature"),
		topP,
		integer("top_k", bound(1), nil, "Sample from the k most likely tokens"),
		maxTokens, freqPen, presPen, seed, stop,
	},
	Mistral: {
		number("temperature", bound(0), bound(1.5), "Sampling temperature"),
		topP, maxTokens, freqPen, presPen, seed, stop,
	},
	XAI: {
		number("temperature", bound(0), bound(2), "Sampling temperature"),
		topP, maxTokens, freqPen, presPen, seed, stop,
	},
	DeepSeek: {
		number("temperature", bound(0), bound(2), "Sampling temperature"),
		topP, maxTokens, freqPen, presPen, stop,
	},
	Cohere: {
		number("temperature", bound(0), bound(1), "Sampling temperature"),
		number("top_p", bound(0.01), bound(0.99), "Nucleus sampling probability mass"),
		integer("top_k", bound(0), bound(500), "Sample from the k most likely tokens"),
		maxTokens,
		number("frequency_penalty", bound(0), bound(1), "Penalty for frequent tokens"),
		number("presence_penalty", bound(0), bound(1), "Penalty for tokens already present"),
		seed, stop,
	},
	Perplexity: {
		number("temperature", bound(0), bound(2), "Sampling temperature"),
		topP,
		integer("top_k", bound(0), bound(2048), "Sample from the k most likely tokens"),
		maxTokens, presPen,
		number("frequency_penalty", bound(0), nil, "Penalty for frequent tokens"),
	},
	OpenRouter: {
		number("temperature", bound(0), bound(2), "Sampling temperature"),
		topP,
		integer("top_k", bound(0), nil, "Sample from the k most likely tokens"),
		maxTokens, freqPen, presPen, repPen, minP, topA, seed, stop,
	},
	OpenAICompatible: openAIParameters,
	Ollama: {
		number("temperature", bound(0), bound(2), "Sampling temperature"),
		topP,
		integer("top_k", bound(0), nil, "Sample from the k most likely tokens"),
		maxTokens, repPen, minP, seed, stop,
	},
}

// Parameters returns the parameter table of id, or nil for an unknown
// provider.
func Parameters(id ID) []ParameterSpec {
	return slices.Clone(parameterTables[id])
}

// LookupParameter finds parameter param in the table of id.
func LookupParameter(id ID, param string) (ParameterSpec, bool) {
	for _, spec := range parameterTables[id] {
		if spec.ID == param {
			return spec, true
		}
	}
	return ParameterSpec{}, false
}

// NumericValue converts a parameter value to float64. Numbers of any Go
// numeric type and numeric strings convert; anything else does not.
func NumericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
