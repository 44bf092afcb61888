// This file provides validation of agent settings against their provider.
//
// # Provider Validation
//
// The provider of an agent is resolved from its model name, first through
// the configured connections and then from a "provider/model" prefix.
// Agents whose provider cannot be resolved are skipped.
//
// # Validation Functions
//
//   - validateStructuredOutputSupport() - Structured output on a provider without support
//   - validateProviderParameters() - Enabled parameters the provider lacks or values out of range
//
// Providers that proxy other vendors (OpenRouter, OpenAI-compatible
// endpoints, Ollama) may or may not support structured output depending on
// the model. That case reports nothing.

package validation

import (
	"fmt"
	"slices"

	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/provider"
)

var providerValidationLog = logger.New("validation:provider_validation")

// validateStructuredOutputSupport warns about connected agents that enable
// structured output on a provider that does not support it.
func validateStructuredOutputSupport(ctx *Context) []Issue {
	var issues []Issue
	for _, a := range ctx.connectedAgentList() {
		if !a.EnabledStructuredOutput {
			continue
		}
		id, ok := ctx.providerFor(a)
		if !ok {
			continue
		}

		switch provider.StructuredOutputSupport(id) {
		case provider.Supported:
			continue
		case provider.Unverifiable:
			providerValidationLog.Printf("Agent %s: structured output on %s cannot be verified", a.ID, id)
			continue
		case provider.Unsupported:
		}

		issue := newIssue(CodeUnsupportedParameters, ownerAgent, a.ID, "structuredOutput")
		issue.Title = "Structured output not supported"
		issue.Description = fmt.Sprintf("%q enables structured output, but %s does not support it. The response will be free text.", a.Name, id.DisplayName())
		issue.Suggestion = "Disable structured output for this agent or pick a model from a provider that supports it."
		issue.AgentID, issue.AgentName = a.ID, a.Name
		issue.Metadata = map[string]any{
			"provider": string(id),
			"feature":  "structuredOutput",
			"model":    a.ModelName,
		}
		issues = append(issues, issue)
	}
	return issues
}

// validateProviderParameters checks every enabled parameter of a connected
// agent against its provider's parameter table.
func validateProviderParameters(ctx *Context) []Issue {
	var issues []Issue
	for _, a := range ctx.connectedAgentList() {
		id, ok := ctx.providerFor(a)
		if !ok {
			continue
		}

		for _, param := range enabledParameters(a.EnabledParameters) {
			value, defined := a.ParameterValues[param]
			if !defined || value == nil {
				continue
			}

			spec, known := provider.LookupParameter(id, param)
			if !known {
				if a.ModelName == "" {
					continue
				}
				providerValidationLog.Printf("Agent %s: %s has no parameter %s", a.ID, id, param)
				issue := newIssue(CodeUndefinedProviderParameter, ownerAgent, a.ID, param)
				issue.Title = "Unsupported parameter"
				issue.Description = fmt.Sprintf("%q sets %s, which %s does not accept for %s.", a.Name, param, id.DisplayName(), a.ModelName)
				issue.Suggestion = "Disable the parameter for this agent."
				issue.AgentID, issue.AgentName = a.ID, a.Name
				issue.Metadata = map[string]any{
					"provider":  string(id),
					"parameter": param,
					"model":     a.ModelName,
				}
				issues = append(issues, issue)
				continue
			}

			if !spec.IsNumeric() {
				continue
			}
			n, ok := provider.NumericValue(value)
			if !ok {
				continue
			}
			if spec.Min != nil && n < *spec.Min {
				issues = append(issues, outOfRangeIssue(a.ID, a.Name, id, spec, n, "min"))
			}
			if spec.Max != nil && n > *spec.Max {
				issues = append(issues, outOfRangeIssue(a.ID, a.Name, id, spec, n, "max"))
			}
		}
	}
	return issues
}

// enabledParameters returns the enabled parameter ids, sorted.
func enabledParameters(enabled map[string]bool) []string {
	var out []string
	for param, on := range enabled {
		if on {
			out = append(out, param)
		}
	}
	slices.Sort(out)
	return out
}

func outOfRangeIssue(agentID, agentName string, id provider.ID, spec provider.ParameterSpec, value float64, violated string) Issue {
	providerValidationLog.Printf("Agent %s: %s=%v violates %s", agentID, spec.ID, value, violated)

	issue := newIssue(CodeParameterOutOfRange, ownerAgent, agentID, spec.ID, violated)
	issue.Title = "Parameter out of range"
	issue.Description = fmt.Sprintf("%q sets %s to %v, but %s accepts %s.", agentName, spec.ID, value, id.DisplayName(), describeRange(spec))
	issue.Suggestion = fmt.Sprintf("Set %s to a value in %s.", spec.ID, describeRange(spec))
	issue.AgentID, issue.AgentName = agentID, agentName
	issue.Metadata = map[string]any{
		"provider":  string(id),
		"parameter": spec.ID,
		"value":     value,
		"min":       boundValue(spec.Min),
		"max":       boundValue(spec.Max),
	}
	return issue
}

func boundValue(b *float64) any {
	if b == nil {
		return nil
	}
	return *b
}

func describeRange(spec provider.ParameterSpec) string {
	switch {
	case spec.Min != nil && spec.Max != nil:
		return fmt.Sprintf("values from %v to %v", *spec.Min, *spec.Max)
	case spec.Min != nil:
		return fmt.Sprintf("values of at least %v", *spec.Min)
	case spec.Max != nil:
		return fmt.Sprintf("values of at most %v", *spec.Max)
	default:
		return "any value"
	}
}
