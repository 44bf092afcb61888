// Package validation inspects a prompt flow and reports the problems it
// would hit at run time, without running it.
//
// # Validation Architecture
//
// Every rule is a pure function from a read-only Context to a list of
// issues. Rules are organized into focused, domain-specific files:
//
//   - validation.go: This file - package documentation only
//   - issue.go: Issue, issue codes and their fixed severities
//   - context.go: Context and the connected-agent/node lookups rules share
//   - templates.go: Collects every template a connected agent or node carries
//   - resolver.go: Classifies a template variable and decides if it resolves
//   - flow_structure_validation.go: Start-to-end reachability
//   - message_structure_validation.go: Provider message-ordering rules and history usage
//   - variable_validation.go: Undefined and turn-scoped template variables
//   - unused_variable_validation.go: Structured-output and data store fields nobody reads
//   - syntax_validation.go: Templates the renderer rejects
//   - provider_validation.go: Structured output support and parameter ranges
//   - datastore_validation.go: Data store initial values
//   - orchestrator.go: Registry of rules and the concurrent runner
//   - suppress.go: Drops ignored codes and issues matched by suppression rules
//
// # Connectedness
//
// Only agents and nodes reachable from the start node are checked by the
// agent and template rules. Disconnected nodes are dead code and silently
// ignored. The connected sets are computed once when the Context is built.
//
// # When to Add Validation Here
//
// Add a rule to an existing file when it fits that file's domain. Create a
// new *_validation.go file, and register the rule in orchestrator.go, when it
// is a distinct concern with its own issue codes.
package validation
