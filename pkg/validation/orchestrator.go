package validation

import (
	"fmt"

	"github.com/sourcegraph/conc/iter"

	"github.com/githubnext/flowlint/pkg/logger"
)

var orchestratorLog = logger.New("validation:orchestrator")

// Rule is a named validation function.
type Rule struct {
	Name string
	Run  func(*Context) []Issue
}

// Registry holds rules in registration order.
type Registry struct {
	rules       []Rule
	maxParallel int
}

// NewRegistry creates a registry holding rules.
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// DefaultRegistry returns a registry with every built-in rule.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Rule{Name: "flow-structure", Run: validateFlowStructure},
		Rule{Name: "system-message-contiguity", Run: validateSystemMessageContiguity},
		Rule{Name: "message-after-system", Run: validateMessageAfterSystem},
		Rule{Name: "history-usage", Run: validateHistoryUsage},
		Rule{Name: "variables", Run: validateVariables},
		Rule{Name: "unused-output-variables", Run: validateUnusedOutputVariables},
		Rule{Name: "unused-data-store-fields", Run: validateUnusedDataStoreFields},
		Rule{Name: "template-syntax", Run: validateTemplateSyntax},
		Rule{Name: "structured-output-support", Run: validateStructuredOutputSupport},
		Rule{Name: "provider-parameters", Run: validateProviderParameters},
		Rule{Name: "data-store-schema", Run: validateDataStoreSchema},
	)
}

// Register appends a rule.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// SetMaxParallel limits how many rules run at once. Zero or less means one
// goroutine per CPU.
func (r *Registry) SetMaxParallel(n int) {
	r.maxParallel = n
}

// Rules returns the registered rule names in order.
func (r *Registry) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Run executes every rule against ctx concurrently and concatenates their
// issues in registration order, so the result matches a sequential run.
// Later issues with an id already seen are dropped. A rule that panics
// contributes no issues.
func (r *Registry) Run(ctx *Context) []Issue {
	if ctx == nil {
		return nil
	}

	mapper := iter.Mapper[Rule, []Issue]{MaxGoroutines: r.maxParallel}
	results := mapper.Map(r.rules, func(rule *Rule) []Issue {
		return runRule(*rule, ctx)
	})

	var issues []Issue
	for _, res := range results {
		issues = append(issues, res...)
	}
	issues = Deduplicate(issues)
	orchestratorLog.Printf("Ran %d rules: %d issues", len(r.rules), len(issues))
	return issues
}

func runRule(rule Rule, ctx *Context) (issues []Issue) {
	defer func() {
		if p := recover(); p != nil {
			orchestratorLog.Printf("Rule %s panicked: %s", rule.Name, fmt.Sprint(p))
			issues = nil
		}
	}()
	return rule.Run(ctx)
}

// Validate runs every built-in rule against ctx.
func Validate(ctx *Context) []Issue {
	return DefaultRegistry().Run(ctx)
}
