package validation

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/githubnext/flowlint/pkg/logger"
)

var suppressLog = logger.New("validation:suppress")

// Filter drops issues by code and by suppression rules. A suppression rule
// is an expression evaluated against each issue, for example:
//
//	code == "UNUSED_OUTPUT_VARIABLE" && agentName == "Narrator"
//	severity == "warning" && metadata.provider == "ollama"
//
// The variables available are code, severity, id, title, agentId, agentName
// and metadata.
type Filter struct {
	ignore map[Code]bool
	rules  []suppressRule
}

type suppressRule struct {
	source  string
	program *vm.Program
}

// NewFilter compiles the suppression rules. Unknown codes in ignore are
// accepted and simply never match.
func NewFilter(ignore []string, suppress []string) (*Filter, error) {
	f := &Filter{ignore: make(map[Code]bool, len(ignore))}
	for _, code := range ignore {
		f.ignore[Code(code)] = true
	}

	for _, src := range suppress {
		program, err := expr.Compile(src, expr.Env(issueEnv(Issue{})), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("invalid suppression rule %q: %w", src, err)
		}
		f.rules = append(f.rules, suppressRule{source: src, program: program})
	}
	return f, nil
}

// Apply returns the issues that are neither ignored nor suppressed. A rule
// that fails to evaluate for an issue does not suppress it.
func (f *Filter) Apply(issues []Issue) []Issue {
	if f == nil || (len(f.ignore) == 0 && len(f.rules) == 0) {
		return issues
	}

	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if f.ignore[issue.Code] {
			suppressLog.Printf("Ignoring %s", issue.ID)
			continue
		}
		if f.suppressed(issue) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

func (f *Filter) suppressed(issue Issue) bool {
	env := issueEnv(issue)
	for _, rule := range f.rules {
		result, err := expr.Run(rule.program, env)
		if err != nil {
			suppressLog.Printf("Rule %q failed on %s: %v", rule.source, issue.ID, err)
			continue
		}
		if matched, ok := result.(bool); ok && matched {
			suppressLog.Printf("Rule %q suppresses %s", rule.source, issue.ID)
			return true
		}
	}
	return false
}

func issueEnv(issue Issue) map[string]any {
	metadata := issue.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return map[string]any{
		"id":        issue.ID,
		"code":      string(issue.Code),
		"severity":  string(issue.Severity),
		"title":     issue.Title,
		"agentId":   issue.AgentID,
		"agentName": issue.AgentName,
		"metadata":  metadata,
	}
}
