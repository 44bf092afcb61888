// Package template inspects prompt templates written in the Jinja-like
// template language used by flow agents.
//
// ExtractVariables is a regex scanner, not a parser: it understands the four
// constructs prompt authors use ({% for %}, {% set %}, {% if %}/{% elif %}
// and {{ }}) and nothing else. Nested braces, template delimiters inside
// string literals and pipes inside filter arguments are not handled.
// CheckSyntax compiles the template with a real Jinja engine and resolves its
// filters and function calls to catch what the scanner cannot see.
package template

import (
	"regexp"
	"strings"

	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/sliceutil"
)

var scannerLog = logger.New("template:scanner")

var (
	forPattern           = regexp.MustCompile(`(?s)\{%-?\s*for\s+(\w+)(?:\s*,\s*(\w+))?\s+in\s+(.+?)\s*-?%\}`)
	setPattern           = regexp.MustCompile(`(?s)\{%-?\s*set\s+(\w+)\s*=\s*(.+?)\s*-?%\}`)
	ifPattern            = regexp.MustCompile(`(?s)\{%-?\s*(?:if|elif)\s+(.+?)\s*-?%\}`)
	interpolationPattern = regexp.MustCompile(`(?s)\{\{-?\s*(.+?)\s*-?\}\}`)
	stringLiteralPattern = regexp.MustCompile(`"[^"]*"|'[^']*'`)
	tokenPattern         = regexp.MustCompile(`\w+(?:\.\w+)*`)
	loopClausePattern    = regexp.MustCompile(`\s(?:if|recursive)\b`)
)

// conditionKeywords are never variables inside if/elif conditions.
var conditionKeywords = map[string]bool{
	"true": true, "false": true, "none": true, "null": true,
	"and": true, "or": true, "not": true, "in": true, "is": true,
}

// builtinFunctions are never variables inside interpolations.
var builtinFunctions = map[string]bool{
	"range": true, "dict": true, "list": true, "tuple": true, "set": true,
}

// ExtractVariables returns the variable paths tpl reads, deduplicated in the
// order they are first seen. Loop variables and names assigned with set are
// bound and never returned, and neither is anything under them. Any
// interpolation mentioning history is skipped.
//
//	ExtractVariables("{% for npc in cast.inactive %}{{ npc.name }}{% endfor %}")
//	// ["cast.inactive"]
func ExtractVariables(tpl string) []string {
	if !strings.Contains(tpl, "{") {
		return nil
	}

	bound := map[string]bool{}
	forMatches := forPattern.FindAllStringSubmatch(tpl, -1)
	setMatches := setPattern.FindAllStringSubmatch(tpl, -1)
	for _, m := range forMatches {
		bound[m[1]] = true
		if m[2] != "" {
			bound[m[2]] = true
		}
	}
	if len(forMatches) > 0 {
		bound["loop"] = true
	}
	for _, m := range setMatches {
		bound[m[1]] = true
	}

	var used []string

	// 1. for loops: the iterable
	for _, m := range forMatches {
		used = append(used, tokens(stripFilters(loopIterable(m[3])), bound, builtinFunctions)...)
	}

	// 2. set assignments: the right-hand side
	for _, m := range setMatches {
		used = append(used, tokens(stripFilters(m[2]), bound, builtinFunctions)...)
	}

	// 3. if/elif conditions
	for _, m := range ifPattern.FindAllStringSubmatch(tpl, -1) {
		used = append(used, tokens(m[1], bound, conditionKeywords)...)
	}

	// 4. interpolations
	for _, m := range interpolationPattern.FindAllStringSubmatch(tpl, -1) {
		expr := m[1]
		if strings.Contains(expr, constants.HistoryVariable) {
			continue
		}
		used = append(used, tokens(stripFilters(expr), bound, builtinFunctions)...)
	}

	used = sliceutil.Deduplicate(used)
	scannerLog.Printf("Extracted %d variables (bound: %d)", len(used), len(bound))
	return used
}

// loopIterable drops a trailing loop filter ("if cond") and the recursive
// modifier from the right-hand side of a for tag.
func loopIterable(expr string) string {
	if loc := loopClausePattern.FindStringIndex(expr); loc != nil {
		return expr[:loc[0]]
	}
	return expr
}

// stripFilters drops everything from the first filter pipe on.
func stripFilters(expr string) string {
	before, _, _ := strings.Cut(expr, "|")
	return before
}

// tokens returns the dotted identifier paths in expr that are not string or
// number literals, not attribute accesses on a previous expression, and whose
// root is neither bound nor in skip.
func tokens(expr string, bound, skip map[string]bool) []string {
	expr = stringLiteralPattern.ReplaceAllString(expr, " ")

	var out []string
	for _, loc := range tokenPattern.FindAllStringIndex(expr, -1) {
		if loc[0] > 0 && expr[loc[0]-1] == '.' {
			continue
		}
		token := expr[loc[0]:loc[1]]
		if token[0] >= '0' && token[0] <= '9' {
			continue
		}
		root, _, _ := strings.Cut(token, ".")
		if bound[root] || skip[root] {
			continue
		}
		out = append(out, token)
	}
	return out
}
