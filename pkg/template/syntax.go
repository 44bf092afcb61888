package template

import (
	"fmt"
	"regexp"

	"github.com/nikolalohinski/gonja/v2"

	"github.com/githubnext/flowlint/pkg/logger"
)

var syntaxLog = logger.New("template:syntax")

var (
	tagBodyPattern     = regexp.MustCompile(`(?s)\{\{-?(.*?)-?\}\}|\{%-?(.*?)-?%\}`)
	filterPattern      = regexp.MustCompile(`\|\s*(\w+)`)
	filterBlockPattern = regexp.MustCompile(`^\s*filter\s+(\w+)`)
	testPattern        = regexp.MustCompile(`\bis\s+(?:not\s+)?\w+`)
	callPattern        = regexp.MustCompile(`(?:^|[^\w.])([A-Za-z_]\w*)\s*\(`)
	macroPattern       = regexp.MustCompile(`^\s*macro\s+(\w+)`)
	setNamePattern     = regexp.MustCompile(`^\s*set\s+(\w+)`)
	forNamesPattern    = regexp.MustCompile(`^\s*for\s+(\w+)(?:\s*,\s*(\w+))?\s+in\b`)
)

// callKeywords are followed by a parenthesis without being calls, or are
// callables the engine provides inside macros and blocks.
var callKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "not": true, "and": true, "or": true,
	"in": true, "is": true, "for": true, "macro": true, "call": true, "set": true,
	"filter": true, "caller": true, "super": true,
}

// SyntaxError is a template the Jinja engine rejected.
type SyntaxError struct {
	Template string
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error: %s", e.Message)
}

// CheckSyntax compiles tpl with the Jinja engine and discards the result.
// Compile failures and panics inside the engine are returned as a
// *SyntaxError, and so are filters the engine does not know and calls to
// functions that are neither engine globals nor defined in tpl.
//
// The template is never executed. Variables are not looked up, so a template
// that only reads undefined names is still valid here; undefined names are
// reported from ExtractVariables instead.
func CheckSyntax(tpl string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			syntaxLog.Printf("Engine panicked: %v", r)
			err = &SyntaxError{Template: tpl, Message: fmt.Sprint(r)}
		}
	}()

	if _, parseErr := gonja.FromString(tpl); parseErr != nil {
		syntaxLog.Printf("Compile failed: %v", parseErr)
		return &SyntaxError{Template: tpl, Message: parseErr.Error()}
	}
	if msg := checkNames(tpl); msg != "" {
		syntaxLog.Printf("Name check failed: %s", msg)
		return &SyntaxError{Template: tpl, Message: msg}
	}
	return nil
}

// checkNames looks up every filter and bare function call of tpl the way
// rendering would, and describes the first one that cannot be resolved.
func checkNames(tpl string) string {
	env := gonja.DefaultEnvironment

	var bodies []string
	defined := map[string]bool{}
	for _, m := range tagBodyPattern.FindAllStringSubmatch(tpl, -1) {
		body := m[1]
		if body == "" {
			body = m[2]
		}
		body = stringLiteralPattern.ReplaceAllString(body, `""`)
		bodies = append(bodies, body)

		for _, p := range []*regexp.Regexp{macroPattern, setNamePattern, forNamesPattern} {
			if names := p.FindStringSubmatch(body); names != nil {
				for _, name := range names[1:] {
					defined[name] = true
				}
			}
		}
	}

	for _, body := range bodies {
		var filters []string
		if m := filterBlockPattern.FindStringSubmatch(body); m != nil {
			filters = append(filters, m[1])
		}
		for _, m := range filterPattern.FindAllStringSubmatch(body, -1) {
			filters = append(filters, m[1])
		}
		for _, name := range filters {
			if !env.Filters.Exists(name) {
				return fmt.Sprintf("unknown filter %q", name)
			}
		}

		expr := testPattern.ReplaceAllString(body, " ")
		expr = filterPattern.ReplaceAllString(expr, " ")
		for _, m := range callPattern.FindAllStringSubmatch(expr, -1) {
			name := m[1]
			if callKeywords[name] || defined[name] || env.Context.Has(name) {
				continue
			}
			return fmt.Sprintf("unknown function %q", name)
		}
	}
	return ""
}
