// This file provides validation for template syntax.
//
// # Syntax Validation
//
// The variable scanner only understands a handful of constructs. To catch
// everything else (unclosed blocks, unknown tags, broken expressions) every
// plain prompt block of a connected agent and the response template is
// compiled by the Jinja engine. Compile failures and engine panics become
// SYNTAX_ERROR issues.
//
// # Validation Functions
//
//   - validateTemplateSyntax() - Compiles each template and reports failures

package validation

import (
	"errors"
	"fmt"

	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/stringutil"
	"github.com/githubnext/flowlint/pkg/template"
)

var syntaxValidationLog = logger.New("validation:syntax_validation")

// validateTemplateSyntax reports templates the renderer rejects.
func validateTemplateSyntax(ctx *Context) []Issue {
	var issues []Issue
	for _, src := range collectTemplates(ctx) {
		if !src.renderable {
			continue
		}

		err := template.CheckSyntax(src.text)
		if err == nil {
			continue
		}

		message := err.Error()
		var syntaxErr *template.SyntaxError
		if errors.As(err, &syntaxErr) {
			message = syntaxErr.Message
		}
		syntaxValidationLog.Printf("%s/%s: %s in %q", src.ownerID, src.location, message, stringutil.Truncate(src.text, 60))

		issue := newIssue(CodeSyntaxError, append(src.subject(), src.location)...)
		issue.Title = "Template syntax error"
		issue.Description = fmt.Sprintf("The template at %s has a syntax error: %s", src.location, stringutil.NormalizeWhitespace(message))
		issue.Suggestion = "Check that every {% %} block is closed and every {{ }} expression is complete."
		issue.Metadata = map[string]any{
			"template": src.text,
			"error":    message,
			"location": src.location,
		}
		setAgent(&issue, src)
		issues = append(issues, issue)
	}
	return issues
}
