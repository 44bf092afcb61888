package console

import (
	"fmt"
	"slices"
	"strings"

	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/validation"
)

var reportLog = logger.New("console:report")

const issueIndent = "    "

// FormatIssue renders one issue as a headline followed by its description
// and suggestion, indented:
//
//	✗ SYNTAX_ERROR: Template syntax error [Writer]
//	    The template at promptMessages[0].promptBlocks[0] has a syntax error: ...
//	    Suggestion: ...
func FormatIssue(issue validation.Issue) string {
	icon, style := "⚠", warningStyle
	if issue.IsError() {
		icon, style = "✗", errorStyle
	}

	var b strings.Builder
	b.WriteString(applyStyle(style, icon+" "+string(issue.Code)))
	b.WriteString(": " + issue.Title)
	if issue.AgentName != "" {
		b.WriteString(" " + applyStyle(mutedStyle, "["+issue.AgentName+"]"))
	}
	if issue.Description != "" {
		b.WriteString("\n" + issueIndent + issue.Description)
	}
	if issue.Suggestion != "" {
		b.WriteString("\n" + issueIndent + applyStyle(mutedStyle, "Suggestion: "+issue.Suggestion))
	}
	return b.String()
}

// RenderReport renders the issues found in source: errors first, then
// warnings, each group ordered by issue id, followed by a summary line.
func RenderReport(source string, issues []validation.Issue) string {
	if len(issues) == 0 {
		return FormatSuccessMessage(source+": no issues found") + "\n"
	}

	sorted := slices.Clone(issues)
	validation.Sort(sorted)
	errs, warnings := validation.Count(sorted)
	reportLog.Printf("Rendering %s: %d errors, %d warnings", source, errs, warnings)

	var b strings.Builder
	b.WriteString(FormatHeader(source) + "\n")
	for _, issue := range sorted {
		b.WriteString(FormatIssue(issue) + "\n")
	}
	b.WriteString("\n" + FormatSummary(source, errs, warnings) + "\n")
	return b.String()
}

// FormatSummary renders the "N errors, M warnings" line for source.
func FormatSummary(source string, errs, warnings int) string {
	msg := fmt.Sprintf("%s: %s, %s", source, plural(errs, "error"), plural(warnings, "warning"))
	switch {
	case errs > 0:
		return FormatErrorMessage(msg)
	case warnings > 0:
		return FormatWarningMessage(msg)
	default:
		return FormatSuccessMessage(msg)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
