// This file provides validation for the flow's data store schema.
//
// # Data Store Validation
//
// Every declared data store field needs an initial value that matches its
// declared type, or the first read of the field sees garbage.
//
// # Validation Functions
//
//   - validateDataStoreSchema() - Missing or mistyped initial values
//
// # Type Rules
//
//   - boolean: exactly "true" or "false"
//   - number: a finite decimal number ("1.5", "-2", ".5", "1e3") or an
//     unsigned hex, octal or binary integer ("0x10", "0o17", "0b101")
//   - integer: a number without a fractional part
//   - string: anything

package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/logger"
)

var dataStoreValidationLog = logger.New("validation:datastore_validation")

// validateDataStoreSchema checks the initial value of every declared field.
func validateDataStoreSchema(ctx *Context) []Issue {
	if ctx.Flow == nil || ctx.Flow.DataStoreSchema == nil {
		return nil
	}

	var issues []Issue
	for _, f := range ctx.Flow.DataStoreSchema.Fields {
		subject := f.ID
		if subject == "" {
			subject = f.Name
		}

		if strings.TrimSpace(f.InitialValue) == "" {
			dataStoreValidationLog.Printf("Field %s has no initial value", f.Name)
			issue := newIssue(CodeDataStoreMissingInitialValue, ownerDataStore, subject)
			issue.Title = "Missing initial value"
			issue.Description = fmt.Sprintf("Data store field %q has no initial value.", f.Name)
			issue.Suggestion = fmt.Sprintf("Give %q an initial %s value.", f.Name, f.Type)
			issue.Metadata = map[string]any{"field": f.Name, "type": string(f.Type)}
			issues = append(issues, issue)
			continue
		}

		if validInitialValue(f.Type, f.InitialValue) {
			continue
		}

		dataStoreValidationLog.Printf("Field %s: %q is not a valid %s", f.Name, f.InitialValue, f.Type)
		issue := newIssue(CodeDataStoreInvalidInitialValue, ownerDataStore, subject)
		issue.Title = "Invalid initial value"
		issue.Description = fmt.Sprintf("Data store field %q is declared as %s, but its initial value %q is not.", f.Name, f.Type, f.InitialValue)
		issue.Suggestion = typeHint(f.Type)
		issue.Metadata = map[string]any{
			"field":        f.Name,
			"type":         string(f.Type),
			"initialValue": f.InitialValue,
		}
		issues = append(issues, issue)
	}
	return issues
}

// validInitialValue reports whether value fits typ. Unknown types accept
// anything.
func validInitialValue(typ flow.DataStoreFieldType, value string) bool {
	switch typ {
	case flow.DataStoreFieldBoolean:
		return value == "true" || value == "false"
	case flow.DataStoreFieldNumber:
		_, ok := parseNumber(value)
		return ok
	case flow.DataStoreFieldInteger:
		n, ok := parseNumber(value)
		return ok && math.Trunc(n) == n
	default:
		return true
	}
}

var (
	decimalNumberPattern  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	prefixedNumberPattern = regexp.MustCompile(`^0(?:[xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// parseNumber reads value the way a JavaScript runtime coerces a string to a
// number, except that infinities are rejected: "Infinity", "Inf" and
// overflowing literals are not valid initial values.
func parseNumber(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	switch {
	case prefixedNumberPattern.MatchString(s):
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	case decimalNumberPattern.MatchString(s):
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func typeHint(typ flow.DataStoreFieldType) string {
	switch typ {
	case flow.DataStoreFieldBoolean:
		return `Use "true" or "false".`
	case flow.DataStoreFieldNumber:
		return "Use a number such as 0 or 1.5."
	case flow.DataStoreFieldInteger:
		return "Use a whole number such as 0 or 42."
	default:
		return "Change the initial value to match the field type."
	}
}
