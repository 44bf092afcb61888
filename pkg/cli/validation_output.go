package cli

import (
	"fmt"
	"os"

	"github.com/githubnext/flowlint/pkg/console"
)

// FormatValidationError formats an error that stopped a document from being
// validated. Multi-line errors, such as schema errors listing every
// violation, keep their layout.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}
	return console.FormatErrorMessage(err.Error())
}

// PrintValidationError prints err to stderr with console formatting.
func PrintValidationError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatValidationError(err))
}
