package stringutil

import (
	"strings"
	"unicode"
)

// SanitizeIdentifier turns a display name into the token templates use to
// reference it: lower-case ASCII letters, digits and underscores, with runs
// of anything else collapsed to one underscore and no underscores at either
// end. A leading digit gets an underscore prefix so the result is still a
// valid template identifier.
//
//	SanitizeIdentifier("Scene Analyzer")  // "scene_analyzer"
//	SanitizeIdentifier("GPT-4o (draft)")  // "gpt_4o_draft"
//	SanitizeIdentifier("2nd pass")        // "_2nd_pass"
func SanitizeIdentifier(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	out := strings.Trim(b.String(), "_")
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// RootSegment returns the part of a dotted path before the first dot.
func RootSegment(path string) string {
	root, _, _ := strings.Cut(path, ".")
	return root
}
