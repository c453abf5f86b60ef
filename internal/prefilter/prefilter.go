// Package prefilter holds the text-only checks that predate the syntax
// tree validator: a cheap "is this code at all" gate and the legacy
// heuristic pass.
//
// The heuristics are low confidence. They cannot see through strings or
// comments and must never be the only acceptance gate.
package prefilter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/validator"
)

var (
	leadingToken  = regexp.MustCompile(`^(import|export|require)\b`)
	exportPattern = regexp.MustCompile(`export\s+default\s+defineApp\s*\(`)
	importPattern = regexp.MustCompile(
		`import\s+(?:type\s+)?\{[^}]*\bdefineApp\b[^}]*\}\s*from|` +
			`require\(\s*['"][^'"]+['"]\s*\)\s*\.\s*defineApp\b|` +
			`\{[^}]*\bdefineApp\b[^}]*\}\s*=\s*require\(`)
)

// descriptorIdent is the identifier the gate looks for anywhere in the text.
const descriptorIdent = "defineApp"

// LooksLikeCode is the cheap gate: the trimmed text starts with an import,
// export, or require token, or mentions defineApp anywhere.
func LooksLikeCode(src string) bool {
	trimmed := strings.TrimSpace(src)
	return leadingToken.MatchString(trimmed) || strings.Contains(trimmed, descriptorIdent)
}

// bracketPairs are checked independently by count.
var bracketPairs = [][2]rune{{'(', ')'}, {'[', ']'}, {'{', '}'}}

// Check runs the legacy heuristics over src.
func Check(src string) *validator.Result {
	result := validator.NewResult()

	if !exportPattern.MatchString(src) {
		result.Add(validator.Issue{
			Severity:   validator.SeverityError,
			Code:       codes.LegacyMissingExport,
			Message:    "No `export default defineApp(` found",
			Component:  validator.ComponentDescriptor,
			Suggestion: "Add `export default defineApp({ ... })`",
		})
	}
	if !importPattern.MatchString(src) {
		result.AddWarning(codes.LegacyMissingImport,
			"defineApp does not appear to be imported; this is fine if it is aliased",
			nil, validator.ComponentDescriptor)
	}

	for _, pair := range bracketPairs {
		open := strings.Count(src, string(pair[0]))
		closed := strings.Count(src, string(pair[1]))
		if open == closed {
			continue
		}
		result.AddWarning(codes.LegacyUnbalanced,
			fmt.Sprintf("Unbalanced '%c%c': %d opening, %d closing (heuristic, may be inside strings or comments)",
				pair[0], pair[1], open, closed),
			nil, "")
	}

	result.Finalize(false)
	return result
}
