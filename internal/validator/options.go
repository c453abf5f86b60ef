package validator

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulldiveVR/codex/internal/errors"
)

// CustomRule is a caller-supplied check run over the raw candidate text after
// the built-in passes. The core never inspects what a custom rule does.
type CustomRule func(src []byte, fileName string) []Issue

// Options configures a single validation call.
type Options struct {
	// StrictMode promotes every Warning to an Error before validity is computed.
	StrictMode bool
	// IgnorePatterns are doublestar globs used by file-walking callers to skip
	// paths. The validator core does not consume them.
	IgnorePatterns []string
	// CustomRules are extra checks appended after the built-in passes.
	CustomRules []CustomRule
	// ReportUnverifiable emits a Suggestion for known properties whose value is
	// not a literal and therefore cannot be type-checked syntactically.
	ReportUnverifiable bool
	// FileName is the nominal file name used for diagnostic locations.
	FileName string
}

// DefaultFileName labels diagnostics when no nominal file name is given.
const DefaultFileName = "app.ts"

// NominalFileName returns FileName or DefaultFileName.
func (o Options) NominalFileName() string {
	if o.FileName == "" {
		return DefaultFileName
	}
	return o.FileName
}

// Validate reports malformed options. These are programmer errors, never
// properties of the candidate.
func (o Options) Validate() error {
	for _, pat := range o.IgnorePatterns {
		if !doublestar.ValidatePattern(pat) {
			return errors.Wrapf(errors.ErrInvalidOptions, "malformed ignore pattern %q", pat)
		}
	}
	for idx, rule := range o.CustomRules {
		if rule == nil {
			return errors.Wrapf(errors.ErrInvalidOptions, "custom rule %d is nil", idx)
		}
	}
	return nil
}

// Ignored reports whether path matches any ignore pattern.
func (o Options) Ignored(path string) bool {
	for _, pat := range o.IgnorePatterns {
		if matched, err := doublestar.Match(pat, path); err == nil && matched {
			return true
		}
	}
	return false
}
