// Package validator defines the shared result model for plugin descriptor
// validation.
//
// Every validation source (the AST-based structural pass, compiler
// diagnostics, the legacy prefilter) reports through the same types so a
// presentation layer can render one uniform shape.
//
// # Core Concepts
//
//   - [Severity]: Error blocks acceptance, Warning and Suggestion are advisory.
//   - [Issue]: A single coded, located problem with optional remediation text.
//   - [Result]: An ordered issue list plus the validity verdict.
//   - [Options]: Per-call knobs such as strict mode and ignore patterns.
//
// # Basic Usage
//
//	result := validator.NewResult()
//	result.AddError("STRUCTURE_MISSING_PROPERTY", "missing 'name'", loc, validator.ComponentDescriptor)
//	result.Finalize(false)
//	if !result.IsValid {
//		// reject candidate
//	}
//
// The invariant maintained by [Result.Finalize] is that IsValid is true if
// and only if no issue has [SeverityError].
package validator
