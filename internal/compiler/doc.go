// Package compiler adapts compiler-style diagnostics into validation
// issues.
//
// A [Checker] turns a candidate into a result whose issues carry 1-based
// positions and vendor-neutral codes. Three implementations exist:
//
//   - [SyntaxChecker] reports the syntax errors found by the tree-sitter
//     grammar, in process. It is the default.
//   - [TSCChecker] runs an external TypeScript compiler over a private copy
//     of the candidate and maps its diagnostics (TS<n> codes).
//   - [Nop] reports nothing.
//
// Adapter failures (a missing compiler binary, a crash) are returned as Go
// errors; the orchestrator turns them into a single issue.
package compiler
