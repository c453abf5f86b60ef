// Package tsast parses TypeScript source into a concrete syntax tree and
// offers the small set of syntactic questions the validators ask about it.
//
// Parsing is backed by tree-sitter, which always produces a tree: broken
// input yields ERROR and MISSING nodes instead of a failure. [Tree.HasError]
// and [Tree.Errors] expose that marker. The only error returned by
// [Parse] is cancellation or parser setup failure.
//
// Value classification is purely syntactic. [KindOf] answers "what shape is
// this expression" without evaluating anything; expressions whose shape is
// decided at runtime (identifiers, calls, spreads) classify as [KindUnknown]
// and callers treat them as unverifiable.
package tsast
