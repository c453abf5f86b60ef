// Package structure implements the AST-based structural validation of a
// plugin descriptor file.
//
// The validator parses the candidate, finds the default-exported
// defineApp({...}) call, checks the descriptor object against the
// descriptor structure of a [rules.Registry], and then hands each component
// property present on it (actions, auth, triggers, dynamicFields,
// dynamicData) to the collection checker registered for that component.
//
// Builder calls are matched by name after resolving import aliases:
// `import { defineApp as app }` makes app(...) a descriptor call, and
// namespace calls like sdk.defineApp(...) match by property name. There is
// no cross-file resolution.
package structure
