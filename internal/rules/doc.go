// Package rules holds the component rule registry and the rule functions
// run over descriptor sub-structures.
//
// A [Registry] maps each [validator.ComponentKind] to a
// [ComponentStructure]: the descriptor property it lives under, whether it
// must be present, the properties its object literals require, and the
// rules run over each of those objects. The registry is built once and
// never mutated; [Registry.With] returns an extended copy.
//
// Rules are pure: they read the parsed tree through a [Context] and return
// issues. They never stop validation and never return Go errors.
package rules
