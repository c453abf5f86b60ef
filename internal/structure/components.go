package structure

import (
	"fmt"
	"slices"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/rules"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// checker validates the value of one component property.
type checker func(c *rules.Context, kind validator.ComponentKind, p tsast.Property) []validator.Issue

// collection describes an array-valued component.
type collection struct {
	notArray string
	// empty, when set, is warned about for an empty array.
	empty    string
	builders []string
	noArgs   string
	notObj   string
	invalid  string
	// computedUnverifiable treats identifiers and non-builder calls as
	// values computed at runtime instead of malformed definitions.
	computedUnverifiable bool
}

var (
	actionsCollection = collection{
		notArray: codes.ActionsNotArray,
		empty:    codes.ActionsEmpty,
		builders: []string{"createAction", "defineAction"},
		noArgs:   codes.ActionNoArgs,
		notObj:   codes.ActionNotObject,
		invalid:  codes.InvalidActionDefinition,
	}
	triggersCollection = collection{
		notArray: codes.TriggersNotArray,
		builders: []string{"createTrigger", "defineTrigger"},
		noArgs:   codes.TriggerNoArgs,
		notObj:   codes.TriggerNotObject,
		invalid:  codes.InvalidTriggerDefinition,
	}
	dynamicFieldsCollection = collection{
		notArray:             codes.DynamicFieldsNotArray,
		invalid:              codes.InvalidProviderDefinition,
		computedUnverifiable: true,
	}
	dynamicDataCollection = collection{
		notArray:             codes.DynamicDataNotArray,
		invalid:              codes.InvalidProviderDefinition,
		computedUnverifiable: true,
	}
)

// checkers maps descriptor property names to the checker of their value.
// Properties without an entry use genericChecker.
var checkers = map[string]checker{
	"actions":       actionsCollection.check,
	"triggers":      triggersCollection.check,
	"dynamicFields": dynamicFieldsCollection.check,
	"dynamicData":   dynamicDataCollection.check,
	"auth":          checkAuth,
}

// components dispatches every component property present on the config.
func (v *Validator) components(c *rules.Context, config *tsast.Node) []validator.Issue {
	props := c.Tree.PropertyMap(config)
	var out []validator.Issue
	for _, s := range v.registry.Structures() {
		if s.Property == "" {
			continue
		}
		p, ok := props[s.Property]
		if !ok {
			if s.Required && !tsast.HasSpread(config) {
				out = append(out, withHint(
					c.Error(codes.MissingProperty, fmt.Sprintf("Missing required property '%s'", s.Property), config, validator.ComponentDescriptor),
					fmt.Sprintf("Add the '%s' property to the defineApp({...}) config", s.Property)))
			}
			continue
		}
		check, ok := checkers[s.Property]
		if !ok {
			check = genericChecker
		}
		out = append(out, check(c, s.Kind, p)...)
	}
	return out
}

// genericChecker applies the structure of kind to an object value or to
// every object element of an array value.
func genericChecker(c *rules.Context, kind validator.ComponentKind, p tsast.Property) []validator.Issue {
	switch tsast.KindOf(p.Value) {
	case tsast.KindObject:
		return c.Registry.Apply(c, kind, tsast.Unwrap(p.Value))
	case tsast.KindArray:
		var out []validator.Issue
		for _, el := range tsast.Elements(p.Value) {
			if tsast.IsObject(el) {
				out = append(out, c.Registry.Apply(c, kind, tsast.Unwrap(el))...)
			}
		}
		return out
	case tsast.KindUnknown:
		return c.Unverifiable(p, kind)
	default:
		return []validator.Issue{c.InvalidType(p, tsast.KindArray, kind)}
	}
}

func checkAuth(c *rules.Context, kind validator.ComponentKind, p tsast.Property) []validator.Issue {
	switch tsast.KindOf(p.Value) {
	case tsast.KindObject:
		return c.Registry.Apply(c, kind, tsast.Unwrap(p.Value))
	case tsast.KindUnknown:
		return c.Unverifiable(p, kind)
	default:
		return []validator.Issue{withHint(
			c.Error(codes.AuthNotObject, "'auth' must be an object literal", p.Value, kind),
			"Declare auth as { type: ..., fields: [...], verifyCredentials, isStillVerified }")}
	}
}

// check validates an array component: its shape, each element's
// definition, the element structures, and duplicate element keys.
func (col collection) check(c *rules.Context, kind validator.ComponentKind, p tsast.Property) []validator.Issue {
	switch tsast.KindOf(p.Value) {
	case tsast.KindArray:
	case tsast.KindUnknown:
		return c.Unverifiable(p, kind)
	default:
		return []validator.Issue{c.Error(col.notArray, fmt.Sprintf("'%s' must be an array", p.Key), p.Value, kind)}
	}

	elems := tsast.Elements(p.Value)
	if len(elems) == 0 && col.empty != "" {
		return []validator.Issue{c.Warning(col.empty, fmt.Sprintf("'%s' is empty", p.Key), p.Value, kind)}
	}

	var out []validator.Issue
	seen := make(map[string]bool, len(elems))
	for idx, el := range elems {
		obj, issue := col.element(c, kind, idx, el)
		if issue != nil {
			out = append(out, *issue)
		}
		if obj == nil {
			continue
		}
		out = append(out, c.Registry.Apply(c, kind, obj)...)

		keyProp, ok := c.Tree.PropertyMap(obj)["key"]
		if !ok {
			continue
		}
		key, ok := c.Tree.StringValue(keyProp.Value)
		if !ok {
			continue
		}
		if seen[key] {
			out = append(out, withHint(
				c.Warning(codes.DuplicateKey, fmt.Sprintf("Duplicate key '%s' in '%s'", key, p.Key), keyProp.Value, kind),
				"Give each entry a unique key"))
		}
		seen[key] = true
	}
	return out
}

// element resolves one collection element to its definition object. It
// returns nil without an issue for spreads and, in provider collections,
// for values computed at runtime.
func (col collection) element(c *rules.Context, kind validator.ComponentKind, idx int, el *tsast.Node) (*tsast.Node, *validator.Issue) {
	if tsast.IsSpread(el) {
		return nil, nil
	}
	switch tsast.KindOf(el) {
	case tsast.KindObject:
		return tsast.Unwrap(el), nil
	case tsast.KindUnknown:
	default:
		return nil, col.invalidIssue(c, kind, idx, el)
	}

	callee := c.Imports.Callee(c.Tree, el, col.builders...)
	if !col.isBuilder(callee) {
		if col.computedUnverifiable {
			return nil, nil
		}
		return nil, col.invalidIssue(c, kind, idx, el)
	}

	args := tsast.Arguments(el)
	switch {
	case len(args) == 0:
		i := c.Error(col.noArgs, fmt.Sprintf("%s() must be called with a definition object", callee), el, kind)
		return nil, &i
	case len(args) > 1:
		i := c.Error(col.invalid, fmt.Sprintf("%s() takes exactly one definition object, got %d arguments", callee, len(args)), el, kind)
		return nil, &i
	}
	if !tsast.IsObject(args[0]) {
		i := c.Error(col.notObj, fmt.Sprintf("The argument of %s() must be an object literal", callee), args[0], kind)
		return nil, &i
	}
	return tsast.Unwrap(args[0]), nil
}

func (col collection) invalidIssue(c *rules.Context, kind validator.ComponentKind, idx int, el *tsast.Node) *validator.Issue {
	msg := fmt.Sprintf("Element %d must be an object literal", idx)
	if len(col.builders) > 0 {
		msg = fmt.Sprintf("Element %d must be an object literal or a %s({...}) call", idx, col.builders[0])
	}
	i := c.Error(col.invalid, msg, el, kind)
	return &i
}

func (col collection) isBuilder(name string) bool {
	return slices.Contains(col.builders, name)
}
