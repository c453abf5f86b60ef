package rules

import (
	"fmt"
	"strings"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

var actionKinds = []PropertyKind{
	{"key", tsast.KindString},
	{"name", tsast.KindString},
	{"mode", tsast.KindString},
	{"description", tsast.KindString},
	{"arguments", tsast.KindArray},
}

// implementationKeys name the properties that may carry an action's body.
var implementationKeys = []string{"run", "handler"}

// argumentFields must appear on every action argument.
var argumentFields = []string{"label", "key", "type", "required"}

// ActionImplementation requires a function-valued run or handler and warns
// when it is neither async nor declared to return a Promise.
func ActionImplementation(c *Context, obj *tsast.Node) []validator.Issue {
	props := c.Tree.PropertyMap(obj)
	var out []validator.Issue
	found := false
	for _, key := range implementationKeys {
		p, ok := props[key]
		if !ok {
			continue
		}
		found = true
		switch tsast.KindOf(p.Value) {
		case tsast.KindUnknown:
			out = append(out, c.Unverifiable(p, validator.ComponentActions)...)
		case tsast.KindFunction:
			if !tsast.IsAsyncFunction(p.Value) && !c.Tree.ReturnsPromise(p.Value) {
				out = append(out, withHint(
					c.Warning(codes.ActionNotAsync, fmt.Sprintf("Action '%s' is neither async nor returns a Promise", key), p.Value, validator.ComponentActions),
					fmt.Sprintf("Declare '%s' as an async function", key)))
			}
		default:
			out = append(out, c.InvalidType(p, tsast.KindFunction, validator.ComponentActions))
		}
	}
	if !found && !tsast.HasSpread(obj) {
		out = append(out, c.Error(codes.ActionMissingImpl,
			"Action must define a 'run' or 'handler' function", obj, validator.ComponentActions))
	}
	return out
}

// ActionArguments checks the argument list of an action. Each object
// argument must name its label, key, type, and required flag; arguments
// typed dropdown or dynamic also get the field-type rules.
func ActionArguments(c *Context, obj *tsast.Node) []validator.Issue {
	p, ok := c.Tree.PropertyMap(obj)["arguments"]
	if !ok || !tsast.IsArray(p.Value) {
		return nil
	}
	var out []validator.Issue
	for idx, el := range tsast.Elements(p.Value) {
		switch tsast.KindOf(el) {
		case tsast.KindObject:
		case tsast.KindUnknown:
			continue
		default:
			out = append(out, c.Error(codes.FieldNotObject,
				fmt.Sprintf("Argument %d must be an object literal", idx), el, validator.ComponentFields))
			continue
		}

		arg := tsast.Unwrap(el)
		props := c.Tree.PropertyMap(arg)
		if !tsast.HasSpread(arg) {
			for _, field := range argumentFields {
				if _, present := props[field]; present {
					continue
				}
				out = append(out, withHint(
					c.Warning(codes.ArgumentMissing, fmt.Sprintf("Argument %d is missing '%s'", idx, field), arg, validator.ComponentFields),
					fmt.Sprintf("Add '%s' to the argument definition", field)))
			}
		}
		if t, ok := c.Tree.StringValue(props["type"].Value); ok {
			switch strings.ToLower(t) {
			case fieldTypeDropdown, fieldTypeDynamic:
				out = append(out, FieldType(c, arg)...)
			}
		}
	}
	return out
}
