package rules

import (
	"fmt"
	"regexp"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

var descriptorKinds = []PropertyKind{
	{"name", tsast.KindString},
	{"key", tsast.KindString},
	{"version", tsast.KindString},
	{"description", tsast.KindString},
	{"categories", tsast.KindArray},
	{"iconUrl", tsast.KindString},
	{"authDocUrl", tsast.KindString},
	{"supportsConnections", tsast.KindBool},
	{"apiBaseUrl", tsast.KindString},
}

// knownDescriptorProperties are the top-level keys accepted without warning.
var knownDescriptorProperties = map[string]bool{
	"name":                true,
	"key":                 true,
	"version":             true,
	"description":         true,
	"categories":          true,
	"iconUrl":             true,
	"authDocUrl":          true,
	"supportsConnections": true,
	"apiBaseUrl":          true,
	"auth":                true,
	"actions":             true,
	"triggers":            true,
	"dynamicFields":       true,
	"dynamicData":         true,
}

// UnknownProperty warns about top-level descriptor keys outside the known
// set. Only direct members of the config object are considered.
func UnknownProperty(c *Context, obj *tsast.Node) []validator.Issue {
	var out []validator.Issue
	for _, p := range c.Tree.Properties(obj) {
		if knownDescriptorProperties[p.Key] {
			continue
		}
		out = append(out, withHint(
			c.Warning(codes.UnknownProperty, fmt.Sprintf("Unknown descriptor property '%s'", p.Key), p.KeyNode, validator.ComponentDescriptor),
			fmt.Sprintf("Remove '%s' or check its spelling", p.Key)))
	}
	return out
}

// NestedActions rejects `actions` declared on any object literal below the
// config object. Function bodies are runtime code and are not searched.
func NestedActions(c *Context, obj *tsast.Node) []validator.Issue {
	var out []validator.Issue
	tsast.Walk(obj, func(n *tsast.Node) bool {
		if n == obj {
			return true
		}
		if tsast.IsFunctionLike(n) {
			return false
		}
		if n.Type() != "object" {
			return true
		}
		if p, ok := c.Tree.PropertyMap(n)["actions"]; ok {
			out = append(out, withHint(
				c.Error(codes.NestedActions, "'actions' must be declared at the top level of defineApp({...})", p.KeyNode, ""),
				"Move the actions array to the top level of the defineApp config"))
		}
		return true
	})
	return out
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// KeyWhitespace returns a rule rejecting string-literal keys containing
// whitespace.
func KeyWhitespace(kind validator.ComponentKind) Rule {
	return func(c *Context, obj *tsast.Node) []validator.Issue {
		p, ok := c.Tree.PropertyMap(obj)["key"]
		if !ok {
			return nil
		}
		key, ok := c.Tree.StringValue(p.Value)
		if !ok || !whitespaceRun.MatchString(key) {
			return nil
		}
		return []validator.Issue{withHint(
			c.Error(codes.InvalidKey, fmt.Sprintf("Key '%s' must not contain whitespace", key), p.Value, kind),
			fmt.Sprintf("Use '%s' instead", whitespaceRun.ReplaceAllString(key, "-")))}
	}
}
