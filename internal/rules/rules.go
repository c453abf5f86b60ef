package rules

import (
	"fmt"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/locate"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// Rule checks one object literal of a component and returns its issues.
type Rule func(c *Context, obj *tsast.Node) []validator.Issue

// Context is the read-only state shared by the rules of one validation.
type Context struct {
	Tree     *tsast.Tree
	Loc      *locate.Locator
	Imports  *tsast.Bindings
	Options  validator.Options
	Registry *Registry
}

// NewContext builds a rule context over a parsed tree.
func NewContext(tree *tsast.Tree, opts validator.Options, reg *Registry) *Context {
	if reg == nil {
		reg = Default()
	}
	return &Context{
		Tree:     tree,
		Loc:      locate.New(tree, opts.NominalFileName()),
		Imports:  tree.Imports(),
		Options:  opts,
		Registry: reg,
	}
}

func (c *Context) issue(sev validator.Severity, code, msg string, n *tsast.Node, kind validator.ComponentKind) validator.Issue {
	if kind == "" {
		kind = c.Loc.Component(n)
	}
	return validator.Issue{Severity: sev, Code: code, Message: msg, Location: c.Loc.At(n), Component: kind}
}

// Error builds an error issue located at n. An empty kind is resolved from
// the node's position.
func (c *Context) Error(code, msg string, n *tsast.Node, kind validator.ComponentKind) validator.Issue {
	return c.issue(validator.SeverityError, code, msg, n, kind)
}

// Warning builds a warning issue located at n.
func (c *Context) Warning(code, msg string, n *tsast.Node, kind validator.ComponentKind) validator.Issue {
	return c.issue(validator.SeverityWarning, code, msg, n, kind)
}

// Suggestion builds a suggestion issue located at n.
func (c *Context) Suggestion(code, msg string, n *tsast.Node, kind validator.ComponentKind) validator.Issue {
	return c.issue(validator.SeveritySuggestion, code, msg, n, kind)
}

// withHint attaches embedded remediation text.
func withHint(i validator.Issue, hint string) validator.Issue {
	i.Suggestion = hint
	return i
}

// Unverifiable returns the opt-in suggestion for a known property whose
// value is not a literal.
func (c *Context) Unverifiable(p tsast.Property, kind validator.ComponentKind) []validator.Issue {
	if !c.Options.ReportUnverifiable {
		return nil
	}
	return []validator.Issue{c.Suggestion(codes.UnverifiableValue,
		fmt.Sprintf("Property '%s' is not a literal and cannot be checked statically", p.Key),
		p.Value, kind)}
}

// InvalidType builds the uniform wrong-kind error for a property.
func (c *Context) InvalidType(p tsast.Property, want tsast.Kind, kind validator.ComponentKind) validator.Issue {
	return c.Error(codes.InvalidType,
		fmt.Sprintf("Property '%s' must be %s, got %s", p.Key, want.Article(), tsast.KindOf(p.Value).Article()),
		p.Value, kind)
}

// CheckKind compares a property value against an expected kind. Non-literal
// values are never reported as wrong; they yield the unverifiable
// suggestion when enabled.
func (c *Context) CheckKind(p tsast.Property, want tsast.Kind, kind validator.ComponentKind) []validator.Issue {
	got := tsast.KindOf(p.Value)
	switch {
	case got == tsast.KindUnknown:
		return c.Unverifiable(p, kind)
	case got != want:
		return []validator.Issue{c.InvalidType(p, want, kind)}
	}
	return nil
}

// TypeChecks returns a rule comparing known properties against expected
// kinds. Absent properties are skipped; presence is the registry's job.
func TypeChecks(kind validator.ComponentKind, expect []PropertyKind) Rule {
	return func(c *Context, obj *tsast.Node) []validator.Issue {
		props := c.Tree.PropertyMap(obj)
		var out []validator.Issue
		for _, e := range expect {
			p, ok := props[e.Name]
			if !ok {
				continue
			}
			out = append(out, c.CheckKind(p, e.Kind, kind)...)
		}
		return out
	}
}

// PropertyKind pairs a property name with its expected kind.
type PropertyKind struct {
	Name string
	Kind tsast.Kind
}

// ArrayOf returns a rule requiring every literal element of an array
// property to have the given kind.
func ArrayOf(prop string, want tsast.Kind, kind validator.ComponentKind) Rule {
	return func(c *Context, obj *tsast.Node) []validator.Issue {
		p, ok := c.Tree.PropertyMap(obj)[prop]
		if !ok || !tsast.IsArray(p.Value) {
			return nil
		}
		var out []validator.Issue
		for idx, el := range tsast.Elements(p.Value) {
			got := tsast.KindOf(el)
			if got == tsast.KindUnknown || got == want {
				continue
			}
			out = append(out, c.Error(codes.InvalidType,
				fmt.Sprintf("Element %d of '%s' must be %s, got %s", idx, prop, want.Article(), got.Article()),
				el, kind))
		}
		return out
	}
}
