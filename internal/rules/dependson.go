package rules

import (
	"fmt"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// DependsOn checks every object literal below obj, obj included, that
// declares `dependsOn`. Function bodies are skipped.
func DependsOn(c *Context, obj *tsast.Node) []validator.Issue {
	var out []validator.Issue
	tsast.Walk(obj, func(n *tsast.Node) bool {
		if tsast.IsFunctionLike(n) {
			return false
		}
		if n.Type() == "object" {
			if p, ok := c.Tree.PropertyMap(n)["dependsOn"]; ok {
				out = append(out, c.checkDependsOn(p)...)
			}
		}
		return true
	})
	return out
}

func (c *Context) checkDependsOn(p tsast.Property) []validator.Issue {
	switch tsast.KindOf(p.Value) {
	case tsast.KindUnknown:
		return c.Unverifiable(p, "")
	case tsast.KindArray:
	default:
		return []validator.Issue{c.Error(codes.DependsOnNotArray, "'dependsOn' must be an array of field keys", p.Value, "")}
	}

	elems := tsast.Elements(p.Value)
	if len(elems) == 0 {
		return []validator.Issue{withHint(
			c.Warning(codes.DependsOnEmpty, "'dependsOn' is empty", p.Value, ""),
			"Remove the empty dependsOn array")}
	}

	var out []validator.Issue
	seen := make(map[string]bool, len(elems))
	for idx, el := range elems {
		if v, ok := c.Tree.StringValue(el); ok {
			if seen[v] {
				out = append(out, withHint(
					c.Warning(codes.DuplicateDependsOn, fmt.Sprintf("'dependsOn' lists '%s' more than once", v), el, ""),
					fmt.Sprintf("Remove the repeated '%s'", v)))
			}
			seen[v] = true
			continue
		}
		switch kind := tsast.KindOf(el); kind {
		case tsast.KindUnknown, tsast.KindString:
			// Identifiers and interpolated templates cannot be compared.
		default:
			out = append(out, c.Error(codes.DependsOnInvalidItem,
				fmt.Sprintf("Element %d of 'dependsOn' must be a string, got %s", idx, kind.Article()), el, ""))
		}
	}
	return out
}
