package rules

import (
	"fmt"
	"strings"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

const (
	fieldTypeDropdown = "dropdown"
	fieldTypeDynamic  = "dynamic"
)

var fieldKinds = []PropertyKind{
	{"key", tsast.KindString},
	{"label", tsast.KindString},
	{"type", tsast.KindString},
	{"required", tsast.KindBool},
	{"options", tsast.KindArray},
}

// dropdownOptionFields must appear on every literal dropdown option.
var dropdownOptionFields = []string{"label", "value"}

// FieldType applies the rules specific to a field's literal type.
func FieldType(c *Context, obj *tsast.Node) []validator.Issue {
	props := c.Tree.PropertyMap(obj)
	t, ok := c.Tree.StringValue(props["type"].Value)
	if !ok {
		return nil
	}
	switch strings.ToLower(t) {
	case fieldTypeDropdown:
		return dropdownOptions(c, props)
	case fieldTypeDynamic:
		return dynamicField(c, obj, props)
	}
	return nil
}

func dropdownOptions(c *Context, props map[string]tsast.Property) []validator.Issue {
	p, ok := props["options"]
	if !ok || !tsast.IsArray(p.Value) {
		return nil
	}
	var out []validator.Issue
	for idx, el := range tsast.Elements(p.Value) {
		if !tsast.IsObject(el) {
			continue
		}
		opt := tsast.Unwrap(el)
		if tsast.HasSpread(opt) {
			continue
		}
		optProps := c.Tree.PropertyMap(opt)
		for _, name := range dropdownOptionFields {
			if _, present := optProps[name]; present {
				continue
			}
			out = append(out, withHint(
				c.Error(codes.DropdownOptionField, fmt.Sprintf("Dropdown option %d is missing '%s'", idx, name), opt, validator.ComponentFields),
				"Each dropdown option needs a label and a value"))
		}
	}
	return out
}

func dynamicField(c *Context, obj *tsast.Node, props map[string]tsast.Property) []validator.Issue {
	p, ok := props["fields"]
	if !ok {
		if tsast.HasSpread(obj) {
			return nil
		}
		return []validator.Issue{withHint(
			c.Error(codes.DynamicFieldFields, "Dynamic field must declare a 'fields' array", obj, validator.ComponentFields),
			"Add a 'fields' array describing the generated inputs")}
	}
	switch tsast.KindOf(p.Value) {
	case tsast.KindUnknown:
		return c.Unverifiable(p, validator.ComponentFields)
	case tsast.KindArray:
		return c.FieldList(tsast.Elements(p.Value), codes.FieldNotObject)
	default:
		return []validator.Issue{c.InvalidType(p, tsast.KindArray, validator.ComponentFields)}
	}
}

// FieldList runs the field structure over each object element. Literal
// non-object elements are reported with notObjectCode unless it is empty.
func (c *Context) FieldList(elems []*tsast.Node, notObjectCode string) []validator.Issue {
	var out []validator.Issue
	for idx, el := range elems {
		switch tsast.KindOf(el) {
		case tsast.KindObject:
			out = append(out, c.Registry.Apply(c, validator.ComponentFields, tsast.Unwrap(el))...)
		case tsast.KindUnknown:
		default:
			if notObjectCode != "" {
				out = append(out, c.Error(notObjectCode,
					fmt.Sprintf("Field %d must be an object literal", idx), el, validator.ComponentFields))
			}
		}
	}
	return out
}
