package rules

import (
	"fmt"
	"slices"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// ComponentStructure describes one descriptor sub-structure.
type ComponentStructure struct {
	Kind validator.ComponentKind
	// Property is the descriptor key holding the component. Empty for the
	// descriptor itself and for fields, which nest inside other components.
	Property string
	// Required marks components whose property must be present.
	Required bool
	// RequiredProperties must appear on each object of the component.
	RequiredProperties []string
	// Rules run over each object of the component, in order.
	Rules []Rule
}

// Registry is an immutable table of component structures.
type Registry struct {
	order      []validator.ComponentKind
	components map[validator.ComponentKind]ComponentStructure
	byProperty map[string]validator.ComponentKind
}

// NewRegistry builds a registry. Later structures replace earlier ones of
// the same kind.
func NewRegistry(structures ...ComponentStructure) *Registry {
	r := &Registry{
		components: make(map[validator.ComponentKind]ComponentStructure, len(structures)),
		byProperty: make(map[string]validator.ComponentKind, len(structures)),
	}
	for _, s := range structures {
		if _, seen := r.components[s.Kind]; !seen {
			r.order = append(r.order, s.Kind)
		}
		s.RequiredProperties = slices.Clone(s.RequiredProperties)
		s.Rules = slices.Clone(s.Rules)
		r.components[s.Kind] = s
		if s.Property != "" {
			r.byProperty[s.Property] = s.Kind
		}
	}
	return r
}

// Get returns the structure registered for kind.
func (r *Registry) Get(kind validator.ComponentKind) (ComponentStructure, bool) {
	s, ok := r.components[kind]
	return s, ok
}

// ForProperty returns the structure stored under a descriptor property.
func (r *Registry) ForProperty(prop string) (ComponentStructure, bool) {
	kind, ok := r.byProperty[prop]
	if !ok {
		return ComponentStructure{}, false
	}
	return r.Get(kind)
}

// Structures returns every structure in registration order.
func (r *Registry) Structures() []ComponentStructure {
	out := make([]ComponentStructure, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.components[k])
	}
	return out
}

// With returns a copy of the registry with extra rules appended to kind.
func (r *Registry) With(kind validator.ComponentKind, extra ...Rule) *Registry {
	structures := r.Structures()
	for idx := range structures {
		if structures[idx].Kind == kind {
			structures[idx].Rules = append(slices.Clone(structures[idx].Rules), extra...)
		}
	}
	return NewRegistry(structures...)
}

// Apply checks required properties and runs the rules of kind over obj.
// Objects spreading other values are not checked for missing properties
// since the spread may supply them.
func (r *Registry) Apply(c *Context, kind validator.ComponentKind, obj *tsast.Node) []validator.Issue {
	s, ok := r.Get(kind)
	if !ok {
		return nil
	}
	var out []validator.Issue
	if !tsast.HasSpread(obj) {
		props := c.Tree.PropertyMap(obj)
		for _, name := range s.RequiredProperties {
			if _, present := props[name]; present {
				continue
			}
			out = append(out, withHint(
				c.Error(codes.MissingProperty, fmt.Sprintf("Missing required property '%s'", name), obj, kind),
				fmt.Sprintf("Add the '%s' property to the %s definition", name, label(kind))))
		}
	}
	for _, rule := range s.Rules {
		out = append(out, rule(c, obj)...)
	}
	return out
}

func label(kind validator.ComponentKind) string {
	switch kind {
	case validator.ComponentDescriptor:
		return "defineApp({...})"
	case validator.ComponentActions:
		return "action"
	case validator.ComponentAuth:
		return "auth"
	case validator.ComponentTriggers:
		return "trigger"
	case validator.ComponentFields:
		return "field"
	default:
		return "provider"
	}
}

// Default returns the built-in registry.
func Default() *Registry {
	return NewRegistry(
		ComponentStructure{
			Kind:               validator.ComponentDescriptor,
			Required:           true,
			RequiredProperties: []string{"name", "key", "categories", "iconUrl", "authDocUrl", "supportsConnections", "apiBaseUrl"},
			Rules: []Rule{
				TypeChecks(validator.ComponentDescriptor, descriptorKinds),
				ArrayOf("categories", tsast.KindString, validator.ComponentDescriptor),
				UnknownProperty,
				NestedActions,
				KeyWhitespace(validator.ComponentDescriptor),
				DependsOn,
			},
		},
		ComponentStructure{
			Kind:               validator.ComponentActions,
			Property:           "actions",
			RequiredProperties: []string{"key", "name", "mode", "description"},
			Rules: []Rule{
				TypeChecks(validator.ComponentActions, actionKinds),
				ActionImplementation,
				KeyWhitespace(validator.ComponentActions),
				ActionArguments,
			},
		},
		ComponentStructure{
			Kind:               validator.ComponentAuth,
			Property:           "auth",
			RequiredProperties: []string{"type"},
			Rules: []Rule{
				TypeChecks(validator.ComponentAuth, authKinds),
				AuthType,
				AuthFields,
			},
		},
		ComponentStructure{
			Kind:               validator.ComponentTriggers,
			Property:           "triggers",
			RequiredProperties: []string{"name", "key", "type", "description"},
			Rules: []Rule{
				TypeChecks(validator.ComponentTriggers, triggerKinds),
				ArrayOf("pollIntervalOptions", tsast.KindNumber, validator.ComponentTriggers),
				TriggerType,
				KeyWhitespace(validator.ComponentTriggers),
			},
		},
		ComponentStructure{
			Kind:               validator.ComponentFields,
			RequiredProperties: []string{"key", "label", "type"},
			Rules: []Rule{
				TypeChecks(validator.ComponentFields, fieldKinds),
				FieldType,
			},
		},
		ComponentStructure{
			Kind:               validator.ComponentDynamicFields,
			Property:           "dynamicFields",
			RequiredProperties: []string{"name", "key", "run"},
			Rules:              []Rule{TypeChecks(validator.ComponentDynamicFields, providerKinds)},
		},
		ComponentStructure{
			Kind:               validator.ComponentDynamicData,
			Property:           "dynamicData",
			RequiredProperties: []string{"name", "key", "run"},
			Rules:              []Rule{TypeChecks(validator.ComponentDynamicData, providerKinds)},
		},
	)
}

var providerKinds = []PropertyKind{
	{"name", tsast.KindString},
	{"key", tsast.KindString},
	{"run", tsast.KindFunction},
}
