package validator

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity represents the blocking strength of a validation issue.
type Severity int

const (
	// SeverityError indicates a non-compliant candidate; it blocks acceptance.
	SeverityError Severity = iota
	// SeverityWarning indicates something suspicious worth human review.
	SeverityWarning
	// SeveritySuggestion indicates a style or best-practice note.
	SeveritySuggestion
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeveritySuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name for JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "suggestion":
		*s = SeveritySuggestion
	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}
	return nil
}

// MarshalYAML encodes the severity by name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a severity name.
func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	return s.UnmarshalText([]byte(node.Value))
}

// ComponentKind names the descriptor sub-structure an issue belongs to.
// It is context for rendering only; dispatch never switches on it.
type ComponentKind string

// Known component kinds.
const (
	ComponentDescriptor    ComponentKind = "Descriptor"
	ComponentActions       ComponentKind = "Actions"
	ComponentAuth          ComponentKind = "Auth"
	ComponentTriggers      ComponentKind = "Triggers"
	ComponentFields        ComponentKind = "Fields"
	ComponentDynamicFields ComponentKind = "DynamicFields"
	ComponentDynamicData   ComponentKind = "DynamicData"
)

// ComponentKinds returns every known component kind in declaration order.
func ComponentKinds() []ComponentKind {
	return []ComponentKind{
		ComponentDescriptor,
		ComponentActions,
		ComponentAuth,
		ComponentTriggers,
		ComponentFields,
		ComponentDynamicFields,
		ComponentDynamicData,
	}
}

// Location is a 1-based source position.
type Location struct {
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	FilePath string `json:"filePath,omitempty" yaml:"filePath,omitempty"`
}

func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.FilePath != "" {
		return fmt.Sprintf("%s:%d:%d", l.FilePath, l.Line, l.Column)
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Issue represents a single validation problem. Issues are values and are
// never mutated after they are appended to a Result.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity `json:"severity" yaml:"severity"`
	// Message is a human-readable description of the problem.
	Message string `json:"message" yaml:"message"`
	// Code is the stable machine-readable identifier, e.g. STRUCTURE_MISSING_PROPERTY.
	Code string `json:"code" yaml:"code"`
	// Location points at the offending node (optional).
	Location *Location `json:"location,omitempty" yaml:"location,omitempty"`
	// Component is the descriptor sub-structure the issue belongs to (optional).
	Component ComponentKind `json:"component,omitempty" yaml:"component,omitempty"`
	// Suggestion is embedded remediation text that overrides the code table.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(" ")
	sb.WriteString(i.Code)
	if i.Location != nil {
		sb.WriteString(" at ")
		sb.WriteString(i.Location.String())
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	return sb.String()
}

// Metadata carries facts extracted from the candidate alongside the verdict.
type Metadata struct {
	PluginName string `json:"pluginName,omitempty" yaml:"pluginName,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	ElapsedMs  int64  `json:"elapsedMs" yaml:"elapsedMs"`
}

// Result aggregates validation issues.
type Result struct {
	IsValid  bool      `json:"isValid" yaml:"isValid"`
	Issues   []Issue   `json:"issues" yaml:"issues"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NewResult returns an empty, valid result.
func NewResult() *Result {
	return &Result{IsValid: true, Issues: []Issue{}}
}

// Add appends an issue and keeps IsValid consistent.
func (r *Result) Add(i Issue) {
	r.Issues = append(r.Issues, i)
	if i.Severity == SeverityError {
		r.IsValid = false
	}
}

// AddError adds an error issue to the result.
func (r *Result) AddError(code, message string, loc *Location, component ComponentKind) {
	r.Add(Issue{Severity: SeverityError, Code: code, Message: message, Location: loc, Component: component})
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(code, message string, loc *Location, component ComponentKind) {
	r.Add(Issue{Severity: SeverityWarning, Code: code, Message: message, Location: loc, Component: component})
}

// AddSuggestion adds a suggestion issue to the result.
func (r *Result) AddSuggestion(code, message string, loc *Location, component ComponentKind) {
	r.Add(Issue{Severity: SeveritySuggestion, Code: code, Message: message, Location: loc, Component: component})
}

// Merge appends every issue of other, preserving order.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for _, i := range other.Issues {
		r.Add(i)
	}
}

// Finalize recomputes IsValid from the issue list. With strict set every
// warning is promoted to an error first.
func (r *Result) Finalize(strict bool) {
	if strict {
		for idx := range r.Issues {
			if r.Issues[idx].Severity == SeverityWarning {
				r.Issues[idx].Severity = SeverityError
			}
		}
	}
	r.IsValid = !r.HasErrors()
}

// Clone returns a deep copy so cached results can be handed out safely.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{IsValid: r.IsValid, Issues: make([]Issue, len(r.Issues))}
	for idx, i := range r.Issues {
		if i.Location != nil {
			loc := *i.Location
			i.Location = &loc
		}
		out.Issues[idx] = i
	}
	if r.Metadata != nil {
		md := *r.Metadata
		out.Metadata = &md
	}
	return out
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.bySeverity(SeverityError)
}

// Warnings returns a slice of all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.bySeverity(SeverityWarning)
}

// Suggestions returns a slice of all issues with SeveritySuggestion.
func (r *Result) Suggestions() []Issue {
	return r.bySeverity(SeveritySuggestion)
}

func (r *Result) bySeverity(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}

// ByCode returns all issues carrying the given code.
func (r *Result) ByCode(code string) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Code == code {
			res = append(res, i)
		}
	}
	return res
}
