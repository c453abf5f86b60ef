package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/fulldiveVR/codex/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces machine-readable YAML output.
	FormatYAML Format = "yaml"
)

// ValidFormat reports whether f names a supported report format.
func ValidFormat(f string) bool {
	switch Format(f) {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// SuggestFunc maps an issue to remediation text. It must be total.
type SuggestFunc func(Issue) string

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithSuggestions makes text reports print remediation hints, and fills the
// Suggestion field of JSON/YAML issues that carry none.
func WithSuggestions(fn SuggestFunc) ReporterOption {
	return func(r *Reporter) {
		r.suggest = fn
	}
}

// WithSuggestionLevel includes Suggestion-severity issues in text output.
func WithSuggestionLevel(show bool) ReporterOption {
	return func(r *Reporter) {
		r.showSuggestions = show
	}
}

// Reporter formats and writes validation results.
type Reporter struct {
	out             io.Writer
	format          Format
	suggest         SuggestFunc
	showSuggestions bool
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		out:             out,
		format:          format,
		showSuggestions: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FileReport pairs a result with the file it was produced for.
type FileReport struct {
	Path   string  `json:"path" yaml:"path"`
	Result *Result `json:"result" yaml:"result"`
}

// Report writes a single validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}
	return r.ReportFiles([]FileReport{{Result: result}})
}

// ReportFiles writes the results for several files.
func (r *Reporter) ReportFiles(reports []FileReport) error {
	reports = r.withSuggestions(reports)

	switch r.format {
	case FormatJSON:
		return r.reportJSON(reports)
	case FormatYAML:
		return r.reportYAML(reports)
	default:
		for _, fr := range reports {
			if fr.Result == nil {
				continue
			}
			r.reportText(fr.Path, fr.Result)
		}
		return nil
	}
}

// withSuggestions returns copies of the results whose issues carry resolved
// remediation text, leaving the caller's results untouched.
func (r *Reporter) withSuggestions(reports []FileReport) []FileReport {
	if r.suggest == nil || r.format == FormatText {
		return reports
	}
	out := make([]FileReport, len(reports))
	for idx, fr := range reports {
		res := fr.Result.Clone()
		if res != nil {
			for j := range res.Issues {
				if res.Issues[j].Suggestion == "" {
					res.Issues[j].Suggestion = r.suggest(res.Issues[j])
				}
			}
		}
		out[idx] = FileReport{Path: fr.Path, Result: res}
	}
	return out
}

// reportJSON writes the results as JSON. A single unnamed result is written
// bare so pipelines can consume it without unwrapping.
func (r *Reporter) reportJSON(reports []FileReport) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	var v any = reports
	if len(reports) == 1 && reports[0].Path == "" {
		v = reports[0].Result
	}
	return errors.Wrap(encoder.Encode(v), "encoding JSON report")
}

// reportYAML writes the results as YAML.
func (r *Reporter) reportYAML(reports []FileReport) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	var v any = reports
	if len(reports) == 1 && reports[0].Path == "" {
		v = reports[0].Result
	}
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, "encoding YAML report")
	}
	return errors.Wrap(encoder.Close(), "closing YAML encoder")
}

// reportText writes the result as human-readable text.
func (r *Reporter) reportText(path string, result *Result) {
	label := "Validation"
	if path != "" {
		label = path
	}

	errs := result.Errors()
	warnings := result.Warnings()
	var suggestions []Issue
	if r.showSuggestions {
		suggestions = result.Suggestions()
	}

	if len(errs) == 0 && len(warnings) == 0 && len(suggestions) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %s passed", label))
		return
	}

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	if len(suggestions) > 0 {
		summary = append(summary, color.CyanString("%d suggestion(s)", len(suggestions)))
	}
	verdict := "passed"
	if !result.IsValid {
		verdict = "failed"
	}
	fmt.Fprintf(r.out, "%s %s: %s\n\n", label, verdict, strings.Join(summary, ", "))

	r.printGroup("Errors:", errs, color.FgRed)
	r.printGroup("Warnings:", warnings, color.FgYellow)
	r.printGroup("Suggestions:", suggestions, color.FgCyan)
}

func (r *Reporter) printGroup(title string, issues []Issue, c color.Attribute) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(r.out, title)
	for _, i := range issues {
		r.printIssue(i, c)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()
	dim := color.New(color.FgHiBlack)

	// Format:  • [line:col] CODE message (component)
	var sb strings.Builder
	sb.WriteString("  • ")

	if i.Location != nil {
		sb.WriteString(dim.Sprintf("%d:%d ", i.Location.Line, i.Location.Column))
	}
	sb.WriteString(printer(i.Code))
	sb.WriteString(" ")
	sb.WriteString(i.Message)

	if i.Component != "" {
		sb.WriteString(" ")
		sb.WriteString(dim.Sprintf("(%s)", i.Component))
	}

	fmt.Fprintln(r.out, sb.String())

	hint := i.Suggestion
	if hint == "" && r.suggest != nil {
		hint = r.suggest(i)
	}
	if hint != "" {
		fmt.Fprintf(r.out, "    hint: %s\n", hint)
	}
}
