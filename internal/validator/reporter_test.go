package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleResult() *Result {
	result := NewResult()
	result.AddError("STRUCTURE_MISSING_PROPERTY", "missing required property 'name'",
		&Location{Line: 3, Column: 26, FilePath: "app.ts"}, ComponentDescriptor)
	result.AddWarning("STRUCTURE_ACTIONS_EMPTY", "actions array is empty", nil, ComponentActions)
	result.Issues[1].Suggestion = "Add at least one action"
	return result
}

func TestReporter_Report(t *testing.T) {
	result := sampleResult()
	suggest := func(i Issue) string {
		if i.Suggestion != "" {
			return i.Suggestion
		}
		return "fix " + i.Code
	}

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText, WithSuggestions(suggest))
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "1 error(s)") {
			t.Error("output missing error summary")
		}
		if !strings.Contains(output, "3:26 STRUCTURE_MISSING_PROPERTY missing required property 'name'") {
			t.Errorf("output missing error details:\n%s", output)
		}
		if !strings.Contains(output, "(Descriptor)") {
			t.Error("output missing component")
		}
		if !strings.Contains(output, "hint: fix STRUCTURE_MISSING_PROPERTY") {
			t.Error("output missing table suggestion")
		}
		if !strings.Contains(output, "hint: Add at least one action") {
			t.Error("output missing embedded suggestion")
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatJSON, WithSuggestions(suggest))
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}
		if len(decoded.Issues) != 2 {
			t.Fatalf("decoded issues count = %d, want 2", len(decoded.Issues))
		}
		if decoded.Issues[0].Severity != SeverityError {
			t.Errorf("first issue severity = %v, want error", decoded.Issues[0].Severity)
		}
		if decoded.Issues[0].Suggestion != "fix STRUCTURE_MISSING_PROPERTY" {
			t.Errorf("first issue suggestion = %q", decoded.Issues[0].Suggestion)
		}
		if result.Issues[0].Suggestion != "" {
			t.Error("reporter mutated the caller's result")
		}
		if !strings.Contains(buf.String(), `"severity": "warning"`) {
			t.Error("severity not encoded by name")
		}
	})

	t.Run("yaml format with paths", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatYAML)
		err := reporter.ReportFiles([]FileReport{{Path: "a.ts", Result: result}})
		if err != nil {
			t.Fatalf("ReportFiles() error: %v", err)
		}

		var decoded []FileReport
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode YAML output: %v", err)
		}
		if len(decoded) != 1 || decoded[0].Path != "a.ts" {
			t.Fatalf("decoded = %+v", decoded)
		}
		if decoded[0].Result.Issues[1].Severity != SeverityWarning {
			t.Errorf("second issue severity = %v, want warning", decoded[0].Result.Issues[1].Severity)
		}
	})

	t.Run("empty result text", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(NewResult()); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed") {
			t.Error("output missing success message")
		}
	})

	t.Run("suggestions hidden", func(t *testing.T) {
		res := NewResult()
		res.AddSuggestion("STRUCTURE_UNVERIFIABLE_VALUE", "cannot verify", nil, ComponentDescriptor)
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText, WithSuggestionLevel(false))
		if err := reporter.Report(res); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed") {
			t.Errorf("expected pass output, got %q", buf.String())
		}
	})
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false", f)
		}
	}
	if ValidFormat("xml") {
		t.Error("ValidFormat(xml) = true")
	}
}
