package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/validator"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name  string
		issue validator.Issue
		want  string
	}{
		{
			name:  "embedded suggestion wins",
			issue: validator.Issue{Code: codes.ActionsEmpty, Suggestion: "custom"},
			want:  "custom",
		},
		{
			name:  "table lookup",
			issue: validator.Issue{Code: codes.ActionsEmpty},
			want:  "Add at least one action, or remove the empty actions array.",
		},
		{
			name:  "compiler code",
			issue: validator.Issue{Code: "TS2322"},
			want:  compilerHint,
		},
		{
			name:  "unknown code",
			issue: validator.Issue{Code: "SOMETHING_ELSE"},
			want:  "",
		},
		{
			name:  "prefix without digits",
			issue: validator.Issue{Code: "TSX"},
			want:  "",
		},
		{
			name:  "zero value",
			issue: validator.Issue{},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, For(tt.issue))
		})
	}
}

func TestFor_MissingDescriptorMentionsExport(t *testing.T) {
	assert.Contains(t, For(validator.Issue{Code: codes.MissingDefineApp}), "export")
}

func TestCodes(t *testing.T) {
	entries := Codes()
	assert.Len(t, entries, len(catalog))
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Code, entries[i].Code)
	}
	for _, e := range entries {
		assert.NotEmpty(t, e.Text, e.Code)
		text, ok := Lookup(e.Code)
		assert.True(t, ok)
		assert.Equal(t, e.Text, text)
	}
}
