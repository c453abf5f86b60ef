package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/validator"
)

func TestLooksLikeCode(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"import", `import { defineApp } from "sdk";`, true},
		{"leading whitespace export", "\n\n  export default 1;", true},
		{"require", `require("x")`, true},
		{"mentions defineApp", "// sure!\nconst a = defineApp({})", true},
		{"prose", "Here is your plugin, enjoy!", false},
		{"empty", "   ", false},
		{"import as prefix of word", "important notes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeCode(tt.src))
		})
	}
}

func codesOf(r *validator.Result) []string {
	out := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		out = append(out, i.Code)
	}
	return out
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		want      []string
		wantValid bool
	}{
		{
			"well formed",
			"import { defineApp } from \"sdk\";\nexport default defineApp({ actions: [] });",
			[]string{},
			true,
		},
		{
			"aliased import is only a warning",
			"import { defineApp as d } from \"sdk\";\nexport default defineApp({});",
			[]string{},
			true,
		},
		{
			"missing import",
			"export default defineApp({});",
			[]string{codes.LegacyMissingImport},
			true,
		},
		{
			"missing export",
			"import { defineApp } from \"sdk\";\nconst x = defineApp({});",
			[]string{codes.LegacyMissingExport},
			false,
		},
		{
			"unbalanced braces",
			"import { defineApp } from \"sdk\";\nexport default defineApp({ a: [1 );",
			[]string{codes.LegacyUnbalanced, codes.LegacyUnbalanced},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Check(tt.src)
			assert.Equal(t, tt.want, codesOf(result))
			assert.Equal(t, tt.wantValid, result.IsValid)
		})
	}
}
