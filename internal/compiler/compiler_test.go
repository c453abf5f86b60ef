package compiler

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/validator"
)

func TestNew(t *testing.T) {
	tests := []struct {
		mode    Mode
		want    any
		wantErr bool
	}{
		{mode: "", want: &SyntaxChecker{}},
		{mode: ModeSyntax, want: &SyntaxChecker{}},
		{mode: "TSC", want: &TSCChecker{}},
		{mode: ModeNone, want: Nop{}},
		{mode: "eslint", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c, err := New(Config{Mode: tt.mode})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode("syntax"))
	assert.True(t, ValidMode("None"))
	assert.False(t, ValidMode(""))
	assert.False(t, ValidMode("babel"))
}

func TestNop(t *testing.T) {
	result, err := Nop{}.Check(context.Background(), []byte("{{{"), "app.ts")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
}

func TestSyntaxChecker(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantValid bool
		wantCode  string
	}{
		{
			name:      "clean module",
			src:       "export const x: number = 1;\n",
			wantValid: true,
		},
		{
			name:      "unclosed object",
			src:       "export default defineApp({\n  name: \"a\",\n",
			wantValid: false,
		},
		{
			name:      "stray token",
			src:       "const = 5;\n",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewSyntaxChecker().Check(context.Background(), []byte(tt.src), "plugin.ts")
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.IsValid)
			for _, i := range result.Issues {
				assert.Contains(t, []string{codes.SyntaxError, codes.SyntaxMissing}, i.Code)
				require.NotNil(t, i.Location)
				assert.Equal(t, "plugin.ts", i.Location.FilePath)
				assert.GreaterOrEqual(t, i.Location.Line, 1)
				assert.GreaterOrEqual(t, i.Location.Column, 1)
			}
		})
	}
}

func TestSyntaxChecker_CapsIssues(t *testing.T) {
	src := ""
	for range 50 {
		src += "const = ;\n"
	}
	c := NewSyntaxChecker()
	result, err := c.Check(context.Background(), []byte(src), "app.ts")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Issues), DefaultMaxSyntaxErrors+1)
}

func TestParseDiagnostics(t *testing.T) {
	scratch := "/tmp/appcheck-tsc-1/app.ts"
	out := []byte(`/tmp/appcheck-tsc-1/app.ts(3,7): error TS2322: Type 'string' is not assignable to type 'number'.
/tmp/appcheck-tsc-1/app.ts(1,24): error TS2307: Cannot find module '@plugins/sdk' or its corresponding type declarations.
  continuation of an ignored message
/tmp/appcheck-tsc-1/app.ts(9,1): error TS2345: Argument of type '{ name: string; }' is not assignable to parameter of type 'App'.
  Property 'key' is missing in type '{ name: string; }'.
error TS6053: File 'missing.ts' not found.
/tmp/appcheck-tsc-1/app.ts(12,3): message TS6133: 'unused' is declared but its value is never read.
`)

	issues := ParseDiagnostics(out, scratch, "plugin.ts", DefaultIgnoreCodes)
	require.Len(t, issues, 4)

	assert.Equal(t, "TS2322", issues[0].Code)
	assert.Equal(t, validator.SeverityError, issues[0].Severity)
	assert.Equal(t, &validator.Location{Line: 3, Column: 7, FilePath: "plugin.ts"}, issues[0].Location)

	assert.Equal(t, "TS2345", issues[1].Code)
	assert.Equal(t,
		"Argument of type '{ name: string; }' is not assignable to parameter of type 'App'. Property 'key' is missing in type '{ name: string; }'.",
		issues[1].Message)

	assert.Equal(t, "TS6053", issues[2].Code)
	assert.Nil(t, issues[2].Location)

	assert.Equal(t, validator.SeveritySuggestion, issues[3].Severity)
}

func TestParseDiagnostics_NoIgnore(t *testing.T) {
	out := []byte("app.ts(1,1): error TS2307: Cannot find module 'x'.\n")
	issues := ParseDiagnostics(out, "/tmp/x/app.ts", "app.ts", nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "TS2307", issues[0].Code)
}

func TestScratchName(t *testing.T) {
	assert.Equal(t, "widget.tsx", scratchName("src/widget.tsx"))
	assert.Equal(t, "app.ts", scratchName("app.ts"))
	assert.Equal(t, validator.DefaultFileName, scratchName("notes.md"))
	assert.Equal(t, validator.DefaultFileName, scratchName(""))
}

// fakeTSC installs a shell script standing in for the compiler.
func fakeTSC(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "tsc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestTSCChecker_Diagnostics(t *testing.T) {
	// The last argument is the scratch file; echo diagnostics against it.
	bin := fakeTSC(t, `for f; do :; done
echo "$f(2,5): error TS2322: Type 'number' is not assignable to type 'string'."
echo "$f(1,1): error TS2307: Cannot find module '@plugins/sdk'."
exit 2`)

	c := NewTSCChecker(WithTSCPath(bin))
	result, err := c.Check(context.Background(), []byte("const x: string = 1;\n"), "plugin.ts")
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.False(t, result.IsValid)
	assert.Equal(t, "TS2322", result.Issues[0].Code)
	assert.Equal(t, "plugin.ts", result.Issues[0].Location.FilePath)
}

func TestTSCChecker_Clean(t *testing.T) {
	bin := fakeTSC(t, "exit 0")
	result, err := NewTSCChecker(WithTSCPath(bin)).Check(context.Background(), []byte("export {};\n"), "app.ts")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
}

func TestTSCChecker_Crash(t *testing.T) {
	bin := fakeTSC(t, "echo 'boom' >&2\nexit 1")
	_, err := NewTSCChecker(WithTSCPath(bin)).Check(context.Background(), []byte("export {};\n"), "app.ts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestTSCChecker_Unavailable(t *testing.T) {
	c := NewTSCChecker(WithTSCPath(filepath.Join(t.TempDir(), "no-such-tsc")))
	_, err := c.Check(context.Background(), []byte("export {};\n"), "app.ts")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCompilerUnavailable))
}

func TestTSCChecker_Options(t *testing.T) {
	c := NewTSCChecker()
	assert.Equal(t, DefaultTSC, c.Path())
	assert.Equal(t, DefaultIgnoreCodes, c.ignore)

	c = NewTSCChecker(WithTSCPath(""), WithIgnoreCodes())
	assert.Equal(t, DefaultTSC, c.Path())
	assert.Equal(t, DefaultIgnoreCodes, c.ignore)

	c = NewTSCChecker(WithTSCPath("/opt/tsc"), WithIgnoreCodes(7016))
	assert.Equal(t, "/opt/tsc", c.Path())
	assert.Equal(t, []int{7016}, c.ignore)
}
