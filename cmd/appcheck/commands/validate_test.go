package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/validator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestValidate_File(t *testing.T) {
	workDir, _ := isolate(t)
	writeFile(t, filepath.Join(workDir, "acme.ts"), validApp)

	out, err := execute(t, "", "validate", "acme.ts")
	require.NoError(t, err)
	assert.Contains(t, out, "acme.ts passed")
}

func TestValidate_InvalidFileExitCode(t *testing.T) {
	workDir, _ := isolate(t)
	writeFile(t, filepath.Join(workDir, "broken.ts"), missingKeyApp)

	out, err := execute(t, "", "validate", "broken.ts")
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)
	assert.ErrorIs(t, err, errors.ErrValidationFailed)
	assert.Equal(t, "1 of 1 file(s): validation failed", exitErr.Error())
	assert.Contains(t, out, "broken.ts failed")
	assert.Contains(t, out, codes.MissingProperty)
	assert.Contains(t, out, "hint:")
}

func TestValidate_NoHints(t *testing.T) {
	workDir, _ := isolate(t)
	writeFile(t, filepath.Join(workDir, "broken.ts"), missingKeyApp)

	out, err := execute(t, "", "validate", "broken.ts", "--no-hints")
	require.Error(t, err)
	assert.NotContains(t, out, "hint:")
}

func TestValidate_StdinJSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, validApp, "validate", "-", "--format", "json", "--name", "acme.ts")
	require.NoError(t, err)

	var result validator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.IsValid)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, "Acme CRM", result.Metadata.PluginName)
}

func TestValidate_StdinProse(t *testing.T) {
	isolate(t)

	out, err := execute(t, "Sure! Here is the plugin you asked for.", "validate", "-", "-o", "json")
	require.Error(t, err)

	var result validator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.IsValid)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, codes.NotCode, result.Issues[0].Code)
}

func TestValidate_DirectoryWalk(t *testing.T) {
	workDir, _ := isolate(t)
	writeFile(t, filepath.Join(workDir, "plugins", "acme.ts"), validApp)
	writeFile(t, filepath.Join(workDir, "plugins", "nested", "other.tsx"), validApp)
	writeFile(t, filepath.Join(workDir, "plugins", "notes.md"), "# not code")
	writeFile(t, filepath.Join(workDir, "plugins", "types.d.ts"), missingKeyApp)
	writeFile(t, filepath.Join(workDir, "plugins", "node_modules", "dep", "index.ts"), missingKeyApp)
	writeFile(t, filepath.Join(workDir, "plugins", "fixtures", "bad.ts"), missingKeyApp)

	out, err := execute(t, "", "validate", "plugins", "--ignore", "**/fixtures/**", "--format", "json")
	require.NoError(t, err)

	var reports []validator.FileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	var names []string
	for _, r := range reports {
		names = append(names, filepath.ToSlash(r.Path))
	}
	assert.ElementsMatch(t, []string{"plugins/acme.ts", "plugins/nested/other.tsx"}, names)
}

func TestValidate_StrictFlag(t *testing.T) {
	workDir, _ := isolate(t)
	app := `import { defineApp } from "@plugins/sdk";

export default defineApp({
  name: "Acme CRM",
  key: "acme-crm",
  categories: ["crm"],
  iconUrl: "https://acme.test/icon.svg",
  authDocUrl: "https://acme.test/docs/auth",
  supportsConnections: true,
  apiBaseUrl: "https://api.acme.test",
  actions: [],
});
`
	writeFile(t, filepath.Join(workDir, "empty.ts"), app)

	_, err := execute(t, "", "validate", "empty.ts")
	require.NoError(t, err)

	_, err = execute(t, "", "validate", "empty.ts", "--strict")
	require.Error(t, err)
}

func TestValidate_BadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"validate", "x.ts", "--format", "xml"}},
		{name: "unknown compiler", args: []string{"validate", "x.ts", "--compiler", "babel"}},
		{name: "malformed ignore", args: []string{"validate", "x.ts", "--ignore", "[a-"}},
		{name: "missing file", args: []string{"validate", "missing.ts"}},
		{name: "no sources", args: []string{"validate", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir, _ := isolate(t)
			writeFile(t, filepath.Join(workDir, "x.ts"), validApp)
			if tt.name == "no sources" {
				require.NoError(t, os.Remove(filepath.Join(workDir, "x.ts")))
			}

			_, err := execute(t, "", tt.args...)
			var exitErr *errors.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.NotNil(t, exitErr.Err)
		})
	}
}

func TestValidate_ConfigDefaults(t *testing.T) {
	workDir, _ := isolate(t)
	writeFile(t, filepath.Join(workDir, "config.yaml"), "format: yaml\nstrict_mode: true\n")
	writeFile(t, filepath.Join(workDir, "acme.ts"), validApp)

	out, err := execute(t, "", "validate", "acme.ts")
	require.NoError(t, err)
	assert.Contains(t, out, "isValid: true")
}
