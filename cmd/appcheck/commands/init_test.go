package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulldiveVR/codex/internal/config"
)

func TestInit_WritesDefaults(t *testing.T) {
	tests := []struct {
		name string
		args []string
		file string
	}{
		{name: "yaml default", args: []string{"init", "--yes"}, file: "config.yaml"},
		{name: "toml type", args: []string{"init", "--yes", "--type", "toml"}, file: "config.toml"},
		{name: "json type", args: []string{"init", "-y", "--type", "JSON"}, file: "config.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, configDir := isolate(t)

			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)

			path := filepath.Join(configDir, tt.file)
			assert.Contains(t, out, "Created "+path)

			config.Init()
			cfg, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, config.Default(), cfg)
		})
	}
}

func TestInit_PathExtensionWins(t *testing.T) {
	workDir, _ := isolate(t)
	path := filepath.Join(workDir, "config.toml")

	_, err := execute(t, "", "init", "--yes", "--path", path, "--type", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "strict_mode = false")
}

func TestInit_Existing(t *testing.T) {
	_, configDir := isolate(t)
	path := filepath.Join(configDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: 2\n"), 0o644))

	out, err := execute(t, "", "init", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	data, _ := os.ReadFile(path)
	assert.Equal(t, "jobs: 2\n", string(data))

	_, err = execute(t, "", "init", "--yes", "--force")
	require.NoError(t, err)
	data, _ = os.ReadFile(path)
	assert.Contains(t, string(data), "cache_size: 256")
}

func TestInit_Prompt(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		created bool
	}{
		{name: "yes", answer: "y\n", created: true},
		{name: "full yes", answer: "YES\n", created: true},
		{name: "no", answer: "n\n", created: false},
		{name: "empty", answer: "", created: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, configDir := isolate(t)

			out, err := execute(t, tt.answer, "init")
			require.NoError(t, err)
			assert.Contains(t, out, "Proceed? [y/N]")

			_, statErr := os.Stat(filepath.Join(configDir, "config.yaml"))
			assert.Equal(t, tt.created, statErr == nil)
			if !tt.created {
				assert.Contains(t, out, "Aborted")
			}
		})
	}
}

func TestInit_BadType(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "init", "--yes", "--type", "ini")
	assert.Error(t, err)
}
