package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()
	t.Setenv(debugEnv, "")

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"APPCHECK_DEBUG=1", "1", slog.LevelDebug},
		{"APPCHECK_DEBUG=true", "true", slog.LevelDebug},
		{"APPCHECK_DEBUG=2", "2", logging.LevelTrace},
		{"APPCHECK_DEBUG=0", "0", slog.LevelWarn},
		{"APPCHECK_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv(debugEnv, tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled at debug")
			}
		})
	}
}

func TestSetupLogging_Conflicts(t *testing.T) {
	origVerbosity, origQuiet, origFormat := verbosity, quiet, logFormat
	defer func() { verbosity, quiet, logFormat = origVerbosity, origQuiet, origFormat }()

	verbosity, quiet, logFormat = 1, true, "text"
	err := setupLogging(rootCmd)
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)

	verbosity, quiet, logFormat = 0, false, "xml"
	err = setupLogging(rootCmd)
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Error(), "xml")
}

func TestSetupLogging_LogFile(t *testing.T) {
	origFile := logFile
	defer func() { logFile = origFile }()

	logFile = filepath.Join(t.TempDir(), "appcheck.log")
	require.NoError(t, setupLogging(rootCmd))

	slog.Error("written to file")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
}

func TestRoot_BrokenConfig(t *testing.T) {
	workDir, _ := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.yaml"), []byte("jobs: -3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "app.ts"), []byte(validApp), 0o644))

	_, err := execute(t, "", "validate", "app.ts")
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)
	assert.Equal(t, "Run: appcheck doctor", exitErr.Suggestion)

	// Commands that repair the config still run.
	_, err = execute(t, "", "codes")
	assert.NoError(t, err)
}

func TestRoot_ColorFlag(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "codes", "--color", "sometimes")
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)

	out, err := execute(t, "", "codes", "STRUCTURE_PARSE_ERROR", "--color", "always")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")

	out, err = execute(t, "", "codes", "STRUCTURE_PARSE_ERROR", "--color", "always", "--no-color")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")
}
