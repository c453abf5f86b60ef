package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/fulldiveVR/codex/internal/compiler"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/paths"
)

// isolate points the config search at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	t.Chdir(t.TempDir())
	return dir
}

func TestInit(t *testing.T) {
	isolate(t)
	Init()

	if viper.GetString(KeyFormat) != "text" {
		t.Errorf("expected format default text, got %q", viper.GetString(KeyFormat))
	}
	if viper.GetString(KeyCompilerMode) != "syntax" {
		t.Errorf("expected compiler.mode default syntax, got %q", viper.GetString(KeyCompilerMode))
	}
	if viper.GetDuration(KeyTimeout) != 30*time.Second {
		t.Errorf("expected timeout default 30s, got %v", viper.GetDuration(KeyTimeout))
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.CacheSize != 256 {
		t.Errorf("CacheSize = %d, want 256", cfg.CacheSize)
	}
	if len(cfg.Compiler.IgnoreCodes) != 2 {
		t.Errorf("IgnoreCodes = %v, want defaults", cfg.Compiler.IgnoreCodes)
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{file: "config.yaml", content: "strict_mode: true\njobs: 4\ntimeout: 5s\ncompiler:\n  mode: tsc\n"},
		{file: "config.toml", content: "strict_mode = true\njobs = 4\ntimeout = \"5s\"\n[compiler]\nmode = \"tsc\"\n"},
		{file: "config.json", content: `{"strict_mode": true, "jobs": 4, "timeout": "5s", "compiler": {"mode": "tsc"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			dir := isolate(t)
			if err := os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			Init()

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !cfg.StrictMode || cfg.Jobs != 4 || cfg.Timeout != 5*time.Second || cfg.Compiler.Mode != "tsc" {
				t.Errorf("unexpected config: %+v", cfg)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("APPCHECK_COMPILER_MODE", "none")
	t.Setenv("APPCHECK_STRICT_MODE", "true")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Compiler.Mode != "none" {
		t.Errorf("Compiler.Mode = %q, want none", cfg.Compiler.Mode)
	}
	if !cfg.StrictMode {
		t.Error("StrictMode = false, want true")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() with non-existent explicit path should error")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{name: "format", content: "format: xml\n", wantKey: KeyFormat},
		{name: "jobs", content: "jobs: -1\n", wantKey: KeyJobs},
		{name: "compiler mode", content: "compiler:\n  mode: babel\n", wantKey: KeyCompilerMode},
		{name: "ignore pattern", content: "ignore_patterns: [\"[oops\"]\n", wantKey: KeyIgnorePatterns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			Init()

			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fe.Key != tt.wantKey {
				t.Errorf("FieldError.Key = %q, want %q", fe.Key, tt.wantKey)
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig in chain: %v", err)
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	dir := t.TempDir()
	fileA := filepath.Join(dir, "config_a.yaml")
	if err := os.WriteFile(fileA, []byte("jobs: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	isolate(t)
	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	dirB := isolate(t)
	if err := os.WriteFile(filepath.Join(dirB, "config.yaml"), []byte("jobs: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Re-initializing must forget fileA.
	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if cfg.Jobs != 7 {
		t.Errorf("Jobs = %d, want 7 (config used: %s)", cfg.Jobs, viper.ConfigFileUsed())
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("Validate(Default()) = %v, want none", errs)
	}
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v, want one error", errs)
	}

	cfg := Default()
	cfg.Timeout = -time.Second
	cfg.CacheSize = -1
	cfg.CacheTTL = -time.Minute
	cfg.Compiler.IgnoreCodes = []int{2307, 0, -4}
	cfg.Compiler.TSCPath = "ts\x00c"
	if errs := Validate(cfg); len(errs) != 5 {
		t.Errorf("Validate() = %v, want 5 errors", errs)
	}
}

func TestConfig_Conversions(t *testing.T) {
	cfg := Default()
	cfg.StrictMode = true
	cfg.Compiler.Mode = "tsc"
	cfg.Compiler.TSCPath = "/opt/node/bin/tsc"

	opts := cfg.Options()
	if !opts.StrictMode || len(opts.IgnorePatterns) != 2 {
		t.Errorf("Options() = %+v", opts)
	}

	cc, err := cfg.CompilerSettings()
	if err != nil {
		t.Fatalf("CompilerSettings() error: %v", err)
	}
	if cc.Mode != compiler.ModeTSC || cc.TSCPath != "/opt/node/bin/tsc" {
		t.Errorf("CompilerSettings() = %+v", cc)
	}
}

func TestConfig_Settings(t *testing.T) {
	s := Default().Settings()
	if s[KeyTimeout] != "30s" {
		t.Errorf("timeout = %v, want 30s", s[KeyTimeout])
	}
	if s[KeyCacheTTL] != "0s" {
		t.Errorf("cache_ttl = %v, want 0s", s[KeyCacheTTL])
	}
	comp, ok := s["compiler"].(map[string]any)
	if !ok {
		t.Fatalf("compiler section = %T, want map", s["compiler"])
	}
	if comp["mode"] != "syntax" {
		t.Errorf("compiler.mode = %v, want syntax", comp["mode"])
	}
}

func TestCurrent(t *testing.T) {
	isolate(t)
	Init()
	viper.Set(KeyJobs, 9)

	cfg, err := Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if cfg.Jobs != 9 {
		t.Errorf("Jobs = %d, want 9", cfg.Jobs)
	}
}

func TestDirAndDefaultFile(t *testing.T) {
	dir := isolate(t)

	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got, want := DefaultFile(), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("DefaultFile() = %q, want %q", got, want)
	}

	t.Setenv(ConfigDirEnv, "")
	if got := DefaultFile(); got != paths.DefaultConfigFile() {
		t.Errorf("DefaultFile() = %q, want %q", got, paths.DefaultConfigFile())
	}
}
