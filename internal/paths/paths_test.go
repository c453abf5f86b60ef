package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func TestConfigDir(t *testing.T) {
	got := ConfigDir()
	if !strings.HasPrefix(got, xdg.ConfigHome) {
		t.Errorf("ConfigDir() = %q, want prefix %q", got, xdg.ConfigHome)
	}
	if filepath.Base(got) != AppName {
		t.Errorf("ConfigDir() base = %q, want %q", filepath.Base(got), AppName)
	}
}

func TestDefaultConfigFile(t *testing.T) {
	want := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	if got := DefaultConfigFile(); got != want {
		t.Errorf("DefaultConfigFile() = %q, want %q", got, want)
	}
}

func TestCacheDir(t *testing.T) {
	want := filepath.Join(xdg.CacheHome, AppName)
	if got := CacheDir(); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := ResolveHome()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "tilde only", in: "~", want: home},
		{name: "tilde prefix", in: "~/bin/tsc", want: filepath.Join(home, "bin", "tsc")},
		{name: "absolute", in: "/usr/bin/tsc", want: "/usr/bin/tsc"},
		{name: "bare name", in: "tsc", want: "tsc"},
		{name: "other user", in: "~bob/tsc", want: "~bob/tsc"},
		{name: "null byte", in: "ts\x00c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpandHome(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name     string
		perm     os.FileMode
		wantPerm os.FileMode
	}{
		{name: "default perm", perm: 0, wantPerm: DefaultDirPerm},
		{name: "explicit perm", perm: 0o755, wantPerm: 0o755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "a", "b")
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Fatalf("EnsureDir() error = %v", err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if !info.IsDir() {
				t.Fatal("expected a directory")
			}
			if got := info.Mode().Perm(); got&^tt.wantPerm != 0 {
				t.Errorf("perm = %o, want subset of %o", got, tt.wantPerm)
			}
			// Idempotent.
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Errorf("second EnsureDir() error = %v", err)
			}
		})
	}
}
