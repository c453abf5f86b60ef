package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{name: "text", data: []byte("strict_mode: true\n"), perm: 0o644},
		{name: "empty data", data: []byte{}, perm: 0o644},
		{name: "private", data: []byte("jobs: 4\n"), perm: 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != tt.perm {
				t.Errorf("perm = %o, want %o", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.yaml")
	if err := AtomicWriteFile(path, []byte("x"), 0o644); err == nil {
		t.Error("expected error for missing parent directory")
	}
}

func TestAtomicWriteFile_OverwriteLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}
}

func TestEncodingFor(t *testing.T) {
	tests := []struct {
		path   string
		want   Encoding
		wantOK bool
	}{
		{"config.yaml", EncodingYAML, true},
		{"config.YML", EncodingYAML, true},
		{"config.toml", EncodingTOML, true},
		{"config.json", EncodingJSON, true},
		{"config.ini", "", false},
		{"config", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := EncodingFor(tt.path)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("EncodingFor(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

type sample struct {
	Mode string `json:"mode" yaml:"mode" toml:"mode"`
	Jobs int    `json:"jobs" yaml:"jobs" toml:"jobs"`
}

func TestAtomicWriteEncoded(t *testing.T) {
	want := sample{Mode: "tsc", Jobs: 4}

	decoders := map[Encoding]func([]byte, any) error{
		EncodingYAML: yaml.Unmarshal,
		EncodingTOML: toml.Unmarshal,
		EncodingJSON: json.Unmarshal,
	}

	for enc, decode := range decoders {
		t.Run(string(enc), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config."+string(enc))
			if err := AtomicWriteEncoded(path, want, enc, 0o600); err != nil {
				t.Fatalf("AtomicWriteEncoded() error = %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasSuffix(string(data), "\n") {
				t.Error("expected trailing newline")
			}

			var got sample
			if err := decode(data, &got); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if got != want {
				t.Errorf("round trip = %+v, want %+v", got, want)
			}
		})
	}
}

func TestMarshal_Errors(t *testing.T) {
	if _, err := Marshal(sample{}, "ini"); err == nil {
		t.Error("expected error for unsupported encoding")
	}
	if _, err := Marshal(make(chan int), EncodingYAML); err == nil {
		t.Error("expected error for unmarshalable YAML value")
	}
	if _, err := Marshal(make(chan int), EncodingJSON); err == nil {
		t.Error("expected error for unmarshalable JSON value")
	}
}
