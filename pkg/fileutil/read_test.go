package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulldiveVR/codex/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", MaxFileSize, false},
		{"too large", MaxFileSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.Truncate(tt.size); err != nil {
				t.Fatal(err)
			}
			f.Close()

			_, err = ReadFileWithLimit(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFileWithLimit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("expected ErrFileTooLarge, got %v", err)
			}
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	if _, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "nope.ts")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadWithLimit(t *testing.T) {
	data, err := ReadWithLimit(strings.NewReader("export default defineApp({});"))
	if err != nil {
		t.Fatalf("ReadWithLimit() error = %v", err)
	}
	if string(data) != "export default defineApp({});" {
		t.Errorf("ReadWithLimit() = %q", data)
	}

	_, err = ReadWithLimit(bytes.NewReader(make([]byte, MaxFileSize+10)))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}
