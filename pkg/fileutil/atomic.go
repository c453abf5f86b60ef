// Package fileutil provides bounded reads and atomic writes.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fulldiveVR/codex/internal/errors"
)

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".appcheck-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true
	return nil
}

// Encoding selects the serialization used by AtomicWriteEncoded.
type Encoding string

// Supported encodings, named after their file extensions.
const (
	EncodingYAML Encoding = "yaml"
	EncodingTOML Encoding = "toml"
	EncodingJSON Encoding = "json"
)

// EncodingFor maps a file extension to its encoding. Unknown extensions
// report false.
func EncodingFor(path string) (Encoding, bool) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return EncodingYAML, true
	case "toml":
		return EncodingTOML, true
	case "json":
		return EncodingJSON, true
	default:
		return "", false
	}
}

// Marshal encodes v with enc. The output always ends in a newline.
func Marshal(v any, enc Encoding) (data []byte, err error) {
	switch enc {
	case EncodingYAML:
		// yaml.Marshal panics on unmarshalable types.
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("marshaling YAML: %v", r)
			}
		}()
		data, err = yaml.Marshal(v)
	case EncodingTOML:
		data, err = toml.Marshal(v)
	case EncodingJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	default:
		return nil, errors.Newf("unsupported encoding %q", enc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s", enc)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// AtomicWriteEncoded marshals v with enc and writes it atomically.
func AtomicWriteEncoded(path string, v any, enc Encoding, perm os.FileMode) error {
	data, err := Marshal(v, enc)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, perm)
}
