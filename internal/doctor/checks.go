package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fulldiveVR/codex/internal/config"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/locate"
	"github.com/fulldiveVR/codex/internal/paths"
)

// configExtensions are the formats viper reads for the config file.
var configExtensions = []string{".yaml", ".yml", ".toml", ".json"}

// ConfigFiles returns the existing config files in dirs, in search order.
func ConfigFiles(dirs ...string) []string {
	var found []string
	for _, dir := range dirs {
		for _, ext := range configExtensions {
			path := filepath.Join(dir, paths.ConfigFileName+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				found = append(found, path)
			}
		}
	}
	return found
}

// ConfigSyntaxCheck validates configuration file syntax (YAML/TOML/JSON).
type ConfigSyntaxCheck struct {
	files []string
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a check over the given files.
func NewConfigSyntaxCheck(files ...string) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{files: files}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string {
	return "config-syntax"
}

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string {
	return "config"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Run executes the syntax validation check across the config files.
func (c *ConfigSyntaxCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Details:  make(map[string]any),
	}

	if len(c.files) == 0 {
		result.Status = SeverityInfo
		result.Message = "no config file found, using defaults"
		return result
	}

	fileResults := make([]syntaxFileResult, 0, len(c.files))
	var errorCount int
	for _, path := range c.files {
		fr := c.validateFile(path)
		if fr.Status == "error" {
			errorCount++
		}
		fileResults = append(fileResults, fr)
	}
	result.Details["files"] = fileResults
	result.Details["checked"] = len(fileResults)

	if errorCount > 0 {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) have syntax errors", errorCount)
		result.FixHint = "fix the reported line, or run `appcheck config edit`"
		return result
	}
	result.Message = fmt.Sprintf("%d config file(s) parsed", len(fileResults))
	return result
}

// validateFile checks if a file is syntactically valid.
func (c *ConfigSyntaxCheck) validateFile(filePath string) syntaxFileResult {
	fr := syntaxFileResult{Path: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fr.Status = "error"
		switch {
		case errors.Is(err, os.ErrNotExist):
			fr.Message = "file does not exist"
		case errors.Is(err, os.ErrPermission):
			fr.Message = fmt.Sprintf("permission denied: %v", err)
		default:
			fr.Message = fmt.Sprintf("read error: %v", err)
		}
		return fr
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		fr.Status = "pass"
		fr.Message = "empty file"
		return fr
	}

	var v any
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		err = formatJSONError(json.Unmarshal(data, &v), data)
	case ".toml":
		err = formatTOMLError(toml.Unmarshal(data, &v))
	default:
		err = formatYAMLError(yaml.Unmarshal(data, &v))
	}
	if err != nil {
		fr.Status = "error"
		fr.Message = err.Error()
		return fr
	}
	fr.Status = "pass"
	return fr
}

// formatJSONError attaches a line and column to JSON syntax errors.
func formatJSONError(err error, data []byte) error {
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := locate.OffsetToLineCol(data, int(syntaxErr.Offset))
		return errors.Newf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}
	return errors.Wrap(err, "JSON error")
}

// formatTOMLError extracts position information from TOML decode errors.
func formatTOMLError(err error) error {
	if err == nil {
		return nil
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return errors.Newf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}
	return errors.Wrap(err, "TOML error")
}

// formatYAMLError keeps yaml.v3's own "line N" position text.
func formatYAMLError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Newf("YAML syntax error: %s", strings.TrimPrefix(err.Error(), "yaml: "))
}

// ConfigValuesCheck loads the effective configuration and reports invalid
// values.
type ConfigValuesCheck struct {
	path string
}

var _ Check = (*ConfigValuesCheck)(nil)

// NewConfigValuesCheck creates a check loading path, or the default search
// locations when path is empty. Viper must be initialized.
func NewConfigValuesCheck(path string) *ConfigValuesCheck {
	return &ConfigValuesCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigValuesCheck) Name() string {
	return "config-values"
}

// Category returns the grouping for this check.
func (c *ConfigValuesCheck) Category() string {
	return "config"
}

// Run loads and validates the configuration.
func (c *ConfigValuesCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category(), Status: SeverityPass}

	cfg, err := config.Load(c.path)
	if err != nil {
		var fe *config.FieldError
		if errors.As(err, &fe) {
			result.Status = SeverityError
			result.Message = err.Error()
			result.FixHint = fmt.Sprintf("run `appcheck config set %s <value>`", fe.Key)
			return result
		}
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}

	result.Message = fmt.Sprintf("compiler mode %q, format %q", cfg.Compiler.Mode, cfg.Format)
	result.Details = map[string]any{
		"strict_mode": cfg.StrictMode,
		"jobs":        cfg.Jobs,
		"timeout":     cfg.Timeout.String(),
		"cache_size":  cfg.CacheSize,
		"cache_ttl":   cfg.CacheTTL.String(),
	}
	return result
}
