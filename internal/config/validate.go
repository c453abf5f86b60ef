package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulldiveVR/codex/internal/compiler"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/validator"
)

// envReplacer maps nested keys to environment names:
// compiler.mode -> APPCHECK_COMPILER_MODE.
var envReplacer = strings.NewReplacer(".", "_")

// FieldError reports an invalid value for one configuration key.
type FieldError struct {
	Key    string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return e.Key + ": " + e.Reason
}

// Unwrap lets callers match errors.ErrInvalidConfig.
func (e *FieldError) Unwrap() error {
	return errors.ErrInvalidConfig
}

// Validate checks a Config for validity.
// Returns nil if valid, or one error per invalid field.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.Wrap(errors.ErrInvalidConfig, "config is nil")}
	}

	var errs []error
	add := func(key string, value any, reason string) {
		errs = append(errs, &FieldError{Key: key, Value: value, Reason: reason})
	}

	if cfg.Format != "" && !validator.ValidFormat(cfg.Format) {
		add(KeyFormat, cfg.Format, "must be one of text, json, yaml")
	}
	if cfg.Jobs < 0 {
		add(KeyJobs, cfg.Jobs, "must be >= 0")
	}
	if cfg.Timeout < 0 {
		add(KeyTimeout, cfg.Timeout, "must be >= 0")
	}
	if cfg.CacheSize < 0 {
		add(KeyCacheSize, cfg.CacheSize, "must be >= 0")
	}
	if cfg.CacheTTL < 0 {
		add(KeyCacheTTL, cfg.CacheTTL, "must be >= 0")
	}
	for _, pat := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pat) {
			add(KeyIgnorePatterns, pat, "malformed glob "+pat)
		}
	}

	if cfg.Compiler.Mode != "" && !compiler.ValidMode(cfg.Compiler.Mode) {
		add(KeyCompilerMode, cfg.Compiler.Mode, "must be one of syntax, tsc, none")
	}
	if strings.ContainsRune(cfg.Compiler.TSCPath, '\x00') {
		add(KeyCompilerTSCPath, cfg.Compiler.TSCPath, "contains a null byte")
	}
	for _, id := range cfg.Compiler.IgnoreCodes {
		if id <= 0 {
			add(KeyCompilerIgnore, id, "codes must be positive")
			break
		}
	}

	return errs
}
