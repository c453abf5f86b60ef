// Package config provides configuration management for appcheck using Viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/fulldiveVR/codex/internal/compiler"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/paths"
	"github.com/fulldiveVR/codex/internal/validator"
)

// EnvPrefix prefixes every environment override, e.g. APPCHECK_STRICT_MODE.
const EnvPrefix = "APPCHECK"

// ConfigDirEnv overrides the directory searched for the config file.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// Configuration keys.
const (
	KeyStrictMode         = "strict_mode"
	KeyIgnorePatterns     = "ignore_patterns"
	KeyReportUnverifiable = "report_unverifiable"
	KeyFormat             = "format"
	KeyJobs               = "jobs"
	KeyTimeout            = "timeout"
	KeyCacheSize          = "cache_size"
	KeyCacheTTL           = "cache_ttl"
	KeyCompilerMode       = "compiler.mode"
	KeyCompilerTSCPath    = "compiler.tsc_path"
	KeyCompilerIgnore     = "compiler.ignore_codes"
)

// Keys lists every known key in display order.
func Keys() []string {
	return []string{
		KeyStrictMode,
		KeyIgnorePatterns,
		KeyReportUnverifiable,
		KeyFormat,
		KeyJobs,
		KeyTimeout,
		KeyCacheSize,
		KeyCacheTTL,
		KeyCompilerMode,
		KeyCompilerTSCPath,
		KeyCompilerIgnore,
	}
}

// Config represents the top-level configuration structure.
type Config struct {
	StrictMode         bool           `mapstructure:"strict_mode" yaml:"strict_mode"`
	IgnorePatterns     []string       `mapstructure:"ignore_patterns" yaml:"ignore_patterns"`
	ReportUnverifiable bool           `mapstructure:"report_unverifiable" yaml:"report_unverifiable"`
	Format             string         `mapstructure:"format" yaml:"format"`
	Jobs               int            `mapstructure:"jobs" yaml:"jobs"`
	Timeout            time.Duration  `mapstructure:"timeout" yaml:"timeout"`
	CacheSize          int            `mapstructure:"cache_size" yaml:"cache_size"`
	CacheTTL           time.Duration  `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	Compiler           CompilerConfig `mapstructure:"compiler" yaml:"compiler"`
}

// CompilerConfig selects the compiler diagnostics checker.
type CompilerConfig struct {
	Mode        string `mapstructure:"mode" yaml:"mode"`
	TSCPath     string `mapstructure:"tsc_path" yaml:"tsc_path"`
	IgnoreCodes []int  `mapstructure:"ignore_codes" yaml:"ignore_codes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IgnorePatterns: []string{"**/node_modules/**", "**/*.d.ts"},
		Format:         string(validator.FormatText),
		Timeout:        30 * time.Second,
		CacheSize:      256,
		Compiler: CompilerConfig{
			Mode:        string(compiler.ModeSyntax),
			TSCPath:     compiler.DefaultTSC,
			IgnoreCodes: compiler.DefaultIgnoreCodes,
		},
	}
}

// Dir returns $APPCHECK_CONFIG_DIR, or the XDG config directory.
func Dir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return paths.ConfigDir()
}

// DefaultFile is the YAML file written when no config file was loaded.
func DefaultFile() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Join(dir, paths.ConfigFileName+".yaml")
	}
	return paths.DefaultConfigFile()
}

// Init resets Viper and installs defaults, search paths, and environment
// bindings. Call it once at startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName(paths.ConfigFileName)

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(Dir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(envReplacer)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault(KeyStrictMode, d.StrictMode)
	viper.SetDefault(KeyIgnorePatterns, d.IgnorePatterns)
	viper.SetDefault(KeyReportUnverifiable, d.ReportUnverifiable)
	viper.SetDefault(KeyFormat, d.Format)
	viper.SetDefault(KeyJobs, d.Jobs)
	viper.SetDefault(KeyTimeout, d.Timeout.String())
	viper.SetDefault(KeyCacheSize, d.CacheSize)
	viper.SetDefault(KeyCacheTTL, d.CacheTTL.String())
	viper.SetDefault(KeyCompilerMode, d.Compiler.Mode)
	viper.SetDefault(KeyCompilerTSCPath, d.Compiler.TSCPath)
	viper.SetDefault(KeyCompilerIgnore, d.Compiler.IgnoreCodes)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load; defaults apply.
		case errors.As(err, &notFound), os.IsNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}
	return &cfg, nil
}

// Options converts the file-level settings into per-call options.
func (c *Config) Options() validator.Options {
	return validator.Options{
		StrictMode:         c.StrictMode,
		IgnorePatterns:     c.IgnorePatterns,
		ReportUnverifiable: c.ReportUnverifiable,
	}
}

// CompilerSettings converts the compiler section for compiler.New.
func (c *Config) CompilerSettings() (compiler.Config, error) {
	tsc, err := paths.ExpandHome(c.Compiler.TSCPath)
	if err != nil {
		return compiler.Config{}, err
	}
	return compiler.Config{
		Mode:        compiler.Mode(c.Compiler.Mode),
		TSCPath:     tsc,
		IgnoreCodes: c.Compiler.IgnoreCodes,
	}, nil
}

// Settings returns the configuration as a nested map keyed like the config
// file, ready for YAML, TOML, or JSON encoding.
func (c *Config) Settings() map[string]any {
	patterns := c.IgnorePatterns
	if patterns == nil {
		patterns = []string{}
	}
	ignore := c.Compiler.IgnoreCodes
	if ignore == nil {
		ignore = []int{}
	}
	return map[string]any{
		KeyStrictMode:         c.StrictMode,
		KeyIgnorePatterns:     patterns,
		KeyReportUnverifiable: c.ReportUnverifiable,
		KeyFormat:             c.Format,
		KeyJobs:               c.Jobs,
		KeyTimeout:            c.Timeout.String(),
		KeyCacheSize:          c.CacheSize,
		KeyCacheTTL:           c.CacheTTL.String(),
		"compiler": map[string]any{
			"mode":         c.Compiler.Mode,
			"tsc_path":     c.Compiler.TSCPath,
			"ignore_codes": ignore,
		},
	}
}

// Current unmarshals the live Viper state without reading any file.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}
