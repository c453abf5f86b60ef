// Package config provides configuration management for the appcheck CLI.
//
// # Configuration File
//
// The file is searched as config.{yaml,toml,json} in the current directory
// and then in ~/.config/appcheck (or $APPCHECK_CONFIG_DIR):
//
//	strict_mode: false
//	ignore_patterns:
//	  - "**/node_modules/**"
//	report_unverifiable: false
//	format: text
//	jobs: 0
//	timeout: 30s
//	cache_size: 256
//	compiler:
//	  mode: syntax     # syntax | tsc | none
//	  tsc_path: tsc
//	  ignore_codes: [2307, 2792]
//
// Every key can be overridden from the environment with the APPCHECK_
// prefix, dots replaced by underscores: APPCHECK_COMPILER_MODE=tsc.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// Load validates the result; [Validate] can also be called directly.
package config
