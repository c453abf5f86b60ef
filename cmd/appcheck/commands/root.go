// Package commands implements the CLI commands for appcheck.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fulldiveVR/codex/cmd"
	"github.com/fulldiveVR/codex/internal/config"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given.
const debugEnv = config.EnvPrefix + "_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the --config path; empty searches the defaults.
var configFile string

// colorMode holds the --color flag; noColor is shorthand for never.
var (
	colorMode string
	noColor   bool
)

// loadedConfig is the configuration loaded at startup. It falls back to
// defaults when loading fails; configLoadErr records why.
var (
	loadedConfig  = config.Default()
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then ~/.config/appcheck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", string(logging.ColorAuto),
		"colored output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output (same as --color never)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("appcheck version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, err := config.Load(configFile)
	configLoadErr = err
	if err != nil {
		loadedConfig = config.Default()
		return
	}
	loadedConfig = cfg
}

var rootCmd = &cobra.Command{
	Use:   "appcheck",
	Short: "Static validator for generated plugin descriptor files",
	Long: `appcheck statically validates TypeScript plugin descriptor files of the form
export default defineApp({ ... }) before they are accepted.

It parses the candidate into a syntax tree, checks the descriptor and its
actions, auth, triggers, and dynamic providers against the required
structure, and merges in compiler diagnostics. Nothing is ever executed.`,
	Example: `  # Validate a file
  appcheck validate plugin.ts

  # Validate generated output from stdin, as JSON
  generate | appcheck validate - --format json

  # Validate a directory with the TypeScript compiler
  appcheck validate ./plugins --compiler tsc --jobs 4

  # Look up what an issue code means
  appcheck codes STRUCTURE_MISSING_PROPERTY

  See Also: appcheck doctor, appcheck config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if err := setupColor(cmd); err != nil {
			return err
		}
		return checkConfigLoaded(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "use --log-format text or json")
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler = handlers[0]
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// setupColor decides whether reports are colored.
func setupColor(cmd *cobra.Command) error {
	mode, ok := logging.ParseColorMode(colorMode)
	if !ok {
		return errors.NewUserError(errors.Newf("unknown color mode %q", colorMode), "use --color auto, always, or never")
	}
	if noColor {
		mode = logging.ColorNever
	}
	color.NoColor = !logging.ColorEnabled(cmd.OutOrStdout(), mode)
	return nil
}

// checkConfigLoaded fails commands that depend on the configuration when it
// could not be loaded. Commands used to repair the configuration still run.
func checkConfigLoaded(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "doctor", "config", "init", "gen-doc", "codes":
			logging.FromContext(cmd.Context()).Warn("configuration not loaded, using defaults", "error", configLoadErr)
			return nil
		}
	}
	return errors.NewConfigError(configLoadErr)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
