package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fulldiveVR/codex/internal/backup"
	"github.com/fulldiveVR/codex/internal/config"
	"github.com/fulldiveVR/codex/internal/editor"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/logging"
	"github.com/fulldiveVR/codex/internal/paths"
	"github.com/fulldiveVR/codex/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configBackupsCmd)
	configCmd.AddCommand(configRestoreCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage appcheck configuration",
	Long: `Manage appcheck configuration.

The first config.yaml, config.toml, or config.json found in the current
directory or ~/.config/appcheck is used. Every key can also be set through
the environment, e.g. APPCHECK_STRICT_MODE=true or APPCHECK_COMPILER_MODE=tsc.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  appcheck config

  # Get a specific value
  appcheck config get compiler.mode

  # Set a value
  appcheck config set ignore_patterns '**/vendor/**,**/*.d.ts'

See Also: appcheck init, appcheck doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Nested keys use dot notation. List values are printed one per line.`,
	Example: `  # Get the compiler mode
  appcheck config get compiler.mode

  # Get the ignore patterns
  appcheck config get ignore_patterns

See Also: appcheck config set, appcheck config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

List values take comma-separated items. Durations use Go syntax (30s, 2m).
The whole configuration is validated before anything is written.`,
	Example: `  # Use the TypeScript compiler
  appcheck config set compiler.mode tsc

  # Ignore extra compiler diagnostics
  appcheck config set compiler.ignore_codes 2307,2792,7016

  # Lower the per-file timeout
  appcheck config set timeout 10s

See Also: appcheck config get, appcheck config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all effective configuration values in YAML format.`,
	Example: `  # List all configuration
  appcheck config list

See Also: appcheck config get, appcheck config set`,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano, then vi.
If no configuration file exists, prints an error suggesting to run 'appcheck init'.`,
	Example: `  # Open config in default editor
  appcheck config edit

  # Open with specific editor
  EDITOR=nano appcheck config edit

See Also: appcheck config list, appcheck init`,
	RunE: runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Long: `Print the configuration file in use, or the path 'config set' and
'init' would create when none exists.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configTarget())
		return nil
	},
}

var configBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List configuration backups",
	Long: `List saved copies of the configuration file, newest first.

A copy is saved before 'config set', 'config edit', 'config restore', and
'init --force' change the file. The newest five are kept.`,
	RunE: runConfigBackups,
}

var configRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore a configuration backup",
	Long:  `Restore the backup with the given id, or the newest backup.`,
	Example: `  # Undo the last change
  appcheck config restore

  # Restore a specific backup
  appcheck config restore 20260123T100712.000000000

See Also: appcheck config backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigRestore,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := checkKey(key); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch v := viper.Get(key).(type) {
	case nil:
		fmt.Fprintln(w, "not set")
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []int:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if err := checkKey(key); err != nil {
		return err
	}

	// A file that failed to parse never reached viper; writing now would
	// replace it with defaults.
	var fe *config.FieldError
	if configLoadErr != nil && !errors.As(configLoadErr, &fe) && !errors.Is(configLoadErr, errors.ErrNotFound) {
		return errors.NewUserError(configLoadErr, "fix the file with `appcheck config edit`")
	}

	value, err := parseValue(key, raw)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	viper.Set(key, value)

	cfg, err := config.Current()
	if err != nil {
		return errors.NewUserError(err, "")
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return errors.NewUserError(errors.Join(errs...), "")
	}

	path := configTarget()
	if _, err := backups().Save(path); err != nil {
		logging.FromContext(cmd.Context()).Warn("backup failed", "path", path, "error", err)
	}
	if err := writeConfig(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Current()
	if err != nil {
		return errors.NewUserError(err, "")
	}

	data, err := yaml.Marshal(cfg.Settings())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configTarget()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(errors.Newf("config file not found at %s", path), "Run: appcheck init")
	}

	if _, err := backups().Save(path); err != nil {
		logging.FromContext(cmd.Context()).Warn("backup failed", "path", path, "error", err)
	}

	streams := editor.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if err := editor.Open(cmd.Context(), path, streams); err != nil {
		return errors.NewSystemError(err, "set $EDITOR to an installed editor")
	}
	return nil
}

func runConfigBackups(cmd *cobra.Command, _ []string) error {
	m := backups()
	snaps, err := m.List()
	if errors.Is(err, backup.ErrNoBackups) {
		fmt.Fprintf(cmd.OutOrStdout(), "No backups in %s\n", m.Dir())
		return nil
	}
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFILE")
	for _, snap := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", snap.ID, snap.CreatedAt.Local().Format(time.DateTime), snap.Name)
	}
	return errors.Wrap(tw.Flush(), "writing table")
}

func runConfigRestore(cmd *cobra.Command, args []string) error {
	var id string
	if len(args) == 1 {
		id = args[0]
	}

	path := configTarget()
	snap, err := backups().Restore(id, path)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackups) || errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "run `appcheck config backups` to list backups")
		}
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from backup %s\n", path, snap.ID)
	return nil
}

// backups returns the snapshot store next to the config file.
func backups() *backup.Manager {
	return backup.NewManager(backup.WithDir(filepath.Join(config.Dir(), "backups")))
}

func checkKey(key string) error {
	if slices.Contains(config.Keys(), key) {
		return nil
	}
	return errors.NewUserError(
		errors.Wrapf(errors.ErrInvalidConfig, "unknown key %q", key),
		"valid keys: "+strings.Join(config.Keys(), ", "),
	)
}

// parseValue converts the command-line text for key into the type the
// config struct expects.
func parseValue(key, raw string) (any, error) {
	switch key {
	case config.KeyStrictMode, config.KeyReportUnverifiable:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Newf("%s: %q is not a boolean", key, raw)
		}
		return b, nil
	case config.KeyJobs, config.KeyCacheSize:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Newf("%s: %q is not an integer", key, raw)
		}
		return n, nil
	case config.KeyTimeout, config.KeyCacheTTL:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.Newf("%s: %q is not a duration", key, raw)
		}
		return d.String(), nil
	case config.KeyIgnorePatterns:
		return splitList(raw), nil
	case config.KeyCompilerIgnore:
		var codes []int
		for _, item := range splitList(raw) {
			n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(item), "TS"))
			if err != nil {
				return nil, errors.Newf("%s: %q is not a diagnostic code", key, item)
			}
			codes = append(codes, n)
		}
		if codes == nil {
			codes = []int{}
		}
		return codes, nil
	default:
		return raw, nil
	}
}

// splitList splits a comma-separated string, dropping empty items.
func splitList(s string) []string {
	items := []string{}
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// configTarget returns the file `config set` writes: --config, the file
// viper loaded, or the default location.
func configTarget() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultFile()
}

// writeConfig encodes cfg in the format implied by the path extension.
func writeConfig(path string, cfg *config.Config) error {
	enc, ok := fileutil.EncodingFor(path)
	if !ok {
		enc = fileutil.EncodingYAML
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}
	if err := fileutil.AtomicWriteEncoded(path, cfg.Settings(), enc, 0o644); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}
	return nil
}
