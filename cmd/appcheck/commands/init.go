package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fulldiveVR/codex/internal/config"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/paths"
	"github.com/fulldiveVR/codex/pkg/fileutil"
)

var (
	initYes   bool
	initForce bool
	initPath  string
	initType  string
)

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Non-interactive mode, accept all defaults")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	initCmd.Flags().StringVar(&initPath, "path", "", "Write the config file here instead of ~/.config/appcheck")
	initCmd.Flags().StringVar(&initType, "type", string(fileutil.EncodingYAML), "Config file format: yaml, toml, json")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize appcheck configuration",
	Long: `Write a configuration file holding every default value.

Creates ~/.config/appcheck/config.yaml unless --path or --type says otherwise.
With --path the format follows the file extension.`,
	Example: `  # Initialize with interactive prompts
  appcheck init

  # Initialize non-interactively
  appcheck init --yes

  # Write a project-local TOML config
  appcheck init --path ./config.toml

  # Force overwrite existing configuration
  appcheck init --force

  See Also: appcheck config, appcheck doctor`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	enc := fileutil.Encoding(strings.ToLower(initType))
	path := initPath
	if path == "" {
		path = filepath.Join(config.Dir(), paths.ConfigFileName+"."+string(enc))
	} else if ext, ok := fileutil.EncodingFor(path); ok {
		enc = ext
	}
	if _, err := fileutil.Marshal(map[string]any{}, enc); err != nil {
		return errors.NewUserError(errors.Newf("unsupported config type %q", initType), "use --type yaml, toml, or json")
	}

	w := cmd.OutOrStdout()
	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Fprintf(w, "Configuration already exists at %s\n", path)
		fmt.Fprintln(w, "Use --force to overwrite")
		return nil
	}

	if !initYes {
		fmt.Fprintln(w, "This will create:")
		fmt.Fprintf(w, "  %s\n", path)
		fmt.Fprintln(w)

		if !confirm(cmd, "Proceed?") {
			fmt.Fprintln(w, "Aborted")
			return nil
		}
	}

	if snap, err := backups().Save(path); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "backing up existing config"), "")
	} else if snap != nil {
		fmt.Fprintf(w, "Saved previous config as backup %s\n", snap.ID)
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}
	if err := fileutil.AtomicWriteEncoded(path, config.Default().Settings(), enc, 0o644); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}

	fmt.Fprintf(w, "Created %s\n", path)
	return nil
}
