package commands

import (
	"github.com/spf13/cobra"

	"github.com/fulldiveVR/codex/internal/appcheck"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/suggest"
	"github.com/fulldiveVR/codex/internal/validator"
	"github.com/fulldiveVR/codex/pkg/fileutil"
)

func init() {
	rootCmd.AddCommand(legacyCmd)
}

var legacyCmd = &cobra.Command{
	Use:        "legacy <file> | -",
	Short:      "Run the text-only heuristic checks",
	Deprecated: "the heuristics cannot see through strings or comments; use `appcheck validate`",
	Long: `Run the pre-syntax-tree heuristic checks: an export default defineApp(
pattern, an import of defineApp, and balanced bracket counts.

These checks are low confidence and kept only for comparison.`,
	Args: cobra.ExactArgs(1),
	RunE: runLegacy,
}

func runLegacy(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
		path = args[0]
	)
	if path == stdinArg {
		data, err = fileutil.ReadWithLimit(cmd.InOrStdin())
		path = ""
	} else {
		data, err = fileutil.ReadFileWithLimit(path)
	}
	if err != nil {
		return errors.NewUserError(err, "")
	}

	//nolint:staticcheck // the deprecated path is what this command exposes
	result := appcheck.New().ValidateLegacy(string(data))

	reporter := validator.NewReporter(cmd.OutOrStdout(), validator.FormatText, validator.WithSuggestions(suggest.For))
	if err := reporter.ReportFiles([]validator.FileReport{{Path: path, Result: result}}); err != nil {
		return errors.NewSystemError(err, "")
	}
	if !result.IsValid {
		return errors.NewExitError(errors.ErrValidationFailed, errors.ExitUser)
	}
	return nil
}
