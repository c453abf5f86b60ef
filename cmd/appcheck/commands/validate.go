package commands

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fulldiveVR/codex/internal/appcheck"
	"github.com/fulldiveVR/codex/internal/cache"
	"github.com/fulldiveVR/codex/internal/compiler"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/logging"
	"github.com/fulldiveVR/codex/internal/suggest"
	"github.com/fulldiveVR/codex/internal/validator"
	"github.com/fulldiveVR/codex/pkg/fileutil"
)

// stdinArg selects standard input as the candidate.
const stdinArg = "-"

// sourceExtensions are picked up when walking directories.
var sourceExtensions = []string{".ts", ".tsx"}

var (
	validateStrict             bool
	validateFormat             string
	validateCompiler           string
	validateTSCPath            string
	validateTimeout            time.Duration
	validateJobs               int
	validateReportUnverifiable bool
	validateName               string
	validateIgnore             []string
	validateNoHints            bool
)

func init() {
	f := validateCmd.Flags()
	f.BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
	f.StringVarP(&validateFormat, "format", "o", "", "output format: text, json, yaml (default from config)")
	f.StringVar(&validateCompiler, "compiler", "", "compiler checker: syntax, tsc, none (default from config)")
	f.StringVar(&validateTSCPath, "tsc-path", "", "path to the tsc binary (default from config)")
	f.DurationVar(&validateTimeout, "timeout", 0, "per-file time limit, e.g. 10s (default from config)")
	f.IntVarP(&validateJobs, "jobs", "j", 0, "files validated in parallel (default from config, 0 = unlimited)")
	f.BoolVar(&validateReportUnverifiable, "report-unverifiable", false,
		"report known properties whose values cannot be checked statically")
	f.StringVar(&validateName, "name", "", "file name used in locations when reading stdin")
	f.StringSliceVar(&validateIgnore, "ignore", nil, "glob patterns of paths to skip (repeatable)")
	f.BoolVar(&validateNoHints, "no-hints", false, "omit remediation hints")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>... | -",
	Short: "Validate plugin descriptor files",
	Long: `Validate one or more plugin descriptor files.

Arguments may be files, directories (searched recursively for *.ts and
*.tsx), or "-" to read a single candidate from standard input. Paths
matching an ignore pattern are skipped.

Exit codes:
  0 - Every file is valid
  1 - At least one file is invalid, or bad input
  2 - System error (unreadable file, missing compiler)`,
	Example: `  # Validate a file
  appcheck validate plugin.ts

  # Treat warnings as errors and print JSON
  appcheck validate plugin.ts --strict --format json

  # Validate model output from stdin under a nominal name
  cat output.ts | appcheck validate - --name acme.ts

  # Validate a tree, skipping fixtures
  appcheck validate ./plugins --ignore "**/fixtures/**"

  See Also: appcheck codes, appcheck doctor`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	flags := cmd.Flags()
	cfg := loadedConfig

	opts := cfg.Options()
	if flags.Changed("strict") {
		opts.StrictMode = validateStrict
	}
	if flags.Changed("report-unverifiable") {
		opts.ReportUnverifiable = validateReportUnverifiable
	}
	opts.IgnorePatterns = append(slices.Clone(opts.IgnorePatterns), validateIgnore...)
	if err := opts.Validate(); err != nil {
		return errors.NewUserError(err, "check the --ignore patterns")
	}

	format := cfg.Format
	if validateFormat != "" {
		format = validateFormat
	}
	if !validator.ValidFormat(format) {
		return errors.NewUserError(errors.Newf("unknown format %q", format), "use --format text, json, or yaml")
	}

	checker, err := newChecker(cmd)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cmd, args, opts)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.NewUserError(errors.New("no TypeScript files found"), "pass .ts or .tsx files, or a directory containing them")
	}
	logger.Info("validating", "files", len(inputs))

	jobs := cfg.Jobs
	if flags.Changed("jobs") {
		jobs = validateJobs
	}
	results, err := checker.ValidateAll(ctx, inputs, opts, jobs)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	reports := make([]validator.FileReport, len(inputs))
	failed := 0
	for idx, in := range inputs {
		reports[idx] = validator.FileReport{Path: in.Name, Result: results[idx]}
		if !results[idx].IsValid {
			failed++
		}
	}
	// A lone stdin candidate prints as a bare result.
	if len(reports) == 1 && args[0] == stdinArg {
		reports[0].Path = ""
	}

	var reporterOpts []validator.ReporterOption
	if !validateNoHints {
		reporterOpts = append(reporterOpts, validator.WithSuggestions(suggest.For))
	}
	if !quiet || failed > 0 {
		reporter := validator.NewReporter(cmd.OutOrStdout(), validator.Format(format), reporterOpts...)
		if err := reporter.ReportFiles(reports); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	if failed > 0 {
		logger.Info("validation failed", "failed", failed, "files", len(inputs))
		return errors.NewExitError(errors.Wrapf(errors.ErrValidationFailed, "%d of %d file(s)", failed, len(inputs)), errors.ExitUser)
	}
	return nil
}

// newChecker builds the pipeline from config and flag overrides.
func newChecker(cmd *cobra.Command) (*appcheck.Checker, error) {
	cfg := loadedConfig
	flags := cmd.Flags()

	cc, err := cfg.CompilerSettings()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	if validateCompiler != "" {
		if !compiler.ValidMode(validateCompiler) {
			return nil, errors.NewUserError(errors.Newf("unknown compiler %q", validateCompiler),
				"use --compiler syntax, tsc, or none")
		}
		cc.Mode = compiler.Mode(validateCompiler)
	}
	if validateTSCPath != "" {
		cc.TSCPath = validateTSCPath
	}
	comp, err := compiler.New(cc)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	timeout := cfg.Timeout
	if flags.Changed("timeout") {
		timeout = validateTimeout
	}

	opts := []appcheck.Option{
		appcheck.WithCompiler(comp),
		appcheck.WithTimeout(timeout),
	}
	if cfg.CacheSize > 0 {
		opts = append(opts, appcheck.WithCache(cache.New(
			cache.WithSize(cfg.CacheSize),
			cache.WithTTL(cfg.CacheTTL),
		)))
	}
	return appcheck.New(opts...), nil
}

// collectInputs reads every candidate named by args.
func collectInputs(cmd *cobra.Command, args []string, opts validator.Options) ([]appcheck.Input, error) {
	if slices.Contains(args, stdinArg) {
		if len(args) > 1 {
			return nil, errors.NewUserError(errors.New("cannot mix - with file arguments"), "")
		}
		data, err := fileutil.ReadWithLimit(cmd.InOrStdin())
		if err != nil {
			return nil, errors.NewUserError(err, "")
		}
		name := validateName
		if name == "" {
			name = validator.DefaultFileName
		}
		return []appcheck.Input{{Name: name, Source: string(data)}}, nil
	}

	var inputs []appcheck.Input
	seen := make(map[string]bool)
	for _, arg := range args {
		paths, err := expandPath(arg, opts)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if seen[path] {
				continue
			}
			seen[path] = true
			data, err := fileutil.ReadFileWithLimit(path)
			if err != nil {
				if errors.Is(err, fileutil.ErrFileTooLarge) {
					return nil, errors.NewUserError(errors.Wrap(err, path), "")
				}
				return nil, errors.NewSystemError(errors.Wrap(err, path), "")
			}
			inputs = append(inputs, appcheck.Input{Name: path, Source: string(data)})
		}
	}
	return inputs, nil
}

// expandPath returns arg itself for files and the matching sources below
// it for directories, in lexical order.
func expandPath(arg string, opts validator.Options) ([]string, error) {
	var out []string
	err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		slashed := filepath.ToSlash(path)
		if path != arg && ignored(opts, slashed, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// Explicit file arguments are always validated.
		if path == arg || slices.Contains(sourceExtensions, strings.ToLower(filepath.Ext(path))) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewUserError(errors.Wrapf(err, "reading %s", arg), "check the path")
		}
		return nil, errors.NewSystemError(errors.Wrapf(err, "reading %s", arg), "")
	}
	return out, nil
}

// ignored matches path against the ignore patterns. A matching directory
// is pruned whole.
func ignored(opts validator.Options, path string, dir bool) bool {
	if opts.Ignored(path) {
		return true
	}
	return dir && opts.Ignored(path+"/")
}
