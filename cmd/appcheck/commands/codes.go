package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/suggest"
)

var (
	codesInteractive bool
	codesJSON        bool
)

func init() {
	codesCmd.Flags().BoolVarP(&codesInteractive, "interactive", "i", false, "pick a code with a fuzzy finder")
	codesCmd.Flags().BoolVar(&codesJSON, "json", false, "output in JSON format")
	codesCmd.MarkFlagsMutuallyExclusive("interactive", "json")
	rootCmd.AddCommand(codesCmd)
}

var codesCmd = &cobra.Command{
	Use:   "codes [code-or-prefix]",
	Short: "List issue codes and their remediation hints",
	Long: `List every issue code appcheck can emit together with its remediation hint.

With an argument, only codes starting with it (case-insensitive) are shown.
Compiler diagnostics (TS<number>) are not listed individually.`,
	Example: `  # List all codes
  appcheck codes

  # Explain one code
  appcheck codes STRUCTURE_MISSING_PROPERTY

  # Browse interactively
  appcheck codes --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCodes,
}

func runCodes(cmd *cobra.Command, args []string) error {
	entries := suggest.Codes()
	if len(args) == 1 {
		prefix := strings.ToUpper(args[0])
		filtered := entries[:0:0]
		for _, e := range entries {
			if strings.HasPrefix(e.Code, prefix) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
		if len(entries) == 0 {
			return errors.NewUserError(errors.Newf("no code matches %q", args[0]), "run `appcheck codes` to list all codes")
		}
	}

	w := cmd.OutOrStdout()
	switch {
	case codesInteractive:
		return pickCode(w, entries)
	case codesJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding JSON")
	default:
		return printCodes(w, entries)
	}
}

func printCodes(w io.Writer, entries []suggest.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(tw, "%s\t%s\n", bold("CODE"), bold("HINT"))
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Code, e.Text)
	}
	return errors.Wrap(tw.Flush(), "writing table")
}

func pickCode(w io.Writer, entries []suggest.Entry) error {
	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return entries[i].Code
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return fmt.Sprintf("%s\n\n%s", entries[i].Code, entries[i].Text)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	fmt.Fprintf(w, "%s\n  hint: %s\n", entries[idx].Code, entries[idx].Text)
	return nil
}
