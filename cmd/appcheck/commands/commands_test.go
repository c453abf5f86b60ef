package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fulldiveVR/codex/internal/config"
)

const validApp = `import { defineApp, createAction } from "@plugins/sdk";

export default defineApp({
  name: "Acme CRM",
  key: "acme-crm",
  categories: ["crm"],
  iconUrl: "https://acme.test/icon.svg",
  authDocUrl: "https://acme.test/docs/auth",
  supportsConnections: true,
  apiBaseUrl: "https://api.acme.test",
  actions: [
    createAction({
      key: "list-contacts",
      name: "List contacts",
      mode: "read",
      description: "Lists contacts",
      run: async () => [],
    }),
  ],
});
`

const missingKeyApp = `import { defineApp } from "@plugins/sdk";

export default defineApp({
  name: "Acme CRM",
  categories: ["crm"],
  iconUrl: "https://acme.test/icon.svg",
  authDocUrl: "https://acme.test/docs/auth",
  supportsConnections: true,
  apiBaseUrl: "https://api.acme.test",
  actions: [],
});
`

// isolate points config lookup at empty temp directories and returns the
// working directory.
func isolate(t *testing.T) (workDir, configDir string) {
	t.Helper()
	configDir = t.TempDir()
	workDir = t.TempDir()
	t.Setenv(config.ConfigDirEnv, configDir)
	t.Setenv(debugEnv, "")
	t.Chdir(workDir)
	return workDir, configDir
}

// execute runs the root command with args and returns what it wrote to
// stdout. Flags and contexts left over from earlier runs are reset first.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetCommands(t, rootCmd)
	configFile = ""

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func resetCommands(t *testing.T, c *cobra.Command) {
	t.Helper()
	c.SetContext(t.Context())
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCommands(t, sub)
	}
}
