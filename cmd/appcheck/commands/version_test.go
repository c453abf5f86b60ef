package commands

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulldiveVR/codex/cmd"
)

func TestVersionCommand(t *testing.T) {
	isolate(t)
	t.Setenv("PATH", t.TempDir())

	out, err := execute(t, "", "version")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "appcheck version "+cmd.Version, lines[0])
	assert.Contains(t, lines[1], cmd.Commit)
	assert.Contains(t, lines[2], cmd.Date)
	assert.Contains(t, lines[3], runtime.Version())
	assert.Contains(t, lines[4], "not found")
}

func TestVersionFlag(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "appcheck version "+cmd.Version+"\n", out)
}
