package doctor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/fulldiveVR/codex/internal/compiler"
)

// versionTimeout bounds `tsc --version`.
const versionTimeout = 10 * time.Second

// CompilerCheck reports whether the configured compiler checker can run.
type CompilerCheck struct {
	cfg compiler.Config
}

var _ Check = (*CompilerCheck)(nil)

// NewCompilerCheck creates a check for cfg.
func NewCompilerCheck(cfg compiler.Config) *CompilerCheck {
	return &CompilerCheck{cfg: cfg}
}

// Name returns the unique identifier for this check.
func (c *CompilerCheck) Name() string {
	return "compiler"
}

// Category returns the grouping for this check.
func (c *CompilerCheck) Category() string {
	return "compiler"
}

// Run probes the compiler. A missing tsc is an error only in tsc mode.
func (c *CompilerCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"mode": string(c.cfg.Mode)},
	}

	mode := compiler.Mode(strings.ToLower(string(c.cfg.Mode)))
	if mode == "" {
		mode = compiler.ModeSyntax
	}
	if !compiler.ValidMode(string(mode)) {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("unknown compiler mode %q", c.cfg.Mode)
		result.FixHint = "run `appcheck config set compiler.mode syntax`"
		return result
	}

	tsc := compiler.NewTSCChecker(compiler.WithTSCPath(c.cfg.TSCPath))
	bin, err := tsc.Resolve()
	if err != nil {
		if mode == compiler.ModeTSC {
			result.Status = SeverityError
			result.Message = fmt.Sprintf("%s not found on PATH", tsc.Path())
			result.FixHint = "install TypeScript (npm i -g typescript) or set compiler.tsc_path"
			return result
		}
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("compiler mode %q; tsc not installed (optional)", mode)
		return result
	}
	result.Details["path"] = bin

	version, err := tscVersion(ctx, bin)
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%s found but `--version` failed: %v", bin, err)
		return result
	}
	result.Details["version"] = version

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("compiler mode %q, %s", mode, version)
	return result
}

func tscVersion(ctx context.Context, bin string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}
