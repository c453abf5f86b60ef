package compiler

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/logging"
	"github.com/fulldiveVR/codex/internal/validator"
	"github.com/fulldiveVR/codex/pkg/fileutil"
)

// DefaultTSC is the compiler binary looked up on PATH.
const DefaultTSC = "tsc"

// DefaultIgnoreCodes drop unresolved-module diagnostics; imports are never
// resolved since the candidate is checked alone.
var DefaultIgnoreCodes = []int{2307, 2792}

// tscArgs give a single-file, strict, non-emitting, no-resolution check.
var tscArgs = []string{
	"--noEmit",
	"--strict",
	"--noResolve",
	"--skipLibCheck",
	"--pretty", "false",
	"--target", "es2020",
	"--module", "esnext",
}

// TSCOption configures a TSCChecker.
type TSCOption func(*TSCChecker)

// WithTSCPath sets the compiler binary. Empty keeps the default.
func WithTSCPath(path string) TSCOption {
	return func(c *TSCChecker) {
		if path != "" {
			c.path = path
		}
	}
}

// WithIgnoreCodes replaces the ignored diagnostic codes. No codes keeps
// the defaults.
func WithIgnoreCodes(ids ...int) TSCOption {
	return func(c *TSCChecker) {
		if len(ids) > 0 {
			c.ignore = ids
		}
	}
}

// TSCChecker runs the TypeScript compiler as a subprocess.
type TSCChecker struct {
	path   string
	ignore []int
}

// NewTSCChecker creates a checker running tsc from PATH by default.
func NewTSCChecker(opts ...TSCOption) *TSCChecker {
	c := &TSCChecker{path: DefaultTSC, ignore: DefaultIgnoreCodes}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the configured compiler binary.
func (c *TSCChecker) Path() string {
	return c.path
}

// Resolve returns the absolute path of the compiler binary.
func (c *TSCChecker) Resolve() (string, error) {
	path, err := exec.LookPath(c.path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCompilerUnavailable, "locating %s: %v", c.path, err)
	}
	return path, nil
}

// Check writes src to a private temp directory and compiles it.
func (c *TSCChecker) Check(ctx context.Context, src []byte, fileName string) (*validator.Result, error) {
	logger := logging.FromContext(ctx)

	bin, err := c.Resolve()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "appcheck-tsc-*")
	if err != nil {
		return nil, errors.Wrap(err, "creating compiler workspace")
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, scratchName(fileName))
	if err := fileutil.AtomicWriteFile(file, src, 0o600); err != nil {
		return nil, errors.Wrap(err, "writing candidate for compiler")
	}

	args := append(append([]string{}, tscArgs...), file)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running compiler", "bin", bin, "file", fileName)
	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Wrap(ctxErr, "compiler interrupted")
	}

	issues := ParseDiagnostics(stdout.Bytes(), file, fileName, c.ignore)
	if runErr != nil {
		var exitErr *exec.ExitError
		// tsc exits non-zero whenever it reports diagnostics.
		if !errors.As(runErr, &exitErr) || (stdout.Len() == 0 && stderr.Len() > 0) {
			return nil, errors.Wrapf(runErr, "running %s: %s", c.path, strings.TrimSpace(stderr.String()))
		}
	}

	result := validator.NewResult()
	for _, i := range issues {
		result.Add(i)
	}
	result.Finalize(false)
	logger.Debug("compiler done", "diagnostics", len(issues))
	return result, nil
}

// scratchName keeps the nominal base name when it is a TypeScript file.
func scratchName(fileName string) string {
	base := filepath.Base(fileName)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return base
	}
	return validator.DefaultFileName
}

var (
	diagLine   = regexp.MustCompile(`^(.+)\((\d+),(\d+)\): (error|warning|message) TS(\d+): (.*)$`)
	globalDiag = regexp.MustCompile(`^(error|warning|message) TS(\d+): (.*)$`)
)

// ParseDiagnostics converts --pretty false compiler output into issues.
// Locations in scratchFile are relabeled with nominal. Indented lines
// continue the previous message.
func ParseDiagnostics(out []byte, scratchFile, nominal string, ignore []int) []validator.Issue {
	skip := make(map[int]bool, len(ignore))
	for _, id := range ignore {
		skip[id] = true
	}

	var issues []validator.Issue
	dropped := false
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}

		if m := diagLine.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[5])
			dropped = skip[id]
			if dropped {
				continue
			}
			lineNo, _ := strconv.Atoi(m[2])
			col, _ := strconv.Atoi(m[3])
			path := m[1]
			if filepath.Clean(path) == filepath.Clean(scratchFile) || filepath.Base(path) == filepath.Base(scratchFile) {
				path = nominal
			}
			issues = append(issues, validator.Issue{
				Severity: severity(m[4]),
				Code:     codes.CompilerPrefix + m[5],
				Message:  m[6],
				Location: &validator.Location{Line: lineNo, Column: col, FilePath: path},
			})
			continue
		}
		if m := globalDiag.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[2])
			dropped = skip[id]
			if dropped {
				continue
			}
			issues = append(issues, validator.Issue{
				Severity: severity(m[1]),
				Code:     codes.CompilerPrefix + m[2],
				Message:  m[3],
			})
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(issues) > 0 && !dropped {
			last := &issues[len(issues)-1]
			last.Message = fmt.Sprintf("%s %s", last.Message, strings.TrimSpace(line))
		}
	}
	return issues
}

func severity(category string) validator.Severity {
	switch category {
	case "error":
		return validator.SeverityError
	case "warning":
		return validator.SeverityWarning
	default:
		return validator.SeveritySuggestion
	}
}
