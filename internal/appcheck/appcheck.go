package appcheck

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fulldiveVR/codex/internal/cache"
	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/compiler"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/logging"
	"github.com/fulldiveVR/codex/internal/prefilter"
	"github.com/fulldiveVR/codex/internal/structure"
	"github.com/fulldiveVR/codex/internal/validator"
)

// Option configures a Checker.
type Option func(*Checker)

// WithStructure replaces the structural validator.
func WithStructure(v *structure.Validator) Option {
	return func(c *Checker) {
		if v != nil {
			c.structure = v
		}
	}
}

// WithCompiler replaces the compiler checker.
func WithCompiler(cc compiler.Checker) Option {
	return func(c *Checker) {
		if cc != nil {
			c.compiler = cc
		}
	}
}

// WithCache memoizes results. Calls carrying custom rules bypass it.
func WithCache(rc *cache.Cache) Option {
	return func(c *Checker) {
		c.cache = rc
	}
}

// WithTimeout bounds each file in ValidateAll.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.timeout = d
	}
}

// Checker runs the full validation pipeline. It is safe for concurrent use.
type Checker struct {
	structure *structure.Validator
	compiler  compiler.Checker
	cache     *cache.Cache
	timeout   time.Duration
	// id scopes cache entries to this checker.
	id string
}

var checkerSeq atomic.Uint64

// New creates a Checker using the default registry and the in-process
// syntax checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		structure: structure.New(),
		compiler:  compiler.NewSyntaxChecker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.id = fmt.Sprintf("%T#%d", c.compiler, checkerSeq.Add(1))
	return c
}

// Validate runs the pipeline over src.
func (c *Checker) Validate(ctx context.Context, src string, opts validator.Options) (*validator.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	name := opts.NominalFileName()
	logger := logging.FromContext(ctx).With("file", name)

	if !prefilter.LooksLikeCode(src) {
		logger.Debug("input rejected by gate")
		result := validator.NewResult()
		result.AddError(codes.NotCode, "Input does not look like a plugin source file",
			nil, validator.ComponentDescriptor)
		result.Metadata = &validator.Metadata{ElapsedMs: elapsedMs(start)}
		return result, nil
	}

	key := cache.Key{
		Source:             src,
		FileName:           name,
		Strict:             opts.StrictMode,
		ReportUnverifiable: opts.ReportUnverifiable,
		Checker:            c.id,
	}
	cacheable := c.cache != nil && len(opts.CustomRules) == 0
	if cacheable {
		if hit, ok := c.cache.Get(key); ok {
			logger.Debug("cache hit")
			hit.Metadata.ElapsedMs = elapsedMs(start)
			return hit, nil
		}
	}

	body := []byte(src)
	structural := c.structure.Validate(ctx, body, opts)

	compiled, err := c.compiler.Check(ctx, body, name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "validation interrupted")
		}
		logger.Warn("compiler checker failed", "error", err)
		compiled = validator.NewResult()
		compiled.AddError(codes.CompilerAdapter, fmt.Sprintf("Compiler diagnostics unavailable: %v", err),
			nil, "")
	}

	result := validator.NewResult()
	result.Merge(structural)
	result.Merge(compiled)
	for _, rule := range opts.CustomRules {
		for _, i := range rule(body, name) {
			result.Add(i)
		}
	}
	result.Finalize(opts.StrictMode)

	md := validator.Metadata{}
	if structural.Metadata != nil {
		md = *structural.Metadata
	}
	md.ElapsedMs = elapsedMs(start)
	result.Metadata = &md

	if cacheable {
		c.cache.Put(key, result)
	}
	logger.Debug("validation done", "valid", result.IsValid, "issues", len(result.Issues), "elapsed_ms", md.ElapsedMs)
	return result, nil
}

// ValidateLegacy runs only the text heuristics over src.
//
// Deprecated: the heuristics cannot see through strings or comments. Use
// Validate.
func (c *Checker) ValidateLegacy(src string) *validator.Result {
	start := time.Now()
	result := prefilter.Check(src)
	result.Finalize(false)
	result.Metadata = &validator.Metadata{ElapsedMs: elapsedMs(start)}
	return result
}

// ValidateWithTimeout runs Validate bounded by d. When the deadline passes
// first the result holds a single VALIDATION_TIMEOUT error.
func (c *Checker) ValidateWithTimeout(ctx context.Context, src string, opts validator.Options, d time.Duration) (*validator.Result, error) {
	if d <= 0 {
		return c.Validate(ctx, src, opts)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type outcome struct {
		result *validator.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := c.Validate(ctx, src, opts)
		done <- outcome{r, err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) {
			return timeoutResult(opts, d), nil
		}
		return out.result, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logging.FromContext(ctx).Warn("validation timed out", "file", opts.NominalFileName(), "timeout", d)
			return timeoutResult(opts, d), nil
		}
		return nil, errors.Wrap(ctx.Err(), "validation interrupted")
	}
}

func timeoutResult(opts validator.Options, d time.Duration) *validator.Result {
	result := validator.NewResult()
	result.AddError(codes.Timeout, fmt.Sprintf("Validation did not finish within %s", d),
		nil, validator.ComponentDescriptor)
	result.Metadata = &validator.Metadata{ElapsedMs: d.Milliseconds()}
	return result
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
