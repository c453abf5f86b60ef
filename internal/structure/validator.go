package structure

import (
	"context"
	"fmt"
	"time"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/logging"
	"github.com/fulldiveVR/codex/internal/rules"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// DescriptorFunc is the name of the descriptor builder.
const DescriptorFunc = "defineApp"

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry replaces the built-in component registry.
func WithRegistry(r *rules.Registry) Option {
	return func(v *Validator) {
		v.registry = r
	}
}

// Validator runs the structural pass. It holds no per-call state and is
// safe for concurrent use.
type Validator struct {
	registry *rules.Registry
}

// New creates a validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = rules.Default()
	}
	return v
}

// Registry returns the registry the validator checks against.
func (v *Validator) Registry() *rules.Registry {
	return v.registry
}

// Validate checks src structurally. Problems with the candidate are always
// reported as issues; the returned result is never nil.
func (v *Validator) Validate(ctx context.Context, src []byte, opts validator.Options) (result *validator.Result) {
	logger := logging.FromContext(ctx).With("file", opts.NominalFileName())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("structural pass panicked", "panic", r)
			result = validator.NewResult()
			result.AddError(codes.ParseError, fmt.Sprintf("Internal error while validating structure: %v", r),
				&validator.Location{Line: 1, Column: 1, FilePath: opts.NominalFileName()}, validator.ComponentDescriptor)
		}
		result.Finalize(false)
		logger.Debug("structural pass done", "issues", len(result.Issues), "valid", result.IsValid, "elapsed", time.Since(start))
	}()

	result = validator.NewResult()

	tree, err := tsast.ParseDialect(ctx, src, tsast.DialectFor(opts.NominalFileName()))
	if err != nil {
		result.AddError(codes.ParseError, fmt.Sprintf("Source could not be parsed: %v", err),
			&validator.Location{Line: 1, Column: 1, FilePath: opts.NominalFileName()}, validator.ComponentDescriptor)
		return result
	}
	defer tree.Close()

	c := rules.NewContext(tree, opts, v.registry)
	if tree.HasError() {
		result.Add(parseError(c))
		return result
	}

	config, issue := v.findConfig(c)
	if issue != nil {
		result.Add(*issue)
		return result
	}
	result.Metadata = metadata(c, config)
	logger.Log(ctx, logging.LevelTrace, "descriptor found", "plugin", result.Metadata.PluginName)

	for _, i := range v.registry.Apply(c, validator.ComponentDescriptor, config) {
		result.Add(i)
	}
	for _, i := range v.components(c, config) {
		result.Add(i)
	}
	return result
}

// parseError reports the first syntax error of the tree.
func parseError(c *rules.Context) validator.Issue {
	errs := c.Tree.Errors()
	msg := "Source could not be parsed"
	var node *tsast.Node
	if len(errs) > 0 {
		node = errs[0].Node
		if errs[0].Missing {
			msg = fmt.Sprintf("Source could not be parsed: missing '%s'", errs[0].Token)
		} else {
			msg = fmt.Sprintf("Source could not be parsed: unexpected '%s'", errs[0].Token)
		}
	}
	return withHint(c.Error(codes.ParseError, msg, node, validator.ComponentDescriptor),
		"Fix the syntax error before structural checks can run")
}

// findConfig locates the descriptor call and returns its config object.
func (v *Validator) findConfig(c *rules.Context) (*tsast.Node, *validator.Issue) {
	call := c.Tree.DefaultExport()
	if call == nil || !tsast.IsCall(call) || c.Imports.Callee(c.Tree, call, DescriptorFunc) != DescriptorFunc {
		i := withHint(c.Error(codes.MissingDefineApp,
			"No default-exported defineApp({...}) call found", call, validator.ComponentDescriptor),
			"Add `export default defineApp({ ... })`")
		return nil, &i
	}

	args := tsast.Arguments(call)
	if len(args) == 0 {
		i := c.Error(codes.DefineAppNoArgs, "defineApp() must be called with a config object", call, validator.ComponentDescriptor)
		return nil, &i
	}
	if !tsast.IsObject(args[0]) {
		i := c.Error(codes.DefineAppNotObject, "The first argument of defineApp() must be an object literal", args[0], validator.ComponentDescriptor)
		return nil, &i
	}
	return tsast.Unwrap(args[0]), nil
}

// metadata extracts literal name and version.
func metadata(c *rules.Context, config *tsast.Node) *validator.Metadata {
	md := &validator.Metadata{}
	props := c.Tree.PropertyMap(config)
	if s, ok := c.Tree.StringValue(props["name"].Value); ok {
		md.PluginName = s
	}
	if s, ok := c.Tree.StringValue(props["version"].Value); ok {
		md.Version = s
	}
	return md
}

func withHint(i validator.Issue, hint string) validator.Issue {
	i.Suggestion = hint
	return i
}
