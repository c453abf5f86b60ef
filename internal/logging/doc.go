// Package logging provides structured logging for appcheck using slog.
//
// Loggers write either a compact colored text format meant for terminals or
// JSON for machine consumption. Attribute values that look like credentials
// are masked by the text handler, since candidate sources routinely embed
// API tokens in their defaults.
//
// Validators do not take a logger parameter; they read it from the context:
//
//	ctx = logging.NewContext(ctx, logger)
//	...
//	logging.FromContext(ctx).Debug("structural pass", "issues", n)
//
// [FromContext] falls back to a discarding logger so library callers that
// never configure logging see no output.
//
// # Testing
//
// Use [ForTest] to route log output through the testing framework:
//
//	ctx := logging.NewContext(t.Context(), logging.ForTest(t))
package logging
