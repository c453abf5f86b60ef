// Package errors provides error handling conventions for the appcheck CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, exit code constants
// following standard Unix conventions, and thin re-exports of
// [github.com/cockroachdb/errors] so call sites need a single import.
//
// Candidate files that fail validation are never reported through this
// package: they produce issues in a validation result. Errors here are
// reserved for misuse (bad options, bad configuration) and I/O failures.
//
// # Sentinel Errors
//
//	if errors.Is(err, errors.ErrInvalidOptions) {
//	    // handle programmer error
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): Validation failed or invalid input/configuration
//   - ExitSystem (2): System-related error (I/O, missing tsc binary, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Check your config file")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
