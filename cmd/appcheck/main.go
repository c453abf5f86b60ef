// Package main is the entry point for the appcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fulldiveVR/codex/cmd/appcheck/commands"
	"github.com/fulldiveVR/codex/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var exitErr *errors.ExitError
	switch {
	case errors.As(err, &exitErr):
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(errors.ExitCode(err))
}
