package compiler

import (
	"context"
	"fmt"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/locate"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// DefaultMaxSyntaxErrors bounds the issues produced for one file.
const DefaultMaxSyntaxErrors = 20

// SyntaxChecker reports grammar errors using the tree-sitter parser.
type SyntaxChecker struct {
	maxErrors int
}

// NewSyntaxChecker creates a syntax checker.
func NewSyntaxChecker() *SyntaxChecker {
	return &SyntaxChecker{maxErrors: DefaultMaxSyntaxErrors}
}

// Check parses src and converts every error and missing node into an
// issue located in fileName.
func (s *SyntaxChecker) Check(ctx context.Context, src []byte, fileName string) (*validator.Result, error) {
	tree, err := tsast.ParseDialect(ctx, src, tsast.DialectFor(fileName))
	if err != nil {
		return nil, errors.Wrap(err, "syntax check")
	}
	defer tree.Close()

	result := validator.NewResult()
	loc := locate.New(tree, fileName)
	for idx, se := range tree.Errors() {
		if idx == s.maxErrors {
			result.AddError(codes.SyntaxError,
				fmt.Sprintf("Too many syntax errors, stopped after %d", s.maxErrors), loc.At(se.Node), "")
			break
		}
		if se.Missing {
			result.AddError(codes.SyntaxMissing, fmt.Sprintf("Missing '%s'", se.Token), loc.At(se.Node), "")
			continue
		}
		msg := "Unexpected syntax"
		if se.Token != "" {
			msg = fmt.Sprintf("Unexpected '%s'", se.Token)
		}
		result.AddError(codes.SyntaxError, msg, loc.At(se.Node), "")
	}
	result.Finalize(false)
	return result, nil
}
