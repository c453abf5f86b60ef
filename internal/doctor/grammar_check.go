package doctor

import (
	"context"
	"fmt"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/structure"
	"github.com/fulldiveVR/codex/internal/validator"
)

const (
	sampleValid = `import { defineApp } from "@plugins/sdk";

export default defineApp({
  name: "Doctor",
  key: "doctor",
  categories: ["tools"],
  iconUrl: "https://example.test/icon.svg",
  authDocUrl: "https://example.test/auth",
  supportsConnections: false,
  apiBaseUrl: "https://api.example.test",
});
`
	sampleBroken = "export default defineApp({ name: \"Doctor\",\n"
)

// GrammarCheck runs the structural validator over built-in samples to
// confirm the TypeScript grammar is linked and behaves.
type GrammarCheck struct {
	validator *structure.Validator
}

var _ Check = (*GrammarCheck)(nil)

// NewGrammarCheck creates a grammar self-test.
func NewGrammarCheck() *GrammarCheck {
	return &GrammarCheck{validator: structure.New()}
}

// Name returns the unique identifier for this check.
func (c *GrammarCheck) Name() string {
	return "grammar"
}

// Category returns the grouping for this check.
func (c *GrammarCheck) Category() string {
	return "parser"
}

// Run validates one good and one broken sample.
func (c *GrammarCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	good := c.validator.Validate(ctx, []byte(sampleValid), validator.Options{FileName: "doctor.ts"})
	if !good.IsValid {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("valid sample rejected: %s", good.Issues[0].Error())
		return result
	}

	bad := c.validator.Validate(ctx, []byte(sampleBroken), validator.Options{FileName: "doctor.ts"})
	if bad.IsValid || len(bad.ByCode(codes.ParseError)) == 0 {
		result.Status = SeverityError
		result.Message = "broken sample was not reported as a parse error"
		return result
	}

	result.Status = SeverityPass
	result.Message = "TypeScript grammar loaded"
	return result
}
