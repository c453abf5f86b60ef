package compiler

import (
	"context"
	"strings"

	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/validator"
)

// Checker produces compiler diagnostics for one candidate.
type Checker interface {
	Check(ctx context.Context, src []byte, fileName string) (*validator.Result, error)
}

// Mode selects a checker implementation.
type Mode string

// Checker modes.
const (
	ModeSyntax Mode = "syntax"
	ModeTSC    Mode = "tsc"
	ModeNone   Mode = "none"
)

// Modes lists the valid modes.
func Modes() []Mode {
	return []Mode{ModeSyntax, ModeTSC, ModeNone}
}

// ValidMode reports whether m names a checker.
func ValidMode(m string) bool {
	for _, known := range Modes() {
		if strings.EqualFold(m, string(known)) {
			return true
		}
	}
	return false
}

// Config selects and configures a checker.
type Config struct {
	Mode        Mode
	TSCPath     string
	IgnoreCodes []int
}

// New builds the checker for cfg. An empty mode selects the syntax checker.
func New(cfg Config) (Checker, error) {
	switch Mode(strings.ToLower(string(cfg.Mode))) {
	case "", ModeSyntax:
		return NewSyntaxChecker(), nil
	case ModeTSC:
		return NewTSCChecker(WithTSCPath(cfg.TSCPath), WithIgnoreCodes(cfg.IgnoreCodes...)), nil
	case ModeNone:
		return Nop{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown compiler mode %q (valid: syntax, tsc, none)", cfg.Mode)
	}
}

// Nop is a checker that reports nothing.
type Nop struct{}

// Check returns an empty, valid result.
func (Nop) Check(context.Context, []byte, string) (*validator.Result, error) {
	return validator.NewResult(), nil
}
