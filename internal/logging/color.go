package logging

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ColorMode is the --color setting.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always, or never in any case. Empty means auto.
func ParseColorMode(s string) (ColorMode, bool) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case "":
		return ColorAuto, true
	case ColorAuto, ColorAlways, ColorNever:
		return m, true
	default:
		return "", false
	}
}

// IsTTY reports whether w is a terminal. Any writer with an Fd method
// is probed, which covers *os.File.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI colors should be written to w in
// auto mode.
func SupportsColor(w io.Writer) bool {
	return ColorEnabled(w, ColorAuto)
}

// ColorEnabled applies mode to w. In auto mode NO_COLOR and TERM=dumb turn
// color off, FORCE_COLOR turns it on, and otherwise w must be a terminal.
func ColorEnabled(w io.Writer, mode ColorMode) bool {
	return colorEnabled(mode, IsTTY(w))
}

func colorEnabled(mode ColorMode, isTTY bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if v, ok := os.LookupEnv("FORCE_COLOR"); ok && v != "0" {
		return true
	}
	return isTTY
}
