package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Banner printed at the top of an interactive run
const Banner = "\n  NFTARCHIVE :: collection > svg > png\n\n"

var (
	cyan    = lipgloss.Color("#00FFFF")
	magenta = lipgloss.Color("#FF00FF")
	green   = lipgloss.Color("#39FF14")
	yellow  = lipgloss.Color("#FFFF00")
	red     = lipgloss.Color("#FF3131")
	dim     = lipgloss.Color("#808080")

	labelStyle     = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(yellow)
	successStyle   = lipgloss.NewStyle().Foreground(green).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(red).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(yellow)
	highlightStyle = lipgloss.NewStyle().Foreground(magenta).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(dim)
)

var (
	quiet atomic.Bool
	out   io.Writer = os.Stdout
)

// SetQuietMode suppresses everything but errors
func SetQuietMode(q bool) {
	quiet.Store(q)
}

// IsQuietMode reports whether quiet mode is on
func IsQuietMode() bool {
	return quiet.Load()
}

// SetOutput redirects terminal output, mainly for tests
func SetOutput(w io.Writer) {
	out = w
}

// Color helpers for inline use
func Cyan(s string) string    { return labelStyle.Render(s) }
func Yellow(s string) string  { return valueStyle.Render(s) }
func Green(s string) string   { return successStyle.Render(s) }
func Red(s string) string     { return errorStyle.Render(s) }
func Magenta(s string) string { return highlightStyle.Render(s) }
func Dim(s string) string     { return dimStyle.Render(s) }

// PrintBanner prints the banner unless quiet
func PrintBanner() {
	if IsQuietMode() {
		return
	}
	fmt.Fprint(out, Cyan(Banner))
}

// PrintError prints an error message. Errors are shown even in quiet mode.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, errorStyle.Render(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(os.Stderr, errorStyle.Render(msg))
	}
}

// PrintSuccess prints a success message
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(out, successStyle.Render(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	if IsQuietMode() {
		return
	}
	if len(args) > 0 {
		fmt.Fprintln(out, warningStyle.Render(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(out, warningStyle.Render(msg))
	}
}

// PrintHighlight prints a highlighted message
func PrintHighlight(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(out, highlightStyle.Render(msg))
}
