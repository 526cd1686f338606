// Package console formats messages and tables for terminal output.
//
// Styling is applied only when stderr is a terminal, so piped output and test
// output stay plain text.
package console

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/githubnext/fieldcheck/pkg/constants"
	"github.com/githubnext/fieldcheck/pkg/envutil"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/tty"
)

var consoleLog = logger.New("console:console")

// isTTY is a variable so tests can force plain output.
var isTTY = tty.IsStderrTerminal

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF6B6B"}).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#50FA7B"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#E67E22", Dark: "#FFB86C"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2980B9", Dark: "#8BE9FD"})
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7F8C8D", Dark: "#6272A4"}).Italic(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

func applyStyle(style lipgloss.Style, text string) string {
	if !isTTY() {
		return text
	}
	return style.Render(text)
}

// FormatErrorMessage formats an error line.
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// FormatSuccessMessage formats a success line.
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ "+message)
}

// FormatWarningMessage formats a warning line.
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ "+message)
}

// FormatInfoMessage formats an informational line.
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ "+message)
}

// FormatVerboseMessage formats a line only shown with --verbose.
func FormatVerboseMessage(message string) string {
	return applyStyle(verboseStyle, message)
}

// LogVerbose writes message to stderr when verbose is set.
func LogVerbose(verbose bool, message string) {
	if verbose {
		os.Stderr.WriteString(FormatVerboseMessage(message) + "\n")
	}
}

// IsAccessibleMode reports whether prompts should use accessible mode, which
// replaces interactive widgets with plain line-based questions. It is on
// when ACCESSIBLE is set, when TERM is "dumb", or when NO_COLOR is set.
func IsAccessibleMode() bool {
	return envutil.IsTruthy(constants.AccessibleEnv) ||
		os.Getenv("TERM") == "dumb" ||
		os.Getenv("NO_COLOR") != ""
}

// TableConfig describes a table for RenderTable.
type TableConfig struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders config as a bordered table. An empty config renders as
// the empty string.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 && len(config.Rows) == 0 {
		return ""
	}
	consoleLog.Printf("Rendering table: title=%q, columns=%d, rows=%d", config.Title, len(config.Headers), len(config.Rows))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(config.Headers...).
		Rows(config.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	var sb strings.Builder
	if config.Title != "" {
		sb.WriteString(applyStyle(titleStyle, config.Title))
		sb.WriteString("\n")
	}
	sb.WriteString(t.String())
	sb.WriteString("\n")
	return sb.String()
}
