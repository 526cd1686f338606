// Package logger provides namespaced debug loggers controlled by the DEBUG
// environment variable.
//
// Each file that wants debug output declares one logger for its namespace:
//
//	var engineLog = logger.New("validation:engine")
//
// Output goes to stderr and is silent unless DEBUG enables the namespace.
package logger

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/githubnext/fieldcheck/pkg/timeutil"
	"github.com/githubnext/fieldcheck/pkg/tty"
)

// Logger writes debug lines for one namespace.
type Logger struct {
	namespace string
	enabled   bool
	color     string

	mu      sync.Mutex
	lastLog time.Time
}

var (
	// DEBUG is read once; tests overwrite debugEnv directly.
	debugEnv = os.Getenv("DEBUG")

	debugColors = os.Getenv("DEBUG_COLORS") != "0"

	isTTY = tty.IsStderrTerminal()

	// output is swapped in tests.
	output io.Writer = os.Stderr

	// ANSI 256-color codes readable on light and dark backgrounds.
	colorPalette = []string{
		"\033[38;5;33m",
		"\033[38;5;35m",
		"\033[38;5;166m",
		"\033[38;5;125m",
		"\033[38;5;37m",
		"\033[38;5;161m",
		"\033[38;5;136m",
		"\033[38;5;124m",
		"\033[38;5;28m",
		"\033[38;5;63m",
	}

	colorReset = "\033[0m"
)

// New creates a Logger for namespace. Whether it prints is decided once, here,
// from the DEBUG patterns:
//
//	DEBUG=*                 all namespaces
//	DEBUG=validation:*      every namespace under validation
//	DEBUG=cli:check,form:*  a list of patterns
//	DEBUG=*,-constraint:*   exclusions win over inclusions
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   computeEnabled(namespace, debugEnv),
		color:     selectColor(namespace),
		lastLog:   time.Now(),
	}
}

// Enabled reports whether the logger prints anything.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Namespace returns the namespace the logger was created with.
func (l *Logger) Namespace() string {
	return l.namespace
}

// Printf logs a formatted line followed by the time elapsed since the
// previous line of this logger.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Print logs its arguments like fmt.Sprint.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprint(args...))
}

func (l *Logger) write(message string) {
	l.mu.Lock()
	now := time.Now()
	diff := now.Sub(l.lastLog)
	l.lastLog = now
	l.mu.Unlock()

	if l.color != "" {
		fmt.Fprintf(output, "%s%s%s %s +%s\n", l.color, l.namespace, colorReset, message, timeutil.FormatDuration(diff))
		return
	}
	fmt.Fprintf(output, "%s %s +%s\n", l.namespace, message, timeutil.FormatDuration(diff))
}

// selectColor hashes the namespace onto the palette so a namespace keeps its
// color across runs.
func selectColor(namespace string) string {
	if !debugColors || !isTTY {
		return ""
	}
	h := fnv.New32a()
	if _, err := h.Write([]byte(namespace)); err != nil {
		return ""
	}
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

func computeEnabled(namespace, patterns string) bool {
	enabled := false
	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if excluded, ok := strings.CutPrefix(pattern, "-"); ok {
			if matchPattern(namespace, excluded) {
				return false
			}
			continue
		}
		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

// matchPattern supports a single '*' wildcard at the start, the end or in the
// middle of the pattern.
func matchPattern(namespace, pattern string) bool {
	if pattern == "*" || pattern == namespace {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(namespace, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(namespace, suffix)
	}
	prefix, suffix, _ := strings.Cut(pattern, "*")
	return strings.HasPrefix(namespace, prefix) && strings.HasSuffix(namespace, suffix) &&
		len(namespace) >= len(prefix)+len(suffix)
}
