// Package logger provides namespaced debug logging for flowlint.
//
// Each file that wants tracing declares one logger:
//
//	var scannerLog = logger.New("template:scanner")
//
// Output is off unless FLOWLINT_DEBUG (or DEBUG) selects the namespace:
//
//	FLOWLINT_DEBUG=*                  - every namespace
//	FLOWLINT_DEBUG=validation:*       - one package
//	FLOWLINT_DEBUG=a:*,-a:noisy       - a package minus one file
//
// Lines go to stderr, prefixed with the namespace and suffixed with the time
// since that logger's previous line.
package logger

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/githubnext/flowlint/pkg/timeutil"
	"github.com/githubnext/flowlint/pkg/tty"
)

// Logger writes debug lines for a single namespace.
type Logger struct {
	namespace string
	enabled   bool
	color     string

	mu      sync.Mutex
	lastLog time.Time
}

var (
	debugEnv    = readDebugEnv()
	debugColors = os.Getenv("DEBUG_COLORS") != "0"
	isTTY       = tty.IsStderrTerminal()

	// output is swapped by tests.
	output io.Writer = os.Stderr
	outMu  sync.Mutex

	colorPalette = []string{
		"\033[38;5;33m",
		"\033[38;5;35m",
		"\033[38;5;166m",
		"\033[38;5;125m",
		"\033[38;5;37m",
		"\033[38;5;161m",
		"\033[38;5;136m",
		"\033[38;5;63m",
	}

	colorReset = "\033[0m"
)

// readDebugEnv prefers the tool-specific variable so DEBUG can stay
// reserved for other programs in the same shell.
func readDebugEnv() string {
	if v := os.Getenv("FLOWLINT_DEBUG"); v != "" {
		return v
	}
	return os.Getenv("DEBUG")
}

// New creates a Logger for namespace. Whether it prints is decided once,
// here, from the debug environment variable.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   computeEnabled(namespace),
		color:     selectColor(namespace),
		lastLog:   time.Now(),
	}
}

// Enabled reports whether the logger prints anything.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted line.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// Print logs its operands concatenated like fmt.Sprint.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprint(args...))
}

func (l *Logger) emit(message string) {
	l.mu.Lock()
	now := time.Now()
	diff := now.Sub(l.lastLog)
	l.lastLog = now
	l.mu.Unlock()

	prefix := l.namespace
	if l.color != "" {
		prefix = l.color + l.namespace + colorReset
	}

	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(output, "%s %s +%s\n", prefix, message, timeutil.FormatDuration(diff))
}

func selectColor(namespace string) string {
	if !debugColors || !isTTY {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(namespace))
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

// computeEnabled matches namespace against the comma-separated patterns.
// Exclusions (leading '-') win over inclusions regardless of order.
func computeEnabled(namespace string) bool {
	enabled := false
	for _, pattern := range strings.Split(debugEnv, ",") {
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

// matchPattern supports a single '*' at the start, end or middle.
func matchPattern(namespace, pattern string) bool {
	if pattern == "*" || pattern == namespace {
		return true
	}
	prefix, suffix, found := strings.Cut(pattern, "*")
	if !found {
		return false
	}
	return len(namespace) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(namespace, prefix) &&
		strings.HasSuffix(namespace, suffix)
}
