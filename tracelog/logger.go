// Package tracelog provides the minimal structured logger the solver uses
// to narrate unit propagation and conflict resolution when tracing is
// enabled, in the shape of the reference codebase's own log package: a thin
// wrapper around an io.Writer rather than a full logging framework, since
// the only consumer is a human watching a terminal while debugging a solve.
package tracelog

import (
	"fmt"
	"io"
	"strings"
)

const (
	successChar = "✓"
	failChar    = "✗"
	backChar    = "←"
)

// Logger writes prefixed, indented trace lines to an underlying io.Writer.
type Logger struct {
	w io.Writer
}

// New wraps w as a Logger. A nil w is valid and makes every method a no-op,
// so callers can construct a Logger unconditionally and only gate on
// whether tracing was requested at the call site.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Logf writes a formatted line, indented by level "| " prefixes.
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if l == nil || l.w == nil {
		return
	}
	fmt.Fprintf(l.w, "%s%s\n", strings.Repeat("| ", level), fmt.Sprintf(format, args...))
}

// Logln writes msg as-is, indented by level "| " prefixes.
func (l *Logger) Logln(level int, msg string) {
	l.Logf(level, "%s", msg)
}

// Decided writes a success line announcing a decision.
func (l *Logger) Decided(level int, msg string, args ...interface{}) {
	l.Logf(level, "%s %s", successChar, fmt.Sprintf(msg, args...))
}

// Conflict writes a failure line announcing a derived conflict.
func (l *Logger) Conflict(level int, msg string, args ...interface{}) {
	l.Logf(level, "%s %s", failChar, fmt.Sprintf(msg, args...))
}

// Backtrack writes a backtrack announcement.
func (l *Logger) Backtrack(level int, msg string, args ...interface{}) {
	l.Logf(level, "%s %s", backChar, fmt.Sprintf(msg, args...))
}
