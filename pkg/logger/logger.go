// Package logger provides namespaced debug logging gated by the DEBUG
// environment variable.
//
// Each file creates its own logger with a "package:file" name:
//
//	var scanLog = logger.New("xmlscan:keyed")
//
// Output is written to stderr only when DEBUG matches the logger name.
// DEBUG accepts a comma-separated list of patterns; "*" matches everything,
// a trailing "*" matches a prefix ("xmlscan:*"), anything else must match
// exactly. DEBUG=1 and DEBUG=true are shorthands for "*".
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Logger writes namespaced debug lines to stderr when enabled.
type Logger struct {
	name    string
	enabled bool
}

var (
	patternsOnce sync.Once
	patterns     []string
)

func debugPatterns() []string {
	patternsOnce.Do(func() {
		raw := strings.TrimSpace(os.Getenv("DEBUG"))
		if raw == "" {
			return
		}
		if raw == "1" || strings.EqualFold(raw, "true") {
			patterns = []string{"*"}
			return
		}
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
	})
	return patterns
}

func matches(name string) bool {
	for _, p := range debugPatterns() {
		if p == "*" || p == name {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, "*"); ok && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// New creates a logger for the given component name.
func New(name string) *Logger {
	return &Logger{name: name, enabled: matches(name)}
}

// Enabled reports whether this logger will emit output.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted message when the logger is enabled.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", l.name, fmt.Sprintf(format, args...))
}

// Print logs a plain message when the logger is enabled.
func (l *Logger) Print(message string) {
	if !l.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", l.name, message)
}
