// Package logging provides the leveled logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

// Levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var levelsByName = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l Level) String() string {
	if l < LevelDebug || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel returns the level named s, ignoring case. Unknown names map
// to LevelInfo.
func ParseLevel(s string) Level {
	if l, ok := levelsByName[strings.ToLower(s)]; ok {
		return l
	}
	return LevelInfo
}

// ValidLevel reports whether s names a level.
func ValidLevel(s string) bool {
	_, ok := levelsByName[strings.ToLower(s)]
	return ok
}

// Config configures a Logger.
type Config struct {
	Level Level

	// Output defaults to os.Stderr.
	Output io.Writer

	// Prefix precedes every message.
	Prefix string
}

// output is shared by a logger and everything derived from it, so a level
// change applies to all of them.
type output struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

type field struct {
	key   string
	value any
}

// Logger writes leveled lines with optional key/value fields. The zero
// pointer and Null discard everything.
type Logger struct {
	out    *output
	prefix string
	fields []field // sorted by key
}

// Null discards all output.
var Null = &Logger{}

// New creates a logger.
func New(cfg Config) *Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		out:    &output{w: w, level: cfg.Level},
		prefix: cfg.Prefix,
	}
}

// WithField returns a logger that appends key=value to every line.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a logger with fields added. Existing keys are
// overwritten.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return Null
	}
	derived := &Logger{out: l.out, prefix: l.prefix, fields: slices.Clone(l.fields)}
	for k, v := range fields {
		i, found := slices.BinarySearchFunc(derived.fields, k, func(f field, key string) int {
			return strings.Compare(f.key, key)
		})
		if found {
			derived.fields[i].value = v
			continue
		}
		derived.fields = slices.Insert(derived.fields, i, field{key: k, value: v})
	}
	return derived
}

// WithComponent sets the component field.
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// SetLevel changes the threshold of l and every logger sharing its output.
func (l *Logger) SetLevel(level Level) {
	if l == nil || l.out == nil {
		return
	}
	l.out.mu.Lock()
	l.out.level = level
	l.out.mu.Unlock()
}

// Level returns the current threshold.
func (l *Logger) Level() Level {
	if l == nil || l.out == nil {
		return LevelError
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return l.out.level
}

func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, format, args) }
func (l *Logger) Info(format string, args ...any)  { l.write(LevelInfo, format, args) }
func (l *Logger) Warn(format string, args ...any)  { l.write(LevelWarn, format, args) }
func (l *Logger) Error(format string, args ...any) { l.write(LevelError, format, args) }

func (l *Logger) write(level Level, format string, args []any) {
	if l == nil || l.out == nil {
		return
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	if level < l.out.level {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] ", time.Now().Format("2006-01-02T15:04:05.000"), level)
	if l.prefix != "" {
		b.WriteString(l.prefix + ": ")
	}
	b.WriteString(msg)
	for i, f := range l.fields {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		fmt.Fprintf(&b, "%s%s=%v", sep, f.key, f.value)
	}
	if len(l.fields) > 0 {
		b.WriteByte('}')
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.out.w, b.String())
}
