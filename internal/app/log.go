package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger prints human lines, or NDJSON events when verbose. Every line is
// mirrored to the log file when one is set.
type Logger struct {
	verbose bool
	file    *os.File
	mu      sync.Mutex
	zl      zerolog.Logger
	human   io.Writer
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stdout looks up os.Stdout on every write so redirection after construction
// is honoured.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

type stderr struct{}

func (stderr) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

// humanWriter follows whichever stream human lines currently go to.
type humanWriter struct{ l *Logger }

func (w humanWriter) Write(p []byte) (int, error) { return w.l.human.Write(p) }

// fileWriter strips colour codes before writing to the log file.
type fileWriter struct{ l *Logger }

func (w fileWriter) Write(p []byte) (int, error) {
	if w.l.file == nil {
		return len(p), nil
	}
	if _, err := w.l.file.Write(ansiEscape.ReplaceAll(p, nil)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func NewLogger(verbose bool, logFile string) (*Logger, error) {
	return NewLoggerWithLevel(verbose, logFile, "info")
}

func NewLoggerWithLevel(verbose bool, logFile, level string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := &Logger{verbose: verbose, human: stdout{}}
	if strings.TrimSpace(logFile) != "" {
		dir := filepath.Dir(logFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	l.zl = zerolog.New(io.MultiWriter(humanWriter{l: l}, fileWriter{l: l})).Level(lvl)
	return l, nil
}

// UseStderr moves human lines and NDJSON events to stderr so stdout carries
// only command output. Call it before the logger is shared.
func (l *Logger) UseStderr() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.human = stderr{}
}

// Zerolog returns the structured logger for components that log directly. It
// discards everything unless the logger is verbose.
func (l *Logger) Zerolog() zerolog.Logger {
	if !l.verbose {
		return zerolog.Nop()
	}
	return l.zl
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) writeLine(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.human, line)
	if l.file != nil {
		_, _ = l.file.WriteString(ansiEscape.ReplaceAllString(line, "") + "\n")
	}
}

func (l *Logger) Info(msg string) {
	if l.verbose {
		l.Event("info", map[string]any{"message": msg})
		return
	}
	l.writeLine(msg)
}

// Event is dropped unless the logger is verbose.
func (l *Logger) Event(event string, fields map[string]any) {
	l.emit(zerolog.InfoLevel, event, fields)
}

// Debug events are only written when the configured level allows them.
func (l *Logger) Debug(event string, fields map[string]any) {
	l.emit(zerolog.DebugLevel, event, fields)
}

func (l *Logger) emit(level zerolog.Level, event string, fields map[string]any) {
	if !l.verbose {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.WithLevel(level).
		Str("ts", time.Now().Format(time.RFC3339Nano)).
		Str("event", event).
		Fields(fields).
		Send()
}
