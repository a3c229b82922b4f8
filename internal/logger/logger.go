package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name onto a Level. Matching ignores case.
func ParseLevel(level string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Logger is the leveled logging surface components receive.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// StdLogger writes timestamped, leveled lines through the standard log
// package.
type StdLogger struct {
	mu    sync.Mutex
	level Level
	out   *stdlog.Logger
}

var _ Logger = (*StdLogger)(nil)

// New creates a logger writing to out at the named level. Unknown level
// names fall back to INFO.
func New(out io.Writer, level string) *StdLogger {
	if out == nil {
		out = os.Stderr
	}
	lvl, _ := ParseLevel(level)
	return &StdLogger{level: lvl, out: stdlog.New(out, "", 0)}
}

// SetLevel changes the minimum level. Unknown names are ignored.
func (l *StdLogger) SetLevel(level string) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return
	}
	l.mu.Lock()
	l.level = lvl
	l.mu.Unlock()
}

// SetOutput redirects subsequent log lines.
func (l *StdLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.out.SetOutput(w)
	l.mu.Unlock()
}

func (l *StdLogger) log(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	prefix := fmt.Sprintf("[%s] [%s] ", timestamp, level.String())
	message := fmt.Sprintf(format, v...)
	l.out.Println(prefix + message)
}

func (l *StdLogger) Debug(format string, v ...any) {
	l.log(LevelDebug, format, v...)
}

func (l *StdLogger) Info(format string, v ...any) {
	l.log(LevelInfo, format, v...)
}

func (l *StdLogger) Warn(format string, v ...any) {
	l.log(LevelWarn, format, v...)
}

func (l *StdLogger) Error(format string, v ...any) {
	l.log(LevelError, format, v...)
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// Nop returns a Logger that drops everything.
func Nop() Logger {
	return nop{}
}

var std = New(os.Stderr, "INFO")

// Default returns the process wide logger used by the package functions.
func Default() *StdLogger {
	return std
}

func SetLevel(level string) {
	std.SetLevel(level)
}

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Debug(format string, v ...any) {
	std.Debug(format, v...)
}

func Info(format string, v ...any) {
	std.Info(format, v...)
}

func Warn(format string, v ...any) {
	std.Warn(format, v...)
}

func Error(format string, v ...any) {
	std.Error(format, v...)
}
