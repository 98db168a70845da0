// Package log is the single output channel of the cells CLI.
//
// Results go to the output writer (stdout by default), diagnostics at warn
// and error level go to the error writer (stderr by default). Styling uses
// lipgloss and degrades to plain text when stdout is not a terminal.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// LogLevel controls the verbosity of log output.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn shows only warnings and errors.
	LevelWarn
	// LevelError shows only errors.
	LevelError
	// LevelSilent suppresses all output.
	LevelSilent
)

// String returns the lowercase level name.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel parses a level name as printed by LogLevel.String.
func ParseLevel(name string) (LogLevel, error) {
	for l := LevelDebug; l <= LevelSilent; l++ {
		if l.String() == name {
			return l, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (expected debug, info, warn, error or silent)", name)
}

type logger struct {
	mu     sync.RWMutex
	level  LogLevel
	prefix bool
	out    io.Writer
	err    io.Writer
}

var std = &logger{
	level: LevelInfo,
	out:   os.Stdout,
	err:   os.Stderr,
}

var (
	dimStyle    = lipgloss.NewStyle().Faint(true)
	boldStyle   = lipgloss.NewStyle().Bold(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// SetLevel sets the minimum log level. Messages below this level are suppressed.
func SetLevel(level LogLevel) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// GetLevel returns the current log level.
func GetLevel() LogLevel {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.level
}

// SetPrefix enables or disables the [cells] prefix on messages sent to the error writer.
func SetPrefix(enabled bool) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.prefix = enabled
}

// SetOutput replaces the output and error writers. A nil writer leaves the
// current one in place.
func SetOutput(out, err io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if out != nil {
		std.out = out
	}
	if err != nil {
		std.err = err
	}
}

// Reset restores defaults: info level, no prefix, stdout and stderr.
func Reset() {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = LevelInfo
	std.prefix = false
	std.out = os.Stdout
	std.err = os.Stderr
}

// Writer returns the current output writer, for commands that stream results.
func Writer() io.Writer {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.out
}

// ErrWriter returns the current error writer.
func ErrWriter() io.Writer {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.err
}

func canOutput(level LogLevel) bool {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.level <= level
}

// emit writes message if level passes the threshold. A nil style prints plain text.
func (l *logger) emit(level LogLevel, toErr bool, style *lipgloss.Style, message string) {
	l.mu.RLock()
	if l.level > level {
		l.mu.RUnlock()
		return
	}
	w := l.out
	if toErr {
		w = l.err
		if l.prefix {
			message = "[cells] " + message
		}
	}
	l.mu.RUnlock()

	if style != nil {
		message = style.Render(message)
	}
	fmt.Fprintln(w, message)
}

// Debug outputs a debug-level message (dim, stderr).
func Debug(message string) {
	std.emit(LevelDebug, true, &dimStyle, message)
}

// Debugf outputs a formatted debug-level message.
func Debugf(format string, args ...any) {
	if canOutput(LevelDebug) {
		Debug(fmt.Sprintf(format, args...))
	}
}

// Info outputs an info-level message (no styling).
func Info(message string) {
	std.emit(LevelInfo, false, nil, message)
}

// Infof outputs a formatted info-level message.
func Infof(format string, args ...any) {
	if canOutput(LevelInfo) {
		Info(fmt.Sprintf(format, args...))
	}
}

// Warn outputs a warning message (yellow, stderr).
func Warn(message string) {
	std.emit(LevelWarn, true, &yellowStyle, message)
}

// Warnf outputs a formatted warning message.
func Warnf(format string, args ...any) {
	if canOutput(LevelWarn) {
		Warn(fmt.Sprintf(format, args...))
	}
}

// Error outputs an error message (red, stderr).
func Error(message string) {
	std.emit(LevelError, true, &redStyle, message)
}

// Errorf outputs a formatted error message.
func Errorf(format string, args ...any) {
	if canOutput(LevelError) {
		Error(fmt.Sprintf(format, args...))
	}
}

// Success outputs a success message (green, info level).
func Success(message string) {
	std.emit(LevelInfo, false, &greenStyle, message)
}

// Dim outputs a subtle message (info level, stderr so it never mixes with results).
func Dim(message string) {
	std.emit(LevelInfo, true, &dimStyle, message)
}

// Bold outputs an emphasized message (info level).
func Bold(message string) {
	std.emit(LevelInfo, false, &boldStyle, message)
}

// Raw outputs a message without styling. Command results go through Raw so
// they stay machine-readable; only LevelSilent suppresses them.
func Raw(message string) {
	std.emit(LevelError, false, nil, message)
}

// Style provides string styling functions that return styled strings
// without printing them. Use with Raw() for composed lines.
var Style = struct {
	Dim    func(...string) string
	Bold   func(...string) string
	Red    func(...string) string
	Green  func(...string) string
	Yellow func(...string) string
	Cyan   func(...string) string
}{
	Dim:    dimStyle.Render,
	Bold:   boldStyle.Render,
	Red:    redStyle.Render,
	Green:  greenStyle.Render,
	Yellow: yellowStyle.Render,
	Cyan:   cyanStyle.Render,
}
