package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
)

// currentLevel is the process-wide logging level. It is read and written
// atomically so that it can be adjusted from a CLI flag without requiring
// every caller to thread a level through.
var currentLevel uint32 = uint32(LevelInfo)

// SetLevel sets the process-wide logging level.
func SetLevel(level Level) {
	atomic.StoreUint32(&currentLevel, uint32(level))
}

// enabled reports whether a message at the given level would be logged.
func enabled(level Level) bool {
	return Level(atomic.LoadUint32(&currentLevel)) >= level
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything, so that components may be
// constructed with an absent logger during tests without guarding every call
// site. It writes through the standard library's log package so that it
// respects any destination/flag configuration applied there.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
}

// RootLogger is the root logger from which all other loggers derive.
var RootLogger = &Logger{}

// Sublogger creates a new logger with the specified name appended to the
// receiver's prefix.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{prefix: prefix}
}

// output is the internal logging method.
func (l *Logger) output(calldepth int, line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	log.Output(calldepth, line)
}

// Info logs basic execution information.
func (l *Logger) Info(v ...interface{}) {
	if l != nil && enabled(LevelInfo) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Infof logs basic execution information using a format string.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l != nil && enabled(LevelInfo) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Debug logs advanced execution information, a no-op unless debug logging is
// enabled.
func (l *Logger) Debug(v ...interface{}) {
	if l != nil && enabled(LevelDebug) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Debugf logs advanced execution information using a format string, a no-op
// unless debug logging is enabled.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l != nil && enabled(LevelDebug) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l != nil && enabled(LevelWarn) {
		l.output(3, color.YellowString("Warning: %v", err))
	}
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l != nil && enabled(LevelError) {
		l.output(3, color.RedString("Error: %v", err))
	}
}

// Writer returns an io.Writer that writes lines using Info. It returns
// io.Discard if the logger is nil, so callers never need to nil-check before
// wiring up something like an external command's stdout.
func (l *Logger) Writer() io.Writer {
	if l == nil {
		return io.Discard
	}
	return &lineWriter{callback: l.Info}
}

// lineWriter is an io.Writer that splits its input stream into lines and
// forwards complete lines to a callback.
type lineWriter struct {
	callback func(...interface{})
	buffer   []byte
}

// Write implements io.Writer.
func (w *lineWriter) Write(data []byte) (int, error) {
	w.buffer = append(w.buffer, data...)
	var processed int
	remaining := w.buffer
	for {
		index := indexByte(remaining, '\n')
		if index == -1 {
			break
		}
		w.callback(string(trimCarriageReturn(remaining[:index])))
		processed += index + 1
		remaining = remaining[index+1:]
	}
	if processed > 0 {
		leftover := len(w.buffer) - processed
		if leftover > 0 {
			copy(w.buffer[:leftover], w.buffer[processed:])
		}
		w.buffer = w.buffer[:leftover]
	}
	return len(data), nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func trimCarriageReturn(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
}
