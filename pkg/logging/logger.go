package logging

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// writer is an io.Writer that splits its input stream into lines and writes
// those lines to an underlying logger. It is used to bridge a child action's
// stdout/stderr into structured log lines.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer is any incomplete line fragment left over from a previous write.
	buffer []byte
}

// trimCarriageReturn trims any single trailing carriage return from the end
// of a byte slice.
func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *writer) Write(buffer []byte) (int, error) {
	w.buffer = append(w.buffer, buffer...)

	var processed int
	remaining := w.buffer
	for {
		index := bytes.IndexByte(remaining, '\n')
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

	return len(buffer), nil
}

// colorEnabled mirrors the teacher's practice of only emitting ANSI color
// codes when standard error is actually a terminal.
var colorEnabled = isatty.IsTerminal(os.Stderr.Fd())

// Logger is the main logger type. It has the property that it still
// functions if nil, but logs nothing, so optional loggers can be threaded
// through the codebase without nil checks at every call site. Logger is
// safe for concurrent use; dirmirror's own callers only ever touch it from
// the single host-loop goroutine, but child-process waiter goroutines log
// concurrently with it.
type Logger struct {
	// prefix is any sublogger prefix specified for the logger (dot-joined).
	prefix string
	// fields are structured key/value pairs appended to every record, used
	// to correlate log lines with a particular Origin or watch descriptor.
	fields map[string]string
	// level is the minimum level this logger (and its subloggers) will emit.
	level Level
}

// New creates a root logger at the given level.
func New(level Level) *Logger {
	return &Logger{level: level}
}

// Sublogger creates a new sublogger with the specified name appended to the
// prefix chain.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{
		prefix: prefix,
		fields: l.fields,
		level:  l.level,
	}
}

// WithField returns a sublogger carrying the given structured field in
// addition to any already attached, used to tag every line for an Origin
// (e.g. WithField("origin", id)) without threading the identifier through
// every log call.
func (l *Logger) WithField(key, value string) *Logger {
	if l == nil {
		return nil
	}
	fields := make(map[string]string, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{
		prefix: l.prefix,
		fields: fields,
		level:  l.level,
	}
}

// render applies the prefix and structured fields to a message.
func (l *Logger) render(line string) string {
	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line = fmt.Sprintf("%s %s=%s", line, k, l.fields[k])
		}
	}
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	return line
}

// output is the internal logging method.
func (l *Logger) output(calldepth int, level Level, line string) {
	if l == nil || level > l.level {
		return
	}
	rendered := l.render(line)
	if colorEnabled {
		switch level {
		case LevelError:
			rendered = color.RedString("%s", rendered)
		case LevelVerbose, LevelDebug:
			rendered = color.CyanString("%s", rendered)
		}
	}
	log.Output(calldepth, rendered)
}

// Error logs at LevelError.
func (l *Logger) Error(v ...interface{}) {
	l.output(3, LevelError, fmt.Sprint(v...))
}

// Errorf logs at LevelError with Printf semantics.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.output(3, LevelError, fmt.Sprintf(format, v...))
}

// Normal logs at LevelNormal.
func (l *Logger) Normal(v ...interface{}) {
	l.output(3, LevelNormal, fmt.Sprint(v...))
}

// Normalf logs at LevelNormal with Printf semantics.
func (l *Logger) Normalf(format string, v ...interface{}) {
	l.output(3, LevelNormal, fmt.Sprintf(format, v...))
}

// Verbose logs at LevelVerbose.
func (l *Logger) Verbose(v ...interface{}) {
	l.output(3, LevelVerbose, fmt.Sprint(v...))
}

// Verbosef logs at LevelVerbose with Printf semantics.
func (l *Logger) Verbosef(format string, v ...interface{}) {
	l.output(3, LevelVerbose, fmt.Sprintf(format, v...))
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(v ...interface{}) {
	l.output(3, LevelDebug, fmt.Sprint(v...))
}

// Debugf logs at LevelDebug with Printf semantics.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(3, LevelDebug, fmt.Sprintf(format, v...))
}

// Writer returns an io.Writer that writes lines at LevelVerbose, suitable
// for piping a child action's combined stdout/stderr through the logger.
func (l *Logger) Writer() io.Writer {
	if l == nil || LevelVerbose > l.level {
		return ioutil.Discard
	}
	return &writer{
		callback: func(s string) {
			l.Verbose(s)
		},
	}
}
