// Package logging writes one JSON object per line, the format used by every
// component of the service (request logs, migrations, tracing bootstrap, services).
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Fields carries additional structured values for a log line.
type Fields map[string]any

// Logger is a JSON-lines logger. It is safe for concurrent use.
type Logger struct {
	mu        *sync.Mutex
	w         io.Writer
	loc       *time.Location
	component string
}

// New creates a Logger writing to w with timestamps rendered in loc.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{mu: &sync.Mutex{}, w: w, loc: loc}
}

// Default logs to stdout in UTC.
func Default() *Logger {
	return New(os.Stdout, time.UTC)
}

// Discard drops every line. Handy for tests.
func Discard() *Logger {
	return New(io.Discard, time.UTC)
}

// With returns a child logger tagging each line with component.
func (l *Logger) With(component string) *Logger {
	return &Logger{mu: l.mu, w: l.w, loc: l.loc, component: component}
}

// Location reports the timezone used for timestamps.
func (l *Logger) Location() *time.Location {
	return l.loc
}

func (l *Logger) Info(msg string, f Fields) {
	l.write("info", msg, f)
}

func (l *Logger) Warn(msg string, f Fields) {
	l.write("warn", msg, f)
}

// Error logs msg at error level with err attached under "error".
func (l *Logger) Error(msg string, err error, f Fields) {
	if f == nil {
		f = Fields{}
	}
	if err != nil {
		f["error"] = err.Error()
	}
	l.write("error", msg, f)
}

// Log writes a raw entry. Level defaults to "error" when status is "error", "info" otherwise.
func (l *Logger) Log(data map[string]any) {
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}
	l.encode(data)
}

func (l *Logger) write(level, msg string, f Fields) {
	entry := make(map[string]any, len(f)+4)
	for k, v := range f {
		entry[k] = v
	}
	entry["level"] = level
	entry["msg"] = msg
	l.encode(entry)
}

func (l *Logger) encode(entry map[string]any) {
	entry["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if l.component != "" {
		if _, ok := entry["component"]; !ok {
			entry["component"] = l.component
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		b, _ = json.Marshal(map[string]any{
			"ts":    entry["ts"],
			"level": "error",
			"msg":   "log_marshal_failed",
			"error": err.Error(),
		})
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}
