package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"menucup/internal/logging"
)

// Logger writes one JSON line per request through log:
// request_id, method, path, status, latency (ms), plus trace_id when the request
// is traced and user_id when a session is attached.
func Logger(log *logging.Logger) fiber.Handler {
	if log == nil {
		log = logging.Default()
	}
	log = log.With("http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)

		entry := map[string]any{
			"request_id": RequestIDFrom(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			entry["trace_id"] = sc.TraceID().String()
		}
		if s := SessionFrom(c); s != nil {
			entry["user_id"] = s.UserID
		}
		if status >= fiber.StatusInternalServerError {
			entry["level"] = "error"
		}
		log.Log(entry)

		return err
	}
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}
