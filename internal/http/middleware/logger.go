package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logger logs one line per request with request_id, method, path, status
// and latency in milliseconds. 5xx responses are logged at error level.
func Logger(log zerolog.Logger) fiber.Handler {
	return logRequests(log, nil)
}

// LoggerWithWriter is Logger writing JSON to w with a `ts` field in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return logRequests(zerolog.New(w), loc)
}

func logRequests(log zerolog.Logger, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		if loc != nil {
			ev = ev.Str("ts", time.Now().In(loc).Format(time.RFC3339Nano))
		}
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("request")

		return err
	}
}
