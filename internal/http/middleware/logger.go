package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"docdigest/internal/logger"
)

// Logger logs one structured line per request through the global zerolog logger.
// Timestamps are rendered in loc.
func Logger(loc *time.Location) fiber.Handler {
	return requestLogger(logger.GetLogger(), loc)
}

// LoggerWithWriter is Logger writing JSON lines to w.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return requestLogger(zerolog.New(w), loc)
}

// requestLogger emits request_id, method, path, status, latency (ms) and ts.
// A logger tagged with the request ID is stored in the request context so that
// downstream code can retrieve it with zerolog.Ctx.
func requestLogger(base zerolog.Logger, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := RequestIDFrom(c)

		reqLog := base.With().Str("request_id", rid).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = base.Error()
		case status >= fiber.StatusBadRequest:
			ev = base.Warn()
		default:
			ev = base.Info()
		}

		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Str("ts", start.In(loc).Format(time.RFC3339)).
			Msg("request")

		return err
	}
}
