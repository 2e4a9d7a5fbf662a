package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/telemetry"
)

const requestIDHeader = "X-Request-ID"

// observe tags the request with an ID, then logs and counts it once the
// status is final.
func observe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(requestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
		}
		c.Set(requestIDHeader, id)
		c.SetUserContext(logging.ContextWithRequestID(c.UserContext(), id))

		if err := c.Next(); err != nil {
			// resolve the status now, the app error handler would run too late
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path
		if status == fiber.StatusNotFound {
			route = "unmatched"
		}

		telemetry.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

		ev := logging.Ctx(c.UserContext()).Info()
		if status >= fiber.StatusInternalServerError {
			ev = logging.Ctx(c.UserContext()).Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("request")

		return nil
	}
}
