package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// HeaderRequestID cabecera de correlación; se genera si el cliente no la envía.
const HeaderRequestID = "X-Request-ID"

// RequestLogger middleware que asigna X-Request-ID y registra método, ruta, status y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		evt := l.Info()
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			evt = l.Warn()
		}
		evt.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return err
	}
}
