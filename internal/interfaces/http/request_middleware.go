package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// HeaderRequestID cabecera de correlación entre cliente y servicio.
const HeaderRequestID = "X-Request-ID"

const localRequestID = "request_id"

// RequestLogger asigna un X-Request-ID (si el cliente no lo envía) y registra cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)

		start := time.Now()
		err := c.Next()

		log.Info().
			Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Str("operator", GetOperator(c)).
			Msg("petición HTTP")
		return err
	}
}

// GetRequestID devuelve el X-Request-ID de la petición en curso.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(localRequestID).(string)
	return s
}
