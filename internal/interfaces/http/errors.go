package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
)

// writeError traduce errores de dominio a status HTTP + dto.ErrorResponse.
//   - ErrInvalidInput → 400
//   - ErrNotFound     → 404
//   - ErrConflict     → 409
//   - ErrTransport    → 502 (la API de inventario falló; el cliente puede reintentar)
//   - otro            → 500
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrTransport):
		status, code = fiber.StatusBadGateway, "TRANSPORT_FAILURE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
