package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/domain"
)

// renderError traduce los errores de dominio a respuestas HTTP uniformes.
// Los rechazos del servicio remoto conservan su mensaje original.
func renderError(c *fiber.Ctx, err error) error {
	var rechazo *domain.RechazoServidor
	switch {
	case errors.As(err, &rechazo):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE_REJECTED", Message: rechazo.Mensaje})
	case errors.Is(err, domain.ErrValidacion):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrSinSesion):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"})
	case errors.Is(err, domain.ErrPermisoDenegado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrExtensionNoPermitida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_EXTENSION", Message: err.Error()})
	case errors.Is(err, domain.ErrSinConexion):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNAVAILABLE", Message: "sin conexión con el servicio remoto"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
