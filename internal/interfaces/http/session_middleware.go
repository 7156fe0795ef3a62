package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/application/permisos"
	"github.com/sozu-dev/backoffice-api/internal/application/session"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// Local key para el perfil activo en Fiber.
const LocalUsuario = "usuario"

// RequireSesion exige una sesión iniciada y deja el perfil en c.Locals.
func RequireSesion(ctrl *session.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.EstadoActual() != session.EstadoLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"})
		}
		u := ctrl.Usuario()
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"})
		}
		c.Locals(LocalUsuario, u)
		return c.Next()
	}
}

// RequirePermiso exige que el perfil activo tenga el permiso nombrado.
// Debe encadenarse después de RequireSesion.
func RequirePermiso(permiso string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := GetUsuario(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"})
		}
		if !permisos.HasPermission(u, permiso) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso denegado: " + permiso})
		}
		return c.Next()
	}
}

// GetUsuario devuelve el perfil del contexto (después de RequireSesion).
func GetUsuario(c *fiber.Ctx) *entity.Usuario {
	v := c.Locals(LocalUsuario)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.Usuario)
	return u
}
