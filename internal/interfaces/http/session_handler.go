package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/application/session"
)

// SessionHandler maneja el ciclo de vida de la sesión y la navegación.
type SessionHandler struct {
	ctrl *session.Controller
}

// NewSessionHandler construye el handler inyectando el controlador de sesión.
func NewSessionHandler(ctrl *session.Controller) *SessionHandler {
	return &SessionHandler{ctrl: ctrl}
}

// Login godoc
// @Summary      Iniciar sesión por email
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Email del usuario"
// @Success      200   {object}  dto.SesionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Email) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	u, err := h.ctrl.Login(c.Context(), in.Email)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(dto.SesionResponse{
		Estado:        string(session.EstadoLoggedIn),
		Usuario:       u,
		SeccionActiva: h.ctrl.SeccionActiva(),
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SesionResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.ctrl.Logout(c.Context()); err != nil {
		return renderError(c, err)
	}
	return c.JSON(dto.SesionResponse{Estado: string(session.EstadoLoggedOut)})
}

// Refresh godoc
// @Summary      Refrescar el perfil desde el almacén persistido
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SesionResponse
// @Router       /api/session/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	estado := h.ctrl.Refresh(c.Context())
	return c.JSON(dto.SesionResponse{
		Estado:        string(estado),
		Usuario:       h.ctrl.Usuario(),
		SeccionActiva: h.ctrl.SeccionActiva(),
	})
}

// Estado godoc
// @Summary      Estado actual de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SesionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Estado(c *fiber.Ctx) error {
	return c.JSON(dto.SesionResponse{
		Estado:        string(h.ctrl.EstadoActual()),
		Usuario:       h.ctrl.Usuario(),
		SeccionActiva: h.ctrl.SeccionActiva(),
	})
}

// Navegar godoc
// @Summary      Cambiar la sección activa
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NavegacionRequest  true  "Sección destino"
// @Success      200   {object}  dto.SesionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/seccion [put]
func (h *SessionHandler) Navegar(c *fiber.Ctx) error {
	var in dto.NavegacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Seccion) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "seccion es requerida"})
	}
	h.ctrl.SetActiveMenu(c.Context(), in.Seccion)
	return c.JSON(dto.SesionResponse{
		Estado:        string(h.ctrl.EstadoActual()),
		SeccionActiva: h.ctrl.SeccionActiva(),
	})
}

// Submenus godoc
// @Summary      Estado de expansión de submenús
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/session/submenus [get]
func (h *SessionHandler) Submenus(c *fiber.Ctx) error {
	return c.JSON(h.ctrl.SubmenusExpandidos(c.Context()))
}

// SetSubmenu godoc
// @Summary      Expandir o colapsar un submenú
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        nombre  path  string  true  "Nombre del submenú"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/session/submenus/{nombre} [put]
func (h *SessionHandler) SetSubmenu(c *fiber.Ctx) error {
	nombre := c.Params("nombre")
	if nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NAME", Message: "nombre es requerido"})
	}
	var in struct {
		Abierto bool `json:"abierto"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ctrl.SetSubmenuExpandido(c.Context(), nombre, in.Abierto); err != nil {
		return renderError(c, err)
	}
	return c.JSON(h.ctrl.SubmenusExpandidos(c.Context()))
}
