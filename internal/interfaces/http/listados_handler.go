package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/session"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// ListadosHandler expone las listas de solo lectura que viajan dentro del
// perfil: los proyectos a los que el usuario tiene acceso y, para perfiles
// de administración, el padrón completo de usuarios.
type ListadosHandler struct {
	ctrl *session.Controller
}

func NewListadosHandler(ctrl *session.Controller) *ListadosHandler {
	return &ListadosHandler{ctrl: ctrl}
}

// Proyectos godoc
// @Summary      Proyectos a los que tiene acceso el perfil activo
// @Tags         listados
// @Produce      json
// @Success      200  {array}   entity.Proyecto
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/proyectos [get]
func (h *ListadosHandler) Proyectos(c *fiber.Ctx) error {
	u := GetUsuario(c)
	if u.ProyectosAcceso == nil {
		return c.JSON([]entity.Proyecto{})
	}
	return c.JSON(u.ProyectosAcceso)
}

// Usuarios godoc
// @Summary      Padrón de usuarios (vacío salvo para perfiles administradores)
// @Tags         listados
// @Produce      json
// @Success      200  {array}   entity.Usuario
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *ListadosHandler) Usuarios(c *fiber.Ctx) error {
	todos := h.ctrl.TodosLosUsuarios()
	if todos == nil {
		todos = []entity.Usuario{}
	}
	return c.JSON(todos)
}
