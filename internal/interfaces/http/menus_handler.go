package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/application/permisos"
)

// MenusHandler expone la navegación visible y las consultas de permisos del
// perfil activo.
type MenusHandler struct{}

// NewMenusHandler construye el handler. No tiene dependencias: resuelve todo
// contra el perfil que RequireSesion dejó en el contexto.
func NewMenusHandler() *MenusHandler {
	return &MenusHandler{}
}

// Menus godoc
// @Summary      Menús visibles del perfil activo
// @Tags         menus
// @Produce      json
// @Success      200  {array}  entity.Menu
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/menus [get]
func (h *MenusHandler) Menus(c *fiber.Ctx) error {
	return c.JSON(permisos.VisibleMenus(GetUsuario(c)))
}

// Submenus godoc
// @Summary      Submenús visibles de un menú
// @Tags         menus
// @Produce      json
// @Param        menu  path  string  true  "Nombre del menú"
// @Success      200  {array}   entity.Submenu
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{menu}/submenus [get]
func (h *MenusHandler) Submenus(c *fiber.Ctx) error {
	nombre := c.Params("menu")
	for _, m := range permisos.VisibleMenus(GetUsuario(c)) {
		if permisos.ClaveSeccion(m.Nombre) == permisos.ClaveSeccion(nombre) {
			return c.JSON(permisos.VisibleSubmenus(m))
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "menú no encontrado"})
}

// Permiso godoc
// @Summary      Consultar si el perfil tiene un permiso por nombre
// @Tags         menus
// @Produce      json
// @Param        nombre  query  string  true  "Nombre exacto del permiso"
// @Success      200  {object}  dto.PermisoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/permisos/check [get]
func (h *MenusHandler) Permiso(c *fiber.Ctx) error {
	nombre := c.Query("nombre")
	if nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NAME", Message: "nombre es requerido"})
	}
	return c.JSON(dto.PermisoResponse{
		Permiso:   nombre,
		Concedido: permisos.HasPermission(GetUsuario(c), nombre),
	})
}

// PorSeccion godoc
// @Summary      Permisos activos agrupados por submenú de una sección
// @Tags         menus
// @Produce      json
// @Param        seccion  query  string  true  "Nombre de la sección (insensible a acentos)"
// @Success      200  {object}  map[string][]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/permisos [get]
func (h *MenusHandler) PorSeccion(c *fiber.Ctx) error {
	seccion := c.Query("seccion")
	if seccion == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SECTION", Message: "seccion es requerida"})
	}
	return c.JSON(permisos.PorSeccion(GetUsuario(c), seccion))
}
