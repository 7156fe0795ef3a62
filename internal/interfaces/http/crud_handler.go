package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/application/usecase"
)

// CrudHandler maneja las mutaciones de usuarios, proyectos y propiedades.
// Las respuestas reenvían el JSON del servicio remoto tal cual: es él quien
// posee los datos.
type CrudHandler struct {
	uc *usecase.CrudUseCase
}

// NewCrudHandler construye el handler inyectando el caso de uso CRUD.
func NewCrudHandler(uc *usecase.CrudUseCase) *CrudHandler {
	return &CrudHandler{uc: uc}
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// CreateUsuario godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "Datos del usuario"
// @Success      201  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *CrudHandler) CreateUsuario(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	raw, err := h.uc.CreateUsuario(c.Context(), in)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusCreated, raw)
}

// UpdateUsuario godoc
// @Summary      Actualizar usuario por email
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        email  path  string  true  "Email del usuario"
// @Param        body   body  dto.UpdateUsuarioRequest  true  "Datos del usuario"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{email} [put]
func (h *CrudHandler) UpdateUsuario(c *fiber.Ctx) error {
	var in dto.UpdateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	raw, err := h.uc.UpdateUsuario(c.Context(), c.Params("email"), in)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusOK, raw)
}

// DeleteUsuario godoc
// @Summary      Eliminar usuario por email
// @Tags         usuarios
// @Produce      json
// @Param        email  path  string  true  "Email del usuario"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{email} [delete]
func (h *CrudHandler) DeleteUsuario(c *fiber.Ctx) error {
	raw, err := h.uc.DeleteUsuario(c.Context(), c.Params("email"))
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusOK, raw)
}

// ── Proyectos ─────────────────────────────────────────────────────────────────

// CreateProyecto godoc
// @Summary      Crear proyecto
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProyectoRequest  true  "Datos del proyecto"
// @Success      201  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/proyectos [post]
func (h *CrudHandler) CreateProyecto(c *fiber.Ctx) error {
	var in dto.CreateProyectoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	raw, err := h.uc.CreateProyecto(c.Context(), in)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusCreated, raw)
}

// UpdateProyecto godoc
// @Summary      Actualizar proyecto por id
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del proyecto"
// @Param        body  body  dto.UpdateProyectoRequest  true  "Datos del proyecto"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/proyectos/{id} [put]
func (h *CrudHandler) UpdateProyecto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdateProyectoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	raw, err := h.uc.UpdateProyecto(c.Context(), id, in)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusOK, raw)
}

// DeleteProyecto godoc
// @Summary      Eliminar proyecto por id
// @Tags         proyectos
// @Produce      json
// @Param        id   path  int  true  "ID del proyecto"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/proyectos/{id} [delete]
func (h *CrudHandler) DeleteProyecto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	raw, err := h.uc.DeleteProyecto(c.Context(), id)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusOK, raw)
}

// ── Propiedades ───────────────────────────────────────────────────────────────

// CreatePropiedad godoc
// @Summary      Crear propiedad
// @Tags         propiedades
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePropiedadRequest  true  "Datos de la propiedad"
// @Success      201  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/propiedades [post]
func (h *CrudHandler) CreatePropiedad(c *fiber.Ctx) error {
	var in dto.CreatePropiedadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	raw, err := h.uc.CreatePropiedad(c.Context(), in)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusCreated, raw)
}

// UpdatePropiedad godoc
// @Summary      Actualizar propiedad por id
// @Tags         propiedades
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la propiedad"
// @Param        body  body  dto.UpdatePropiedadRequest  true  "Datos de la propiedad"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/propiedades/{id} [put]
func (h *CrudHandler) UpdatePropiedad(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdatePropiedadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	raw, err := h.uc.UpdatePropiedad(c.Context(), id, in)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusOK, raw)
}

// DeletePropiedad godoc
// @Summary      Eliminar propiedad por id
// @Tags         propiedades
// @Produce      json
// @Param        id   path  int  true  "ID de la propiedad"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/propiedades/{id} [delete]
func (h *CrudHandler) DeletePropiedad(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	raw, err := h.uc.DeletePropiedad(c.Context(), id)
	if err != nil {
		return renderError(c, err)
	}
	return enviarJSON(c, fiber.StatusOK, raw)
}

// enviarJSON reenvía un cuerpo JSON ya serializado con el status dado.
func enviarJSON(c *fiber.Ctx, status int, raw []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if len(raw) == 0 {
		raw = []byte(`{}`)
	}
	return c.Status(status).Send(raw)
}
