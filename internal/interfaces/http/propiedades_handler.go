package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/application/propiedades"
	"github.com/sozu-dev/backoffice-api/internal/application/usecase"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// PropiedadesHandler expone el inventario aplanado del perfil activo y la
// generación de ofertas.
type PropiedadesHandler struct {
	oferta *usecase.OfertaUseCase
}

// NewPropiedadesHandler construye el handler inyectando el caso de uso de oferta.
func NewPropiedadesHandler(oferta *usecase.OfertaUseCase) *PropiedadesHandler {
	return &PropiedadesHandler{oferta: oferta}
}

// propiedadesPage respuesta paginada de unidades.
type propiedadesPage struct {
	Items []entity.PropiedadCompleta `json:"items"`
	Page  dto.PageResponse           `json:"page"`
}

// List godoc
// @Summary      Listar las propiedades visibles, aplanadas y enriquecidas
// @Tags         propiedades
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  propiedadesPage
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/propiedades [get]
func (h *PropiedadesHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de página inválidos"})
	}
	page.DefaultPage()

	todas := propiedades.Completas(GetUsuario(c))
	total := len(todas)

	inicio := page.Offset
	if inicio > total {
		inicio = total
	}
	fin := inicio + page.Limit
	if fin > total {
		fin = total
	}

	return c.JSON(propiedadesPage{
		Items: todas[inicio:fin],
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// GetByID godoc
// @Summary      Obtener una unidad enriquecida por id
// @Tags         propiedades
// @Produce      json
// @Param        id   path  int  true  "ID de la propiedad"
// @Success      200  {object}  entity.PropiedadCompleta
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/propiedades/{id} [get]
func (h *PropiedadesHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	for _, p := range propiedades.Completas(GetUsuario(c)) {
		if p.PropiedadID == id {
			return c.JSON(p)
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "propiedad no encontrada"})
}

// Oferta godoc
// @Summary      Generar la hoja de oferta en PDF de una unidad
// @Tags         propiedades
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la propiedad"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/propiedades/{id}/oferta [get]
func (h *PropiedadesHandler) Oferta(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	datos, nombre, err := h.oferta.Generar(c.Context(), GetUsuario(c), id)
	if err != nil {
		return renderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(datos)
}
