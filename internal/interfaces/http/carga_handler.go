package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/application/usecase"
)

// CargaHandler maneja la carga masiva de propiedades por archivo.
type CargaHandler struct {
	uc *usecase.CargaUseCase
}

// NewCargaHandler construye el handler inyectando el caso de uso de carga.
func NewCargaHandler(uc *usecase.CargaUseCase) *CargaHandler {
	return &CargaHandler{uc: uc}
}

// Cargar godoc
// @Summary      Cargar archivo de propiedades (CSV o Excel)
// @Tags         cargas
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "Archivo .csv, .xls o .xlsx"
// @Success      200  {object}  dto.CargaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/cargas/propiedades [post]
func (h *CargaHandler) Cargar(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	res, err := h.uc.Cargar(c.Context(), GetUsuario(c), ports.CargaArchivo{
		Archivo:       f,
		NombreArchivo: fh.Filename,
		Tamano:        fh.Size,
		Usuario:       c.FormValue("usuario"),
		NombreUsuario: c.FormValue("nombre_usuario"),
		Actividad:     c.FormValue("actividad"),
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(dto.CargaResponse{Exito: res.Exito, Mensaje: res.Mensaje})
}
