package ports

import (
	"context"

	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// OfertaPDFGenerator define el puerto de salida para la hoja de oferta de una
// unidad. Cualquier adaptador (Maroto, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type OfertaPDFGenerator interface {
	// GenerarOfertaPDF produce los bytes del PDF de oferta para una unidad
	// aplanada/enriquecida. proyecto puede ser nil si el perfil no trae la
	// ficha del proyecto en proyectos_acceso.
	GenerarOfertaPDF(ctx context.Context, propiedad entity.PropiedadCompleta, proyecto *entity.Proyecto) ([]byte, error)
}
