package usecase

import (
	"context"
	"fmt"

	"github.com/sozu-dev/backoffice-api/internal/application/permisos"
	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/application/propiedades"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// OfertaUseCase genera la hoja de oferta en PDF de una unidad. La operación
// está protegida por el permiso "Generar oferta" del perfil activo.
type OfertaUseCase struct {
	pdf ports.OfertaPDFGenerator
	log *logger.Logger
}

// NewOfertaUseCase construye el caso de uso con el generador de PDF.
func NewOfertaUseCase(pdf ports.OfertaPDFGenerator, log *logger.Logger) *OfertaUseCase {
	return &OfertaUseCase{pdf: pdf, log: log.Componente("oferta")}
}

// Generar resuelve la unidad por id dentro del perfil y produce el PDF.
// Devuelve domain.ErrPermisoDenegado si el perfil no trae el permiso y
// domain.ErrNotFound si la unidad no existe en las propiedades visibles.
func (uc *OfertaUseCase) Generar(ctx context.Context, u *entity.Usuario, propiedadID int) ([]byte, string, error) {
	if u == nil {
		return nil, "", domain.ErrSinSesion
	}
	if !permisos.HasPermission(u, entity.PermisoGenerarOferta) {
		return nil, "", domain.ErrPermisoDenegado
	}

	unidad, ok := buscarUnidad(u, propiedadID)
	if !ok {
		return nil, "", fmt.Errorf("%w: propiedad %d", domain.ErrNotFound, propiedadID)
	}

	datos, err := uc.pdf.GenerarOfertaPDF(ctx, unidad, buscarProyecto(u, unidad.ProyectoID))
	if err != nil {
		return nil, "", err
	}

	nombre := fmt.Sprintf("oferta_%s.pdf", unidad.NumeroPropiedad)
	uc.log.Info().
		Int("propiedad_id", propiedadID).
		Str("archivo", nombre).
		Msg("oferta generada")
	return datos, nombre, nil
}

func buscarUnidad(u *entity.Usuario, propiedadID int) (entity.PropiedadCompleta, bool) {
	for _, p := range propiedades.Completas(u) {
		if p.PropiedadID == propiedadID {
			return p, true
		}
	}
	return entity.PropiedadCompleta{}, false
}

func buscarProyecto(u *entity.Usuario, proyectoID int) *entity.Proyecto {
	for i := range u.ProyectosAcceso {
		if u.ProyectosAcceso[i].ProyectoID == proyectoID {
			return &u.ProyectosAcceso[i]
		}
	}
	return nil
}
