package usecase

import (
	"context"

	"github.com/sozu-dev/backoffice-api/internal/application/permisos"
	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// CargaUseCase sube un archivo de propiedades al webhook de carga masiva.
// Requiere el permiso "Cargar información" en el perfil activo.
type CargaUseCase struct {
	webhook ports.WebhookClient
	log     *logger.Logger
}

// NewCargaUseCase construye el caso de uso con el puerto hacia n8n.
func NewCargaUseCase(webhook ports.WebhookClient, log *logger.Logger) *CargaUseCase {
	return &CargaUseCase{webhook: webhook, log: log.Componente("carga")}
}

// Cargar valida el permiso y delega la carga. Los metadatos del actor se
// completan desde el perfil si vienen vacíos.
func (uc *CargaUseCase) Cargar(ctx context.Context, u *entity.Usuario, in ports.CargaArchivo) (*ports.CargaResultado, error) {
	if u == nil {
		return nil, domain.ErrSinSesion
	}
	if !permisos.HasPermission(u, entity.PermisoCargar) {
		return nil, domain.ErrPermisoDenegado
	}
	if in.Usuario == "" {
		in.Usuario = u.Email
	}
	if in.NombreUsuario == "" {
		in.NombreUsuario = u.Nombre
	}

	res, err := uc.webhook.CargarArchivo(ctx, in)
	if err != nil {
		uc.log.Warn().Str("archivo", in.NombreArchivo).Err(err).Msg("carga fallida")
		return nil, err
	}
	uc.log.Info().
		Str("archivo", in.NombreArchivo).
		Bool("exito", res.Exito).
		Msg("carga procesada")
	return res, nil
}
