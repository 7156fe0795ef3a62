package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sozu-dev/backoffice-api/internal/application/dto"
	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// CrudUseCase ejecuta las mutaciones de usuarios, proyectos y propiedades a
// través del webhook de automatización. La validación local es de formulario;
// la integridad relacional (duplicados, referencias) la decide el servicio
// remoto y llega como *domain.RechazoServidor.
type CrudUseCase struct {
	webhook ports.WebhookClient
	log     *logger.Logger
}

// NewCrudUseCase construye el caso de uso con el puerto hacia n8n.
func NewCrudUseCase(webhook ports.WebhookClient, log *logger.Logger) *CrudUseCase {
	return &CrudUseCase{webhook: webhook, log: log.Componente("crud")}
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// CreateUsuario da de alta un usuario. Devuelve domain.ErrValidacion si el
// formulario está incompleto.
func (uc *CrudUseCase) CreateUsuario(ctx context.Context, in dto.CreateUsuarioRequest) (json.RawMessage, error) {
	if err := validarUsuario(in.Email, in.Nombre, in.Telefono, in.ClavePaisTelefono, in.RolID); err != nil {
		return nil, err
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadUsuario,
		Operation: ports.OperacionCreate,
		Data:      in,
	})
}

// UpdateUsuario actualiza un usuario; el email identifica al registro.
func (uc *CrudUseCase) UpdateUsuario(ctx context.Context, email string, in dto.UpdateUsuarioRequest) (json.RawMessage, error) {
	if err := validarUsuario(email, in.Nombre, in.Telefono, in.ClavePaisTelefono, in.RolID); err != nil {
		return nil, err
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadUsuario,
		Operation: ports.OperacionUpdate,
		Data:      in,
		ID:        email,
	})
}

// DeleteUsuario elimina un usuario por email.
func (uc *CrudUseCase) DeleteUsuario(ctx context.Context, email string) (json.RawMessage, error) {
	if !emailValido(email) {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidacion)
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadUsuario,
		Operation: ports.OperacionDelete,
		ID:        email,
	})
}

// ── Proyectos ─────────────────────────────────────────────────────────────────

// CreateProyecto da de alta un proyecto.
func (uc *CrudUseCase) CreateProyecto(ctx context.Context, in dto.CreateProyectoRequest) (json.RawMessage, error) {
	if err := validarProyecto(in.Nombre, in.Direccion, in.IDTipoUso, in.PrecioM2Actual); err != nil {
		return nil, err
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadProyecto,
		Operation: ports.OperacionCreate,
		Data:      in,
	})
}

// UpdateProyecto actualiza un proyecto por id.
func (uc *CrudUseCase) UpdateProyecto(ctx context.Context, id int, in dto.UpdateProyectoRequest) (json.RawMessage, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id de proyecto inválido", domain.ErrValidacion)
	}
	if err := validarProyecto(in.Nombre, in.Direccion, in.IDTipoUso, in.PrecioM2Actual); err != nil {
		return nil, err
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadProyecto,
		Operation: ports.OperacionUpdate,
		Data:      in,
		ID:        id,
	})
}

// DeleteProyecto elimina un proyecto por id.
func (uc *CrudUseCase) DeleteProyecto(ctx context.Context, id int) (json.RawMessage, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id de proyecto inválido", domain.ErrValidacion)
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadProyecto,
		Operation: ports.OperacionDelete,
		ID:        id,
	})
}

// ── Propiedades ───────────────────────────────────────────────────────────────

// CreatePropiedad da de alta una propiedad (modelo de unidad).
func (uc *CrudUseCase) CreatePropiedad(ctx context.Context, in dto.CreatePropiedadRequest) (json.RawMessage, error) {
	if err := validarPropiedad(in.Nombre, in.NumeroRecamaras, in.NumeroCompletoBanos, in.NumeroMedioBano); err != nil {
		return nil, err
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadPropiedad,
		Operation: ports.OperacionCreate,
		Data:      in,
	})
}

// UpdatePropiedad actualiza una propiedad por id.
func (uc *CrudUseCase) UpdatePropiedad(ctx context.Context, id int, in dto.UpdatePropiedadRequest) (json.RawMessage, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id de propiedad inválido", domain.ErrValidacion)
	}
	if err := validarPropiedad(in.Nombre, in.NumeroRecamaras, in.NumeroCompletoBanos, in.NumeroMedioBano); err != nil {
		return nil, err
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadPropiedad,
		Operation: ports.OperacionUpdate,
		Data:      in,
		ID:        id,
	})
}

// DeletePropiedad elimina una propiedad por id.
func (uc *CrudUseCase) DeletePropiedad(ctx context.Context, id int) (json.RawMessage, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id de propiedad inválido", domain.ErrValidacion)
	}
	return uc.ejecutar(ctx, ports.OperacionCrud{
		Entity:    ports.EntidadPropiedad,
		Operation: ports.OperacionDelete,
		ID:        id,
	})
}

// ── Internos ──────────────────────────────────────────────────────────────────

func (uc *CrudUseCase) ejecutar(ctx context.Context, op ports.OperacionCrud) (json.RawMessage, error) {
	raw, err := uc.webhook.Crud(ctx, op)
	if err != nil {
		uc.log.Warn().
			Str("entidad", op.Entity).
			Str("operacion", op.Operation).
			Err(err).
			Msg("operación CRUD rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("entidad", op.Entity).
		Str("operacion", op.Operation).
		Msg("operación CRUD aplicada")
	return raw, nil
}

func validarUsuario(email, nombre, telefono, clavePais string, rolID int) error {
	switch {
	case !emailValido(email):
		return fmt.Errorf("%w: email inválido", domain.ErrValidacion)
	case strings.TrimSpace(nombre) == "":
		return fmt.Errorf("%w: nombre requerido", domain.ErrValidacion)
	case strings.TrimSpace(telefono) == "":
		return fmt.Errorf("%w: teléfono requerido", domain.ErrValidacion)
	case strings.TrimSpace(clavePais) == "":
		return fmt.Errorf("%w: clave de país requerida", domain.ErrValidacion)
	case rolID <= 0:
		return fmt.Errorf("%w: rol requerido", domain.ErrValidacion)
	}
	return nil
}

func validarProyecto(nombre, direccion string, idTipoUso int, precioM2 float64) error {
	switch {
	case strings.TrimSpace(nombre) == "":
		return fmt.Errorf("%w: nombre requerido", domain.ErrValidacion)
	case strings.TrimSpace(direccion) == "":
		return fmt.Errorf("%w: dirección requerida", domain.ErrValidacion)
	case idTipoUso <= 0:
		return fmt.Errorf("%w: tipo de uso requerido", domain.ErrValidacion)
	case precioM2 < 0:
		return fmt.Errorf("%w: precio por m² no puede ser negativo", domain.ErrValidacion)
	}
	return nil
}

func validarPropiedad(nombre string, recamaras, banos, medios int) error {
	switch {
	case strings.TrimSpace(nombre) == "":
		return fmt.Errorf("%w: nombre requerido", domain.ErrValidacion)
	case recamaras < 0 || banos < 0 || medios < 0:
		return fmt.Errorf("%w: los conteos no pueden ser negativos", domain.ErrValidacion)
	}
	return nil
}

func emailValido(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
