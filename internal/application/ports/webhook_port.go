package ports

import (
	"context"
	"encoding/json"
	"io"
)

// Entidades y operaciones aceptadas por el webhook CRUD.
const (
	EntidadUsuario   = "usuario"
	EntidadProyecto  = "proyecto"
	EntidadPropiedad = "propiedad"

	OperacionCreate = "create"
	OperacionUpdate = "update"
	OperacionDelete = "delete"
	OperacionRead   = "read"
)

// OperacionCrud es el cuerpo genérico que entiende el webhook de automatización.
type OperacionCrud struct {
	Entity    string `json:"entity"`
	Operation string `json:"operation"`
	Data      any    `json:"data,omitempty"`
	ID        any    `json:"id,omitempty"`
}

// ProgresoFunc recibe el avance en bytes de una carga. total puede ser -1 si
// el tamaño no se conoce de antemano.
type ProgresoFunc func(enviados, total int64)

// CargaArchivo describe una carga masiva de propiedades: el archivo más los
// metadatos del actor que la origina.
type CargaArchivo struct {
	Archivo       io.Reader
	NombreArchivo string
	Tamano        int64 // -1 si no se conoce
	Usuario       string
	NombreUsuario string
	Actividad     string // código de actividad; se genera uno si viene vacío
	Progreso      ProgresoFunc
}

// CargaResultado es la respuesta normalizada del webhook de carga.
type CargaResultado struct {
	Exito   bool
	Mensaje string
}

// WebhookClient define el puerto hacia el servicio de automatización n8n, el
// colaborador que posee toda la persistencia y la validación relacional.
type WebhookClient interface {
	// Login autentica por email y devuelve el envoltorio crudo del perfil, en
	// cualquiera de las formas históricas del backend (el normalizador decide).
	Login(ctx context.Context, email string) (json.RawMessage, error)

	// Crud ejecuta una operación sobre usuario/proyecto/propiedad. Un estado
	// no-2xx o un campo error en el cuerpo producen *domain.RechazoServidor.
	Crud(ctx context.Context, op OperacionCrud) (json.RawMessage, error)

	// CargarArchivo sube el archivo por multipart/form-data. La extensión se
	// valida antes de tocar la red; el progreso se sintetiza contando bytes.
	// Cancelar el contexto aborta la carga; abortar siempre es seguro.
	CargarArchivo(ctx context.Context, in CargaArchivo) (*CargaResultado, error)
}
