package dto

import "github.com/sozu-dev/backoffice-api/internal/domain/entity"

// LoginRequest entrada del login: solo el email; la validación de identidad la
// hace el webhook remoto.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SesionResponse estado actual de la sesión.
type SesionResponse struct {
	Estado        string          `json:"estado"` // logged_out, loading, logged_in
	Usuario       *entity.Usuario `json:"usuario,omitempty"`
	SeccionActiva string          `json:"seccion_activa,omitempty"`
}

// NavegacionRequest cambio síncrono de la sección activa.
type NavegacionRequest struct {
	Seccion string `json:"seccion" validate:"required"`
}

// PermisoResponse resultado de una consulta de permiso.
type PermisoResponse struct {
	Permiso   string `json:"permiso"`
	Concedido bool   `json:"concedido"`
}

// CargaResponse resultado de la carga masiva.
type CargaResponse struct {
	Exito   bool   `json:"exito"`
	Mensaje string `json:"mensaje"`
}
