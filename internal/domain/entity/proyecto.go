package entity

import "github.com/shopspring/decimal"

// Proyecto es un desarrollo inmobiliario. El backend es el dueño del dato;
// el perfil de sesión solo guarda una copia de lectura en proyectos_acceso.
type Proyecto struct {
	ProyectoID              int             `json:"proyecto_id"`
	Nombre                  string          `json:"nombre"`
	Direccion               string          `json:"direccion"`
	Descripcion             string          `json:"descripcion"`
	Latitud                 float64         `json:"latitud"`
	Longitud                float64         `json:"longitud"`
	URLLogo                 string          `json:"url_logo"`
	TipoUso                 string          `json:"tipo_uso"`
	FechaInicioConstruccion string          `json:"fecha_inicio_construccion"`
	PrecioM2Actual          decimal.Decimal `json:"precio_m2_actual"`
	Activo                  bool            `json:"activo"`
	EdificiosCount          int             `json:"edificios_count"`
	AmenidadesCount         int             `json:"amenidades_count"`
}
