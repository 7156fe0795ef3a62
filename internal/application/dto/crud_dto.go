package dto

// Formularios CRUD tal como los espera el webhook (snake_case). La validación
// aquí es de formulario: campos requeridos y tipos; la integridad relacional
// vive en el servicio remoto.

// CreateUsuarioRequest alta de usuario.
type CreateUsuarioRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Nombre            string `json:"nombre" validate:"required,min=1,max=200"`
	Telefono          string `json:"telefono" validate:"required"`
	ClavePaisTelefono string `json:"clave_pais_telefono" validate:"required"`
	RolID             int    `json:"rol_id" validate:"required"`
	Activo            *bool  `json:"activo,omitempty"`
}

// UpdateUsuarioRequest actualización de usuario; el email identifica al registro.
type UpdateUsuarioRequest struct {
	Nombre            string `json:"nombre" validate:"required,min=1,max=200"`
	Telefono          string `json:"telefono" validate:"required"`
	ClavePaisTelefono string `json:"clave_pais_telefono" validate:"required"`
	RolID             int    `json:"rol_id" validate:"required"`
	Activo            bool   `json:"activo"`
}

// CreateProyectoRequest alta de proyecto.
type CreateProyectoRequest struct {
	Nombre                  string  `json:"nombre" validate:"required,min=1,max=200"`
	Direccion               string  `json:"direccion" validate:"required"`
	Descripcion             string  `json:"descripcion"`
	Latitud                 float64 `json:"latitud"`
	Longitud                float64 `json:"longitud"`
	URLLogo                 string  `json:"url_logo"`
	IDTipoUso               int     `json:"id_tipo_uso" validate:"required"`
	FechaInicioConstruccion string  `json:"fecha_inicio_construccion"`
	PrecioM2Actual          float64 `json:"precio_m2_actual" validate:"min=0"`
	Activo                  *bool   `json:"activo,omitempty"`
}

// UpdateProyectoRequest actualización de proyecto; el id numérico identifica al registro.
type UpdateProyectoRequest struct {
	Nombre                  string  `json:"nombre" validate:"required,min=1,max=200"`
	Direccion               string  `json:"direccion" validate:"required"`
	Descripcion             string  `json:"descripcion"`
	Latitud                 float64 `json:"latitud"`
	Longitud                float64 `json:"longitud"`
	URLLogo                 string  `json:"url_logo"`
	IDTipoUso               int     `json:"id_tipo_uso" validate:"required"`
	FechaInicioConstruccion string  `json:"fecha_inicio_construccion"`
	PrecioM2Actual          float64 `json:"precio_m2_actual" validate:"min=0"`
	Activo                  bool    `json:"activo"`
}

// CreatePropiedadRequest alta de propiedad (modelo).
type CreatePropiedadRequest struct {
	Nombre              string `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion         string `json:"descripcion"`
	NumeroRecamaras     int    `json:"numero_recamaras" validate:"min=0"`
	NumeroCompletoBanos int    `json:"numero_completo_banos" validate:"min=0"`
	NumeroMedioBano     int    `json:"numero_medio_bano" validate:"min=0"`
	Activo              *bool  `json:"activo,omitempty"`
}

// UpdatePropiedadRequest actualización de propiedad.
type UpdatePropiedadRequest struct {
	Nombre              string `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion         string `json:"descripcion"`
	NumeroRecamaras     int    `json:"numero_recamaras" validate:"min=0"`
	NumeroCompletoBanos int    `json:"numero_completo_banos" validate:"min=0"`
	NumeroMedioBano     int    `json:"numero_medio_bano" validate:"min=0"`
	Activo              bool   `json:"activo"`
}
