package entity

import "encoding/json"

// Nombres del conjunto cerrado de permisos tal como vienen de la base de datos.
const (
	PermisoAgregar       = "Agregar"
	PermisoActualizar    = "Actualizar"
	PermisoEliminar      = "Eliminar"
	PermisoCargar        = "Cargar información"
	PermisoDescargar     = "Descargar información"
	PermisoGenerarOferta = "Generar oferta"
)

// Usuario es el perfil de sesión: identidad autenticada más el grafo de
// autorización rol → menús → submenús → permisos y las copias de solo lectura
// de proyectos y propiedades a las que tiene acceso.
type Usuario struct {
	Email             string `json:"email"`
	Nombre            string `json:"nombre"`
	Telefono          string `json:"telefono"`
	ClavePaisTelefono string `json:"clave_pais_telefono"`
	Activo            bool   `json:"activo"`
	Rol               Rol    `json:"rol"`

	ProyectosAcceso        []Proyecto            `json:"proyectos_acceso"`
	PropiedadesDisponibles []ProyectoPropiedades `json:"propiedades_disponibles"`

	// Deprecated: lista plana previa a propiedades_disponibles; se conserva
	// porque el backend aún la envía en perfiles antiguos.
	TodasLasPropiedades []PropiedadBase `json:"todas_las_propiedades"`
}

// UnmarshalJSON decodifica el perfil tolerando colecciones ausentes, null o con
// un tipo inesperado: cualquiera de esos casos produce una lista vacía, de modo
// que ningún consumidor necesite comprobar nil.
func (u *Usuario) UnmarshalJSON(data []byte) error {
	type alias Usuario
	aux := struct {
		*alias
		ProyectosAcceso        json.RawMessage `json:"proyectos_acceso"`
		PropiedadesDisponibles json.RawMessage `json:"propiedades_disponibles"`
		TodasLasPropiedades    json.RawMessage `json:"todas_las_propiedades"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ProyectosAcceso = listaTolerante[Proyecto](aux.ProyectosAcceso)
	u.PropiedadesDisponibles = listaTolerante[ProyectoPropiedades](aux.PropiedadesDisponibles)
	u.TodasLasPropiedades = listaTolerante[PropiedadBase](aux.TodasLasPropiedades)
	return nil
}

// Rol agrupa los menús habilitados para un perfil.
type Rol struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
	Menus       []Menu `json:"menus"`
}

// Menu es una sección de navegación. Su nombre funciona a la vez como etiqueta
// visible y como clave de sección. Un menú inactivo no aporta navegación ni
// permisos, sin importar el estado de sus submenús.
type Menu struct {
	ID       int       `json:"id"`
	Nombre   string    `json:"nombre"`
	Activo   bool      `json:"activo"`
	Submenus []Submenu `json:"submenus"`
}

// Submenu agrupa permisos dentro de un menú. Misma cascada de activo que Menu.
type Submenu struct {
	ID       int       `json:"id"`
	Nombre   string    `json:"nombre"`
	Activo   bool      `json:"activo"`
	Permisos []Permiso `json:"permisos"`
}

// Permiso es una capacidad con nombre del conjunto cerrado (ver constantes Permiso*).
type Permiso struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
}

// listaTolerante decodifica raw en []T. Ausencia, null o un valor que no es
// arreglo producen la lista vacía, nunca nil ni error.
func listaTolerante[T any](raw json.RawMessage) []T {
	if len(raw) > 0 {
		var tmp []T
		if err := json.Unmarshal(raw, &tmp); err == nil && tmp != nil {
			return tmp
		}
	}
	return []T{}
}
