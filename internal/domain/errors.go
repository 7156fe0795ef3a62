package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrFormatoPerfilDesconocido = errors.New("formato de perfil no reconocido")
	ErrEstadoPersistidoCorrupto = errors.New("estado persistido corrupto")
	ErrSinConexion              = errors.New("no se pudo conectar al servidor")
	ErrSinSesion                = errors.New("no hay sesión activa")
	ErrPermisoDenegado          = errors.New("permiso denegado")
	ErrValidacion               = errors.New("entrada inválida")
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrExtensionNoPermitida     = errors.New("formato no permitido: usa .csv, .xls o .xlsx")
)

// RechazoServidor representa una respuesta no exitosa del servicio remoto:
// el webhook contestó, pero con estado no-2xx o con un campo error en el cuerpo.
// Se distingue de ErrSinConexion (fallo de transporte) para que la capa de
// presentación muestre mensajes diferentes.
type RechazoServidor struct {
	Codigo  int    // estado HTTP; 0 si el rechazo vino en un cuerpo 2xx
	Mensaje string // mensaje del servidor, si lo envió
}

func (e *RechazoServidor) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("error %d del servidor", e.Codigo)
}

// EsRechazoServidor extrae un *RechazoServidor de la cadena de errores.
func EsRechazoServidor(err error) (*RechazoServidor, bool) {
	var r *RechazoServidor
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
