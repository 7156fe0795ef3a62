package ports

import "context"

// Claves bien conocidas del almacén de sesión. La ausencia de cualquiera de
// ellas significa "usar el valor por defecto", nunca un error.
const (
	ClavePerfil     = "userData"         // envoltorio crudo del perfil (se re-normaliza en cada lectura)
	ClaveSeccion    = "activeSection"    // nombre de la sección de navegación activa
	ClaveExpandidos = "expandedSubmenus" // mapa de submenús expandidos en la UI
)

// CambioEstado notifica que una clave del almacén cambió.
type CambioEstado struct {
	Clave   string
	Externo bool // true si el cambio lo hizo otro proceso, no este
}

// SessionStore define el puerto de persistencia del estado de sesión.
// Es un registro last-write-wins: sin CAS, sin locks entre escritores; el dato
// autoritativo vive del lado del webhook y esta copia es solo un caché.
//
// La escritura publica el cambio de forma síncrona a los suscriptores del
// proceso, lo que sustituye al sondeo periódico que necesitaría un consumidor
// para enterarse de escrituras hechas en su mismo proceso.
type SessionStore interface {
	// Persist serializa y escribe valor bajo la clave. Tras retornar, cualquier
	// lectura posterior observa el nuevo valor.
	Persist(ctx context.Context, clave string, valor []byte) error

	// Read devuelve el último valor persistido. ok=false significa ausente
	// (nunca escrito o limpiado). Un valor almacenado que no sea JSON válido se
	// trata como ausente y se limpia la entrada corrupta.
	Read(ctx context.Context, clave string) (valor []byte, ok bool, err error)

	// Clear elimina la clave. Idempotente.
	Clear(ctx context.Context, clave string) error

	// Subscribe entrega un canal con los cambios de estado. El canal se cierra
	// cuando el almacén se cierra.
	Subscribe() <-chan CambioEstado

	// Close libera recursos (watchers, conexiones) y cierra los canales de
	// suscripción.
	Close() error
}
