package store

import (
	"sync"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
)

// hub reparte cambios de estado a los suscriptores del proceso. La publicación
// es síncrona respecto a la escritura que la origina pero no bloquea: un
// suscriptor lento pierde eventos intermedios, lo cual es aceptable porque el
// consumidor re-lee el almacén completo en cada reconciliación.
type hub struct {
	mu      sync.Mutex
	subs    []chan ports.CambioEstado
	cerrado bool
}

func (h *hub) subscribe() <-chan ports.CambioEstado {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan ports.CambioEstado, 8)
	if h.cerrado {
		close(ch)
		return ch
	}
	h.subs = append(h.subs, ch)
	return ch
}

func (h *hub) publish(c ports.CambioEstado) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cerrado {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cerrado {
		return
	}
	h.cerrado = true
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}
