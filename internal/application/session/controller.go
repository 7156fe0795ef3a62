package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// Estado de la máquina de sesión.
type Estado string

const (
	EstadoLoggedOut Estado = "logged_out"
	EstadoLoading   Estado = "loading"
	EstadoLoggedIn  Estado = "logged_in"
)

// SeccionInicial es la sección activa por defecto tras iniciar sesión.
const SeccionInicial = "Dashboard"

// Controller es el dueño del ciclo de vida de la sesión: login, refresh,
// logout y la sección de navegación activa. Hay exactamente un perfil
// residente a la vez; su ausencia significa "sin sesión".
//
// Todo el estado vive detrás de un mutex porque el servidor HTTP atiende en
// paralelo. La escritura en el almacén siempre ocurre antes de la transición
// de estado, y la transición antes de cualquier lectura posterior en orden de
// programa.
type Controller struct {
	store        ports.SessionStore
	webhook      ports.WebhookClient
	log          *logger.Logger
	refreshDelay time.Duration

	mu      sync.Mutex
	estado  Estado
	perfil  *PerfilNormalizado
	seccion string

	// sesionCtx acota el trabajo en segundo plano de la sesión vigente
	// (refresh desacoplado tras navegar); se cancela en logout y en Close para
	// que nada actualice estado después de desmontar la sesión a propósito.
	sesionCtx    context.Context
	sesionCancel context.CancelFunc

	raizCtx    context.Context
	raizCancel context.CancelFunc
	wg         sync.WaitGroup
}

// NewController construye el controlador y arranca el lazo de reconciliación
// contra los cambios del almacén. Llamar a Close al terminar.
func NewController(store ports.SessionStore, webhook ports.WebhookClient, refreshDelay time.Duration, log *logger.Logger) *Controller {
	raizCtx, raizCancel := context.WithCancel(context.Background())
	c := &Controller{
		store:        store,
		webhook:      webhook,
		log:          log.Componente("session"),
		refreshDelay: refreshDelay,
		estado:       EstadoLoggedOut,
		seccion:      SeccionInicial,
		raizCtx:      raizCtx,
		raizCancel:   raizCancel,
	}
	c.renovarSesionCtx()

	c.wg.Add(1)
	go c.reconciliar(store.Subscribe())

	return c
}

// Boot restaura la sesión desde el almacén: si hay un perfil persistido y
// normaliza bien pasa a LoggedIn; si está corrupto o con forma desconocida se
// limpia y queda LoggedOut; si no hay nada, LoggedOut. Nunca falla el arranque.
func (c *Controller) Boot(ctx context.Context) Estado {
	c.mu.Lock()
	c.estado = EstadoLoading
	c.mu.Unlock()

	perfil := c.cargarPerfilPersistido(ctx)

	if raw, ok, err := c.store.Read(ctx, ports.ClaveSeccion); err == nil && ok {
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			c.mu.Lock()
			c.seccion = s
			c.mu.Unlock()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if perfil != nil {
		c.perfil = perfil
		c.estado = EstadoLoggedIn
	} else {
		c.perfil = nil
		c.estado = EstadoLoggedOut
	}
	return c.estado
}

// Login autentica contra el webhook remoto, normaliza y persiste el envoltorio
// crudo, y pasa a LoggedIn. Ante fallo HTTP o de normalización queda LoggedOut
// con el error a la vista; el perfil previamente persistido no se toca.
func (c *Controller) Login(ctx context.Context, email string) (*entity.Usuario, error) {
	if email == "" {
		return nil, fmt.Errorf("email es requerido: %w", domain.ErrValidacion)
	}

	c.mu.Lock()
	c.estado = EstadoLoading
	c.mu.Unlock()

	raw, err := c.webhook.Login(ctx, email)
	if err != nil {
		c.aLoggedOut()
		return nil, err
	}

	perfil, err := Normalizar(raw)
	if err != nil {
		c.aLoggedOut()
		return nil, err
	}

	// Persistir antes de transicionar: toda lectura que siga a LoggedIn
	// observa el envoltorio ya escrito.
	if err := c.store.Persist(ctx, ports.ClavePerfil, raw); err != nil {
		c.aLoggedOut()
		return nil, fmt.Errorf("persistir perfil: %w", err)
	}

	c.mu.Lock()
	c.perfil = perfil
	c.estado = EstadoLoggedIn
	c.seccion = SeccionInicial
	c.mu.Unlock()

	c.log.Info().Str("email", perfil.Usuario.Email).Msg("sesión iniciada")
	return perfil.Usuario, nil
}

// Logout limpia el almacén y pasa a LoggedOut desde cualquier estado. Cancela
// el trabajo en segundo plano pendiente de la sesión. Idempotente.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.sesionCancel()
	c.renovarSesionCtxLocked()
	c.perfil = nil
	c.estado = EstadoLoggedOut
	c.seccion = SeccionInicial
	c.mu.Unlock()

	if err := c.store.Clear(ctx, ports.ClavePerfil); err != nil {
		return fmt.Errorf("limpiar perfil: %w", err)
	}
	c.log.Info().Msg("sesión cerrada")
	return nil
}

// Refresh re-ejecuta la lógica de arranque contra el contenido actual del
// almacén. Se usa tras una mutación CRUD o cuando el almacén cambió por fuera.
// El reemplazo del perfil es total (last-write-wins), nunca un parche parcial,
// y no toca la sección seleccionada.
func (c *Controller) Refresh(ctx context.Context) Estado {
	c.mu.Lock()
	c.estado = EstadoLoading
	c.mu.Unlock()

	perfil := c.cargarPerfilPersistido(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if perfil != nil {
		c.perfil = perfil
		c.estado = EstadoLoggedIn
	} else {
		c.perfil = nil
		c.estado = EstadoLoggedOut
	}
	return c.estado
}

// SetActiveMenu cambia la sección activa de forma síncrona: la navegación
// nunca espera a la red. Desacoplado, programa un refresh de perfil al mejor
// esfuerzo; si ese refresh falla se registra y se descarta, para que una
// reconciliación inestable jamás deshaga una navegación ya hecha. Una segunda
// navegación no cancela el refresh pendiente: su actualización eventual sigue
// aplicando al perfil completo y no revierte la sección vigente.
func (c *Controller) SetActiveMenu(ctx context.Context, nombre string) {
	c.mu.Lock()
	c.seccion = nombre
	sesionCtx := c.sesionCtx
	c.mu.Unlock()

	if raw, err := json.Marshal(nombre); err == nil {
		if err := c.store.Persist(ctx, ports.ClaveSeccion, raw); err != nil {
			c.log.Warn().Err(err).Str("seccion", nombre).Msg("no se pudo persistir la sección activa")
		}
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		select {
		case <-sesionCtx.Done():
			return
		case <-time.After(c.refreshDelay):
		}
		c.Refresh(sesionCtx)
		c.log.Debug().Str("seccion", nombre).Msg("refresh post-navegación aplicado")
	}()
}

// SeccionActiva devuelve la clave de la sección seleccionada.
func (c *Controller) SeccionActiva() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seccion
}

// Usuario devuelve el perfil residente, o nil si no hay sesión.
func (c *Controller) Usuario() *entity.Usuario {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.perfil == nil {
		return nil
	}
	return c.perfil.Usuario
}

// TodosLosUsuarios devuelve la lista de administración que acompañó al perfil.
func (c *Controller) TodosLosUsuarios() []entity.Usuario {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.perfil == nil {
		return []entity.Usuario{}
	}
	return c.perfil.TodosLosUsuarios
}

// EstadoActual devuelve el estado de la máquina.
func (c *Controller) EstadoActual() Estado {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.estado
}

// SubmenusExpandidos lee el mapa de submenús expandidos en la UI; ausencia o
// corrupción devuelven el mapa vacío.
func (c *Controller) SubmenusExpandidos(ctx context.Context) map[string]bool {
	out := map[string]bool{}
	raw, ok, err := c.store.Read(ctx, ports.ClaveExpandidos)
	if err != nil || !ok {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]bool{}
	}
	return out
}

// SetSubmenuExpandido persiste el estado expandido/colapsado de un submenú.
func (c *Controller) SetSubmenuExpandido(ctx context.Context, nombre string, abierto bool) error {
	m := c.SubmenusExpandidos(ctx)
	m[nombre] = abierto
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.store.Persist(ctx, ports.ClaveExpandidos, raw)
}

// Close cancela todo el trabajo en segundo plano y espera a que termine.
func (c *Controller) Close() {
	c.mu.Lock()
	c.sesionCancel()
	c.mu.Unlock()
	c.raizCancel()
	c.wg.Wait()
}

// cargarPerfilPersistido lee y normaliza el envoltorio del almacén. JSON
// corrupto o forma desconocida limpian la entrada y devuelven nil; el arranque
// nunca se cae por estado persistido en mal estado.
func (c *Controller) cargarPerfilPersistido(ctx context.Context) *PerfilNormalizado {
	raw, ok, err := c.store.Read(ctx, ports.ClavePerfil)
	if err != nil {
		c.log.Warn().Err(err).Msg("leer perfil persistido")
		return nil
	}
	if !ok {
		return nil
	}
	perfil, err := Normalizar(raw)
	if err != nil {
		c.log.Warn().Err(err).Msg("perfil persistido con forma desconocida, se limpia")
		if clearErr := c.store.Clear(ctx, ports.ClavePerfil); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("limpiar perfil corrupto")
		}
		return nil
	}
	return perfil
}

// reconciliar consume los cambios publicados por el almacén. Sustituye al
// sondeo de presencia del cliente original: la escritura local publica el
// evento en el mismo proceso y el watcher del backend de archivos cubre las
// escrituras de otros procesos. Los fallos aquí son trabajo de fondo al mejor
// esfuerzo: se registran, nunca se propagan.
func (c *Controller) reconciliar(cambios <-chan ports.CambioEstado) {
	defer c.wg.Done()
	for {
		select {
		case <-c.raizCtx.Done():
			return
		case cambio, ok := <-cambios:
			if !ok {
				return
			}
			if cambio.Clave != ports.ClavePerfil {
				continue
			}

			_, presente, err := c.store.Read(c.raizCtx, ports.ClavePerfil)
			if err != nil {
				c.log.Warn().Err(err).Msg("reconciliación: leer almacén")
				continue
			}
			c.mu.Lock()
			residente := c.perfil != nil
			c.mu.Unlock()

			// Con cambio externo siempre se re-lee; con cambio propio solo si
			// memoria y almacén discrepan (escritores que saltaron al controlador).
			if cambio.Externo || residente != presente {
				c.log.Debug().Bool("externo", cambio.Externo).Msg("reconciliando sesión con el almacén")
				c.Refresh(c.raizCtx)
			}
		}
	}
}

func (c *Controller) aLoggedOut() {
	c.mu.Lock()
	c.perfil = nil
	c.estado = EstadoLoggedOut
	c.mu.Unlock()
}

func (c *Controller) renovarSesionCtx() {
	c.mu.Lock()
	c.renovarSesionCtxLocked()
	c.mu.Unlock()
}

func (c *Controller) renovarSesionCtxLocked() {
	ctx, cancel := context.WithCancel(c.raizCtx)
	c.sesionCtx = ctx
	c.sesionCancel = cancel
}
