package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/application/session"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/internal/infrastructure/store"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// webhookStub implementa ports.WebhookClient con respuestas programables.
type webhookStub struct {
	mu       sync.Mutex
	perfil   json.RawMessage
	loginErr error
	llamadas int
}

func (w *webhookStub) Login(_ context.Context, _ string) (json.RawMessage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.llamadas++
	if w.loginErr != nil {
		return nil, w.loginErr
	}
	return w.perfil, nil
}

func (w *webhookStub) Crud(_ context.Context, _ ports.OperacionCrud) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (w *webhookStub) CargarArchivo(_ context.Context, _ ports.CargaArchivo) (*ports.CargaResultado, error) {
	return &ports.CargaResultado{Exito: true}, nil
}

const envoltorioAna = `{"usuario": {"email": "ana@sozu.com", "nombre": "Ana Torres"}}`

func nuevoEntorno(t *testing.T) (*session.Controller, ports.SessionStore, *webhookStub) {
	t.Helper()
	st, err := store.NewFileStore(afero.NewMemMapFs(), "/estado", logger.Nop())
	require.NoError(t, err)

	wh := &webhookStub{perfil: json.RawMessage(envoltorioAna)}
	ctrl := session.NewController(st, wh, 10*time.Millisecond, logger.Nop())
	t.Cleanup(func() {
		ctrl.Close()
		_ = st.Close()
	})
	return ctrl, st, wh
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida: login, boot, logout.
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PersisteYTransiciona(t *testing.T) {
	ctrl, st, _ := nuevoEntorno(t)
	ctx := context.Background()

	u, err := ctrl.Login(ctx, "ana@sozu.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@sozu.com", u.Email)
	assert.Equal(t, session.EstadoLoggedIn, ctrl.EstadoActual())
	assert.Equal(t, session.SeccionInicial, ctrl.SeccionActiva())

	// El envoltorio crudo quedó persistido tal cual llegó del webhook.
	raw, ok, err := st.Read(ctx, ports.ClavePerfil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, envoltorioAna, string(raw))
}

func TestLogin_EmailVacio(t *testing.T) {
	ctrl, _, _ := nuevoEntorno(t)

	_, err := ctrl.Login(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestLogin_FalloDeRedNoTocaLoPersistido(t *testing.T) {
	ctrl, st, wh := nuevoEntorno(t)
	ctx := context.Background()

	_, err := ctrl.Login(ctx, "ana@sozu.com")
	require.NoError(t, err)

	wh.mu.Lock()
	wh.loginErr = domain.ErrSinConexion
	wh.mu.Unlock()

	_, err = ctrl.Login(ctx, "ana@sozu.com")
	require.ErrorIs(t, err, domain.ErrSinConexion)
	assert.Equal(t, session.EstadoLoggedOut, ctrl.EstadoActual())

	// El perfil de la sesión anterior sigue en el almacén: un arranque posterior
	// lo restaura.
	_, ok, err := st.Read(ctx, ports.ClavePerfil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_FormaDesconocidaQuedaLoggedOut(t *testing.T) {
	ctrl, _, wh := nuevoEntorno(t)
	wh.mu.Lock()
	wh.perfil = json.RawMessage(`{"sorpresa": true}`)
	wh.mu.Unlock()

	_, err := ctrl.Login(context.Background(), "ana@sozu.com")
	assert.ErrorIs(t, err, domain.ErrFormatoPerfilDesconocido)
	assert.Equal(t, session.EstadoLoggedOut, ctrl.EstadoActual())
}

func TestBoot_RestauraPerfilYSeccion(t *testing.T) {
	ctx := context.Background()
	st, err := store.NewFileStore(afero.NewMemMapFs(), "/estado", logger.Nop())
	require.NoError(t, err)
	defer st.Close()

	// Primera vida del proceso: login y navegación.
	wh := &webhookStub{perfil: json.RawMessage(envoltorioAna)}
	ctrl1 := session.NewController(st, wh, time.Hour, logger.Nop())
	_, err = ctrl1.Login(ctx, "ana@sozu.com")
	require.NoError(t, err)
	ctrl1.SetActiveMenu(ctx, "Inventario")
	ctrl1.Close()

	// Segunda vida: el arranque restaura perfil y sección sin tocar la red.
	whFrio := &webhookStub{loginErr: errors.New("no debe llamarse")}
	ctrl2 := session.NewController(st, whFrio, time.Hour, logger.Nop())
	defer ctrl2.Close()

	estado := ctrl2.Boot(ctx)
	assert.Equal(t, session.EstadoLoggedIn, estado)
	require.NotNil(t, ctrl2.Usuario())
	assert.Equal(t, "ana@sozu.com", ctrl2.Usuario().Email)
	assert.Equal(t, "Inventario", ctrl2.SeccionActiva())
	assert.Zero(t, whFrio.llamadas)
}

func TestBoot_SinEstadoQuedaLoggedOut(t *testing.T) {
	ctrl, _, _ := nuevoEntorno(t)

	estado := ctrl.Boot(context.Background())
	assert.Equal(t, session.EstadoLoggedOut, estado)
	assert.Nil(t, ctrl.Usuario())
}

func TestBoot_PerfilConFormaDesconocidaSeLimpia(t *testing.T) {
	ctrl, st, _ := nuevoEntorno(t)
	ctx := context.Background()

	require.NoError(t, st.Persist(ctx, ports.ClavePerfil, []byte(`{"sin": "marcadores"}`)))

	estado := ctrl.Boot(ctx)
	assert.Equal(t, session.EstadoLoggedOut, estado)

	_, ok, err := st.Read(ctx, ports.ClavePerfil)
	require.NoError(t, err)
	assert.False(t, ok, "el perfil irreconocible debe limpiarse del almacén")
}

func TestLogout_LimpiaYEsIdempotente(t *testing.T) {
	ctrl, st, _ := nuevoEntorno(t)
	ctx := context.Background()

	_, err := ctrl.Login(ctx, "ana@sozu.com")
	require.NoError(t, err)

	require.NoError(t, ctrl.Logout(ctx))
	assert.Equal(t, session.EstadoLoggedOut, ctrl.EstadoActual())
	assert.Nil(t, ctrl.Usuario())
	assert.Equal(t, session.SeccionInicial, ctrl.SeccionActiva())

	_, ok, err := st.Read(ctx, ports.ClavePerfil)
	require.NoError(t, err)
	assert.False(t, ok)

	// Repetir el logout sin sesión no es un error.
	require.NoError(t, ctrl.Logout(ctx))
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación: síncrona, con refresh desacoplado al mejor esfuerzo.
// ──────────────────────────────────────────────────────────────────────────────

func TestSetActiveMenu_EsSincrono(t *testing.T) {
	ctrl, _, _ := nuevoEntorno(t)
	ctx := context.Background()

	_, err := ctrl.Login(ctx, "ana@sozu.com")
	require.NoError(t, err)

	ctrl.SetActiveMenu(ctx, "Inventario")
	assert.Equal(t, "Inventario", ctrl.SeccionActiva(),
		"la sección cambia antes de cualquier actividad de red")
}

func TestSetActiveMenu_RefreshDesacopladoActualizaPerfil(t *testing.T) {
	ctrl, st, _ := nuevoEntorno(t)
	ctx := context.Background()

	_, err := ctrl.Login(ctx, "ana@sozu.com")
	require.NoError(t, err)

	// Otro proceso reemplaza el perfil persistido.
	nuevo := `{"usuario": {"email": "ana@sozu.com", "nombre": "Ana Torres Díaz"}}`
	require.NoError(t, st.Persist(ctx, ports.ClavePerfil, []byte(nuevo)))

	ctrl.SetActiveMenu(ctx, "Inventario")

	assert.Eventually(t, func() bool {
		u := ctrl.Usuario()
		return u != nil && u.Nombre == "Ana Torres Díaz"
	}, time.Second, 5*time.Millisecond, "el refresh diferido debe releer el almacén")

	assert.Equal(t, "Inventario", ctrl.SeccionActiva(),
		"el refresh reemplaza el perfil pero nunca revierte la navegación")
}

func TestLogout_GanaSobreElRefreshPendiente(t *testing.T) {
	ctrl, _, _ := nuevoEntorno(t)
	ctx := context.Background()

	_, err := ctrl.Login(ctx, "ana@sozu.com")
	require.NoError(t, err)

	ctrl.SetActiveMenu(ctx, "Inventario")
	require.NoError(t, ctrl.Logout(ctx))

	// Pasado el plazo del refresh programado por la navegación, la sesión sigue
	// cerrada: un desmontaje a propósito nunca se deshace en segundo plano.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, session.EstadoLoggedOut, ctrl.EstadoActual())
	assert.Nil(t, ctrl.Usuario())
}

// ──────────────────────────────────────────────────────────────────────────────
// Submenús expandidos.
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmenusExpandidos_RoundTrip(t *testing.T) {
	ctrl, _, _ := nuevoEntorno(t)
	ctx := context.Background()

	assert.Empty(t, ctrl.SubmenusExpandidos(ctx))

	require.NoError(t, ctrl.SetSubmenuExpandido(ctx, "Propiedades", true))
	require.NoError(t, ctrl.SetSubmenuExpandido(ctx, "Usuarios", false))

	m := ctrl.SubmenusExpandidos(ctx)
	assert.True(t, m["Propiedades"])
	assert.False(t, m["Usuarios"])
}
