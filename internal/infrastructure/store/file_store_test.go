package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/infrastructure/store"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

func nuevoFileStore(t *testing.T) (*store.FileStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := store.NewFileStore(fs, "/estado", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, fs
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, _ := nuevoFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Persist(ctx, ports.ClavePerfil, []byte(`{"usuario": {"email": "a@b.co"}}`)))

	valor, ok, err := s.Read(ctx, ports.ClavePerfil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"usuario": {"email": "a@b.co"}}`, string(valor))
}

func TestFileStore_ClaveAusente(t *testing.T) {
	s, _ := nuevoFileStore(t)

	_, ok, err := s.Read(context.Background(), "inexistente")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_SobrescrituraEsLastWriteWins(t *testing.T) {
	s, _ := nuevoFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Persist(ctx, ports.ClaveSeccion, []byte(`"Dashboard"`)))
	require.NoError(t, s.Persist(ctx, ports.ClaveSeccion, []byte(`"Inventario"`)))

	valor, ok, err := s.Read(ctx, ports.ClaveSeccion)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"Inventario"`, string(valor))
}

func TestFileStore_CorruptoSeLimpiaYReportaAusente(t *testing.T) {
	s, fs := nuevoFileStore(t)
	ctx := context.Background()

	// Otro proceso dejó un archivo a medias.
	require.NoError(t, afero.WriteFile(fs, "/estado/userData.json", []byte(`{"usuario": {"em`), 0o644))

	_, ok, err := s.Read(ctx, ports.ClavePerfil)
	require.NoError(t, err, "el estado corrupto no es un error de lectura")
	assert.False(t, ok)

	existe, err := afero.Exists(fs, "/estado/userData.json")
	require.NoError(t, err)
	assert.False(t, existe, "la entrada corrupta debe eliminarse")
}

func TestFileStore_ClearIdempotente(t *testing.T) {
	s, _ := nuevoFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Persist(ctx, ports.ClavePerfil, []byte(`{}`)))
	require.NoError(t, s.Clear(ctx, ports.ClavePerfil))
	require.NoError(t, s.Clear(ctx, ports.ClavePerfil), "borrar lo que no existe no es error")

	_, ok, err := s.Read(ctx, ports.ClavePerfil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_PublicaCambiosPropios(t *testing.T) {
	s, _ := nuevoFileStore(t)
	ctx := context.Background()

	cambios := s.Subscribe()

	require.NoError(t, s.Persist(ctx, ports.ClavePerfil, []byte(`{}`)))

	select {
	case c := <-cambios:
		assert.Equal(t, ports.ClavePerfil, c.Clave)
		assert.False(t, c.Externo, "una escritura propia no es un cambio externo")
	case <-time.After(time.Second):
		t.Fatal("no llegó el cambio publicado por Persist")
	}

	require.NoError(t, s.Clear(ctx, ports.ClavePerfil))
	select {
	case c := <-cambios:
		assert.Equal(t, ports.ClavePerfil, c.Clave)
	case <-time.After(time.Second):
		t.Fatal("no llegó el cambio publicado por Clear")
	}
}

func TestFileStore_CloseCierraSuscripciones(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := store.NewFileStore(fs, "/estado", logger.Nop())
	require.NoError(t, err)

	cambios := s.Subscribe()
	require.NoError(t, s.Close())

	_, abierto := <-cambios
	assert.False(t, abierto, "Close debe cerrar los canales de los suscriptores")
}
