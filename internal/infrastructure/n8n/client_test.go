package n8n_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/internal/infrastructure/n8n"
	"github.com/sozu-dev/backoffice-api/pkg/config"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

func clienteContra(srv *httptest.Server) *n8n.Client {
	return n8n.NewClient(config.WebhookConfig{
		BaseURL:   srv.URL,
		LoginPath: "loginconvalidacion",
		CargaURL:  srv.URL + "/carga",
		Timeout:   5 * time.Second,
		RetryMax:  0,
	}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y CRUD.
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EnviaEmailYDevuelveEnvoltorioCrudo(t *testing.T) {
	var recibido map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loginconvalidacion", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Correlation-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))
		_, _ = w.Write([]byte(`{"usuario": {"email": "ana@sozu.com"}}`))
	}))
	defer srv.Close()

	raw, err := clienteContra(srv).Login(context.Background(), "ana@sozu.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@sozu.com", recibido["email"])
	assert.JSONEq(t, `{"usuario": {"email": "ana@sozu.com"}}`, string(raw))
}

func TestCrud_RechazoConMensajeDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "el email ya existe"}`))
	}))
	defer srv.Close()

	_, err := clienteContra(srv).Crud(context.Background(), ports.OperacionCrud{
		Entity:    ports.EntidadUsuario,
		Operation: ports.OperacionCreate,
	})

	var rechazo *domain.RechazoServidor
	require.ErrorAs(t, err, &rechazo)
	assert.Equal(t, http.StatusConflict, rechazo.Codigo)
	assert.Equal(t, "el email ya existe", rechazo.Mensaje)
}

func TestCrud_ErrorEnCuerpo2xxTambienEsRechazo(t *testing.T) {
	// n8n a veces responde 200 con el error dentro del cuerpo.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "proyecto con propiedades activas"}`))
	}))
	defer srv.Close()

	_, err := clienteContra(srv).Crud(context.Background(), ports.OperacionCrud{
		Entity:    ports.EntidadProyecto,
		Operation: ports.OperacionDelete,
		ID:        3,
	})

	var rechazo *domain.RechazoServidor
	require.ErrorAs(t, err, &rechazo)
	assert.Equal(t, "proyecto con propiedades activas", rechazo.Mensaje)
}

func TestCrud_FalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor caído antes de la petición

	_, err := clienteContra(srv).Crud(context.Background(), ports.OperacionCrud{
		Entity:    ports.EntidadUsuario,
		Operation: ports.OperacionRead,
	})
	assert.ErrorIs(t, err, domain.ErrSinConexion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga de archivos.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidarExtension(t *testing.T) {
	assert.NoError(t, n8n.ValidarExtension("inventario.csv"))
	assert.NoError(t, n8n.ValidarExtension("inventario.XLSX"))
	assert.NoError(t, n8n.ValidarExtension("inventario.xls"))
	assert.ErrorIs(t, n8n.ValidarExtension("inventario.pdf"), domain.ErrExtensionNoPermitida)
	assert.ErrorIs(t, n8n.ValidarExtension("inventario.csv.exe"), domain.ErrExtensionNoPermitida)
	assert.ErrorIs(t, n8n.ValidarExtension("sin_extension"), domain.ErrExtensionNoPermitida)
}

func TestCargarArchivo_ExtensionInvalidaNoTocaLaRed(t *testing.T) {
	tocado := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tocado = true
	}))
	defer srv.Close()

	_, err := clienteContra(srv).CargarArchivo(context.Background(), ports.CargaArchivo{
		Archivo:       strings.NewReader("datos"),
		NombreArchivo: "malware.exe",
	})
	assert.ErrorIs(t, err, domain.ErrExtensionNoPermitida)
	assert.False(t, tocado)
}

func TestCargarArchivo_MultipartConCamposYProgreso(t *testing.T) {
	contenido := "col1,col2\n1,2\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, fh, err := r.FormFile("archivo")
		require.NoError(t, err)
		defer f.Close()
		datos, err := io.ReadAll(f)
		require.NoError(t, err)

		assert.Equal(t, "propiedades.csv", fh.Filename)
		assert.Equal(t, contenido, string(datos))
		assert.Equal(t, "ana@sozu.com", r.FormValue("usuario"))
		assert.Equal(t, "Ana Torres", r.FormValue("nombre_usuario"))
		assert.Equal(t, "7", r.FormValue("actividad"), "sin actividad explícita se usa la de carga de propiedades")

		_, _ = w.Write([]byte(`{"success": true, "mensaje": "Archivo procesado"}`))
	}))
	defer srv.Close()

	var llamadas int
	res, err := clienteContra(srv).CargarArchivo(context.Background(), ports.CargaArchivo{
		Archivo:       strings.NewReader(contenido),
		NombreArchivo: "propiedades.csv",
		Tamano:        int64(len(contenido)),
		Usuario:       "ana@sozu.com",
		NombreUsuario: "Ana Torres",
		Progreso: func(enviados, total int64) {
			llamadas++
			assert.LessOrEqual(t, int64(0), enviados)
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Exito)
	assert.Equal(t, "Archivo procesado", res.Mensaje)
	assert.Positive(t, llamadas, "el progreso debe reportarse mientras el transporte consume el cuerpo")
}

func TestCargarArchivo_RechazoDelWorkflow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success": false, "message": "columnas faltantes"}`))
	}))
	defer srv.Close()

	_, err := clienteContra(srv).CargarArchivo(context.Background(), ports.CargaArchivo{
		Archivo:       strings.NewReader("x"),
		NombreArchivo: "propiedades.csv",
	})

	var rechazo *domain.RechazoServidor
	require.ErrorAs(t, err, &rechazo)
	assert.Equal(t, http.StatusUnprocessableEntity, rechazo.Codigo)
	assert.Equal(t, "columnas faltantes", rechazo.Mensaje,
		"el mensaje se acepta bajo mensaje o message")
}

func TestCargarArchivo_Exito2xxSinExitoEnCuerpo(t *testing.T) {
	// Un 200 con success false no es error de transporte: se devuelve el
	// resultado para que la capa de arriba muestre el mensaje.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	res, err := clienteContra(srv).CargarArchivo(context.Background(), ports.CargaArchivo{
		Archivo:       strings.NewReader("x"),
		NombreArchivo: "propiedades.csv",
	})
	require.NoError(t, err)
	assert.False(t, res.Exito)
	assert.Contains(t, res.Mensaje, "Error 200")
}
