package session_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozu-dev/backoffice-api/internal/application/session"
	"github.com/sozu-dev/backoffice-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// El backend ha respondido al login con cuatro formas distintas a lo largo del
// tiempo: arreglo, objeto con usuario, envoltorio legado resultado_json y el
// perfil a secas. El normalizador debe aceptar las cuatro y producir siempre
// el mismo perfil canónico.
// ──────────────────────────────────────────────────────────────────────────────

const perfilBase = `{
	"email": "ana@sozu.com",
	"nombre": "Ana Torres",
	"rol": {
		"id": 2,
		"nombre": "Ventas",
		"activo": true,
		"menus": [
			{"id": 1, "nombre": "Dashboard", "activo": true, "submenus": []}
		]
	}
}`

func TestNormalizar_ObjetoConUsuario(t *testing.T) {
	raw := json.RawMessage(`{"usuario": ` + perfilBase + `}`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	require.NotNil(t, p.Usuario)
	assert.Equal(t, "ana@sozu.com", p.Usuario.Email)
	assert.Equal(t, "Ana Torres", p.Usuario.Nombre)
	assert.NotNil(t, p.TodosLosUsuarios, "la lista de administración siempre viene inicializada")
}

func TestNormalizar_ArregloConUsuario(t *testing.T) {
	raw := json.RawMessage(`[{"usuario": ` + perfilBase + `}]`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	assert.Equal(t, "ana@sozu.com", p.Usuario.Email)
}

func TestNormalizar_ArregloConEnvoltorioLegado(t *testing.T) {
	// El backend también ha envuelto la forma legada en arreglos.
	raw := json.RawMessage(`[{"resultado_json": {"usuario": ` + perfilBase + `}}]`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	assert.Equal(t, "ana@sozu.com", p.Usuario.Email)
}

func TestNormalizar_EnvoltorioLegadoResultadoJSON(t *testing.T) {
	raw := json.RawMessage(`{"resultado_json": {"usuario": ` + perfilBase + `}}`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", p.Usuario.Nombre)
}

func TestNormalizar_PerfilASecas(t *testing.T) {
	raw := json.RawMessage(perfilBase)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	assert.Equal(t, "ana@sozu.com", p.Usuario.Email)
}

func TestNormalizar_UsuarioGanaSobreLegado(t *testing.T) {
	// Si el envoltorio trae ambas formas, gana la regla de mayor prioridad.
	raw := json.RawMessage(`{
		"usuario": {"email": "gana@sozu.com", "nombre": "Gana"},
		"resultado_json": {"usuario": {"email": "pierde@sozu.com"}}
	}`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	assert.Equal(t, "gana@sozu.com", p.Usuario.Email)
}

func TestNormalizar_TodosLosUsuarios(t *testing.T) {
	raw := json.RawMessage(`{
		"usuario": ` + perfilBase + `,
		"todos_los_usuarios": [
			{"email": "uno@sozu.com", "nombre": "Uno"},
			{"email": "dos@sozu.com", "nombre": "Dos"}
		]
	}`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	require.Len(t, p.TodosLosUsuarios, 2)
	assert.Equal(t, "uno@sozu.com", p.TodosLosUsuarios[0].Email)
}

func TestNormalizar_ListaAdminMalformadaNoInvalidaPerfil(t *testing.T) {
	raw := json.RawMessage(`{
		"usuario": ` + perfilBase + `,
		"todos_los_usuarios": "esto no es un arreglo"
	}`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err, "una lista de administración malformada no debe invalidar el perfil")
	assert.Empty(t, p.TodosLosUsuarios)
}

func TestNormalizar_ColeccionesAusentesQuedanVacias(t *testing.T) {
	// Sin rol, sin menús, sin proyectos: el perfil sigue siendo válido y las
	// colecciones quedan vacías, nunca nil.
	raw := json.RawMessage(`{"usuario": {"email": "min@sozu.com"}}`)

	p, err := session.Normalizar(raw)
	require.NoError(t, err)
	assert.NotNil(t, p.Usuario.ProyectosAcceso)
	assert.NotNil(t, p.Usuario.PropiedadesDisponibles)
	assert.NotNil(t, p.Usuario.TodasLasPropiedades)
}

func TestNormalizar_Idempotente(t *testing.T) {
	raw := json.RawMessage(`{"usuario": ` + perfilBase + `}`)

	p1, err := session.Normalizar(raw)
	require.NoError(t, err)

	// Re-normalizar el perfil ya canónico (forma 4: perfil a secas).
	reserializado, err := json.Marshal(p1.Usuario)
	require.NoError(t, err)
	p2, err := session.Normalizar(reserializado)
	require.NoError(t, err)

	assert.Equal(t, p1.Usuario.Email, p2.Usuario.Email)
	assert.Equal(t, p1.Usuario.Rol, p2.Usuario.Rol)
}

func TestNormalizar_FormatoDesconocido(t *testing.T) {
	casos := []struct {
		nombre string
		raw    string
	}{
		{"objeto sin marcadores", `{"algo": 1}`},
		{"arreglo vacío", `[]`},
		{"cuerpo vacío", ``},
		{"null", `null`},
		{"escalar", `42`},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := session.Normalizar(json.RawMessage(c.raw))
			assert.ErrorIs(t, err, domain.ErrFormatoPerfilDesconocido)
		})
	}
}
