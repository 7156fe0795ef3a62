package session

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// PerfilNormalizado es el resultado canónico de la normalización: el perfil de
// sesión más, si el envoltorio la traía, la lista de todos los usuarios para
// las vistas de administración.
type PerfilNormalizado struct {
	Usuario          *entity.Usuario
	TodosLosUsuarios []entity.Usuario
}

// envoltorio cubre los campos que distinguen las formas históricas de
// respuesta del webhook. Se decodifica sobre el candidato (el valor completo o
// el primer elemento si vino como arreglo) y las reglas se prueban en orden.
type envoltorio struct {
	Usuario          json.RawMessage `json:"usuario"`
	TodosLosUsuarios json.RawMessage `json:"todos_los_usuarios"`
	ResultadoJSON    struct {
		Usuario json.RawMessage `json:"usuario"`
	} `json:"resultado_json"`
	Email string `json:"email"`
}

// Normalizar convierte cualquiera de las formas observadas de respuesta del
// backend en un perfil canónico. Reglas ordenadas, gana la primera:
//
//  1. arreglo cuyo primer elemento trae usuario (o cualquiera de las formas
//     de objeto siguientes, que el backend también ha envuelto en arreglos)
//  2. objeto con usuario
//  3. envoltorio legado resultado_json.usuario
//  4. objeto que es el perfil en sí (tiene email)
//
// Si ninguna regla aplica devuelve domain.ErrFormatoPerfilDesconocido y el
// llamador no debe tocar el estado de sesión ya persistido.
func Normalizar(raw json.RawMessage) (*PerfilNormalizado, error) {
	candidato := bytes.TrimSpace(raw)
	if len(candidato) == 0 {
		return nil, domain.ErrFormatoPerfilDesconocido
	}

	if candidato[0] == '[' {
		var elems []json.RawMessage
		if err := json.Unmarshal(candidato, &elems); err != nil || len(elems) == 0 {
			return nil, fmt.Errorf("arreglo de respuesta vacío o inválido: %w", domain.ErrFormatoPerfilDesconocido)
		}
		candidato = elems[0]
	}

	var env envoltorio
	if err := json.Unmarshal(candidato, &env); err != nil {
		return nil, fmt.Errorf("la respuesta no es un objeto JSON: %w", domain.ErrFormatoPerfilDesconocido)
	}

	switch {
	case presente(env.Usuario):
		return construir(env.Usuario, env.TodosLosUsuarios)
	case presente(env.ResultadoJSON.Usuario):
		return construir(env.ResultadoJSON.Usuario, nil)
	case env.Email != "":
		return construir(candidato, nil)
	default:
		return nil, domain.ErrFormatoPerfilDesconocido
	}
}

func construir(rawUsuario, rawTodos json.RawMessage) (*PerfilNormalizado, error) {
	var u entity.Usuario
	if err := json.Unmarshal(rawUsuario, &u); err != nil {
		return nil, fmt.Errorf("decodificar perfil: %w", domain.ErrFormatoPerfilDesconocido)
	}
	out := &PerfilNormalizado{Usuario: &u, TodosLosUsuarios: []entity.Usuario{}}
	if presente(rawTodos) {
		// La lista de administración es opcional; una lista malformada no
		// invalida el perfil principal.
		var todos []entity.Usuario
		if err := json.Unmarshal(rawTodos, &todos); err == nil && todos != nil {
			out.TodosLosUsuarios = todos
		}
	}
	return out, nil
}

// presente informa si un campo crudo trae un valor distinto de null.
func presente(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}
