// Package permisos resuelve el grafo de autorización del perfil de sesión:
// qué menús y submenús son visibles y qué acciones puede ejecutar el usuario.
//
// Todas las funciones son puras y sin asignaciones intermedias de "conjuntos
// efectivos": la cascada de banderas activo se evalúa como consulta de
// existencia anidada con corto circuito.
package permisos

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// HasPermission informa si el perfil puede ejecutar la acción nombrada.
// La consulta es disyuntiva sobre todo el rol: basta un menú activo con un
// submenú activo que contenga el permiso activo, sin importar qué sección esté
// seleccionada. Un perfil nil (sin sesión) siempre devuelve false.
//
// El resultado es solo una compuerta de UI; la autorización real la aplica el
// servicio remoto.
func HasPermission(u *entity.Usuario, nombre string) bool {
	if u == nil {
		return false
	}
	for _, menu := range u.Rol.Menus {
		if !menu.Activo {
			continue
		}
		for _, sub := range menu.Submenus {
			if !sub.Activo {
				continue
			}
			for _, p := range sub.Permisos {
				if p.Activo && p.Nombre == nombre {
					return true
				}
			}
		}
	}
	return false
}

// VisibleMenus devuelve los menús activos en el orden que los entregó el
// servidor: el orden es orden de presentación, no se ordena.
func VisibleMenus(u *entity.Usuario) []entity.Menu {
	if u == nil {
		return []entity.Menu{}
	}
	out := []entity.Menu{}
	for _, menu := range u.Rol.Menus {
		if menu.Activo {
			out = append(out, menu)
		}
	}
	return out
}

// VisibleSubmenus devuelve los submenús activos de un menú, en orden del servidor.
func VisibleSubmenus(menu entity.Menu) []entity.Submenu {
	out := []entity.Submenu{}
	for _, sub := range menu.Submenus {
		if sub.Activo {
			out = append(out, sub)
		}
	}
	return out
}

// PorSeccion devuelve, para la sección indicada, el mapa submenú → nombres de
// permiso activos. El nombre del menú se usa como clave de sección de texto
// libre, así que una sección sin menú que la respalde (p. ej. "Reportes" aún
// sin filas de permiso) produce un mapa vacío, nunca un error: la capa de
// presentación cae a una vista genérica de solo lectura.
func PorSeccion(u *entity.Usuario, seccion string) map[string][]string {
	out := map[string][]string{}
	if u == nil {
		return out
	}
	clave := ClaveSeccion(seccion)
	for _, menu := range u.Rol.Menus {
		if !menu.Activo || ClaveSeccion(menu.Nombre) != clave {
			continue
		}
		for _, sub := range menu.Submenus {
			if !sub.Activo {
				continue
			}
			out[sub.Nombre] = nombresActivos(sub.Permisos)
		}
	}
	return out
}

// ClaveSeccion normaliza un nombre de menú para compararlo como clave de
// sección: sin acentos, sin mayúsculas, sin espacios alrededor. Así "Gestión"
// y "gestion" refieren a la misma sección.
func ClaveSeccion(nombre string) string {
	s, _, err := transform.String(quitaAcentos, nombre)
	if err != nil {
		s = nombre
	}
	return strings.ToLower(strings.TrimSpace(s))
}

var quitaAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// nombresActivos extrae los nombres de permiso activos, deduplicados y en
// orden de primera aparición (el backend a veces repite filas).
func nombresActivos(permisos []entity.Permiso) []string {
	vistos := map[string]struct{}{}
	out := []string{}
	for _, p := range permisos {
		if !p.Activo {
			continue
		}
		if _, ok := vistos[p.Nombre]; ok {
			continue
		}
		vistos[p.Nombre] = struct{}{}
		out = append(out, p.Nombre)
	}
	return out
}
