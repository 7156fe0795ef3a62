// Package propiedades aplana el grafo anidado de disponibilidad
// (proyecto → edificio → modelo → propiedad) en la lista de unidades que
// consumen las vistas, y la enriquece con los atributos del modelo.
package propiedades

import (
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// Etiquetas centinela cuando el ancestro no trae nombre.
const (
	SinProyecto = "Sin Proyecto"
	SinEdificio = "Sin Edificio"
	SinModelo   = "Sin Modelo"
)

// Extraer recorre el grafo en profundidad y emite cada unidad como copia
// superficial con los nombres de sus ancestros superpuestos. Una colección
// hija ausente aporta cero elementos; las ramas hermanas bien formadas siguen
// emitiendo las suyas. El orden de salida es el orden de los arreglos del
// servidor, estable entre llamadas (requisito de paginación).
func Extraer(grafo []entity.ProyectoPropiedades) []entity.PropiedadBase {
	out := []entity.PropiedadBase{}
	for _, proyecto := range grafo {
		for _, edificio := range proyecto.Edificios {
			for _, modelo := range edificio.Modelos {
				for _, propiedad := range modelo.Propiedades {
					p := propiedad
					p.ProyectoNombre = oNombre(proyecto.ProyectoNombre, SinProyecto)
					p.EdificioNombre = oNombre(edificio.EdificioNombre, SinEdificio)
					p.ModeloNombre = oNombre(modelo.ModeloNombre, SinModelo)
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// Enriquecer superpone a cada unidad los atributos de su modelo: recámaras,
// baños completos y medios baños, con 0 por defecto si el modelo o el campo
// faltan. La búsqueda primaria es por modelo_id en todo el grafo (primera
// coincidencia, sin acotar al proyecto/edificio de la unidad); si produce puros
// ceros se intenta por modelo_nombre y se aplica solo si trae datos distintos
// de cero. El backend no siempre puebla los ids de modelo, de ahí el segundo
// intento.
func Enriquecer(unidades []entity.PropiedadBase, grafo []entity.ProyectoPropiedades) []entity.PropiedadCompleta {
	out := make([]entity.PropiedadCompleta, 0, len(unidades))
	for _, unidad := range unidades {
		c := entity.PropiedadCompleta{PropiedadBase: unidad}
		if m, ok := buscarModeloPorID(grafo, unidad.ModeloID); ok {
			c.Recamaras = m.Recamaras
			c.BanosCompletos = m.BanosCompletos
			c.MedioBanos = m.MedioBanos
		}
		if c.Recamaras == 0 && c.BanosCompletos == 0 && c.MedioBanos == 0 {
			if m, ok := buscarModeloPorNombre(grafo, unidad.ModeloNombre); ok {
				if m.Recamaras != 0 || m.BanosCompletos != 0 || m.MedioBanos != 0 {
					c.Recamaras = m.Recamaras
					c.BanosCompletos = m.BanosCompletos
					c.MedioBanos = m.MedioBanos
				}
			}
		}
		out = append(out, c)
	}
	return out
}

// Completas resuelve la lista de unidades de un perfil: aplana el grafo si trae
// datos, cae a la lista plana obsoleta si no, y enriquece el resultado.
func Completas(u *entity.Usuario) []entity.PropiedadCompleta {
	if u == nil {
		return []entity.PropiedadCompleta{}
	}
	unidades := Extraer(u.PropiedadesDisponibles)
	if len(unidades) == 0 && len(u.TodasLasPropiedades) > 0 {
		unidades = u.TodasLasPropiedades
	}
	return Enriquecer(unidades, u.PropiedadesDisponibles)
}

func buscarModeloPorID(grafo []entity.ProyectoPropiedades, id int) (entity.Modelo, bool) {
	for _, proyecto := range grafo {
		for _, edificio := range proyecto.Edificios {
			for _, modelo := range edificio.Modelos {
				if modelo.ModeloID == id {
					return modelo, true
				}
			}
		}
	}
	return entity.Modelo{}, false
}

func buscarModeloPorNombre(grafo []entity.ProyectoPropiedades, nombre string) (entity.Modelo, bool) {
	if nombre == "" {
		return entity.Modelo{}, false
	}
	for _, proyecto := range grafo {
		for _, edificio := range proyecto.Edificios {
			for _, modelo := range edificio.Modelos {
				if modelo.ModeloNombre == nombre {
					return modelo, true
				}
			}
		}
	}
	return entity.Modelo{}, false
}

func oNombre(nombre, centinela string) string {
	if nombre == "" {
		return centinela
	}
	return nombre
}
