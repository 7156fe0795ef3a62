package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProyectoPropiedades es la raíz del grafo anidado de disponibilidad:
// proyecto → edificios → modelos → propiedades. Cualquier nivel puede venir
// ausente o vacío; la ausencia cuenta como "cero hijos", nunca como error.
type ProyectoPropiedades struct {
	ProyectoID     int        `json:"proyecto_id"`
	ProyectoNombre string     `json:"proyecto_nombre"`
	Edificios      []Edificio `json:"edificios"`
}

func (p *ProyectoPropiedades) UnmarshalJSON(data []byte) error {
	type alias ProyectoPropiedades
	aux := struct {
		*alias
		Edificios json.RawMessage `json:"edificios"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Edificios = listaTolerante[Edificio](aux.Edificios)
	return nil
}

// Edificio es un nivel intermedio del grafo.
type Edificio struct {
	EdificioID     int      `json:"edificio_id"`
	EdificioNombre string   `json:"edificio_nombre"`
	EdificioPisos  string   `json:"edificio_pisos"`
	Modelos        []Modelo `json:"modelos"`
}

func (e *Edificio) UnmarshalJSON(data []byte) error {
	type alias Edificio
	aux := struct {
		*alias
		Modelos json.RawMessage `json:"modelos"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Modelos = listaTolerante[Modelo](aux.Modelos)
	return nil
}

// Modelo describe un tipo de unidad dentro de un edificio: atributos heredables
// (recámaras, baños) más la lista de unidades concretas.
type Modelo struct {
	ModeloID        int             `json:"modelo_id"`
	ModeloNombre    string          `json:"modelo_nombre"`
	Descripcion     string          `json:"descripcion"`
	Recamaras       int             `json:"recamaras"`
	BanosCompletos  int             `json:"banos_completos"`
	MedioBanos      int             `json:"medio_banos"`
	Caracteristicas []string        `json:"caracteristicas"`
	Multimedias     []Multimedia    `json:"multimedias"`
	Propiedades     []PropiedadBase `json:"propiedades"`
}

func (m *Modelo) UnmarshalJSON(data []byte) error {
	type alias Modelo
	aux := struct {
		*alias
		Caracteristicas json.RawMessage `json:"caracteristicas"`
		Multimedias     json.RawMessage `json:"multimedias"`
		Propiedades     json.RawMessage `json:"propiedades"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Caracteristicas = listaTolerante[string](aux.Caracteristicas)
	m.Multimedias = listaTolerante[Multimedia](aux.Multimedias)
	m.Propiedades = listaTolerante[PropiedadBase](aux.Propiedades)
	return nil
}

// Multimedia es un recurso asociado a un modelo (imagen o video).
type Multimedia struct {
	EsImagen bool   `json:"es_imagen"`
	URL      string `json:"url"`
}

// PropiedadBase es una unidad tal como viene en el grafo, sin enriquecer.
type PropiedadBase struct {
	PropiedadID     int             `json:"propiedad_id"`
	NumeroPropiedad string          `json:"numero_propiedad"`
	PrecioLista     decimal.Decimal `json:"precio_lista"`
	M2Reales        decimal.Decimal `json:"m2_reales"`
	Activo          bool            `json:"activo"`
	ModeloID        int             `json:"modelo_id"`
	ModeloNombre    string          `json:"modelo_nombre"`
	ProyectoID      int             `json:"proyecto_id"`
	ProyectoNombre  string          `json:"proyecto_nombre"`
	EdificioID      int             `json:"edificio_id"`
	EdificioNombre  string          `json:"edificio_nombre"`
	EdificioPisos   string          `json:"edificio_pisos,omitempty"`
}

// PropiedadCompleta es una unidad aplanada y enriquecida con los nombres de sus
// ancestros y los atributos del modelo. Es efímera: se recalcula en cada
// lectura y nunca se persiste.
type PropiedadCompleta struct {
	PropiedadBase
	Recamaras      int `json:"recamaras"`
	BanosCompletos int `json:"banos_completos"`
	MedioBanos     int `json:"medio_banos"`
}
