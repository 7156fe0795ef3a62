// Package pdf implementa la hoja de oferta de una unidad en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + logo textual  │  N° de unidad + fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UBICACIÓN: proyecto / edificio / modelo                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: atributo | valor (recámaras, baños, m²)             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRECIO DE LISTA                                            │
//	│  FOOTER: leyenda de validez de la oferta                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 148, Blue: 136} // teal de la marca
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Asegura que MarotoOfertaGenerator implementa el puerto.
var _ ports.OfertaPDFGenerator = (*MarotoOfertaGenerator)(nil)

// MarotoOfertaGenerator implementa ports.OfertaPDFGenerator usando Maroto v2.
type MarotoOfertaGenerator struct{}

// NewMarotoOfertaGenerator construye el generador.
func NewMarotoOfertaGenerator() *MarotoOfertaGenerator { return &MarotoOfertaGenerator{} }

// GenerarOfertaPDF genera el PDF de oferta y devuelve sus bytes.
func (g *MarotoOfertaGenerator) GenerarOfertaPDF(
	_ context.Context,
	propiedad entity.PropiedadCompleta,
	proyecto *entity.Proyecto,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Oferta SOZU", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(propiedad))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(ubicacionRow(propiedad, proyecto))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(atributosHeaderRow())
	for _, r := range atributosRows(propiedad) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(precioRow(propiedad))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca (izq) y número de unidad + fecha de emisión (der).
func headerRow(p entity.PropiedadCompleta) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("SOZU", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(p.ProyectoNombre, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("OFERTA DE UNIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Unidad "+p.NumeroPropiedad, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// ubicacionRow: proyecto / edificio / modelo y dirección si el perfil la trae.
func ubicacionRow(p entity.PropiedadCompleta, proyecto *entity.Proyecto) core.Row {
	direccion := "—"
	if proyecto != nil && proyecto.Direccion != "" {
		direccion = proyecto.Direccion
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("UBICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Edificio: %s   |   Modelo: %s   |   Dirección: %s",
				p.ProyectoNombre, p.EdificioNombre, p.ModeloNombre, direccion,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func atributosHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New("Atributo", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(6).Add(text.New("Valor", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func atributosRows(p entity.PropiedadCompleta) []core.Row {
	filas := []struct {
		nombre string
		valor  string
	}{
		{"Recámaras", fmt.Sprintf("%d", p.Recamaras)},
		{"Baños completos", fmt.Sprintf("%d", p.BanosCompletos)},
		{"Medios baños", fmt.Sprintf("%d", p.MedioBanos)},
		{"Superficie (m² reales)", p.M2Reales.StringFixed(2)},
	}
	out := make([]core.Row, 0, len(filas))
	for _, f := range filas {
		out = append(out, row.New(6).Add(
			col.New(6).Add(text.New(f.nombre, props.Text{Size: 8})),
			col.New(6).Add(text.New(f.valor, props.Text{Size: 8, Align: align.Right})),
		))
	}
	return out
}

func precioRow(p entity.PropiedadCompleta) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("PRECIO DE LISTA", props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
		col.New(6).Add(text.New("$ "+p.PrecioLista.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Oferta informativa sujeta a disponibilidad; los precios pueden cambiar sin previo aviso.",
				props.Text{Size: 7, Color: colorGray, Top: 2}),
		),
	)
}
