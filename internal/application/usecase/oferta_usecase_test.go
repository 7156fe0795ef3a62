package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozu-dev/backoffice-api/internal/application/usecase"
	"github.com/sozu-dev/backoffice-api/internal/domain"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// pdfStub devuelve bytes fijos y recuerda con qué unidad se le llamó.
type pdfStub struct {
	unidad   *entity.PropiedadCompleta
	proyecto *entity.Proyecto
}

func (p *pdfStub) GenerarOfertaPDF(_ context.Context, unidad entity.PropiedadCompleta, proyecto *entity.Proyecto) ([]byte, error) {
	p.unidad = &unidad
	p.proyecto = proyecto
	return []byte("%PDF-stub"), nil
}

func perfilConOferta() *entity.Usuario {
	return &entity.Usuario{
		Email: "ana@sozu.com",
		Rol: entity.Rol{
			Activo: true,
			Menus: []entity.Menu{
				{
					Nombre: "Propiedades",
					Activo: true,
					Submenus: []entity.Submenu{
						{
							Nombre: "Unidades",
							Activo: true,
							Permisos: []entity.Permiso{
								{Nombre: entity.PermisoGenerarOferta, Activo: true},
							},
						},
					},
				},
			},
		},
		ProyectosAcceso: []entity.Proyecto{
			{ProyectoID: 1, Nombre: "Torre Norte", Direccion: "Av. Central 100"},
		},
		PropiedadesDisponibles: []entity.ProyectoPropiedades{
			{
				ProyectoID:     1,
				ProyectoNombre: "Torre Norte",
				Edificios: []entity.Edificio{
					{
						EdificioNombre: "A",
						Modelos: []entity.Modelo{
							{
								ModeloID:     100,
								ModeloNombre: "Loft",
								Recamaras:    2,
								Propiedades: []entity.PropiedadBase{
									{PropiedadID: 1000, NumeroPropiedad: "A-101", ModeloID: 100, ProyectoID: 1},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestGenerarOferta_ResuelveUnidadYProyecto(t *testing.T) {
	pdf := &pdfStub{}
	uc := usecase.NewOfertaUseCase(pdf, logger.Nop())

	datos, nombre, err := uc.Generar(context.Background(), perfilConOferta(), 1000)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), datos)
	assert.Equal(t, "oferta_A-101.pdf", nombre)

	require.NotNil(t, pdf.unidad)
	assert.Equal(t, 2, pdf.unidad.Recamaras, "la unidad llega ya enriquecida con el modelo")
	require.NotNil(t, pdf.proyecto)
	assert.Equal(t, "Torre Norte", pdf.proyecto.Nombre)
}

func TestGenerarOferta_SinPermiso(t *testing.T) {
	u := perfilConOferta()
	u.Rol.Menus[0].Submenus[0].Permisos[0].Activo = false

	uc := usecase.NewOfertaUseCase(&pdfStub{}, logger.Nop())
	_, _, err := uc.Generar(context.Background(), u, 1000)
	assert.ErrorIs(t, err, domain.ErrPermisoDenegado)
}

func TestGenerarOferta_SinSesion(t *testing.T) {
	uc := usecase.NewOfertaUseCase(&pdfStub{}, logger.Nop())
	_, _, err := uc.Generar(context.Background(), nil, 1000)
	assert.ErrorIs(t, err, domain.ErrSinSesion)
}

func TestGenerarOferta_UnidadInexistente(t *testing.T) {
	uc := usecase.NewOfertaUseCase(&pdfStub{}, logger.Nop())
	_, _, err := uc.Generar(context.Background(), perfilConOferta(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
