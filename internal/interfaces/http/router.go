package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sozu-dev/backoffice-api/internal/application/session"
	"github.com/sozu-dev/backoffice-api/internal/application/usecase"
	"github.com/sozu-dev/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Controller *session.Controller
	CrudUC     *usecase.CrudUseCase
	CargaUC    *usecase.CargaUseCase
	OfertaUC   *usecase.OfertaUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión (login es público; el resto opera sobre el estado del controlador)
	sesion := api.Group("/session")
	sessionHandler := NewSessionHandler(deps.Controller)
	sesion.Post("/login", sessionHandler.Login)
	sesion.Post("/logout", sessionHandler.Logout)
	sesion.Post("/refresh", sessionHandler.Refresh)
	sesion.Get("/", sessionHandler.Estado)
	sesion.Put("/seccion", sessionHandler.Navegar)
	sesion.Get("/submenus", sessionHandler.Submenus)
	sesion.Put("/submenus/:nombre", sessionHandler.SetSubmenu)

	// Rutas con sesión iniciada
	protegido := api.Group("/", RequireSesion(deps.Controller))

	// Navegación y permisos
	menusHandler := NewMenusHandler()
	protegido.Get("/menus", menusHandler.Menus)
	protegido.Get("/menus/:menu/submenus", menusHandler.Submenus)
	protegido.Get("/permisos", menusHandler.PorSeccion)
	protegido.Get("/permisos/check", menusHandler.Permiso)

	// Listas de solo lectura que viajan en el perfil
	listadosHandler := NewListadosHandler(deps.Controller)
	protegido.Get("/proyectos", listadosHandler.Proyectos)
	protegido.Get("/usuarios", listadosHandler.Usuarios)

	// Inventario aplanado y oferta
	propiedadesHandler := NewPropiedadesHandler(deps.OfertaUC)
	protegido.Get("/propiedades", propiedadesHandler.List)
	protegido.Get("/propiedades/:id", propiedadesHandler.GetByID)
	protegido.Get("/propiedades/:id/oferta", propiedadesHandler.Oferta)

	// Mutaciones CRUD, protegidas por permiso del perfil
	crudHandler := NewCrudHandler(deps.CrudUC)

	usuarios := protegido.Group("/usuarios")
	usuarios.Post("/", RequirePermiso(entity.PermisoAgregar), crudHandler.CreateUsuario)
	usuarios.Put("/:email", RequirePermiso(entity.PermisoActualizar), crudHandler.UpdateUsuario)
	usuarios.Delete("/:email", RequirePermiso(entity.PermisoEliminar), crudHandler.DeleteUsuario)

	proyectos := protegido.Group("/proyectos")
	proyectos.Post("/", RequirePermiso(entity.PermisoAgregar), crudHandler.CreateProyecto)
	proyectos.Put("/:id", RequirePermiso(entity.PermisoActualizar), crudHandler.UpdateProyecto)
	proyectos.Delete("/:id", RequirePermiso(entity.PermisoEliminar), crudHandler.DeleteProyecto)

	protegido.Post("/propiedades", RequirePermiso(entity.PermisoAgregar), crudHandler.CreatePropiedad)
	protegido.Put("/propiedades/:id", RequirePermiso(entity.PermisoActualizar), crudHandler.UpdatePropiedad)
	protegido.Delete("/propiedades/:id", RequirePermiso(entity.PermisoEliminar), crudHandler.DeletePropiedad)

	// Carga masiva (el permiso fino lo valida el caso de uso)
	cargaHandler := NewCargaHandler(deps.CargaUC)
	protegido.Post("/cargas/propiedades", cargaHandler.Cargar)
}
