package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/application/session"
	"github.com/sozu-dev/backoffice-api/internal/application/usecase"
	"github.com/sozu-dev/backoffice-api/internal/infrastructure/n8n"
	infrapdf "github.com/sozu-dev/backoffice-api/internal/infrastructure/pdf"
	"github.com/sozu-dev/backoffice-api/internal/infrastructure/store"
	httpRouter "github.com/sozu-dev/backoffice-api/internal/interfaces/http"
	"github.com/sozu-dev/backoffice-api/pkg/config"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacén de sesión: archivo local o tabla clave/valor en PostgreSQL.
	var sessionStore ports.SessionStore
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := store.NewPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pg := store.NewPostgresStore(pool, log)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema del almacén de sesión")
		}
		sessionStore = pg
	default:
		fs, err := store.NewFileStore(afero.NewOsFs(), cfg.Store.Dir, log)
		if err != nil {
			log.Fatal().Err(err).Msg("almacén de sesión en disco")
		}
		sessionStore = fs
	}

	webhook := n8n.NewClient(cfg.Webhook, log)
	ctrl := session.NewController(sessionStore, webhook, cfg.Session.RefreshDelay, log)
	defer ctrl.Close()

	// Restaura la sesión persistida antes de aceptar tráfico.
	ctrl.Boot(ctx)

	crudUC := usecase.NewCrudUseCase(webhook, log)
	cargaUC := usecase.NewCargaUseCase(webhook, log)
	ofertaUC := usecase.NewOfertaUseCase(infrapdf.NewMarotoOfertaGenerator(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SOZU Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Controller: ctrl,
		CrudUC:     crudUC,
		CargaUC:    cargaUC,
		OfertaUC:   ofertaUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
