// @title        Gestor de Pruebas API
// @version      1.0
// @description  API para administrar usuarios, proyectos y planes de pruebas.
// @BasePath     /
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

	_ "github.com/jhoicas/gestor-pruebas-api/docs"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/usecase"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/document"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/drivers"
	infrapdf "github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/gestor-pruebas-api/internal/interfaces/http"
	"github.com/jhoicas/gestor-pruebas-api/pkg/config"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("docstore", cfg.Store.Driver).
		Str("identity", cfg.Identity.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := drivers.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén de documentos")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	identity, err := drivers.OpenIdentity(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de identidad")
	}

	userRepo := document.NewUserRepository(store)
	projectRepo := document.NewProjectRepository(store)
	planRepo := document.NewTestPlanRepository(store)

	userUC := usecase.NewUserUseCase(userRepo, identity, log)
	projectUC := usecase.NewProjectUseCase(projectRepo)
	// PDF: reporte de un plan de pruebas con los datos de su proyecto
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	planUC := usecase.NewTestPlanUseCase(planRepo, projectRepo, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	var docsHandler fiber.Handler
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		docsHandler = swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Gestor de Pruebas API",
		})
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:       userUC,
		ProjectUC:    projectUC,
		TestPlanUC:   planUC,
		Store:        store,
		Metrics:      httpRouter.NewMetrics("gestor_pruebas"),
		Docs:         docsHandler,
		Log:          log,
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AppName:      cfg.App.Name,
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
