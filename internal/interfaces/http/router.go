package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/usecase"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

// Pinger verifica la conexión con el almacén.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC       *usecase.UserUseCase
	ProjectUC    *usecase.ProjectUseCase
	TestPlanUC   *usecase.TestPlanUseCase
	Store        Pinger
	Metrics      *Metrics
	Docs         fiber.Handler
	Log          *logger.Logger
	AllowOrigins string
	AppName      string
}

// Router registra middlewares, /health, /metrics, la documentación y las rutas de la API.
// Las rutas conservan el nombre de la función que atienden.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Use(CORS(deps.AllowOrigins))
	app.Use(requestid.New())
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Use(RequestLogger(log.Named("http")))
	if deps.Docs != nil {
		app.Use(deps.Docs)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Store != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Store.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health: almacén no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, log.Named("usuarios"))
	api.Post("/createUser", userHandler.Create)
	api.Post("/deactivateUser", userHandler.Deactivate)
	api.Post("/reactivateUser", userHandler.Reactivate)
	api.Post("/getUserInfo", userHandler.GetInfo)
	api.Get("/getAllUsers", userHandler.List)
	api.Post("/getAllUsers", userHandler.List)
	api.Post("/deleteUser", userHandler.Delete)
	api.Delete("/deleteUser", userHandler.Delete)
	api.Post("/editUser", userHandler.Edit)
	api.Put("/editUser", userHandler.Edit)

	// Proyectos
	projectHandler := NewProjectHandler(deps.ProjectUC, log.Named("proyectos"))
	api.Post("/createProject", projectHandler.Create)
	api.Post("/editProject", projectHandler.Edit)
	api.Put("/editProject", projectHandler.Edit)
	api.Get("/getProjects", projectHandler.List)
	api.Post("/getProjects", projectHandler.List)
	api.Post("/getProjectById", projectHandler.GetByID)

	// Planes de pruebas
	planHandler := NewTestPlanHandler(deps.TestPlanUC, log.Named("planes"))
	api.Post("/createTestPlan", planHandler.Create)
	api.Post("/addScenarioToTestPlan", planHandler.AddScenario)
	api.Post("/addTestCaseToScenario", planHandler.AddTestCase)
	api.Post("/getTestPlanById", planHandler.GetByID)
	api.Get("/getAllTestPlans", planHandler.List)
	api.Post("/getAllTestPlans", planHandler.List)
	api.Get("/getTestPlansByProjectId", planHandler.ListByProject)
	api.Post("/getTestPlansByProjectId", planHandler.ListByProject)
	api.Post("/exportTestPlanPDF", planHandler.ExportPDF)
}
