// seed carga datos de ejemplo (usuarios, proyectos y planes de pruebas) en el
// almacén configurado, pasando por los mismos casos de uso que la API.
//
// Uso: go run ./cmd/seed [ruta/fixtures.json]
// Por defecto busca fixtures.json en el directorio actual. Acepta archivos
// exportados en ISO-8859-1 (se convierten a UTF-8 antes de decodificar).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/usecase"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/document"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/drivers"
	infrapdf "github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestor-pruebas-api/pkg/config"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

type fixtures struct {
	Usuarios  []dto.CreateUserRequest `json:"usuarios"`
	Proyectos []proyectoFixture       `json:"proyectos"`
}

type proyectoFixture struct {
	dto.CreateProjectRequest
	Planes []planFixture `json:"planes"`
}

type planFixture struct {
	NombrePlan string            `json:"nombrePlan"`
	Escenarios []entity.Scenario `json:"escenarios"`
}

func main() {
	path := "fixtures.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer fixtures: %v\n", err)
		os.Exit(1)
	}
	fx, err := parseFixtures(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar fixtures: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx := context.Background()
	store, err := drivers.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén de documentos")
	}
	defer store.Close(ctx)

	identity, err := drivers.OpenIdentity(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de identidad")
	}

	projectRepo := document.NewProjectRepository(store)
	s := &seeder{
		users:    usecase.NewUserUseCase(document.NewUserRepository(store), identity, log),
		projects: usecase.NewProjectUseCase(projectRepo),
		plans:    usecase.NewTestPlanUseCase(document.NewTestPlanRepository(store), projectRepo, infrapdf.NewMarotoPDFGenerator(), log),
		log:      log,
	}
	res := s.run(ctx, fx)
	log.Info().
		Int("usuarios", res.users).
		Int("proyectos", res.projects).
		Int("planes", res.plans).
		Int("errores", res.errors).
		Msg("carga finalizada")
	if res.errors > 0 {
		os.Exit(1)
	}
}

// parseFixtures decodifica el JSON; si el archivo no es UTF-8 válido se asume ISO-8859-1.
func parseFixtures(raw []byte) (*fixtures, error) {
	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("convertir desde ISO-8859-1: %w", err)
		}
		raw = decoded
	}
	var fx fixtures
	if err := json.Unmarshal(raw, &fx); err != nil {
		return nil, err
	}
	return &fx, nil
}

type seeder struct {
	users    *usecase.UserUseCase
	projects *usecase.ProjectUseCase
	plans    *usecase.TestPlanUseCase
	log      *logger.Logger
}

type seedResult struct {
	users, projects, plans, errors int
}

// run crea todo lo que puede; un error en un elemento no detiene la carga.
func (s *seeder) run(ctx context.Context, fx *fixtures) seedResult {
	var res seedResult
	for _, u := range fx.Usuarios {
		if _, err := s.users.Create(ctx, u); err != nil {
			s.log.Error().Err(err).Str("email", u.Email).Msg("usuario")
			res.errors++
			continue
		}
		res.users++
	}
	for _, p := range fx.Proyectos {
		created, err := s.projects.Create(ctx, p.CreateProjectRequest)
		if err != nil {
			s.log.Error().Err(err).Str("proyecto", p.Nombre).Msg("proyecto")
			res.errors++
			continue
		}
		res.projects++
		for _, plan := range p.Planes {
			escenarios := plan.Escenarios
			if escenarios == nil {
				escenarios = []entity.Scenario{}
			}
			_, err := s.plans.Create(ctx, dto.CreateTestPlanRequest{
				ProyectoID: created.ID,
				NombrePlan: plan.NombrePlan,
				Escenarios: &escenarios,
			})
			if err != nil {
				s.log.Error().Err(err).Str("plan", plan.NombrePlan).Msg("plan de pruebas")
				res.errors++
				continue
			}
			res.plans++
		}
	}
	return res
}
