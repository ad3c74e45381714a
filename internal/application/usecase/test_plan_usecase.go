package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/ports"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

const msgPlanIDRequerido = "El ID del plan de pruebas es requerido."

// TestPlanUseCase casos de uso de planes de prueba, escenarios y casos.
type TestPlanUseCase struct {
	plans    repository.TestPlanRepository
	projects repository.ProjectRepository
	pdf      ports.TestPlanPDFGenerator
	log      *logger.Logger
}

// NewTestPlanUseCase construye el caso de uso. projects y pdf solo se usan para el reporte.
func NewTestPlanUseCase(
	plans repository.TestPlanRepository,
	projects repository.ProjectRepository,
	pdf ports.TestPlanPDFGenerator,
	log *logger.Logger,
) *TestPlanUseCase {
	return &TestPlanUseCase{plans: plans, projects: projects, pdf: pdf, log: log.Named("planes")}
}

// Create crea un plan. No verifica que el proyecto exista.
// Los escenarios sin id reciben uno para poder anexarles casos después.
func (uc *TestPlanUseCase) Create(ctx context.Context, in dto.CreateTestPlanRequest) (*dto.CreatedPlan, error) {
	if in.ProyectoID == "" || in.NombrePlan == "" || in.Escenarios == nil {
		return nil, domain.NewValidationError("El ID del proyecto, el nombre del plan y los escenarios son requeridos.")
	}
	escenarios := append([]entity.Scenario{}, (*in.Escenarios)...)
	for i := range escenarios {
		escenarios[i].Normalize()
	}
	id, err := uc.plans.Create(ctx, &entity.TestPlan{
		ProyectoID: in.ProyectoID,
		NombrePlan: in.NombrePlan,
		Escenarios: escenarios,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreatedPlan{PlanID: id}, nil
}

// AddScenario anexa un escenario con id nuevo. ErrNotFound si el plan no existe.
func (uc *TestPlanUseCase) AddScenario(ctx context.Context, in dto.AddScenarioRequest) (*dto.AppendedItem, error) {
	if in.PlanID == "" || in.Escenario == nil || in.Escenario.Nombre == "" || in.Escenario.Descripcion == "" {
		return nil, domain.NewValidationError("El ID del plan, el nombre y la descripción del escenario son requeridos.")
	}
	scenario := *in.Escenario
	scenario.Extra = cloneExtra(scenario.Extra)
	scenario.AssignID()
	scenario.Normalize()
	if err := uc.plans.AppendScenario(ctx, in.PlanID, scenario); err != nil {
		return nil, err
	}
	return &dto.AppendedItem{ID: scenario.ID}, nil
}

// AddTestCase anexa un caso al escenario indicado. Si el escenario no existe
// el plan no cambia y se devuelve (nil, nil).
func (uc *TestPlanUseCase) AddTestCase(ctx context.Context, in dto.AddTestCaseRequest) (*dto.AppendedItem, error) {
	if in.PlanID == "" || in.EscenarioID == "" || in.CasoPrueba == nil || in.CasoPrueba.Nombre == "" || in.CasoPrueba.Descripcion == "" {
		return nil, domain.NewValidationError("El ID del plan, el ID del escenario, el nombre y la descripción del caso de prueba son requeridos.")
	}
	plan, err := uc.plans.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	tc := *in.CasoPrueba
	tc.Extra = cloneExtra(tc.Extra)
	tc.AssignID()
	tc.Normalize()
	matched, err := uc.plans.AppendTestCase(ctx, in.PlanID, in.EscenarioID, tc)
	if err != nil {
		return nil, err
	}
	if !matched {
		uc.log.Warn().Str("planId", in.PlanID).Str("escenarioId", in.EscenarioID).
			Msg("escenario no encontrado en el plan; caso de prueba descartado")
		return nil, nil
	}
	return &dto.AppendedItem{ID: tc.ID}, nil
}

// GetByID obtiene un plan por id.
func (uc *TestPlanUseCase) GetByID(ctx context.Context, id string) (*dto.TestPlanResponse, error) {
	plan, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTestPlanResponse(plan), nil
}

// List devuelve todos los planes. ErrNotFound si no hay ninguno.
func (uc *TestPlanUseCase) List(ctx context.Context) ([]dto.TestPlanResponse, error) {
	list, err := uc.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	return toTestPlanList(list)
}

// ListByProject devuelve los planes cuyo proyectoId coincide.
func (uc *TestPlanUseCase) ListByProject(ctx context.Context, proyectoID string) ([]dto.TestPlanResponse, error) {
	if proyectoID == "" {
		return nil, domain.NewValidationError("El ID del proyecto es requerido.")
	}
	list, err := uc.plans.ListByProject(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return toTestPlanList(list)
}

// ExportPDF genera el reporte del plan. El proyecto es opcional: si no existe
// el reporte se genera sin sus datos.
func (uc *TestPlanUseCase) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	plan, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByID(ctx, plan.ProyectoID)
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.GenerateTestPlanPDF(ctx, plan, project)
	if err != nil {
		return nil, fmt.Errorf("reporte del plan %s: %w", id, err)
	}
	return doc, nil
}

func (uc *TestPlanUseCase) get(ctx context.Context, id string) (*entity.TestPlan, error) {
	if id == "" {
		return nil, domain.NewValidationError(msgPlanIDRequerido)
	}
	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func toTestPlanList(list []*entity.TestPlan) ([]dto.TestPlanResponse, error) {
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	items := make([]dto.TestPlanResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toTestPlanResponse(p))
	}
	return items, nil
}

func toTestPlanResponse(p *entity.TestPlan) *dto.TestPlanResponse {
	escenarios := p.Escenarios
	if escenarios == nil {
		escenarios = []entity.Scenario{}
	}
	return &dto.TestPlanResponse{
		ID:         p.ID,
		ProyectoID: p.ProyectoID,
		NombrePlan: p.NombrePlan,
		Escenarios: escenarios,
		CreatedAt:  p.CreatedAt,
	}
}

func cloneExtra(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
