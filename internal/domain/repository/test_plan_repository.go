package repository

import (
	"context"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
)

// TestPlanRepository define el puerto de persistencia para planes de prueba.
type TestPlanRepository interface {
	Create(ctx context.Context, plan *entity.TestPlan) (string, error)
	GetByID(ctx context.Context, id string) (*entity.TestPlan, error)
	List(ctx context.Context) ([]*entity.TestPlan, error)
	ListByProject(ctx context.Context, proyectoID string) ([]*entity.TestPlan, error)
	// AppendScenario agrega el escenario de forma atómica; ErrNotFound si el plan no existe.
	AppendScenario(ctx context.Context, planID string, scenario entity.Scenario) error
	// AppendTestCase agrega el caso al escenario de forma atómica.
	// Devuelve false si el plan existe pero ningún escenario tiene ese id.
	AppendTestCase(ctx context.Context, planID, scenarioID string, tc entity.TestCase) (bool, error)
}
