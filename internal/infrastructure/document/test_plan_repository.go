package document

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

var _ repository.TestPlanRepository = (*TestPlanRepo)(nil)

// TestPlanRepo planes de prueba en la colección "planesPruebas", con escenarios
// y casos embebidos.
type TestPlanRepo struct {
	col repository.Collection
}

// NewTestPlanRepository construye el repositorio sobre el almacén de documentos.
func NewTestPlanRepository(store repository.DocumentStore) *TestPlanRepo {
	return &TestPlanRepo{col: store.Collection(repository.CollectionTestPlans)}
}

// Create inserta el plan con createdAt del almacén.
func (r *TestPlanRepo) Create(ctx context.Context, plan *entity.TestPlan) (string, error) {
	data := plan.Fields()
	data["createdAt"] = repository.ServerTimestamp
	id, err := r.col.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("crear plan de pruebas: %w", err)
	}
	return id, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *TestPlanRepo) GetByID(ctx context.Context, id string) (*entity.TestPlan, error) {
	doc, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer plan de pruebas: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return toTestPlan(doc)
}

// List devuelve todos los planes.
func (r *TestPlanRepo) List(ctx context.Context) ([]*entity.TestPlan, error) {
	docs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar planes de pruebas: %w", err)
	}
	return toTestPlans(docs)
}

// ListByProject filtra por igualdad de proyectoId.
func (r *TestPlanRepo) ListByProject(ctx context.Context, proyectoID string) ([]*entity.TestPlan, error) {
	docs, err := r.col.Query(ctx, "proyectoId", proyectoID)
	if err != nil {
		return nil, fmt.Errorf("listar planes del proyecto: %w", err)
	}
	return toTestPlans(docs)
}

// AppendScenario agrega el escenario al final de escenarios.
func (r *TestPlanRepo) AppendScenario(ctx context.Context, planID string, scenario entity.Scenario) error {
	if err := r.col.ArrayAppend(ctx, planID, "escenarios", scenario.Fields()); err != nil {
		return fmt.Errorf("agregar escenario: %w", err)
	}
	return nil
}

// AppendTestCase agrega el caso a escenarios[i].casosPrueba donde escenarios[i].id == scenarioID.
func (r *TestPlanRepo) AppendTestCase(ctx context.Context, planID, scenarioID string, tc entity.TestCase) (bool, error) {
	matched, err := r.col.AppendNested(ctx, planID, repository.NestedTarget{
		ArrayField:  "escenarios",
		MatchKey:    "id",
		MatchValue:  scenarioID,
		NestedField: "casosPrueba",
	}, tc.Fields())
	if err != nil {
		return false, fmt.Errorf("agregar caso de prueba: %w", err)
	}
	return matched, nil
}

func toTestPlans(docs []repository.Document) ([]*entity.TestPlan, error) {
	out := make([]*entity.TestPlan, 0, len(docs))
	for i := range docs {
		p, err := toTestPlan(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toTestPlan(doc *repository.Document) (*entity.TestPlan, error) {
	var p entity.TestPlan
	if err := decode(doc, &p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	if p.Escenarios == nil {
		p.Escenarios = []entity.Scenario{}
	}
	for i := range p.Escenarios {
		if p.Escenarios[i].CasosPrueba == nil {
			p.Escenarios[i].CasosPrueba = []entity.TestCase{}
		}
	}
	return &p, nil
}
