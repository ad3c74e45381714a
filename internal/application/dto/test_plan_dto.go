package dto

import (
	"time"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
)

// CreateTestPlanRequest entrada para crear un plan. Escenarios es obligatorio
// (puede ser un arreglo vacío), por eso es puntero.
type CreateTestPlanRequest struct {
	ProyectoID string             `json:"proyectoId"`
	NombrePlan string             `json:"nombrePlan"`
	Escenarios *[]entity.Scenario `json:"escenarios"`
}

// AddScenarioRequest entrada de addScenarioToTestPlan. El id del escenario lo
// asigna el servidor; el resto de claves se guarda tal cual.
type AddScenarioRequest struct {
	PlanID    string           `json:"planId"`
	Escenario *entity.Scenario `json:"escenario"`
}

// AddTestCaseRequest entrada de addTestCaseToScenario.
type AddTestCaseRequest struct {
	PlanID      string           `json:"planId"`
	EscenarioID string           `json:"escenarioId"`
	CasoPrueba  *entity.TestCase `json:"casoPrueba"`
}

// CreatedPlan datos devueltos al crear un plan.
type CreatedPlan struct {
	PlanID string `json:"planId"`
}

// AppendedItem id asignado a un escenario o caso anexado.
type AppendedItem struct {
	ID string `json:"id"`
}

// TestPlanResponse salida de un plan con sus escenarios.
type TestPlanResponse struct {
	ID         string            `json:"id"`
	ProyectoID string            `json:"proyectoId"`
	NombrePlan string            `json:"nombrePlan"`
	Escenarios []entity.Scenario `json:"escenarios"`
	CreatedAt  *time.Time        `json:"createdAt,omitempty"`
}
