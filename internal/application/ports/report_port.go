package ports

import (
	"context"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
)

// TestPlanPDFGenerator genera el reporte imprimible de un plan de pruebas.
type TestPlanPDFGenerator interface {
	GenerateTestPlanPDF(ctx context.Context, plan *entity.TestPlan, project *entity.Project) ([]byte, error)
}
