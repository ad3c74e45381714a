package repository

import (
	"context"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para proyectos.
type ProjectRepository interface {
	// Create persiste el proyecto con createdAt del almacén y devuelve el id asignado.
	Create(ctx context.Context, project *entity.Project) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	// Update aplica el parche y marca updatedAt.
	Update(ctx context.Context, id string, patch entity.ProjectPatch) error
}
