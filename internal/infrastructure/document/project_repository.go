package document

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo proyectos en la colección "proyectos".
type ProjectRepo struct {
	col repository.Collection
}

// NewProjectRepository construye el repositorio sobre el almacén de documentos.
func NewProjectRepository(store repository.DocumentStore) *ProjectRepo {
	return &ProjectRepo{col: store.Collection(repository.CollectionProjects)}
}

// Create inserta el proyecto con createdAt del almacén.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) (string, error) {
	data := p.Fields()
	data["createdAt"] = repository.ServerTimestamp
	id, err := r.col.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("crear proyecto: %w", err)
	}
	return id, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer proyecto: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return toProject(doc)
}

// List devuelve todos los proyectos.
func (r *ProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	docs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar proyectos: %w", err)
	}
	out := make([]*entity.Project, 0, len(docs))
	for i := range docs {
		p, err := toProject(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Update aplica el parche y marca updatedAt, incluso con parche vacío.
func (r *ProjectRepo) Update(ctx context.Context, id string, patch entity.ProjectPatch) error {
	fields := patch.Fields()
	fields["updatedAt"] = repository.ServerTimestamp
	if err := r.col.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("actualizar proyecto: %w", err)
	}
	return nil
}

func toProject(doc *repository.Document) (*entity.Project, error) {
	var p entity.Project
	if err := decode(doc, &p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	return &p, nil
}
