package usecase

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

const (
	msgEstadoProyectoInvalido = "El estado del proyecto no es válido."
	msgHitosInvalidos         = "Hitos debe ser un arreglo válido."
)

// ProjectUseCase casos de uso de proyectos.
type ProjectUseCase struct {
	repo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso con el puerto de persistencia.
func NewProjectUseCase(repo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

// Create valida y crea un proyecto. Equipo e hitos son listas vacías si no llegan.
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.CreateProjectRequest) (*dto.CreatedID, error) {
	if in.Nombre == "" || in.Descripcion == "" || in.FechaInicio == "" || in.FechaFin == "" || in.Estado == "" || in.Encargado == "" {
		return nil, domain.NewValidationError("Todos los campos obligatorios deben ser enviados.")
	}
	if !entity.ValidProjectStatus(in.Estado) {
		return nil, domain.NewValidationError(msgEstadoProyectoInvalido)
	}
	hitos, _, err := parseHitos(in.Hitos)
	if err != nil {
		return nil, err
	}
	equipo := in.Equipo
	if equipo == nil {
		equipo = []string{}
	}
	if hitos == nil {
		hitos = []any{}
	}
	id, err := uc.repo.Create(ctx, &entity.Project{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
		Estado:      in.Estado,
		Encargado:   in.Encargado,
		Equipo:      equipo,
		Hitos:       hitos,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreatedID{ID: id}, nil
}

// Edit aplica los campos presentes al proyecto y marca updatedAt.
// Estado e hitos se validan igual que al crear.
func (uc *ProjectUseCase) Edit(ctx context.Context, in dto.EditProjectRequest) error {
	if in.ID == "" {
		return domain.NewValidationError("El ID del proyecto es obligatorio.")
	}
	if in.Estado != nil && !entity.ValidProjectStatus(*in.Estado) {
		return domain.NewValidationError(msgEstadoProyectoInvalido)
	}
	patch := entity.ProjectPatch{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
		Estado:      in.Estado,
		Encargado:   in.Encargado,
		Equipo:      in.Equipo,
	}
	hitos, present, err := parseHitos(in.Hitos)
	if err != nil {
		return err
	}
	if present {
		patch.Hitos = &hitos
	}

	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Update(ctx, in.ID, patch)
}

// List devuelve todos los proyectos. ErrNotFound si no hay ninguno.
func (uc *ProjectUseCase) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return items, nil
}

// GetByID obtiene un proyecto; el id debe llegar como string no vacío.
func (uc *ProjectUseCase) GetByID(ctx context.Context, rawID any) (*dto.ProjectResponse, error) {
	id, ok := rawID.(string)
	if !ok || id == "" {
		return nil, domain.NewValidationError("El ID del proyecto es requerido y debe ser un string válido.")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(p), nil
}

// parseHitos interpreta el campo crudo. Ausente o null no es error;
// cualquier valor que no sea un arreglo JSON sí lo es.
func parseHitos(raw json.RawMessage) (hitos []any, present bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}
	if trimmed[0] != '[' {
		return nil, false, domain.NewValidationError(msgHitosInvalidos)
	}
	if err := json.Unmarshal(trimmed, &hitos); err != nil {
		return nil, false, domain.NewValidationError(msgHitosInvalidos)
	}
	if hitos == nil {
		hitos = []any{}
	}
	return hitos, true, nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	equipo := p.Equipo
	if equipo == nil {
		equipo = []string{}
	}
	hitos := p.Hitos
	if hitos == nil {
		hitos = []any{}
	}
	return &dto.ProjectResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		FechaInicio: p.FechaInicio,
		FechaFin:    p.FechaFin,
		Estado:      p.Estado,
		Encargado:   p.Encargado,
		Equipo:      equipo,
		Hitos:       hitos,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
