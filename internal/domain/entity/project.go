package entity

import "time"

// Estados válidos de un proyecto.
const (
	ProjectEnProceso  = "En Proceso"
	ProjectCancelado  = "Cancelado"
	ProjectFinalizado = "Finalizado"
)

// ValidProjectStatus informa si s es uno de los estados admitidos.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectEnProceso, ProjectCancelado, ProjectFinalizado:
		return true
	}
	return false
}

// Project representa un proyecto en la colección "proyectos".
// Hitos guarda los hitos tal como los envía el cliente (objetos o textos).
type Project struct {
	ID          string     `json:"id"`
	Nombre      string     `json:"nombre"`
	Descripcion string     `json:"descripcion"`
	FechaInicio string     `json:"fechaInicio"`
	FechaFin    string     `json:"fechaFin"`
	Estado      string     `json:"estado"`
	Encargado   string     `json:"encargado"`
	Equipo      []string   `json:"equipo"`
	Hitos       []any      `json:"hitos"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Fields devuelve el documento a persistir (sin id ni marcas de tiempo).
func (p *Project) Fields() map[string]any {
	equipo := make([]any, 0, len(p.Equipo))
	for _, m := range p.Equipo {
		equipo = append(equipo, m)
	}
	hitos := p.Hitos
	if hitos == nil {
		hitos = []any{}
	}
	return map[string]any{
		"nombre":      p.Nombre,
		"descripcion": p.Descripcion,
		"fechaInicio": p.FechaInicio,
		"fechaFin":    p.FechaFin,
		"estado":      p.Estado,
		"encargado":   p.Encargado,
		"equipo":      equipo,
		"hitos":       hitos,
	}
}

// ProjectPatch campos editables de un proyecto.
type ProjectPatch struct {
	Nombre      *string   `json:"nombre"`
	Descripcion *string   `json:"descripcion"`
	FechaInicio *string   `json:"fechaInicio"`
	FechaFin    *string   `json:"fechaFin"`
	Estado      *string   `json:"estado"`
	Encargado   *string   `json:"encargado"`
	Equipo      *[]string `json:"equipo"`
	Hitos       *[]any    `json:"hitos"`
}

// Fields devuelve solo los campos presentes.
func (p ProjectPatch) Fields() map[string]any {
	f := map[string]any{}
	set := func(k string, v *string) {
		if v != nil {
			f[k] = *v
		}
	}
	set("nombre", p.Nombre)
	set("descripcion", p.Descripcion)
	set("fechaInicio", p.FechaInicio)
	set("fechaFin", p.FechaFin)
	set("estado", p.Estado)
	set("encargado", p.Encargado)
	if p.Equipo != nil {
		equipo := make([]any, 0, len(*p.Equipo))
		for _, m := range *p.Equipo {
			equipo = append(equipo, m)
		}
		f["equipo"] = equipo
	}
	if p.Hitos != nil {
		hitos := *p.Hitos
		if hitos == nil {
			hitos = []any{}
		}
		f["hitos"] = hitos
	}
	return f
}
