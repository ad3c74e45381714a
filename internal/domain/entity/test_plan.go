package entity

import (
	"time"

	"github.com/google/uuid"
)

// TestPlan representa un plan de pruebas en la colección "planesPruebas".
// ProyectoID no se valida contra la colección de proyectos.
type TestPlan struct {
	ID         string     `json:"id"`
	ProyectoID string     `json:"proyectoId"`
	NombrePlan string     `json:"nombrePlan"`
	Escenarios []Scenario `json:"escenarios"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// Scenario escenario embebido en un plan. Extra conserva tal cual las claves
// del cliente que no tienen campo propio, o cuyo valor no es del tipo esperado.
type Scenario struct {
	ID          string         `json:"id"`
	Nombre      string         `json:"nombre"`
	Descripcion string         `json:"descripcion"`
	CasosPrueba []TestCase     `json:"casosPrueba"`
	Extra       map[string]any `json:"-"`
}

// TestCase caso de prueba embebido en un escenario. Extra igual que en Scenario.
type TestCase struct {
	ID                  string         `json:"id"`
	Nombre              string         `json:"nombre"`
	Descripcion         string         `json:"descripcion"`
	DatosPrueba         []any          `json:"datosPrueba"`
	CriteriosAceptacion []any          `json:"criteriosAceptacion"`
	Extra               map[string]any `json:"-"`
}

// NewID genera identificadores para escenarios y casos de prueba.
func NewID() string {
	return uuid.NewString()
}

// Normalize asigna id si falta y aplica los valores por defecto de las listas.
// Un id del cliente que no es texto se respeta.
func (s *Scenario) Normalize() {
	if s.ID == "" && !hasKey(s.Extra, "id") {
		s.ID = NewID()
	}
	if s.CasosPrueba == nil {
		s.CasosPrueba = []TestCase{}
	}
	for i := range s.CasosPrueba {
		s.CasosPrueba[i].Normalize()
	}
}

// Normalize asigna id si falta y aplica los valores por defecto de las listas.
func (tc *TestCase) Normalize() {
	if tc.ID == "" && !hasKey(tc.Extra, "id") {
		tc.ID = NewID()
	}
	if tc.DatosPrueba == nil {
		tc.DatosPrueba = []any{}
	}
	if tc.CriteriosAceptacion == nil {
		tc.CriteriosAceptacion = []any{}
	}
}

// AssignID reemplaza cualquier id recibido por uno generado.
func (s *Scenario) AssignID() {
	delete(s.Extra, "id")
	s.ID = NewID()
}

// AssignID reemplaza cualquier id recibido por uno generado.
func (tc *TestCase) AssignID() {
	delete(tc.Extra, "id")
	tc.ID = NewID()
}

// Fields devuelve el documento a persistir (sin id ni marcas de tiempo).
func (p *TestPlan) Fields() map[string]any {
	escenarios := make([]any, 0, len(p.Escenarios))
	for _, s := range p.Escenarios {
		escenarios = append(escenarios, s.Fields())
	}
	return map[string]any{
		"proyectoId": p.ProyectoID,
		"nombrePlan": p.NombrePlan,
		"escenarios": escenarios,
	}
}

// Fields representación como documento embebido.
func (s Scenario) Fields() map[string]any {
	casos := make([]any, 0, len(s.CasosPrueba))
	for _, c := range s.CasosPrueba {
		casos = append(casos, c.Fields())
	}
	return withExtra(map[string]any{
		"id":          s.ID,
		"nombre":      s.Nombre,
		"descripcion": s.Descripcion,
		"casosPrueba": casos,
	}, s.Extra)
}

// Fields representación como documento embebido.
func (tc TestCase) Fields() map[string]any {
	datos := tc.DatosPrueba
	if datos == nil {
		datos = []any{}
	}
	criterios := tc.CriteriosAceptacion
	if criterios == nil {
		criterios = []any{}
	}
	return withExtra(map[string]any{
		"id":                  tc.ID,
		"nombre":              tc.Nombre,
		"descripcion":         tc.Descripcion,
		"datosPrueba":         datos,
		"criteriosAceptacion": criterios,
	}, tc.Extra)
}

// FindScenario devuelve el escenario con el id dado o nil.
func (p *TestPlan) FindScenario(id string) *Scenario {
	for i := range p.Escenarios {
		if p.Escenarios[i].ID == id {
			return &p.Escenarios[i]
		}
	}
	return nil
}
