package entity

import (
	"encoding/json"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
)

const (
	msgEscenarioNoObjeto = "Cada escenario debe ser un objeto."
	msgCasoNoObjeto      = "Cada caso de prueba debe ser un objeto."
	msgCasosNoArreglo    = "El campo casosPrueba debe ser un arreglo."
)

// ScenarioFromValue construye un escenario a partir de un valor genérico
// (cuerpo JSON o documento del almacén).
func ScenarioFromValue(v any) (Scenario, error) {
	m, ok := asMap(v)
	if !ok {
		return Scenario{}, domain.NewValidationError(msgEscenarioNoObjeto)
	}
	var s Scenario
	extra := map[string]any{}
	for k, val := range m {
		switch k {
		case "id":
			s.ID, ok = claimString(val)
		case "nombre":
			s.Nombre, ok = claimString(val)
		case "descripcion":
			s.Descripcion, ok = claimString(val)
		case "casosPrueba":
			if val == nil {
				continue
			}
			items, isList := asList(val)
			if !isList {
				return Scenario{}, domain.NewValidationError(msgCasosNoArreglo)
			}
			s.CasosPrueba = make([]TestCase, 0, len(items))
			for _, item := range items {
				tc, err := TestCaseFromValue(item)
				if err != nil {
					return Scenario{}, err
				}
				s.CasosPrueba = append(s.CasosPrueba, tc)
			}
			continue
		default:
			ok = false
		}
		if !ok {
			extra[k] = val
		}
	}
	if len(extra) > 0 {
		s.Extra = extra
	}
	return s, nil
}

// TestCaseFromValue construye un caso de prueba a partir de un valor genérico.
func TestCaseFromValue(v any) (TestCase, error) {
	m, ok := asMap(v)
	if !ok {
		return TestCase{}, domain.NewValidationError(msgCasoNoObjeto)
	}
	var tc TestCase
	extra := map[string]any{}
	for k, val := range m {
		switch k {
		case "id":
			tc.ID, ok = claimString(val)
		case "nombre":
			tc.Nombre, ok = claimString(val)
		case "descripcion":
			tc.Descripcion, ok = claimString(val)
		case "datosPrueba":
			tc.DatosPrueba, ok = claimList(val)
		case "criteriosAceptacion":
			tc.CriteriosAceptacion, ok = claimList(val)
		default:
			ok = false
		}
		if !ok {
			extra[k] = val
		}
	}
	if len(extra) > 0 {
		tc.Extra = extra
	}
	return tc, nil
}

// MarshalJSON emite el documento completo, claves extra incluidas.
func (s Scenario) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Fields())
}

// UnmarshalJSON acepta cualquier objeto; los errores de forma son de validación.
func (s *Scenario) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ScenarioFromValue(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON emite el documento completo, claves extra incluidas.
func (tc TestCase) MarshalJSON() ([]byte, error) {
	return json.Marshal(tc.Fields())
}

// UnmarshalJSON acepta cualquier objeto; los errores de forma son de validación.
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := TestCaseFromValue(raw)
	if err != nil {
		return err
	}
	*tc = v
	return nil
}

// claimString: nil y "" quedan como ausentes; otro tipo va a Extra.
func claimString(v any) (string, bool) {
	if v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

func claimList(v any) ([]any, bool) {
	if v == nil {
		return nil, true
	}
	return asList(v)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func hasKey(m map[string]any, k string) bool {
	_, ok := m[k]
	return ok
}

// withExtra copia Extra sobre los campos propios. Extra solo guarda claves no
// reclamadas por un campo, así que un valor de otro tipo sale tal como llegó.
func withExtra(fields, extra map[string]any) map[string]any {
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}
