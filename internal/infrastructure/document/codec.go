// Package document implementa los repositorios del dominio sobre el puerto
// genérico repository.DocumentStore. El adaptador concreto (mongo, postgres,
// memory) se elige en cmd/api.
package document

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

var (
	scenarioType = reflect.TypeOf(entity.Scenario{})
	testCaseType = reflect.TypeOf(entity.TestCase{})
)

// decode vuelca los datos de un documento en out usando las etiquetas json de la entidad.
// Las fechas pueden llegar como time.Time (memory, mongo) o como texto RFC3339 (postgres).
func decode(doc *repository.Document, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			embeddedHook,
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(doc.Data); err != nil {
		return fmt.Errorf("decodificar documento %s: %w", doc.ID, err)
	}
	return nil
}

// embeddedHook decodifica escenarios y casos con sus claves extra.
func embeddedHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case scenarioType:
		return entity.ScenarioFromValue(data)
	case testCaseType:
		return entity.TestCaseFromValue(data)
	}
	return data, nil
}
