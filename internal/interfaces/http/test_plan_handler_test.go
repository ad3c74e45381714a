package http_test

import (
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
)

func getPlan(t *testing.T, e *testEnv, id string) dto.TestPlanResponse {
	t.Helper()
	status, env := e.do(t, fiber.MethodPost, "/api/getTestPlanById", map[string]any{"id": id})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var out dto.TestPlanResponse
	decodeData(t, env, &out)
	return out
}

func addScenario(t *testing.T, e *testEnv, planID, nombre string) string {
	t.Helper()
	status, env := e.do(t, fiber.MethodPost, "/api/addScenarioToTestPlan", map[string]any{
		"planId":    planID,
		"escenario": map[string]any{"nombre": nombre, "descripcion": "Descripción de " + nombre},
	})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var out dto.AppendedItem
	decodeData(t, env, &out)
	return out.ID
}

func TestCreateTestPlan_CamposRequeridos(t *testing.T) {
	e := newTestEnv(t)
	for _, body := range []map[string]any{
		{"nombrePlan": "R", "escenarios": []any{}},
		{"proyectoId": "p1", "escenarios": []any{}},
		{"proyectoId": "p1", "nombrePlan": "R"},
	} {
		status, env := e.do(t, fiber.MethodPost, "/api/createTestPlan", body)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, dto.CodeValidation, env.Error)
	}
}

func TestCreateTestPlan_NoValidaElProyecto(t *testing.T) {
	e := newTestEnv(t)
	id := e.createPlan(t, "proyecto-que-no-existe", map[string]any{
		"nombre":      "Login",
		"descripcion": "Acceso al portal",
	})

	plan := getPlan(t, e, id)
	assert.Equal(t, "proyecto-que-no-existe", plan.ProyectoID)
	require.Len(t, plan.Escenarios, 1)
	assert.NotEmpty(t, plan.Escenarios[0].ID)
	assert.NotNil(t, plan.Escenarios[0].CasosPrueba)
	assert.NotNil(t, plan.CreatedAt)
}

// planData devuelve el plan tal como sale en el JSON de getTestPlanById.
func planData(t *testing.T, e *testEnv, id string) map[string]any {
	t.Helper()
	status, env := e.do(t, fiber.MethodPost, "/api/getTestPlanById", map[string]any{"id": id})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var out map[string]any
	decodeData(t, env, &out)
	return out
}

func TestCreateTestPlan_GuardaEscenariosTalCual(t *testing.T) {
	e := newTestEnv(t)
	planID := e.createPlan(t, "p1", map[string]any{
		"id":          "e1",
		"nombre":      "Login",
		"descripcion": "Acceso",
		"prioridad":   "alta",
		"casosPrueba": []any{
			map[string]any{"id": "c1", "nombre": "ok", "descripcion": "válido", "resultadoEsperado": "ok"},
		},
	}, map[string]any{
		"id":     1700000000,
		"nombre": "Legado",
	})

	plan := planData(t, e, planID)
	escenarios, ok := plan["escenarios"].([]any)
	require.True(t, ok)
	require.Len(t, escenarios, 2)

	first := escenarios[0].(map[string]any)
	assert.Equal(t, "e1", first["id"])
	assert.Equal(t, "alta", first["prioridad"])
	caso := first["casosPrueba"].([]any)[0].(map[string]any)
	assert.Equal(t, "ok", caso["resultadoEsperado"])
	assert.Equal(t, []any{}, caso["datosPrueba"])

	second := escenarios[1].(map[string]any)
	assert.Equal(t, float64(1700000000), second["id"])
	assert.Equal(t, []any{}, second["casosPrueba"])

	addTestCaseBody := map[string]any{
		"planId": planID, "escenarioId": "e1",
		"casoPrueba": map[string]any{"nombre": "ko", "descripcion": "inválido", "severidad": "media"},
	}
	status, env := e.do(t, fiber.MethodPost, "/api/addTestCaseToScenario", addTestCaseBody)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	plan = planData(t, e, planID)
	casos := plan["escenarios"].([]any)[0].(map[string]any)["casosPrueba"].([]any)
	require.Len(t, casos, 2)
	assert.Equal(t, "media", casos[1].(map[string]any)["severidad"])
}

func TestCreateTestPlan_EscenarioNoObjeto(t *testing.T) {
	e := newTestEnv(t)
	for _, escenarios := range []any{
		[]any{"no-es-objeto"},
		[]any{map[string]any{"nombre": "Login", "casosPrueba": "x"}},
		[]any{map[string]any{"nombre": "Login", "casosPrueba": []any{5}}},
	} {
		status, env := e.do(t, fiber.MethodPost, "/api/createTestPlan", map[string]any{
			"proyectoId": "p1", "nombrePlan": "R", "escenarios": escenarios,
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, dto.CodeValidation, env.Error, env.Message)
	}
}

func TestAddScenario_DosVecesIDsDistintos(t *testing.T) {
	e := newTestEnv(t)
	planID := e.createPlan(t, "p1")

	id1 := addScenario(t, e, planID, "Login")
	id2 := addScenario(t, e, planID, "Logout")
	assert.NotEqual(t, id1, id2)

	plan := getPlan(t, e, planID)
	require.Len(t, plan.Escenarios, 2)
	assert.Equal(t, id1, plan.Escenarios[0].ID)
	assert.Equal(t, id2, plan.Escenarios[1].ID)
	assert.Empty(t, plan.Escenarios[1].CasosPrueba)
}

func TestAddScenario_Errores(t *testing.T) {
	e := newTestEnv(t)
	planID := e.createPlan(t, "p1")

	status, env := e.do(t, fiber.MethodPost, "/api/addScenarioToTestPlan", map[string]any{
		"planId": planID, "escenario": map[string]any{"nombre": "Sin descripción"},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, env.Error)

	status, env = e.do(t, fiber.MethodPost, "/api/addScenarioToTestPlan", map[string]any{
		"planId": "no-existe", "escenario": map[string]any{"nombre": "A", "descripcion": "B"},
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "El plan de pruebas no existe.", env.Message)
}

func TestAddTestCase(t *testing.T) {
	e := newTestEnv(t)
	planID := e.createPlan(t, "p1")
	escID := addScenario(t, e, planID, "Login")

	status, env := e.do(t, fiber.MethodPost, "/api/addTestCaseToScenario", map[string]any{
		"planId":      planID,
		"escenarioId": escID,
		"casoPrueba": map[string]any{
			"nombre":      "Clave incorrecta",
			"descripcion": "Rechaza la clave",
			"datosPrueba": []any{"usuario: ana"},
		},
	})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "Caso de prueba agregado exitosamente al escenario.", env.Message)
	var added dto.AppendedItem
	decodeData(t, env, &added)

	plan := getPlan(t, e, planID)
	casos := plan.Escenarios[0].CasosPrueba
	require.Len(t, casos, 1)
	assert.Equal(t, added.ID, casos[0].ID)
	assert.Equal(t, []any{"usuario: ana"}, casos[0].DatosPrueba)
	assert.Equal(t, []any{}, casos[0].CriteriosAceptacion)
}

func TestAddTestCase_EscenarioInexistenteNoCambiaNada(t *testing.T) {
	e := newTestEnv(t)
	planID := e.createPlan(t, "p1")
	addScenario(t, e, planID, "Login")
	before := getPlan(t, e, planID)

	status, env := e.do(t, fiber.MethodPost, "/api/addTestCaseToScenario", map[string]any{
		"planId":      planID,
		"escenarioId": "no-existe",
		"casoPrueba":  map[string]any{"nombre": "X", "descripcion": "Y"},
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, env.Data)

	assert.Equal(t, before.Escenarios, getPlan(t, e, planID).Escenarios)
}

func TestAddTestCase_PlanInexistente(t *testing.T) {
	e := newTestEnv(t)
	status, env := e.do(t, fiber.MethodPost, "/api/addTestCaseToScenario", map[string]any{
		"planId":      "no-existe",
		"escenarioId": "e1",
		"casoPrueba":  map[string]any{"nombre": "X", "descripcion": "Y"},
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "El plan de pruebas no existe.", env.Message)
}

func TestGetAllTestPlans(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, fiber.MethodGet, "/api/getAllTestPlans", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "No se encontraron planes de pruebas.", env.Message)

	id := e.createPlan(t, "p1")
	status, env = e.do(t, fiber.MethodGet, "/api/getAllTestPlans", nil)
	require.Equal(t, fiber.StatusOK, status)
	var list []dto.TestPlanResponse
	decodeData(t, env, &list)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestGetTestPlansByProjectId_FiltraPorProyecto(t *testing.T) {
	e := newTestEnv(t)
	a1 := e.createPlan(t, "proyecto-a")
	e.createPlan(t, "proyecto-b")
	a2 := e.createPlan(t, "proyecto-a")

	status, env := e.do(t, fiber.MethodGet, "/api/getTestPlansByProjectId?proyectoId=proyecto-a", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Planes de pruebas obtenidos exitosamente para el proyecto proyecto-a.", env.Message)
	var list []dto.TestPlanResponse
	decodeData(t, env, &list)
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []string{a1, a2}, ids)
	for _, p := range list {
		assert.Equal(t, "proyecto-a", p.ProyectoID)
	}

	status, env = e.do(t, fiber.MethodGet, "/api/getTestPlansByProjectId?proyectoId=proyecto-c", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "No se encontraron planes de pruebas para el proyecto con ID proyecto-c.", env.Message)

	status, _ = e.do(t, fiber.MethodGet, "/api/getTestPlansByProjectId", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetTestPlanById_Errores(t *testing.T) {
	e := newTestEnv(t)
	status, _ := e.do(t, fiber.MethodPost, "/api/getTestPlanById", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env := e.do(t, fiber.MethodPost, "/api/getTestPlanById", map[string]any{"id": "no-existe"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, dto.CodeNotFound, env.Error)
}

func TestExportTestPlanPDF(t *testing.T) {
	e := newTestEnv(t)
	proyectoID := e.createProject(t)
	planID := e.createPlan(t, proyectoID, map[string]any{
		"nombre":      "Login",
		"descripcion": "Acceso al portal",
		"casosPrueba": []any{map[string]any{"nombre": "Clave ok", "descripcion": "Ingresa"}},
	})

	resp := e.raw(t, fiber.MethodPost, "/api/exportTestPlanPDF", map[string]any{"id": planID})
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, len(body) > 4 && string(body[:4]) == "%PDF", "debe ser un PDF")

	status, _ := e.do(t, fiber.MethodPost, "/api/exportTestPlanPDF", map[string]any{"id": "no-existe"})
	assert.Equal(t, fiber.StatusNotFound, status)
}
