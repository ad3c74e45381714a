package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/usecase"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/document"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/memory"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/gestor-pruebas-api/internal/interfaces/http"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

const testAppName = "gestor-pruebas-test"

// testEnv aplicación completa sobre los adaptadores en memoria.
type testEnv struct {
	app      *fiber.App
	store    *memory.Store
	identity *memory.Identity
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	identity := memory.NewIdentity()
	log := logger.Nop()
	projects := document.NewProjectRepository(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UserUC:     usecase.NewUserUseCase(document.NewUserRepository(store), identity, log),
		ProjectUC:  usecase.NewProjectUseCase(projects),
		TestPlanUC: usecase.NewTestPlanUseCase(document.NewTestPlanRepository(store), projects, pdf.NewMarotoPDFGenerator(), log),
		Store:      store,
		Metrics:    apphttp.NewMetrics("gestor_pruebas"),
		Log:        log,
		AppName:    testAppName,
	})
	return &testEnv{app: app, store: store, identity: identity}
}

// envelope sobre de respuesta con data sin decodificar.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do ejecuta la petición. body puede ser nil, un string con JSON crudo o
// cualquier valor serializable.
func (e *testEnv) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	resp := e.raw(t, method, path, body)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "respuesta no es JSON: %s", raw)
	return resp.StatusCode, env
}

func (e *testEnv) raw(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeData decodifica data en out.
func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NotEmpty(t, env.Data, "la respuesta no trae data")
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// createUser crea un usuario válido y devuelve su uid.
func (e *testEnv) createUser(t *testing.T, email string, estado bool) string {
	t.Helper()
	status, env := e.do(t, fiber.MethodPost, "/api/createUser", map[string]any{
		"email":    email,
		"password": "secreta1",
		"nombre":   "Ana",
		"apellido": "Ruiz",
		"rol":      "tester",
		"estado":   estado,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var out struct {
		UID string `json:"uid"`
	}
	decodeData(t, env, &out)
	return out.UID
}

func validProjectBody() map[string]any {
	return map[string]any{
		"nombre":      "Portal",
		"descripcion": "Portal de clientes",
		"fechaInicio": "2024-01-10",
		"fechaFin":    "2024-06-30",
		"estado":      "En Proceso",
		"encargado":   "ana",
	}
}

func (e *testEnv) createProject(t *testing.T) string {
	t.Helper()
	status, env := e.do(t, fiber.MethodPost, "/api/createProject", validProjectBody())
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var out struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &out)
	return out.ID
}

func (e *testEnv) createPlan(t *testing.T, proyectoID string, escenarios ...map[string]any) string {
	t.Helper()
	if escenarios == nil {
		escenarios = []map[string]any{}
	}
	status, env := e.do(t, fiber.MethodPost, "/api/createTestPlan", map[string]any{
		"proyectoId": proyectoID,
		"nombrePlan": "Regresión",
		"escenarios": escenarios,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var out struct {
		PlanID string `json:"planId"`
	}
	decodeData(t, env, &out)
	return out.PlanID
}
