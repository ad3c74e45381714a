package http_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-pruebas-api/docs"
	apphttp "github.com/jhoicas/gestor-pruebas-api/internal/interfaces/http"
)

func TestCORS_Preflight(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(fiber.MethodOptions, "/api/createUser", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://qa.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPost)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), fiber.MethodPost)
}

func TestCORS_OrigenEnRespuestaNormal(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(fiber.MethodGet, "/api/getProjects", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://qa.example.com")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestCORS_AplicaALaDocumentacion(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName: testAppName,
		Docs: swagger.New(swagger.Config{
			BasePath:    "/",
			Path:        "docs",
			FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		}),
	})

	req := httptest.NewRequest(fiber.MethodGet, "/docs", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://qa.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))

	req = httptest.NewRequest(fiber.MethodOptions, "/docs", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://qa.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodGet)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	resp := e.raw(t, fiber.MethodGet, "/health", nil)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok","service":"`+testAppName+`"}`, string(body))
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("sin conexión") }

func TestHealth_AlmacenCaido(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Store: downStore{}, AppName: testAppName})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetrics_CuentaPeticionesPorRuta(t *testing.T) {
	e := newTestEnv(t)
	e.do(t, fiber.MethodGet, "/api/getProjects", nil)

	resp := e.raw(t, fiber.MethodGet, "/metrics", nil)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body),
		`gestor_pruebas_http_requests_total{method="GET",path="/api/getProjects",status="404"} 1`)
	assert.Contains(t, string(body), "gestor_pruebas_http_request_duration_seconds")
}
