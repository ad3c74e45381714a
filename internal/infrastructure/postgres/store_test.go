package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

func TestEncode_SeparaCentinelas(t *testing.T) {
	payload, stamps, err := encode(map[string]any{
		"nombre":    "Portal",
		"createdAt": repository.ServerTimestamp,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"createdAt"}, stamps)
	assert.JSONEq(t, `{"nombre":"Portal"}`, string(payload))
}

func TestEncode_SinCentinelasDevuelveListaVacia(t *testing.T) {
	_, stamps, err := encode(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.NotNil(t, stamps)
	assert.Empty(t, stamps)
}

func TestAppendNested_SobreJSONDecodificado(t *testing.T) {
	var datos map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"escenarios": [
			{"id": "e1", "casosPrueba": []},
			{"id": "e2"}
		]
	}`), &datos))
	target := repository.NestedTarget{ArrayField: "escenarios", MatchKey: "id", MatchValue: "e2", NestedField: "casosPrueba"}

	assert.True(t, appendNested(datos, target, map[string]any{"id": "c1"}))
	esc := datos["escenarios"].([]any)
	assert.Len(t, esc[1].(map[string]any)["casosPrueba"], 1)
	assert.Empty(t, esc[0].(map[string]any)["casosPrueba"])

	target.MatchValue = "e9"
	assert.False(t, appendNested(datos, target, map[string]any{"id": "c2"}))
}

func TestStampsExpr(t *testing.T) {
	assert.Contains(t, stampsExpr(4), "unnest($4::text[])")
}

func TestSchemaEmbebido(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS documentos")
}

func TestPgErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation})
	assert.Equal(t, codeUniqueViolation, pgErrorCode(wrapped))
	assert.Empty(t, pgErrorCode(errors.New("23505 en el texto no cuenta")))
}
