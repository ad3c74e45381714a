package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/memory"
)

func TestStore_AddGetYServerTimestamp(t *testing.T) {
	ctx := context.Background()
	col := memory.NewStore().Collection("proyectos")

	id, err := col.Add(ctx, map[string]any{"nombre": "Portal", "createdAt": repository.ServerTimestamp})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := col.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Portal", doc.Data["nombre"])
	_, isTime := doc.Data["createdAt"].(time.Time)
	assert.True(t, isTime, "el centinela debe reemplazarse por la hora del almacén")
}

func TestStore_GetInexistenteDevuelveNil(t *testing.T) {
	doc, err := memory.NewStore().Collection("users").Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestStore_UpdateInexistente(t *testing.T) {
	err := memory.NewStore().Collection("users").Update(context.Background(), "nope", map[string]any{"a": 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_GetAllEnOrdenDeInsercion(t *testing.T) {
	ctx := context.Background()
	col := memory.NewStore().Collection("planesPruebas")
	var ids []string
	for i := 0; i < 5; i++ {
		id, err := col.Add(ctx, map[string]any{"n": i})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	docs, err := col.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 5)
	for i, d := range docs {
		assert.Equal(t, ids[i], d.ID)
	}
}

func TestStore_QueryPorIgualdad(t *testing.T) {
	ctx := context.Background()
	col := memory.NewStore().Collection("planesPruebas")
	_, _ = col.Add(ctx, map[string]any{"proyectoId": "p1"})
	_, _ = col.Add(ctx, map[string]any{"proyectoId": "p2"})
	_, _ = col.Add(ctx, map[string]any{"proyectoId": "p1"})

	docs, err := col.Query(ctx, "proyectoId", "p1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStore_LecturaNoCompartida(t *testing.T) {
	ctx := context.Background()
	col := memory.NewStore().Collection("proyectos")
	id, _ := col.Add(ctx, map[string]any{"equipo": []any{"ana"}})

	doc, _ := col.Get(ctx, id)
	doc.Data["equipo"] = append(doc.Data["equipo"].([]any), "luis")

	again, _ := col.Get(ctx, id)
	assert.Len(t, again.Data["equipo"], 1)
}

func TestStore_AppendNested(t *testing.T) {
	ctx := context.Background()
	col := memory.NewStore().Collection("planesPruebas")
	id, _ := col.Add(ctx, map[string]any{
		"escenarios": []any{
			map[string]any{"id": "e1", "casosPrueba": []any{}},
			map[string]any{"id": "e2", "casosPrueba": []any{}},
		},
	})
	target := repository.NestedTarget{ArrayField: "escenarios", MatchKey: "id", MatchValue: "e2", NestedField: "casosPrueba"}

	matched, err := col.AppendNested(ctx, id, target, map[string]any{"id": "c1"})
	require.NoError(t, err)
	assert.True(t, matched)

	target.MatchValue = "no-existe"
	matched, err = col.AppendNested(ctx, id, target, map[string]any{"id": "c2"})
	require.NoError(t, err)
	assert.False(t, matched)

	doc, _ := col.Get(ctx, id)
	esc := doc.Data["escenarios"].([]any)
	assert.Empty(t, esc[0].(map[string]any)["casosPrueba"])
	assert.Len(t, esc[1].(map[string]any)["casosPrueba"], 1)

	_, err = col.AppendNested(ctx, "nope", target, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_AnexionesConcurrentesNoSePierden(t *testing.T) {
	ctx := context.Background()
	col := memory.NewStore().Collection("planesPruebas")
	id, _ := col.Add(ctx, map[string]any{
		"escenarios": []any{map[string]any{"id": "e1", "casosPrueba": []any{}}},
	})
	target := repository.NestedTarget{ArrayField: "escenarios", MatchKey: "id", MatchValue: "e1", NestedField: "casosPrueba"}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = col.AppendNested(ctx, id, target, map[string]any{"n": i})
			_ = col.ArrayAppend(ctx, id, "escenarios", map[string]any{"id": "extra"})
		}(i)
	}
	wg.Wait()

	doc, _ := col.Get(ctx, id)
	esc := doc.Data["escenarios"].([]any)
	assert.Len(t, esc, n+1)
	assert.Len(t, esc[0].(map[string]any)["casosPrueba"], n)
}
