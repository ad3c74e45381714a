package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

var casosDeEscenario = repository.NestedTarget{
	ArrayField:  "escenarios",
	MatchKey:    "id",
	MatchValue:  "e1",
	NestedField: "casosPrueba",
}

func mockCollection(mt *mtest.T) *collection {
	return &collection{coll: mt.Coll, timeout: time.Second}
}

func updateResponse(matched int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func countResponse(mt *mtest.T, n int) bson.D {
	ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
	if n == 0 {
		return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
	}
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

// sentUpdate devuelve la primera sentencia del primer comando update enviado.
func sentUpdate(mt *mtest.T) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	for evt != nil && evt.CommandName != "update" {
		evt = mt.GetStartedEvent()
	}
	require.NotNil(mt, evt, "no se envió ningún update")
	return evt.Command.Lookup("updates", "0").Document()
}

func TestCollection_AppendNested(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("escenario encontrado", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(1))

		matched, err := mockCollection(mt).AppendNested(ctx, "p1", casosDeEscenario, bson.M{"id": "c1"})
		require.NoError(mt, err)
		assert.True(mt, matched)

		u := sentUpdate(mt)
		assert.Equal(mt, "p1", u.Lookup("q", "_id").StringValue())
		assert.Equal(mt, "e1", u.Lookup("q", "escenarios.id").StringValue())
		assert.Equal(mt, "c1", u.Lookup("u", "$push", "escenarios.$.casosPrueba", "id").StringValue())
	})

	mt.Run("escenario inexistente no cambia el plan", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(0), countResponse(mt, 1))

		matched, err := mockCollection(mt).AppendNested(ctx, "p1", casosDeEscenario, bson.M{"id": "c1"})
		require.NoError(mt, err)
		assert.False(mt, matched)
	})

	mt.Run("plan inexistente", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(0), countResponse(mt, 0))

		_, err := mockCollection(mt).AppendNested(ctx, "nope", casosDeEscenario, bson.M{"id": "c1"})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestCollection_ArrayAppend(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("agrega al final", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(1))

		require.NoError(mt, mockCollection(mt).ArrayAppend(ctx, "p1", "escenarios", bson.M{"id": "e2"}))
		u := sentUpdate(mt)
		assert.Equal(mt, "e2", u.Lookup("u", "$push", "escenarios", "id").StringValue())
	})

	mt.Run("documento inexistente", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(0))

		err := mockCollection(mt).ArrayAppend(ctx, "nope", "escenarios", bson.M{"id": "e2"})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestCollection_UpdateMarcaConCurrentDate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("centinela en $currentDate", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(1))

		err := mockCollection(mt).Update(ctx, "p1", map[string]any{
			"estado":    "Finalizado",
			"updatedAt": repository.ServerTimestamp,
		})
		require.NoError(mt, err)

		u := sentUpdate(mt)
		assert.Equal(mt, "Finalizado", u.Lookup("u", "$set", "estado").StringValue())
		assert.True(mt, u.Lookup("u", "$currentDate", "updatedAt").Boolean())
		_, err = u.LookupErr("u", "$set", "updatedAt")
		assert.Error(mt, err, "la marca no debe ir en $set")
	})

	mt.Run("documento inexistente", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(0))

		err := mockCollection(mt).Update(ctx, "nope", map[string]any{"estado": "Cancelado"})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestCollection_AddUsaRelojDelServidor(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("upsert con $$NOW", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "x"}}}},
		))

		id, err := mockCollection(mt).Add(ctx, map[string]any{
			"nombrePlan": "Regresión",
			"createdAt":  repository.ServerTimestamp,
		})
		require.NoError(mt, err)
		assert.Len(mt, id, 24)

		u := sentUpdate(mt)
		assert.Equal(mt, id, u.Lookup("q", "_id").StringValue())
		assert.True(mt, u.Lookup("upsert").Boolean())
		assert.Equal(mt, "Regresión", u.Lookup("u", "0", "$replaceWith", "$literal", "nombrePlan").StringValue())
		assert.Equal(mt, "$$NOW", u.Lookup("u", "1", "$set", "createdAt").StringValue())
	})
}
