package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

// toDocument separa _id y convierte los tipos BSON a tipos Go neutros
// (map[string]any, []any, time.Time) para que el resto del código no dependa del driver.
func toDocument(raw bson.M) repository.Document {
	doc := repository.Document{Data: map[string]any{}}
	for k, v := range raw {
		if k == "_id" {
			doc.ID = idString(v)
			continue
		}
		doc.Data[k] = normalize(v)
	}
	return doc
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprint(v)
	}
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = normalize(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = normalize(x)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.ObjectID:
		return t.Hex()
	case int32:
		return int64(t)
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// replacement pipeline de actualización que deja el documento igual a data
// y pone $$NOW en los centinelas de primer nivel.
func replacement(id string, data map[string]any) mongo.Pipeline {
	doc, stamps := splitServerTime(data)
	doc["_id"] = id
	pipeline := mongo.Pipeline{{{Key: "$replaceWith", Value: bson.M{"$literal": doc}}}}
	if len(stamps) > 0 {
		now := bson.M{}
		for k := range stamps {
			now[k] = "$$NOW"
		}
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: now}})
	}
	return pipeline
}

// splitServerTime separa los campos normales de los que deben ir en $currentDate.
func splitServerTime(fields map[string]any) (set bson.M, stamps bson.M) {
	set, stamps = bson.M{}, bson.M{}
	for k, v := range fields {
		if repository.IsServerTimestamp(v) {
			stamps[k] = true
			continue
		}
		set[k] = v
	}
	return set, stamps
}
