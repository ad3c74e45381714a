// Package mongo implementa el almacén de documentos sobre MongoDB. Cada
// colección lógica es una colección física con el mismo nombre y el id del
// documento se guarda como string en _id.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
	"github.com/jhoicas/gestor-pruebas-api/pkg/config"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store almacén de documentos respaldado por una base MongoDB.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect abre el cliente, verifica la conexión y devuelve el almacén.
func Connect(ctx context.Context, cfg config.MongoConfig, timeout time.Duration) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetAppName("gestor-pruebas-api"))
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	s := &Store{client: client, db: client.Database(cfg.Database), timeout: timeout}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// Collection devuelve la colección física homónima.
func (s *Store) Collection(name string) repository.Collection {
	return &collection{coll: s.db.Collection(name), timeout: s.timeout}
}

// Ping verifica que el servidor responde.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Close desconecta el cliente.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type collection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (c *collection) Get(ctx context.Context, id string) (*repository.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	var raw bson.M
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo %s get: %w", c.coll.Name(), err)
	}
	doc := toDocument(raw)
	return &doc, nil
}

func (c *collection) GetAll(ctx context.Context) ([]repository.Document, error) {
	return c.find(ctx, bson.M{})
}

func (c *collection) Query(ctx context.Context, field string, value any) ([]repository.Document, error) {
	return c.find(ctx, bson.M{field: value})
}

func (c *collection) find(ctx context.Context, filter bson.M) ([]repository.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	cur, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo %s find: %w", c.coll.Name(), err)
	}
	defer cur.Close(ctx)
	var out []repository.Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("mongo %s decode: %w", c.coll.Name(), err)
		}
		out = append(out, toDocument(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo %s cursor: %w", c.coll.Name(), err)
	}
	return out, nil
}

// Add genera el id con un ObjectID en hexadecimal.
func (c *collection) Add(ctx context.Context, data map[string]any) (string, error) {
	id := primitive.NewObjectID().Hex()
	if err := c.replace(ctx, id, data); err != nil {
		return "", fmt.Errorf("mongo %s insert: %w", c.coll.Name(), err)
	}
	return id, nil
}

func (c *collection) Set(ctx context.Context, id string, data map[string]any) error {
	if err := c.replace(ctx, id, data); err != nil {
		return fmt.Errorf("mongo %s replace: %w", c.coll.Name(), err)
	}
	return nil
}

// replace escribe el documento completo con upsert. Las marcas de tiempo salen
// de $$NOW, el mismo reloj que usa $currentDate en Update.
func (c *collection) replace(ctx context.Context, id string, data map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	_, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, replacement(id, data), options.Update().SetUpsert(true))
	return err
}

// Update usa $set y $currentDate para los centinelas ServerTimestamp.
func (c *collection) Update(ctx context.Context, id string, fields map[string]any) error {
	set, stamps := splitServerTime(fields)
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(stamps) > 0 {
		update["$currentDate"] = stamps
	}
	if len(update) == 0 {
		return nil
	}
	return c.updateOne(ctx, bson.M{"_id": id}, update)
}

func (c *collection) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo %s delete: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *collection) ArrayAppend(ctx context.Context, id, field string, element any) error {
	return c.updateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{field: element}})
}

// AppendNested hace un único $push con el operador posicional sobre el primer
// elemento que cumple el filtro, así que no hay lectura previa que pueda quedar obsoleta.
func (c *collection) AppendNested(ctx context.Context, id string, t repository.NestedTarget, element any) (bool, error) {
	filter := bson.M{"_id": id, t.ArrayField + "." + t.MatchKey: t.MatchValue}
	update := bson.M{"$push": bson.M{t.ArrayField + ".$." + t.NestedField: element}}
	err := c.updateOne(ctx, filter, update)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	exists, err := c.exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrNotFound
	}
	return false, nil
}

func (c *collection) updateOne(ctx context.Context, filter, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongo %s update: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection) exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	n, err := c.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo %s count: %w", c.coll.Name(), err)
	}
	return n > 0, nil
}
