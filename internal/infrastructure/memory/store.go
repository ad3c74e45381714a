// Package memory contiene adaptadores en memoria para desarrollo local y tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store almacén de documentos en memoria. Todas las escrituras de un documento
// se serializan con el mismo mutex, así que las anexiones son atómicas.
type Store struct {
	mu    sync.RWMutex
	cols  map[string]map[string]*entry
	seq   int64
	clock func() time.Time
}

type entry struct {
	seq  int64
	data map[string]any
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		cols:  map[string]map[string]*entry{},
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// Collection devuelve la colección; se crea vacía al primer uso.
func (s *Store) Collection(name string) repository.Collection {
	return &collection{store: s, name: name}
}

// Ping siempre responde.
func (s *Store) Ping(context.Context) error { return nil }

// Close no libera nada.
func (s *Store) Close(context.Context) error { return nil }

type collection struct {
	store *Store
	name  string
}

// docs debe llamarse con el mutex tomado.
func (c *collection) docs() map[string]*entry {
	m, ok := c.store.cols[c.name]
	if !ok {
		m = map[string]*entry{}
		c.store.cols[c.name] = m
	}
	return m
}

func (c *collection) Get(_ context.Context, id string) (*repository.Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	e, ok := c.store.cols[c.name][id]
	if !ok {
		return nil, nil
	}
	return &repository.Document{ID: id, Data: cloneMap(e.data)}, nil
}

func (c *collection) GetAll(ctx context.Context) ([]repository.Document, error) {
	return c.filter(func(map[string]any) bool { return true }), nil
}

func (c *collection) Query(_ context.Context, field string, value any) ([]repository.Document, error) {
	return c.filter(func(d map[string]any) bool {
		v, ok := d[field]
		return ok && v == value
	}), nil
}

// filter devuelve los documentos en orden de inserción.
func (c *collection) filter(keep func(map[string]any) bool) []repository.Document {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	type item struct {
		id string
		e  *entry
	}
	var items []item
	for id, e := range c.store.cols[c.name] {
		if keep(e.data) {
			items = append(items, item{id, e})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].e.seq < items[j].e.seq })
	out := make([]repository.Document, 0, len(items))
	for _, it := range items {
		out = append(out, repository.Document{ID: it.id, Data: cloneMap(it.e.data)})
	}
	return out
}

func (c *collection) Add(ctx context.Context, data map[string]any) (string, error) {
	id := uuid.NewString()
	return id, c.Set(ctx, id, data)
}

func (c *collection) Set(_ context.Context, id string, data map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	docs := c.docs()
	e, ok := docs[id]
	if !ok {
		c.store.seq++
		e = &entry{seq: c.store.seq}
		docs[id] = e
	}
	e.data = c.resolve(cloneMap(data))
	return nil
}

func (c *collection) Update(_ context.Context, id string, fields map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	e, ok := c.docs()[id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range c.resolve(cloneMap(fields)) {
		e.data[k] = v
	}
	return nil
}

func (c *collection) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	delete(c.docs(), id)
	return nil
}

func (c *collection) ArrayAppend(_ context.Context, id, field string, element any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	e, ok := c.docs()[id]
	if !ok {
		return domain.ErrNotFound
	}
	arr, _ := e.data[field].([]any)
	e.data[field] = append(arr, cloneValue(element))
	return nil
}

func (c *collection) AppendNested(_ context.Context, id string, t repository.NestedTarget, element any) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	e, ok := c.docs()[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	arr, _ := e.data[t.ArrayField].([]any)
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok || m[t.MatchKey] != t.MatchValue {
			continue
		}
		nested, _ := m[t.NestedField].([]any)
		m[t.NestedField] = append(nested, cloneValue(element))
		return true, nil
	}
	return false, nil
}

// resolve reemplaza los centinelas ServerTimestamp de primer nivel.
func (c *collection) resolve(data map[string]any) map[string]any {
	for k, v := range data {
		if repository.IsServerTimestamp(v) {
			data[k] = c.store.clock()
		}
	}
	return data
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = x
		}
		return out
	default:
		return v
	}
}
