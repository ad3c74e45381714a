package repository

import "context"

// Colecciones del almacén de documentos.
const (
	CollectionUsers     = "users"
	CollectionProjects  = "proyectos"
	CollectionTestPlans = "planesPruebas"
)

// Document documento de una colección: id asignado por el almacén y datos sin esquema.
type Document struct {
	ID   string
	Data map[string]any
}

type serverTimestamp struct{}

// ServerTimestamp es un valor centinela: al escribirlo en un campo, el adaptador
// lo reemplaza por la hora del almacén.
var ServerTimestamp any = serverTimestamp{}

// IsServerTimestamp informa si v es el centinela ServerTimestamp.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// NestedTarget ubica un arreglo dentro de un elemento de otro arreglo:
// data[ArrayField][i][NestedField] donde data[ArrayField][i][MatchKey] == MatchValue.
type NestedTarget struct {
	ArrayField  string
	MatchKey    string
	MatchValue  any
	NestedField string
}

// DocumentStore define el puerto del almacén de documentos (DIP).
// Las implementaciones viven en infrastructure (mongo, postgres, memory).
type DocumentStore interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection operaciones sobre una colección.
//
// Get devuelve (nil, nil) si el documento no existe. Update, ArrayAppend y
// AppendNested devuelven domain.ErrNotFound si el documento no existe; Delete
// no falla en ese caso. ArrayAppend y AppendNested son atómicos respecto a
// otras escrituras del mismo documento.
type Collection interface {
	Get(ctx context.Context, id string) (*Document, error)
	GetAll(ctx context.Context) ([]Document, error)
	Query(ctx context.Context, field string, value any) ([]Document, error)
	Add(ctx context.Context, data map[string]any) (string, error)
	Set(ctx context.Context, id string, data map[string]any) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	ArrayAppend(ctx context.Context, id, field string, element any) error
	// AppendNested agrega element al arreglo anidado indicado por target.
	// matched es false si ningún elemento coincide (el documento queda igual).
	AppendNested(ctx context.Context, id string, target NestedTarget, element any) (matched bool, err error)
}
