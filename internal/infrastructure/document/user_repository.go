package document

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo perfiles de usuario en la colección "users"; el id del documento es el uid.
type UserRepo struct {
	col repository.Collection
}

// NewUserRepository construye el repositorio sobre el almacén de documentos.
func NewUserRepository(store repository.DocumentStore) *UserRepo {
	return &UserRepo{col: store.Collection(repository.CollectionUsers)}
}

// Save crea o reemplaza el perfil.
func (r *UserRepo) Save(ctx context.Context, user *entity.User) error {
	if err := r.col.Set(ctx, user.UID, user.Fields()); err != nil {
		return fmt.Errorf("guardar usuario: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, uid string) (*entity.User, error) {
	doc, err := r.col.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("leer usuario: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return toUser(doc)
}

// List devuelve todos los perfiles.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	docs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	out := make([]*entity.User, 0, len(docs))
	for i := range docs {
		u, err := toUser(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// SetEstado actualiza solo el campo estado.
func (r *UserRepo) SetEstado(ctx context.Context, uid string, estado bool) error {
	return r.update(ctx, uid, map[string]any{"estado": estado})
}

// Update aplica el parche; un parche vacío no escribe nada.
func (r *UserRepo) Update(ctx context.Context, uid string, patch entity.UserPatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}
	return r.update(ctx, uid, fields)
}

func (r *UserRepo) update(ctx context.Context, uid string, fields map[string]any) error {
	if err := r.col.Update(ctx, uid, fields); err != nil {
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	return nil
}

// Delete elimina el perfil.
func (r *UserRepo) Delete(ctx context.Context, uid string) error {
	if err := r.col.Delete(ctx, uid); err != nil {
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	return nil
}

func toUser(doc *repository.Document) (*entity.User, error) {
	var u entity.User
	if err := decode(doc, &u); err != nil {
		return nil, err
	}
	if u.UID == "" {
		u.UID = doc.ID
	}
	return &u, nil
}
