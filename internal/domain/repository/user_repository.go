package repository

import (
	"context"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para perfiles de usuario.
type UserRepository interface {
	// Save crea o reemplaza el documento con id = user.UID.
	Save(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, uid string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	SetEstado(ctx context.Context, uid string, estado bool) error
	Update(ctx context.Context, uid string, patch entity.UserPatch) error
	Delete(ctx context.Context, uid string) error
}
