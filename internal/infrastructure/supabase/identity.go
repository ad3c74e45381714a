// Package supabase adapta Supabase Auth (GoTrue) como servicio de identidad.
package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/ports"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/pkg/config"
	pkgjwt "github.com/jhoicas/gestor-pruebas-api/pkg/jwt"
)

// banForever duración de baneo que equivale a disabled=true.
const banForever = 876000 * time.Hour

// adminAPI subconjunto de la API de administración de GoTrue que usa el adaptador.
type adminAPI interface {
	AdminCreateUser(req types.AdminCreateUserRequest) (*types.AdminCreateUserResponse, error)
	AdminUpdateUser(req types.AdminUpdateUserRequest) (*types.AdminUpdateUserResponse, error)
	AdminDeleteUser(req types.AdminDeleteUserRequest) error
}

var _ ports.IdentityService = (*Identity)(nil)

// Identity implementa ports.IdentityService sobre Supabase Auth.
type Identity struct {
	admin adminAPI
}

// NewIdentity valida que la clave sea service_role y construye el cliente de administración.
func NewIdentity(cfg config.IdentityConfig) (*Identity, error) {
	if err := pkgjwt.RequireServiceRole(cfg.SupabaseServiceKey); err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: crear cliente: %w", err)
	}
	return &Identity{admin: client.Auth.WithToken(cfg.SupabaseServiceKey)}, nil
}

// newIdentityWithAdmin permite inyectar la API en tests.
func newIdentityWithAdmin(admin adminAPI) *Identity {
	return &Identity{admin: admin}
}

// CreateAccount crea el usuario con el email confirmado y display_name en los metadatos.
func (s *Identity) CreateAccount(_ context.Context, in ports.NewAccount) (string, error) {
	password := in.Password
	resp, err := s.admin.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        in.Email,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"display_name": in.DisplayName},
	})
	if err != nil {
		return "", fmt.Errorf("supabase: crear usuario: %w", err)
	}
	return resp.ID.String(), nil
}

// SetDisabled banea o desbanea al usuario.
func (s *Identity) SetDisabled(_ context.Context, id string, disabled bool) error {
	uid, err := parseUID(id)
	if err != nil {
		return err
	}
	ban := types.BanDurationNone()
	if disabled {
		ban = types.BanDurationTime(banForever)
	}
	if _, err := s.admin.AdminUpdateUser(types.AdminUpdateUserRequest{UserID: uid, BanDuration: &ban}); err != nil {
		return fmt.Errorf("supabase: actualizar baneo: %w", accountError(err))
	}
	return nil
}

// DeleteAccount elimina el usuario.
func (s *Identity) DeleteAccount(_ context.Context, id string) error {
	uid, err := parseUID(id)
	if err != nil {
		return err
	}
	if err := s.admin.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: uid}); err != nil {
		return fmt.Errorf("supabase: eliminar usuario: %w", accountError(err))
	}
	return nil
}

// UpdateAccount replica email y display_name.
func (s *Identity) UpdateAccount(_ context.Context, id string, in ports.AccountUpdate) error {
	if in.IsEmpty() {
		return nil
	}
	uid, err := parseUID(id)
	if err != nil {
		return err
	}
	req := types.AdminUpdateUserRequest{UserID: uid}
	if in.Email != nil {
		req.Email = *in.Email
	}
	if in.DisplayName != nil {
		req.UserMetadata = map[string]interface{}{"display_name": *in.DisplayName}
	}
	if _, err := s.admin.AdminUpdateUser(req); err != nil {
		return fmt.Errorf("supabase: actualizar usuario: %w", accountError(err))
	}
	return nil
}

func parseUID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		// GoTrue solo emite UUID: una cuenta con otro id no existe.
		return uuid.Nil, fmt.Errorf("supabase: uid %q inválido: %w", id, domain.ErrNotFound)
	}
	return uid, nil
}

// accountError traduce el 404 de GoTrue a domain.ErrNotFound.
func accountError(err error) error {
	if strings.HasPrefix(err.Error(), "response status code 404") {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, err.Error())
	}
	return err
}
