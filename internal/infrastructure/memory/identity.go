package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/ports"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
)

var _ ports.IdentityService = (*Identity)(nil)

// Account cuenta registrada en el servicio de identidad en memoria.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	DisplayName  string
	Disabled     bool
}

// Identity servicio de identidad en memoria. Aplica las mismas reglas básicas
// que el proveedor real: email único y contraseña de al menos 6 caracteres.
type Identity struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

// NewIdentity crea un servicio sin cuentas.
func NewIdentity() *Identity {
	return &Identity{accounts: map[string]*Account{}}
}

// CreateAccount registra la cuenta con la contraseña hasheada con bcrypt.
func (s *Identity) CreateAccount(_ context.Context, in ports.NewAccount) (string, error) {
	if len(in.Password) < 6 {
		return "", fmt.Errorf("identidad: la contraseña debe tener al menos 6 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("identidad: hash de contraseña: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byEmail(in.Email) != nil {
		return "", fmt.Errorf("identidad: el email %s ya está registrado", in.Email)
	}
	id := uuid.NewString()
	s.accounts[id] = &Account{
		ID:           id,
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
	}
	return id, nil
}

// SetDisabled cambia el flag disabled.
func (s *Identity) SetDisabled(_ context.Context, id string, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("identidad: cuenta %s: %w", id, domain.ErrNotFound)
	}
	a.Disabled = disabled
	return nil
}

// DeleteAccount elimina la cuenta.
func (s *Identity) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return fmt.Errorf("identidad: cuenta %s: %w", id, domain.ErrNotFound)
	}
	delete(s.accounts, id)
	return nil
}

// UpdateAccount cambia email y/o displayName.
func (s *Identity) UpdateAccount(_ context.Context, id string, in ports.AccountUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("identidad: cuenta %s: %w", id, domain.ErrNotFound)
	}
	if in.Email != nil {
		if other := s.byEmail(*in.Email); other != nil && other.ID != id {
			return fmt.Errorf("identidad: el email %s ya está registrado", *in.Email)
		}
		a.Email = *in.Email
	}
	if in.DisplayName != nil {
		a.DisplayName = *in.DisplayName
	}
	return nil
}

// Account devuelve una copia de la cuenta, o nil si no existe.
func (s *Identity) Account(id string) *Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

// Authenticate verifica email y contraseña como lo haría el login del proveedor.
// Las cuentas deshabilitadas no pueden autenticarse.
func (s *Identity) Authenticate(email, password string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.byEmail(email)
	if a == nil || a.Disabled {
		return "", false
	}
	if bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) != nil {
		return "", false
	}
	return a.ID, true
}

// byEmail debe llamarse con el mutex tomado.
func (s *Identity) byEmail(email string) *Account {
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return a
		}
	}
	return nil
}
