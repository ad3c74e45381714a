package ports

import "context"

// NewAccount datos para crear una cuenta en el servicio de identidad.
type NewAccount struct {
	Email       string
	Password    string
	DisplayName string
}

// AccountUpdate cambios a reflejar en la cuenta; los nil no se tocan.
type AccountUpdate struct {
	Email       *string
	DisplayName *string
}

// IsEmpty informa si no hay cambios.
func (u AccountUpdate) IsEmpty() bool {
	return u.Email == nil && u.DisplayName == nil
}

// IdentityService define el puerto de salida hacia el sistema de credenciales
// (Supabase Auth en producción, implementación en memoria en desarrollo y tests).
// Es la fuente de verdad del login y del estado habilitado/deshabilitado.
type IdentityService interface {
	CreateAccount(ctx context.Context, in NewAccount) (id string, err error)
	SetDisabled(ctx context.Context, id string, disabled bool) error
	DeleteAccount(ctx context.Context, id string) error
	UpdateAccount(ctx context.Context, id string, in AccountUpdate) error
}
