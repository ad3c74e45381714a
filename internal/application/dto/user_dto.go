package dto

import "github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"

// CreateUserRequest entrada para crear un usuario (cuenta + perfil).
// Estado es puntero para distinguir false de ausente.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rol      string `json:"rol"`
	Estado   *bool  `json:"estado"`
}

// UIDRequest cuerpo de las operaciones sobre un usuario existente.
type UIDRequest struct {
	UID string `json:"uid"`
}

// EditUserRequest uid más los campos editables; cualquier otro campo se rechaza.
type EditUserRequest struct {
	UID string `json:"uid"`
	entity.UserPatch
}

// CreatedUser datos devueltos al crear un usuario.
type CreatedUser struct {
	UID string `json:"uid"`
}

// UserResponse perfil de usuario; ID repite el UID (id del documento).
type UserResponse struct {
	ID          string `json:"id"`
	UID         string `json:"uid"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Email       string `json:"email"`
	Rol         string `json:"rol"`
	Estado      bool   `json:"estado"`
	DisplayName string `json:"displayName,omitempty"`
}
