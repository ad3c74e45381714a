package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleServiceRole es el rol que Supabase asigna a la clave con permisos de administración.
const RoleServiceRole = "service_role"

// KeyClaims claims presentes en las claves de API de Supabase (anon / service_role).
type KeyClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Ref  string `json:"ref"`
}

// InspectKey decodifica una clave de API de Supabase sin verificar la firma
// (el secreto de firma lo conoce solo el proveedor) y devuelve sus claims.
// Falla si la clave no es un JWT o si ya expiró.
func InspectKey(key string) (*KeyClaims, error) {
	if key == "" {
		return nil, fmt.Errorf("jwt: clave vacía")
	}
	claims := &KeyClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return nil, fmt.Errorf("jwt: clave con formato inválido: %w", err)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("jwt: clave expirada el %s", claims.ExpiresAt.Format(time.RFC3339))
	}
	return claims, nil
}

// RequireServiceRole valida que la clave tenga el rol service_role, necesario
// para la API de administración de usuarios.
func RequireServiceRole(key string) error {
	claims, err := InspectKey(key)
	if err != nil {
		return err
	}
	if claims.Role != RoleServiceRole {
		return fmt.Errorf("jwt: se esperaba rol %q y la clave tiene %q", RoleServiceRole, claims.Role)
	}
	return nil
}
