package entity

// Roles habituales del sistema; el campo rol no se restringe a esta lista.
const (
	RoleAdmin   = "admin"
	RoleTester  = "tester"
	RoleLider   = "lider"
	RoleCliente = "cliente"
)

// User representa el perfil de un usuario en la colección "users".
// UID coincide siempre con el id de la cuenta en el servicio de identidad y
// Estado es el inverso del flag disabled del proveedor.
type User struct {
	UID         string `json:"uid"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Email       string `json:"email"`
	Rol         string `json:"rol"`
	Estado      bool   `json:"estado"`
	DisplayName string `json:"displayName,omitempty"`
}

// FullName nombre a mostrar en el proveedor de identidad.
func (u *User) FullName() string {
	return u.Nombre + " " + u.Apellido
}

// Fields devuelve el documento a persistir.
func (u *User) Fields() map[string]any {
	f := map[string]any{
		"uid":      u.UID,
		"nombre":   u.Nombre,
		"apellido": u.Apellido,
		"email":    u.Email,
		"rol":      u.Rol,
		"estado":   u.Estado,
	}
	if u.DisplayName != "" {
		f["displayName"] = u.DisplayName
	}
	return f
}

// UserPatch campos editables de un usuario. Los nil no se tocan.
// Estado no es editable aquí: se cambia con desactivar/reactivar para mantener
// sincronizado el proveedor de identidad.
type UserPatch struct {
	Nombre      *string `json:"nombre"`
	Apellido    *string `json:"apellido"`
	Email       *string `json:"email"`
	Rol         *string `json:"rol"`
	DisplayName *string `json:"displayName"`
}

// IsEmpty informa si el parche no modifica nada.
func (p UserPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields devuelve solo los campos presentes.
func (p UserPatch) Fields() map[string]any {
	f := map[string]any{}
	if p.Nombre != nil {
		f["nombre"] = *p.Nombre
	}
	if p.Apellido != nil {
		f["apellido"] = *p.Apellido
	}
	if p.Email != nil {
		f["email"] = *p.Email
	}
	if p.Rol != nil {
		f["rol"] = *p.Rol
	}
	if p.DisplayName != nil {
		f["displayName"] = *p.DisplayName
	}
	return f
}

// Revert construye el parche que deja los campos de p con los valores actuales de u.
func (p UserPatch) Revert(u *User) UserPatch {
	var r UserPatch
	if p.Nombre != nil {
		r.Nombre = &u.Nombre
	}
	if p.Apellido != nil {
		r.Apellido = &u.Apellido
	}
	if p.Email != nil {
		r.Email = &u.Email
	}
	if p.Rol != nil {
		r.Rol = &u.Rol
	}
	if p.DisplayName != nil {
		r.DisplayName = &u.DisplayName
	}
	return r
}
