package dto

// APIResponse sobre uniforme de todas las respuestas: message siempre presente,
// data en lecturas/creaciones y error (código estable) en fallos.
type APIResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Códigos de error del sobre.
const (
	CodeInvalidBody = "INVALID_BODY"
	CodeValidation  = "VALIDATION"
	CodeNotFound    = "NOT_FOUND"
	CodeInternal    = "INTERNAL"
)

// IDRequest cuerpo con un único id (lecturas por id).
type IDRequest struct {
	ID any `json:"id"`
}

// CreatedID datos devueltos al crear proyectos.
type CreatedID struct {
	ID string `json:"id"`
}
