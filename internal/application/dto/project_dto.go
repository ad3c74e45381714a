package dto

import (
	"encoding/json"
	"time"
)

// CreateProjectRequest entrada para crear un proyecto.
// Hitos llega crudo para poder rechazar valores que no sean arreglo.
type CreateProjectRequest struct {
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	FechaInicio string          `json:"fechaInicio"`
	FechaFin    string          `json:"fechaFin"`
	Estado      string          `json:"estado"`
	Encargado   string          `json:"encargado"`
	Equipo      []string        `json:"equipo"`
	Hitos       json.RawMessage `json:"hitos"`
}

// EditProjectRequest id más los campos editables (todos opcionales).
type EditProjectRequest struct {
	ID          string          `json:"id"`
	Nombre      *string         `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	FechaInicio *string         `json:"fechaInicio"`
	FechaFin    *string         `json:"fechaFin"`
	Estado      *string         `json:"estado"`
	Encargado   *string         `json:"encargado"`
	Equipo      *[]string       `json:"equipo"`
	Hitos       json.RawMessage `json:"hitos"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID          string     `json:"id"`
	Nombre      string     `json:"nombre"`
	Descripcion string     `json:"descripcion"`
	FechaInicio string     `json:"fechaInicio"`
	FechaFin    string     `json:"fechaFin"`
	Estado      string     `json:"estado"`
	Encargado   string     `json:"encargado"`
	Equipo      []string   `json:"equipo"`
	Hitos       []any      `json:"hitos"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
