package entity

import "time"

// DefaultCategoryColor color por defecto para categorías sin color asignado.
const DefaultCategoryColor = "#6B7280"

// Category representa una categoría de artículos (nombre único).
// No puede eliminarse mientras tenga artículos activos; los inactivos
// se desvinculan (CategoryID vacío) para permitir el borrado.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string // hex, ej. "#2D5F3F"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
