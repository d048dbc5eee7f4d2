package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo del inventario escolar.
// Quantity es un valor derivado del historial de movimientos: solo el motor de
// inventario (application/ledger) puede escribirlo, siempre junto al movimiento
// que lo origina y en la misma transacción.
type InventoryItem struct {
	ID          string
	SKU         string // código único de negocio
	Barcode     string // opcional
	Name        string
	Description string
	Location    string
	ImageURLs   []string
	Quantity    int             // existencias actuales, >= 0 siempre
	MinStock    int
	MaxStock    int             // MaxStock > MinStock
	UnitPrice   decimal.Decimal // precio unitario, no negativo
	CategoryID  string          // vacío solo para artículos inactivos desvinculados
	CreatedBy   string          // UserID del creador (auditoría, no permisos)
	IsActive    bool            // soft-delete: false = dado de baja
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalValue devuelve el valor del inventario del artículo (precio * existencias).
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
