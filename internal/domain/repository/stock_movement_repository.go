package repository

import (
	"time"

	"github.com/mnsts/ims-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ItemID   string
	Type     string     // IN, OUT, ADJUSTMENT, TRANSFER
	Reason   string     // búsqueda parcial case-insensitive
	DateFrom *time.Time // inclusive
	DateTo   *time.Time // inclusive (fin de día lo resuelve el caller)
	Limit    int
	Offset   int
}

// MovementWithNames movimiento enriquecido con nombres para historial y dashboard.
type MovementWithNames struct {
	Movement entity.StockMovement
	ItemName string
	ItemSKU  string
	UserName string
}

// StockMovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// List devuelve la página filtrada (orden created_at DESC) y el total sin paginar.
	List(filter MovementFilter) ([]MovementWithNames, int, error)
	ListByItem(itemID string, limit int) ([]MovementWithNames, error)
	// SumByItem devuelve la suma con signo de todos los movimientos del artículo
	// (verificación del invariante de conciliación).
	SumByItem(itemID string) (int, error)
}
