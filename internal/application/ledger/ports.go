package ledger

import (
	"context"

	"github.com/mnsts/ims-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: el movimiento y la cantidad
// del artículo se escriben juntos o no se escribe ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// LowStockItem registro que recibe el colaborador de notificaciones.
type LowStockItem struct {
	Name         string
	SKU          string
	Category     string
	CurrentStock int
	MinStock     int
	Shortage     int // max(0, MinStock-CurrentStock)
}

// Notifier colaborador de alertas de stock bajo (correo).
// Contrato: best-effort. El motor nunca propaga sus errores al caller;
// se invoca en una goroutine separada después del commit.
type Notifier interface {
	SendLowStockAlert(ctx context.Context, items []LowStockItem) error
}
