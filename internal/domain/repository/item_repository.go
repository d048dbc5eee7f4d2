package repository

import "github.com/mnsts/ims-api/internal/domain/entity"

// ItemFilter filtros de listado para artículos activos.
type ItemFilter struct {
	Search     string // busca en name, description y sku (case-insensitive)
	CategoryID string
	SortBy     string // name, quantity, unit_price, created_at
	SortOrder  string // asc, desc
	Limit      int
	Offset     int
}

// LowStockRow fila del escaneo de stock bajo (artículos activos con quantity <= min_stock).
// CategoryName ya viene resuelto para el correo de alertas y el tablero.
type LowStockRow struct {
	ItemID       string
	Name         string
	SKU          string
	CategoryName string // "No category" si el artículo quedó desvinculado
	Quantity     int
	MinStock     int
}

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// UpdateQuantity y GetForUpdate solo deben usarse dentro de la transacción
// del motor de inventario; ningún otro camino escribe quantity.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para
	// serializar el read-modify-write de quantity por artículo.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	UpdateQuantity(id string, quantity int) error
	SetActive(id string, active bool) error
	List(filter ItemFilter) ([]*entity.InventoryItem, int, error)
	ListActive() ([]*entity.InventoryItem, error)
	// ListLowStock devuelve los artículos activos en o bajo su mínimo,
	// ordenados por ratio quantity/min_stock ascendente (más urgente primero).
	ListLowStock(limit int) ([]LowStockRow, error)
	CountActiveByCategory(categoryID string) (int, error)
	// DetachCategory desvincula (category_id = NULL) los artículos INACTIVOS
	// de la categoría; los activos bloquean el borrado de la categoría.
	DetachCategory(categoryID string) error
}
