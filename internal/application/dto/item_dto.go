package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo de inventario.
// Quantity es el stock inicial; genera el movimiento IN "Initial stock".
type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode"`
	Quantity    *int            `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	MaxStock    int             `json:"max_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Location    string          `json:"location"`
	CategoryID  string          `json:"category_id"`
	ImageURLs   []string        `json:"image_urls"`
}

// UpdateItemRequest entrada para la edición completa de un artículo.
// Si Quantity difiere del actual, el motor sintetiza el movimiento correctivo.
type UpdateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode"`
	Quantity    *int            `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	MaxStock    int             `json:"max_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Location    string          `json:"location"`
	CategoryID  string          `json:"category_id"`
	ImageURLs   []string        `json:"image_urls"`
}

// ItemResponse salida de un artículo con su clasificación de salud calculada.
type ItemResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	ImageURLs   []string        `json:"image_urls"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	MaxStock    int             `json:"max_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CategoryID  string          `json:"category_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CreatedBy   string          `json:"created_by"`
	IsActive    bool            `json:"is_active"`
	StockHealth string          `json:"stock_health"` // out_of_stock, low, normal, over
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemDetailResponse artículo con sus últimos movimientos (vista de detalle).
type ItemDetailResponse struct {
	ItemResponse
	RecentMovements []MovementResponse `json:"recent_movements"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"pagination"`
}

// ItemListQuery parámetros de búsqueda y orden del listado de artículos.
type ItemListQuery struct {
	PageRequest
	Search    string `query:"search"`
	Category  string `query:"category"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}
