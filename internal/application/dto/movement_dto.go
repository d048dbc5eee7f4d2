package dto

import "time"

// RecordMovementRequest body para POST /api/movements.
// Quantity es una magnitud positiva; el tipo determina el signo.
type RecordMovementRequest struct {
	ItemID   string `json:"item_id"`
	Type     string `json:"type"` // IN, OUT, ADJUSTMENT, TRANSFER
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name,omitempty"`
	ItemSKU   string    `json:"item_sku,omitempty"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordMovementResponse resultado de registrar un movimiento.
type RecordMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Item     ItemResponse     `json:"item"`
}

// MovementListQuery filtros del historial de movimientos.
type MovementListQuery struct {
	PageRequest
	ItemID   string `query:"item_id"`
	Type     string `query:"type"`
	Reason   string `query:"reason"`
	DateFrom string `query:"date_from"` // YYYY-MM-DD
	DateTo   string `query:"date_to"`   // YYYY-MM-DD, inclusive hasta fin de día
}

// MovementListResponse historial paginado.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"pagination"`
}
