package dto

// LowStockAlertDTO entrada del tablero de alertas de stock bajo.
type LowStockAlertDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity"`
	MinStock      int    `json:"min_stock"`
	Priority      string `json:"priority"`       // Critical, Warning, Low
	PriorityColor string `json:"priority_color"` // red, orange, yellow
	Message       string `json:"message"`
}
