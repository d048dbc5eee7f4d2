package analytics

import (
	"fmt"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain/repository"
	"github.com/mnsts/ims-api/internal/domain/stock"
)

// alertBoardLimit entradas mostradas en el tablero (las más urgentes primero).
const alertBoardLimit = 10

// AlertsUseCase tablero de alertas de stock bajo para la UI.
type AlertsUseCase struct {
	itemRepo repository.ItemRepository
}

func NewAlertsUseCase(itemRepo repository.ItemRepository) *AlertsUseCase {
	return &AlertsUseCase{itemRepo: itemRepo}
}

// LowStock devuelve los artículos activos en o bajo su mínimo, priorizados.
// La urgencia se recalcula en cada lectura; no hay estado de alerta persistido.
func (uc *AlertsUseCase) LowStock() ([]dto.LowStockAlertDTO, error) {
	rows, err := uc.itemRepo.ListLowStock(alertBoardLimit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LowStockAlertDTO, 0, len(rows))
	for _, row := range rows {
		urgency := stock.AlertUrgency(row.Quantity, row.MinStock)
		out = append(out, dto.LowStockAlertDTO{
			ID:            row.ItemID,
			Name:          row.Name,
			Category:      row.CategoryName,
			Quantity:      row.Quantity,
			MinStock:      row.MinStock,
			Priority:      string(urgency),
			PriorityColor: stock.UrgencyColor(urgency),
			Message:       alertMessage(row.Quantity),
		})
	}
	return out, nil
}

func alertMessage(quantity int) string {
	if quantity == 0 {
		return "Out of stock"
	}
	return fmt.Sprintf("Only %d left in stock", quantity)
}
