package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnsts/ims-api/internal/application/analytics"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

// stubLowStockRepo solo el escaneo de stock bajo; el resto entra en pánico.
type stubLowStockRepo struct {
	repository.ItemRepository

	rows      []repository.LowStockRow
	lastLimit int
}

func (r *stubLowStockRepo) ListLowStock(limit int) ([]repository.LowStockRow, error) {
	r.lastLimit = limit
	if limit > 0 && len(r.rows) > limit {
		return r.rows[:limit], nil
	}
	return r.rows, nil
}

func TestAlertasLowStock(t *testing.T) {
	// Filas ya ordenadas por urgencia (ratio quantity/min ascendente), como
	// las devuelve el repositorio.
	repo := &stubLowStockRepo{rows: []repository.LowStockRow{
		{ItemID: "item-1", Name: "Chalk box", CategoryName: "Supplies", Quantity: 0, MinStock: 10},
		{ItemID: "item-2", Name: "Volleyball", CategoryName: "Sports", Quantity: 2, MinStock: 6},
		{ItemID: "item-3", Name: "Stapler", CategoryName: "Office", Quantity: 5, MinStock: 6},
	}}
	uc := analytics.NewAlertsUseCase(repo)

	alerts, err := uc.LowStock()
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, 10, repo.lastLimit, "el tablero pide como máximo 10 entradas")

	// Agotado → Critical/red con mensaje de agotamiento.
	assert.Equal(t, "Critical", alerts[0].Priority)
	assert.Equal(t, "red", alerts[0].PriorityColor)
	assert.Equal(t, "Out of stock", alerts[0].Message)

	// 2 de 6 → bajo el 50% del mínimo → Critical.
	assert.Equal(t, "Critical", alerts[1].Priority)
	assert.Equal(t, "Only 2 left in stock", alerts[1].Message)

	// 5 de 6 → sobre el 80% del mínimo → Low/yellow.
	assert.Equal(t, "Low", alerts[2].Priority)
	assert.Equal(t, "yellow", alerts[2].PriorityColor)
}

func TestAlertasLowStockVacio(t *testing.T) {
	uc := analytics.NewAlertsUseCase(&stubLowStockRepo{})

	alerts, err := uc.LowStock()
	require.NoError(t, err)
	assert.Empty(t, alerts, "sin artículos bajo mínimo el tablero queda vacío")
}
