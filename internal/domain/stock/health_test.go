package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnsts/ims-api/internal/domain/stock"
)

// Bordes de clasificación con minStock=5, maxStock=20:
// 0 agotado, 5 bajo (<=), 6 normal, 19 normal (< estricto), 20 sobre-stock (>=).
func TestClassify_Bordes(t *testing.T) {
	const minStock, maxStock = 5, 20

	cases := []struct {
		quantity int
		want     stock.Health
	}{
		{0, stock.HealthOutOfStock},
		{1, stock.HealthLow},
		{minStock, stock.HealthLow},
		{minStock + 1, stock.HealthNormal},
		{maxStock - 1, stock.HealthNormal},
		{maxStock, stock.HealthOver},
		{maxStock + 50, stock.HealthOver},
	}
	for _, tc := range cases {
		got := stock.Classify(tc.quantity, minStock, maxStock)
		assert.Equal(t, tc.want, got, "quantity=%d", tc.quantity)
	}
}

// Urgencia con minStock=5: 0 crítico, 2 crítico (<=2.5), 4 warning (<=4),
// 5 bajo (aún <= minStock pero sobre el corte de 0.8).
func TestAlertUrgency_Cortes(t *testing.T) {
	const minStock = 5

	cases := []struct {
		quantity int
		want     stock.Urgency
	}{
		{0, stock.UrgencyCritical},
		{1, stock.UrgencyCritical},
		{2, stock.UrgencyCritical}, // 2 <= 5*0.5
		{3, stock.UrgencyWarning},  // 3 <= 5*0.8
		{4, stock.UrgencyWarning},  // 4 <= 5*0.8 (borde exacto)
		{5, stock.UrgencyLow},
	}
	for _, tc := range cases {
		got := stock.AlertUrgency(tc.quantity, minStock)
		assert.Equal(t, tc.want, got, "quantity=%d", tc.quantity)
	}
}

// El corte 0.5/0.8 no debe redondearse: con minStock=10, quantity=5 es el
// borde exacto de crítico y quantity=8 el borde exacto de warning.
func TestAlertUrgency_SinRedondeo(t *testing.T) {
	assert.Equal(t, stock.UrgencyCritical, stock.AlertUrgency(5, 10))
	assert.Equal(t, stock.UrgencyWarning, stock.AlertUrgency(6, 10))
	assert.Equal(t, stock.UrgencyWarning, stock.AlertUrgency(8, 10))
	assert.Equal(t, stock.UrgencyLow, stock.AlertUrgency(9, 10))
}

func TestShortage(t *testing.T) {
	assert.Equal(t, 5, stock.Shortage(0, 5))
	assert.Equal(t, 1, stock.Shortage(4, 5))
	assert.Equal(t, 0, stock.Shortage(5, 5))
	assert.Equal(t, 0, stock.Shortage(9, 5))
}

func TestUrgencyColor(t *testing.T) {
	assert.Equal(t, stock.ColorCritical, stock.UrgencyColor(stock.UrgencyCritical))
	assert.Equal(t, stock.ColorWarning, stock.UrgencyColor(stock.UrgencyWarning))
	assert.Equal(t, stock.ColorLow, stock.UrgencyColor(stock.UrgencyLow))
}
