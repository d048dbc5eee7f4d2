package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelCounts distribución de artículos activos por salud de existencias.
type StockLevelCounts struct {
	OutOfStock int
	LowStock   int
	Normal     int
	OverStock  int
}

// CategoryStatRow estadística de una categoría para el dashboard.
type CategoryStatRow struct {
	CategoryID string
	Name       string
	Color      string
	ItemCount  int
	TotalValue decimal.Decimal
}

// MonthlyMovementRow conteos IN/OUT de un mes para la tendencia del dashboard.
type MonthlyMovementRow struct {
	Month    time.Time // primer día del mes
	StockIn  int
	StockOut int
}

// DailyMovementRow sumas de unidades movidas en un día para el gráfico semanal.
type DailyMovementRow struct {
	Day      time.Time
	Inbound  int
	Outbound int
}

// AnalyticsRepository consultas read-only de agregación para dashboard y gráficos.
// Los lectores toleran snapshots eventualmente consistentes; no requieren locks.
type AnalyticsRepository interface {
	CountActiveItems(ctx context.Context) (int, error)
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	StockLevelDistribution(ctx context.Context) (StockLevelCounts, error)
	CategoryStats(ctx context.Context) ([]CategoryStatRow, error)
	CountMovementsSince(ctx context.Context, since time.Time) (int, error)
	// MonthlyMovementCounts devuelve un registro por mes en [from, to),
	// incluyendo meses sin movimientos (conteos en cero).
	MonthlyMovementCounts(ctx context.Context, from, to time.Time) ([]MonthlyMovementRow, error)
	// DailyMovementSums devuelve unidades IN/ADJUSTMENT (inbound) y
	// OUT/TRANSFER (outbound) por día en [from, to).
	DailyMovementSums(ctx context.Context, from, to time.Time) ([]DailyMovementRow, error)
	// SumQuantityCreatedBefore suma las existencias actuales de los artículos
	// creados antes de t (serie histórica aproximada del gráfico de stock).
	SumQuantityCreatedBefore(ctx context.Context, t time.Time) (int, error)
	CountLowStockCreatedBefore(ctx context.Context, t time.Time) (int, error)
}
