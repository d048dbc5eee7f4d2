package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mnsts/ims-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y los gráficos.
// Siempre va contra el pool; ninguna de estas consultas participa en la
// transacción del motor de inventario.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountActiveItems cuenta los artículos activos del inventario.
func (r *AnalyticsRepo) CountActiveItems(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE is_active = true`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountActiveItems: %w", err)
	}
	return count, nil
}

// TotalInventoryValue suma quantity × unit_price de los artículos activos.
// COALESCE devuelve cero con inventario vacío.
func (r *AnalyticsRepo) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM inventory_items WHERE is_active = true`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.TotalInventoryValue: %w", err)
	}
	return total, nil
}

// StockLevelDistribution clasifica los artículos activos por salud de
// existencias con los mismos bordes que stock.Classify.
func (r *AnalyticsRepo) StockLevelDistribution(ctx context.Context) (repository.StockLevelCounts, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE quantity = 0)                                     AS out_of_stock,
	    COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= min_stock)           AS low_stock,
	    COUNT(*) FILTER (WHERE quantity > min_stock AND quantity < max_stock)    AS normal_stock,
	    COUNT(*) FILTER (WHERE quantity >= max_stock)                            AS over_stock
	FROM inventory_items
	WHERE is_active = true`

	var counts repository.StockLevelCounts
	err := r.pool.QueryRow(ctx, query).Scan(
		&counts.OutOfStock, &counts.LowStock, &counts.Normal, &counts.OverStock)
	if err != nil {
		return repository.StockLevelCounts{}, fmt.Errorf("analytics.StockLevelDistribution: %w", err)
	}
	return counts, nil
}

// CategoryStats conteo y valor del inventario activo por categoría,
// ordenado por número de artículos descendente.
func (r *AnalyticsRepo) CategoryStats(ctx context.Context) ([]repository.CategoryStatRow, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    c.color,
	    COUNT(i.id) FILTER (WHERE i.is_active)                                   AS item_count,
	    COALESCE(SUM(i.quantity * i.unit_price) FILTER (WHERE i.is_active), 0)   AS total_value
	FROM categories c
	LEFT JOIN inventory_items i ON i.category_id = c.id
	GROUP BY c.id, c.name, c.color
	ORDER BY item_count DESC, c.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.CategoryStats: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStatRow
	for rows.Next() {
		var row repository.CategoryStatRow
		if err := rows.Scan(&row.CategoryID, &row.Name, &row.Color, &row.ItemCount, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.CategoryStats scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountMovementsSince cuenta los movimientos registrados desde la fecha dada.
func (r *AnalyticsRepo) CountMovementsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_movements WHERE created_at >= $1`, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountMovementsSince: %w", err)
	}
	return count, nil
}

// MonthlyMovementCounts devuelve un registro por mes en [from, to).
// generate_series garantiza meses sin movimientos con conteos en cero.
func (r *AnalyticsRepo) MonthlyMovementCounts(ctx context.Context, from, to time.Time) ([]repository.MonthlyMovementRow, error) {
	const query = `
	SELECT
	    months.month,
	    COUNT(m.id) FILTER (WHERE m.type IN ('IN', 'ADJUSTMENT'))  AS stock_in,
	    COUNT(m.id) FILTER (WHERE m.type IN ('OUT', 'TRANSFER'))   AS stock_out
	FROM generate_series(date_trunc('month', $1::timestamptz), $2::timestamptz - interval '1 month', interval '1 month') AS months(month)
	LEFT JOIN stock_movements m
	    ON date_trunc('month', m.created_at) = months.month
	GROUP BY months.month
	ORDER BY months.month`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlyMovementCounts: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyMovementRow
	for rows.Next() {
		var row repository.MonthlyMovementRow
		if err := rows.Scan(&row.Month, &row.StockIn, &row.StockOut); err != nil {
			return nil, fmt.Errorf("analytics.MonthlyMovementCounts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DailyMovementSums unidades entrantes y salientes por día en [from, to).
// Solo devuelve los días con movimientos; el caso de uso rellena los huecos.
func (r *AnalyticsRepo) DailyMovementSums(ctx context.Context, from, to time.Time) ([]repository.DailyMovementRow, error) {
	const query = `
	SELECT
	    date_trunc('day', created_at)                                                   AS day,
	    COALESCE(SUM(quantity) FILTER (WHERE type IN ('IN', 'ADJUSTMENT')), 0)          AS inbound,
	    COALESCE(SUM(quantity) FILTER (WHERE type IN ('OUT', 'TRANSFER')), 0)           AS outbound
	FROM stock_movements
	WHERE created_at >= $1 AND created_at < $2
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.DailyMovementSums: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyMovementRow
	for rows.Next() {
		var row repository.DailyMovementRow
		if err := rows.Scan(&row.Day, &row.Inbound, &row.Outbound); err != nil {
			return nil, fmt.Errorf("analytics.DailyMovementSums scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SumQuantityCreatedBefore suma las existencias actuales de los artículos
// activos creados antes de t (serie histórica aproximada del gráfico de stock).
func (r *AnalyticsRepo) SumQuantityCreatedBefore(ctx context.Context, t time.Time) (int, error) {
	var sum int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_items WHERE is_active = true AND created_at < $1`, t,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("analytics.SumQuantityCreatedBefore: %w", err)
	}
	return sum, nil
}

// CountLowStockCreatedBefore cuenta los artículos activos bajo mínimo creados antes de t.
func (r *AnalyticsRepo) CountLowStockCreatedBefore(ctx context.Context, t time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE is_active = true AND quantity <= min_stock AND created_at < $1`, t,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountLowStockCreatedBefore: %w", err)
	}
	return count, nil
}
