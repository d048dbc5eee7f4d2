// Package analytics contiene los casos de uso read-only del dashboard,
// los gráficos y el tablero de alertas de stock bajo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

const (
	dashboardRecentMovements = 5  // movimientos en el widget de actividad reciente
	recentMovementsDays      = 30 // ventana del contador de movimientos recientes
	monthlyTrendMonths       = 6  // meses de la tendencia IN/OUT
)

// DashboardUseCase genera el resumen del inventario para la pantalla principal.
//
// Fuente de datos: AnalyticsRepository (agregaciones read-only) más el
// historial de movimientos. Las consultas independientes se lanzan en paralelo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	movRepo       repository.StockMovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	movRepo repository.StockMovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, movRepo: movRepo}
}

// Get construye la respuesta completa de GET /api/dashboard.
//
// Cinco consultas en paralelo:
//  1. distribución de salud de existencias (totales y niveles)
//  2. valor total del inventario
//  3. estadísticas por categoría
//  4. movimientos de los últimos 30 días + actividad reciente
//  5. tendencia mensual IN/OUT del semestre
func (uc *DashboardUseCase) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -recentMovementsDays)
	trendFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(monthlyTrendMonths - 1), 0)
	trendTo := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, 1, 0)

	type levelsResult struct {
		total  int
		levels repository.StockLevelCounts
		err    error
	}
	type valueResult struct {
		value decimal.Decimal
		err   error
	}
	type categoriesResult struct {
		rows []repository.CategoryStatRow
		err  error
	}
	type activityResult struct {
		count  int
		recent []repository.MovementWithNames
		err    error
	}
	type trendResult struct {
		rows []repository.MonthlyMovementRow
		err  error
	}

	levelsCh := make(chan levelsResult, 1)
	valueCh := make(chan valueResult, 1)
	catsCh := make(chan categoriesResult, 1)
	actCh := make(chan activityResult, 1)
	trendCh := make(chan trendResult, 1)

	go func() {
		total, err := uc.analyticsRepo.CountActiveItems(ctx)
		if err != nil {
			levelsCh <- levelsResult{err: err}
			return
		}
		levels, err := uc.analyticsRepo.StockLevelDistribution(ctx)
		levelsCh <- levelsResult{total: total, levels: levels, err: err}
	}()
	go func() {
		v, err := uc.analyticsRepo.TotalInventoryValue(ctx)
		valueCh <- valueResult{value: v, err: err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.CategoryStats(ctx)
		catsCh <- categoriesResult{rows: rows, err: err}
	}()
	go func() {
		count, err := uc.analyticsRepo.CountMovementsSince(ctx, since)
		if err != nil {
			actCh <- activityResult{err: err}
			return
		}
		recent, _, err := uc.movRepo.List(repository.MovementFilter{Limit: dashboardRecentMovements})
		actCh <- activityResult{count: count, recent: recent, err: err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.MonthlyMovementCounts(ctx, trendFrom, trendTo)
		trendCh <- trendResult{rows: rows, err: err}
	}()

	levels := <-levelsCh
	value := <-valueCh
	cats := <-catsCh
	act := <-actCh
	trend := <-trendCh

	if levels.err != nil {
		return nil, fmt.Errorf("dashboard: niveles de stock: %w", levels.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor del inventario: %w", value.err)
	}
	if cats.err != nil {
		return nil, fmt.Errorf("dashboard: categorías: %w", cats.err)
	}
	if act.err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", act.err)
	}
	if trend.err != nil {
		return nil, fmt.Errorf("dashboard: tendencia mensual: %w", trend.err)
	}

	recent := make([]dto.MovementResponse, 0, len(act.recent))
	for _, row := range act.recent {
		recent = append(recent, dto.MovementWithNamesToResponse(row))
	}

	monthly := make([]dto.MonthlyTrendDTO, 0, len(trend.rows))
	for _, row := range trend.rows {
		monthly = append(monthly, dto.MonthlyTrendDTO{
			Month:    shortMonth(row.Month),
			StockIn:  row.StockIn,
			StockOut: row.StockOut,
		})
	}

	return &dto.DashboardResponse{
		Summary: dto.DashboardSummary{
			TotalItems:      levels.total,
			LowStockItems:   levels.levels.LowStock,
			OutOfStockItems: levels.levels.OutOfStock,
			TotalValue:      value.value.Round(2),
			RecentMovements: act.count,
		},
		StockLevels: dto.StockLevelsDTO{
			OutOfStock:  levels.levels.OutOfStock,
			LowStock:    levels.levels.LowStock,
			NormalStock: levels.levels.Normal,
			OverStock:   levels.levels.OverStock,
		},
		CategoryStats:   categoryStats(cats.rows, levels.total),
		RecentMovements: recent,
		MonthlyTrend:    monthly,
	}, nil
}

// categoryStats calcula el porcentaje de cada categoría sobre el total de artículos.
func categoryStats(rows []repository.CategoryStatRow, totalItems int) []dto.CategoryStatDTO {
	out := make([]dto.CategoryStatDTO, 0, len(rows))
	for _, row := range rows {
		pct := 0
		if totalItems > 0 {
			// Redondeo al entero más cercano sin punto flotante.
			pct = (row.ItemCount*100 + totalItems/2) / totalItems
		}
		out = append(out, dto.CategoryStatDTO{
			ID:         row.CategoryID,
			Name:       row.Name,
			Color:      row.Color,
			ItemCount:  row.ItemCount,
			TotalValue: row.TotalValue.Round(2),
			Percentage: pct,
		})
	}
	return out
}

// shortMonth etiqueta corta del mes, ej: "Jan".
func shortMonth(t time.Time) string {
	return t.Format("Jan")
}
