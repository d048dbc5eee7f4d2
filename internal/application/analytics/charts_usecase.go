package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

const (
	stockOverviewMonths = 6 // puntos del gráfico de stock
	movementChartDays   = 7 // puntos del gráfico semanal
)

// ChartsUseCase series de datos para los tres gráficos del frontend.
type ChartsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

func NewChartsUseCase(analyticsRepo repository.AnalyticsRepository) *ChartsUseCase {
	return &ChartsUseCase{analyticsRepo: analyticsRepo}
}

// StockOverview serie mensual aproximada de los últimos 6 meses: existencias
// totales y artículos bajos contando solo lo creado hasta el corte de cada mes.
// Es una aproximación histórica (usa cantidades actuales), suficiente para la
// tendencia visual del gráfico.
func (uc *ChartsUseCase) StockOverview(ctx context.Context) ([]dto.StockOverviewPointDTO, error) {
	now := time.Now()
	points := make([]dto.StockOverviewPointDTO, 0, stockOverviewMonths)

	for i := stockOverviewMonths - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		cutoff := monthStart.AddDate(0, 1, 0)

		inStock, err := uc.analyticsRepo.SumQuantityCreatedBefore(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("gráfico de stock: existencias al corte %s: %w", monthStart.Format("2006-01"), err)
		}
		low, err := uc.analyticsRepo.CountLowStockCreatedBefore(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("gráfico de stock: artículos bajos al corte %s: %w", monthStart.Format("2006-01"), err)
		}
		points = append(points, dto.StockOverviewPointDTO{
			Month:    shortMonth(monthStart),
			InStock:  inStock,
			LowStock: low,
		})
	}
	return points, nil
}

// StockMovements unidades entrantes y salientes por día de los últimos 7 días.
// Los días sin movimientos aparecen con ceros para que el gráfico no tenga huecos.
func (uc *ChartsUseCase) StockMovements(ctx context.Context) ([]dto.MovementChartPointDTO, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -(movementChartDays - 1))
	to := today.AddDate(0, 0, 1)

	rows, err := uc.analyticsRepo.DailyMovementSums(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("gráfico de movimientos: %w", err)
	}

	byDay := make(map[string]repository.DailyMovementRow, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format("2006-01-02")] = row
	}

	points := make([]dto.MovementChartPointDTO, 0, movementChartDays)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		p := dto.MovementChartPointDTO{Day: shortWeekday(d)}
		if row, ok := byDay[d.Format("2006-01-02")]; ok {
			p.Inbound = row.Inbound
			p.Outbound = row.Outbound
		}
		points = append(points, p)
	}
	return points, nil
}

// CategoryDistribution porciones del gráfico de torta por categoría, con el
// porcentaje de artículos de cada una.
func (uc *ChartsUseCase) CategoryDistribution(ctx context.Context) ([]dto.CategorySliceDTO, error) {
	rows, err := uc.analyticsRepo.CategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("distribución por categoría: %w", err)
	}

	total := 0
	for _, row := range rows {
		total += row.ItemCount
	}

	out := make([]dto.CategorySliceDTO, 0, len(rows))
	for _, row := range rows {
		pct := 0
		if total > 0 {
			pct = (row.ItemCount*100 + total/2) / total
		}
		out = append(out, dto.CategorySliceDTO{
			Name:  row.Name,
			Value: pct,
			Color: row.Color,
			Count: row.ItemCount,
		})
	}
	return out, nil
}

// shortWeekday etiqueta corta del día, ej: "Mon".
func shortWeekday(t time.Time) string {
	return t.Format("Mon")
}
