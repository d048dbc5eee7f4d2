package dto

import "github.com/shopspring/decimal"

// DashboardSummary totales del encabezado del dashboard.
type DashboardSummary struct {
	TotalItems      int             `json:"total_items"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
	RecentMovements int             `json:"recent_movements"` // últimos 30 días
}

// StockLevelsDTO distribución de artículos por salud de existencias.
type StockLevelsDTO struct {
	OutOfStock  int `json:"out_of_stock"`
	LowStock    int `json:"low_stock"`
	NormalStock int `json:"normal_stock"`
	OverStock   int `json:"over_stock"`
}

// CategoryStatDTO estadística por categoría (conteo, valor y porcentaje).
type CategoryStatDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	ItemCount  int             `json:"item_count"`
	TotalValue decimal.Decimal `json:"total_value"`
	Percentage int             `json:"percentage"`
}

// MonthlyTrendDTO conteos IN/OUT de un mes para la tendencia semestral.
type MonthlyTrendDTO struct {
	Month    string `json:"month"` // etiqueta corta: Jan, Feb, ...
	StockIn  int    `json:"stock_in"`
	StockOut int    `json:"stock_out"`
}

// DashboardResponse respuesta completa de GET /api/dashboard.
type DashboardResponse struct {
	Summary         DashboardSummary   `json:"summary"`
	StockLevels     StockLevelsDTO     `json:"stock_levels"`
	CategoryStats   []CategoryStatDTO  `json:"category_stats"`
	RecentMovements []MovementResponse `json:"recent_movements"`
	MonthlyTrend    []MonthlyTrendDTO  `json:"monthly_trend"`
}

// StockOverviewPointDTO punto mensual del gráfico de stock (6 meses).
type StockOverviewPointDTO struct {
	Month    string `json:"month"`
	InStock  int    `json:"in_stock"`
	LowStock int    `json:"low_stock"`
}

// MovementChartPointDTO punto diario del gráfico de movimientos (7 días).
type MovementChartPointDTO struct {
	Day      string `json:"day"` // Sun, Mon, ...
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"` // siempre positivo para graficar
}

// CategorySliceDTO porción del gráfico de distribución por categoría.
type CategorySliceDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"` // porcentaje redondeado
	Color string `json:"color"`
	Count int    `json:"count"`
}
