// Package stock contiene las funciones puras de clasificación de salud de
// existencias. No se persiste ningún estado: la clasificación se recalcula en
// cada lectura a partir de quantity y los umbrales del artículo.
package stock

// Health clasificación de existencias respecto a MinStock/MaxStock.
type Health string

const (
	HealthOutOfStock Health = "out_of_stock" // quantity == 0
	HealthLow        Health = "low"          // 0 < quantity <= minStock
	HealthNormal     Health = "normal"       // minStock < quantity < maxStock
	HealthOver       Health = "over"         // quantity >= maxStock
)

// Urgency prioridad de alerta dentro de Low/OutOfStock.
type Urgency string

const (
	UrgencyCritical Urgency = "Critical" // quantity == 0 o quantity <= minStock*0.5
	UrgencyWarning  Urgency = "Warning"  // quantity <= minStock*0.8
	UrgencyLow      Urgency = "Low"      // el resto, aún <= minStock
)

// Colores de prioridad usados por el tablero de alertas.
const (
	ColorCritical = "red"
	ColorWarning  = "orange"
	ColorLow      = "yellow"
)

// Classify devuelve la salud de existencias para quantity contra los umbrales.
// Bordes: <= para Low, < estricto para el tope de Normal, >= para Over.
func Classify(quantity, minStock, maxStock int) Health {
	switch {
	case quantity == 0:
		return HealthOutOfStock
	case quantity <= minStock:
		return HealthLow
	case quantity < maxStock:
		return HealthNormal
	default:
		return HealthOver
	}
}

// AlertUrgency devuelve la prioridad de alerta para un artículo en Low/Out.
// Los cortes 0.5 y 0.8 se comparan sin redondear (quantity*10 vs minStock*5/8
// evita aritmética de punto flotante sobre enteros).
func AlertUrgency(quantity, minStock int) Urgency {
	if quantity == 0 {
		return UrgencyCritical
	}
	if quantity*10 <= minStock*5 {
		return UrgencyCritical
	}
	if quantity*10 <= minStock*8 {
		return UrgencyWarning
	}
	return UrgencyLow
}

// UrgencyColor devuelve el color de tablero asociado a la urgencia.
func UrgencyColor(u Urgency) string {
	switch u {
	case UrgencyCritical:
		return ColorCritical
	case UrgencyWarning:
		return ColorWarning
	default:
		return ColorLow
	}
}

// Shortage devuelve el faltante respecto al mínimo: max(0, minStock-quantity).
func Shortage(quantity, minStock int) int {
	if quantity >= minStock {
		return 0
	}
	return minStock - quantity
}

// IsLow indica si el artículo está en o por debajo de su mínimo (incluye agotado).
func IsLow(quantity, minStock int) bool {
	return quantity <= minStock
}
