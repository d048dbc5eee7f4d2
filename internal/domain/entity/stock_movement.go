package entity

import "time"

// Tipos de movimiento de inventario.
// Quantity es siempre una magnitud positiva: el signo lo determina el tipo.
// IN y ADJUSTMENT suman; OUT y TRANSFER restan. Las correcciones a la baja se
// expresan como OUT con razón de corrección, nunca como ADJUSTMENT negativo.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (siempre suma)
	MovementTypeTRANSFER   = "TRANSFER"   // préstamo/traslado fuera de bodega (resta)
)

// Razones sintetizadas por el motor de inventario.
const (
	ReasonInitialStock    = "Initial stock"
	ReasonStockAdjustment = "Stock adjustment"
	ReasonItemDeleted     = "Item deleted"
)

// ValidMovementType indica si type es uno de los cuatro tipos enumerados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// Additive indica si el tipo suma existencias (IN/ADJUSTMENT) o las resta (OUT/TRANSFER).
func Additive(t string) bool {
	return t == MovementTypeIN || t == MovementTypeADJUSTMENT
}

// StockMovement representa un movimiento del libro de inventario.
// Es append-only: una vez creado nunca se modifica ni se borra.
// Invariante de conciliación: para cada artículo, la suma con signo de sus
// movimientos es igual a InventoryItem.Quantity en todo momento.
type StockMovement struct {
	ID        string
	ItemID    string
	UserID    string // usuario que ejecutó el movimiento
	Type      string // IN, OUT, ADJUSTMENT, TRANSFER
	Quantity  int    // magnitud, siempre > 0
	Reason    string // obligatorio
	Notes     string
	CreatedAt time.Time
}

// SignedQuantity devuelve el delta con signo que este movimiento aplicó.
func (m *StockMovement) SignedQuantity() int {
	if Additive(m.Type) {
		return m.Quantity
	}
	return -m.Quantity
}
