package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
	"github.com/mnsts/ims-api/internal/domain/stock"
	"github.com/mnsts/ims-api/pkg/logger"
)

// Valores por defecto de umbrales cuando el caller no los envía.
const (
	defaultMinStock = 5
	defaultMaxStock = 100
)

// alertDispatchTimeout límite de la goroutine de notificación desprendida.
const alertDispatchTimeout = 30 * time.Second

// LedgerUseCase es el motor del libro de inventario: el único camino de
// escritura sobre InventoryItem.Quantity. Cada mutación produce su
// StockMovement en la misma transacción (fila bloqueada con SELECT FOR UPDATE)
// y, tras el commit, dispara la alerta de stock bajo en modo fire-and-forget.
type LedgerUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	notifier     Notifier
	log          *logger.Logger
}

// NewLedgerUseCase construye el motor. notifier puede ser nil (alertas deshabilitadas).
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	notifier Notifier,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		notifier:     notifier,
		log:          log,
	}
}

// RecordMovement valida, bloquea la fila del artículo, aplica la regla de
// conciliación y persiste movimiento + cantidad como una unidad atómica.
//
//	nueva_cantidad = actual + quantity  (IN, ADJUSTMENT)
//	nueva_cantidad = actual - quantity  (OUT, TRANSFER)
//
// Una salida que dejaría la cantidad negativa falla con ErrInsufficientStock
// sin escribir nada.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.RecordMovementResponse, error) {
	if in.ItemID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		mov     *entity.StockMovement
		updated *entity.InventoryItem
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		// Bloquea la fila: dos OUT concurrentes no pueden pasar ambos la
		// verificación de stock contra una cantidad obsoleta.
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.IsActive {
			return domain.ErrNotFound
		}

		newQty := item.Quantity
		if entity.Additive(in.Type) {
			newQty += in.Quantity
		} else {
			newQty -= in.Quantity
			if newQty < 0 {
				return domain.ErrInsufficientStock
			}
		}

		now := time.Now()
		mov = &entity.StockMovement{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			UserID:    userID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			Notes:     in.Notes,
			CreatedAt: now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := itemRepo.UpdateQuantity(item.ID, newQty); err != nil {
			return err
		}
		item.Quantity = newQty
		item.UpdatedAt = now
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Disparo post-commit: si una salida cruzó el mínimo, refrescar el tablero
	// completo de alertas (todos los artículos bajos, no solo este).
	if !entity.Additive(in.Type) && stock.IsLow(updated.Quantity, updated.MinStock) {
		uc.dispatchLowStockAlert()
	}

	resp := &dto.RecordMovementResponse{
		Movement: dto.MovementToResponse(mov),
		Item:     dto.ItemToResponse(updated),
	}
	return resp, nil
}

// CreateItem crea un artículo con su movimiento implícito de stock inicial
// (IN "Initial stock") en una sola transacción.
func (uc *LedgerUseCase) CreateItem(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := uc.validateItemFields(in.Name, in.SKU, in.CategoryID, in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	minStock, maxStock, err := normalizeThresholds(in.MinStock, in.MaxStock)
	if err != nil {
		return nil, err
	}

	existing, err := uc.itemRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Barcode:     in.Barcode,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		ImageURLs:   in.ImageURLs,
		Quantity:    *in.Quantity,
		MinStock:    minStock,
		MaxStock:    maxStock,
		UnitPrice:   in.UnitPrice,
		CategoryID:  in.CategoryID,
		CreatedBy:   userID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		// Stock inicial cero no genera movimiento: la magnitud debe ser > 0.
		if item.Quantity > 0 {
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				UserID:    userID,
				Type:      entity.MovementTypeIN,
				Quantity:  item.Quantity,
				Reason:    entity.ReasonInitialStock,
				Notes:     "Item added to inventory",
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ItemToResponse(item)
	return &resp, nil
}

// UpdateItem aplica la edición completa de un artículo. Si la cantidad cambia,
// sintetiza el movimiento correctivo (IN/OUT de |diff|, razón "Stock adjustment")
// dentro de la misma transacción que persiste la edición, preservando el
// invariante de conciliación también para ediciones directas.
func (uc *LedgerUseCase) UpdateItem(ctx context.Context, userID, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateItemFields(in.Name, in.SKU, in.CategoryID, in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	minStock, maxStock, err := normalizeThresholds(in.MinStock, in.MaxStock)
	if err != nil {
		return nil, err
	}

	current, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != current.SKU {
		dup, err := uc.itemRepo.GetBySKU(in.SKU)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	var updated *entity.InventoryItem
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		// diff contra la cantidad bloqueada, no contra la lectura previa:
		// un movimiento concurrente pudo haberla cambiado.
		diff := *in.Quantity - item.Quantity
		if diff != 0 {
			movType := entity.MovementTypeIN
			if diff < 0 {
				movType = entity.MovementTypeOUT
			}
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				UserID:    userID,
				Type:      movType,
				Quantity:  abs(diff),
				Reason:    entity.ReasonStockAdjustment,
				Notes:     quantityChangeNote(item.Quantity, *in.Quantity),
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		item.Name = in.Name
		item.Description = in.Description
		item.SKU = in.SKU
		item.Barcode = in.Barcode
		item.Location = in.Location
		item.ImageURLs = in.ImageURLs
		item.Quantity = *in.Quantity
		item.MinStock = minStock
		item.MaxStock = maxStock
		item.UnitPrice = in.UnitPrice
		item.CategoryID = in.CategoryID
		item.UpdatedAt = now
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ItemToResponse(updated)
	return &resp, nil
}

// DeactivateItem da de baja un artículo: registra la salida final de todas sus
// existencias (razón "Item deleted") y lo marca inactivo. La cantidad histórica
// se conserva; el artículo sale de las vistas activas y del escaneo de alertas.
func (uc *LedgerUseCase) DeactivateItem(ctx context.Context, userID, itemID string) (*dto.RecordMovementResponse, error) {
	if itemID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		mov  *entity.StockMovement
		item *entity.InventoryItem
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		var err error
		item, err = itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.IsActive {
			return domain.ErrItemInactive
		}

		now := time.Now()
		if item.Quantity > 0 {
			mov = &entity.StockMovement{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				UserID:    userID,
				Type:      entity.MovementTypeOUT,
				Quantity:  item.Quantity,
				Reason:    entity.ReasonItemDeleted,
				Notes:     "Item removed from inventory",
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		if err := itemRepo.SetActive(item.ID, false); err != nil {
			return err
		}
		item.IsActive = false
		item.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.RecordMovementResponse{Item: dto.ItemToResponse(item)}
	if mov != nil {
		resp.Movement = dto.MovementToResponse(mov)
	}
	return resp, nil
}

// dispatchLowStockAlert recolecta TODOS los artículos activos en o bajo su
// mínimo y los entrega al notificador en una goroutine desprendida. Cualquier
// fallo se registra y se traga: nunca afecta la respuesta del movimiento.
func (uc *LedgerUseCase) dispatchLowStockAlert() {
	if uc.notifier == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil && uc.log != nil {
				uc.log.Error().Interface("panic", r).Msg("alerta de stock bajo: pánico en despacho")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), alertDispatchTimeout)
		defer cancel()

		rows, err := uc.itemRepo.ListLowStock(0)
		if err != nil {
			if uc.log != nil {
				uc.log.Warn().Err(err).Msg("alerta de stock bajo: escaneo fallido")
			}
			return
		}
		if len(rows) == 0 {
			return
		}

		items := make([]LowStockItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, LowStockItem{
				Name:         r.Name,
				SKU:          r.SKU,
				Category:     r.CategoryName,
				CurrentStock: r.Quantity,
				MinStock:     r.MinStock,
				Shortage:     stock.Shortage(r.Quantity, r.MinStock),
			})
		}
		if err := uc.notifier.SendLowStockAlert(ctx, items); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).Int("items", len(items)).Msg("alerta de stock bajo: envío fallido")
		}
	}()
}

// validateItemFields validación común de create/update.
func (uc *LedgerUseCase) validateItemFields(name, sku, categoryID string, quantity *int, unitPrice decimal.Decimal) error {
	if name == "" || sku == "" || categoryID == "" || quantity == nil {
		return domain.ErrInvalidInput
	}
	if *quantity < 0 {
		return domain.ErrInvalidInput
	}
	if unitPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// normalizeThresholds aplica defaults y exige maxStock > minStock.
func normalizeThresholds(minStock, maxStock int) (int, int, error) {
	if minStock <= 0 {
		minStock = defaultMinStock
	}
	if maxStock <= 0 {
		maxStock = defaultMaxStock
	}
	if maxStock <= minStock {
		return 0, 0, domain.ErrInvalidInput
	}
	return minStock, maxStock, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func quantityChangeNote(from, to int) string {
	return "Quantity updated from " + strconv.Itoa(from) + " to " + strconv.Itoa(to)
}
