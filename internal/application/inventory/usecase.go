package inventory

import (
	"time"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

// recentMovementsLimit movimientos incluidos en la vista de detalle.
const recentMovementsLimit = 10

// InventoryUseCase lado de lectura del inventario: detalle, listados y el
// historial de movimientos. Toda mutación pasa por el motor (paquete ledger).
type InventoryUseCase struct {
	itemRepo     repository.ItemRepository
	movRepo      repository.StockMovementRepository
	categoryRepo repository.CategoryRepository
}

func NewInventoryUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	categoryRepo repository.CategoryRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		itemRepo:     itemRepo,
		movRepo:      movRepo,
		categoryRepo: categoryRepo,
	}
}

// GetItem devuelve el detalle de un artículo con su categoría resuelta y sus
// últimos movimientos. Incluye artículos inactivos (registro histórico).
func (uc *InventoryUseCase) GetItem(itemID string) (*dto.ItemDetailResponse, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := dto.ItemDetailResponse{ItemResponse: dto.ItemToResponse(item)}
	if item.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(item.CategoryID)
		if err != nil {
			return nil, err
		}
		if category != nil {
			cat := dto.CategoryToResponse(category, 0)
			resp.Category = &cat
		}
	}

	rows, err := uc.movRepo.ListByItem(itemID, recentMovementsLimit)
	if err != nil {
		return nil, err
	}
	resp.RecentMovements = make([]dto.MovementResponse, 0, len(rows))
	for _, row := range rows {
		resp.RecentMovements = append(resp.RecentMovements, dto.MovementWithNamesToResponse(row))
	}
	return &resp, nil
}

// ListItems listado paginado de artículos activos con búsqueda, filtro por
// categoría y orden. Las categorías se resuelven en lote para no hacer una
// consulta por fila.
func (uc *InventoryUseCase) ListItems(q dto.ItemListQuery) (*dto.ItemListResponse, error) {
	q.DefaultPage()

	items, total, err := uc.itemRepo.List(repository.ItemFilter{
		Search:     q.Search,
		CategoryID: q.Category,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
		Limit:      q.Limit,
		Offset:     q.Offset(),
	})
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryIndex(items)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		r := dto.ItemToResponse(item)
		if c, ok := categories[item.CategoryID]; ok {
			cat := dto.CategoryToResponse(c, 0)
			r.Category = &cat
		}
		out = append(out, r)
	}
	return &dto.ItemListResponse{
		Items: out,
		Page:  dto.NewPageResponse(q.Page, q.Limit, total),
	}, nil
}

// ListMovements historial paginado del libro con filtros por artículo, tipo,
// razón y rango de fechas (date_to inclusive hasta fin de día).
func (uc *InventoryUseCase) ListMovements(q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	q.DefaultPage()

	if q.Type != "" && !entity.ValidMovementType(q.Type) {
		return nil, domain.ErrInvalidInput
	}
	dateFrom, err := parseDate(q.DateFrom, false)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	dateTo, err := parseDate(q.DateTo, true)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	rows, total, err := uc.movRepo.List(repository.MovementFilter{
		ItemID:   q.ItemID,
		Type:     q.Type,
		Reason:   q.Reason,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Limit:    q.Limit,
		Offset:   q.Offset(),
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MovementWithNamesToResponse(row))
	}
	return &dto.MovementListResponse{
		Movements: out,
		Page:      dto.NewPageResponse(q.Page, q.Limit, total),
	}, nil
}

// VerifyLedger comprueba el invariante de conciliación de un artículo:
// la suma con signo de sus movimientos debe igualar la cantidad cacheada.
// Devuelve la diferencia (0 si el libro cuadra).
func (uc *InventoryUseCase) VerifyLedger(itemID string) (int, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, domain.ErrNotFound
	}
	sum, err := uc.movRepo.SumByItem(itemID)
	if err != nil {
		return 0, err
	}
	return item.Quantity - sum, nil
}

func (uc *InventoryUseCase) categoryIndex(items []*entity.InventoryItem) (map[string]*entity.Category, error) {
	index := map[string]*entity.Category{}
	for _, item := range items {
		if item.CategoryID == "" {
			continue
		}
		if _, done := index[item.CategoryID]; done {
			continue
		}
		c, err := uc.categoryRepo.GetByID(item.CategoryID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			index[item.CategoryID] = c
		}
	}
	return index, nil
}

// parseDate interpreta "YYYY-MM-DD"; con endOfDay el límite queda en 23:59:59.999.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}
