package ledger_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/application/ledger"
	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

// ---- fakes en memoria ----

// fakeStore estado compartido de los repos falsos. La "transacción" del
// fakeTxRunner toma un snapshot y lo restaura si fn falla.
type fakeStore struct {
	mu        sync.Mutex
	items     map[string]*entity.InventoryItem
	movements []*entity.StockMovement

	failMovementCreate bool
	failQuantityUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]*entity.InventoryItem{}}
}

func (s *fakeStore) snapshot() (map[string]entity.InventoryItem, []entity.StockMovement) {
	items := make(map[string]entity.InventoryItem, len(s.items))
	for id, it := range s.items {
		items[id] = *it
	}
	movs := make([]entity.StockMovement, len(s.movements))
	for i, m := range s.movements {
		movs[i] = *m
	}
	return items, movs
}

func (s *fakeStore) restore(items map[string]entity.InventoryItem, movs []entity.StockMovement) {
	s.items = make(map[string]*entity.InventoryItem, len(items))
	for id := range items {
		it := items[id]
		s.items[id] = &it
	}
	s.movements = make([]*entity.StockMovement, len(movs))
	for i := range movs {
		m := movs[i]
		s.movements[i] = &m
	}
}

// sumByItem suma con signo de los movimientos del artículo (verificación de conciliación).
func (s *fakeStore) sumByItem(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, m := range s.movements {
		if m.ItemID == itemID {
			total += m.SignedQuantity()
		}
	}
	return total
}

func (s *fakeStore) movementCount(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n
}

type fakeItemRepo struct{ store *fakeStore }

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, it := range r.store.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateQuantity(id string, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failQuantityUpdate {
		return errors.New("fallo inyectado: update quantity")
	}
	it, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) SetActive(id string, active bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.IsActive = active
	return nil
}

func (r *fakeItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	return nil, 0, nil
}

func (r *fakeItemRepo) ListActive() ([]*entity.InventoryItem, error) { return nil, nil }

func (r *fakeItemRepo) ListLowStock(limit int) ([]repository.LowStockRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var rows []repository.LowStockRow
	for _, it := range r.store.items {
		if it.IsActive && it.Quantity <= it.MinStock {
			rows = append(rows, repository.LowStockRow{
				ItemID:       it.ID,
				Name:         it.Name,
				SKU:          it.SKU,
				CategoryName: "General",
				Quantity:     it.Quantity,
				MinStock:     it.MinStock,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeItemRepo) CountActiveByCategory(categoryID string) (int, error) { return 0, nil }
func (r *fakeItemRepo) DetachCategory(categoryID string) error              { return nil }

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failMovementCreate {
		return errors.New("fallo inyectado: create movement")
	}
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]repository.MovementWithNames, int, error) {
	return nil, 0, nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, limit int) ([]repository.MovementWithNames, error) {
	return nil, nil
}

func (r *fakeMovementRepo) SumByItem(itemID string) (int, error) {
	return r.store.sumByItem(itemID), nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) { return nil, nil }
func (r *fakeCategoryRepo) Update(c *entity.Category) error                 { return nil }
func (r *fakeCategoryRepo) List() ([]repository.CategoryWithCount, error)   { return nil, nil }
func (r *fakeCategoryRepo) Delete(id string) error                          { return nil }

// fakeTxRunner simula la transacción: snapshot antes de fn, restore si falla.
type fakeTxRunner struct{ store *fakeStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	t.store.mu.Lock()
	items, movs := t.store.snapshot()
	t.store.mu.Unlock()

	err := fn(&fakeMovementRepo{store: t.store}, &fakeItemRepo{store: t.store})
	if err != nil {
		t.store.mu.Lock()
		t.store.restore(items, movs)
		t.store.mu.Unlock()
		return err
	}
	return nil
}

// fakeNotifier captura la colección entregada por la goroutine de alertas.
type fakeNotifier struct {
	ch  chan []ledger.LowStockItem
	err error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan []ledger.LowStockItem, 4)}
}

func (n *fakeNotifier) SendLowStockAlert(ctx context.Context, items []ledger.LowStockItem) error {
	n.ch <- items
	return n.err
}

func (n *fakeNotifier) waitAlert(t *testing.T) []ledger.LowStockItem {
	t.Helper()
	select {
	case items := <-n.ch:
		return items
	case <-time.After(2 * time.Second):
		t.Fatal("la alerta de stock bajo nunca se despachó")
		return nil
	}
}

func (n *fakeNotifier) assertNoAlert(t *testing.T) {
	t.Helper()
	select {
	case <-n.ch:
		t.Fatal("se despachó una alerta que no correspondía")
	case <-time.After(150 * time.Millisecond):
	}
}

// ---- fixture ----

type fixture struct {
	uc       *ledger.LedgerUseCase
	store    *fakeStore
	notifier *fakeNotifier
	catRepo  *fakeCategoryRepo
}

func newFixture() *fixture {
	store := newFakeStore()
	catRepo := &fakeCategoryRepo{categories: map[string]*entity.Category{}}
	catRepo.categories["cat-1"] = &entity.Category{ID: "cat-1", Name: "Lab Equipment"}
	notifier := newFakeNotifier()
	uc := ledger.NewLedgerUseCase(
		&fakeTxRunner{store: store},
		&fakeItemRepo{store: store},
		catRepo,
		notifier,
		nil,
	)
	return &fixture{uc: uc, store: store, notifier: notifier, catRepo: catRepo}
}

func (f *fixture) seedItem(id string, quantity, minStock, maxStock int) *entity.InventoryItem {
	item := &entity.InventoryItem{
		ID:         id,
		SKU:        "SKU-" + id,
		Name:       "Artículo " + id,
		Quantity:   quantity,
		MinStock:   minStock,
		MaxStock:   maxStock,
		UnitPrice:  decimal.NewFromInt(10),
		CategoryID: "cat-1",
		CreatedBy:  "user-1",
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.store.items[id] = item
	return item
}

func intPtr(n int) *int { return &n }

// ---- RecordMovement ----

func TestRecordMovement_OutDentroDeStock(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 10, 5, 100)

	resp, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeOUT,
		Quantity: 3,
		Reason:   "Classroom use",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Item.Quantity)
	assert.Equal(t, "normal", resp.Item.StockHealth)
	assert.Equal(t, 3, resp.Movement.Quantity)
	assert.Equal(t, entity.MovementTypeOUT, resp.Movement.Type)
	f.notifier.assertNoAlert(t)
}

func TestRecordMovement_TiposAditivosYSustractivos(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 10, 2, 100)

	cases := []struct {
		movType string
		qty     int
		want    int
	}{
		{entity.MovementTypeIN, 5, 15},
		{entity.MovementTypeADJUSTMENT, 2, 17},
		{entity.MovementTypeOUT, 4, 13},
		{entity.MovementTypeTRANSFER, 3, 10},
	}
	for _, c := range cases {
		resp, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
			ItemID:   "item-1",
			Type:     c.movType,
			Quantity: c.qty,
			Reason:   "Test",
		})
		require.NoError(t, err, "tipo %s", c.movType)
		assert.Equal(t, c.want, resp.Item.Quantity, "tipo %s", c.movType)
	}

	// Invariante de conciliación: suma con signo == cantidad cacheada.
	// El artículo se sembró sin movimiento inicial, así que la suma parte de 10.
	assert.Equal(t, 10+f.store.sumByItem("item-1"), f.store.items["item-1"].Quantity)
}

func TestRecordMovement_StockInsuficiente(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 5, 2, 100)

	_, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeOUT,
		Quantity: 10,
		Reason:   "Classroom use",
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.store.items["item-1"].Quantity, "la cantidad no debe cambiar")
	assert.Equal(t, 0, f.store.movementCount("item-1"), "no debe quedar ningún movimiento")

	// El rechazo es idempotente: repetir produce el mismo resultado.
	_, err = f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeOUT,
		Quantity: 10,
		Reason:   "Classroom use",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.store.items["item-1"].Quantity)
	assert.Equal(t, 0, f.store.movementCount("item-1"))
}

func TestRecordMovement_Validaciones(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 10, 5, 100)

	cases := []struct {
		name string
		req  dto.RecordMovementRequest
		want error
	}{
		{"tipo desconocido", dto.RecordMovementRequest{ItemID: "item-1", Type: "LOAN", Quantity: 1, Reason: "x"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.RecordMovementRequest{ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: 0, Reason: "x"}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.RecordMovementRequest{ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: -3, Reason: "x"}, domain.ErrInvalidInput},
		{"razón vacía", dto.RecordMovementRequest{ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: 1, Reason: ""}, domain.ErrInvalidInput},
		{"artículo inexistente", dto.RecordMovementRequest{ItemID: "nope", Type: entity.MovementTypeIN, Quantity: 1, Reason: "x"}, domain.ErrNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.uc.RecordMovement(context.Background(), "user-1", c.req)
			require.ErrorIs(t, err, c.want)
		})
	}
	assert.Equal(t, 0, f.store.movementCount("item-1"), "las validaciones no deben escribir nada")
}

func TestRecordMovement_ArticuloInactivo(t *testing.T) {
	f := newFixture()
	item := f.seedItem("item-1", 10, 5, 100)
	item.IsActive = false

	_, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeIN,
		Quantity: 1,
		Reason:   "Restock",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_AtomicidadAnteFalloDePersistencia(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 10, 5, 100)
	f.store.failQuantityUpdate = true

	_, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeOUT,
		Quantity: 3,
		Reason:   "Classroom use",
	})

	require.Error(t, err)
	// Rollback completo: ni movimiento huérfano ni cantidad a medias.
	assert.Equal(t, 10, f.store.items["item-1"].Quantity)
	assert.Equal(t, 0, f.store.movementCount("item-1"))
}

func TestRecordMovement_DisparaAlertaAlCruzarMinimo(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 10, 5, 100)
	// Otro artículo que ya estaba bajo: debe aparecer también en la alerta.
	f.seedItem("item-2", 1, 5, 100)

	resp, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeOUT,
		Quantity: 6,
		Reason:   "Classroom use",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Item.Quantity)
	assert.Equal(t, "low", resp.Item.StockHealth)

	items := f.notifier.waitAlert(t)
	require.Len(t, items, 2, "la alerta lleva el tablero completo, no solo el artículo movido")
	assert.Equal(t, "SKU-item-1", items[0].SKU)
	assert.Equal(t, 1, items[0].Shortage)
	assert.Equal(t, "SKU-item-2", items[1].SKU)
	assert.Equal(t, 4, items[1].Shortage)
}

func TestRecordMovement_EntradaBajoMinimoNoAlerta(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 0, 5, 100)

	// IN que deja el stock todavía en el límite bajo: las alertas solo se
	// disparan en salidas.
	resp, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeIN,
		Quantity: 5,
		Reason:   "Restock",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Item.Quantity)
	assert.Equal(t, "low", resp.Item.StockHealth)
	f.notifier.assertNoAlert(t)
}

func TestRecordMovement_FalloDelNotificadorNoSePropaga(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 5, 5, 100)
	f.notifier.err = errors.New("smtp caído")

	resp, err := f.uc.RecordMovement(context.Background(), "user-1", dto.RecordMovementRequest{
		ItemID:   "item-1",
		Type:     entity.MovementTypeOUT,
		Quantity: 2,
		Reason:   "Classroom use",
	})

	require.NoError(t, err, "el fallo del notificador nunca afecta al caller")
	assert.Equal(t, 3, resp.Item.Quantity)
	f.notifier.waitAlert(t)
}

// ---- CreateItem ----

func TestCreateItem_GeneraMovimientoInicial(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Name:       "Microscopio",
		SKU:        "LAB-001",
		Quantity:   intPtr(12),
		MinStock:   5,
		MaxStock:   50,
		UnitPrice:  decimal.NewFromInt(250),
		CategoryID: "cat-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 12, resp.Quantity)
	assert.True(t, resp.IsActive)

	require.Equal(t, 1, f.store.movementCount(resp.ID))
	mov := f.store.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 12, mov.Quantity)
	assert.Equal(t, entity.ReasonInitialStock, mov.Reason)
	assert.Equal(t, "user-1", mov.UserID)

	// Conciliación desde el primer movimiento.
	assert.Equal(t, f.store.sumByItem(resp.ID), f.store.items[resp.ID].Quantity)
}

func TestCreateItem_StockCeroSinMovimiento(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Name:       "Proyector",
		SKU:        "AV-001",
		Quantity:   intPtr(0),
		UnitPrice:  decimal.NewFromInt(300),
		CategoryID: "cat-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
	assert.Equal(t, 0, f.store.movementCount(resp.ID))
	// Umbrales por defecto cuando no se envían.
	assert.Equal(t, 5, resp.MinStock)
	assert.Equal(t, 100, resp.MaxStock)
}

func TestCreateItem_SKUDuplicado(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 10, 5, 100) // SKU-item-1

	_, err := f.uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Name:       "Otro",
		SKU:        "SKU-item-1",
		Quantity:   intPtr(1),
		UnitPrice:  decimal.NewFromInt(1),
		CategoryID: "cat-1",
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateItem_Invalido(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		req  dto.CreateItemRequest
	}{
		{"sin nombre", dto.CreateItemRequest{SKU: "X", Quantity: intPtr(1), UnitPrice: decimal.NewFromInt(1), CategoryID: "cat-1"}},
		{"sin cantidad", dto.CreateItemRequest{Name: "X", SKU: "X", UnitPrice: decimal.NewFromInt(1), CategoryID: "cat-1"}},
		{"cantidad negativa", dto.CreateItemRequest{Name: "X", SKU: "X", Quantity: intPtr(-1), UnitPrice: decimal.NewFromInt(1), CategoryID: "cat-1"}},
		{"precio negativo", dto.CreateItemRequest{Name: "X", SKU: "X", Quantity: intPtr(1), UnitPrice: decimal.NewFromInt(-1), CategoryID: "cat-1"}},
		{"umbrales invertidos", dto.CreateItemRequest{Name: "X", SKU: "X", Quantity: intPtr(1), MinStock: 50, MaxStock: 10, UnitPrice: decimal.NewFromInt(1), CategoryID: "cat-1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.uc.CreateItem(context.Background(), "user-1", c.req)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateItem_CategoriaInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Name:       "X",
		SKU:        "X-1",
		Quantity:   intPtr(1),
		UnitPrice:  decimal.NewFromInt(1),
		CategoryID: "cat-nope",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- UpdateItem ----

func TestUpdateItem_SintetizaMovimientoCorrectivo(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 20, 5, 100)

	resp, err := f.uc.UpdateItem(context.Background(), "user-1", "item-1", dto.UpdateItemRequest{
		Name:       "Artículo item-1",
		SKU:        "SKU-item-1",
		Quantity:   intPtr(15),
		MinStock:   5,
		MaxStock:   100,
		UnitPrice:  decimal.NewFromInt(10),
		CategoryID: "cat-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 15, resp.Quantity)

	require.Equal(t, 1, f.store.movementCount("item-1"))
	mov := f.store.movements[0]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type, "corrección a la baja => OUT")
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, entity.ReasonStockAdjustment, mov.Reason)
	assert.Equal(t, "Quantity updated from 20 to 15", mov.Notes)
}

func TestUpdateItem_SubidaDeCantidadEsIN(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 8, 5, 100)

	_, err := f.uc.UpdateItem(context.Background(), "user-1", "item-1", dto.UpdateItemRequest{
		Name:       "Artículo item-1",
		SKU:        "SKU-item-1",
		Quantity:   intPtr(14),
		MinStock:   5,
		MaxStock:   100,
		UnitPrice:  decimal.NewFromInt(10),
		CategoryID: "cat-1",
	})

	require.NoError(t, err)
	mov := f.store.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 6, mov.Quantity)
}

func TestUpdateItem_SinCambioDeCantidadNoGeneraMovimiento(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 8, 5, 100)

	resp, err := f.uc.UpdateItem(context.Background(), "user-1", "item-1", dto.UpdateItemRequest{
		Name:       "Renombrado",
		SKU:        "SKU-item-1",
		Quantity:   intPtr(8),
		MinStock:   5,
		MaxStock:   100,
		UnitPrice:  decimal.NewFromInt(12),
		CategoryID: "cat-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Renombrado", resp.Name)
	assert.Equal(t, 0, f.store.movementCount("item-1"))
}

func TestUpdateItem_SKUEnUsoPorOtro(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 8, 5, 100)
	f.seedItem("item-2", 3, 5, 100)

	_, err := f.uc.UpdateItem(context.Background(), "user-1", "item-1", dto.UpdateItemRequest{
		Name:       "Artículo item-1",
		SKU:        "SKU-item-2",
		Quantity:   intPtr(8),
		MinStock:   5,
		MaxStock:   100,
		UnitPrice:  decimal.NewFromInt(10),
		CategoryID: "cat-1",
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

// ---- DeactivateItem ----

func TestDeactivateItem_RegistraSalidaFinal(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 8, 5, 100)

	resp, err := f.uc.DeactivateItem(context.Background(), "user-1", "item-1")

	require.NoError(t, err)
	assert.False(t, resp.Item.IsActive)
	assert.Equal(t, entity.MovementTypeOUT, resp.Movement.Type)
	assert.Equal(t, 8, resp.Movement.Quantity)
	assert.Equal(t, entity.ReasonItemDeleted, resp.Movement.Reason)

	// La cantidad histórica se conserva en la fila.
	assert.Equal(t, 8, f.store.items["item-1"].Quantity)
	assert.False(t, f.store.items["item-1"].IsActive)

	// Fuera del escaneo de stock bajo a partir de ahora.
	rows, err := (&fakeItemRepo{store: f.store}).ListLowStock(0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeactivateItem_SinExistenciasNoGeneraMovimiento(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", 0, 5, 100)

	resp, err := f.uc.DeactivateItem(context.Background(), "user-1", "item-1")

	require.NoError(t, err)
	assert.False(t, resp.Item.IsActive)
	assert.Equal(t, 0, f.store.movementCount("item-1"))
}

func TestDeactivateItem_YaInactivo(t *testing.T) {
	f := newFixture()
	item := f.seedItem("item-1", 5, 5, 100)
	item.IsActive = false

	_, err := f.uc.DeactivateItem(context.Background(), "user-1", "item-1")
	require.ErrorIs(t, err, domain.ErrItemInactive)
}

func TestDeactivateItem_Inexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.DeactivateItem(context.Background(), "user-1", "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
