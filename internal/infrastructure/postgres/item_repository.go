package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// itemColumns columnas en el orden que scanItem espera.
const itemColumns = `id, sku, barcode, name, description, location, image_urls,
	quantity, min_stock, max_stock, unit_price, COALESCE(category_id, ''), created_by,
	is_active, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo. category_id vacío se guarda como NULL.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, sku, barcode, name, description, location, image_urls,
			quantity, min_stock, max_stock, unit_price, category_id, created_by, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Barcode, item.Name, item.Description, item.Location, item.ImageURLs,
		item.Quantity, item.MinStock, item.MaxStock, item.UnitPrice, item.CategoryID, item.CreatedBy,
		item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID (incluye inactivos).
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
	return scanItem(row, "get item")
}

// GetBySKU obtiene un artículo por SKU (incluye inactivos, el SKU es único global).
func (r *ItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM inventory_items WHERE sku = $1`, sku)
	return scanItem(row, "get item by sku")
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE).
// Serializa el read-modify-write de quantity: solo debe usarse dentro de la
// transacción del motor de inventario.
func (r *ItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
	return scanItem(row, "get item for update")
}

// Update actualiza todos los campos editables. quantity también, porque el
// motor ya sintetizó el movimiento correctivo en la misma transacción.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET sku = $2, barcode = $3, name = $4, description = $5, location = $6, image_urls = $7,
			quantity = $8, min_stock = $9, max_stock = $10, unit_price = $11,
			category_id = NULLIF($12, ''), updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Barcode, item.Name, item.Description, item.Location, item.ImageURLs,
		item.Quantity, item.MinStock, item.MaxStock, item.UnitPrice, item.CategoryID, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe la cantidad conciliada (solo el motor de inventario).
func (r *ItemRepo) UpdateQuantity(id string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive marca el artículo activo o inactivo (soft-delete).
func (r *ItemRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set item active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// sortColumns columnas permitidas para ORDER BY del listado.
var sortColumns = map[string]string{
	"name":       "name",
	"quantity":   "quantity",
	"unit_price": "unit_price",
	"created_at": "created_at",
}

// List lista artículos activos con búsqueda, filtro por categoría, orden y
// paginación. Devuelve también el total sin paginar.
func (r *ItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	where := []string{"is_active = true"}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR sku ILIKE $%d)", n, n, n))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_items WHERE `+whereClause, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "name"
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		itemColumns, whereClause, orderBy, direction, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	list, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive devuelve todos los artículos activos ordenados por nombre.
func (r *ItemRepo) ListActive() ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+itemColumns+` FROM inventory_items WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListLowStock devuelve los artículos activos en o bajo su mínimo, más urgentes
// primero (menor ratio quantity/min_stock). limit <= 0 devuelve todos.
func (r *ItemRepo) ListLowStock(limit int) ([]repository.LowStockRow, error) {
	query := `
		SELECT i.id, i.name, i.sku, COALESCE(c.name, 'No category'), i.quantity, i.min_stock
		FROM inventory_items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.is_active = true AND i.quantity <= i.min_stock
		ORDER BY i.quantity::numeric / NULLIF(i.min_stock, 0) ASC NULLS FIRST, i.name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ItemID, &row.Name, &row.SKU, &row.CategoryName, &row.Quantity, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountActiveByCategory cuenta los artículos activos de una categoría.
func (r *ItemRepo) CountActiveByCategory(categoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_items WHERE category_id = $1 AND is_active = true`,
		categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return count, nil
}

// DetachCategory desvincula los artículos inactivos de la categoría.
// Los activos no se tocan: bloquean el borrado de la categoría aguas arriba.
func (r *ItemRepo) DetachCategory(categoryID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET category_id = NULL, updated_at = now()
		 WHERE category_id = $1 AND is_active = false`,
		categoryID,
	)
	if err != nil {
		return fmt.Errorf("detach category: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.SKU, &it.Barcode, &it.Name, &it.Description, &it.Location, &it.ImageURLs,
		&it.Quantity, &it.MinStock, &it.MaxStock, &it.UnitPrice, &it.CategoryID, &it.CreatedBy,
		&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.Barcode, &it.Name, &it.Description, &it.Location, &it.ImageURLs,
			&it.Quantity, &it.MinStock, &it.MaxStock, &it.UnitPrice, &it.CategoryID, &it.CreatedBy,
			&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
