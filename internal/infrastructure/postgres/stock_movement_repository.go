package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// movementSelect columnas del historial con nombres resueltos vía JOIN.
const movementSelect = `
	SELECT m.id, m.item_id, m.user_id, m.type, m.quantity, m.reason, m.notes, m.created_at,
		COALESCE(i.name, ''), COALESCE(i.sku, ''),
		COALESCE(u.first_name || ' ' || u.last_name, '')
	FROM stock_movements m
	LEFT JOIN inventory_items i ON i.id = m.item_id
	LEFT JOIN users u ON u.id = m.user_id`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El libro es append-only: solo INSERT y lecturas.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. No existe Update ni Delete.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, user_id, type, quantity, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.UserID, m.Type, m.Quantity, m.Reason, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve la página filtrada del historial (created_at DESC) y el total sin paginar.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]repository.MovementWithNames, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		where = append(where, fmt.Sprintf("m.item_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("m.type = $%d", len(args)))
	}
	if filter.Reason != "" {
		args = append(args, "%"+filter.Reason+"%")
		where = append(where, fmt.Sprintf("m.reason ILIKE $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where = append(where, fmt.Sprintf("m.created_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where = append(where, fmt.Sprintf("m.created_at <= $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements m WHERE `+whereClause, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := movementSelect + ` WHERE ` + whereClause + ` ORDER BY m.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	out, err := collectMovements(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByItem devuelve los últimos movimientos de un artículo.
func (r *StockMovementRepo) ListByItem(itemID string, limit int) ([]repository.MovementWithNames, error) {
	query := movementSelect + ` WHERE m.item_id = $1 ORDER BY m.created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// SumByItem devuelve la suma con signo de todos los movimientos del artículo
// (verificación del invariante de conciliación).
func (r *StockMovementRepo) SumByItem(itemID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type IN ('IN', 'ADJUSTMENT') THEN quantity ELSE -quantity END), 0)
		FROM stock_movements WHERE item_id = $1`
	var sum int
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

func collectMovements(rows pgx.Rows) ([]repository.MovementWithNames, error) {
	var out []repository.MovementWithNames
	for rows.Next() {
		var row repository.MovementWithNames
		if err := rows.Scan(
			&row.Movement.ID, &row.Movement.ItemID, &row.Movement.UserID, &row.Movement.Type,
			&row.Movement.Quantity, &row.Movement.Reason, &row.Movement.Notes, &row.Movement.CreatedAt,
			&row.ItemName, &row.ItemSKU, &row.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
