package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva (nombre único).
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Description, c.Color, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getOne(`SELECT id, name, description, color, created_at, updated_at
		FROM categories WHERE id = $1`, id)
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	return r.getOne(`SELECT id, name, description, color, created_at, updated_at
		FROM categories WHERE name = $1`, name)
}

func (r *CategoryRepo) getOne(query string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre, descripción y color.
func (r *CategoryRepo) Update(c *entity.Category) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE categories SET name = $2, description = $3, color = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Color, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las categorías ordenadas por nombre, con el conteo de
// artículos activos de cada una.
func (r *CategoryRepo) List() ([]repository.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.name, c.description, c.color, c.created_at, c.updated_at,
			COUNT(i.id) FILTER (WHERE i.is_active)
		FROM categories c
		LEFT JOIN inventory_items i ON i.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryWithCount
	for rows.Next() {
		var row repository.CategoryWithCount
		if err := rows.Scan(
			&row.Category.ID, &row.Category.Name, &row.Category.Description, &row.Category.Color,
			&row.Category.CreatedAt, &row.Category.UpdatedAt, &row.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete elimina una categoría por ID. El caso de uso ya verificó que no
// quedan artículos activos y desvinculó los inactivos.
func (r *CategoryRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
