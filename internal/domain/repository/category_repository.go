package repository

import "github.com/mnsts/ims-api/internal/domain/entity"

// CategoryWithCount categoría junto con su número de artículos activos.
type CategoryWithCount struct {
	Category  entity.Category
	ItemCount int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	// List devuelve todas las categorías ordenadas por nombre, con el conteo
	// de artículos activos de cada una.
	List() ([]CategoryWithCount, error)
	Delete(id string) error
}
