package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías. El borrado está bloqueado mientras la
// categoría tenga artículos activos; los inactivos se desvinculan.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository, itemRepo repository.ItemRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, itemRepo: itemRepo}
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	color := in.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(c); err != nil {
		return nil, err
	}
	resp := dto.CategoryToResponse(c, 0)
	return &resp, nil
}

// Update actualiza nombre, descripción y color manteniendo el nombre único.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if id == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != c.Name {
		dup, err := uc.categoryRepo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
	}

	c.Name = in.Name
	c.Description = in.Description
	if in.Color != "" {
		c.Color = in.Color
	}
	c.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(c); err != nil {
		return nil, err
	}

	count, err := uc.itemRepo.CountActiveByCategory(c.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.CategoryToResponse(c, count)
	return &resp, nil
}

// List devuelve todas las categorías con su conteo de artículos activos.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	rows, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(rows))
	for _, row := range rows {
		c := row.Category
		out = append(out, dto.CategoryToResponse(&c, row.ItemCount))
	}
	return out, nil
}

// Delete elimina una categoría sin artículos activos. Los artículos inactivos
// que la referencien quedan desvinculados para conservar su historial.
func (uc *CategoryUseCase) Delete(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	c, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}

	count, err := uc.itemRepo.CountActiveByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	if err := uc.itemRepo.DetachCategory(id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(id)
}
