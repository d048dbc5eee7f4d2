package category_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnsts/ims-api/internal/application/category"
	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
)

type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List() ([]repository.CategoryWithCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.CategoryWithCount
	for _, c := range r.categories {
		out = append(out, repository.CategoryWithCount{Category: *c})
	}
	return out, nil
}

func (r *memCategoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

// stubItemRepo solo los métodos que el caso de uso de categorías toca.
type stubItemRepo struct {
	repository.ItemRepository // métodos no usados entran en pánico si se llaman

	activeByCategory map[string]int
	detached         []string
}

func (r *stubItemRepo) CountActiveByCategory(categoryID string) (int, error) {
	return r.activeByCategory[categoryID], nil
}

func (r *stubItemRepo) DetachCategory(categoryID string) error {
	r.detached = append(r.detached, categoryID)
	return nil
}

func newCategoryFixture() (*category.CategoryUseCase, *memCategoryRepo, *stubItemRepo) {
	catRepo := newMemCategoryRepo()
	itemRepo := &stubItemRepo{activeByCategory: map[string]int{}}
	return category.NewCategoryUseCase(catRepo, itemRepo), catRepo, itemRepo
}

func TestCategoryCreate(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	resp, err := uc.Create(dto.CreateCategoryRequest{Name: "Sports", Description: "Material deportivo"})
	require.NoError(t, err)
	assert.Equal(t, "Sports", resp.Name)
	assert.Equal(t, entity.DefaultCategoryColor, resp.Color, "color por defecto si no se envía")

	// Nombre duplicado.
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Sports"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	// Nombre vacío.
	_, err = uc.Create(dto.CreateCategoryRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate(t *testing.T) {
	uc, _, _ := newCategoryFixture()
	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Lab", Color: "#2D5F3F"})
	require.NoError(t, err)
	other, err := uc.Create(dto.CreateCategoryRequest{Name: "Library"})
	require.NoError(t, err)

	resp, err := uc.Update(created.ID, dto.UpdateCategoryRequest{Name: "Laboratory", Description: "Equipos de laboratorio"})
	require.NoError(t, err)
	assert.Equal(t, "Laboratory", resp.Name)
	assert.Equal(t, "#2D5F3F", resp.Color, "el color se conserva si no se envía uno nuevo")

	// Renombrar a un nombre ya tomado.
	_, err = uc.Update(other.ID, dto.UpdateCategoryRequest{Name: "Laboratory"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	// Categoría inexistente.
	_, err = uc.Update("nope", dto.UpdateCategoryRequest{Name: "X"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDelete(t *testing.T) {
	uc, catRepo, itemRepo := newCategoryFixture()
	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Furniture"})
	require.NoError(t, err)

	// Con artículos activos el borrado se bloquea.
	itemRepo.activeByCategory[created.ID] = 3
	err = uc.Delete(created.ID)
	require.ErrorIs(t, err, domain.ErrCategoryInUse)

	// Sin activos: desvincula inactivos y borra.
	itemRepo.activeByCategory[created.ID] = 0
	err = uc.Delete(created.ID)
	require.NoError(t, err)
	assert.Contains(t, itemRepo.detached, created.ID)

	got, err := catRepo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryDeleteInexistente(t *testing.T) {
	uc, _, _ := newCategoryFixture()
	err := uc.Delete("nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
