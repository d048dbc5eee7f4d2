package dto

import (
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
	"github.com/mnsts/ims-api/internal/domain/stock"
)

// ItemToResponse mapea la entidad a su DTO, calculando la salud de existencias.
func ItemToResponse(item *entity.InventoryItem) ItemResponse {
	urls := item.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return ItemResponse{
		ID:          item.ID,
		SKU:         item.SKU,
		Barcode:     item.Barcode,
		Name:        item.Name,
		Description: item.Description,
		Location:    item.Location,
		ImageURLs:   urls,
		Quantity:    item.Quantity,
		MinStock:    item.MinStock,
		MaxStock:    item.MaxStock,
		UnitPrice:   item.UnitPrice,
		CategoryID:  item.CategoryID,
		CreatedBy:   item.CreatedBy,
		IsActive:    item.IsActive,
		StockHealth: string(stock.Classify(item.Quantity, item.MinStock, item.MaxStock)),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// MovementToResponse mapea un movimiento simple (sin nombres resueltos).
func MovementToResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		UserID:    m.UserID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// MovementWithNamesToResponse mapea una fila del historial con nombres resueltos.
func MovementWithNamesToResponse(row repository.MovementWithNames) MovementResponse {
	out := MovementToResponse(&row.Movement)
	out.ItemName = row.ItemName
	out.ItemSKU = row.ItemSKU
	out.UserName = row.UserName
	return out
}

// CategoryToResponse mapea una categoría con su conteo de artículos activos.
func CategoryToResponse(c *entity.Category, itemCount int) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		ItemCount:   itemCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// UserToResponse mapea un usuario sin exponer el hash.
func UserToResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
