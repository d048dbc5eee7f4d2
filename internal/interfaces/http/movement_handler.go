package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/application/inventory"
	"github.com/mnsts/ims-api/internal/application/ledger"
	"github.com/mnsts/ims-api/internal/domain"
)

// MovementHandler maneja el libro de movimientos: registro e historial.
type MovementHandler struct {
	ledger    *ledger.LedgerUseCase
	inventory *inventory.InventoryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledgerUC *ledger.LedgerUseCase, inventoryUC *inventory.InventoryUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledgerUC, inventory: inventoryUC}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica la regla de conciliación: IN/ADJUSTMENT suman, OUT/TRANSFER
//
//	restan. Una salida que dejaría la cantidad negativa se rechaza sin escribir nada.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "item_id, type, quantity, reason, notes opcional"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.ledger.RecordMovement(c.Context(), userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo, cantidad positiva y razón son obligatorios"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        limit      query  int     false  "Tamaño de página (máx 100)"
// @Param        item_id    query  string  false  "Filtrar por artículo"
// @Param        type       query  string  false  "IN, OUT, ADJUSTMENT, TRANSFER"
// @Param        reason     query  string  false  "Búsqueda parcial en la razón"
// @Param        date_from  query  string  false  "YYYY-MM-DD inclusive"
// @Param        date_to    query  string  false  "YYYY-MM-DD inclusive (fin de día)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	resp, err := h.inventory.ListMovements(q)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo o fechas de filtro inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
