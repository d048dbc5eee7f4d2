package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnsts/ims-api/internal/application/chatbot"
	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain"
)

// ChatbotHandler maneja el asistente de inventario.
type ChatbotHandler struct {
	uc *chatbot.ChatbotUseCase
}

// NewChatbotHandler construye el handler.
func NewChatbotHandler(uc *chatbot.ChatbotUseCase) *ChatbotHandler {
	return &ChatbotHandler{uc: uc}
}

// Ask godoc
// @Summary      Preguntar al asistente de inventario
// @Description  Responde preguntas sobre el estado actual del inventario usando
//
//	un snapshot de los artículos activos como contexto del modelo.
//
// @Tags         chatbot
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatbotRequest  true  "query"
// @Success      200   {object}  dto.ChatbotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/chatbot [post]
func (h *ChatbotHandler) Ask(c *fiber.Ctx) error {
	var in dto.ChatbotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Ask(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query es obligatorio"})
		}
		// Fallos del proveedor LLM (timeout, API caída) se reportan como gateway.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "LLM_UNAVAILABLE", Message: err.Error()})
	}
	return c.JSON(resp)
}
