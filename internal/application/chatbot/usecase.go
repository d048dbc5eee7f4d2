package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/application/ports"
	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/repository"
	"github.com/mnsts/ims-api/internal/domain/stock"
)

// snapshotMaxItems artículos incluidos en el contexto enviado al modelo.
const snapshotMaxItems = 150

// llmTimeout límite por consulta al LLM; las latencias externas no deben
// bloquear los goroutines del servidor.
const llmTimeout = 10 * time.Second

// ChatbotUseCase asistente de inventario: arma un snapshot textual del estado
// actual y delega la respuesta al puerto LLMService.
type ChatbotUseCase struct {
	llm          ports.LLMService
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

func NewChatbotUseCase(
	llm ports.LLMService,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
) *ChatbotUseCase {
	return &ChatbotUseCase{llm: llm, itemRepo: itemRepo, categoryRepo: categoryRepo}
}

// Ask responde una pregunta sobre el inventario.
func (uc *ChatbotUseCase) Ask(ctx context.Context, in dto.ChatbotRequest) (*dto.ChatbotResponse, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	snapshot, err := uc.buildSnapshot()
	if err != nil {
		return nil, fmt.Errorf("chatbot: snapshot de inventario: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	answer, err := uc.llm.AnswerInventoryQuery(ctx, query, snapshot)
	if err != nil {
		return nil, fmt.Errorf("chatbot: %w", err)
	}
	return &dto.ChatbotResponse{Answer: answer}, nil
}

// buildSnapshot serializa el inventario activo en texto plano para el modelo:
// una línea por artículo más los totales. Se trunca a snapshotMaxItems.
func (uc *ChatbotUseCase) buildSnapshot() (string, error) {
	items, err := uc.itemRepo.ListActive()
	if err != nil {
		return "", err
	}
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return "", err
	}

	names := make(map[string]string, len(categories))
	for _, row := range categories {
		names[row.Category.ID] = row.Category.Name
	}

	var b strings.Builder
	lowCount := 0
	for i, item := range items {
		if stock.IsLow(item.Quantity, item.MinStock) {
			lowCount++
		}
		if i >= snapshotMaxItems {
			continue
		}
		category := names[item.CategoryID]
		if category == "" {
			category = "No category"
		}
		fmt.Fprintf(&b, "- %s (SKU %s, %s): %d units, min %d, max %d, status %s\n",
			item.Name, item.SKU, category,
			item.Quantity, item.MinStock, item.MaxStock,
			stock.Classify(item.Quantity, item.MinStock, item.MaxStock))
	}
	if len(items) > snapshotMaxItems {
		fmt.Fprintf(&b, "... and %d more items\n", len(items)-snapshotMaxItems)
	}
	fmt.Fprintf(&b, "Totals: %d active items, %d at or below minimum stock.\n", len(items), lowCount)
	return b.String(), nil
}
