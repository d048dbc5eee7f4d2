package ports

import "context"

// LLMService define el puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (Anthropic, OpenAI, Ollama, mock) debe implementar esta
// interfaz; la aplicación solo conoce este contrato (DIP).
type LLMService interface {
	// AnswerInventoryQuery responde una pregunta del usuario sobre el
	// inventario usando el snapshot de contexto proporcionado.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	AnswerInventoryQuery(ctx context.Context, query, snapshot string) (string, error)
}
