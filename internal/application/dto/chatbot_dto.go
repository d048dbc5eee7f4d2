package dto

// ChatbotRequest pregunta del usuario al asistente de inventario.
type ChatbotRequest struct {
	Query string `json:"query"`
}

// ChatbotResponse respuesta generada por el LLM con contexto del inventario.
type ChatbotResponse struct {
	Answer string `json:"answer"`
}
