package dto

// PageRequest paginación para listados (page empieza en 1, como la UI original).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset devuelve el offset SQL derivado de page/limit.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPageResponse calcula los metadatos de página (pages = ceil(total/limit)).
func NewPageResponse(page, limit, total int) PageResponse {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageResponse{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
