package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchRunRequest body para lanzar un cierre de período (kardex o depreciación).
type BatchRunRequest struct {
	Period    string   `json:"period" validate:"required"` // "YYYY-MM"
	Force     bool     `json:"force,omitempty"`
	EntityIDs []string `json:"entity_ids,omitempty"` // vacío = todas las elegibles
}

// BatchRunResponse resultado de un cierre de período.
type BatchRunResponse struct {
	Period    string             `json:"period"`
	Processed int                `json:"processed"`
	Skipped   int                `json:"skipped"`
	Failures  []BatchFailureItem `json:"failures,omitempty"`
}

// BatchFailureItem entidad cuyo cierre falló y la causa.
type BatchFailureItem struct {
	EntityID string `json:"entity_id"`
	Error    string `json:"error"`
}
