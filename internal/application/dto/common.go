package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LimitRequest tamaño de listados.
type LimitRequest struct {
	Limit int `query:"limit"`
}

// DefaultLimit aplica 20 por defecto y un máximo de 100.
func (r *LimitRequest) DefaultLimit() {
	if r.Limit <= 0 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}
