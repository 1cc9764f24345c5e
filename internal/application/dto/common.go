package dto

import "github.com/jhoicas/inventory-ledger-api/pkg/pagination"

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// PagedResponse lista paginada.
type PagedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagedResponse mapea cada elemento de la página con f.
func NewPagedResponse[S, T any](p pagination.Page[S], f func(S) T) PagedResponse[T] {
	data := make([]T, 0, len(p.Data))
	for _, s := range p.Data {
		data = append(data, f(s))
	}
	return PagedResponse[T]{
		Data: data,
		Pagination: Pagination{
			Total:      p.Total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: p.TotalPages,
		},
	}
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Available solo en INSUFFICIENT_STOCK.
	Available *int64 `json:"available,omitempty"`
	// Details campo → motivo, solo en VALIDATION.
	Details map[string]string `json:"details,omitempty"`
}
