package pagination

import "math"

const (
	// DefaultLimit tamaño de página cuando no se indica limit.
	DefaultLimit = 10
	// MaxLimit tope de filas por página.
	MaxLimit = 100
	// MaxPage mayor página aceptada; con ella Offset no desborda int.
	MaxPage = math.MaxInt / MaxLimit
)

// Params página solicitada (1-based).
type Params struct {
	Page  int
	Limit int
}

// Normalize aplica valores por defecto y límites: 1 <= page <= MaxPage, 1 <= limit <= MaxLimit.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	return Params{Page: page, Limit: NormalizeLimit(limit)}
}

// NormalizeLimit aplica DefaultLimit y MaxLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Offset filas a saltar para la página.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages ceil(total/limit); 0 si no hay filas.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// Page resultado paginado.
type Page[T any] struct {
	Data       []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage arma la página; Data nunca es nil.
func NewPage[T any](data []T, total int64, p Params) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}
