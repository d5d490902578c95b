package dto

// ── Paginação ──

// PaginacaoRequest parâmetros de página (normalizados por pkg/paginacao)
type PaginacaoRequest struct {
	Pagina int `form:"pagina" binding:"omitempty,min=0"`
	Limite int `form:"limite" binding:"omitempty,min=0"`
}

// Pagina envelope paginado
type Pagina[T any] struct {
	Total  int64 `json:"total"`
	Pagina int   `json:"pagina"`
	Limite int   `json:"limite"`
	Data   []T   `json:"data"`
}

// PaginaVazia envelope fixo para consultas sem resultado
func PaginaVazia[T any]() *Pagina[T] {
	return &Pagina[T]{Data: []T{}}
}
