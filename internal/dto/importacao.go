package dto

// ResultadoImportacao resumo da importação.
// Pulados + Importados + Erros + Duplicados == Total.
type ResultadoImportacao struct {
	Total      int `json:"total"`
	Importados int `json:"importados"`
	Erros      int `json:"erros"`
	Duplicados int `json:"duplicados"`
	Pulados    int `json:"pulados"`
}

// ImportarPlanilhaRequest campos de formulário que acompanham o arquivo
type ImportarPlanilhaRequest struct {
	CoordenadoriaID string `form:"coordenadoriaId" binding:"omitempty,uuid"`
}
