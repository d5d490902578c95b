package dto

// DashboardRequest filtros do painel
type DashboardRequest struct {
	Ano             int    `form:"ano"             binding:"omitempty,min=2000,max=2100"`
	CoordenadoriaID string `form:"coordenadoriaId" binding:"omitempty,uuid"`
}

// ContagemMes total no mês (1..12)
type ContagemMes struct {
	Mes   int   `json:"mes"`
	Total int64 `json:"total"`
}

// ContagemAno total no ano
type ContagemAno struct {
	Ano   int   `json:"ano"`
	Total int64 `json:"total"`
}

// ContagemMotivo total por motivo de não realização
type ContagemMotivo struct {
	MotivoID *string `json:"motivoId"`
	Texto    string  `json:"texto"`
	Total    int64   `json:"total"`
}

// DashboardResponse indicadores do painel
type DashboardResponse struct {
	TotalGeral           int64            `json:"totalGeral"`
	Realizados           int64            `json:"realizados"`
	NaoRealizados        int64            `json:"naoRealizados"`
	ApenasNaoRealizado   int64            `json:"apenasNaoRealizado"`
	DiasComAgendamentos  int              `json:"diasComAgendamentos"`
	PorMes               []ContagemMes    `json:"porMes"`
	PorAno               []ContagemAno    `json:"porAno"`
	MotivosNaoRealizacao []ContagemMotivo `json:"motivosNaoRealizacao"`
}
