package dto

import "time"

// ── Agendamento: requisições ──

// CriarAgendamentoRequest criação manual
type CriarAgendamentoRequest struct {
	Municipe             *string    `json:"municipe"             binding:"omitempty,max=255"`
	RG                   *string    `json:"rg"                   binding:"omitempty,max=30"`
	CPF                  *string    `json:"cpf"                  binding:"omitempty,max=30"`
	Processo             *string    `json:"processo"             binding:"omitempty,max=100"`
	DataHora             time.Time  `json:"dataHora"             binding:"required"`
	DataFim              *time.Time `json:"dataFim"`
	Duracao              int        `json:"duracao"              binding:"omitempty,min=1,max=1440"` // minutos
	Resumo               *string    `json:"resumo"`
	Status               string     `json:"status"               binding:"omitempty,status_agendamento"`
	TipoAgendamentoID    *string    `json:"tipoAgendamentoId"    binding:"omitempty,uuid"`
	TipoAgendamentoTexto string     `json:"tipoAgendamentoTexto" binding:"omitempty,max=255"`
	CoordenadoriaID      *string    `json:"coordenadoriaId"      binding:"omitempty,uuid"`
	TecnicoID            *string    `json:"tecnicoId"            binding:"omitempty,uuid"`
	TecnicoRF            string     `json:"tecnicoRF"            binding:"omitempty,max=30"`
	Email                *string    `json:"email"                binding:"omitempty,email"`
}

// AtualizarAgendamentoRequest atualização parcial; nil mantém o valor atual
type AtualizarAgendamentoRequest struct {
	Municipe               *string    `json:"municipe"               binding:"omitempty,max=255"`
	RG                     *string    `json:"rg"                     binding:"omitempty,max=30"`
	CPF                    *string    `json:"cpf"                    binding:"omitempty,max=30"`
	Processo               *string    `json:"processo"               binding:"omitempty,max=100"`
	DataHora               *time.Time `json:"dataHora"`
	DataFim                *time.Time `json:"dataFim"`
	Resumo                 *string    `json:"resumo"`
	Status                 *string    `json:"status"                 binding:"omitempty,status_agendamento"`
	TipoAgendamentoID      *string    `json:"tipoAgendamentoId"      binding:"omitempty,uuid"`
	MotivoNaoAtendimentoID *string    `json:"motivoNaoAtendimentoId" binding:"omitempty,uuid"`
	CoordenadoriaID        *string    `json:"coordenadoriaId"        binding:"omitempty,uuid"`
	TecnicoID              *string    `json:"tecnicoId"              binding:"omitempty,uuid"`
	TecnicoRF              *string    `json:"tecnicoRF"              binding:"omitempty,max=30"`
	Email                  *string    `json:"email"                  binding:"omitempty,email"`
}

// BuscarAgendamentosRequest filtros da listagem
type BuscarAgendamentosRequest struct {
	PaginacaoRequest
	Busca           string `form:"busca"           binding:"omitempty,max=100"`
	Status          string `form:"status"          binding:"omitempty,status_agendamento"`
	DataInicio      string `form:"dataInicio"      binding:"omitempty,datetime=2006-01-02"`
	DataFim         string `form:"dataFim"         binding:"omitempty,datetime=2006-01-02"`
	CoordenadoriaID string `form:"coordenadoriaId" binding:"omitempty,uuid"`
	TecnicoID       string `form:"tecnicoId"       binding:"omitempty,uuid"`
}

// PeriodoRequest intervalo de datas (agenda .ics)
type PeriodoRequest struct {
	DataInicio string `form:"dataInicio" binding:"omitempty,datetime=2006-01-02"`
	DataFim    string `form:"dataFim"    binding:"omitempty,datetime=2006-01-02"`
}

// ── Agendamento: respostas ──

// ReferenciaResponse entidade referenciada (id + rótulo)
type ReferenciaResponse struct {
	ID    string `json:"id"`
	Texto string `json:"texto"`
}

// TecnicoResponse técnico resumido
type TecnicoResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// AgendamentoResponse agendamento com relações
type AgendamentoResponse struct {
	ID                     string              `json:"id"`
	Municipe               *string             `json:"municipe"`
	RG                     *string             `json:"rg"`
	CPF                    *string             `json:"cpf"`
	Processo               *string             `json:"processo"`
	DataHora               time.Time           `json:"dataHora"`
	DataFim                time.Time           `json:"dataFim"`
	Resumo                 *string             `json:"resumo"`
	Status                 string              `json:"status"`
	TipoAgendamentoID      *string             `json:"tipoAgendamentoId"`
	MotivoNaoAtendimentoID *string             `json:"motivoNaoAtendimentoId"`
	CoordenadoriaID        *string             `json:"coordenadoriaId"`
	TecnicoID              *string             `json:"tecnicoId"`
	TecnicoRF              *string             `json:"tecnicoRF"`
	Email                  *string             `json:"email"`
	Importado              bool                `json:"importado"`
	TipoAgendamento        *ReferenciaResponse `json:"tipoAgendamento,omitempty"`
	MotivoNaoAtendimento   *ReferenciaResponse `json:"motivoNaoAtendimento,omitempty"`
	Coordenadoria          *ReferenciaResponse `json:"coordenadoria,omitempty"`
	Tecnico                *TecnicoResponse    `json:"tecnico,omitempty"`
	CriadoEm               time.Time           `json:"criadoEm"`
	AtualizadoEm           time.Time           `json:"atualizadoEm"`
}
