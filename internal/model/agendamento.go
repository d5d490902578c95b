package model

import "time"

// Status do agendamento. AGENDADO é o estado inicial; os demais são finais.
const (
	StatusAgendado     = "AGENDADO"
	StatusAtendido     = "ATENDIDO"
	StatusConcluido    = "CONCLUIDO"
	StatusNaoRealizado = "NAO_REALIZADO"
	StatusCancelado    = "CANCELADO"
)

// StatusValidos lista completa, na ordem de exibição
var StatusValidos = []string{
	StatusAgendado, StatusAtendido, StatusConcluido, StatusNaoRealizado, StatusCancelado,
}

// StatusValido confere se s pertence ao enum
func StatusValido(s string) bool {
	for _, v := range StatusValidos {
		if v == s {
			return true
		}
	}
	return false
}

// LimpaMotivo status que removem o motivo de não atendimento
func LimpaMotivo(s string) bool {
	return s == StatusAtendido || s == StatusAgendado
}

// Agendamento tabela agendamentos.
// (processo, data_hora) é único quando processo não é vazio.
type Agendamento struct {
	ID                     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Municipe               *string   `gorm:"type:varchar(255)"                              json:"municipe"`
	RG                     *string   `gorm:"column:rg;type:varchar(30)"                     json:"rg"`
	CPF                    *string   `gorm:"column:cpf;type:varchar(30)"                    json:"cpf"`
	Processo               *string   `gorm:"type:varchar(100)"                              json:"processo"`
	DataHora               time.Time `gorm:"not null"                                       json:"dataHora"`
	DataFim                time.Time `gorm:"not null"                                       json:"dataFim"`
	Resumo                 *string   `gorm:"type:text"                                      json:"resumo"`
	Status                 string    `gorm:"type:varchar(20);not null;default:'AGENDADO'"   json:"status"`
	TipoAgendamentoID      *string   `gorm:"type:uuid"                                      json:"tipoAgendamentoId"`
	MotivoNaoAtendimentoID *string   `gorm:"type:uuid"                                      json:"motivoNaoAtendimentoId"`
	CoordenadoriaID        *string   `gorm:"type:uuid"                                      json:"coordenadoriaId"`
	TecnicoID              *string   `gorm:"type:uuid"                                      json:"tecnicoId"`
	TecnicoRF              *string   `gorm:"column:tecnico_rf;type:varchar(30)"             json:"tecnicoRF"`
	Email                  *string   `gorm:"type:varchar(255)"                              json:"email"`
	Importado              bool      `gorm:"not null;default:false"                         json:"importado"`
	BaseModel

	TipoAgendamento      *TipoAgendamento `gorm:"foreignKey:TipoAgendamentoID"      json:"tipoAgendamento,omitempty"`
	MotivoNaoAtendimento *Motivo          `gorm:"foreignKey:MotivoNaoAtendimentoID" json:"motivoNaoAtendimento,omitempty"`
	Coordenadoria        *Coordenadoria   `gorm:"foreignKey:CoordenadoriaID"        json:"coordenadoria,omitempty"`
	Tecnico              *Usuario         `gorm:"foreignKey:TecnicoID"              json:"tecnico,omitempty"`
}

// TableName nome da tabela
func (Agendamento) TableName() string { return "agendamentos" }
