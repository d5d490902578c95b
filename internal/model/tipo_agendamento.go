package model

// TipoAgendamento chave natural: texto
type TipoAgendamento struct {
	ID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Texto  string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"texto"`
	Status bool   `gorm:"not null;default:true"                          json:"status"`
	BaseModel
}

// TableName nome da tabela
func (TipoAgendamento) TableName() string { return "tipos_agendamento" }
