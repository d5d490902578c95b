package model

// Coordenadoria unidade administrativa, identificada pela sigla
type Coordenadoria struct {
	ID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Sigla  string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"sigla"`
	Nome   *string `gorm:"type:varchar(255)"                              json:"nome"`
	Status bool    `gorm:"not null;default:true"                          json:"status"`
	BaseModel
}

// TableName nome da tabela
func (Coordenadoria) TableName() string { return "coordenadorias" }
