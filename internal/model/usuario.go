package model

import "time"

// Permissões de usuário
const (
	PermissaoDEV         = "DEV"
	PermissaoADM         = "ADM"
	PermissaoTEC         = "TEC"
	PermissaoUSR         = "USR"
	PermissaoPontoFocal  = "PONTO_FOCAL"
	PermissaoCoordenador = "COORDENADOR"
	PermissaoPortaria    = "PORTARIA"
)

// Permissoes todas as permissões válidas
var Permissoes = []string{
	PermissaoDEV, PermissaoADM, PermissaoTEC, PermissaoUSR,
	PermissaoPontoFocal, PermissaoCoordenador, PermissaoPortaria,
}

// EscopoCoordenadoria permissões restritas à própria coordenadoria
func EscopoCoordenadoria(permissao string) bool {
	return permissao == PermissaoPontoFocal || permissao == PermissaoCoordenador
}

// Usuario tabela usuarios
type Usuario struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nome            string     `gorm:"type:varchar(255);not null"                     json:"nome"`
	Login           string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"login"`
	Email           string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Permissao       string     `gorm:"type:varchar(20);not null;default:'USR'"        json:"permissao"`
	Status          bool       `gorm:"not null;default:true"                          json:"status"`
	CoordenadoriaID *string    `gorm:"type:uuid"                                      json:"coordenadoriaId"`
	Senha           *string    `gorm:"type:varchar(255)"                              json:"-"`
	UltimoLogin     *time.Time `                                                      json:"ultimoLogin,omitempty"`
	BaseModel

	Coordenadoria *Coordenadoria `gorm:"foreignKey:CoordenadoriaID" json:"coordenadoria,omitempty"`
}

// TableName nome da tabela
func (Usuario) TableName() string { return "usuarios" }
