package model

import "time"

// BaseModel campos de auditoria comuns
type BaseModel struct {
	CriadoEm     time.Time `gorm:"column:criado_em;not null;autoCreateTime"     json:"criadoEm"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em;not null;autoUpdateTime" json:"atualizadoEm"`
}
