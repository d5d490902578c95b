package repository

import "gorm.io/gorm"

// Repository agrega todos os repositórios
type Repository struct {
	Usuario         UsuarioRepository
	Coordenadoria   CoordenadoriaRepository
	TipoAgendamento TipoAgendamentoRepository
	Motivo          MotivoRepository
	Agendamento     AgendamentoRepository
}

// NewRepository cria o agregado
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Usuario:         NewUsuarioRepo(db),
		Coordenadoria:   NewCoordenadoriaRepo(db),
		TipoAgendamento: NewTipoAgendamentoRepo(db),
		Motivo:          NewMotivoRepo(db),
		Agendamento:     NewAgendamentoRepo(db),
	}
}
