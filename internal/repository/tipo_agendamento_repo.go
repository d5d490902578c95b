package repository

import (
	"context"

	"gorm.io/gorm"

	"agendamento/backend/internal/model"
)

// TipoAgendamentoRepository acesso a tipos_agendamento
type TipoAgendamentoRepository interface {
	Create(ctx context.Context, t *model.TipoAgendamento) error
	GetByTexto(ctx context.Context, texto string) (*model.TipoAgendamento, error)
	ListAtivos(ctx context.Context) ([]model.TipoAgendamento, error)
}

type tipoAgendamentoRepo struct {
	db *gorm.DB
}

// NewTipoAgendamentoRepo cria o repositório
func NewTipoAgendamentoRepo(db *gorm.DB) TipoAgendamentoRepository {
	return &tipoAgendamentoRepo{db: db}
}

func (r *tipoAgendamentoRepo) Create(ctx context.Context, t *model.TipoAgendamento) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tipoAgendamentoRepo) GetByTexto(ctx context.Context, texto string) (*model.TipoAgendamento, error) {
	var t model.TipoAgendamento
	if err := r.db.WithContext(ctx).Where("texto = ?", texto).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tipoAgendamentoRepo) ListAtivos(ctx context.Context) ([]model.TipoAgendamento, error) {
	var ts []model.TipoAgendamento
	if err := r.db.WithContext(ctx).Where("status = ?", true).Order("texto ASC").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}
