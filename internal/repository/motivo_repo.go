package repository

import (
	"context"

	"gorm.io/gorm"

	"agendamento/backend/internal/model"
)

// MotivoRepository acesso a motivos
type MotivoRepository interface {
	ListAtivos(ctx context.Context) ([]model.Motivo, error)
}

type motivoRepo struct {
	db *gorm.DB
}

// NewMotivoRepo cria o repositório
func NewMotivoRepo(db *gorm.DB) MotivoRepository {
	return &motivoRepo{db: db}
}

func (r *motivoRepo) ListAtivos(ctx context.Context) ([]model.Motivo, error) {
	var ms []model.Motivo
	if err := r.db.WithContext(ctx).Where("status = ?", true).Order("texto ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}
