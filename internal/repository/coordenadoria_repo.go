package repository

import (
	"context"

	"gorm.io/gorm"

	"agendamento/backend/internal/model"
)

// CoordenadoriaRepository acesso a coordenadorias
type CoordenadoriaRepository interface {
	Create(ctx context.Context, c *model.Coordenadoria) error
	GetByID(ctx context.Context, id string) (*model.Coordenadoria, error)
	GetBySigla(ctx context.Context, sigla string) (*model.Coordenadoria, error)
	ListAtivas(ctx context.Context) ([]model.Coordenadoria, error)
}

type coordenadoriaRepo struct {
	db *gorm.DB
}

// NewCoordenadoriaRepo cria o repositório
func NewCoordenadoriaRepo(db *gorm.DB) CoordenadoriaRepository {
	return &coordenadoriaRepo{db: db}
}

func (r *coordenadoriaRepo) Create(ctx context.Context, c *model.Coordenadoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *coordenadoriaRepo) GetByID(ctx context.Context, id string) (*model.Coordenadoria, error) {
	var c model.Coordenadoria
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *coordenadoriaRepo) GetBySigla(ctx context.Context, sigla string) (*model.Coordenadoria, error) {
	var c model.Coordenadoria
	if err := r.db.WithContext(ctx).Where("sigla = ?", sigla).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *coordenadoriaRepo) ListAtivas(ctx context.Context) ([]model.Coordenadoria, error) {
	var cs []model.Coordenadoria
	if err := r.db.WithContext(ctx).Where("status = ?", true).Order("sigla ASC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}
