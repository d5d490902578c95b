package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"agendamento/backend/internal/model"
)

// UsuarioRepository acesso a usuarios
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	Update(ctx context.Context, usuario *model.Usuario) error
	GetByID(ctx context.Context, id string) (*model.Usuario, error)
	GetByLogin(ctx context.Context, login string) (*model.Usuario, error)
	AtualizarCoordenadoria(ctx context.Context, id, coordenadoriaID string) error
	AtualizarUltimoLogin(ctx context.Context, id string, em time.Time) error
	ListTecnicos(ctx context.Context, coordenadoriaID string) ([]model.Usuario, error)
	Count(ctx context.Context, f UsuarioFiltro) (int64, error)
	List(ctx context.Context, f UsuarioFiltro, offset, limit int) ([]model.Usuario, error)
}

// UsuarioFiltro filtros da listagem administrativa; zero = sem filtro
type UsuarioFiltro struct {
	Busca     string
	Status    *bool
	Permissao string
}

type usuarioRepo struct {
	db *gorm.DB
}

// NewUsuarioRepo cria o repositório
func NewUsuarioRepo(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db: db}
}

func (r *usuarioRepo) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepo) Update(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Omit("Coordenadoria").Save(usuario).Error
}

func (r *usuarioRepo) GetByID(ctx context.Context, id string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Coordenadoria").
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) GetByLogin(ctx context.Context, login string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Coordenadoria").
		Where("login = ?", login).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) AtualizarCoordenadoria(ctx context.Context, id, coordenadoriaID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Where("id = ?", id).
		Update("coordenadoria_id", coordenadoriaID).Error
}

func (r *usuarioRepo) AtualizarUltimoLogin(ctx context.Context, id string, em time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Where("id = ?", id).
		Update("ultimo_login", em).Error
}

func (r *usuarioRepo) ListTecnicos(ctx context.Context, coordenadoriaID string) ([]model.Usuario, error) {
	var us []model.Usuario
	db := r.db.WithContext(ctx).
		Where("permissao = ? AND status = ?", model.PermissaoTEC, true)
	if coordenadoriaID != "" {
		db = db.Where("coordenadoria_id = ?", coordenadoriaID)
	}
	if err := db.Order("nome ASC").Find(&us).Error; err != nil {
		return nil, err
	}
	return us, nil
}

func aplicarFiltroUsuario(db *gorm.DB, f UsuarioFiltro) *gorm.DB {
	if busca := strings.TrimSpace(f.Busca); busca != "" {
		like := "%" + busca + "%"
		db = db.Where("nome ILIKE ? OR login ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Permissao != "" {
		db = db.Where("permissao = ?", f.Permissao)
	}
	return db
}

func (r *usuarioRepo) Count(ctx context.Context, f UsuarioFiltro) (int64, error) {
	var n int64
	err := aplicarFiltroUsuario(r.db.WithContext(ctx).Model(&model.Usuario{}), f).Count(&n).Error
	return n, err
}

func (r *usuarioRepo) List(ctx context.Context, f UsuarioFiltro, offset, limit int) ([]model.Usuario, error) {
	var us []model.Usuario
	db := aplicarFiltroUsuario(r.db.WithContext(ctx).Preload("Coordenadoria"), f).
		Order("nome ASC")
	if limit > 0 {
		db = db.Offset(offset).Limit(limit)
	}
	if err := db.Find(&us).Error; err != nil {
		return nil, err
	}
	return us, nil
}
