package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agendamento/backend/internal/model"
)

// AgendamentoFiltro critérios combinados com AND; campos vazios são ignorados
type AgendamentoFiltro struct {
	Busca           string     // municipe, processo ou cpf contém
	Status          []string   // status IN
	StatusDiferente string     // status <>
	Inicio          *time.Time // data_hora >= Inicio
	Fim             *time.Time // data_hora < Fim
	CoordenadoriaID string
	TecnicoID       string
}

// MotivoContagem total de agendamentos por motivo de não atendimento
type MotivoContagem struct {
	MotivoID *string
	Texto    *string
	Total    int64
}

// AgendamentoRepository acesso a agendamentos
type AgendamentoRepository interface {
	Create(ctx context.Context, a *model.Agendamento) error
	GetByID(ctx context.Context, id string) (*model.Agendamento, error)
	Update(ctx context.Context, a *model.Agendamento) error
	Delete(ctx context.Context, id string) error
	ExisteDuplicado(ctx context.Context, processo string, dataHora time.Time) (bool, error)
	Count(ctx context.Context, f AgendamentoFiltro) (int64, error)
	List(ctx context.Context, f AgendamentoFiltro, offset, limit int) ([]model.Agendamento, error)
	ListDatas(ctx context.Context, f AgendamentoFiltro) ([]time.Time, error)
	ContarPorMotivo(ctx context.Context, f AgendamentoFiltro) ([]MotivoContagem, error)
}

type agendamentoRepo struct {
	db *gorm.DB
}

// NewAgendamentoRepo cria o repositório
func NewAgendamentoRepo(db *gorm.DB) AgendamentoRepository {
	return &agendamentoRepo{db: db}
}

func (r *agendamentoRepo) Create(ctx context.Context, a *model.Agendamento) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *agendamentoRepo) GetByID(ctx context.Context, id string) (*model.Agendamento, error) {
	var a model.Agendamento
	err := preloadRelacoes(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *agendamentoRepo) Update(ctx context.Context, a *model.Agendamento) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *agendamentoRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Agendamento{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *agendamentoRepo) ExisteDuplicado(ctx context.Context, processo string, dataHora time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Agendamento{}).
		Where("processo = ? AND data_hora = ?", processo, dataHora).
		Count(&n).Error
	return n > 0, err
}

func (r *agendamentoRepo) Count(ctx context.Context, f AgendamentoFiltro) (int64, error) {
	var n int64
	err := aplicarFiltro(r.db.WithContext(ctx).Model(&model.Agendamento{}), f, "").Count(&n).Error
	return n, err
}

func (r *agendamentoRepo) List(ctx context.Context, f AgendamentoFiltro, offset, limit int) ([]model.Agendamento, error) {
	var as []model.Agendamento
	db := aplicarFiltro(preloadRelacoes(r.db.WithContext(ctx)), f, "").
		Order("data_hora ASC")
	if limit > 0 {
		db = db.Offset(offset).Limit(limit)
	}
	if err := db.Find(&as).Error; err != nil {
		return nil, err
	}
	return as, nil
}

func (r *agendamentoRepo) ListDatas(ctx context.Context, f AgendamentoFiltro) ([]time.Time, error) {
	var datas []time.Time
	err := aplicarFiltro(r.db.WithContext(ctx).Model(&model.Agendamento{}), f, "").
		Pluck("data_hora", &datas).Error
	return datas, err
}

func (r *agendamentoRepo) ContarPorMotivo(ctx context.Context, f AgendamentoFiltro) ([]MotivoContagem, error) {
	var out []MotivoContagem
	err := aplicarFiltro(r.db.WithContext(ctx).Table("agendamentos a"), f, "a.").
		Select("a.motivo_nao_atendimento_id AS motivo_id, m.texto AS texto, COUNT(*) AS total").
		Joins("LEFT JOIN motivos m ON m.id = a.motivo_nao_atendimento_id").
		Group("a.motivo_nao_atendimento_id, m.texto").
		Order("total DESC").
		Scan(&out).Error
	return out, err
}

func preloadRelacoes(db *gorm.DB) *gorm.DB {
	return db.
		Preload("TipoAgendamento").
		Preload("MotivoNaoAtendimento").
		Preload("Coordenadoria").
		Preload("Tecnico")
}

// aplicarFiltro p é o prefixo da tabela quando há JOIN ("a.")
func aplicarFiltro(db *gorm.DB, f AgendamentoFiltro, p string) *gorm.DB {
	if busca := strings.TrimSpace(f.Busca); busca != "" {
		like := "%" + busca + "%"
		db = db.Where("("+p+"municipe ILIKE ? OR "+p+"processo ILIKE ? OR "+p+"cpf ILIKE ?)", like, like, like)
	}
	if len(f.Status) > 0 {
		db = db.Where(p+"status IN ?", f.Status)
	}
	if f.StatusDiferente != "" {
		db = db.Where(p+"status <> ?", f.StatusDiferente)
	}
	if f.Inicio != nil {
		db = db.Where(p+"data_hora >= ?", *f.Inicio)
	}
	if f.Fim != nil {
		db = db.Where(p+"data_hora < ?", *f.Fim)
	}
	if f.CoordenadoriaID != "" {
		db = db.Where(p+"coordenadoria_id = ?", f.CoordenadoriaID)
	}
	if f.TecnicoID != "" {
		db = db.Where(p+"tecnico_id = ?", f.TecnicoID)
	}
	return db
}
