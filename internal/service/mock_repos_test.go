package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
	"agendamento/backend/pkg/diretorio"
)

// ── Mock UsuarioRepository ──

type mockUsuarioRepo struct {
	usuarios   map[string]*model.Usuario // chave: id
	seq        int
	falhaCriar error
}

func newMockUsuarioRepo() *mockUsuarioRepo {
	return &mockUsuarioRepo{usuarios: make(map[string]*model.Usuario)}
}

func (m *mockUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cp := *u
	m.usuarios[u.ID] = &cp
	return nil
}

func (m *mockUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if m.falhaCriar != nil {
		return m.falhaCriar
	}
	for _, existente := range m.usuarios {
		if existente.Login == u.Login || existente.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == "" {
		m.seq++
		u.ID = fmt.Sprintf("usuario-%d", m.seq)
	}
	m.usuarios[u.ID] = u
	return nil
}

func (m *mockUsuarioRepo) GetByID(_ context.Context, id string) (*model.Usuario, error) {
	if u, ok := m.usuarios[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByLogin(_ context.Context, login string) (*model.Usuario, error) {
	for _, u := range m.usuarios {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) AtualizarCoordenadoria(_ context.Context, id, coordenadoriaID string) error {
	u, ok := m.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.CoordenadoriaID = &coordenadoriaID
	return nil
}

func (m *mockUsuarioRepo) AtualizarUltimoLogin(_ context.Context, id string, em time.Time) error {
	u, ok := m.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.UltimoLogin = &em
	return nil
}

func (m *mockUsuarioRepo) ListTecnicos(_ context.Context, coordenadoriaID string) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range m.usuarios {
		if u.Permissao != model.PermissaoTEC || !u.Status {
			continue
		}
		if coordenadoriaID != "" && (u.CoordenadoriaID == nil || *u.CoordenadoriaID != coordenadoriaID) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (m *mockUsuarioRepo) filtrar(f repository.UsuarioFiltro) []model.Usuario {
	var out []model.Usuario
	busca := strings.ToLower(f.Busca)
	for _, u := range m.usuarios {
		if busca != "" && !strings.Contains(strings.ToLower(u.Nome+" "+u.Login+" "+u.Email), busca) {
			continue
		}
		if f.Status != nil && u.Status != *f.Status {
			continue
		}
		if f.Permissao != "" && u.Permissao != f.Permissao {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out
}

func (m *mockUsuarioRepo) Count(_ context.Context, f repository.UsuarioFiltro) (int64, error) {
	return int64(len(m.filtrar(f))), nil
}

func (m *mockUsuarioRepo) List(_ context.Context, f repository.UsuarioFiltro, offset, limit int) ([]model.Usuario, error) {
	out := m.filtrar(f)
	if limit <= 0 {
		return out, nil
	}
	if offset >= len(out) {
		return []model.Usuario{}, nil
	}
	fim := offset + limit
	if fim > len(out) {
		fim = len(out)
	}
	return out[offset:fim], nil
}

// ── Mock CoordenadoriaRepository ──

type mockCoordenadoriaRepo struct {
	coordenadorias map[string]*model.Coordenadoria // chave: id
	seq            int
	// corrida simula outra requisição criando a mesma sigla antes do Create
	corrida bool
}

func newMockCoordenadoriaRepo() *mockCoordenadoriaRepo {
	return &mockCoordenadoriaRepo{coordenadorias: make(map[string]*model.Coordenadoria)}
}

func (m *mockCoordenadoriaRepo) inserir(c *model.Coordenadoria) {
	m.seq++
	c.ID = fmt.Sprintf("coord-%d", m.seq)
	m.coordenadorias[c.ID] = c
}

func (m *mockCoordenadoriaRepo) Create(_ context.Context, c *model.Coordenadoria) error {
	if m.corrida {
		m.corrida = false
		m.inserir(&model.Coordenadoria{Sigla: c.Sigla, Nome: c.Nome, Status: true})
	}
	for _, existente := range m.coordenadorias {
		if existente.Sigla == c.Sigla {
			return gorm.ErrDuplicatedKey
		}
	}
	m.inserir(c)
	return nil
}

func (m *mockCoordenadoriaRepo) GetByID(_ context.Context, id string) (*model.Coordenadoria, error) {
	if c, ok := m.coordenadorias[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoordenadoriaRepo) GetBySigla(_ context.Context, sigla string) (*model.Coordenadoria, error) {
	for _, c := range m.coordenadorias {
		if c.Sigla == sigla {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoordenadoriaRepo) ListAtivas(_ context.Context) ([]model.Coordenadoria, error) {
	var out []model.Coordenadoria
	for _, c := range m.coordenadorias {
		if c.Status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sigla < out[j].Sigla })
	return out, nil
}

// ── Mock TipoAgendamentoRepository ──

type mockTipoRepo struct {
	tipos      map[string]*model.TipoAgendamento // chave: texto
	falhaCriar error
}

func newMockTipoRepo() *mockTipoRepo {
	return &mockTipoRepo{tipos: make(map[string]*model.TipoAgendamento)}
}

func (m *mockTipoRepo) Create(_ context.Context, t *model.TipoAgendamento) error {
	if m.falhaCriar != nil {
		return m.falhaCriar
	}
	if _, ok := m.tipos[t.Texto]; ok {
		return gorm.ErrDuplicatedKey
	}
	t.ID = "tipo-" + t.Texto
	m.tipos[t.Texto] = t
	return nil
}

func (m *mockTipoRepo) GetByTexto(_ context.Context, texto string) (*model.TipoAgendamento, error) {
	if t, ok := m.tipos[texto]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTipoRepo) ListAtivos(_ context.Context) ([]model.TipoAgendamento, error) {
	var out []model.TipoAgendamento
	for _, t := range m.tipos {
		out = append(out, *t)
	}
	return out, nil
}

// ── Mock MotivoRepository ──

type mockMotivoRepo struct {
	motivos []model.Motivo
}

func (m *mockMotivoRepo) ListAtivos(_ context.Context) ([]model.Motivo, error) {
	return m.motivos, nil
}

// ── Mock AgendamentoRepository ──

// mockAgendamentoRepo reproduz os filtros e o índice único (processo, data_hora)
type mockAgendamentoRepo struct {
	agendamentos   map[string]*model.Agendamento
	coordenadorias *mockCoordenadoriaRepo
	motivos        *mockMotivoRepo
	seq            int
	falhaCriar     error
}

func newMockAgendamentoRepo(coords *mockCoordenadoriaRepo, motivos *mockMotivoRepo) *mockAgendamentoRepo {
	return &mockAgendamentoRepo{
		agendamentos:   make(map[string]*model.Agendamento),
		coordenadorias: coords,
		motivos:        motivos,
	}
}

func (m *mockAgendamentoRepo) Create(_ context.Context, a *model.Agendamento) error {
	if m.falhaCriar != nil {
		return m.falhaCriar
	}
	if a.Processo != nil && *a.Processo != "" {
		for _, e := range m.agendamentos {
			if e.Processo != nil && *e.Processo == *a.Processo && e.DataHora.Equal(a.DataHora) {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("ag-%d", m.seq)
	copia := *a
	m.agendamentos[a.ID] = &copia
	return nil
}

func (m *mockAgendamentoRepo) comRelacoes(a model.Agendamento) model.Agendamento {
	if a.CoordenadoriaID != nil && m.coordenadorias != nil {
		if c, ok := m.coordenadorias.coordenadorias[*a.CoordenadoriaID]; ok {
			a.Coordenadoria = c
		}
	}
	return a
}

func (m *mockAgendamentoRepo) GetByID(_ context.Context, id string) (*model.Agendamento, error) {
	a, ok := m.agendamentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := m.comRelacoes(*a)
	return &copia, nil
}

func (m *mockAgendamentoRepo) Update(_ context.Context, a *model.Agendamento) error {
	if _, ok := m.agendamentos[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *a
	m.agendamentos[a.ID] = &copia
	return nil
}

func (m *mockAgendamentoRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.agendamentos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.agendamentos, id)
	return nil
}

func (m *mockAgendamentoRepo) ExisteDuplicado(_ context.Context, processo string, dataHora time.Time) (bool, error) {
	for _, a := range m.agendamentos {
		if a.Processo != nil && *a.Processo == processo && a.DataHora.Equal(dataHora) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAgendamentoRepo) filtrar(f repository.AgendamentoFiltro) []model.Agendamento {
	var out []model.Agendamento
	for _, a := range m.agendamentos {
		if casa(a, f) {
			out = append(out, m.comRelacoes(*a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataHora.Before(out[j].DataHora) })
	return out
}

func casa(a *model.Agendamento, f repository.AgendamentoFiltro) bool {
	if f.Busca != "" {
		b := strings.ToLower(f.Busca)
		if !contem(a.Municipe, b) && !contem(a.Processo, b) && !contem(a.CPF, b) {
			return false
		}
	}
	if len(f.Status) > 0 {
		achou := false
		for _, s := range f.Status {
			if a.Status == s {
				achou = true
			}
		}
		if !achou {
			return false
		}
	}
	if f.StatusDiferente != "" && a.Status == f.StatusDiferente {
		return false
	}
	if f.Inicio != nil && a.DataHora.Before(*f.Inicio) {
		return false
	}
	if f.Fim != nil && !a.DataHora.Before(*f.Fim) {
		return false
	}
	if f.CoordenadoriaID != "" && (a.CoordenadoriaID == nil || *a.CoordenadoriaID != f.CoordenadoriaID) {
		return false
	}
	if f.TecnicoID != "" && (a.TecnicoID == nil || *a.TecnicoID != f.TecnicoID) {
		return false
	}
	return true
}

func contem(s *string, sub string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), sub)
}

func (m *mockAgendamentoRepo) Count(_ context.Context, f repository.AgendamentoFiltro) (int64, error) {
	return int64(len(m.filtrar(f))), nil
}

func (m *mockAgendamentoRepo) List(_ context.Context, f repository.AgendamentoFiltro, offset, limit int) ([]model.Agendamento, error) {
	todos := m.filtrar(f)
	if limit <= 0 {
		return todos, nil
	}
	if offset > len(todos) {
		return nil, nil
	}
	fim := offset + limit
	if fim > len(todos) {
		fim = len(todos)
	}
	return todos[offset:fim], nil
}

func (m *mockAgendamentoRepo) ListDatas(_ context.Context, f repository.AgendamentoFiltro) ([]time.Time, error) {
	var out []time.Time
	for _, a := range m.filtrar(f) {
		out = append(out, a.DataHora)
	}
	return out, nil
}

func (m *mockAgendamentoRepo) ContarPorMotivo(_ context.Context, f repository.AgendamentoFiltro) ([]repository.MotivoContagem, error) {
	totais := make(map[string]int64)
	for _, a := range m.filtrar(f) {
		chave := ""
		if a.MotivoNaoAtendimentoID != nil {
			chave = *a.MotivoNaoAtendimentoID
		}
		totais[chave]++
	}
	var out []repository.MotivoContagem
	for chave, total := range totais {
		c := repository.MotivoContagem{Total: total}
		if chave != "" {
			id := chave
			c.MotivoID = &id
			for _, mo := range m.motivos.motivos {
				if mo.ID == chave {
					texto := mo.Texto
					c.Texto = &texto
				}
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

// ── Mock Diretorio ──

type mockDiretorio struct {
	pessoas map[string]*diretorio.Pessoa // chave: login
	senhas  map[string]string
	falha   error
}

func newMockDiretorio() *mockDiretorio {
	return &mockDiretorio{
		pessoas: make(map[string]*diretorio.Pessoa),
		senhas:  make(map[string]string),
	}
}

func (m *mockDiretorio) BuscarPorLogin(_ context.Context, login string) (*diretorio.Pessoa, error) {
	if m.falha != nil {
		return nil, m.falha
	}
	if p, ok := m.pessoas[login]; ok {
		return p, nil
	}
	return nil, diretorio.ErrNaoEncontrado
}

func (m *mockDiretorio) BuscarPorNome(_ context.Context, nome string) (*diretorio.Pessoa, error) {
	if m.falha != nil {
		return nil, m.falha
	}
	for _, p := range m.pessoas {
		if strings.EqualFold(p.Nome, nome) {
			return p, nil
		}
	}
	return nil, diretorio.ErrNaoEncontrado
}

func (m *mockDiretorio) Autenticar(_ context.Context, login, senha string) error {
	if m.falha != nil {
		return m.falha
	}
	if s, ok := m.senhas[login]; ok && s == senha {
		return nil
	}
	return diretorio.ErrCredenciaisInvalida
}

// ── Mock Trava ──

type mockTrava struct {
	ocupada   bool
	falha     error
	liberadas int
}

func (m *mockTrava) TryLock(_ context.Context, _ string, _ time.Duration) (string, bool, error) {
	if m.falha != nil {
		return "", false, m.falha
	}
	if m.ocupada {
		return "", false, nil
	}
	m.ocupada = true
	return "token", true, nil
}

func (m *mockTrava) Unlock(_ context.Context, _ string, token string) error {
	if token != "token" {
		return errors.New("token desconhecido")
	}
	m.ocupada = false
	m.liberadas++
	return nil
}

// ── Montagem ──

type mocks struct {
	usuarios       *mockUsuarioRepo
	coordenadorias *mockCoordenadoriaRepo
	tipos          *mockTipoRepo
	motivos        *mockMotivoRepo
	agendamentos   *mockAgendamentoRepo
	diretorio      *mockDiretorio
}

func newMocks() (*mocks, *repository.Repository) {
	m := &mocks{
		usuarios:       newMockUsuarioRepo(),
		coordenadorias: newMockCoordenadoriaRepo(),
		tipos:          newMockTipoRepo(),
		motivos:        &mockMotivoRepo{},
		diretorio:      newMockDiretorio(),
	}
	m.agendamentos = newMockAgendamentoRepo(m.coordenadorias, m.motivos)
	return m, &repository.Repository{
		Usuario:         m.usuarios,
		Coordenadoria:   m.coordenadorias,
		TipoAgendamento: m.tipos,
		Motivo:          m.motivos,
		Agendamento:     m.agendamentos,
	}
}

func ptr(s string) *string { return &s }
