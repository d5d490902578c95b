package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agendamento/backend/config"
	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
	"agendamento/backend/internal/planilha"
	"agendamento/backend/internal/repository"
	"agendamento/backend/pkg/paginacao"
)

// ── Erros de agendamento ──

var (
	ErrAgendamentoNaoEncontrado = errors.New("agendamento não encontrado")
	ErrAgendamentoDuplicado     = errors.New("já existe agendamento para este processo nesta data e hora")
	ErrDataHoraInvalida         = planilha.ErrDataHoraInvalida
	ErrTecnicoNaoEncontrado     = errors.New("técnico não encontrado")
)

// layoutData formato das datas recebidas em filtros
const layoutData = "2006-01-02"

// AgendamentoService consulta, manutenção e relatórios de agendamentos.
// Toda consulta respeita o escopo da permissão do solicitante.
type AgendamentoService interface {
	Criar(ctx context.Context, req *dto.CriarAgendamentoRequest, sol Solicitante) (*dto.AgendamentoResponse, error)
	Buscar(ctx context.Context, req *dto.BuscarAgendamentosRequest, sol Solicitante) (*dto.Pagina[dto.AgendamentoResponse], error)
	BuscarDoDia(ctx context.Context, sol Solicitante) ([]dto.AgendamentoResponse, error)
	BuscarPorID(ctx context.Context, id string) (*dto.AgendamentoResponse, error)
	Atualizar(ctx context.Context, id string, req *dto.AtualizarAgendamentoRequest, sol Solicitante) (*dto.AgendamentoResponse, error)
	Excluir(ctx context.Context, id string, sol Solicitante) error
	Dashboard(ctx context.Context, req *dto.DashboardRequest, sol Solicitante) (*dto.DashboardResponse, error)
	ExportarAgenda(ctx context.Context, req *dto.PeriodoRequest, sol Solicitante) ([]byte, error)
	ExportarPlanilha(ctx context.Context, req *dto.BuscarAgendamentosRequest, sol Solicitante) (*bytes.Buffer, string, error)
}

type agendamentoService struct {
	repo       *repository.Repository
	resolvedor ResolvedorEntidades
	duracao    time.Duration
	local      *time.Location
	agora      func() time.Time
	logger     *zap.Logger
}

// NewAgendamentoService cria o serviço
func NewAgendamentoService(
	cfg *config.Config,
	repo *repository.Repository,
	resolvedor ResolvedorEntidades,
	logger *zap.Logger,
) AgendamentoService {
	duracao := cfg.Importacao.DuracaoPadrao
	if duracao <= 0 {
		duracao = time.Hour
	}
	return &agendamentoService{
		repo:       repo,
		resolvedor: resolvedor,
		duracao:    duracao,
		local:      cfg.App.Location(),
		agora:      time.Now,
		logger:     logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Criar
// ═══════════════════════════════════════════════════════════

func (s *agendamentoService) Criar(ctx context.Context, req *dto.CriarAgendamentoRequest, sol Solicitante) (*dto.AgendamentoResponse, error) {
	if req.DataHora.IsZero() {
		return nil, ErrDataHoraInvalida
	}
	inicio := relogioUTC(req.DataHora)
	fim := inicio.Add(s.duracao)
	if req.Duracao > 0 {
		fim = inicio.Add(time.Duration(req.Duracao) * time.Minute)
	}
	if req.DataFim != nil {
		fim = relogioUTC(*req.DataFim)
	}
	if fim.Before(inicio) {
		return nil, ErrDataHoraInvalida
	}

	status := req.Status
	if status == "" {
		status = model.StatusAgendado
	}

	if req.Processo != nil && *req.Processo != "" {
		existe, err := s.repo.Agendamento.ExisteDuplicado(ctx, *req.Processo, inicio)
		if err != nil {
			s.logger.Error("falha ao verificar duplicidade", zap.Error(err))
			return nil, err
		}
		if existe {
			return nil, ErrAgendamentoDuplicado
		}
	}

	tipoID := req.TipoAgendamentoID
	if tipoID == nil && req.TipoAgendamentoTexto != "" {
		id, err := s.resolvedor.TipoAgendamento(ctx, req.TipoAgendamentoTexto)
		if err != nil {
			s.logger.Error("falha ao resolver tipo de agendamento", zap.Error(err))
			return nil, err
		}
		tipoID = id
	}

	tecnicoID := req.TecnicoID
	if tecnicoID == nil && req.TecnicoRF != "" {
		tecnicoID = s.resolvedor.Tecnico(ctx, req.TecnicoRF, req.CoordenadoriaID)
	}

	a := &model.Agendamento{
		Municipe:          titleCaseOuNil(req.Municipe),
		RG:                req.RG,
		CPF:               req.CPF,
		Processo:          req.Processo,
		DataHora:          inicio,
		DataFim:           fim,
		Resumo:            req.Resumo,
		Status:            status,
		TipoAgendamentoID: tipoID,
		CoordenadoriaID:   req.CoordenadoriaID,
		TecnicoID:         tecnicoID,
		TecnicoRF:         textoOuNil(req.TecnicoRF),
		Email:             req.Email,
	}
	if err := s.repo.Agendamento.Create(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAgendamentoDuplicado
		}
		s.logger.Error("falha ao criar agendamento", zap.Error(err))
		return nil, err
	}
	s.logger.Info("agendamento criado", zap.String("id", a.ID), zap.String("por", sol.ID))

	return s.BuscarPorID(ctx, a.ID)
}

// ═══════════════════════════════════════════════════════════
// Consultas
// ═══════════════════════════════════════════════════════════

func (s *agendamentoService) Buscar(ctx context.Context, req *dto.BuscarAgendamentosRequest, sol Solicitante) (*dto.Pagina[dto.AgendamentoResponse], error) {
	filtro, err := filtroDaBusca(req)
	if err != nil {
		return nil, err
	}
	filtro, ok := sol.escopo(filtro)
	if !ok {
		return dto.PaginaVazia[dto.AgendamentoResponse](), nil
	}

	total, err := s.repo.Agendamento.Count(ctx, filtro)
	if err != nil {
		s.logger.Error("falha ao contar agendamentos", zap.Error(err))
		return nil, err
	}
	if total == 0 {
		return dto.PaginaVazia[dto.AgendamentoResponse](), nil
	}

	pagina, limite := paginacao.VerificaLimite(req.Pagina, req.Limite, total)
	lista, err := s.repo.Agendamento.List(ctx, filtro, paginacao.Offset(pagina, limite), limite)
	if err != nil {
		s.logger.Error("falha ao listar agendamentos", zap.Error(err))
		return nil, err
	}

	return &dto.Pagina[dto.AgendamentoResponse]{
		Total:  total,
		Pagina: pagina,
		Limite: limite,
		Data:   paraRespostas(lista),
	}, nil
}

func (s *agendamentoService) BuscarDoDia(ctx context.Context, sol Solicitante) ([]dto.AgendamentoResponse, error) {
	inicio := s.hoje()
	fim := inicio.AddDate(0, 0, 1)
	filtro, ok := sol.escopo(repository.AgendamentoFiltro{
		Inicio:          &inicio,
		Fim:             &fim,
		StatusDiferente: model.StatusCancelado,
	})
	if !ok {
		return []dto.AgendamentoResponse{}, nil
	}

	lista, err := s.repo.Agendamento.List(ctx, filtro, 0, 0)
	if err != nil {
		s.logger.Error("falha ao listar agendamentos do dia", zap.Error(err))
		return nil, err
	}
	return paraRespostas(lista), nil
}

func (s *agendamentoService) BuscarPorID(ctx context.Context, id string) (*dto.AgendamentoResponse, error) {
	a, err := s.repo.Agendamento.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgendamentoNaoEncontrado
		}
		s.logger.Error("falha ao buscar agendamento", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := paraResposta(a)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// Atualizar / Excluir
// ═══════════════════════════════════════════════════════════

func (s *agendamentoService) Atualizar(ctx context.Context, id string, req *dto.AtualizarAgendamentoRequest, sol Solicitante) (*dto.AgendamentoResponse, error) {
	a, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}

	restrito := model.EscopoCoordenadoria(sol.Permissao)
	if restrito {
		if err := autorizarUnidade(a, sol); err != nil {
			return nil, err
		}
		if req.CoordenadoriaID != nil && *req.CoordenadoriaID != sol.coordenadoria() {
			return nil, ErrSemPermissaoMudarUnidade
		}
	}

	tecnicoID := req.TecnicoID
	if tecnicoID == nil && req.TecnicoRF != nil && *req.TecnicoRF != "" {
		unidade := a.CoordenadoriaID
		if req.CoordenadoriaID != nil {
			unidade = req.CoordenadoriaID
		}
		tecnicoID = s.resolvedor.Tecnico(ctx, *req.TecnicoRF, unidade)
		if tecnicoID == nil {
			return nil, ErrTecnicoNaoEncontrado
		}
	}
	if tecnicoID != nil && restrito {
		if err := s.autorizarTecnico(ctx, *tecnicoID, sol); err != nil {
			return nil, err
		}
	}

	aplicarAtualizacao(a, req, tecnicoID)
	if a.DataFim.Before(a.DataHora) {
		return nil, ErrDataHoraInvalida
	}

	if err := s.repo.Agendamento.Update(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAgendamentoDuplicado
		}
		s.logger.Error("falha ao atualizar agendamento", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("agendamento atualizado", zap.String("id", id), zap.String("por", sol.ID))

	return s.BuscarPorID(ctx, id)
}

func (s *agendamentoService) Excluir(ctx context.Context, id string, sol Solicitante) error {
	a, err := s.carregar(ctx, id)
	if err != nil {
		return err
	}
	if model.EscopoCoordenadoria(sol.Permissao) {
		if err := autorizarUnidade(a, sol); err != nil {
			return err
		}
	}
	if err := s.repo.Agendamento.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgendamentoNaoEncontrado
		}
		s.logger.Error("falha ao excluir agendamento", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("agendamento excluído", zap.String("id", id), zap.String("por", sol.ID))
	return nil
}

func (s *agendamentoService) carregar(ctx context.Context, id string) (*model.Agendamento, error) {
	a, err := s.repo.Agendamento.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgendamentoNaoEncontrado
		}
		s.logger.Error("falha ao buscar agendamento", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

// autorizarTecnico o técnico precisa ser TEC e da mesma coordenadoria
func (s *agendamentoService) autorizarTecnico(ctx context.Context, tecnicoID string, sol Solicitante) error {
	tec, err := s.repo.Usuario.GetByID(ctx, tecnicoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTecnicoNaoEncontrado
		}
		return err
	}
	if tec.Permissao != model.PermissaoTEC || tec.CoordenadoriaID == nil || *tec.CoordenadoriaID != sol.coordenadoria() {
		return ErrSemPermissaoTecnico
	}
	return nil
}

func autorizarUnidade(a *model.Agendamento, sol Solicitante) error {
	unidade := sol.coordenadoria()
	if unidade == "" {
		return ErrSemPermissaoSemUnidade
	}
	if a.CoordenadoriaID == nil || *a.CoordenadoriaID != unidade {
		return ErrSemPermissaoCoordenadoria
	}
	return nil
}

func aplicarAtualizacao(a *model.Agendamento, req *dto.AtualizarAgendamentoRequest, tecnicoID *string) {
	if req.Municipe != nil {
		a.Municipe = titleCaseOuNil(req.Municipe)
	}
	if req.RG != nil {
		a.RG = req.RG
	}
	if req.CPF != nil {
		a.CPF = req.CPF
	}
	if req.Processo != nil {
		a.Processo = req.Processo
	}
	if req.Resumo != nil {
		a.Resumo = req.Resumo
	}
	if req.Email != nil {
		a.Email = req.Email
	}
	if req.TipoAgendamentoID != nil {
		a.TipoAgendamentoID = req.TipoAgendamentoID
	}
	if req.CoordenadoriaID != nil {
		a.CoordenadoriaID = req.CoordenadoriaID
	}
	if tecnicoID != nil {
		a.TecnicoID = tecnicoID
	}
	if req.TecnicoRF != nil {
		a.TecnicoRF = req.TecnicoRF
	}
	if req.MotivoNaoAtendimentoID != nil {
		a.MotivoNaoAtendimentoID = req.MotivoNaoAtendimentoID
	}

	if req.DataHora != nil {
		duracao := a.DataFim.Sub(a.DataHora)
		a.DataHora = relogioUTC(*req.DataHora)
		if req.DataFim == nil {
			a.DataFim = a.DataHora.Add(duracao)
		}
	}
	if req.DataFim != nil {
		a.DataFim = relogioUTC(*req.DataFim)
	}

	if req.Status != nil {
		a.Status = *req.Status
		if model.LimpaMotivo(a.Status) {
			a.MotivoNaoAtendimentoID = nil
		}
	}

	// relações carregadas ficariam desatualizadas
	a.TipoAgendamento = nil
	a.MotivoNaoAtendimento = nil
	a.Coordenadoria = nil
	a.Tecnico = nil
}

// ── Auxiliares ──

// filtroDaBusca dataFim é inclusiva: vira o início do dia seguinte
func filtroDaBusca(req *dto.BuscarAgendamentosRequest) (repository.AgendamentoFiltro, error) {
	f := repository.AgendamentoFiltro{
		Busca:           req.Busca,
		CoordenadoriaID: req.CoordenadoriaID,
		TecnicoID:       req.TecnicoID,
	}
	if req.Status != "" {
		f.Status = []string{req.Status}
	}
	inicio, fim, err := periodo(req.DataInicio, req.DataFim)
	if err != nil {
		return f, err
	}
	f.Inicio, f.Fim = inicio, fim
	return f, nil
}

func periodo(dataInicio, dataFim string) (*time.Time, *time.Time, error) {
	var inicio, fim *time.Time
	if dataInicio != "" {
		t, err := time.Parse(layoutData, dataInicio)
		if err != nil {
			return nil, nil, ErrDataHoraInvalida
		}
		inicio = &t
	}
	if dataFim != "" {
		t, err := time.Parse(layoutData, dataFim)
		if err != nil {
			return nil, nil, ErrDataHoraInvalida
		}
		t = t.AddDate(0, 0, 1)
		fim = &t
	}
	return inicio, fim, nil
}

// hoje meia-noite da data local, codificada em UTC como os horários gravados
func (s *agendamentoService) hoje() time.Time {
	agora := s.agora().In(s.local)
	return time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)
}

// relogioUTC mantém o horário de parede e troca o fuso por UTC
func relogioUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func titleCaseOuNil(s *string) *string {
	if s == nil {
		return nil
	}
	return textoOuNil(planilha.TitleCase(*s))
}
