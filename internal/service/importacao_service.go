package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agendamento/backend/config"
	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
	"agendamento/backend/internal/planilha"
	"agendamento/backend/internal/repository"
)

// ── Erros da importação ──

var (
	ErrArquivoInvalido       = errors.New("arquivo de planilha inválido")
	ErrImportacaoEmAndamento = errors.New("já existe uma importação em andamento")
)

// chaveTravaImportacao chave da trava distribuída
const chaveTravaImportacao = "importacao:agendamentos"

// ImportacaoService importação de planilhas de agendamento
type ImportacaoService interface {
	// Importar lê a planilha e grava os agendamentos linha a linha.
	// coordenadoriaID, se informado, prevalece sobre a sigla das linhas.
	Importar(ctx context.Context, arquivo io.Reader, coordenadoriaID string) (*dto.ResultadoImportacao, error)
}

type importacaoService struct {
	repo       *repository.Repository
	resolvedor ResolvedorEntidades
	trava      Trava
	duracao    time.Duration
	lockTTL    time.Duration
	logger     *zap.Logger
}

// NewImportacaoService cria o serviço. trava pode ser nil.
func NewImportacaoService(
	cfg *config.Config,
	repo *repository.Repository,
	resolvedor ResolvedorEntidades,
	trava Trava,
	logger *zap.Logger,
) ImportacaoService {
	duracao := cfg.Importacao.DuracaoPadrao
	if duracao <= 0 {
		duracao = time.Hour
	}
	return &importacaoService{
		repo:       repo,
		resolvedor: resolvedor,
		trava:      trava,
		duracao:    duracao,
		lockTTL:    cfg.Importacao.LockTTL,
		logger:     logger,
	}
}

// acumulador contagens de uma única chamada de Importar
type acumulador struct {
	dto.ResultadoImportacao
}

func (a *acumulador) registrar(c planilha.Classe) {
	switch c {
	case planilha.ClassePulada:
		a.Pulados++
	case planilha.ClasseErro:
		a.Erros++
	}
}

func (s *importacaoService) Importar(ctx context.Context, arquivo io.Reader, coordenadoriaID string) (*dto.ResultadoImportacao, error) {
	liberar, err := s.travar(ctx)
	if err != nil {
		return nil, err
	}
	defer liberar()

	lida, err := planilha.Ler(arquivo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArquivoInvalido, err)
	}
	if !lida.Cabecalho.Encontrado {
		s.logger.Warn("cabeçalho não encontrado, usando linha padrão",
			zap.String("aba", lida.Aba), zap.Int("indice", lida.Cabecalho.Indice))
	}
	s.logger.Info("importação iniciada",
		zap.String("aba", lida.Aba),
		zap.Int("linhas", len(lida.Registros)),
		zap.Bool("posicional", lida.Posicional),
		zap.Strings("correspondencias", lida.Cabecalho.Correspondencias))

	var override *string
	if coordenadoriaID != "" {
		override = &coordenadoriaID
	}

	acc := &acumulador{}
	acc.Total = len(lida.Registros)
	// sequencial: linhas seguintes enxergam as entidades criadas pelas anteriores
	for _, reg := range lida.Registros {
		av := planilha.Avaliar(reg.Linha)
		if av.Classe != planilha.ClasseValida {
			if av.Classe == planilha.ClasseErro {
				s.logger.Warn("linha com erro",
					zap.Int("linha", reg.Numero),
					zap.String("motivo", av.Motivo),
					zap.String("processo", av.Campos.Processo),
					zap.String("requerente", av.Campos.Municipe))
			}
			acc.registrar(av.Classe)
			continue
		}
		s.importarLinha(ctx, reg.Numero, av, override, acc)
	}

	s.logger.Info("importação concluída",
		zap.Int("total", acc.Total),
		zap.Int("importados", acc.Importados),
		zap.Int("duplicados", acc.Duplicados),
		zap.Int("erros", acc.Erros),
		zap.Int("pulados", acc.Pulados))
	return &acc.ResultadoImportacao, nil
}

// travar obtém a trava distribuída; sem trava ou com Redis fora do ar segue sem exclusão
func (s *importacaoService) travar(ctx context.Context) (func(), error) {
	nada := func() {}
	if s.trava == nil {
		return nada, nil
	}
	token, ok, err := s.trava.TryLock(ctx, chaveTravaImportacao, s.lockTTL)
	if err != nil {
		s.logger.Warn("trava de importação indisponível, seguindo sem exclusão", zap.Error(err))
		return nada, nil
	}
	if !ok {
		return nil, ErrImportacaoEmAndamento
	}
	return func() {
		if err := s.trava.Unlock(context.WithoutCancel(ctx), chaveTravaImportacao, token); err != nil {
			s.logger.Warn("falha ao liberar trava de importação", zap.Error(err))
		}
	}, nil
}

func (s *importacaoService) importarLinha(ctx context.Context, numero int, av planilha.Avaliacao, override *string, acc *acumulador) {
	c := av.Campos
	log := s.logger.With(
		zap.Int("linha", numero),
		zap.String("processo", c.Processo),
		zap.String("cpf", c.CPF),
		zap.String("requerente", c.Municipe),
		zap.Time("dataHora", av.DataHora))

	// duplicidade antes da resolução: linha duplicada não cria tipo, unidade nem técnico.
	// só se aplica a processos não vazios
	if c.Processo != "" {
		existe, err := s.repo.Agendamento.ExisteDuplicado(ctx, c.Processo, av.DataHora)
		if err != nil {
			log.Error("falha ao verificar duplicidade", zap.Error(err))
			acc.Erros++
			return
		}
		if existe {
			acc.Duplicados++
			return
		}
	}

	tipoID, err := s.resolvedor.TipoAgendamento(ctx, c.Tipo)
	if err != nil {
		log.Warn("tipo de agendamento não resolvido", zap.String("tipo", c.Tipo), zap.Error(err))
		tipoID = nil
	}

	sigla := c.Sigla
	reserva := false
	if siglaReserva, ok := planilha.TecnicoReserva(c.TecnicoNome); ok {
		reserva = true
		if sigla == "" {
			sigla = siglaReserva
		}
	}

	coordID := override
	if coordID == nil && sigla != "" {
		coordID, err = s.resolvedor.Coordenadoria(ctx, sigla)
		if err != nil {
			log.Warn("coordenadoria não resolvida", zap.String("sigla", sigla), zap.Error(err))
			coordID = nil
		}
	}

	var tecnicoID *string
	if !reserva {
		tecnicoID = s.resolvedor.Tecnico(ctx, c.RF, coordID)
	}

	a := &model.Agendamento{
		Municipe:          textoOuNil(c.Municipe),
		RG:                textoOuNil(c.RG),
		CPF:               textoOuNil(c.CPF),
		Processo:          textoOuNil(c.Processo),
		DataHora:          av.DataHora,
		DataFim:           av.DataHora.Add(s.duracao),
		Status:            model.StatusAgendado,
		TipoAgendamentoID: tipoID,
		CoordenadoriaID:   coordID,
		TecnicoID:         tecnicoID,
		TecnicoRF:         textoOuNil(c.RF),
		Email:             textoOuNil(c.Email),
		Resumo:            textoOuNil(c.Tipo),
		Importado:         true,
	}

	if err := s.repo.Agendamento.Create(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			acc.Duplicados++
			return
		}
		log.Error("falha ao gravar agendamento", zap.Error(err))
		acc.Erros++
		return
	}
	acc.Importados++
}

func textoOuNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
