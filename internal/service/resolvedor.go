package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
	"agendamento/backend/pkg/diretorio"
)

// Diretorio consulta ao diretório corporativo (implementado por diretorio.Client)
type Diretorio interface {
	BuscarPorLogin(ctx context.Context, login string) (*diretorio.Pessoa, error)
	BuscarPorNome(ctx context.Context, nome string) (*diretorio.Pessoa, error)
	Autenticar(ctx context.Context, login, senha string) error
}

// Trava exclusão mútua entre processos (implementada por redis.Client)
type Trava interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// tamanhoRF dígitos do RF usados no login ("d" + 6 dígitos)
const tamanhoRF = 6

// ResolvedorEntidades obtém ou cria as entidades referenciadas por um agendamento.
// Falhas de Tecnico nunca são fatais: a referência fica nula.
type ResolvedorEntidades interface {
	Tecnico(ctx context.Context, rf string, coordenadoriaID *string) *string
	TipoAgendamento(ctx context.Context, texto string) (*string, error)
	Coordenadoria(ctx context.Context, sigla string) (*string, error)
}

type resolvedorEntidades struct {
	repo         *repository.Repository
	diretorio    Diretorio
	dominioEmail string
	logger       *zap.Logger
}

// NewResolvedorEntidades cria o resolvedor. dir pode ser nil.
func NewResolvedorEntidades(repo *repository.Repository, dir Diretorio, dominioEmail string, logger *zap.Logger) ResolvedorEntidades {
	return &resolvedorEntidades{repo: repo, diretorio: dir, dominioEmail: dominioEmail, logger: logger}
}

// LoginDoRF "d" + seis primeiros caracteres do RF; vazio se o RF for curto
func LoginDoRF(rf string) string {
	rf = strings.TrimSpace(rf)
	if utf8.RuneCountInString(rf) < tamanhoRF {
		return ""
	}
	return "d" + string([]rune(rf)[:tamanhoRF])
}

func (r *resolvedorEntidades) Tecnico(ctx context.Context, rf string, coordenadoriaID *string) *string {
	login := LoginDoRF(rf)
	if login == "" {
		return nil
	}

	existente, err := r.repo.Usuario.GetByLogin(ctx, login)
	if err == nil {
		if existente.CoordenadoriaID == nil && coordenadoriaID != nil {
			if err := r.repo.Usuario.AtualizarCoordenadoria(ctx, existente.ID, *coordenadoriaID); err != nil {
				r.logger.Warn("falha ao vincular técnico à coordenadoria",
					zap.String("login", login), zap.Error(err))
			}
		}
		return &existente.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Error("falha ao consultar técnico", zap.String("login", login), zap.Error(err))
		return nil
	}

	nome, email := r.dadosDoDiretorio(ctx, login)
	novo := &model.Usuario{
		Nome:            nome,
		Login:           login,
		Email:           email,
		Permissao:       model.PermissaoTEC,
		Status:          true,
		CoordenadoriaID: coordenadoriaID,
	}
	if err := r.repo.Usuario.Create(ctx, novo); err != nil {
		// TODO: repetir a busca por login após conflito, como em Coordenadoria
		r.logger.Error("falha ao criar técnico", zap.String("login", login), zap.Error(err))
		return nil
	}
	r.logger.Info("técnico criado", zap.String("login", login), zap.String("email", email))
	return &novo.ID
}

// dadosDoDiretorio nome e e-mail do diretório; sintetizados quando indisponível
func (r *resolvedorEntidades) dadosDoDiretorio(ctx context.Context, login string) (string, string) {
	if r.diretorio != nil {
		p, err := r.diretorio.BuscarPorLogin(ctx, login)
		if err == nil && p.Nome != "" && p.Email != "" {
			return p.Nome, strings.ToLower(p.Email)
		}
		r.logger.Warn("técnico não obtido do diretório, usando dados sintetizados",
			zap.String("login", login), zap.Error(err))
	}
	return capitalizar(login), login + "@" + r.dominioEmail
}

func (r *resolvedorEntidades) TipoAgendamento(ctx context.Context, texto string) (*string, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, nil
	}
	existente, err := r.repo.TipoAgendamento.GetByTexto(ctx, texto)
	if err == nil {
		return &existente.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	novo := &model.TipoAgendamento{Texto: texto, Status: true}
	if err := r.repo.TipoAgendamento.Create(ctx, novo); err != nil {
		return nil, err
	}
	return &novo.ID, nil
}

func (r *resolvedorEntidades) Coordenadoria(ctx context.Context, sigla string) (*string, error) {
	sigla = strings.TrimSpace(sigla)
	if sigla == "" {
		return nil, nil
	}
	existente, err := r.repo.Coordenadoria.GetBySigla(ctx, sigla)
	if err == nil {
		return &existente.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	nome := sigla
	nova := &model.Coordenadoria{Sigla: sigla, Nome: &nome, Status: true}
	if errCriar := r.repo.Coordenadoria.Create(ctx, nova); errCriar != nil {
		// outra requisição pode ter criado a mesma sigla
		if existente, err := r.repo.Coordenadoria.GetBySigla(ctx, sigla); err == nil {
			return &existente.ID, nil
		}
		return nil, errCriar
	}
	return &nova.ID, nil
}

func capitalizar(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
