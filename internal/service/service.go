package service

import (
	"go.uber.org/zap"

	"agendamento/backend/config"
	"agendamento/backend/internal/repository"
	"agendamento/backend/pkg/jwt"
)

// Service agrega todos os serviços
type Service struct {
	Auth        AuthService
	Usuario     UsuarioService
	Referencia  ReferenciaService
	Agendamento AgendamentoService
	Importacao  ImportacaoService
}

// Dependencias colaboradores externos opcionais.
// Diretorio nil: técnicos novos recebem nome e e-mail sintetizados.
// Trava nil: importações não são serializadas.
type Dependencias struct {
	Diretorio Diretorio
	Trava     Trava
}

// NewService cria o agregado
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Dependencias,
	logger *zap.Logger,
) *Service {
	resolvedor := NewResolvedorEntidades(repo, deps.Diretorio, cfg.Importacao.DominioEmail, logger)
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, deps.Diretorio, logger),
		Usuario:     NewUsuarioService(repo, deps.Diretorio, logger),
		Referencia:  NewReferenciaService(repo, logger),
		Agendamento: NewAgendamentoService(cfg, repo, resolvedor, logger),
		Importacao:  NewImportacaoService(cfg, repo, resolvedor, deps.Trava, logger),
	}
}
