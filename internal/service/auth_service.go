package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agendamento/backend/config"
	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
	"agendamento/backend/pkg/diretorio"
	"agendamento/backend/pkg/jwt"
)

var (
	ErrCredenciaisInvalidas  = errors.New("login ou senha inválidos")
	ErrUsuarioInativo        = errors.New("usuário inativo")
	ErrUsuarioNaoEncontrado  = errors.New("usuário não encontrado")
	ErrDiretorioIndisponivel = errors.New("serviço de autenticação indisponível")
	ErrRefreshTokenInvalido  = errors.New("refresh token inválido ou expirado")
)

// AuthService autenticação
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Me(ctx context.Context, usuarioID string) (*dto.UsuarioResponse, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	diretorio Diretorio
	logger    *zap.Logger
}

// NewAuthService cria o serviço. dir pode ser nil.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	dir Diretorio,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		diretorio: dir,
		logger:    logger,
	}
}

// Login contas com senha local usam bcrypt; as demais fazem bind no diretório.
// Em ambiente local o bind é dispensado.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	login := strings.ToLower(strings.TrimSpace(req.Login))

	usuario, err := s.repo.Usuario.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciaisInvalidas
		}
		s.logger.Error("falha ao consultar usuário", zap.Error(err))
		return nil, err
	}
	if !usuario.Status {
		return nil, ErrUsuarioInativo
	}

	if err := s.verificarSenha(ctx, usuario, req.Senha); err != nil {
		return nil, err
	}

	if err := s.repo.Usuario.AtualizarUltimoLogin(ctx, usuario.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("falha ao registrar último login", zap.String("login", login), zap.Error(err))
	}
	s.logger.Info("login efetuado", zap.String("login", login), zap.String("permissao", usuario.Permissao))

	return s.emitir(usuario)
}

func (s *authService) verificarSenha(ctx context.Context, u *model.Usuario, senha string) error {
	if u.Senha != nil && *u.Senha != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*u.Senha), []byte(senha)); err != nil {
			return ErrCredenciaisInvalidas
		}
		return nil
	}
	if s.cfg.App.Local() {
		return nil
	}
	if s.diretorio == nil {
		return ErrDiretorioIndisponivel
	}

	err := s.diretorio.Autenticar(ctx, u.Login, senha)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, diretorio.ErrCredenciaisInvalida):
		return ErrCredenciaisInvalidas
	default:
		s.logger.Error("falha no bind do diretório", zap.String("login", u.Login), zap.Error(err))
		return ErrDiretorioIndisponivel
	}
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TipoRefresh {
		return nil, ErrRefreshTokenInvalido
	}

	// permissão e coordenadoria podem ter mudado desde o login
	usuario, err := s.repo.Usuario.GetByID(ctx, claims.UsuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalido
		}
		return nil, err
	}
	if !usuario.Status {
		return nil, ErrUsuarioInativo
	}
	return s.emitir(usuario)
}

func (s *authService) Me(ctx context.Context, usuarioID string) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}
	resp := paraUsuarioResponse(usuario)
	return &resp, nil
}

func (s *authService) emitir(u *model.Usuario) (*dto.TokenResponse, error) {
	id := jwt.Identidade{
		UsuarioID: u.ID,
		Login:     u.Login,
		Permissao: u.Permissao,
	}
	if u.CoordenadoriaID != nil {
		id.CoordenadoriaID = *u.CoordenadoriaID
	}

	access, err := s.jwtMgr.GenerateAccessToken(id)
	if err != nil {
		s.logger.Error("falha ao gerar access token", zap.Error(err))
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(id)
	if err != nil {
		s.logger.Error("falha ao gerar refresh token", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Usuario:      paraUsuarioResponse(u),
	}, nil
}
