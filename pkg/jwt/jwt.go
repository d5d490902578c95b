package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"agendamento/backend/config"
)

var (
	ErrTokenExpired = errors.New("token expirado")
	ErrTokenInvalid = errors.New("token inválido")
)

const issuer = "agendamento-smul"

// Tipos de token
const (
	TipoAccess  = "access"
	TipoRefresh = "refresh"
)

// Identidade dados do usuário gravados no token
type Identidade struct {
	UsuarioID       string
	Login           string
	Permissao       string
	CoordenadoriaID string
}

// Claims JWT da aplicação
type Claims struct {
	UsuarioID       string `json:"sub_id"`
	Login           string `json:"login"`
	Permissao       string `json:"permissao"`
	CoordenadoriaID string `json:"coordenadoria_id,omitempty"`
	TokenType       string `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager emite e valida tokens
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager cria o Manager
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// AccessTokenTTL validade do access token
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}

// GenerateAccessToken emite o access token
func (m *Manager) GenerateAccessToken(id Identidade) (string, error) {
	return m.gerar(id, TipoAccess, m.accessTokenTTL)
}

// GenerateRefreshToken emite o refresh token
func (m *Manager) GenerateRefreshToken(id Identidade) (string, error) {
	return m.gerar(id, TipoRefresh, m.refreshTokenTTL)
}

func (m *Manager) gerar(id Identidade, tipo string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UsuarioID:       id.UsuarioID,
		Login:           id.Login,
		Permissao:       id.Permissao,
		CoordenadoriaID: id.CoordenadoriaID,
		TokenType:       tipo,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   id.UsuarioID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken valida assinatura e expiração
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Identidade reconstrói a identidade a partir das claims
func (c *Claims) Identidade() Identidade {
	return Identidade{
		UsuarioID:       c.UsuarioID,
		Login:           c.Login,
		Permissao:       c.Permissao,
		CoordenadoriaID: c.CoordenadoriaID,
	}
}
