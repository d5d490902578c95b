package jwt

import (
	"testing"
	"time"

	"agendamento/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "segredo-de-teste-para-jwt-2026",
		AccessTokenTTL:  8 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
}

var pontoFocal = Identidade{
	UsuarioID:       "usr-1",
	Login:           "d123456",
	Permissao:       "PONTO_FOCAL",
	CoordenadoriaID: "coord-1",
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(pontoFocal)
	if err != nil {
		t.Fatalf("GenerateAccessToken falhou: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken falhou: %v", err)
	}

	if claims.Identidade() != pontoFocal {
		t.Errorf("identidade divergente: %+v", claims.Identidade())
	}
	if claims.TokenType != "access" {
		t.Errorf("esperado token_type=access, obtido %s", claims.TokenType)
	}
	if claims.Issuer != issuer {
		t.Errorf("esperado issuer=%s, obtido %s", issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("jti não deveria ser vazio")
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken(pontoFocal)
	if err != nil {
		t.Fatalf("GenerateRefreshToken falhou: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken falhou: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("esperado token_type=refresh, obtido %s", claims.TokenType)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 6*24*time.Hour || ttl > 8*24*time.Hour {
		t.Errorf("TTL do refresh deveria ser ~7 dias, obtido %v", ttl)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("token.invalido.qualquer"); err == nil {
		t.Error("token inválido deveria falhar")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "outro-segredo-completamente-diferente",
		AccessTokenTTL: time.Hour,
	})

	token, _ := m1.GenerateAccessToken(pontoFocal)
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("token assinado com outro segredo não deveria validar")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "segredo-de-teste-para-jwt-2026",
		AccessTokenTTL: -time.Minute,
	})

	token, _ := m.GenerateAccessToken(pontoFocal)

	_, err := m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("esperado ErrTokenExpired, obtido %v", err)
	}
}
