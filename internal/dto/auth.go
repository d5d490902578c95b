package dto

// ── Autenticação ──

// LoginRequest login por rede (LDAP) ou senha local
type LoginRequest struct {
	Login string `json:"login" binding:"required,max=50"`
	Senha string `json:"senha" binding:"required"`
}

// RefreshTokenRequest renovação de token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse par de tokens
type TokenResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int             `json:"expiresIn"` // segundos
	Usuario      UsuarioResponse `json:"usuario"`
}
