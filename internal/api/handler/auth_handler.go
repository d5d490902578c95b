package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/service"
	"agendamento/backend/pkg/response"
)

// AuthHandler autenticação
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler cria o handler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// Refresh POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "refreshToken é obrigatório")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := MustGetUsuarioID(c)
	if !ok {
		return
	}
	result, err := h.authSvc.Me(c.Request.Context(), id)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCredenciaisInvalidas):
		response.Error(c, http.StatusUnauthorized, 11001, "login ou senha inválidos")
	case errors.Is(err, service.ErrUsuarioInativo):
		response.Forbidden(c, 11002, "usuário inativo")
	case errors.Is(err, service.ErrRefreshTokenInvalido):
		response.Unauthorized(c, 11003, "refresh token inválido ou expirado")
	case errors.Is(err, service.ErrUsuarioNaoEncontrado):
		response.NotFound(c, 11004, "usuário não encontrado")
	case errors.Is(err, service.ErrDiretorioIndisponivel):
		response.Error(c, http.StatusServiceUnavailable, 11005, "serviço de autenticação indisponível")
	default:
		response.InternalError(c)
	}
}
