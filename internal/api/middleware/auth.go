package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"agendamento/backend/internal/model"
	"agendamento/backend/pkg/jwt"
	"agendamento/backend/pkg/response"
)

// Chaves do contexto preenchidas por JWTAuth
const (
	ChaveUsuarioID       = "usuario_id"
	ChaveLogin           = "login"
	ChavePermissao       = "permissao"
	ChavePermissaoReal   = "permissao_real"
	ChaveCoordenadoriaID = "coordenadoria_id"
)

// CabecalhoImpersonar permite ao DEV agir com outra permissão
const CabecalhoImpersonar = "X-Impersonate-Permissao"

// JWTAuth valida o access token do cabeçalho Authorization: Bearer <token>
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação ausente")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token inválido ou expirado")
			c.Abort()
			return
		}
		if claims.TokenType != jwt.TipoAccess {
			response.Unauthorized(c, 10002, "tipo de token inválido")
			c.Abort()
			return
		}

		permissao := claims.Permissao
		if permissao == model.PermissaoDEV {
			if alvo := strings.ToUpper(strings.TrimSpace(c.GetHeader(CabecalhoImpersonar))); permissaoValida(alvo) {
				permissao = alvo
			}
		}

		c.Set(ChaveUsuarioID, claims.UsuarioID)
		c.Set(ChaveLogin, claims.Login)
		c.Set(ChavePermissao, permissao)
		c.Set(ChavePermissaoReal, claims.Permissao)
		c.Set(ChaveCoordenadoriaID, claims.CoordenadoriaID)

		c.Next()
	}
}

// RoleAuth exige uma das permissões informadas; DEV passa sempre
func RoleAuth(permitidas ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ChavePermissao)
		if !exists {
			response.Unauthorized(c, 10002, "não autenticado")
			c.Abort()
			return
		}

		permissao, _ := v.(string)
		if permissao == model.PermissaoDEV {
			c.Next()
			return
		}
		for _, p := range permitidas {
			if permissao == p {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "sem permissão para acessar este recurso")
		c.Abort()
	}
}

func permissaoValida(p string) bool {
	for _, v := range model.Permissoes {
		if v == p {
			return true
		}
	}
	return false
}
