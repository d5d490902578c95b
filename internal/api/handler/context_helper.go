package handler

import (
	"github.com/gin-gonic/gin"

	"agendamento/backend/internal/api/middleware"
	"agendamento/backend/internal/service"
	"agendamento/backend/pkg/response"
)

// MustGetUsuarioID extrai usuario_id injetado pelo JWTAuth.
// Com ok=false a resposta 401 já foi escrita.
func MustGetUsuarioID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ChaveUsuarioID)
	if s == "" {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	return s, true
}

// MustGetSolicitante monta o Solicitante a partir do contexto
func MustGetSolicitante(c *gin.Context) (service.Solicitante, bool) {
	id, ok := MustGetUsuarioID(c)
	if !ok {
		return service.Solicitante{}, false
	}
	permissao := c.GetString(middleware.ChavePermissao)
	if permissao == "" {
		response.Unauthorized(c, 10002, "não autenticado")
		return service.Solicitante{}, false
	}

	sol := service.Solicitante{ID: id, Permissao: permissao}
	if coord := c.GetString(middleware.ChaveCoordenadoriaID); coord != "" {
		sol.CoordenadoriaID = &coord
	}
	return sol, true
}
