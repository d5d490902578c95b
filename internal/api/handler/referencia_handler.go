package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/service"
	"agendamento/backend/pkg/response"
)

// ReferenciaHandler listas de apoio dos formulários
type ReferenciaHandler struct {
	referenciaSvc service.ReferenciaService
}

// NewReferenciaHandler cria o handler
func NewReferenciaHandler(referenciaSvc service.ReferenciaService) *ReferenciaHandler {
	return &ReferenciaHandler{referenciaSvc: referenciaSvc}
}

// Coordenadorias GET /api/v1/coordenadorias
func (h *ReferenciaHandler) Coordenadorias(c *gin.Context) {
	listar(c, h.referenciaSvc.Coordenadorias)
}

// TiposAgendamento GET /api/v1/tipos-agendamento
func (h *ReferenciaHandler) TiposAgendamento(c *gin.Context) {
	listar(c, h.referenciaSvc.TiposAgendamento)
}

// Motivos GET /api/v1/motivos
func (h *ReferenciaHandler) Motivos(c *gin.Context) {
	listar(c, h.referenciaSvc.Motivos)
}

func listar(c *gin.Context, fn func(context.Context) ([]dto.ReferenciaResponse, error)) {
	result, err := fn(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
