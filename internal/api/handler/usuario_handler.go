package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/service"
	"agendamento/backend/pkg/response"
)

// UsuarioHandler usuários e diretório
type UsuarioHandler struct {
	usuarioSvc service.UsuarioService
}

// NewUsuarioHandler cria o handler
func NewUsuarioHandler(usuarioSvc service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioSvc: usuarioSvc}
}

// ListarTecnicos GET /api/v1/usuarios/tecnicos
func (h *UsuarioHandler) ListarTecnicos(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.ListarTecnicosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.usuarioSvc.ListarTecnicos(c.Request.Context(), req.CoordenadoriaID, sol)
	if err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.OK(c, result)
}

// BuscarDiretorio GET /api/v1/usuarios/diretorio?nome=
func (h *UsuarioHandler) BuscarDiretorio(c *gin.Context) {
	var req dto.BuscarDiretorioRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "informe ao menos 3 caracteres do nome")
		return
	}

	result, err := h.usuarioSvc.BuscarNoDiretorio(c.Request.Context(), req.Nome)
	if err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.OK(c, result)
}

// Criar POST /api/v1/usuarios/criar
func (h *UsuarioHandler) Criar(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.CriarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.usuarioSvc.Criar(c.Request.Context(), &req, sol)
	if err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.Created(c, result)
}

// Buscar GET /api/v1/usuarios/buscar-tudo
func (h *UsuarioHandler) Buscar(c *gin.Context) {
	var req dto.BuscarUsuariosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.usuarioSvc.Buscar(c.Request.Context(), &req)
	if err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.OK(c, result)
}

// BuscarPorID GET /api/v1/usuarios/buscar-por-id/:id
func (h *UsuarioHandler) BuscarPorID(c *gin.Context) {
	result, err := h.usuarioSvc.BuscarPorID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.OK(c, result)
}

// Atualizar PATCH /api/v1/usuarios/atualizar/:id
func (h *UsuarioHandler) Atualizar(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.AtualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.usuarioSvc.Atualizar(c.Request.Context(), c.Param("id"), &req, sol)
	if err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.OK(c, result)
}

// Desativar DELETE /api/v1/usuarios/desativar/:id
func (h *UsuarioHandler) Desativar(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	if err := h.usuarioSvc.Desativar(c.Request.Context(), c.Param("id"), sol); err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.OK(c, gin.H{"desativado": true})
}

// Autorizar PATCH /api/v1/usuarios/autorizar/:id
func (h *UsuarioHandler) Autorizar(c *gin.Context) {
	result, err := h.usuarioSvc.Autorizar(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleUsuarioError(c, err)
		return
	}
	response.OK(c, result)
}

func handleUsuarioError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNaoEncontradoNoDiretorio):
		response.NotFound(c, 14001, "nenhuma pessoa encontrada no diretório")
	case errors.Is(err, service.ErrDiretorioIndisponivel):
		response.Error(c, http.StatusServiceUnavailable, 14002, "diretório indisponível")
	case errors.Is(err, service.ErrUsuarioNaoEncontrado):
		response.NotFound(c, 14003, "usuário não encontrado")
	case errors.Is(err, service.ErrLoginJaCadastrado):
		response.Conflict(c, 14004, "login já cadastrado")
	case errors.Is(err, service.ErrCoordenadoriaNaoEncontrada):
		response.BadRequest(c, 14005, "coordenadoria não encontrada")
	case errors.Is(err, service.ErrDesativarProprioUsuario):
		response.Forbidden(c, 14006, "não é possível desativar o próprio usuário")
	default:
		response.InternalError(c)
	}
}
