package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/service"
	"agendamento/backend/pkg/response"
)

const (
	campoArquivo    = "arquivo"
	tipoCalendario  = "text/calendar; charset=utf-8"
	tipoPlanilhaXML = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	nomeAgendaICS   = "agenda.ics"
)

var extensoesPlanilha = map[string]bool{".xlsx": true, ".xls": true}

// AgendamentoHandler agendamentos, importação e relatórios
type AgendamentoHandler struct {
	agendamentoSvc service.AgendamentoService
	importacaoSvc  service.ImportacaoService
	maxArquivo     int64
}

// NewAgendamentoHandler cria o handler
func NewAgendamentoHandler(agendamentoSvc service.AgendamentoService, importacaoSvc service.ImportacaoService, maxArquivo int64) *AgendamentoHandler {
	return &AgendamentoHandler{
		agendamentoSvc: agendamentoSvc,
		importacaoSvc:  importacaoSvc,
		maxArquivo:     maxArquivo,
	}
}

// Criar POST /api/v1/agendamentos/criar
func (h *AgendamentoHandler) Criar(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.CriarAgendamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.agendamentoSvc.Criar(c.Request.Context(), &req, sol)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.Created(c, result)
}

// Buscar GET /api/v1/agendamentos/buscar-tudo
func (h *AgendamentoHandler) Buscar(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.BuscarAgendamentosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.agendamentoSvc.Buscar(c.Request.Context(), &req, sol)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.OK(c, result)
}

// BuscarDoDia GET /api/v1/agendamentos/buscar-do-dia
func (h *AgendamentoHandler) BuscarDoDia(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	result, err := h.agendamentoSvc.BuscarDoDia(c.Request.Context(), sol)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.OK(c, result)
}

// BuscarPorID GET /api/v1/agendamentos/buscar-por-id/:id
func (h *AgendamentoHandler) BuscarPorID(c *gin.Context) {
	result, err := h.agendamentoSvc.BuscarPorID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.OK(c, result)
}

// Atualizar PATCH /api/v1/agendamentos/atualizar/:id
func (h *AgendamentoHandler) Atualizar(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.AtualizarAgendamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.agendamentoSvc.Atualizar(c.Request.Context(), c.Param("id"), &req, sol)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.OK(c, result)
}

// Excluir DELETE /api/v1/agendamentos/excluir/:id
func (h *AgendamentoHandler) Excluir(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	if err := h.agendamentoSvc.Excluir(c.Request.Context(), c.Param("id"), sol); err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportarPlanilha POST /api/v1/agendamentos/importar-planilha
func (h *AgendamentoHandler) ImportarPlanilha(c *gin.Context) {
	var req dto.ImportarPlanilhaRequest
	if err := c.ShouldBind(&req); err != nil {
		if excedeuLimite(err) {
			arquivoGrandeDemais(c)
			return
		}
		response.BadRequest(c, 10001, "coordenadoriaId inválido")
		return
	}

	cabecalho, err := c.FormFile(campoArquivo)
	if err != nil {
		if excedeuLimite(err) {
			arquivoGrandeDemais(c)
			return
		}
		response.BadRequest(c, 13001, "nenhum arquivo enviado")
		return
	}
	if h.maxArquivo > 0 && cabecalho.Size > h.maxArquivo {
		arquivoGrandeDemais(c)
		return
	}
	if !extensoesPlanilha[strings.ToLower(filepath.Ext(cabecalho.Filename))] {
		response.BadRequest(c, 13003, "apenas arquivos Excel (.xlsx, .xls) são permitidos")
		return
	}

	arquivo, err := cabecalho.Open()
	if err != nil {
		response.BadRequest(c, 13001, "não foi possível ler o arquivo enviado")
		return
	}
	defer arquivo.Close()

	result, err := h.importacaoSvc.Importar(c.Request.Context(), arquivo, req.CoordenadoriaID)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.OK(c, result)
}

// Dashboard GET /api/v1/agendamentos/dashboard
func (h *AgendamentoHandler) Dashboard(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	result, err := h.agendamentoSvc.Dashboard(c.Request.Context(), &req, sol)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.OK(c, result)
}

// AgendaICS GET /api/v1/agendamentos/agenda.ics
func (h *AgendamentoHandler) AgendaICS(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.PeriodoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	conteudo, err := h.agendamentoSvc.ExportarAgenda(c.Request.Context(), &req, sol)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.Attachment(c, nomeAgendaICS, tipoCalendario, conteudo)
}

// Exportar GET /api/v1/agendamentos/exportar
func (h *AgendamentoHandler) Exportar(c *gin.Context) {
	sol, ok := MustGetSolicitante(c)
	if !ok {
		return
	}
	var req dto.BuscarAgendamentosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos")
		return
	}

	buf, nome, err := h.agendamentoSvc.ExportarPlanilha(c.Request.Context(), &req, sol)
	if err != nil {
		handleAgendamentoError(c, err)
		return
	}
	response.Attachment(c, nome, tipoPlanilhaXML, buf.Bytes())
}

func excedeuLimite(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func arquivoGrandeDemais(c *gin.Context) {
	response.Error(c, http.StatusRequestEntityTooLarge, 13002, "arquivo excede o tamanho máximo permitido")
}

func handleAgendamentoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAgendamentoNaoEncontrado):
		response.NotFound(c, 12001, "agendamento não encontrado")
	case errors.Is(err, service.ErrAgendamentoDuplicado):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrDataHoraInvalida):
		response.BadRequest(c, 12003, "data e hora inválidas")
	case errors.Is(err, service.ErrTecnicoNaoEncontrado):
		response.BadRequest(c, 12004, "técnico não encontrado")
	case errors.Is(err, service.ErrSemPermissaoCoordenadoria):
		response.Forbidden(c, 12005, err.Error())
	case errors.Is(err, service.ErrSemPermissaoMudarUnidade):
		response.Forbidden(c, 12006, err.Error())
	case errors.Is(err, service.ErrSemPermissaoTecnico):
		response.Forbidden(c, 12007, err.Error())
	case errors.Is(err, service.ErrSemPermissaoSemUnidade):
		response.Forbidden(c, 12008, err.Error())
	case errors.Is(err, service.ErrArquivoInvalido):
		response.BadRequest(c, 13004, "arquivo de planilha inválido ou corrompido")
	case errors.Is(err, service.ErrImportacaoEmAndamento):
		response.Conflict(c, 13005, err.Error())
	default:
		response.InternalError(c)
	}
}
