package handler

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"agendamento/backend/config"
	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/service"
)

// Handler agrega todos os handlers
type Handler struct {
	Auth        *AuthHandler
	Agendamento *AgendamentoHandler
	Usuario     *UsuarioHandler
	Referencia  *ReferenciaHandler
}

// NewHandler cria o agregado
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Agendamento: NewAgendamentoHandler(svc.Agendamento, svc.Importacao, cfg.Importacao.MaxFileSize),
		Usuario:     NewUsuarioHandler(svc.Usuario),
		Referencia:  NewReferenciaHandler(svc.Referencia),
	}
}

// RegistrarValidacoes instala as validações de domínio no validator do gin
func RegistrarValidacoes() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validator do gin não é go-playground/validator")
	}
	return dto.RegistrarValidacoes(v)
}
