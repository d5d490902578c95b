package service

import (
	"context"

	"go.uber.org/zap"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/repository"
)

// ReferenciaService listas de apoio (coordenadorias, tipos, motivos)
type ReferenciaService interface {
	Coordenadorias(ctx context.Context) ([]dto.ReferenciaResponse, error)
	TiposAgendamento(ctx context.Context) ([]dto.ReferenciaResponse, error)
	Motivos(ctx context.Context) ([]dto.ReferenciaResponse, error)
}

type referenciaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReferenciaService cria o serviço
func NewReferenciaService(repo *repository.Repository, logger *zap.Logger) ReferenciaService {
	return &referenciaService{repo: repo, logger: logger}
}

func (s *referenciaService) Coordenadorias(ctx context.Context) ([]dto.ReferenciaResponse, error) {
	lista, err := s.repo.Coordenadoria.ListAtivas(ctx)
	if err != nil {
		s.logger.Error("falha ao listar coordenadorias", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ReferenciaResponse, 0, len(lista))
	for i := range lista {
		out = append(out, *referenciaCoordenadoria(&lista[i]))
	}
	return out, nil
}

func (s *referenciaService) TiposAgendamento(ctx context.Context) ([]dto.ReferenciaResponse, error) {
	lista, err := s.repo.TipoAgendamento.ListAtivos(ctx)
	if err != nil {
		s.logger.Error("falha ao listar tipos de agendamento", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ReferenciaResponse, 0, len(lista))
	for _, t := range lista {
		out = append(out, dto.ReferenciaResponse{ID: t.ID, Texto: t.Texto})
	}
	return out, nil
}

func (s *referenciaService) Motivos(ctx context.Context) ([]dto.ReferenciaResponse, error) {
	lista, err := s.repo.Motivo.ListAtivos(ctx)
	if err != nil {
		s.logger.Error("falha ao listar motivos", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ReferenciaResponse, 0, len(lista))
	for _, m := range lista {
		out = append(out, dto.ReferenciaResponse{ID: m.ID, Texto: m.Texto})
	}
	return out, nil
}
