package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
)

const (
	anosNoPainel  = 5
	motivoAusente = "Não informado"
)

var (
	statusRealizados    = []string{model.StatusAtendido, model.StatusConcluido}
	statusNaoRealizados = []string{model.StatusNaoRealizado, model.StatusCancelado}
)

// Dashboard indicadores do ano, no escopo do solicitante
func (s *agendamentoService) Dashboard(ctx context.Context, req *dto.DashboardRequest, sol Solicitante) (*dto.DashboardResponse, error) {
	ano := req.Ano
	if ano == 0 {
		ano = s.hoje().Year()
	}
	resp := painelVazio(ano)

	base, ok := sol.escopo(repository.AgendamentoFiltro{CoordenadoriaID: req.CoordenadoriaID})
	if !ok {
		return resp, nil
	}
	doAno := comAno(base, ano)

	var err error
	if resp.TotalGeral, err = s.repo.Agendamento.Count(ctx, doAno); err != nil {
		return nil, s.falhaPainel(err)
	}
	if resp.Realizados, err = s.repo.Agendamento.Count(ctx, comStatus(doAno, statusRealizados...)); err != nil {
		return nil, s.falhaPainel(err)
	}
	if resp.NaoRealizados, err = s.repo.Agendamento.Count(ctx, comStatus(doAno, statusNaoRealizados...)); err != nil {
		return nil, s.falhaPainel(err)
	}
	apenas := comStatus(doAno, model.StatusNaoRealizado)
	if resp.ApenasNaoRealizado, err = s.repo.Agendamento.Count(ctx, apenas); err != nil {
		return nil, s.falhaPainel(err)
	}

	datas, err := s.repo.Agendamento.ListDatas(ctx, doAno)
	if err != nil {
		return nil, s.falhaPainel(err)
	}
	dias := make(map[string]struct{})
	for _, d := range datas {
		dias[d.UTC().Format(layoutData)] = struct{}{}
		resp.PorMes[int(d.UTC().Month())-1].Total++
	}
	resp.DiasComAgendamentos = len(dias)

	for i := range resp.PorAno {
		if resp.PorAno[i].Total, err = s.repo.Agendamento.Count(ctx, comAno(base, resp.PorAno[i].Ano)); err != nil {
			return nil, s.falhaPainel(err)
		}
	}

	motivos, err := s.repo.Agendamento.ContarPorMotivo(ctx, apenas)
	if err != nil {
		return nil, s.falhaPainel(err)
	}
	for _, m := range motivos {
		texto := motivoAusente
		if m.Texto != nil && *m.Texto != "" {
			texto = *m.Texto
		}
		resp.MotivosNaoRealizacao = append(resp.MotivosNaoRealizacao, dto.ContagemMotivo{
			MotivoID: m.MotivoID,
			Texto:    texto,
			Total:    m.Total,
		})
	}
	return resp, nil
}

func (s *agendamentoService) falhaPainel(err error) error {
	s.logger.Error("falha ao montar painel", zap.Error(err))
	return err
}

func painelVazio(ano int) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{
		PorMes:               make([]dto.ContagemMes, 12),
		PorAno:               make([]dto.ContagemAno, anosNoPainel),
		MotivosNaoRealizacao: []dto.ContagemMotivo{},
	}
	for i := range resp.PorMes {
		resp.PorMes[i].Mes = i + 1
	}
	for i := range resp.PorAno {
		resp.PorAno[i].Ano = ano - anosNoPainel + 1 + i
	}
	return resp
}

func comAno(f repository.AgendamentoFiltro, ano int) repository.AgendamentoFiltro {
	inicio := time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC)
	fim := inicio.AddDate(1, 0, 0)
	f.Inicio, f.Fim = &inicio, &fim
	return f
}

func comStatus(f repository.AgendamentoFiltro, status ...string) repository.AgendamentoFiltro {
	f.Status = status
	return f
}
