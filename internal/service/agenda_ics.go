package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
)

// diasAgendaPadrao janela da agenda quando o período não é informado
const diasAgendaPadrao = 30

// ExportarAgenda agendamentos do período em iCalendar, no escopo do solicitante.
// Cancelados ficam de fora.
func (s *agendamentoService) ExportarAgenda(ctx context.Context, req *dto.PeriodoRequest, sol Solicitante) ([]byte, error) {
	inicio, fim, err := periodo(req.DataInicio, req.DataFim)
	if err != nil {
		return nil, err
	}
	if inicio == nil {
		h := s.hoje()
		inicio = &h
	}
	if fim == nil {
		f := inicio.AddDate(0, 0, diasAgendaPadrao)
		fim = &f
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SMUL//Agendamento//PT-BR")
	cal.SetXWRCalName("Agendamentos")
	cal.SetXWRTimezone(s.local.String())

	filtro, ok := sol.escopo(repository.AgendamentoFiltro{
		Inicio:          inicio,
		Fim:             fim,
		StatusDiferente: model.StatusCancelado,
	})
	if !ok {
		return []byte(cal.Serialize()), nil
	}

	lista, err := s.repo.Agendamento.List(ctx, filtro, 0, 0)
	if err != nil {
		s.logger.Error("falha ao listar agendamentos da agenda", zap.Error(err))
		return nil, err
	}

	carimbo := s.agora().UTC()
	for i := range lista {
		a := &lista[i]
		ev := cal.AddEvent(a.ID + "@agendamento")
		ev.SetDtStampTime(carimbo)
		ev.SetStartAt(s.instante(a.DataHora))
		ev.SetEndAt(s.instante(a.DataFim))
		ev.SetSummary(resumoEvento(a))
		ev.SetDescription(descricaoEvento(a))
		if a.Coordenadoria != nil {
			ev.SetLocation(a.Coordenadoria.Sigla)
		}
	}
	return []byte(cal.Serialize()), nil
}

// instante horário de parede gravado em UTC interpretado no fuso da aplicação
func (s *agendamentoService) instante(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, s.local)
}

func resumoEvento(a *model.Agendamento) string {
	partes := []string{"Atendimento"}
	if a.Municipe != nil {
		partes = append(partes, *a.Municipe)
	}
	if a.Processo != nil {
		partes = append(partes, "proc. "+*a.Processo)
	}
	return strings.Join(partes, " - ")
}

func descricaoEvento(a *model.Agendamento) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s", a.Status)
	if a.TipoAgendamento != nil {
		fmt.Fprintf(&b, "\nTipo: %s", a.TipoAgendamento.Texto)
	}
	if a.Tecnico != nil {
		fmt.Fprintf(&b, "\nTécnico: %s", a.Tecnico.Nome)
	}
	if a.Email != nil {
		fmt.Fprintf(&b, "\nE-mail: %s", *a.Email)
	}
	return b.String()
}
