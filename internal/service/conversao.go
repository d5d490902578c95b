package service

import (
	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
)

func paraResposta(a *model.Agendamento) dto.AgendamentoResponse {
	r := dto.AgendamentoResponse{
		ID:                     a.ID,
		Municipe:               a.Municipe,
		RG:                     a.RG,
		CPF:                    a.CPF,
		Processo:               a.Processo,
		DataHora:               a.DataHora,
		DataFim:                a.DataFim,
		Resumo:                 a.Resumo,
		Status:                 a.Status,
		TipoAgendamentoID:      a.TipoAgendamentoID,
		MotivoNaoAtendimentoID: a.MotivoNaoAtendimentoID,
		CoordenadoriaID:        a.CoordenadoriaID,
		TecnicoID:              a.TecnicoID,
		TecnicoRF:              a.TecnicoRF,
		Email:                  a.Email,
		Importado:              a.Importado,
		CriadoEm:               a.CriadoEm,
		AtualizadoEm:           a.AtualizadoEm,
	}
	if a.TipoAgendamento != nil {
		r.TipoAgendamento = &dto.ReferenciaResponse{ID: a.TipoAgendamento.ID, Texto: a.TipoAgendamento.Texto}
	}
	if a.MotivoNaoAtendimento != nil {
		r.MotivoNaoAtendimento = &dto.ReferenciaResponse{ID: a.MotivoNaoAtendimento.ID, Texto: a.MotivoNaoAtendimento.Texto}
	}
	if a.Coordenadoria != nil {
		r.Coordenadoria = referenciaCoordenadoria(a.Coordenadoria)
	}
	if a.Tecnico != nil {
		r.Tecnico = &dto.TecnicoResponse{
			ID:    a.Tecnico.ID,
			Nome:  a.Tecnico.Nome,
			Login: a.Tecnico.Login,
			Email: a.Tecnico.Email,
		}
	}
	return r
}

func paraRespostas(lista []model.Agendamento) []dto.AgendamentoResponse {
	out := make([]dto.AgendamentoResponse, 0, len(lista))
	for i := range lista {
		out = append(out, paraResposta(&lista[i]))
	}
	return out
}

func referenciaCoordenadoria(c *model.Coordenadoria) *dto.ReferenciaResponse {
	return &dto.ReferenciaResponse{ID: c.ID, Texto: c.Sigla}
}

func paraUsuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	r := dto.UsuarioResponse{
		ID:              u.ID,
		Nome:            u.Nome,
		Login:           u.Login,
		Email:           u.Email,
		Permissao:       u.Permissao,
		Status:          u.Status,
		CoordenadoriaID: u.CoordenadoriaID,
	}
	if u.Coordenadoria != nil {
		r.Coordenadoria = referenciaCoordenadoria(u.Coordenadoria)
	}
	return r
}
