package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
)

var ErrExportacaoFalhou = errors.New("falha ao gerar planilha")

const abaExportacao = "Agendamentos"

// colunasExportacao mesmos rótulos reconhecidos pela importação, mais Status
var colunasExportacao = []string{
	"Nro. Processo", "Nro.Protocolo", "CPF", "Requerente", "Tipo Agendamento",
	"Local de Atendimento", "Técnico", "RF", "E-mail", "Agendado para", "Status",
}

// ExportarPlanilha resultado completo da busca em xlsx.
// O arquivo gerado pode ser reimportado.
func (s *agendamentoService) ExportarPlanilha(ctx context.Context, req *dto.BuscarAgendamentosRequest, sol Solicitante) (*bytes.Buffer, string, error) {
	filtro, err := filtroDaBusca(req)
	if err != nil {
		return nil, "", err
	}

	var lista []model.Agendamento
	if filtro, ok := sol.escopo(filtro); ok {
		lista, err = s.repo.Agendamento.List(ctx, filtro, 0, 0)
		if err != nil {
			s.logger.Error("falha ao listar agendamentos para exportação", zap.Error(err))
			return nil, "", err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(abaExportacao)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportacaoFalhou, err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	negrito, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, rotulo := range colunasExportacao {
		celula, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(abaExportacao, celula, rotulo)
	}
	ultima, _ := excelize.CoordinatesToCellName(len(colunasExportacao), 1)
	f.SetCellStyle(abaExportacao, "A1", ultima, negrito)
	f.SetColWidth(abaExportacao, "A", "K", 20)

	for i := range lista {
		linha := linhaExportacao(&lista[i])
		celula, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(abaExportacao, celula, &linha); err != nil {
			s.logger.Error("falha ao escrever linha da exportação", zap.Error(err))
			return nil, "", ErrExportacaoFalhou
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("falha ao serializar planilha", zap.Error(err))
		return nil, "", ErrExportacaoFalhou
	}
	nome := fmt.Sprintf("agendamentos_%s.xlsx", s.hoje().Format("20060102"))
	return buf, nome, nil
}

func linhaExportacao(a *model.Agendamento) []any {
	var tipo, sigla, tecnico string
	if a.TipoAgendamento != nil {
		tipo = a.TipoAgendamento.Texto
	}
	if a.Coordenadoria != nil {
		sigla = a.Coordenadoria.Sigla
	}
	if a.Tecnico != nil {
		tecnico = a.Tecnico.Nome
	}
	return []any{
		valor(a.Processo), "", valor(a.CPF), valor(a.Municipe), tipo,
		sigla, tecnico, valor(a.TecnicoRF), valor(a.Email),
		a.DataHora.UTC().Format("02/01/2006 15:04"), a.Status,
	}
}

func valor(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
