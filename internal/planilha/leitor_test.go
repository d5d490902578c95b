package planilha

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func planilhaXLSX(t *testing.T, linhas [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	aba := f.GetSheetName(0)
	for i, linha := range linhas {
		for j, v := range linha {
			if v == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(aba, ref, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLer_RelatorioComPreambulo(t *testing.T) {
	buf := planilhaXLSX(t, [][]any{
		{"SMUL - SECRETARIA MUNICIPAL DE URBANISMO E LICENCIAMENTO"},
		{"Sistema de Agendamento Eletrônico"},
		{"Relatório de Agendamentos"},
		{},
		{"Nro. Processo", "Nro.Protocolo", "CPF", "Requerente", "Tipo Agendamento", "Local de Atendimento", "Técnico", "RF", "E-mail", "Agendado para"},
		{"6068.2024/0001", "P-1", "11122233344", "AMANDA CELLI FILHO", "Vistoria", "GTEC", "Fulano", "8544409", "amanda@x.com", "15/03/2024 14:30"},
		{},
		{"6068.2024/0002", nil, nil, "Beto", nil, nil, nil, nil, nil, 45366.625},
	})

	res, err := Ler(buf)
	require.NoError(t, err)

	assert.True(t, res.Cabecalho.Encontrado)
	assert.Equal(t, 4, res.Cabecalho.Indice)
	assert.False(t, res.Posicional)
	require.Len(t, res.Registros, 2)
	assert.Equal(t, 6, res.Registros[0].Numero)
	assert.Equal(t, 8, res.Registros[1].Numero)

	a := Avaliar(res.Registros[0].Linha)
	require.Equal(t, ClasseValida, a.Classe, a.Motivo)
	assert.Equal(t, "Amanda Celli Filho", a.Campos.Municipe)
	assert.Equal(t, "8544409", a.Campos.RF)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), a.DataHora)

	b := Avaliar(res.Registros[1].Linha)
	require.Equal(t, ClasseValida, b.Classe, b.Motivo)
	assert.Equal(t, time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC), b.DataHora)
}

func TestLer_SemCabecalhoUsaModeloPosicional(t *testing.T) {
	linhas := make([][]any, 12)
	dados := make([]any, 17)
	dados[0] = "123"
	dados[3] = "111"
	dados[7] = "joão silva"
	dados[16] = "15/03/2024 14:30"
	linhas[9] = dados

	res, err := Ler(planilhaXLSX(t, linhas))
	require.NoError(t, err)

	assert.False(t, res.Cabecalho.Encontrado)
	assert.True(t, res.Posicional)
	require.Len(t, res.Registros, 1)
	assert.True(t, TemPlaceholder(res.Registros[0].Linha))

	a := Avaliar(res.Registros[0].Linha)
	require.Equal(t, ClasseValida, a.Classe, a.Motivo)
	assert.Equal(t, "123", a.Campos.Processo)
	assert.Equal(t, "João Silva", a.Campos.Municipe)
}

func TestLer_ArquivoInvalido(t *testing.T) {
	_, err := Ler(bytes.NewReader([]byte("não sou xlsx")))
	assert.ErrorIs(t, err, ErrPlanilhaIlegivel)
}
