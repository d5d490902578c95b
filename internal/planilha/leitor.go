package planilha

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// ColunasDados colunas A..Z
	ColunasDados = 26
	// UltimaLinha última linha lida (A1:Z1000)
	UltimaLinha = 1000
)

var (
	ErrPlanilhaIlegivel = errors.New("arquivo não é uma planilha xlsx válida")
	ErrPlanilhaVazia    = errors.New("planilha sem abas ou sem linhas")
)

// Registro linha de dados com o número original na planilha (1-based)
type Registro struct {
	Numero int
	Linha  Linha
}

// Resultado saída da leitura
type Resultado struct {
	Aba        string
	Cabecalho  Cabecalho
	Posicional bool
	Registros  []Registro
}

// Ler decodifica a primeira aba, localiza o cabeçalho e monta as linhas rotuladas.
// Linhas totalmente vazias não entram no resultado.
func Ler(r io.Reader) (*Resultado, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanilhaIlegivel, err)
	}
	defer f.Close()

	abas := f.GetSheetList()
	if len(abas) == 0 {
		return nil, ErrPlanilhaVazia
	}
	aba := abas[0]

	linhas, err := f.GetRows(aba, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("falha ao ler aba %q: %w", aba, err)
	}
	if len(linhas) == 0 {
		return nil, ErrPlanilhaVazia
	}

	janela := make([][]string, 0, LinhasVarredura)
	for i := 0; i < len(linhas) && i < LinhasVarredura; i++ {
		janela = append(janela, recortar(linhas[i], ColunasVarredura))
	}
	cab := DetectarCabecalho(janela)

	rotulos, posicional := rotular(linhas, cab.Indice)

	res := &Resultado{Aba: aba, Cabecalho: cab, Posicional: posicional}

	fim := len(linhas)
	if fim > UltimaLinha {
		fim = UltimaLinha
	}
	for i := cab.Indice + 1; i < fim; i++ {
		celulas := recortar(linhas[i], ColunasDados)
		if vazia(celulas) {
			continue
		}
		if len(res.Registros) == 0 && PareceCabecalho(celulas) {
			continue
		}

		linha := make(Linha, 0, len(rotulos))
		for col, rotulo := range rotulos {
			if rotulo == "" {
				continue
			}
			var bruto string
			if col < len(celulas) {
				bruto = celulas[col]
			}
			linha = append(linha, Coluna{Rotulo: rotulo, Valor: valorCelula(f, aba, col, i, bruto)})
		}
		res.Registros = append(res.Registros, Registro{Numero: i + 1, Linha: linha})
	}

	return res, nil
}

// rotular usa a linha de cabeçalho; se ela não tiver rótulo algum, todas as
// colunas recebem placeholders e a normalização passa a ser posicional.
func rotular(linhas [][]string, indice int) ([]string, bool) {
	rotulos := make([]string, ColunasDados)
	var algum bool
	if indice < len(linhas) {
		for i, c := range recortar(linhas[indice], ColunasDados) {
			rotulos[i] = strings.TrimSpace(c)
			if rotulos[i] != "" {
				algum = true
			}
		}
	}
	if algum {
		return rotulos, false
	}
	for i := range rotulos {
		rotulos[i] = RotuloPlaceholder(i)
	}
	return rotulos, true
}

// valorCelula célula numérica vira float64 (datas seriais inclusive); o resto fica texto
func valorCelula(f *excelize.File, aba string, col, linha int, bruto string) any {
	bruto = strings.TrimSpace(bruto)
	if bruto == "" {
		return nil
	}
	n, err := strconv.ParseFloat(bruto, 64)
	if err != nil {
		return bruto
	}
	ref, err := excelize.CoordinatesToCellName(col+1, linha+1)
	if err != nil {
		return bruto
	}
	tipo, err := f.GetCellType(aba, ref)
	if err != nil {
		return bruto
	}
	if tipo == excelize.CellTypeNumber || tipo == excelize.CellTypeUnset {
		return n
	}
	return bruto
}

func recortar(celulas []string, max int) []string {
	if len(celulas) > max {
		return celulas[:max]
	}
	return celulas
}

func vazia(celulas []string) bool {
	for _, c := range celulas {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
