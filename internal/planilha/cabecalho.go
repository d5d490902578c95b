package planilha

import "strings"

const (
	// LinhasVarredura quantidade de linhas inspecionadas em busca do cabeçalho
	LinhasVarredura = 20
	// ColunasVarredura colunas A..N
	ColunasVarredura = 14
	// IndiceCabecalhoPadrao linha 9 do modelo padrão do relatório
	IndiceCabecalhoPadrao  = 8
	minimoCorrespondencias = 4
)

// RotulosEsperados cabeçalhos do relatório de agendamentos
var RotulosEsperados = []string{
	"Nro. Processo",
	"Nro.Protocolo",
	"CPF",
	"Requerente",
	"Tipo Agendamento",
	"Local de Atendimento",
	"Técnico",
	"RF",
	"E-mail",
	"Agendado para",
}

// Cabecalho resultado da detecção
type Cabecalho struct {
	Indice           int
	Colunas          []string
	Encontrado       bool // false quando caiu no índice padrão
	Correspondencias []string
}

// DetectarCabecalho localiza a linha de cabeçalho entre as linhas iniciais do relatório.
// A primeira linha com pelo menos 4 correspondências vence; correspondências exatas
// têm prioridade, e com menos de 4 exatas a linha ainda pode qualificar pelas parciais.
// Sem candidata, usa IndiceCabecalhoPadrao.
func DetectarCabecalho(linhas [][]string) Cabecalho {
	limite := len(linhas)
	if limite > LinhasVarredura {
		limite = LinhasVarredura
	}

	for i := 0; i < limite; i++ {
		celulas := naoVazias(linhas[i])
		if len(celulas) == 0 {
			continue
		}

		exatas := correspondenciasExatas(celulas)
		if len(exatas) >= minimoCorrespondencias {
			return Cabecalho{Indice: i, Colunas: aparar(linhas[i]), Encontrado: true, Correspondencias: exatas}
		}
		parciais := correspondenciasParciais(celulas)
		if len(parciais) >= minimoCorrespondencias {
			return Cabecalho{Indice: i, Colunas: aparar(linhas[i]), Encontrado: true, Correspondencias: parciais}
		}
	}

	cab := Cabecalho{Indice: IndiceCabecalhoPadrao}
	if IndiceCabecalhoPadrao < len(linhas) {
		cab.Colunas = aparar(linhas[IndiceCabecalhoPadrao])
	}
	return cab
}

// PareceCabecalho linha que repete o cabeçalho (ao menos 4 rótulos exatos)
func PareceCabecalho(celulas []string) bool {
	return len(correspondenciasExatas(naoVazias(celulas))) >= minimoCorrespondencias
}

func correspondenciasExatas(celulas []string) []string {
	var out []string
	for _, rotulo := range RotulosEsperados {
		alvo := dobrar(rotulo)
		for _, c := range celulas {
			if dobrar(c) == alvo {
				out = append(out, rotulo)
				break
			}
		}
	}
	return out
}

func correspondenciasParciais(celulas []string) []string {
	texto := dobrar(strings.Join(celulas, " "))
	var out []string
	for _, rotulo := range RotulosEsperados {
		for _, token := range strings.Fields(dobrar(rotulo)) {
			if len([]rune(token)) >= 3 && strings.Contains(texto, token) {
				out = append(out, rotulo)
				break
			}
		}
	}
	return out
}

func naoVazias(celulas []string) []string {
	var out []string
	for _, c := range celulas {
		if s := strings.TrimSpace(c); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func aparar(celulas []string) []string {
	out := make([]string, len(celulas))
	for i, c := range celulas {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
