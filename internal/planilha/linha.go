// Package planilha transforma planilhas de agendamento exportadas pelo sistema
// eletrônico em campos normalizados, prontos para a importação.
package planilha

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PrefixoPlaceholder rótulo atribuído a colunas sem cabeçalho
const PrefixoPlaceholder = "__EMPTY"

// Coluna par rótulo/valor de uma célula.
// Valor é nil, string, float64 (célula numérica) ou time.Time.
type Coluna struct {
	Rotulo string
	Valor  any
}

// Linha colunas na ordem da planilha
type Linha []Coluna

// Valor devolve o valor do rótulo exato
func (l Linha) Valor(rotulo string) (any, bool) {
	for _, c := range l {
		if c.Rotulo == rotulo {
			return c.Valor, true
		}
	}
	return nil, false
}

// RotuloPlaceholder rótulo da coluna de índice i (0 = A): __EMPTY, __EMPTY_1, ...
func RotuloPlaceholder(i int) string {
	if i == 0 {
		return PrefixoPlaceholder
	}
	return PrefixoPlaceholder + "_" + strconv.Itoa(i)
}

// TemPlaceholder indica se algum rótulo é placeholder
func TemPlaceholder(l Linha) bool {
	for _, c := range l {
		if strings.HasPrefix(c.Rotulo, PrefixoPlaceholder) {
			return true
		}
	}
	return false
}

// Texto converte o valor da célula em texto aparado
func Texto(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return x.UTC().Format("02/01/2006 15:04")
	default:
		return ""
	}
}

// dobrar remove acentos e caixa para comparação de rótulos
func dobrar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	r, _, err := transform.String(t, s)
	if err != nil {
		r = s
	}
	return strings.ToLower(strings.TrimSpace(r))
}
