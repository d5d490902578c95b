package planilha

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var reTecnicoReserva = regexp.MustCompile(`T[ÉE]CNICO\s+RESERVA\s*(\w*)`)

// TitleCase primeira letra de cada palavra maiúscula, restante minúscula.
// Espaços repetidos viram um só.
func TitleCase(s string) string {
	palavras := strings.Fields(s)
	for i, p := range palavras {
		r, n := utf8.DecodeRuneInString(p)
		palavras[i] = string(unicode.ToUpper(r)) + strings.ToLower(p[n:])
	}
	return strings.Join(palavras, " ")
}

// TecnicoReserva reconhece "TÉCNICO RESERVA <SIGLA>" no nome do técnico.
// Devolve a sigla encontrada (pode ser vazia) e se a frase estava presente.
func TecnicoReserva(nome string) (string, bool) {
	m := reTecnicoReserva.FindStringSubmatch(strings.ToUpper(nome))
	if m == nil {
		return "", false
	}
	return m[1], true
}
