// Package paginacao normaliza página e limite das listagens.
package paginacao

const (
	LimitePadrao = 10
	LimiteMaximo = 100
)

// VerificaPagina garante página >= 1 e limite entre 1 e LimiteMaximo
func VerificaPagina(pagina, limite int) (int, int) {
	if pagina < 1 {
		pagina = 1
	}
	if limite < 1 {
		limite = LimitePadrao
	}
	if limite > LimiteMaximo {
		limite = LimiteMaximo
	}
	return pagina, limite
}

// VerificaLimite traz a página para dentro do total encontrado
func VerificaLimite(pagina, limite int, total int64) (int, int) {
	pagina, limite = VerificaPagina(pagina, limite)
	if total <= 0 {
		return 1, limite
	}
	paginas := int((total + int64(limite) - 1) / int64(limite))
	if pagina > paginas {
		pagina = paginas
	}
	return pagina, limite
}

// Offset deslocamento da página
func Offset(pagina, limite int) int {
	return (pagina - 1) * limite
}
