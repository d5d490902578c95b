package planilha

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Campo identificador semântico de coluna
type Campo int

const (
	CampoProcesso Campo = iota
	CampoProtocolo
	CampoCPF
	CampoRG
	CampoMunicipe
	CampoTipo
	CampoSigla
	CampoRF
	CampoTecnicoNome
	CampoEmail
	CampoDataHora
)

// Campos valores extraídos de uma linha. Texto vazio equivale a ausente.
type Campos struct {
	Processo    string
	Protocolo   string
	CPF         string
	RG          string
	Municipe    string
	Tipo        string
	Sigla       string
	RF          string
	TecnicoNome string
	Email       string
	DataHora    any
}

type regra struct {
	campo         Campo
	exatos        []string
	palavrasChave []string
	// tokens palavras inteiras do rótulo; para siglas curtas como "rf"
	tokens []string
	// excluir rótulos com alguma destas palavras nunca casam por palavra-chave
	excluir []string
}

// regrasNomeadas ordem de tentativa por campo: rótulos exatos, depois palavras-chave
var regrasNomeadas = []regra{
	{campo: CampoProcesso, exatos: []string{"Nro. Processo", "Nro Processo", "Nº Processo", "Processo", "Número do Processo"}, palavrasChave: []string{"processo"}},
	{campo: CampoProtocolo, exatos: []string{"Nro.Protocolo", "Nro. Protocolo", "Protocolo"}, palavrasChave: []string{"protocolo"}},
	{campo: CampoCPF, exatos: []string{"CPF", "CPF/CNPJ", "CPF do Requerente"}, palavrasChave: []string{"cpf"}},
	{campo: CampoRG, exatos: []string{"RG"}},
	{campo: CampoMunicipe, exatos: []string{"Requerente", "Munícipe", "Nome do Requerente", "Nome"}, palavrasChave: []string{"requerente", "municipe", "interessado"}, excluir: []string{"mail", "email"}},
	{campo: CampoTipo, exatos: []string{"Tipo Agendamento", "Tipo de Agendamento", "Tipo"}, palavrasChave: []string{"tipo"}},
	{campo: CampoSigla, exatos: []string{"Local de Atendimento", "Local", "Coordenadoria", "Sigla"}, palavrasChave: []string{"local", "coordenadoria"}},
	{campo: CampoRF, exatos: []string{"RF Técnico", "RF do Técnico", "RF", "R.F.", "Registro Funcional"}, palavrasChave: []string{"registro funcional"}, tokens: []string{"rf"}},
	{campo: CampoTecnicoNome, exatos: []string{"Técnico", "Técnico Responsável", "Nome do Técnico"}, palavrasChave: []string{"tecnico"}, excluir: []string{"rf", "mail", "email", "registro"}},
	{campo: CampoEmail, exatos: []string{"E-mail Munícipe", "E-mail do Munícipe", "E-mail", "Email", "E-mail do Requerente"}, palavrasChave: []string{"e-mail", "email"}, excluir: []string{"tecnico"}},
	{campo: CampoDataHora, exatos: []string{"Agendado para", "Data/Hora", "Data Hora", "Data do Agendamento", "Data"}, palavrasChave: []string{"agendado"}},
}

// tokensDataHora varredura final quando nenhum rótulo de data foi reconhecido
var tokensDataHora = []string{"data", "hora", "agendado", "para"}

// modeloPosicional colunas fixas do relatório quando não há cabeçalho:
// A processo, D CPF, H requerente, I e-mail, J tipo, K local, L RF, M técnico, Q agendado para
var modeloPosicional = map[Campo]int{
	CampoProcesso:    0,
	CampoCPF:         3,
	CampoMunicipe:    7,
	CampoEmail:       8,
	CampoTipo:        9,
	CampoSigla:       10,
	CampoRF:          11,
	CampoTecnicoNome: 12,
	CampoDataHora:    16,
}

// textos de cabeçalho do relatório que não são dados
var (
	rotulosIgnorados = map[string]bool{
		"SMUL - SECRETARIA MUNICIPAL DE URBANISMO E LICENCIAMENTO": true,
	}
	valoresIgnorados = map[string]bool{
		"Sistema de Agendamento Eletrônico": true,
		"Relatório de Agendamentos":         true,
	}
)

var reRFComoData = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)

// Normalizar extrai os campos da linha. posicional seleciona o modelo de colunas fixas.
func Normalizar(l Linha, posicional bool) Campos {
	var c Campos
	if posicional {
		c = extrairPosicional(l)
	} else {
		c = extrairNomeado(l)
	}
	c.Email = strings.ToLower(c.Email)
	return c
}

func extrairPosicional(l Linha) Campos {
	valor := func(campo Campo) any {
		v, _ := l.Valor(RotuloPlaceholder(modeloPosicional[campo]))
		return v
	}

	c := Campos{
		Processo:    Texto(valor(CampoProcesso)),
		CPF:         Texto(valor(CampoCPF)),
		Municipe:    Texto(valor(CampoMunicipe)),
		Email:       Texto(valor(CampoEmail)),
		Tipo:        Texto(valor(CampoTipo)),
		Sigla:       Texto(valor(CampoSigla)),
		RF:          Texto(valor(CampoRF)),
		TecnicoNome: Texto(valor(CampoTecnicoNome)),
		DataHora:    limparData(valor(CampoDataHora)),
	}

	if reRFComoData.MatchString(c.RF) || strings.Contains(c.RF, ":") || (c.RF != "" && c.RF == c.Sigla) {
		c.RF = ""
	}
	if !strings.Contains(c.Email, "@") || !strings.Contains(c.Email, ".") {
		c.Email = ""
	}
	return c
}

func extrairNomeado(l Linha) Campos {
	var c Campos
	for _, r := range regrasNomeadas {
		v := buscar(l, r)
		if r.campo == CampoDataHora {
			c.DataHora = limparData(v)
			continue
		}
		atribuir(&c, r.campo, Texto(v))
	}

	if c.DataHora == nil {
		c.DataHora = varrerData(l)
	}
	return c
}

func buscar(l Linha, r regra) any {
	for _, exato := range r.exatos {
		alvo := dobrar(exato)
		for _, col := range l {
			if dobrar(col.Rotulo) == alvo {
				return col.Valor
			}
		}
	}
	for _, chave := range r.palavrasChave {
		for _, col := range l {
			rotulo, ok := rotuloCandidato(col, r)
			if !ok {
				continue
			}
			if strings.Contains(rotulo, chave) || strings.Contains(chave, rotulo) {
				return col.Valor
			}
		}
	}
	for _, token := range r.tokens {
		for _, col := range l {
			rotulo, ok := rotuloCandidato(col, r)
			if !ok {
				continue
			}
			for _, palavra := range palavrasDoRotulo(rotulo) {
				if palavra == token {
					return col.Valor
				}
			}
		}
	}
	return nil
}

// rotuloCandidato rótulo dobrado de uma coluna nomeada, preenchida e não excluída pela regra
func rotuloCandidato(col Coluna, r regra) (string, bool) {
	rotulo := dobrar(col.Rotulo)
	if rotulo == "" || strings.HasPrefix(col.Rotulo, PrefixoPlaceholder) || Texto(col.Valor) == "" {
		return "", false
	}
	for _, palavra := range palavrasDoRotulo(rotulo) {
		for _, excluida := range r.excluir {
			if palavra == excluida {
				return "", false
			}
		}
	}
	return rotulo, true
}

func palavrasDoRotulo(rotulo string) []string {
	return strings.FieldsFunc(rotulo, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func varrerData(l Linha) any {
	for _, col := range l {
		rotulo := dobrar(col.Rotulo)
		for _, token := range tokensDataHora {
			if strings.Contains(rotulo, token) {
				if v := limparData(col.Valor); v != nil {
					return v
				}
				break
			}
		}
	}
	return nil
}

// limparData mantém o tipo original; texto é aparado e vazio vira nil
func limparData(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(x); s != "" {
			return s
		}
		return nil
	default:
		return x
	}
}

func atribuir(c *Campos, campo Campo, v string) {
	switch campo {
	case CampoProcesso:
		c.Processo = v
	case CampoProtocolo:
		c.Protocolo = v
	case CampoCPF:
		c.CPF = v
	case CampoRG:
		c.RG = v
	case CampoMunicipe:
		c.Municipe = v
	case CampoTipo:
		c.Tipo = v
	case CampoSigla:
		c.Sigla = v
	case CampoRF:
		c.RF = v
	case CampoTecnicoNome:
		c.TecnicoNome = v
	case CampoEmail:
		c.Email = v
	}
}

// ── Classificação ──

// Classe destino da linha na importação
type Classe int

const (
	ClasseValida Classe = iota
	ClassePulada
	ClasseErro
)

func (c Classe) String() string {
	switch c {
	case ClasseValida:
		return "valida"
	case ClassePulada:
		return "pulada"
	default:
		return "erro"
	}
}

// Avaliacao linha normalizada, classificada e com data decodificada
type Avaliacao struct {
	Classe   Classe
	Motivo   string
	Campos   Campos
	DataHora time.Time
}

// Avaliar normaliza, classifica e decodifica a data de uma linha.
// Linhas sem dados são puladas; linhas com processo, CPF ou requerente
// mas sem data válida são erro.
func Avaliar(l Linha) Avaliacao {
	if len(l) == 0 || !temValores(l) {
		return Avaliacao{Classe: ClassePulada, Motivo: "linha sem dados"}
	}

	c := Normalizar(l, TemPlaceholder(l))
	c.Municipe = TitleCase(c.Municipe)
	temDados := c.Processo != "" || c.CPF != "" || c.Municipe != ""

	if c.DataHora == nil {
		if !temDados {
			return Avaliacao{Classe: ClassePulada, Campos: c, Motivo: "linha sem dados"}
		}
		return Avaliacao{Classe: ClasseErro, Campos: c, Motivo: "data/hora ausente"}
	}

	if !temDados && !PareceData(c.DataHora) {
		return Avaliacao{Classe: ClassePulada, Campos: c, Motivo: "data sem formato reconhecível e sem dados"}
	}

	dataHora, err := DecodificarDataHora(c.DataHora)
	if err != nil {
		if !temDados {
			return Avaliacao{Classe: ClassePulada, Campos: c, Motivo: "data inválida em linha sem dados"}
		}
		return Avaliacao{Classe: ClasseErro, Campos: c, Motivo: "data/hora inválida: " + Texto(c.DataHora)}
	}

	return Avaliacao{Classe: ClasseValida, Campos: c, DataHora: dataHora}
}

func temValores(l Linha) bool {
	for _, col := range l {
		if rotulosIgnorados[col.Rotulo] {
			continue
		}
		s := Texto(col.Valor)
		if _, ehData := col.Valor.(time.Time); ehData {
			return true
		}
		if s != "" && !valoresIgnorados[s] {
			return true
		}
	}
	return false
}
