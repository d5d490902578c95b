package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"agendamento/backend/config"
	"agendamento/backend/internal/model"
	"agendamento/backend/pkg/diretorio"
)

const dominioTeste = "smul.prefeitura.sp.gov.br"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "segredo-de-teste-com-32-caracteres",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		App: config.AppConfig{Environment: "producao", Timezone: "America/Sao_Paulo"},
		Importacao: config.ImportacaoConfig{
			MaxFileSize:   10 << 20,
			DuracaoPadrao: time.Hour,
			DominioEmail:  dominioTeste,
			LockTTL:       time.Minute,
		},
	}
}

func TestLoginDoRF(t *testing.T) {
	casos := map[string]string{
		"8544409":  "d854440",
		"854440":   "d854440",
		" 123456 ": "d123456",
		"12345":    "",
		"":         "",
	}
	for rf, esperado := range casos {
		if got := LoginDoRF(rf); got != esperado {
			t.Errorf("LoginDoRF(%q) = %q, esperado %q", rf, got, esperado)
		}
	}
}

func TestTecnico_DiretorioFalhaCriaPlaceholder(t *testing.T) {
	m, repo := newMocks()
	m.diretorio.falha = diretorio.ErrIndisponivel
	r := NewResolvedorEntidades(repo, m.diretorio, dominioTeste, zap.NewNop())

	id := r.Tecnico(context.Background(), "8544409", nil)
	if id == nil {
		t.Fatal("técnico deveria ser criado mesmo com o diretório fora do ar")
	}
	u := m.usuarios.usuarios[*id]
	if u.Login != "d854440" {
		t.Errorf("login esperado d854440, obtido %s", u.Login)
	}
	if u.Permissao != model.PermissaoTEC {
		t.Errorf("permissão esperada TEC, obtida %s", u.Permissao)
	}
	if !strings.HasSuffix(u.Email, "@"+dominioTeste) {
		t.Errorf("e-mail sintetizado inesperado: %s", u.Email)
	}
	if u.Nome != "D854440" {
		t.Errorf("nome sintetizado inesperado: %s", u.Nome)
	}
	if !u.Status {
		t.Error("técnico criado deveria estar ativo")
	}
}

func TestTecnico_DadosDoDiretorio(t *testing.T) {
	m, repo := newMocks()
	m.diretorio.pessoas["d123456"] = &diretorio.Pessoa{Login: "d123456", Nome: "Maria Souza", Email: "MSouza@Prefeitura.sp.gov.br"}
	r := NewResolvedorEntidades(repo, m.diretorio, dominioTeste, zap.NewNop())

	id := r.Tecnico(context.Background(), "1234567", ptr("coord-x"))
	if id == nil {
		t.Fatal("técnico deveria ser criado")
	}
	u := m.usuarios.usuarios[*id]
	if u.Nome != "Maria Souza" || u.Email != "msouza@prefeitura.sp.gov.br" {
		t.Errorf("dados do diretório não aplicados: %+v", u)
	}
	if u.CoordenadoriaID == nil || *u.CoordenadoriaID != "coord-x" {
		t.Error("coordenadoria informada deveria ser gravada")
	}
}

func TestTecnico_RFCurtoNaoResolve(t *testing.T) {
	m, repo := newMocks()
	r := NewResolvedorEntidades(repo, m.diretorio, dominioTeste, zap.NewNop())

	if id := r.Tecnico(context.Background(), "12345", nil); id != nil {
		t.Errorf("RF curto deveria resultar em nil, obtido %s", *id)
	}
	if len(m.usuarios.usuarios) != 0 {
		t.Error("nenhum usuário deveria ser criado")
	}
}

func TestTecnico_ExistenteSemUnidadeGanhaUnidade(t *testing.T) {
	m, repo := newMocks()
	existente := &model.Usuario{Nome: "João", Login: "d111111", Email: "j@x", Permissao: model.PermissaoTEC, Status: true}
	_ = m.usuarios.Create(context.Background(), existente)
	r := NewResolvedorEntidades(repo, nil, dominioTeste, zap.NewNop())

	id := r.Tecnico(context.Background(), "1111119", ptr("coord-1"))
	if id == nil || *id != existente.ID {
		t.Fatalf("deveria reutilizar o técnico existente")
	}
	if existente.CoordenadoriaID == nil || *existente.CoordenadoriaID != "coord-1" {
		t.Error("técnico sem unidade deveria receber a coordenadoria")
	}
}

func TestTecnico_FalhaAoCriarDevolveNil(t *testing.T) {
	m, repo := newMocks()
	m.usuarios.falhaCriar = errors.New("banco fora do ar")
	r := NewResolvedorEntidades(repo, nil, dominioTeste, zap.NewNop())

	if id := r.Tecnico(context.Background(), "9999999", nil); id != nil {
		t.Error("falha ao criar técnico deveria resultar em nil")
	}
}

func TestTipoAgendamento_ObtemOuCria(t *testing.T) {
	m, repo := newMocks()
	r := NewResolvedorEntidades(repo, nil, dominioTeste, zap.NewNop())
	ctx := context.Background()

	vazio, err := r.TipoAgendamento(ctx, "   ")
	if err != nil || vazio != nil {
		t.Fatalf("texto vazio deveria resultar em nil sem erro: %v %v", vazio, err)
	}

	a, err := r.TipoAgendamento(ctx, " Vistoria ")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	b, _ := r.TipoAgendamento(ctx, "Vistoria")
	if *a != *b {
		t.Error("o mesmo texto deveria resolver para o mesmo tipo")
	}
	if len(m.tipos.tipos) != 1 {
		t.Errorf("esperado 1 tipo, obtido %d", len(m.tipos.tipos))
	}
}

func TestCoordenadoria_CorridaNaCriacao(t *testing.T) {
	m, repo := newMocks()
	m.coordenadorias.corrida = true
	r := NewResolvedorEntidades(repo, nil, dominioTeste, zap.NewNop())

	id, err := r.Coordenadoria(context.Background(), "GTEC")
	if err != nil {
		t.Fatalf("corrida deveria ser resolvida pela nova consulta: %v", err)
	}
	if id == nil {
		t.Fatal("id não deveria ser nil")
	}
	if len(m.coordenadorias.coordenadorias) != 1 {
		t.Errorf("esperada 1 coordenadoria, obtidas %d", len(m.coordenadorias.coordenadorias))
	}
	c := m.coordenadorias.coordenadorias[*id]
	if c.Sigla != "GTEC" || c.Nome == nil || *c.Nome != "GTEC" {
		t.Errorf("coordenadoria inesperada: %+v", c)
	}
}
