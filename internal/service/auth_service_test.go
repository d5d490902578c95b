package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
	"agendamento/backend/pkg/jwt"
)

func setupAuth(ambiente string) (AuthService, *mocks, *jwt.Manager) {
	m, repo := newMocks()
	cfg := testConfig()
	cfg.App.Environment = ambiente
	mgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, mgr, m.diretorio, zap.NewNop()), m, mgr
}

func usuarioLocal(m *mocks, login, senha string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	h := string(hash)
	u := novoUsuario(m, login, model.PermissaoPortaria, nil)
	u.Senha = &h
	return u
}

func TestLogin_SenhaLocal(t *testing.T) {
	svc, m, _ := setupAuth("producao")
	u := usuarioLocal(m, "portaria", "segredo123")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Login: "PORTARIA", Senha: "segredo123"})
	if err != nil {
		t.Fatalf("login deveria funcionar: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Error("tokens não deveriam ser vazios")
	}
	if res.ExpiresIn != 900 {
		t.Errorf("esperado ExpiresIn=900, obtido %d", res.ExpiresIn)
	}
	if res.Usuario.Permissao != model.PermissaoPortaria {
		t.Errorf("permissão inesperada: %s", res.Usuario.Permissao)
	}
	if u.UltimoLogin == nil {
		t.Error("último login deveria ser registrado")
	}

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Login: "portaria", Senha: "errada"})
	if !errors.Is(err, ErrCredenciaisInvalidas) {
		t.Errorf("esperado ErrCredenciaisInvalidas, obtido %v", err)
	}
}

func TestLogin_Diretorio(t *testing.T) {
	svc, m, _ := setupAuth("producao")
	novoUsuario(m, "d854440", model.PermissaoTEC, ptr("c1"))
	m.diretorio.senhas["d854440"] = "senha-rede"

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Login: "d854440", Senha: "senha-rede"})
	if err != nil {
		t.Fatalf("login pelo diretório deveria funcionar: %v", err)
	}
	if res.Usuario.CoordenadoriaID == nil || *res.Usuario.CoordenadoriaID != "c1" {
		t.Error("coordenadoria deveria vir no usuário")
	}

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Login: "d854440", Senha: "x"})
	if !errors.Is(err, ErrCredenciaisInvalidas) {
		t.Errorf("esperado ErrCredenciaisInvalidas, obtido %v", err)
	}

	m.diretorio.falha = errors.New("timeout")
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Login: "d854440", Senha: "senha-rede"})
	if !errors.Is(err, ErrDiretorioIndisponivel) {
		t.Errorf("esperado ErrDiretorioIndisponivel, obtido %v", err)
	}
}

func TestLogin_AmbienteLocalDispensaBind(t *testing.T) {
	svc, m, _ := setupAuth("local")
	novoUsuario(m, "d111111", model.PermissaoADM, nil)
	m.diretorio.falha = errors.New("sem diretório")

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Login: "d111111", Senha: "qualquer"}); err != nil {
		t.Errorf("ambiente local não deveria consultar o diretório: %v", err)
	}
}

func TestLogin_InativoEInexistente(t *testing.T) {
	svc, m, _ := setupAuth("local")
	u := novoUsuario(m, "d222222", model.PermissaoTEC, nil)
	u.Status = false

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Login: "d222222", Senha: "x"}); !errors.Is(err, ErrUsuarioInativo) {
		t.Errorf("esperado ErrUsuarioInativo, obtido %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Login: "ninguem", Senha: "x"}); !errors.Is(err, ErrCredenciaisInvalidas) {
		t.Errorf("esperado ErrCredenciaisInvalidas, obtido %v", err)
	}
}

func TestRefresh(t *testing.T) {
	svc, m, _ := setupAuth("local")
	novoUsuario(m, "d333333", model.PermissaoTEC, nil)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Login: "d333333", Senha: "x"})
	if err != nil {
		t.Fatalf("login falhou: %v", err)
	}

	novo, err := svc.Refresh(context.Background(), res.RefreshToken)
	if err != nil {
		t.Fatalf("refresh deveria funcionar: %v", err)
	}
	if novo.AccessToken == "" {
		t.Error("access token não deveria ser vazio")
	}

	if _, err := svc.Refresh(context.Background(), res.AccessToken); !errors.Is(err, ErrRefreshTokenInvalido) {
		t.Errorf("access token não deveria servir como refresh, obtido %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, m, _ := setupAuth("local")
	u := novoUsuario(m, "d444444", model.PermissaoCoordenador, ptr("c9"))

	me, err := svc.Me(context.Background(), u.ID)
	if err != nil || me.Login != "d444444" {
		t.Fatalf("me inesperado: %+v %v", me, err)
	}
	if _, err := svc.Me(context.Background(), "nao-existe"); !errors.Is(err, ErrUsuarioNaoEncontrado) {
		t.Errorf("esperado ErrUsuarioNaoEncontrado, obtido %v", err)
	}
}
