// Package diretorio consulta o Active Directory da prefeitura via LDAP.
package diretorio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"agendamento/backend/config"
)

var (
	ErrNaoEncontrado       = errors.New("usuário não encontrado no diretório")
	ErrIndisponivel        = errors.New("diretório indisponível")
	ErrCredenciaisInvalida = errors.New("credenciais inválidas no diretório")
)

// Pessoa entrada do diretório
type Pessoa struct {
	Login string
	Nome  string
	Email string
}

var atributos = []string{"name", "mail", "sAMAccountName"}

// Client cliente LDAP. Cada chamada abre e fecha a própria conexão.
type Client struct {
	cfg    *config.LDAPConfig
	logger *zap.Logger
}

// NewClient cria o cliente
func NewClient(cfg *config.LDAPConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// BuscarPorLogin procura pelo sAMAccountName
func (c *Client) BuscarPorLogin(ctx context.Context, login string) (*Pessoa, error) {
	return c.buscarUm(ctx, filtroPorLogin(login, c.cfg.Company))
}

// BuscarPorNome procura pelo nome completo
func (c *Client) BuscarPorNome(ctx context.Context, nome string) (*Pessoa, error) {
	return c.buscarUm(ctx, filtroPorNome(nome, c.cfg.Company))
}

// Autenticar faz bind com as credenciais do próprio usuário
func (c *Client) Autenticar(ctx context.Context, login, senha string) error {
	if senha == "" {
		return ErrCredenciaisInvalida
	}
	conn, err := c.conectar(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Bind(login+c.cfg.Dominio, senha); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return ErrCredenciaisInvalida
		}
		return fmt.Errorf("%w: %v", ErrIndisponivel, err)
	}
	return nil
}

func (c *Client) buscarUm(ctx context.Context, filtro string) (*Pessoa, error) {
	conn, err := c.conectar(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.Bind(c.cfg.BindUser+c.cfg.Dominio, c.cfg.BindPassword); err != nil {
		return nil, fmt.Errorf("%w: bind de serviço: %v", ErrIndisponivel, err)
	}

	req := ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases,
		1, int(c.timeout().Seconds()), false,
		filtro, atributos, nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) && res != nil && len(res.Entries) > 0 {
			return pessoaDe(res.Entries[0]), nil
		}
		return nil, fmt.Errorf("%w: busca: %v", ErrIndisponivel, err)
	}
	if len(res.Entries) == 0 {
		return nil, ErrNaoEncontrado
	}
	return pessoaDe(res.Entries[0]), nil
}

func (c *Client) conectar(ctx context.Context) (*ldap.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dialer := &net.Dialer{Timeout: c.timeout()}
	conn, err := ldap.DialURL(c.cfg.URL, ldap.DialWithDialer(dialer))
	if err != nil {
		c.logger.Warn("falha ao conectar no LDAP", zap.String("url", c.cfg.URL), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrIndisponivel, err)
	}
	conn.SetTimeout(c.timeout())
	return conn, nil
}

func (c *Client) timeout() time.Duration {
	if c.cfg.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.cfg.Timeout
}

func pessoaDe(e *ldap.Entry) *Pessoa {
	return &Pessoa{
		Login: strings.ToLower(e.GetAttributeValue("sAMAccountName")),
		Nome:  e.GetAttributeValue("name"),
		Email: strings.ToLower(e.GetAttributeValue("mail")),
	}
}

func filtroPorLogin(login, company string) string {
	return fmt.Sprintf("(&(sAMAccountName=%s)(company=%s))", ldap.EscapeFilter(login), ldap.EscapeFilter(company))
}

func filtroPorNome(nome, company string) string {
	return fmt.Sprintf("(&(name=%s)(company=%s))", ldap.EscapeFilter(nome), ldap.EscapeFilter(company))
}
