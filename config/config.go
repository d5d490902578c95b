package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config configuração global da aplicação
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	LDAP       LDAPConfig       `mapstructure:"ldap"`
	App        AppConfig        `mapstructure:"app"`
	Importacao ImportacaoConfig `mapstructure:"importacao"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig servidor HTTP
type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig origens permitidas
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutos
}

// DSN string de conexão do PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis (opcional; sem Redis a importação roda sem trava)
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// LDAPConfig diretório corporativo (Active Directory da prefeitura)
type LDAPConfig struct {
	URL          string        `mapstructure:"url"`
	Dominio      string        `mapstructure:"dominio"` // sufixo do bind, ex.: @rede.sp
	BindUser     string        `mapstructure:"bind_user"`
	BindPassword string        `mapstructure:"bind_password"`
	BaseDN       string        `mapstructure:"base_dn"`
	Company      string        `mapstructure:"company"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// AppConfig ambiente de execução
type AppConfig struct {
	Environment string `mapstructure:"environment"` // local | homologacao | producao
	Timezone    string `mapstructure:"timezone"`
}

// Local indica ambiente de desenvolvimento (login sem bind LDAP)
func (c *AppConfig) Local() bool {
	return c.Environment == "local"
}

// Location fuso usado para "hoje"; UTC se inválido
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ImportacaoConfig parâmetros da importação de planilhas
type ImportacaoConfig struct {
	MaxFileSize   int64         `mapstructure:"max_file_size"`
	DuracaoPadrao time.Duration `mapstructure:"duracao_padrao"`
	DominioEmail  string        `mapstructure:"dominio_email"`
	LockTTL       time.Duration `mapstructure:"lock_ttl"`
}

// LogConfig logs
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load carrega a configuração.
// Prioridade: variáveis de ambiente (AGENDAMENTO_*) > arquivo > padrões.
// Um arquivo .env no diretório atual é carregado antes, se existir.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// ── Padrões ──
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3001"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "agendamento")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "8h")
	v.SetDefault("auth.refresh_token_ttl", "168h")

	v.SetDefault("ldap.url", "ldap://localhost:389")
	v.SetDefault("ldap.dominio", "")
	v.SetDefault("ldap.base_dn", "")
	v.SetDefault("ldap.company", "SMUL")
	v.SetDefault("ldap.timeout", "5s")

	v.SetDefault("app.environment", "local")
	v.SetDefault("app.timezone", "America/Sao_Paulo")

	v.SetDefault("importacao.max_file_size", 10*1024*1024)
	v.SetDefault("importacao.duracao_padrao", "60m")
	v.SetDefault("importacao.dominio_email", "smul.prefeitura.sp.gov.br")
	v.SetDefault("importacao.lock_ttl", "10m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── Arquivo ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── Ambiente ──
	v.SetEnvPrefix("AGENDAMENTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("falha ao ler arquivo de configuração: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("falha ao decodificar configuração: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate confere os itens obrigatórios
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("configuração inválida: auth.jwt_secret não pode ser vazio")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("configuração inválida: auth.jwt_secret deve ter ao menos 16 caracteres")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("configuração inválida: server.port deve estar entre 1 e 65535")
	}
	if c.Importacao.MaxFileSize <= 0 {
		return fmt.Errorf("configuração inválida: importacao.max_file_size deve ser positivo")
	}
	if c.Importacao.DominioEmail == "" {
		return fmt.Errorf("configuração inválida: importacao.dominio_email não pode ser vazio")
	}
	return nil
}
