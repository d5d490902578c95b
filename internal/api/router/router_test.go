package router

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agendamento/backend/config"
	"agendamento/backend/internal/api/handler"
	"agendamento/backend/internal/service"
)

var rotaDocumentada = regexp.MustCompile(`^\w+ (GET|POST|PATCH|PUT|DELETE) (/\S+)`)

func montar(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:        config.AppConfig{Environment: "local"},
		Importacao: config.ImportacaoConfig{MaxFileSize: 1 << 20},
	}
	return Setup(cfg, handler.NewHandler(cfg, &service.Service{}), nil, nil, nil, zap.NewNop())
}

func TestSetup_RotasDeAdministracaoDeUsuarios(t *testing.T) {
	registradas := map[string]bool{}
	for _, r := range montar(t).Routes() {
		registradas[r.Method+" "+r.Path] = true
	}

	for _, rota := range []string{
		"POST /api/v1/usuarios/criar",
		"GET /api/v1/usuarios/buscar-tudo",
		"GET /api/v1/usuarios/buscar-por-id/:id",
		"PATCH /api/v1/usuarios/atualizar/:id",
		"DELETE /api/v1/usuarios/desativar/:id",
		"PATCH /api/v1/usuarios/autorizar/:id",
	} {
		assert.True(t, registradas[rota], "rota ausente: %s", rota)
	}
}

// Cada comentário "Metodo VERBO /caminho" dos handlers precisa existir no engine.
func TestSetup_ComentariosDosHandlersBatemComAsRotas(t *testing.T) {
	registradas := map[string]bool{}
	for _, r := range montar(t).Routes() {
		registradas[r.Method+" "+r.Path] = true
	}

	arquivos, err := filepath.Glob("../handler/*_handler.go")
	require.NoError(t, err)
	require.NotEmpty(t, arquivos)

	documentadas := 0
	fset := token.NewFileSet()
	for _, arq := range arquivos {
		f, err := parser.ParseFile(fset, arq, nil, parser.ParseComments)
		require.NoError(t, err)
		for _, grupo := range f.Comments {
			m := rotaDocumentada.FindStringSubmatch(strings.TrimSpace(grupo.Text()))
			if m == nil {
				continue
			}
			caminho, _, _ := strings.Cut(m[2], "?")
			documentadas++
			assert.True(t, registradas[m[1]+" "+caminho], "%s documenta rota inexistente: %s %s", filepath.Base(arq), m[1], caminho)
		}
	}
	assert.Greater(t, documentadas, 20)
}
