package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agendamento/backend/config"
	"agendamento/backend/internal/api/handler"
	"agendamento/backend/internal/api/middleware"
	"agendamento/backend/internal/model"
	"agendamento/backend/pkg/jwt"
	"agendamento/backend/pkg/redis"
)

const (
	limiteCorpoJSON = 1 << 20
	folgaMultipart  = 1 << 20
	tentativasLogin = 10
	janelaLogin     = time.Minute
	timeoutHealthDB = 2 * time.Second
)

// Setup monta o engine gin com middlewares e rotas
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	if !cfg.App.Local() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegistrarValidacoes(); err != nil {
		logger.Fatal("falha ao registrar validações", zap.Error(err))
	}

	r := gin.New()

	// ── Middlewares globais ──
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())

	r.GET("/health", health(db))

	corpoJSON := middleware.BodyLimit(limiteCorpoJSON)
	upload := middleware.BodyLimit(cfg.Importacao.MaxFileSize + folgaMultipart)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth", corpoJSON)
		{
			auth.POST("/login", middleware.RateLimit(rdb, tentativasLogin, janelaLogin), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		autenticado := v1.Group("", middleware.JWTAuth(jwtMgr))
		{
			autenticado.GET("/auth/me", h.Auth.Me)

			gestores := []string{model.PermissaoADM, model.PermissaoDEV}
			unidade := []string{model.PermissaoADM, model.PermissaoDEV, model.PermissaoPontoFocal, model.PermissaoCoordenador}
			atualizacao := []string{model.PermissaoADM, model.PermissaoDEV, model.PermissaoTEC, model.PermissaoPontoFocal, model.PermissaoCoordenador}

			agendamentos := autenticado.Group("/agendamentos")
			{
				agendamentos.POST("/criar", corpoJSON, middleware.RoleAuth(gestores...), h.Agendamento.Criar)
				agendamentos.GET("/buscar-tudo", h.Agendamento.Buscar)
				agendamentos.GET("/buscar-do-dia", h.Agendamento.BuscarDoDia)
				agendamentos.GET("/buscar-por-id/:id", h.Agendamento.BuscarPorID)
				agendamentos.PATCH("/atualizar/:id", corpoJSON, middleware.RoleAuth(atualizacao...), h.Agendamento.Atualizar)
				agendamentos.DELETE("/excluir/:id", middleware.RoleAuth(unidade...), h.Agendamento.Excluir)
				agendamentos.POST("/importar-planilha", upload, middleware.RoleAuth(gestores...), h.Agendamento.ImportarPlanilha)
				agendamentos.GET("/dashboard", h.Agendamento.Dashboard)
				agendamentos.GET("/agenda.ics", h.Agendamento.AgendaICS)
				agendamentos.GET("/exportar", h.Agendamento.Exportar)
			}

			usuarios := autenticado.Group("/usuarios")
			{
				usuarios.GET("/tecnicos", h.Usuario.ListarTecnicos)
				usuarios.GET("/diretorio", middleware.RoleAuth(gestores...), h.Usuario.BuscarDiretorio)

				admin := usuarios.Group("", middleware.RoleAuth(gestores...))
				admin.POST("/criar", corpoJSON, h.Usuario.Criar)
				admin.GET("/buscar-tudo", h.Usuario.Buscar)
				admin.GET("/buscar-por-id/:id", h.Usuario.BuscarPorID)
				admin.PATCH("/atualizar/:id", corpoJSON, h.Usuario.Atualizar)
				admin.DELETE("/desativar/:id", h.Usuario.Desativar)
				admin.PATCH("/autorizar/:id", h.Usuario.Autorizar)
			}

			autenticado.GET("/coordenadorias", h.Referencia.Coordenadorias)
			autenticado.GET("/tipos-agendamento", h.Referencia.TiposAgendamento)
			autenticado.GET("/motivos", h.Referencia.Motivos)
		}
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutHealthDB)
			defer cancel()
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
				status = "degradado"
			}
		}
		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	}
}
