package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"agendamento/backend/config"
	"agendamento/backend/internal/api/handler"
	"agendamento/backend/internal/api/router"
	"agendamento/backend/internal/repository"
	"agendamento/backend/internal/service"
	"agendamento/backend/pkg/database"
	"agendamento/backend/pkg/diretorio"
	"agendamento/backend/pkg/jwt"
	applogger "agendamento/backend/pkg/logger"
	"agendamento/backend/pkg/redis"
)

func main() {
	// 1. Configuração
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao iniciar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("iniciando aplicação",
		zap.Int("port", cfg.Server.Port),
		zap.String("environment", cfg.App.Environment),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Banco de dados e migrações
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("falha ao conectar ao banco", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao obter sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("falha ao executar migrações", zap.Error(err))
	}

	// 4. Redis (opcional: sem ele a importação roda sem trava e o rate limit fica desligado)
	deps := service.Dependencias{}
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis indisponível, seguindo sem trava de importação", zap.Error(err))
		rdb = nil
	} else {
		deps.Trava = rdb
	}

	// 5. JWT e diretório
	jwtMgr := jwt.NewManager(&cfg.Auth)
	deps.Diretorio = diretorio.NewClient(&cfg.LDAP, logger)

	// 6. Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, deps, logger)
	h := handler.NewHandler(cfg, svc)

	// 7. Rotas
	engine := router.Setup(cfg, h, jwtMgr, rdb, db, logger)

	// 8. Servidor HTTP com desligamento gracioso
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP iniciado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("erro no servidor HTTP", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("sinal recebido, encerrando", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("erro ao encerrar servidor", zap.Error(err))
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor encerrado")
}
