// Comando seed cria (ou atualiza) o usuário DEV raiz e o usuário da portaria.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agendamento/backend/config"
	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
	"agendamento/backend/pkg/database"
	applogger "agendamento/backend/pkg/logger"
)

const loginPortaria = "portaria"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao iniciar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("falha ao conectar ao banco", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao obter sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("falha ao executar migrações", zap.Error(err))
	}

	// Variáveis lidas após config.Load, que já carregou o .env
	rootLogin := os.Getenv("SEED_ROOT_LOGIN")
	senhaPortaria := os.Getenv("SEED_SENHA_PORTARIA")

	repo := repository.NewRepository(db)
	ctx := context.Background()

	if rootLogin != "" {
		root := &model.Usuario{
			Login:     strings.ToLower(rootLogin),
			Nome:      os.Getenv("SEED_ROOT_NOME"),
			Email:     os.Getenv("SEED_ROOT_EMAIL"),
			Permissao: model.PermissaoDEV,
			Status:    true,
		}
		if root.Nome == "" {
			root.Nome = root.Login
		}
		if root.Email == "" {
			root.Email = root.Login + "@" + cfg.Importacao.DominioEmail
		}
		if err := upsert(ctx, repo.Usuario, root); err != nil {
			logger.Fatal("falha ao gravar usuário DEV", zap.Error(err))
		}
		logger.Info("usuário DEV pronto", zap.String("login", root.Login), zap.String("id", root.ID))
	}

	if senhaPortaria != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(senhaPortaria), bcrypt.DefaultCost)
		if err != nil {
			logger.Fatal("falha ao gerar hash da senha", zap.Error(err))
		}
		senha := string(hash)
		portaria := &model.Usuario{
			Login:     loginPortaria,
			Nome:      "Portaria",
			Email:     "portaria@agendamento.local",
			Permissao: model.PermissaoPortaria,
			Status:    true,
			Senha:     &senha,
		}
		if err := upsert(ctx, repo.Usuario, portaria); err != nil {
			logger.Fatal("falha ao gravar usuário da portaria", zap.Error(err))
		}
		logger.Info("usuário da portaria pronto", zap.String("id", portaria.ID))
	}

	if rootLogin == "" && senhaPortaria == "" {
		logger.Warn("nada a fazer: defina SEED_ROOT_LOGIN e/ou SEED_SENHA_PORTARIA")
	}
}

// upsert atualiza pelo login ou cria o usuário
func upsert(ctx context.Context, repo repository.UsuarioRepository, u *model.Usuario) error {
	existente, err := repo.GetByLogin(ctx, u.Login)
	switch {
	case err == nil:
		u.ID = existente.ID
		u.CoordenadoriaID = existente.CoordenadoriaID
		u.CriadoEm = existente.CriadoEm
		return repo.Update(ctx, u)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.Create(ctx, u)
	default:
		return err
	}
}
