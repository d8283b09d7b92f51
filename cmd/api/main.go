package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/logmam/logmam-api/internal/application/analytics"
	"github.com/logmam/logmam-api/internal/application/assistant"
	"github.com/logmam/logmam-api/internal/application/auth"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/domain/repository"
	infraai "github.com/logmam/logmam-api/internal/infrastructure/ai"
	"github.com/logmam/logmam-api/internal/infrastructure/jsonstore"
	infrapdf "github.com/logmam/logmam-api/internal/infrastructure/pdf"
	"github.com/logmam/logmam-api/internal/infrastructure/postgres"
	httpRouter "github.com/logmam/logmam-api/internal/interfaces/http"
	"github.com/logmam/logmam-api/pkg/config"
	"github.com/logmam/logmam-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()

	// Record Store: PostgreSQL (JSONB) ou arquivo JSON local.
	var store repository.CollectionStore
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
		}
		defer pool.Close()
		store, err = postgres.NewStore(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar tabela de coleções")
		}
	default:
		fileStore, err := jsonstore.New(cfg.Store.FilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir arquivo de dados")
		}
		store = fileStore
	}

	mutationSvc := mutation.NewService(ctx, store, log)
	authSvc := auth.NewService(mutationSvc, cfg.JWT, cfg.Share, cfg.HTTP.BaseURL)
	analyticsSvc := analytics.NewService(mutationSvc)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	assistantSvc := assistant.NewService(mutationSvc, geminiSvc, log)

	pdfGenerator := infrapdf.NewReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LogMam API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Mutations: mutationSvc,
		Auth:      authSvc,
		Analytics: analyticsSvc,
		Assistant: assistantSvc,
		PDF:       pdfGenerator,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
