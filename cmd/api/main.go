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

	"github.com/shotfidelidade/painel-api/internal/application/auth"
	"github.com/shotfidelidade/painel-api/internal/application/filterconfig"
	"github.com/shotfidelidade/painel-api/internal/application/permissions"
	"github.com/shotfidelidade/painel-api/internal/application/reports"
	infracrypto "github.com/shotfidelidade/painel-api/internal/infrastructure/crypto"
	"github.com/shotfidelidade/painel-api/internal/infrastructure/postgres"
	httpRouter "github.com/shotfidelidade/painel-api/internal/interfaces/http"
	"github.com/shotfidelidade/painel-api/pkg/config"
	"github.com/shotfidelidade/painel-api/pkg/logger"
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
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	relatorioRepo := postgres.NewRelatorioRepository(pool)
	filtroRepo := postgres.NewFiltroRepository(pool)

	cipher, err := infracrypto.NewAESGCM(cfg.Crypto.FilterKey)
	if err != nil {
		log.Fatal().Err(err).Msg("chave de cifra dos filtros salvos")
	}

	permSvc := permissions.NewService(usuarioRepo, log)
	reportsSvc := reports.NewService(relatorioRepo, log)
	filtroUC := filterconfig.NewUseCase(filtroRepo, cipher)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Shot Painel API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		PermSvc:     permSvc,
		ReportsSvc:  reportsSvc,
		FiltroUC:    filtroUC,
		UsuarioRepo: usuarioRepo,
		JWTSecret:   cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Name:       cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
			ExpMinutes: cfg.JWT.Expiration,
		},
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
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
