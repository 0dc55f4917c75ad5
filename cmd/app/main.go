package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"portfolio-backend/internal/config"
	aiAdapters "portfolio-backend/internal/infra/adapters/ai"
	pg "portfolio-backend/internal/infra/db/postgres"
	"portfolio-backend/internal/infra/logging"
	"portfolio-backend/internal/infra/metrics"
	"portfolio-backend/internal/infra/ratelimit"
	red "portfolio-backend/internal/infra/redis"
	"portfolio-backend/internal/infra/web"
	"portfolio-backend/internal/infra/webhook"
	"portfolio-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging, .env loading)")
	flag.Parse()

	if *devMode {
		// .env is a development convenience; production uses real env vars.
		_ = godotenv.Load()
	}

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	messageRepo := pg.NewMessageRepo(pool)
	documentRepo := pg.NewDocumentRepo(pool)

	// ---- Rate limiters (redis-backed when configured, per-process otherwise) ----
	chatCfg := ratelimit.Config{Limit: cfg.Chat.RateLimit, Window: cfg.Chat.RateWindow}
	contactCfg := ratelimit.Config{Limit: cfg.Contact.RateLimit, Window: cfg.Contact.RateWindow}

	var chatLimiter, contactLimiter ratelimit.Limiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		chatLimiter = ratelimit.NewRedisLimiter(redisClient, "chat", chatCfg)
		contactLimiter = ratelimit.NewRedisLimiter(redisClient, "contact", contactCfg)
		logger.Info().Msg("rate limiting: redis (shared across replicas)")
	} else {
		chatMem := ratelimit.NewMemoryLimiter(chatCfg, cfg.Chat.SweepInterval)
		contactMem := ratelimit.NewMemoryLimiter(contactCfg, cfg.Contact.RateWindow)
		defer chatMem.Stop()
		defer contactMem.Stop()
		chatLimiter = chatMem
		contactLimiter = contactMem
		logger.Info().Msg("rate limiting: in-memory (per instance)")
	}

	// ---- Completion adapter ----
	completer, err := aiAdapters.NewOpenRouterAdapter(
		cfg.AI.OpenRouterKey, cfg.AI.Model, cfg.AI.BaseURL,
		cfg.AI.Referer, cfg.AI.Title, cfg.AI.Timeout, logger,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("openrouter adapter")
	}
	ai := aiAdapters.NewLimitedCompleter(completer, cfg.AI.ConcurrentLimit)
	logger.Info().Str("model", cfg.AI.Model).Msg("completion adapter ready")

	// ---- Use cases ----
	chatUC := usecase.NewChatUseCase(messageRepo, documentRepo, ai, cfg.Chat, logger)
	forwarder := webhook.NewForwarder(cfg.Contact.WebhookURL, cfg.Contact.Timeout, logger)
	contactUC := usecase.NewContactUseCase(forwarder, logger)

	// ---- Router & server ----
	router := web.NewRouter(web.RouterDependencies{
		ChatHandler:    web.NewChatHandler(chatUC, chatLimiter, int(cfg.Chat.RateWindow.Seconds()), logger),
		ContactHandler: web.NewContactHandler(contactUC, contactLimiter, int(cfg.Contact.RateWindow.Seconds()), logger),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
