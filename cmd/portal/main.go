package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"asre_hazir/internal/auth"
	"asre_hazir/internal/config"
	"asre_hazir/internal/events"
	"asre_hazir/internal/feed"
	"asre_hazir/internal/server"
	"asre_hazir/internal/service"
	"asre_hazir/internal/storage/postgres"
	"asre_hazir/internal/storage/s3"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rabbitMQ, err := events.NewRabbitMQ(events.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	mediaStore, err := s3.NewMediaStore(ctx, cfg.Media)
	if err != nil {
		logger.Error("failed to set up media store", "error", err)
		os.Exit(1)
	}

	articleStore := postgres.NewArticleStore(db)
	savedStore := postgres.NewSavedNewsStore(db)
	userStore := postgres.NewUserStore(db)
	adStore := postgres.NewAdStore(db)
	draftStore := postgres.NewDraftStore(db)
	txManager := postgres.NewTransactionManager(db)

	hub := feed.NewHub(articleStore, logger)

	verifier := auth.NewStaticVerifier(cfg.Auth)
	authService := service.NewAuthService(verifier, userStore, logger)
	newsService := service.NewNewsService(articleStore, savedStore, mediaStore, rabbitMQ, hub, txManager, logger)
	savedService := service.NewSavedNewsService(savedStore, articleStore, logger)
	adsService := service.NewAdsService(adStore, mediaStore, logger)
	draftService := service.NewDraftService(draftStore, cfg.Feed.DraftDebounce, logger)

	consumer := events.NewConsumer(rabbitMQ, hub, logger)
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("change consumer stopped", "error", err)
		}
	}()

	handler := server.New(
		articleStore,
		hub,
		authService,
		newsService,
		savedService,
		adsService,
		draftService,
		cfg.Feed,
		logger,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting portal server", "addr", cfg.Server.Addr)

	serveErr := srv.ListenAndServe()

	// persist any drafts still sitting in the debounce window,
	// whether the server stopped cleanly or fell over
	draftService.FlushAll()

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		logger.Error("server error", "error", serveErr)
		os.Exit(1)
	}
	logger.Info("portal stopped")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
