package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/memearena/arena/internal/adapter"
	"github.com/memearena/arena/internal/api/middleware"
	"github.com/memearena/arena/internal/api/server"
	"github.com/memearena/arena/internal/arena"
	"github.com/memearena/arena/internal/config"
	"github.com/memearena/arena/internal/gateway"
	"github.com/memearena/arena/internal/logger"
	"github.com/memearena/arena/internal/providers/jetstream"
	"github.com/memearena/arena/internal/scheduler"
	"github.com/memearena/arena/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "arena-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Meme Arena API")

	// Connect to database. TranslateError surfaces unique violations as
	// gorm.ErrDuplicatedKey, which the store maps to domain errors.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Connect the event broadcaster to NATS JetStream
	broadcaster, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		SubjectPrefix:  cfg.NATS.SubjectPrefix,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer broadcaster.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Initialize the external scheduler and token gateway clients
	sched := scheduler.NewHTTPScheduler(
		cfg.Scheduler.Endpoint,
		cfg.Scheduler.Secret,
		adapter.NewHTTPClient(cfg.Scheduler.HTTPTimeout),
		jsonAdapter,
		clock,
	)
	tokenGateway := gateway.NewLaunchpadGateway(
		cfg.Launchpad.BaseURL,
		cfg.Launchpad.APIKey,
		adapter.NewHTTPClient(cfg.Launchpad.HTTPTimeout),
		jsonAdapter,
	)

	// All callback actions share one endpoint; the handler dispatches on the
	// payload action
	callbackURL := cfg.Scheduler.CallbackBaseURL + "/api/v1/callbacks"
	machine := arena.NewMachine(dataStore, sched, tokenGateway, broadcaster, clock, jsonAdapter, arena.CallbackConfig{
		VotingEndURL:     callbackURL,
		ContributeEndURL: callbackURL,
		NextSessionURL:   callbackURL,
		ClaimGrace:       cfg.Scheduler.ClaimGrace,
	})

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		Callback: middleware.CallbackConfig{
			Secret:  cfg.Scheduler.Secret,
			MaxSkew: cfg.Scheduler.CallbackMaxSkew,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, dataStore, machine)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
