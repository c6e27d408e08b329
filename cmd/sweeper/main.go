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
	"github.com/memearena/arena/internal/arena"
	"github.com/memearena/arena/internal/config"
	"github.com/memearena/arena/internal/gateway"
	"github.com/memearena/arena/internal/logger"
	"github.com/memearena/arena/internal/providers/jetstream"
	"github.com/memearena/arena/internal/scheduler"
	"github.com/memearena/arena/internal/store"
	"github.com/memearena/arena/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
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
			"service": "arena-sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Arena Session Sweeper")

	// Connect to database
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

	// Connect the event broadcaster to NATS JetStream so re-driven transitions
	// still notify observers
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

	callbackURL := cfg.Scheduler.CallbackBaseURL + "/api/v1/callbacks"
	machine := arena.NewMachine(dataStore, sched, tokenGateway, broadcaster, clock, jsonAdapter, arena.CallbackConfig{
		VotingEndURL:     callbackURL,
		ContributeEndURL: callbackURL,
		NextSessionURL:   callbackURL,
		ClaimGrace:       cfg.Scheduler.ClaimGrace,
	})

	// Initialize session sweeper
	sweeperConfig := &sweeper.SessionSweeperConfig{
		Interval:       cfg.SessionSweeper.Interval,
		StallGrace:     cfg.SessionSweeper.StallGrace,
		WorkerPoolSize: cfg.SessionSweeper.PoolSize,
	}
	sessionSweeper := sweeper.NewSessionSweeper(sweeperConfig, dataStore, machine, clock)

	logger.InfoCtx(ctx, "Initialized session sweeper",
		zap.Duration("interval", cfg.SessionSweeper.Interval),
		zap.Duration("stall_grace", cfg.SessionSweeper.StallGrace),
		zap.Int("worker_pool_size", cfg.SessionSweeper.PoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := sessionSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := sessionSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
