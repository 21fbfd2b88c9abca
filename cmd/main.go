package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flashdeals/internal/config"
	"flashdeals/internal/events"
	"flashdeals/internal/infrastructure/database/memory"
	"flashdeals/internal/infrastructure/database/postgres"
	"flashdeals/internal/logger"
	"flashdeals/internal/middleware"
	"flashdeals/internal/otp"
	"flashdeals/internal/routes"
	"flashdeals/internal/storage"
	"flashdeals/internal/usecase/account"
	"flashdeals/pkg/mqtt"

	"go.uber.org/zap"
)

type closer interface {
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	for _, warning := range cfg.Warnings() {
		logger.Warn("Configuration warning",
			zap.String("event", "config_warning"),
			zap.String("warning", warning),
		)
	}

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	deps, store := buildDependencies(ctx, cfg)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	services := routes.NewServices(cfg, deps)
	if cfg.Admin.Enabled() {
		if _, err := services.Accounts.EnsureAdmin(ctx, &account.EnsureAdminRequest{
			Name:     cfg.Admin.Name,
			Mobile:   cfg.Admin.Mobile,
			Password: cfg.Admin.Password,
		}); err != nil {
			logger.Fatal("Failed to ensure admin account", zap.Error(err))
		}
	}
	router := routes.SetupRoutes(cfg, deps, services)

	if interval := cfg.Session.CleanupIntervalMinutes; interval > 0 {
		go services.Sessions.StartCleanupJob(ctx, time.Duration(interval)*time.Minute)
	}
	go deps.RateLimiter.Run(ctx)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*routes.Dependencies, closer) {
	deps := &routes.Dependencies{
		Publisher:   buildPublisher(cfg),
		OTP:         otp.NewStaticProvider(cfg.OTP.StaticCode),
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst),
	}

	if cfg.Storage.Enabled() {
		presigner, err := storage.NewS3Presigner(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		deps.Presigner = presigner
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		deps.Health = store
		deps.Repos = routes.Repositories{
			Accounts: store.Accounts(),
			Sessions: store.Sessions(),
			Offers:   store.Offers(),
			Wishlist: store.Wishlist(),
			Tickets:  store.Tickets(),
		}
		logger.Warn("Using in-memory store, data is lost on restart")
		return deps, store

	default:
		db, err := postgres.NewDB(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		sqlDB, err := db.SQL()
		if err != nil {
			logger.Fatal("Failed to access database handle", zap.Error(err))
		}
		if err := postgres.RunMigrations(ctx, sqlDB); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		deps.Health = db
		deps.Repos = routes.Repositories{
			Accounts: postgres.NewAccountRepository(db),
			Sessions: postgres.NewSessionRepository(db),
			Offers:   postgres.NewOfferRepository(db),
			Wishlist: postgres.NewWishlistRepository(db),
			Tickets:  postgres.NewTicketRepository(db),
		}
		return deps, db
	}
}

// buildPublisher falls back to a no-op publisher when no broker is configured or reachable
func buildPublisher(cfg *config.Config) events.Publisher {
	if cfg.MQTT.Broker == "" {
		return events.NewNoop()
	}

	client := mqtt.NewClient(&mqtt.Config{
		Broker:               cfg.MQTT.Broker,
		ClientID:             cfg.MQTT.ClientID,
		Username:             cfg.MQTT.Username,
		Password:             cfg.MQTT.Password,
		CleanSession:         true,
		KeepAlive:            30,
		ConnectTimeout:       10,
		AutoReconnect:        true,
		MaxReconnectInterval: time.Minute,
		PublishTimeout:       5 * time.Second,
	}, logger.Logger)

	if err := client.Connect(); err != nil {
		logger.Warn("MQTT broker unavailable, domain events disabled",
			zap.String("broker", cfg.MQTT.Broker),
			zap.Error(err),
		)
		return events.NewNoop()
	}

	return events.NewMQTTPublisher(client, cfg.MQTT.TopicPrefix, cfg.MQTT.QoS)
}
