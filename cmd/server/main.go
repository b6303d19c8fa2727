package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	httpapi "gearshare-booking-engine/internal/api/http"
	"gearshare-booking-engine/internal/config"
	"gearshare-booking-engine/internal/lock"
	"gearshare-booking-engine/internal/logger"
	"gearshare-booking-engine/internal/repository/postgres"
	"gearshare-booking-engine/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Optional .env for local development; env vars override yaml.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearShare Booking Engine...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Lock configuration", "backend", cfg.Lock.Backend, "ttl", cfg.Lock.TTL())

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	locker, cleanup, err := buildLocker(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize item locker: %v", err)
	}
	defer cleanup()

	availabilitySvc := service.NewAvailabilityService(store.CalendarRepository, store.ReservationRepository, cfg.Booking.LeadTimeDays)
	ledgerSvc := service.NewLedgerService(store.ReservationRepository, store.CalendarRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	bookingSvc := service.NewBookingService(
		locker,
		ledgerSvc,
		store.ReservationRepository,
		store.CalendarRepository,
		store.ItemRepository,
		store.OrderRepository,
		store.NotificationRepository,
		service.BookingParams{
			LockTTL:     cfg.Lock.TTL(),
			DepositRate: cfg.Booking.DepositRate,
			TaxRate:     cfg.Booking.TaxRate,
		},
	)

	router := httpapi.NewRouter(availabilitySvc, bookingSvc, ledgerSvc, noteSvc)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// buildLocker selects the item-lock backend from configuration.
func buildLocker(cfg *config.Config, db *sql.DB) (lock.Locker, func(), error) {
	switch cfg.Lock.Backend {
	case "memory":
		return lock.NewMemory(), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
		return lock.NewRedis(rdb), func() { rdb.Close() }, nil
	default:
		return lock.NewPostgres(db), func() {}, nil
	}
}
