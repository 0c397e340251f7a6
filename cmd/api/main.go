package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/api"
	"github.com/aiqb/preorder-system/internal/core/service"
	"github.com/aiqb/preorder-system/internal/infrastructure/config"
	mongodb "github.com/aiqb/preorder-system/internal/infrastructure/db/mongo"
	redisdb "github.com/aiqb/preorder-system/internal/infrastructure/db/redis"
	"github.com/aiqb/preorder-system/internal/infrastructure/queue"
	"github.com/aiqb/preorder-system/internal/infrastructure/remote/supabase"
	"github.com/aiqb/preorder-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect")
	}
	defer mongoClient.Disconnect(context.Background()) //nolint:errcheck

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	remote := supabase.New(supabase.Config{
		URL:     cfg.Supabase.URL,
		AnonKey: cfg.Supabase.AnonKey,
		Timeout: cfg.Supabase.Timeout,
	})

	orderRepo := mongodb.NewOrderRepository(db)
	snapshotRepo := mongodb.NewSnapshotRepository(db)
	staffRepo := mongodb.NewStaffRepository(db)

	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("order indexes")
	}
	if err := staffRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("staff indexes")
	}

	notifier := service.NewNotificationService(log)
	sessions := service.NewSessionService(remote, log)
	snapshots := service.NewSnapshotService(snapshotRepo, log)
	orders := service.NewOrderService(orderRepo, remote, snapshots, notifier, log)
	stock := service.NewStockService(remote, redisdb.NewStockCache(rdb), log)
	profiles := service.NewProfileService(sessions, remote)
	staff := service.NewStaffService(staffRepo, cfg.JWTSecret, 24*time.Hour)

	go sessions.Run(ctx, cfg.Session.RefreshInterval)

	reconciler := queue.NewReconciler(orderRepo, remote, redisdb.NewSyncGuard(rdb), queue.Config{
		Workers:   cfg.Reconcile.Workers,
		Interval:  cfg.Reconcile.Interval,
		BatchSize: cfg.Reconcile.BatchSize,
	}, log)
	reconciler.Start(ctx)

	e := api.NewRouter(api.RouterConfig{
		Sessions:  sessions,
		Orders:    orders,
		Snapshots: snapshots,
		Notifier:  notifier,
		Stock:     stock,
		Profiles:  profiles,
		Staff:     staff,
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	waitForShutdown(log)

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
