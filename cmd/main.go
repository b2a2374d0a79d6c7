package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/luislong0/daily-diet-api/config"
	"github.com/luislong0/daily-diet-api/controllers"
	"github.com/luislong0/daily-diet-api/routes"
	"github.com/luislong0/daily-diet-api/services"
	"github.com/luislong0/daily-diet-api/store"
	"github.com/luislong0/daily-diet-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := utils.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var cache services.StatsCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, stats cache disabled", "error", err)
		} else if cache, err = services.NewRedisStatsCache(rdb, "", cfg.StatsCacheTTL); err != nil {
			return err
		}
	}

	var photos utils.PhotoUploader
	if cfg.S3Bucket != "" {
		up, err := utils.NewS3PhotoUploaderFromEnv(ctx, cfg.S3RegionOrDefault(), cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			return err
		}
		photos = up
	}

	hub := services.NewRealtimeHub()
	sinks := []services.MealEventSink{hub}
	if cfg.SNSMealTopicARN != "" {
		pub, err := services.NewSNSMealPublisherFromEnv(ctx, cfg.AWSRegion, cfg.SNSMealTopicARN)
		if err != nil {
			return err
		}
		sinks = append(sinks, pub)
	}

	users := services.NewUserService(st, photos)
	meals := services.NewMealService(users, st, cache, services.NewMealEventBus(sinks...), cfg.Location())
	stats := services.NewStatsService(users, st, cache)

	errs := controllers.ErrorMapper{Legacy: cfg.LegacyStatusCodes}
	router := routes.SetupRouter(routes.Handlers{
		Users:     controllers.NewUserController(users, errs),
		Meals:     controllers.NewMealController(meals, stats, errs),
		Realtime:  controllers.NewRealtimeController(hub, users, errs),
		Logger:    logger,
		JWTSecret: []byte(cfg.AuthJWTSecret),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver,
			"stats_cache", cache != nil, "s3", photos != nil, "auth", cfg.AuthJWTSecret != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return store.NewMemoryStore(), nil
	}
	return store.OpenPostgres(ctx, cfg.DSN())
}
