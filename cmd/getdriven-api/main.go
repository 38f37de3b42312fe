// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"getdriven/internal/auth"
	"getdriven/internal/config"
	httptransport "getdriven/internal/http"
	"getdriven/internal/infra"
	"getdriven/internal/modules/export"
	"getdriven/internal/modules/ride"
	"getdriven/internal/modules/settings"
	"getdriven/internal/modules/stats"
	"getdriven/internal/modules/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	if err := infra.EnsureSchema(ctx, dbPool); err != nil {
		logger.Fatal("schema init", zap.Error(err))
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	settingsStore := settings.NewStore(dbPool)
	settingsSvc := settings.NewService(settingsStore)

	statsCache := stats.NewCache(redisClient, cfg.Redis.StatsTTL)

	rideStore := ride.NewStore(dbPool)
	rideSvc := ride.NewService(rideStore, settingsSvc, statsCache)

	statsSvc := stats.NewService(rideSvc, statsCache)
	exportSvc := export.NewService(rideSvc)

	userStore := user.NewStore(dbPool)
	userSvc := user.NewService(userStore, settingsSvc, tokens)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Users:    userSvc,
		Rides:    rideSvc,
		Settings: settingsSvc,
		Stats:    statsSvc,
		Export:   exportSvc,
		Verifier: tokens,
		Log:      logger,
		Origins:  cfg.CORS.Origins,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}
