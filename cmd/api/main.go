package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"qfs-ledger-gateway/internal/common/config"
	"qfs-ledger-gateway/internal/common/logger"
	"qfs-ledger-gateway/internal/features/prices"
	"qfs-ledger-gateway/internal/features/session/store"
	gatewayhttp "qfs-ledger-gateway/internal/http"
	"qfs-ledger-gateway/internal/platform/redis"
	"qfs-ledger-gateway/internal/upstream"
)

// @title QFS Ledger Gateway API
// @version 1.0
// @description Session gateway for the QFS Ledger platform.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("qfs-ledger-gateway", true)
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("qfs-ledger-gateway", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.Open(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	sessions := store.NewResolver(
		store.NewRedisStore(rdb, cfg.Session.TTL),
		store.NewMemoryStore(),
	)

	backend := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, sessions)

	priceCache := prices.NewCache(rdb)
	priceSvc := prices.NewService(backend, priceCache)
	poller := prices.NewPoller(
		prices.NewClient(cfg.Prices.BaseURL, cfg.Prices.Timeout),
		priceCache,
		cfg.Prices.RefreshInterval,
	)
	go poller.Run(ctx)

	if cfg.Upstream.KeepaliveEnabled {
		pinger := upstream.NewPinger(cfg.Upstream.BaseURL, cfg.Upstream.KeepaliveInterval)
		go pinger.Run(ctx)
	}

	router := gatewayhttp.NewRouter(gatewayhttp.Deps{
		Config:   cfg,
		Redis:    rdb,
		Sessions: sessions,
		Backend:  backend,
		Prices:   priceSvc,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
