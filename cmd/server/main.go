// Command server runs the ownergraph HTTP API: company lookups, controller
// listings, recursive ownership traversal, filing relevance, and the
// shareholding calculator, all backed by the Companies House public API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ownergraph/internal/capital"
	capitalhandler "ownergraph/internal/capital/handler"
	companyhandler "ownergraph/internal/company/handler"
	companyservice "ownergraph/internal/company/service"
	"ownergraph/internal/company/store"
	"ownergraph/internal/filings"
	filingshandler "ownergraph/internal/filings/handler"
	httpapi "ownergraph/internal/http"
	"ownergraph/internal/ownership"
	ownershiphandler "ownergraph/internal/ownership/handler"
	ownershipmetrics "ownergraph/internal/ownership/metrics"
	"ownergraph/internal/platform/config"
	"ownergraph/internal/platform/httpserver"
	"ownergraph/internal/platform/logger"
	platformredis "ownergraph/internal/platform/redis"
	"ownergraph/internal/registry"
	"ownergraph/pkg/platform/circuit"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if cfg.Registry.APIKey == "" {
		log.Error("COMPANIES_HOUSE_API_KEY is required")
		os.Exit(1)
	}

	// Redis is optional; without it the profile cache is process-local.
	var cache store.ProfileCache
	var healthChecks []httpapi.HealthCheck
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		cache = store.NewRedisCache(redisClient.Client, cfg.Cache.ProfileTTL)
		healthChecks = append(healthChecks, httpapi.HealthCheck{Name: "redis", Check: redisClient.Health})
		log.Info("profile cache backed by redis")
	} else {
		cache = store.NewMemoryCache(cfg.Cache.ProfileTTL)
		log.Info("profile cache in memory")
	}

	client := registry.New(cfg.Registry,
		registry.WithLogger(log),
		registry.WithBreaker(circuit.New("companies-house")),
	)

	companies := companyservice.New(client,
		companyservice.WithCache(cache),
		companyservice.WithLogger(log),
	)
	engine := ownership.New(companies, companies, cfg.Traversal,
		ownership.WithLogger(log),
		ownership.WithMetrics(ownershipmetrics.New()),
	)
	filingsFilter := filings.New(client, cfg.Filings, filings.WithLogger(log))
	capitalService := capital.New(client, capital.WithLogger(log))

	router := httpapi.NewRouter(healthChecks,
		companyhandler.New(companies, log),
		ownershiphandler.New(engine, log),
		filingshandler.New(filingsFilter, log),
		capitalhandler.New(capitalService, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting ownergraph", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("redis close failed", "error", err)
		}
	}
}
