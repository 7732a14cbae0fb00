// cmd/leadgen-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead-generator/internal/api"
	"lead-generator/internal/common/config"
	"lead-generator/internal/common/database"
	"lead-generator/internal/common/logger"
	"lead-generator/internal/common/observability"
	"lead-generator/internal/crm"
	"lead-generator/internal/engine"
	"lead-generator/internal/leads"
	"lead-generator/internal/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting lead generator service", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// Optional infrastructure. The service comes up without either; the
	// affected feature is simply disabled.
	var cache *leads.Cache
	if cfg.Cache.Enabled {
		var redisClient *database.RedisClient
		err := retryWithBackoff(3, 2*time.Second, func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			return err
		})
		if err != nil {
			log.Warn("redis unavailable, result cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redisClient.Close()
			cache = leads.NewCache(redisClient.Client, time.Duration(cfg.Cache.TTL)*time.Second, log)
		}
	}

	var tracker *usage.Tracker
	if cfg.Usage.Enabled {
		pricing := usage.Pricing{
			InputPerM:  cfg.Usage.InputPricePerM,
			OutputPerM: cfg.Usage.OutputPricePerM,
		}
		if cfg.Usage.PersistToDB {
			var pg *database.PostgresClient
			err := retryWithBackoff(3, 2*time.Second, func() error {
				var err error
				pg, err = database.NewPostgres(cfg.Database.Postgres)
				return err
			})
			if err != nil {
				log.Warn("postgres unavailable, usage kept in memory only", map[string]interface{}{
					"error": err.Error(),
				})
				tracker = usage.NewTracker(pricing, nil, log)
			} else {
				defer pg.Close()
				tracker = usage.NewTracker(pricing, pg.DB, log)
			}
		} else {
			tracker = usage.NewTracker(pricing, nil, log)
		}
	}

	// One-time engine acquisition. Failure here is not fatal; the facade
	// serves degraded results for the life of the process.
	prober := engine.NewProber(cfg.Engine, cfg.Tools, log)
	probe := prober.Probe()
	log.Info("engine probe completed", map[string]interface{}{
		"available": probe.Availability.Available,
		"reason":    probe.Availability.Reason,
	})

	service := leads.NewService(probe, cache, tracker, obs, log)

	var crmClient *crm.Client
	if cfg.CRM.Enabled {
		crmClient = crm.NewClient(
			cfg.CRM.BaseURL,
			cfg.CRM.AuthToken,
			cfg.CRM.MinScore,
			config.GetDuration(cfg.CRM.Timeout),
			log,
		)
	}

	server := api.NewServer(cfg.Server.Address, service, crmClient, tracker, log)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
	case err := <-errCh:
		log.Error("server failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("lead generator service stopped", nil)
}

func retryWithBackoff(attempts int, initialDelay time.Duration, fn func() error) error {
	var err error
	delay := initialDelay
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return err
}
