package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"fairgate/internal/audit"
	"fairgate/internal/compliance"
	"fairgate/internal/decision"
	decisionhandler "fairgate/internal/decision/handler"
	decisionmetrics "fairgate/internal/decision/metrics"
	"fairgate/internal/decision/store/recent"
	"fairgate/internal/ethics"
	"fairgate/internal/explain"
	httpapi "fairgate/internal/http"
	"fairgate/internal/platform/config"
	"fairgate/internal/platform/database"
	"fairgate/internal/platform/httpserver"
	"fairgate/internal/platform/kafka"
	"fairgate/internal/platform/kafka/producer"
	"fairgate/internal/platform/logger"
	"fairgate/internal/platform/middleware"
	platformredis "fairgate/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing fairgate",
		"addr", cfg.Addr,
		"database_configured", cfg.DatabaseURL != "",
		"redis_configured", cfg.Redis.URL != "",
		"kafka_configured", cfg.KafkaBrokers != "",
	)

	// Postgres is the durable audit trail; without it events stay in memory.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	var auditStore audit.Store
	if pool != nil {
		auditStore = audit.NewPostgres(pool.DB())
	} else {
		log.Warn("no database configured, audit trail is in-memory only")
		auditStore = audit.NewInMemoryStore()
	}

	publisherOpts := []audit.PublisherOption{audit.WithPublisherLogger(log)}
	var kafkaProducer *producer.Producer
	if cfg.KafkaBrokers != "" {
		producerCfg := kafka.DefaultProducerConfig()
		producerCfg.Brokers = cfg.KafkaBrokers
		kafkaProducer, err = producer.New(producerCfg, log)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		publisherOpts = append(publisherOpts, audit.WithProducer(kafkaProducer, cfg.AuditTopic))
	}
	auditor := audit.NewPublisher(auditStore, publisherOpts...)

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	service := decision.New(
		compliance.NewValidator(compliance.DefaultPolicy()),
		ethics.NewScorer(),
		explain.NewGenerator(),
		auditor,
		decision.WithMetrics(decisionmetrics.New()),
		decision.WithLogger(log),
	)

	handlerOpts := []decisionhandler.Option{}
	if redisClient != nil {
		handlerOpts = append(handlerOpts,
			decisionhandler.WithRecentCache(recent.NewRedis(redisClient.Client, cfg.DecisionCacheTTL)))
	}
	decisions := decisionhandler.New(service, log, handlerOpts...)

	checks := map[string]httpapi.HealthChecker{}
	if pool != nil {
		checks["database"] = pool
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Decisions: decisions,
		Auth:      middleware.NewHMACValidator(cfg.JWTSigningKey),
		Logger:    log,
		Checks:    checks,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
