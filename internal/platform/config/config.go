package config

import (
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	DatabaseURL string

	KafkaBrokers string
	AuditTopic   string

	Redis RedisConfig

	// DecisionCacheTTL bounds how long a decision may be replayed for an
	// unchanged case and action.
	DecisionCacheTTL time.Duration
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultDecisionCacheTTL keeps replayed decisions short-lived; contact
// history counters move on the scale of hours.
var DefaultDecisionCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("FAIRGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("FAIRGATE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	cacheTTL := DefaultDecisionCacheTTL
	if raw := os.Getenv("FAIRGATE_DECISION_CACHE_TTL"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			cacheTTL = duration
		}
	}

	auditTopic := os.Getenv("FAIRGATE_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "collections.compliance.decisions"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		DatabaseURL:   os.Getenv("FAIRGATE_DATABASE_URL"),
		KafkaBrokers:  os.Getenv("FAIRGATE_KAFKA_BROKERS"),
		AuditTopic:    auditTopic,
		Redis: RedisConfig{
			URL:          os.Getenv("FAIRGATE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		DecisionCacheTTL: cacheTTL,
	}
}
