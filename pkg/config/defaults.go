package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "innkeeper"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// Dev-only fallback; Validate rejects an empty secret, deployments must
	// set JWT_SECRET.
	DefaultJWTSecret = "dev-secret-change-me"
	DefaultTokenTTL  = 24 * time.Hour

	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"

	DefaultKafkaBookingTopic = "booking-events"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	MaxPaginationLimit = 500
)
