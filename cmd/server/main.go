package main

import (
	"context" // context package is needed for Redis operations

	"pooltable_tracker/internal/api"     // Custom package for API handlers
	"pooltable_tracker/internal/config"  // Custom package for configuration
	"pooltable_tracker/internal/db"      // Custom package for migrations and fixtures
	"pooltable_tracker/internal/service" // Custom package for account operations
	"pooltable_tracker/internal/store"   // Custom package for persistence
	"pooltable_tracker/internal/utils"   // Custom package for JWT helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal JSON encoding
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// openStore selects the store named by the configuration
func openStore(cfg *config.Config) store.Store {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		gdb, err := db.Open(cfg.DSN())
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		return store.NewGormStore(gdb)
	case config.StoreMemory:
		mem := store.NewMemoryStore()
		if cfg.SeedFixtures {
			if err := db.Seed(context.Background(), mem, cfg.BcryptCost); err != nil {
				logrus.Fatalf("failed to seed fixtures: %v", err)
			}
		}
		return mem
	default:
		logrus.Fatalf("unknown store driver %q", cfg.StoreDriver)
		return nil
	}
}

// openRedis connects to Redis, returning nil when it is not configured or unreachable
func openRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unreachable, running without cache")
		_ = redisClient.Close()
		return nil
	}
	return redisClient
}

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	// Refuse to start with an unsafe configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	decimal.MarshalJSONWithoutQuotes = true // Money is sent as JSON numbers

	st := openStore(cfg)          // Store selected by STORE_DRIVER
	redisClient := openRedis(cfg) // Optional cache and revocation list

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Deps{
		Service:  service.New(st, cfg),                             // Account operations
		Sessions: utils.NewJWTVerifier(cfg.JWTSecret, redisClient), // Session tokens
		Redis:    redisClient,                                      // Cache
		CacheTTL: cfg.CacheTTL,                                     // Cache lifetime
	})

	logrus.WithFields(logrus.Fields{
		"port":  cfg.AppPort,     // Listen port
		"store": cfg.StoreDriver, // Store driver
		"cache": redisClient != nil,
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
