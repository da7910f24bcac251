package config

import (
	"errors"  // For configuration errors
	"os"      // For environment variables
	"strconv" // For string to number conversion
	"time"    // For durations

	"github.com/joho/godotenv"      // For loading .env files
	"github.com/shopspring/decimal" // For the withdrawal minimum
	"golang.org/x/crypto/bcrypt"    // For the default hashing cost
)

// Store drivers
const (
	StoreMemory = "memory" // Fixture-seeded in-process store
	StoreMySQL  = "mysql"  // MySQL through GORM
)

// DefaultJWTSecret is the development signing key used when JWT_SECRET is unset
const DefaultJWTSecret = "change-me"

// ErrInsecureSecret is returned by Validate for a production config signing
// tokens with the development key.
var ErrInsecureSecret = errors.New("JWT_SECRET must be set to a non-default value in production")

// Config holds the application configuration
type Config struct {
	AppPort       string          // Application port
	StoreDriver   string          // memory or mysql
	DBUser        string          // Database user
	DBPassword    string          // Database password
	DBHost        string          // Database host
	DBPort        string          // Database port
	DBName        string          // Database name
	JWTSecret     string          // JWT secret key
	JWTTTL        time.Duration   // Lifetime of issued tokens
	RedisAddr     string          // Redis server address, empty disables caching
	RedisPass     string          // Redis password
	RedisDB       int             // Redis database number
	CacheTTL      time.Duration   // Lifetime of cached summaries and device lists
	MinWithdrawal decimal.Decimal // Smallest amount accepted by a withdrawal
	BcryptCost    int             // Cost used when hashing credentials
	SeedFixtures  bool            // Seed sample data on start
	LogLevel      string          // logrus level
	IsProd        bool            // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		StoreDriver:   getEnv("STORE_DRIVER", StoreMemory),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "pooltable"),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:        getEnvAsDuration("JWT_TTL", 24*time.Hour),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", 60*time.Second),
		MinWithdrawal: getEnvAsDecimal("MIN_WITHDRAWAL", decimal.NewFromInt(100)),
		BcryptCost:    getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		SeedFixtures:  getEnv("SEED_FIXTURES", "true") == "true",
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		IsProd:        os.Getenv("IS_PROD") == "true",
	}
}

// Validate rejects settings that are unsafe to serve with
func (c *Config) Validate() error {
	if c.IsProd && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return ErrInsecureSecret
	}
	return nil
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvAsDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if val := os.Getenv(key); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
	}
	return defaultVal
}
