package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Upload    UploadConfig
	Inventory InventoryConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr        string
	FrontendURL string
}

type StorageConfig struct {
	Driver        string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
}

// RedisConfig is optional; an empty Addr disables every Redis-backed feature.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	RefreshTTL time.Duration
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type InventoryConfig struct {
	LowStockThreshold int
}

type RateLimitConfig struct {
	RPS        float64
	Burst      int
	BanStrikes int
	BanTTL     time.Duration
}

// LoadEnv loads .env and, when APP_ENV is "local", .env.local into the process environment.
// Variables already set in the environment win.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
		os.Setenv("APP_ENV", appEnv)
	}

	if appEnv == "local" {
		if err := godotenv.Load(".env.local"); err != nil {
			log.Printf("Warning: .env.local not loaded: %v. Relying on system environment variables.", err)
		} else {
			log.Println("Loaded .env.local for local development.")
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.frontend_url", "http://localhost:5173")

	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "inventory-app")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "super-secret-key")
	v.SetDefault("auth.token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_ttl", 7*24*time.Hour)

	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_bytes", int64(10<<20))

	v.SetDefault("inventory.low_stock_threshold", 10)

	v.SetDefault("ratelimit.rps", 1.0)
	v.SetDefault("ratelimit.burst", 3)
	v.SetDefault("ratelimit.ban_strikes", 5)
	v.SetDefault("ratelimit.ban_ttl", 15*time.Minute)
}

// New builds the viper instance used by Load. An optional config file (inventory.yaml) is read
// from the working directory or /etc/inventory when present.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by the deployment scripts.
	_ = v.BindEnv("database.url", "INVENTORY_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("mongo.uri", "INVENTORY_MONGO_URI", "MONGO_URI")
	_ = v.BindEnv("redis.addr", "INVENTORY_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("auth.jwt_secret", "INVENTORY_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("server.frontend_url", "INVENTORY_SERVER_FRONTEND_URL", "FRONTEND_URL")

	v.SetConfigName("inventory")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/inventory")
	return v
}

func Load() (Config, error) {
	return FromViper(New())
}

func FromViper(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:        v.GetString("server.addr"),
			FrontendURL: v.GetString("server.frontend_url"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(v.GetString("storage.driver")),
			DatabaseURL:   v.GetString("database.url"),
			MongoURI:      v.GetString("mongo.uri"),
			MongoDatabase: v.GetString("mongo.database"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("auth.jwt_secret"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			RefreshTTL: v.GetDuration("auth.refresh_ttl"),
		},
		Upload: UploadConfig{
			Dir:      v.GetString("upload.dir"),
			MaxBytes: v.GetInt64("upload.max_bytes"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: v.GetInt("inventory.low_stock_threshold"),
		},
		RateLimit: RateLimitConfig{
			RPS:        v.GetFloat64("ratelimit.rps"),
			Burst:      v.GetInt("ratelimit.burst"),
			BanStrikes: v.GetInt("ratelimit.ban_strikes"),
			BanTTL:     v.GetDuration("ratelimit.ban_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("Environment variable DATABASE_URL not found.")
		}
	case DriverMongo:
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("mongo.uri is required for the mongo storage driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be greater than zero")
	}
	return nil
}
