package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload" // loads .env before the environment is read
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string `validate:"required"`
	ServerPort  string `validate:"required"`
	LogLevel    string
	MongoURI    string `validate:"required"`
	DBName      string `validate:"required"`
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string `validate:"required"`
	SwaggerHost string
	CORSOrigins []string

	// Used by cmd/seed only.
	SeedFile          string
	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{
		Env:         getEnv(k, "APP_ENV", "production"),
		ServerPort:  getEnv(k, "PORT", "5000"),
		LogLevel:    getEnv(k, "LOG_LEVEL", "info"),
		MongoURI:    mongoURI(k),
		DBName:      getEnv(k, "DB_NAME", "home_db"),
		RedisAddr:   getEnv(k, "REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt(k, "REDIS_DB", 0),
		RedisPass:   k.String("REDIS_PASSWORD"),
		JWTSecret:   getEnv(k, "JWT_SECRET", "change-me"),
		SwaggerHost: k.String("SWAGGER_HOST"),
		CORSOrigins: splitList(getEnv(k, "CORS_ALLOWED_ORIGINS", "*")),

		SeedFile:          getEnv(k, "SEED_FILE", "seed/services.json"),
		SeedAdminEmail:    k.String("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: k.String("SEED_ADMIN_PASSWORD"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the process runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}

// mongoURI prefers an explicit MONGODB_URI and otherwise assembles an Atlas
// SRV address from DB_USER, DB_PASS and DB_HOST.
func mongoURI(k *koanf.Koanf) string {
	if uri := k.String("MONGODB_URI"); uri != "" {
		return uri
	}
	user := k.String("DB_USER")
	if user == "" {
		return "mongodb://localhost:27017"
	}
	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(user, k.String("DB_PASS")),
		Host:   getEnv(k, "DB_HOST", "localhost"),
		Path:   "/",
	}
	if app := k.String("DB_APP_NAME"); app != "" {
		u.RawQuery = url.Values{"appName": {app}}.Encode()
	}
	return u.String()
}

func getEnv(k *koanf.Koanf, key, def string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(k *koanf.Koanf, key string, def int) int {
	if v := k.String(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
