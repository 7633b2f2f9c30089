package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// Access codes gating privileged role self-assignment. Verified
	// server-side only; never sent to clients.
	AdminAccessCode    string `env:"ADMIN_ACCESS_CODE"`
	EmployeeAccessCode string `env:"EMPLOYEE_ACCESS_CODE"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Search SearchConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=click_shop"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// SearchConfig points at the external suggestion collaborator. An empty URL
// disables the external call; search then runs on query variants alone.
type SearchConfig struct {
	URL        string        `env:"SEARCH_SUGGEST_URL"`
	APIKey     string        `env:"SEARCH_SUGGEST_API_KEY"`
	Timeout    time.Duration `env:"SEARCH_SUGGEST_TIMEOUT, default=5s"`
	RatePerSec float64       `env:"SEARCH_SUGGEST_RATE,    default=5"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
