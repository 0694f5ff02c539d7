package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIURL         string        `env:"INFOCAST_API_URL,    default=http://localhost:8080"`
	RequestTimeout time.Duration `env:"INFOCAST_TIMEOUT,    default=30s"`
	LogLevel       string        `env:"INFOCAST_LOG_LEVEL,  default=warn"`
	LogPretty      bool          `env:"INFOCAST_LOG_PRETTY, default=true"`
	TokenPath      string        `env:"INFOCAST_TOKEN_PATH"`

	Stub StubConfig
}

// StubConfig configures the development stub server.
type StubConfig struct {
	Addr      string        `env:"INFOCAST_STUB_ADDR,       default=:8080"`
	JWTSecret string        `env:"INFOCAST_STUB_JWT_SECRET, default=dev-only-secret"`
	TokenTTL  time.Duration `env:"INFOCAST_STUB_TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"INFOCAST_STUB_LOG_LEVEL,  default=info"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
