package config

import (
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server     ServerConfig     `envPrefix:"SERVER_"`
	ProductAPI ProductAPIConfig `envPrefix:"PRODUCT_API_"`
	Log        LogConfig        `envPrefix:"LOG_"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	// CORSOrigins is a regular expression matched against the Origin header of /api requests.
	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"^https?://localhost(:[0-9]+)?$"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	PprofEnabled    bool          `env:"PPROF_ENABLED" envDefault:"false"`
}

// Addr is the listen address of the web server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type ProductAPIConfig struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"http://localhost:5187/api"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
	RetryCount int           `env:"RETRY_COUNT" envDefault:"0"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.ProductAPI.RetryCount < 0 {
		return nil, fmt.Errorf("PRODUCT_API_RETRY_COUNT must not be negative: %d", cfg.ProductAPI.RetryCount)
	}
	if _, err := regexp.Compile(cfg.Server.CORSOrigins); err != nil {
		return nil, fmt.Errorf("SERVER_CORS_ORIGINS: %w", err)
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}
