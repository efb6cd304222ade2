package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Billed"`
		Port int    `envconfig:"PORT" default:"5678"`
	}

	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:5678"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	}

	Session struct {
		DBPath string `envconfig:"SESSION_DB_PATH" default:".billed/session.db"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
