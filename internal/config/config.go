package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/labstack/gommon/bytes"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"InsightDesk/internal/forecast"
	"InsightDesk/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr           string  `yaml:"addr"`
		UploadLimit    string  `yaml:"upload_limit"`
		RateLimit      float64 `yaml:"rate_limit"` // uploads per second per client; negative disables
		ShowSampleData bool    `yaml:"show_sample_data"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Forecast model.ScenarioAssumptions `yaml:"forecast"`
	Digest   struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
	} `yaml:"digest"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// DefaultAssumptions are the starting values of the forecast form.
func DefaultAssumptions() model.ScenarioAssumptions {
	return model.ScenarioAssumptions{
		Traffic:             100000,
		BaseConversionRate:  0.025,
		BasePrice:           80,
		UnitCost:            32,
		Elasticity:          1.8,
		AvgQuantityPerOrder: 1.3,
		ConversionCap:       0.25,
		DiscountMinPct:      0,
		DiscountMaxPct:      40,
		DiscountStepPct:     5,
	}
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) {
	if err := gotenv.Load(path); err != nil {
		slog.Debug("no .env file loaded, using OS environment", "path", path)
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Forecast = DefaultAssumptions()
	cfg.Server.ShowSampleData = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		cfg.Digest.Cron = v
	}
	if v := os.Getenv("DIGEST_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Digest.Enabled = b
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.UploadLimit == "" {
		cfg.Server.UploadLimit = "10M"
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Digest.Cron == "" {
		cfg.Digest.Cron = "0 0 9 * * 1"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	if _, err := bytes.Parse(c.Server.UploadLimit); err != nil {
		return fmt.Errorf("server.upload_limit: %w", err)
	}
	if err := forecast.Validate(c.Forecast); err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	if c.Digest.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when digest is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when digest is enabled")
		}
	}
	return nil
}
