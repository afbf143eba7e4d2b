package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// PricingConfig holds the configured price per kg for each shipment mode.
// Zero means "not configured" and aborts any cost computation.
type PricingConfig struct {
	Auto float64
	Avia float64
}

type BotConfig struct {
	APIURL     string
	AutoToken  string
	AviaToken  string
	TimeoutSec int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Pricing     PricingConfig
	Bot         BotConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Pricing: PricingConfig{
			Auto: v.GetFloat64("PRICE_AUTO"),
			Avia: v.GetFloat64("PRICE_AVIA"),
		},
		Bot: BotConfig{
			APIURL:     v.GetString("BOT_API_URL"),
			AutoToken:  v.GetString("BOT_AUTO_TOKEN"),
			AviaToken:  v.GetString("BOT_AVIA_TOKEN"),
			TimeoutSec: v.GetInt("BOT_TIMEOUT_SEC"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7092
	}
	if cfg.Bot.APIURL == "" {
		cfg.Bot.APIURL = "https://api.telegram.org"
	}
	if cfg.Bot.TimeoutSec == 0 {
		cfg.Bot.TimeoutSec = 5
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Pricing.Auto < 0 || cfg.Pricing.Avia < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	return nil
}
